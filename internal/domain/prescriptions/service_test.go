package prescriptions

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Prescription
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Prescription{}}
}

func (r *testRepo) Create(ctx context.Context, p Prescription) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Prescription) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Prescription, error) {
	p, ok := r.byID[id]
	if !ok {
		return Prescription{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) ListByPerson(ctx context.Context, personID string) ([]Prescription, error) {
	out := make([]Prescription, 0)
	for _, p := range r.byID {
		if p.PersonID == personID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

// -------------------------
// Tests
// -------------------------

func fixedNow() time.Time {
	return time.Date(2025, time.June, 10, 15, 30, 0, 0, time.UTC)
}

func TestService_Create_Defaults(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, fixedNow)

	p, err := svc.Create(context.Background(), "person-1", CreateInput{
		CompoundName: "  Vitamin   D3 ",
		Amount:       5000,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if p.CompoundName != "Vitamin D3" {
		t.Fatalf("expected collapsed name, got %q", p.CompoundName)
	}
	if p.Unit != UnitMg {
		t.Fatalf("expected default unit mg, got %s", p.Unit)
	}
	if p.Frequency != FrequencyDaily {
		t.Fatalf("expected default frequency daily, got %s", p.Frequency)
	}
	if p.IconType != "💊" {
		t.Fatalf("expected default icon, got %q", p.IconType)
	}

	today := day(2025, time.June, 10)
	if !p.DateFirstPrescribed.Equal(today) {
		t.Fatalf("expected DateFirstPrescribed today, got %s", p.DateFirstPrescribed)
	}
	if !p.DateLastModified.Equal(today) {
		t.Fatalf("expected DateLastModified today, got %s", p.DateLastModified)
	}
	if p.DateLastAdministered != nil {
		t.Fatalf("expected nil DateLastAdministered on create")
	}
}

func TestService_Create_Validation(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, fixedNow)

	one := 1
	cases := []struct {
		name string
		in   CreateInput
	}{
		{"empty name", CreateInput{CompoundName: "   ", Amount: 10}},
		{"negative amount", CreateInput{CompoundName: "X", Amount: -1}},
		{"bad unit", CreateInput{CompoundName: "X", Amount: 1, Unit: "kg"}},
		{"bad frequency", CreateInput{CompoundName: "X", Amount: 1, Frequency: "hourly"}},
		{"cycling on without off", CreateInput{CompoundName: "X", Amount: 1, CyclingOn: &one}},
		{"cycling off without on", CreateInput{CompoundName: "X", Amount: 1, CyclingOff: &one}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), "person-1", tc.in); err != ErrInvalidInput {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestService_Create_CyclingPolicyBounds(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, fixedNow)

	mk := func(on, off int) CreateInput {
		return CreateInput{CompoundName: "X", Amount: 1, CyclingOn: &on, CyclingOff: &off}
	}

	// dentro de los límites por defecto (30/180)
	if _, err := svc.Create(context.Background(), "p", mk(30, 180)); err != nil {
		t.Fatalf("expected max bounds to pass, got %v", err)
	}

	for _, in := range []CreateInput{mk(0, 5), mk(5, 0), mk(31, 5), mk(5, 181)} {
		if _, err := svc.Create(context.Background(), "p", in); err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput for out-of-bounds cycling, got %v", err)
		}
	}

	// política relajada: un máximo en cero solo exige >= 1
	svc.SetCyclingPolicy(CyclingPolicy{})
	if _, err := svc.Create(context.Background(), "p", mk(90, 365)); err != nil {
		t.Fatalf("expected relaxed policy to pass, got %v", err)
	}
}

func TestService_Update_AutoTouchesLastModified(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, fixedNow)

	first := day(2025, time.January, 1)
	p, err := svc.Create(context.Background(), "person-1", CreateInput{
		CompoundName:        "Magnesium",
		Amount:              400,
		DateFirstPrescribed: &first,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	newAmount := 500
	updated, err := svc.Update(context.Background(), p.ID, UpdateInput{Amount: &newAmount})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if updated.Amount != 500 {
		t.Fatalf("expected amount 500, got %d", updated.Amount)
	}
	// sin bloque de fechas, DateLastModified pasa a hoy y el ancla no se toca
	if !updated.DateLastModified.Equal(day(2025, time.June, 10)) {
		t.Fatalf("expected DateLastModified auto-updated, got %s", updated.DateLastModified)
	}
	if !updated.DateFirstPrescribed.Equal(first) {
		t.Fatalf("expected anchor untouched, got %s", updated.DateFirstPrescribed)
	}
}

func TestService_Update_ExplicitDates_PersistedVerbatim(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, fixedNow)

	p, err := svc.Create(context.Background(), "person-1", CreateInput{
		CompoundName: "Magnesium",
		Amount:       400,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	first := day(2024, time.March, 1)
	modified := day(2024, time.March, 5)
	admin := day(2024, time.April, 2)

	updated, err := svc.Update(context.Background(), p.ID, UpdateInput{
		Dates: &DatesInput{
			FirstPrescribed:  first,
			LastModified:     modified,
			LastAdministered: &admin,
		},
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	// edición explícita: las tres fechas tal cual, sin auto-update
	if !updated.DateFirstPrescribed.Equal(first) {
		t.Fatalf("expected explicit DateFirstPrescribed, got %s", updated.DateFirstPrescribed)
	}
	if !updated.DateLastModified.Equal(modified) {
		t.Fatalf("expected explicit DateLastModified, got %s", updated.DateLastModified)
	}
	if updated.DateLastAdministered == nil || !updated.DateLastAdministered.Equal(admin) {
		t.Fatalf("expected explicit DateLastAdministered, got %v", updated.DateLastAdministered)
	}

	// y con LastAdministered nil la fecha se limpia
	cleared, err := svc.Update(context.Background(), p.ID, UpdateInput{
		Dates: &DatesInput{FirstPrescribed: first, LastModified: modified},
	})
	if err != nil {
		t.Fatalf("Update #2 error: %v", err)
	}
	if cleared.DateLastAdministered != nil {
		t.Fatalf("expected DateLastAdministered cleared, got %v", cleared.DateLastAdministered)
	}
}

func TestService_Update_ClearCycling(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, fixedNow)

	on, off := 5, 2
	p, err := svc.Create(context.Background(), "person-1", CreateInput{
		CompoundName: "Testosterone",
		Amount:       100,
		CyclingOn:    &on,
		CyclingOff:   &off,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.Cycling == nil {
		t.Fatalf("expected cycling set on create")
	}

	updated, err := svc.Update(context.Background(), p.ID, UpdateInput{ClearCycling: true})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Cycling != nil {
		t.Fatalf("expected cycling cleared, got %+v", updated.Cycling)
	}
}

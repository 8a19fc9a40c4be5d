package doses

import (
	"context"
	"errors"
	"strings"
	"time"

	"know-your-doses/internal/domain/prescriptions"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoDosesRemaining: se intentó administrar cuando no queda ningún
	// slot para el día. La operación falla sin tocar el libro.
	ErrNoDosesRemaining = errors.New("no doses remaining")
)

type Service struct {
	repo          Repository
	prescriptions prescriptions.Repository
	now           func() time.Time
}

func NewService(repo Repository, prescRepo prescriptions.Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:          repo,
		prescriptions: prescRepo,
		now:           now,
	}
}

// Today devuelve la medianoche UTC del día del reloj inyectado.
func (s *Service) Today() time.Time {
	return prescriptions.DateOnly(s.now())
}

// Remaining calcula cuántas dosis quedan pendientes para la receta en el
// día dado: esperadas según la regla de recurrencia menos las administradas
// con cantidad positiva. Nunca negativo.
func (s *Service) Remaining(ctx context.Context, p prescriptions.Prescription, day time.Time) (int, error) {
	day = prescriptions.DateOnly(day)

	expected := prescriptions.DueCount(p, day)
	if expected == 0 {
		return 0, nil
	}

	administered, err := s.repo.CountByDay(ctx, p.PersonID, p.ID, day, true)
	if err != nil {
		return 0, err
	}

	remaining := expected - administered
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Administer registra una dosis para la receta en el día dado (cero =>
// hoy). Asigna el número de slot siguiente, copia compound/amount/unit de
// la receta y actualiza date_last_administered. NO es idempotente: cuando
// queda un solo slot, la segunda llamada falla con ErrNoDosesRemaining.
func (s *Service) Administer(ctx context.Context, prescriptionID string, day time.Time) (DoseEvent, error) {
	prescriptionID = strings.TrimSpace(prescriptionID)
	if prescriptionID == "" {
		return DoseEvent{}, ErrInvalidInput
	}

	p, err := s.prescriptions.GetByID(ctx, prescriptionID)
	if err != nil {
		return DoseEvent{}, err
	}

	if day.IsZero() {
		day = s.now()
	}
	day = prescriptions.DateOnly(day)

	expected := prescriptions.DueCount(p, day)
	remaining, err := s.Remaining(ctx, p, day)
	if err != nil {
		return DoseEvent{}, err
	}
	if remaining <= 0 {
		return DoseEvent{}, ErrNoDosesRemaining
	}

	e := DoseEvent{
		ID:               uuid.NewString(),
		PersonID:         p.PersonID,
		PrescriptionID:   p.ID,
		DateAdministered: day,
		CompoundName:     p.CompoundName,
		Amount:           p.Amount,
		Unit:             p.Unit,
		DoseNumber:       expected - remaining + 1,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return DoseEvent{}, err
	}

	p.DateLastAdministered = &day
	if err := s.prescriptions.Update(ctx, p); err != nil {
		return DoseEvent{}, err
	}

	return e, nil
}

// DueItem es una receta con dosis pendientes para un día.
type DueItem struct {
	Prescription prescriptions.Prescription
	Expected     int
	Remaining    int
}

// Due lista las recetas de la persona con dosis pendientes en el día dado.
// Recetas sin dosis esperadas o ya completas no aparecen.
func (s *Service) Due(ctx context.Context, personID string, day time.Time) ([]DueItem, error) {
	personID = strings.TrimSpace(personID)
	if personID == "" {
		return nil, ErrInvalidInput
	}
	day = prescriptions.DateOnly(day)

	items, err := s.prescriptions.ListByPerson(ctx, personID)
	if err != nil {
		return nil, err
	}

	out := make([]DueItem, 0)
	for _, p := range items {
		expected := prescriptions.DueCount(p, day)
		if expected == 0 {
			continue
		}
		remaining, err := s.Remaining(ctx, p, day)
		if err != nil {
			return nil, err
		}
		if remaining <= 0 {
			continue
		}
		out = append(out, DueItem{Prescription: p, Expected: expected, Remaining: remaining})
	}
	return out, nil
}

// BackfillMissed inserta placeholders de cantidad cero para las dosis que
// quedaron sin registrar en el día dado (pensado para "ayer", una vez por
// carga del dashboard). Si ya existe CUALQUIER registro del día para la
// receta — placeholder previo o administración parcial — el día entero se
// salta; ese es el comportamiento histórico y se conserva tal cual.
// Devuelve cuántos placeholders insertó; cero en la segunda pasada.
func (s *Service) BackfillMissed(ctx context.Context, personID string, day time.Time) (int, error) {
	personID = strings.TrimSpace(personID)
	if personID == "" {
		return 0, ErrInvalidInput
	}
	day = prescriptions.DateOnly(day)

	items, err := s.prescriptions.ListByPerson(ctx, personID)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, p := range items {
		expected := prescriptions.DueCount(p, day)
		if expected == 0 {
			continue
		}

		existing, err := s.repo.CountByDay(ctx, p.PersonID, p.ID, day, false)
		if err != nil {
			return inserted, err
		}
		if existing > 0 {
			continue
		}

		for doseNumber := 1; doseNumber <= expected; doseNumber++ {
			e := DoseEvent{
				ID:               uuid.NewString(),
				PersonID:         p.PersonID,
				PrescriptionID:   p.ID,
				DateAdministered: day,
				CompoundName:     p.CompoundName,
				Amount:           0,
				Unit:             p.Unit,
				DoseNumber:       doseNumber,
			}
			if err := s.repo.Create(ctx, e); err != nil {
				return inserted, err
			}
			inserted++
		}
	}
	return inserted, nil
}

// RecordInput es una entrada manual de historial (alta o edición).
type RecordInput struct {
	PrescriptionID   string // opcional, puede quedar vacía
	DateAdministered time.Time
	CompoundName     string
	Amount           int
	Unit             string
	DoseNumber       int // 1..2; cero => 1
}

// RecordManual agrega una entrada de historial a mano, sin pasar por la
// reconciliación (ediciones históricas de la UI).
func (s *Service) RecordManual(ctx context.Context, personID string, in RecordInput) (DoseEvent, error) {
	if strings.TrimSpace(personID) == "" {
		return DoseEvent{}, ErrInvalidInput
	}

	e, err := s.validateRecord(in)
	if err != nil {
		return DoseEvent{}, err
	}
	e.ID = uuid.NewString()
	e.PersonID = personID

	if err := s.repo.Create(ctx, e); err != nil {
		return DoseEvent{}, err
	}
	return e, nil
}

// UpdateManual reemplaza los campos editables de una entrada existente.
func (s *Service) UpdateManual(ctx context.Context, id string, in RecordInput) (DoseEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return DoseEvent{}, ErrInvalidInput
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return DoseEvent{}, err
	}

	e, err := s.validateRecord(in)
	if err != nil {
		return DoseEvent{}, err
	}
	e.ID = existing.ID
	e.PersonID = existing.PersonID
	if e.PrescriptionID == "" {
		e.PrescriptionID = existing.PrescriptionID
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return DoseEvent{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (DoseEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return DoseEvent{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPerson(ctx context.Context, personID string, filter ListFilter) ([]DoseEvent, error) {
	return s.repo.ListByPerson(ctx, personID, filter)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) validateRecord(in RecordInput) (DoseEvent, error) {
	name := strings.Join(strings.Fields(in.CompoundName), " ")
	if name == "" {
		return DoseEvent{}, ErrInvalidInput
	}
	if in.Amount < 0 {
		return DoseEvent{}, ErrInvalidInput
	}
	if in.DateAdministered.IsZero() {
		return DoseEvent{}, ErrInvalidInput
	}

	unit := prescriptions.Unit(strings.TrimSpace(in.Unit))
	if !unit.Valid() {
		return DoseEvent{}, ErrInvalidInput
	}

	doseNumber := in.DoseNumber
	if doseNumber == 0 {
		doseNumber = 1
	}
	if doseNumber < 1 || doseNumber > 2 {
		return DoseEvent{}, ErrInvalidInput
	}

	return DoseEvent{
		PrescriptionID:   strings.TrimSpace(in.PrescriptionID),
		DateAdministered: prescriptions.DateOnly(in.DateAdministered),
		CompoundName:     name,
		Amount:           in.Amount,
		Unit:             unit,
		DoseNumber:       doseNumber,
	}, nil
}

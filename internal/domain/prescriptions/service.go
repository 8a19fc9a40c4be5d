package prescriptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// CyclingPolicy acota los parámetros de ciclado. Los límites quedan como
// configuración en vez de constantes: un máximo en cero significa
// "solo se exige >= 1".
type CyclingPolicy struct {
	MaxOn  int
	MaxOff int
}

// DefaultCyclingPolicy usa los límites de la revisión más estricta.
var DefaultCyclingPolicy = CyclingPolicy{MaxOn: 30, MaxOff: 180}

const defaultIcon = "💊"

type Service struct {
	repo   Repository
	policy CyclingPolicy
	now    func() time.Time
}

func NewService(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:   repo,
		policy: DefaultCyclingPolicy,
		now:    now,
	}
}

func (s *Service) SetCyclingPolicy(p CyclingPolicy) {
	s.policy = p
}

type CreateInput struct {
	CompoundName string
	Amount       int
	Unit         string
	Frequency    string
	CyclingOn    *int
	CyclingOff   *int
	IconType     string

	// Opcional; por defecto la fecha actual.
	DateFirstPrescribed *time.Time
}

func (s *Service) Create(ctx context.Context, personID string, in CreateInput) (Prescription, error) {
	if strings.TrimSpace(personID) == "" {
		return Prescription{}, ErrInvalidInput
	}

	name := collapseSpaces(in.CompoundName)
	if name == "" {
		return Prescription{}, ErrInvalidInput
	}
	if in.Amount < 0 {
		return Prescription{}, ErrInvalidInput
	}

	unit := Unit(strings.TrimSpace(in.Unit))
	if unit == "" {
		unit = UnitMg
	}
	if !unit.Valid() {
		return Prescription{}, ErrInvalidInput
	}

	freq := Frequency(strings.TrimSpace(in.Frequency))
	if freq == "" {
		freq = FrequencyDaily
	}
	if !freq.Valid() {
		return Prescription{}, ErrInvalidInput
	}

	cycling, err := s.cyclingFrom(in.CyclingOn, in.CyclingOff)
	if err != nil {
		return Prescription{}, err
	}

	icon := strings.TrimSpace(in.IconType)
	if icon == "" {
		icon = defaultIcon
	}

	today := DateOnly(s.now())
	first := today
	if in.DateFirstPrescribed != nil {
		first = DateOnly(*in.DateFirstPrescribed)
	}

	p := Prescription{
		ID:                  uuid.NewString(),
		PersonID:            personID,
		CompoundName:        name,
		Amount:              in.Amount,
		Unit:                unit,
		Frequency:           freq,
		Cycling:             cycling,
		IconType:            icon,
		DateFirstPrescribed: first,
		DateLastModified:    today,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Prescription{}, err
	}
	return p, nil
}

// DatesInput agrupa las tres fechas de la receta para edición explícita.
type DatesInput struct {
	FirstPrescribed  time.Time
	LastModified     time.Time
	LastAdministered *time.Time
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	CompoundName *string
	Amount       *int
	Unit         *string
	Frequency    *string
	CyclingOn    *int
	CyclingOff   *int
	ClearCycling bool
	IconType     *string

	// Dates != nil significa que el usuario tocó explícitamente alguna
	// fecha: las tres se persisten tal cual y se suprime el auto-update
	// de DateLastModified. Con Dates == nil, DateLastModified pasa a hoy.
	Dates *DatesInput
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Prescription, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Prescription{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Prescription{}, err
	}

	if in.CompoundName != nil {
		name := collapseSpaces(*in.CompoundName)
		if name == "" {
			return Prescription{}, ErrInvalidInput
		}
		p.CompoundName = name
	}
	if in.Amount != nil {
		if *in.Amount < 0 {
			return Prescription{}, ErrInvalidInput
		}
		p.Amount = *in.Amount
	}
	if in.Unit != nil {
		unit := Unit(strings.TrimSpace(*in.Unit))
		if !unit.Valid() {
			return Prescription{}, ErrInvalidInput
		}
		p.Unit = unit
	}
	if in.Frequency != nil {
		freq := Frequency(strings.TrimSpace(*in.Frequency))
		if !freq.Valid() {
			return Prescription{}, ErrInvalidInput
		}
		p.Frequency = freq
	}

	switch {
	case in.ClearCycling:
		p.Cycling = nil
	case in.CyclingOn != nil || in.CyclingOff != nil:
		cycling, err := s.cyclingFrom(in.CyclingOn, in.CyclingOff)
		if err != nil {
			return Prescription{}, err
		}
		p.Cycling = cycling
	}

	if in.IconType != nil {
		icon := strings.TrimSpace(*in.IconType)
		if icon == "" {
			icon = defaultIcon
		}
		p.IconType = icon
	}

	if in.Dates != nil {
		p.DateFirstPrescribed = DateOnly(in.Dates.FirstPrescribed)
		p.DateLastModified = DateOnly(in.Dates.LastModified)
		if in.Dates.LastAdministered != nil {
			d := DateOnly(*in.Dates.LastAdministered)
			p.DateLastAdministered = &d
		} else {
			p.DateLastAdministered = nil
		}
	} else {
		p.DateLastModified = DateOnly(s.now())
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return Prescription{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Prescription, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Prescription{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPerson(ctx context.Context, personID string) ([]Prescription, error) {
	return s.repo.ListByPerson(ctx, personID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// cyclingFrom valida ambos-o-ninguno y los límites de la política.
func (s *Service) cyclingFrom(on, off *int) (*CyclingRule, error) {
	if on == nil && off == nil {
		return nil, nil
	}
	if on == nil || off == nil {
		return nil, ErrInvalidInput
	}
	if *on < 1 || *off < 1 {
		return nil, ErrInvalidInput
	}
	if s.policy.MaxOn > 0 && *on > s.policy.MaxOn {
		return nil, ErrInvalidInput
	}
	if s.policy.MaxOff > 0 && *off > s.policy.MaxOff {
		return nil, ErrInvalidInput
	}
	return &CyclingRule{On: *on, Off: *off}, nil
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"know-your-doses/internal/domain/doses"
)

type dosesRepo struct {
	mu   sync.RWMutex
	byID map[string]doses.DoseEvent
}

func NewDosesRepo() doses.Repository {
	return &dosesRepo{
		byID: make(map[string]doses.DoseEvent),
	}
}

func (r *dosesRepo) Create(ctx context.Context, e doses.DoseEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("dose id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("dose already exists")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *dosesRepo) GetByID(ctx context.Context, id string) (doses.DoseEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return doses.DoseEvent{}, ErrNotFound
	}
	return e, nil
}

func (r *dosesRepo) Update(ctx context.Context, e doses.DoseEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[e.ID]; !exists {
		return ErrNotFound
	}
	r.byID[e.ID] = e
	return nil
}

func (r *dosesRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *dosesRepo) CountByDay(ctx context.Context, personID, prescriptionID string, day time.Time, onlyPositive bool) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, e := range r.byID {
		if e.PersonID != personID || e.PrescriptionID != prescriptionID {
			continue
		}
		if !e.DateAdministered.Equal(day) {
			continue
		}
		if onlyPositive && e.Amount <= 0 {
			continue
		}
		count++
	}
	return count, nil
}

func (r *dosesRepo) ListByPerson(ctx context.Context, personID string, filter doses.ListFilter) ([]doses.DoseEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	out := make([]doses.DoseEvent, 0)
	for _, e := range r.byID {
		if e.PersonID != personID {
			continue
		}
		if filter.CompoundName != "" && e.CompoundName != filter.CompoundName {
			continue
		}
		out = append(out, e)
	}

	// Más reciente primero; slot ascendente dentro del día.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateAdministered.Equal(out[j].DateAdministered) {
			return out[i].DateAdministered.After(out[j].DateAdministered)
		}
		return out[i].DoseNumber < out[j].DoseNumber
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"know-your-doses/internal/domain/prescriptions"
)

type prescriptionsRepo struct {
	mu   sync.RWMutex
	byID map[string]prescriptions.Prescription
}

func NewPrescriptionsRepo() prescriptions.Repository {
	return &prescriptionsRepo{
		byID: make(map[string]prescriptions.Prescription),
	}
}

func (r *prescriptionsRepo) Create(ctx context.Context, p prescriptions.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("prescription id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("prescription already exists")
	}
	r.byID[p.ID] = clonePrescription(p)
	return nil
}

func (r *prescriptionsRepo) Update(ctx context.Context, p prescriptions.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("prescription id required")
	}
	if _, exists := r.byID[p.ID]; !exists {
		return ErrNotFound
	}
	r.byID[p.ID] = clonePrescription(p)
	return nil
}

func (r *prescriptionsRepo) GetByID(ctx context.Context, id string) (prescriptions.Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return prescriptions.Prescription{}, ErrNotFound
	}
	return clonePrescription(p), nil
}

func (r *prescriptionsRepo) ListByPerson(ctx context.Context, personID string) ([]prescriptions.Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prescriptions.Prescription, 0)
	for _, p := range r.byID {
		if p.PersonID == personID {
			out = append(out, clonePrescription(p))
		}
	}

	// Orden estable para dev/tests: ancla ascendente y nombre como desempate.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateFirstPrescribed.Equal(out[j].DateFirstPrescribed) {
			return out[i].DateFirstPrescribed.Before(out[j].DateFirstPrescribed)
		}
		return out[i].CompoundName < out[j].CompoundName
	})

	return out, nil
}

func (r *prescriptionsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// clonePrescription copia los punteros internos para que el caller no
// comparta memoria con el mapa del repo.
func clonePrescription(p prescriptions.Prescription) prescriptions.Prescription {
	if p.Cycling != nil {
		c := *p.Cycling
		p.Cycling = &c
	}
	if p.DateLastAdministered != nil {
		d := *p.DateLastAdministered
		p.DateLastAdministered = &d
	}
	return p
}

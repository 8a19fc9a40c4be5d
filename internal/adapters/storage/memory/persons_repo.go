package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"know-your-doses/internal/domain/persons"
)

var (
	ErrNotFound = errors.New("not found")
)

type personsRepo struct {
	mu   sync.RWMutex
	byID map[string]persons.Person
}

func NewPersonsRepo() persons.Repository {
	return &personsRepo{
		byID: make(map[string]persons.Person),
	}
}

func (r *personsRepo) Create(ctx context.Context, p persons.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("person id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("person already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *personsRepo) GetByID(ctx context.Context, id string) (persons.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return persons.Person{}, ErrNotFound
	}
	return p, nil
}

func (r *personsRepo) List(ctx context.Context) ([]persons.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]persons.Person, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}

	// Mismo orden que usa la pantalla de inicio: por nombre.
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out, nil
}

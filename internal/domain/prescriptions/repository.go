package prescriptions

import "context"

type Repository interface {
	Create(ctx context.Context, p Prescription) error
	Update(ctx context.Context, p Prescription) error
	GetByID(ctx context.Context, id string) (Prescription, error)
	ListByPerson(ctx context.Context, personID string) ([]Prescription, error)

	// Delete borra solo la receta; las dosis históricas quedan con la
	// referencia huérfana (el historial se conserva).
	Delete(ctx context.Context, id string) error
}

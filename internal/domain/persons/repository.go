package persons

import "context"

type Repository interface {
	Create(ctx context.Context, p Person) error
	GetByID(ctx context.Context, id string) (Person, error)
	List(ctx context.Context) ([]Person, error)
}

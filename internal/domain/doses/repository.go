package doses

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e DoseEvent) error
	GetByID(ctx context.Context, id string) (DoseEvent, error)
	Update(ctx context.Context, e DoseEvent) error
	Delete(ctx context.Context, id string) error

	// CountByDay cuenta entradas para (persona, receta, día). Con
	// onlyPositive se excluyen los placeholders de dosis omitida.
	CountByDay(ctx context.Context, personID, prescriptionID string, day time.Time, onlyPositive bool) (int, error)

	ListByPerson(ctx context.Context, personID string, filter ListFilter) ([]DoseEvent, error)
}

type ListFilter struct {
	// CompoundName filtra por nombre exacto ("" = todos).
	CompoundName string
	Limit        int
}

package doses

import (
	"time"

	"know-your-doses/internal/domain/prescriptions"
)

// DoseEvent es una entrada del libro de administraciones. Los campos de la
// receta (compound/amount/unit) se capturan al momento de administrar y no
// se re-derivan después: si la receta cambia o se borra, el historial queda.
//
// Una entrada con Amount == 0 es un placeholder de dosis omitida; no hay
// campo de estado aparte.
type DoseEvent struct {
	ID       string
	PersonID string

	// Referencia débil: vacía si la dosis se cargó a mano o si la receta
	// fue borrada después.
	PrescriptionID string

	DateAdministered time.Time

	CompoundName string
	Amount       int
	Unit         prescriptions.Unit

	// Slot 1-based dentro del día; solo twice-daily llega a 2.
	DoseNumber int
}

// Missed indica si la entrada es un placeholder de dosis omitida.
func (e DoseEvent) Missed() bool {
	return e.Amount == 0
}

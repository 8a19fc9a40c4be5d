package doses

import (
	"context"
	"strings"
	"time"

	"know-your-doses/internal/domain/prescriptions"
)

// AggregatedDose acumula las dosis esperadas de un compuesto en una ventana.
type AggregatedDose struct {
	CompoundName string
	Unit         prescriptions.Unit
	TotalDoses   int
	TotalAmount  float64
}

// Upcoming suma las dosis esperadas por compuesto en [from, from+days).
// Los buckets se indexan SOLO por nombre de compuesto: dos recetas con el
// mismo nombre se funden y la unidad que queda es la primera vista, sin
// validación cruzada.
//
// Tras acumular corre una pasada de normalización de presentación:
// mcg con total > 1000 se convierte a mg dividiendo por 1000. Es solo para
// mostrar; los datos almacenados no cambian.
func (s *Service) Upcoming(ctx context.Context, personID string, from time.Time, days int) ([]AggregatedDose, error) {
	personID = strings.TrimSpace(personID)
	if personID == "" || days <= 0 {
		return nil, ErrInvalidInput
	}
	from = prescriptions.DateOnly(from)

	items, err := s.prescriptions.ListByPerson(ctx, personID)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]AggregatedDose)
	order := make([]string, 0)

	for offset := 0; offset < days; offset++ {
		day := from.AddDate(0, 0, offset)
		for _, p := range items {
			due := prescriptions.DueCount(p, day)
			if due == 0 {
				continue
			}

			b, ok := buckets[p.CompoundName]
			if !ok {
				b = AggregatedDose{CompoundName: p.CompoundName, Unit: p.Unit}
				order = append(order, p.CompoundName)
			}
			b.TotalDoses += due
			b.TotalAmount += float64(due * p.Amount)
			buckets[p.CompoundName] = b
		}
	}

	out := make([]AggregatedDose, 0, len(order))
	for _, name := range order {
		out = append(out, normalizeDisplayUnit(buckets[name]))
	}
	return out, nil
}

func normalizeDisplayUnit(b AggregatedDose) AggregatedDose {
	if b.Unit == prescriptions.UnitMcg && b.TotalAmount > 1000 {
		b.Unit = prescriptions.UnitMg
		b.TotalAmount = b.TotalAmount / 1000.0
	}
	return b
}

package prescriptions

import "time"

// CyclingRule describe un ciclo on/off. Las unidades dependen de la
// frecuencia: días para daily/twice-daily, semanas para la familia semanal.
// Ambos campos presentes o ninguno; eso se valida en el service.
type CyclingRule struct {
	On  int
	Off int
}

// Prescription es una regla de recurrencia más los metadatos de dosificación.
type Prescription struct {
	ID       string
	PersonID string

	CompoundName string
	Amount       int // cantidad por dosis, no negativa
	Unit         Unit
	Frequency    Frequency
	Cycling      *CyclingRule
	IconType     string

	// DateFirstPrescribed es el ancla de toda la aritmética de recurrencia.
	DateFirstPrescribed  time.Time
	DateLastModified     time.Time
	DateLastAdministered *time.Time // cache desnormalizada, se actualiza al administrar
}

// DateOnly recorta a medianoche UTC. Toda fecha de calendario del dominio
// se maneja así para que la resta de días sea exacta.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

package persons

import "time"

// Person es solo identidad: a quién pertenecen recetas y dosis.
// No tiene comportamiento propio.
type Person struct {
	ID   string
	Name string

	DateAdded time.Time
}

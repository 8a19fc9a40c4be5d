package clock

import (
	"os"
	"strconv"
	"time"
)

// Clock entrega la fecha "actual" con un desfase simulado en días.
// El desfase existe solo para probar pasado/futuro; el resto del código
// recibe Now como func() time.Time inyectada, nunca lee estado global.
type Clock struct {
	offsetDays int
	base       func() time.Time
}

func New(offsetDays int) *Clock {
	return &Clock{
		offsetDays: offsetDays,
		base:       time.Now,
	}
}

// NewFromEnv lee CLOCK_OFFSET_DAYS (entero, puede ser negativo).
// Un valor inválido o ausente deja el desfase en cero.
func NewFromEnv() *Clock {
	offset := 0
	if v := os.Getenv("CLOCK_OFFSET_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	return New(offset)
}

func (c *Clock) Now() time.Time {
	return c.base().AddDate(0, 0, c.offsetDays)
}

// Today devuelve la medianoche UTC del día simulado.
func (c *Clock) Today() time.Time {
	now := c.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

package prescriptions

import "time"

// DueCount calcula cuántas dosis corresponden a una receta en una fecha
// dada: 0, 1 o 2 (solo twice-daily llega a 2). Función pura, total sobre
// cualquier entrada válida; fechas anteriores al ancla siempre dan 0.
func DueCount(p Prescription, date time.Time) int {
	day := DateOnly(date)
	anchor := DateOnly(p.DateFirstPrescribed)

	if day.Before(anchor) {
		return 0
	}

	// El ciclado solo invalida (fase OFF => 0); nunca agrega dosis.
	if p.Cycling != nil && p.Frequency.SupportsCycling() && inOffPhase(p, day, anchor) {
		return 0
	}

	switch p.Frequency {
	case FrequencyDaily:
		return 1
	case FrequencyTwiceDaily:
		return 2
	case FrequencyWeekly:
		if day.Weekday() == anchor.Weekday() {
			return 1
		}
	case FrequencyMonWedFri, FrequencyMonThu, FrequencyWeekdays:
		for _, wd := range p.Frequency.weekdaySet() {
			if day.Weekday() == wd {
				return 1
			}
		}
	case FrequencyMonthly:
		if matchesAnchorDay(day, anchor) {
			return 1
		}
	case FrequencyQuarterly:
		monthsDiff := (day.Year()-anchor.Year())*12 + int(day.Month()) - int(anchor.Month())
		if monthsDiff%3 == 0 && matchesAnchorDay(day, anchor) {
			return 1
		}
	}

	return 0
}

// inOffPhase: fase dentro del ciclo on+off, en días o semanas según la
// familia de frecuencia. OFF cuando la fase alcanza la parte "on".
func inOffPhase(p Prescription, day, anchor time.Time) bool {
	cycleLen := p.Cycling.On + p.Cycling.Off
	if cycleLen <= 0 {
		return false
	}

	sinceAnchor := daysBetween(anchor, day)
	phase := sinceAnchor % cycleLen
	if p.Frequency.weekBased() {
		phase = (sinceAnchor / 7) % cycleLen
	}
	return phase >= p.Cycling.On
}

// matchesAnchorDay: mismo día del mes que el ancla, con ajuste a fin de mes
// cuando el día del ancla no existe en el mes actual (p.ej. ancla 31 en febrero).
func matchesAnchorDay(day, anchor time.Time) bool {
	if day.Day() == anchor.Day() {
		return true
	}
	last := lastDayOfMonth(day)
	return day.Day() == last && anchor.Day() > last
}

// lastDayOfMonth: día 28 + 4 días cae siempre en el mes siguiente;
// restar su día del mes devuelve el último día del mes original.
// Robusto frente a bisiestos sin tabla de longitudes.
func lastDayOfMonth(d time.Time) int {
	next := time.Date(d.Year(), d.Month(), 28, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 4)
	return next.AddDate(0, 0, -next.Day()).Day()
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

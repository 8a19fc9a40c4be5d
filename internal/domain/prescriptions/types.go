package prescriptions

import "time"

// Frequency define los esquemas de recurrencia soportados.
// Conjunto cerrado: el mismo que ofrecía el selector de la UI.
// @Enum daily, twice-daily, weekly, mon-wed-fri, mon-thu, weekdays, monthly, quarterly
type Frequency string

const (
	FrequencyDaily      Frequency = "daily"
	FrequencyTwiceDaily Frequency = "twice-daily"
	FrequencyWeekly     Frequency = "weekly"
	FrequencyMonWedFri  Frequency = "mon-wed-fri"
	FrequencyMonThu     Frequency = "mon-thu"
	FrequencyWeekdays   Frequency = "weekdays"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyTwiceDaily, FrequencyWeekly,
		FrequencyMonWedFri, FrequencyMonThu, FrequencyWeekdays,
		FrequencyMonthly, FrequencyQuarterly:
		return true
	}
	return false
}

// SupportsCycling indica si la frecuencia admite ciclado on/off.
// Para monthly/quarterly los parámetros de ciclado se ignoran aunque existan.
func (f Frequency) SupportsCycling() bool {
	switch f {
	case FrequencyDaily, FrequencyTwiceDaily:
		return true
	}
	return f.weekBased()
}

// weekBased: la familia semanal cicla en semanas, no en días.
func (f Frequency) weekBased() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonWedFri, FrequencyMonThu, FrequencyWeekdays:
		return true
	}
	return false
}

// weekdaySet devuelve los días de la semana fijos de las variantes con set,
// o nil si la frecuencia no es de ese tipo.
func (f Frequency) weekdaySet() []time.Weekday {
	switch f {
	case FrequencyMonWedFri:
		return []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	case FrequencyMonThu:
		return []time.Weekday{time.Monday, time.Thursday}
	case FrequencyWeekdays:
		return []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	}
	return nil
}

// Unit define las unidades de dosis soportadas.
// @Enum mg, mcg, ml, set
type Unit string

const (
	UnitMg  Unit = "mg"
	UnitMcg Unit = "mcg"
	UnitMl  Unit = "ml"
	UnitSet Unit = "set"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitMg, UnitMcg, UnitMl, UnitSet:
		return true
	}
	return false
}

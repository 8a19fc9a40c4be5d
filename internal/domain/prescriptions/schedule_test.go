package prescriptions

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDueCount_BeforeAnchor_AlwaysZero(t *testing.T) {
	anchor := day(2024, time.March, 10)
	before := day(2024, time.March, 9)

	freqs := []Frequency{
		FrequencyDaily, FrequencyTwiceDaily, FrequencyWeekly,
		FrequencyMonWedFri, FrequencyMonThu, FrequencyWeekdays,
		FrequencyMonthly, FrequencyQuarterly,
	}
	for _, f := range freqs {
		p := Prescription{Frequency: f, DateFirstPrescribed: anchor}
		if got := DueCount(p, before); got != 0 {
			t.Fatalf("%s: expected 0 before anchor, got %d", f, got)
		}
	}
}

func TestDueCount_DailyAndTwiceDaily(t *testing.T) {
	anchor := day(2024, time.January, 15)

	daily := Prescription{Frequency: FrequencyDaily, DateFirstPrescribed: anchor}
	twice := Prescription{Frequency: FrequencyTwiceDaily, DateFirstPrescribed: anchor}

	for offset := 0; offset < 10; offset++ {
		d := anchor.AddDate(0, 0, offset)
		if got := DueCount(daily, d); got != 1 {
			t.Fatalf("daily offset %d: expected 1, got %d", offset, got)
		}
		if got := DueCount(twice, d); got != 2 {
			t.Fatalf("twice-daily offset %d: expected 2, got %d", offset, got)
		}
	}

	// el mismo día del ancla ya cuenta
	if got := DueCount(daily, anchor); got != 1 {
		t.Fatalf("daily on anchor: expected 1, got %d", got)
	}
}

func TestDueCount_Weekly_OnlyAnchorWeekday(t *testing.T) {
	// 2024-01-15 es lunes
	anchor := day(2024, time.January, 15)
	p := Prescription{Frequency: FrequencyWeekly, DateFirstPrescribed: anchor}

	if got := DueCount(p, anchor); got != 1 {
		t.Fatalf("weekly on anchor: expected 1, got %d", got)
	}
	if got := DueCount(p, anchor.AddDate(0, 0, 7)); got != 1 {
		t.Fatalf("weekly +7d: expected 1, got %d", got)
	}
	for offset := 1; offset < 7; offset++ {
		if got := DueCount(p, anchor.AddDate(0, 0, offset)); got != 0 {
			t.Fatalf("weekly +%dd: expected 0, got %d", offset, got)
		}
	}
}

func TestDueCount_WeekdaySets(t *testing.T) {
	// 2024-01-01 es lunes; la semana queda lun..dom
	anchor := day(2024, time.January, 1)

	cases := []struct {
		freq Frequency
		due  []int // offsets desde el lunes con dosis
	}{
		{FrequencyMonWedFri, []int{0, 2, 4}},
		{FrequencyMonThu, []int{0, 3}},
		{FrequencyWeekdays, []int{0, 1, 2, 3, 4}},
	}

	for _, tc := range cases {
		p := Prescription{Frequency: tc.freq, DateFirstPrescribed: anchor}
		dueSet := map[int]bool{}
		for _, o := range tc.due {
			dueSet[o] = true
		}
		for offset := 0; offset < 7; offset++ {
			want := 0
			if dueSet[offset] {
				want = 1
			}
			if got := DueCount(p, anchor.AddDate(0, 0, offset)); got != want {
				t.Fatalf("%s offset %d: expected %d, got %d", tc.freq, offset, want, got)
			}
		}
	}
}

func TestDueCount_Monthly_ClampsToMonthEnd(t *testing.T) {
	// ancla día 31: en meses cortos cae el último día del mes
	anchor := day(2024, time.January, 31)
	p := Prescription{Frequency: FrequencyMonthly, DateFirstPrescribed: anchor}

	cases := []struct {
		date time.Time
		want int
	}{
		{day(2024, time.January, 31), 1},
		{day(2024, time.February, 29), 1}, // bisiesto
		{day(2024, time.February, 28), 0},
		{day(2024, time.March, 31), 1},
		{day(2024, time.April, 30), 1},
		{day(2024, time.April, 29), 0},
		{day(2025, time.February, 28), 1}, // no bisiesto
		{day(2024, time.March, 30), 0},
	}
	for _, tc := range cases {
		if got := DueCount(p, tc.date); got != tc.want {
			t.Fatalf("monthly %s: expected %d, got %d", tc.date.Format("2006-01-02"), tc.want, got)
		}
	}
}

func TestDueCount_Quarterly_EveryThreeMonths(t *testing.T) {
	anchor := day(2024, time.January, 15)
	p := Prescription{Frequency: FrequencyQuarterly, DateFirstPrescribed: anchor}

	cases := []struct {
		date time.Time
		want int
	}{
		{day(2024, time.January, 15), 1},
		{day(2024, time.February, 15), 0},
		{day(2024, time.March, 15), 0},
		{day(2024, time.April, 15), 1},
		{day(2024, time.July, 15), 1},
		{day(2024, time.October, 15), 1},
		{day(2025, time.January, 15), 1},
		{day(2024, time.April, 16), 0},
	}
	for _, tc := range cases {
		if got := DueCount(p, tc.date); got != tc.want {
			t.Fatalf("quarterly %s: expected %d, got %d", tc.date.Format("2006-01-02"), tc.want, got)
		}
	}
}

func TestDueCount_DailyCycling_DayPhases(t *testing.T) {
	anchor := day(2024, time.January, 1)
	p := Prescription{
		Frequency:           FrequencyDaily,
		Cycling:             &CyclingRule{On: 5, Off: 2},
		DateFirstPrescribed: anchor,
	}

	// ciclo de 7 días: 0..4 ON, 5..6 OFF, y vuelve a empezar
	wants := []int{1, 1, 1, 1, 1, 0, 0, 1, 1, 1, 1, 1, 0, 0, 1}
	for offset, want := range wants {
		if got := DueCount(p, anchor.AddDate(0, 0, offset)); got != want {
			t.Fatalf("daily cycling offset %d: expected %d, got %d", offset, want, got)
		}
	}
}

func TestDueCount_TwiceDailyCycling_OffPhaseDropsBoth(t *testing.T) {
	anchor := day(2024, time.January, 1)
	p := Prescription{
		Frequency:           FrequencyTwiceDaily,
		Cycling:             &CyclingRule{On: 1, Off: 1},
		DateFirstPrescribed: anchor,
	}

	if got := DueCount(p, anchor); got != 2 {
		t.Fatalf("on-day: expected 2, got %d", got)
	}
	if got := DueCount(p, anchor.AddDate(0, 0, 1)); got != 0 {
		t.Fatalf("off-day: expected 0, got %d", got)
	}
	if got := DueCount(p, anchor.AddDate(0, 0, 2)); got != 2 {
		t.Fatalf("next on-day: expected 2, got %d", got)
	}
}

func TestDueCount_WeeklyCycling_WeekPhases(t *testing.T) {
	// 2024-01-01 lunes; ciclo 2 semanas ON + 1 OFF
	anchor := day(2024, time.January, 1)
	p := Prescription{
		Frequency:           FrequencyWeekly,
		Cycling:             &CyclingRule{On: 2, Off: 1},
		DateFirstPrescribed: anchor,
	}

	wants := []int{1, 1, 0, 1, 1, 0} // por semana, evaluado en el lunes
	for week, want := range wants {
		d := anchor.AddDate(0, 0, 7*week)
		if got := DueCount(p, d); got != want {
			t.Fatalf("weekly cycling week %d: expected %d, got %d", week, want, got)
		}
	}

	// dentro de una semana OFF ningún día tiene dosis
	offMonday := anchor.AddDate(0, 0, 14)
	for offset := 0; offset < 7; offset++ {
		if got := DueCount(p, offMonday.AddDate(0, 0, offset)); got != 0 {
			t.Fatalf("weekly cycling off-week +%dd: expected 0, got %d", offset, got)
		}
	}
}

func TestDueCount_CyclingIgnoredForMonthly(t *testing.T) {
	anchor := day(2024, time.January, 15)
	p := Prescription{
		Frequency:           FrequencyMonthly,
		Cycling:             &CyclingRule{On: 1, Off: 1},
		DateFirstPrescribed: anchor,
	}

	// monthly no admite ciclado: los parámetros presentes no invalidan nada
	if got := DueCount(p, day(2024, time.February, 15)); got != 1 {
		t.Fatalf("monthly with cycling params: expected 1, got %d", got)
	}
}

func TestLastDayOfMonth(t *testing.T) {
	cases := []struct {
		date time.Time
		want int
	}{
		{day(2024, time.February, 1), 29},
		{day(2025, time.February, 1), 28},
		{day(2024, time.April, 10), 30},
		{day(2024, time.December, 31), 31},
	}
	for _, tc := range cases {
		if got := lastDayOfMonth(tc.date); got != tc.want {
			t.Fatalf("lastDayOfMonth(%s): expected %d, got %d", tc.date.Format("2006-01"), tc.want, got)
		}
	}
}

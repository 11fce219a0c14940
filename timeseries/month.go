package timeseries

import "time"

// MonthStart truncates t to midnight UTC on the first day of its month.
// The calendar month is taken in t's own location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths returns the first of the month n months after t's month.
func AddMonths(t time.Time, n int) time.Time {
	return MonthStart(t).AddDate(0, n, 0)
}

// MonthsBetween counts whole calendar months from a to b (b - a).
func MonthsBetween(a, b time.Time) int {
	a, b = MonthStart(a), MonthStart(b)
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// MonthRange returns every month start from start to end inclusive.
// It returns nil when end precedes start.
func MonthRange(start, end time.Time) []time.Time {
	n := MonthsBetween(start, end)
	if n < 0 {
		return nil
	}
	months := make([]time.Time, n+1)
	for i := range months {
		months[i] = AddMonths(start, i)
	}
	return months
}

// FillGaps returns a copy of values where entries with present[i] == false
// are replaced: first with the nearest earlier present value (forward fill),
// then for leading gaps with the nearest later present value (backward
// fill). If nothing is present every entry becomes zero.
func FillGaps(values []float64, present []bool) []float64 {
	out := make([]float64, len(values))
	filled := make([]bool, len(values))

	have := false
	last := 0.0
	for i := range values {
		if i < len(present) && present[i] {
			last, have = values[i], true
		}
		if have {
			out[i], filled[i] = last, true
		}
	}

	next, have := 0.0, false
	for i := len(values) - 1; i >= 0; i-- {
		if i < len(present) && present[i] {
			next, have = values[i], true
		}
		if !filled[i] && have {
			out[i], filled[i] = next, true
		}
	}

	// Anything still unfilled stays at the zero value.
	return out
}

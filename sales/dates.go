package sales

import (
	"errors"
	"fmt"
	"time"
)

// DateStrategy is a named list of layouts tried in order. A strategy applies
// to a whole column: it is accepted only when every value parses with one
// of its layouts.
type DateStrategy struct {
	Name    string
	Layouts []string
}

// DefaultDateStrategies returns the strategies tried for the order date
// column: month-first, then day-first, then a mixed set of common layouts.
func DefaultDateStrategies() []DateStrategy {
	return []DateStrategy{
		{Name: "us", Layouts: []string{"1/2/2006", "1-2-2006"}},
		{Name: "european", Layouts: []string{"2/1/2006", "2.1.2006", "2-1-2006"}},
		{Name: "mixed", Layouts: []string{
			"2006-01-02",
			time.RFC3339,
			"2006-01-02 15:04:05",
			"2006-01-02T15:04:05",
			"2006/01/02",
			"1/2/2006",
			"2/1/2006",
			"02-Jan-2006",
			"Jan 2, 2006",
			"January 2, 2006",
		}},
	}
}

// ErrNoDateStrategy is returned when no strategy parses a date column.
var ErrNoDateStrategy = errors.New("no date strategy matched")

// Parse parses a single value with the strategy's layouts.
func (s DateStrategy) Parse(value string) (time.Time, error) {
	for _, layout := range s.Layouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: cannot parse %q", s.Name, value)
}

// parseDateColumn parses values with the first strategy that accepts all of
// them. When none does, the returned ParseError names the first value the
// last strategy rejected.
func parseDateColumn(column string, values []string, strategies []DateStrategy) ([]time.Time, string, error) {
	var failed *ParseError
	for _, s := range strategies {
		out := make([]time.Time, len(values))
		ok := true
		for i, v := range values {
			ts, err := s.Parse(v)
			if err != nil {
				failed = &ParseError{Column: column, Row: i + 1, Value: v, Err: ErrNoDateStrategy}
				ok = false
				break
			}
			out[i] = ts.UTC()
		}
		if ok {
			return out, s.Name, nil
		}
	}
	if failed == nil {
		return nil, "", &ParseError{Column: column, Err: ErrNoDateStrategy}
	}
	return nil, "", failed
}

// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"math"
	"time"
)

// Series represents a time series with timestamps and values.
// Timestamps may be nil for index-only series.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a new index-only time series from values.
func New(values []float64) *Series {
	return &Series{Values: values}
}

// NewMonthly creates a series whose i-th value is stamped with the month
// i months after start. start is normalized to the first of its month.
func NewMonthly(start time.Time, values []float64) *Series {
	return &Series{
		Timestamps: MonthRange(start, AddMonths(start, len(values)-1)),
		Values:     values,
	}
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the series. An empty series has mean 0.
func (s *Series) Mean() float64 {
	return mean(s.Values)
}

// Variance calculates the sample variance of the series.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	m := s.Mean()
	sumSq := 0.0
	for _, v := range s.Values {
		diff := v - m
		sumSq += diff * diff
	}
	return sumSq / float64(len(s.Values)-1)
}

// Std calculates the standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// ArgMax returns the index of the first maximum value, or -1 if empty.
func (s *Series) ArgMax() int {
	return argBest(s.Values, func(a, b float64) bool { return a > b })
}

// ArgMin returns the index of the first minimum value, or -1 if empty.
func (s *Series) ArgMin() int {
	return argBest(s.Values, func(a, b float64) bool { return a < b })
}

func argBest(values []float64, better func(a, b float64) bool) int {
	if len(values) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(values); i++ {
		if better(values[i], values[best]) {
			best = i
		}
	}
	return best
}

// Diff calculates the first difference of the series (d=1).
func (s *Series) Diff() *Series {
	return s.DiffN(1)
}

// DiffN calculates the n-th lag difference of the series.
func (s *Series) DiffN(n int) *Series {
	if n <= 0 || len(s.Values) <= n {
		return &Series{Values: []float64{}}
	}

	result := make([]float64, len(s.Values)-n)
	for i := n; i < len(s.Values); i++ {
		result[i-n] = s.Values[i] - s.Values[i-n]
	}

	var timestamps []time.Time
	if len(s.Timestamps) == len(s.Values) {
		timestamps = make([]time.Time, len(result))
		copy(timestamps, s.Timestamps[n:])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name + "_diff",
	}
}

// Slice returns a copy of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}, Name: s.Name}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	var timestamps []time.Time
	if len(s.Timestamps) >= end {
		timestamps = make([]time.Time, len(values))
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Tail returns the last n observations, or the whole series if shorter.
func (s *Series) Tail(n int) *Series {
	return s.Slice(len(s.Values)-n, len(s.Values))
}

// Last returns the timestamp of the final observation and false when the
// series has no timestamps.
func (s *Series) Last() (time.Time, bool) {
	if len(s.Timestamps) == 0 || len(s.Timestamps) != len(s.Values) {
		return time.Time{}, false
	}
	return s.Timestamps[len(s.Timestamps)-1], true
}

// AllFinite reports whether every value is neither NaN nor infinite.
func (s *Series) AllFinite() bool {
	for _, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

package timeseries

import (
	"math"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	s := New(values)

	if s.Len() != 5 {
		t.Errorf("Expected length 5, got %d", s.Len())
	}

	for i, v := range s.Values {
		if v != values[i] {
			t.Errorf("Expected value %f at index %d, got %f", values[i], i, v)
		}
	}

	if _, ok := s.Last(); ok {
		t.Error("Index-only series should not report a last timestamp")
	}
}

func TestNewMonthly(t *testing.T) {
	start := time.Date(2023, 11, 17, 8, 0, 0, 0, time.UTC)
	s := NewMonthly(start, []float64{1, 2, 3})

	expected := []time.Time{
		time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if len(s.Timestamps) != len(expected) {
		t.Fatalf("Expected %d timestamps, got %d", len(expected), len(s.Timestamps))
	}
	for i, ts := range expected {
		if !s.Timestamps[i].Equal(ts) {
			t.Errorf("Timestamp %d: expected %v, got %v", i, ts, s.Timestamps[i])
		}
	}

	last, ok := s.Last()
	if !ok || !last.Equal(expected[2]) {
		t.Errorf("Expected last %v, got %v (ok=%v)", expected[2], last, ok)
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"simple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"single", []float64{5}, 5.0},
		{"negative", []float64{-1, -2, -3}, -2.0},
		{"mixed", []float64{-1, 0, 1}, 0.0},
		{"empty", []float64{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.values)
			result := s.Mean()
			if math.Abs(result-tt.expected) > 1e-10 {
				t.Errorf("Expected mean %f, got %f", tt.expected, result)
			}
		})
	}
}

func TestVariance(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	expected := 4.571428571428571

	result := s.Variance()
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Expected variance %f, got %f", expected, result)
	}

	if std := s.Std(); math.Abs(std-math.Sqrt(expected)) > 1e-10 {
		t.Errorf("Expected std %f, got %f", math.Sqrt(expected), std)
	}
}

func TestArgMaxArgMin(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		max, min int
	}{
		{"distinct", []float64{5, 2, 8, 1, 9, 3}, 4, 3},
		{"ties keep first", []float64{3, 9, 1, 9, 1}, 1, 2},
		{"single", []float64{7}, 0, 0},
		{"empty", nil, -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.values)
			if got := s.ArgMax(); got != tt.max {
				t.Errorf("Expected argmax %d, got %d", tt.max, got)
			}
			if got := s.ArgMin(); got != tt.min {
				t.Errorf("Expected argmin %d, got %d", tt.min, got)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	s := New([]float64{1, 3, 6, 10, 15})
	diff := s.Diff()

	expected := []float64{2, 3, 4, 5}
	if len(diff.Values) != len(expected) {
		t.Fatalf("Expected length %d, got %d", len(expected), len(diff.Values))
	}

	for i, v := range diff.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}
}

func TestDiffKeepsTimestamps(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMonthly(start, []float64{1, 2, 4})
	diff := s.Diff()

	if len(diff.Timestamps) != 2 {
		t.Fatalf("Expected 2 timestamps, got %d", len(diff.Timestamps))
	}
	if !diff.Timestamps[0].Equal(AddMonths(start, 1)) {
		t.Errorf("Expected first diff stamp %v, got %v", AddMonths(start, 1), diff.Timestamps[0])
	}
}

func TestSliceAndTail(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5})

	sliced := s.Slice(1, 4)
	expected := []float64{2, 3, 4}
	if len(sliced.Values) != len(expected) {
		t.Fatalf("Expected length %d, got %d", len(expected), len(sliced.Values))
	}
	for i, v := range sliced.Values {
		if v != expected[i] {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}

	if tail := s.Tail(2); tail.Len() != 2 || tail.Values[0] != 4 {
		t.Errorf("Expected tail [4 5], got %v", tail.Values)
	}
	if tail := s.Tail(10); tail.Len() != 5 {
		t.Errorf("Tail longer than series should return all values, got %d", tail.Len())
	}
	if empty := s.Slice(3, 1); empty.Len() != 0 {
		t.Errorf("Expected empty slice, got %v", empty.Values)
	}
}

func TestAllFinite(t *testing.T) {
	if !New([]float64{1, 2}).AllFinite() {
		t.Error("Expected finite series")
	}
	if New([]float64{1, math.NaN()}).AllFinite() {
		t.Error("NaN should not be finite")
	}
	if New([]float64{math.Inf(1)}).AllFinite() {
		t.Error("Inf should not be finite")
	}
}

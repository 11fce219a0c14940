package stats

import (
	"math"
	"testing"
)

func TestErrorMetrics(t *testing.T) {
	actual := []float64{100, 200, 300}
	predicted := []float64{110, 190, 300}

	mae, rmse := ErrorMetrics(actual, predicted)
	if math.Abs(mae-20.0/3) > 1e-10 {
		t.Errorf("Expected MAE %f, got %f", 20.0/3, mae)
	}
	if math.Abs(rmse-math.Sqrt(200.0/3)) > 1e-10 {
		t.Errorf("Expected RMSE %f, got %f", math.Sqrt(200.0/3), rmse)
	}

	if mae, rmse := ErrorMetrics(nil, nil); mae != 0 || rmse != 0 {
		t.Errorf("Expected zeros for empty input, got %f %f", mae, rmse)
	}
}

func TestEvaluateAccuracy(t *testing.T) {
	tests := []struct {
		name      string
		actual    []float64
		predicted []float64
		expected  float64
	}{
		{"perfect", []float64{100, 100}, []float64{100, 100}, 100},
		{"ten percent off", []float64{100, 100}, []float64{110, 90}, 90},
		{"clamped at zero", []float64{10, 10}, []float64{100, 100}, 0},
		{"zero mean uses default", []float64{0, 0}, []float64{5, 5}, DefaultAccuracy},
		{"empty uses default", nil, nil, DefaultAccuracy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := EvaluateAccuracy(tt.actual, tt.predicted)
			if math.Abs(acc.Percent-tt.expected) > 1e-9 {
				t.Errorf("Expected accuracy %f, got %f", tt.expected, acc.Percent)
			}
			if acc.Percent < 0 || acc.Percent > 100 {
				t.Errorf("Accuracy out of range: %f", acc.Percent)
			}
		})
	}
}

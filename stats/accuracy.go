package stats

import "math"

// DefaultAccuracy is reported when the holdout mean is not positive.
// It is a calibration literal, not a statistically derived value.
const DefaultAccuracy = 85.0

// Accuracy holds holdout error metrics for a forecast.
type Accuracy struct {
	MAE     float64
	RMSE    float64
	Percent float64 // max(0, 100*(1 - MAE/mean(actual)))
}

// ErrorMetrics returns the mean absolute error and root mean squared error
// over the first min(len(actual), len(predicted)) pairs.
func ErrorMetrics(actual, predicted []float64) (mae, rmse float64) {
	n := min(len(actual), len(predicted))
	if n == 0 {
		return 0, 0
	}
	for i := 0; i < n; i++ {
		d := actual[i] - predicted[i]
		mae += math.Abs(d)
		rmse += d * d
	}
	return mae / float64(n), math.Sqrt(rmse / float64(n))
}

// EvaluateAccuracy scores forecasts against holdout actuals. The percentage
// is a heuristic bounded below by 0; it is DefaultAccuracy when the mean of
// the actuals is not positive or the result is not finite.
func EvaluateAccuracy(actual, predicted []float64) Accuracy {
	mae, rmse := ErrorMetrics(actual, predicted)
	acc := Accuracy{MAE: mae, RMSE: rmse, Percent: DefaultAccuracy}

	n := min(len(actual), len(predicted))
	if n == 0 {
		return acc
	}
	mean := 0.0
	for _, v := range actual[:n] {
		mean += v
	}
	mean /= float64(n)

	if mean > 0 {
		pct := math.Max(0, 100*(1-mae/mean))
		if !math.IsNaN(pct) && !math.IsInf(pct, 0) {
			acc.Percent = pct
		}
	}
	return acc
}

// Package stats provides statistical analysis and diagnostics for time series
// and forecasts.
//
// # Autocorrelation
//
//	acf := stats.ACF(series, 20) // lags 0..20, nil for constant series
//
// # Residual Diagnostics
//
// Test model residuals for remaining autocorrelation:
//
//	lb := stats.LjungBox(residuals, 10, p+q)
//	if lb != nil && lb.PValue > 0.05 {
//	    // Residuals look like white noise
//	}
//
// # Forecast Accuracy
//
// Score a forecast against held-out observations:
//
//	acc := stats.EvaluateAccuracy(holdout, predicted)
//	fmt.Printf("MAE=%.2f RMSE=%.2f accuracy=%.1f%%\n", acc.MAE, acc.RMSE, acc.Percent)
//
// The accuracy percentage is max(0, 100*(1 - MAE/mean(actual))). It is a
// heuristic for display, not a calibrated confidence score. When the mean of
// the actuals is not positive, DefaultAccuracy is reported instead.
package stats

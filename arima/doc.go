// Package arima implements AutoRegressive Integrated Moving Average (ARIMA) models.
//
// An ARIMA(p,d,q) model combines:
//   - AR(p): AutoRegressive component with p lags
//   - I(d): Integration (differencing) of order d
//   - MA(q): Moving Average component with q lags
//
// # Basic Usage
//
//	model := arima.New(2, 1, 1)
//	if err := model.Fit(series); err != nil {
//	    // errors.Is(err, arima.ErrInsufficientData), arima.ErrNoVariance, ...
//	}
//	forecasts, err := model.Predict(12)
//
// # Estimation
//
// Coefficients are estimated by conditional sum of squares on the
// standardized differenced series: Yule-Walker starting values for the AR
// terms, followed by projected gradient descent that keeps every coefficient
// inside (-0.99, 0.99). The mean of the differenced series is only used to
// standardize it: with d > 0 the model has no constant, so forecasts of the
// differences revert to zero and the level flattens out. A differenced series with zero variance cannot be fitted and returns
// ErrNoVariance.
//
// # Diagnostics
//
//	summary := model.Summary()
//	fmt.Printf("AIC: %.2f, BIC: %.2f\n", summary.AIC, summary.BIC)
//	if summary.LjungBox != nil {
//	    fmt.Printf("Ljung-Box p=%.3f\n", summary.LjungBox.PValue)
//	}
package arima

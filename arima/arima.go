// Package arima implements ARIMA (AutoRegressive Integrated Moving Average) models.
package arima

import (
	"errors"
	"fmt"
	"math"

	"github.com/jsjsjsjee/FUTURE-ML-01/stats"
	"github.com/jsjsjsjee/FUTURE-ML-01/timeseries"
)

// minExtraObs is the number of observations required beyond p+d+q.
const minExtraObs = 8

var (
	// ErrInsufficientData is returned when the series is too short for the order.
	ErrInsufficientData = errors.New("insufficient data points for the specified order")
	// ErrNoVariance is returned when the differenced series is constant.
	ErrNoVariance = errors.New("differenced series has zero variance")
	// ErrNonFinite is returned when input data or estimates contain NaN or Inf.
	ErrNonFinite = errors.New("non-finite value encountered")
	// ErrNotFitted is returned by Predict before a successful Fit.
	ErrNotFitted = errors.New("model must be fitted before prediction")
)

// Order represents ARIMA model order (p, d, q).
type Order struct {
	P int // AR order (number of autoregressive terms)
	D int // Differencing order
	Q int // MA order (number of moving average terms)
}

// String formats the order as (p,d,q).
func (o Order) String() string {
	return fmt.Sprintf("(%d,%d,%d)", o.P, o.D, o.Q)
}

// MinObservations returns the shortest series Fit accepts for this order.
func (o Order) MinObservations() int {
	return o.P + o.D + o.Q + minExtraObs
}

// Model represents an ARIMA model.
type Model struct {
	Order     Order
	ARCoeffs  []float64 // AR coefficients (phi)
	MACoeffs  []float64 // MA coefficients (theta)
	Intercept float64   // Mean of the differenced series; a forecast constant only when D is 0
	Variance  float64   // Residual variance
	AIC       float64
	BIC       float64
	LogLik    float64

	fitted    bool
	nObs      int
	scale     float64   // Std of the differenced series
	diffData  []float64 // Standardized differenced series
	lastLevel []float64 // Last value at each differencing level 0..d-1
	zResid    []float64 // Residuals on the standardized scale
	residuals []float64
}

// New creates a new ARIMA model with the specified order.
func New(p, d, q int) *Model {
	return &Model{
		Order:    Order{P: p, D: d, Q: q},
		ARCoeffs: make([]float64, p),
		MACoeffs: make([]float64, q),
	}
}

// Fit fits the ARIMA model to the given time series data using conditional
// sum of squares on the standardized differenced series.
func (m *Model) Fit(series *timeseries.Series) error {
	if series.Len() < m.Order.MinObservations() {
		return fmt.Errorf("%w: have %d, need %d for ARIMA%s",
			ErrInsufficientData, series.Len(), m.Order.MinObservations(), m.Order)
	}
	if !series.AllFinite() {
		return fmt.Errorf("input series: %w", ErrNonFinite)
	}

	m.fitted = false
	m.nObs = series.Len()

	diffSeries := series
	m.lastLevel = make([]float64, m.Order.D)
	for i := 0; i < m.Order.D; i++ {
		m.lastLevel[i] = diffSeries.Values[diffSeries.Len()-1]
		diffSeries = diffSeries.Diff()
	}

	m.Intercept = diffSeries.Mean()
	m.scale = diffSeries.Std()
	if m.scale == 0 || math.IsNaN(m.scale) {
		return ErrNoVariance
	}

	z := make([]float64, diffSeries.Len())
	for i, v := range diffSeries.Values {
		z[i] = (v - m.Intercept) / m.scale
	}
	m.diffData = z

	m.fitCSS()

	for _, c := range append(append([]float64{}, m.ARCoeffs...), m.MACoeffs...) {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("coefficients: %w", ErrNonFinite)
		}
	}

	m.calculateIC()

	m.fitted = true
	return nil
}

// fitCSS estimates AR and MA coefficients on the standardized series.
func (m *Model) fitCSS() {
	p := m.Order.P
	q := m.Order.Q
	z := m.diffData

	m.ARCoeffs = make([]float64, p)
	m.MACoeffs = make([]float64, q)

	if p > 0 {
		// Yule-Walker for initial AR estimates
		if acf := stats.ACF(timeseries.New(z), p); acf != nil {
			if phi := yuleWalker(acf, p); phi != nil {
				for i, v := range phi {
					m.ARCoeffs[i] = clampCoeff(v)
				}
			}
		}
	}
	for i := range m.MACoeffs {
		m.MACoeffs[i] = 0.1
	}

	const (
		maxIter      = 200
		tolerance    = 1e-9
		learningRate = 0.05
	)

	n := len(z)
	start := max(p, q)
	resid := make([]float64, n)
	prevSSE := m.residualsCSS(resid)

	for iter := 0; iter < maxIter; iter++ {
		arGrad := make([]float64, p)
		maGrad := make([]float64, q)

		for t := start; t < n; t++ {
			for i := 0; i < p; i++ {
				arGrad[i] -= 2 * resid[t] * z[t-i-1]
			}
			for i := 0; i < q; i++ {
				maGrad[i] -= 2 * resid[t] * resid[t-i-1]
			}
		}

		// Constrain to the stationary/invertible box.
		for i := 0; i < p; i++ {
			m.ARCoeffs[i] = clampCoeff(m.ARCoeffs[i] - learningRate*arGrad[i]/float64(n))
		}
		for i := 0; i < q; i++ {
			m.MACoeffs[i] = clampCoeff(m.MACoeffs[i] - learningRate*maGrad[i]/float64(n))
		}

		sse := m.residualsCSS(resid)
		if math.Abs(prevSSE-sse) < tolerance {
			break
		}
		prevSSE = sse
	}

	if m.enforceStationarity() {
		m.residualsCSS(resid)
	}

	m.zResid = resid
	m.residuals = make([]float64, n)
	for t := 0; t < n; t++ {
		m.residuals[t] = resid[t] * m.scale
	}

	sse := 0.0
	count := 0
	for t := start; t < n; t++ {
		sse += m.residuals[t] * m.residuals[t]
		count++
	}
	switch {
	case count > p+q+1:
		m.Variance = sse / float64(count-p-q-1)
	case count > 0:
		m.Variance = sse / float64(count)
	}
}

// residualsCSS fills resid with one-step errors for the current coefficients
// and returns their sum of squares. Errors before max(p, q) are zero.
func (m *Model) residualsCSS(resid []float64) float64 {
	z := m.diffData
	start := max(m.Order.P, m.Order.Q)
	sse := 0.0
	for t := range z {
		if t < start {
			resid[t] = 0
			continue
		}
		pred := 0.0
		for i, phi := range m.ARCoeffs {
			pred += phi * z[t-i-1]
		}
		for i, theta := range m.MACoeffs {
			pred += theta * resid[t-i-1]
		}
		resid[t] = z[t] - pred
		sse += resid[t] * resid[t]
	}
	return sse
}

// enforceStationarity shrinks the AR coefficients toward zero until they
// satisfy a stationarity condition. It reports whether anything changed.
func (m *Model) enforceStationarity() bool {
	changed := false
	for i := 0; i < 100 && !isStationary(m.ARCoeffs); i++ {
		for j := range m.ARCoeffs {
			m.ARCoeffs[j] *= 0.95
		}
		changed = true
	}
	return changed
}

// isStationary uses the exact triangle conditions for p <= 2 and the
// sufficient condition sum|phi| < 1 otherwise.
func isStationary(phi []float64) bool {
	switch len(phi) {
	case 0:
		return true
	case 1:
		return math.Abs(phi[0]) < 1
	case 2:
		return phi[0]+phi[1] < 1 && phi[1]-phi[0] < 1 && math.Abs(phi[1]) < 1
	}
	sum := 0.0
	for _, v := range phi {
		sum += math.Abs(v)
	}
	return sum < 1
}

func clampCoeff(v float64) float64 {
	return math.Max(-0.99, math.Min(0.99, v))
}

// calculateIC calculates AIC and BIC.
func (m *Model) calculateIC() {
	n := len(m.residuals)
	k := m.Order.P + m.Order.Q
	if m.Order.D == 0 {
		k++ // intercept
	}

	sse := 0.0
	for _, r := range m.residuals {
		sse += r * r
	}

	if m.Variance > 0 {
		m.LogLik = -float64(n)/2*math.Log(2*math.Pi) - float64(n)/2*math.Log(m.Variance) - sse/(2*m.Variance)
	} else {
		m.LogLik = math.Inf(-1)
	}

	m.AIC = -2*m.LogLik + 2*float64(k)
	m.BIC = -2*m.LogLik + float64(k)*math.Log(float64(n))
}

// Predict generates forecasts for the specified number of steps ahead on the
// original scale of the fitted series.
func (m *Model) Predict(steps int) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if steps < 1 {
		return nil, errors.New("steps must be at least 1")
	}

	z := m.diffData
	n := len(z)

	extZ := make([]float64, n+steps)
	copy(extZ, z)
	extResid := make([]float64, n+steps)
	copy(extResid, m.zResid)

	for h := 0; h < steps; h++ {
		t := n + h
		pred := 0.0
		for i, phi := range m.ARCoeffs {
			if t-i-1 >= 0 {
				pred += phi * extZ[t-i-1]
			}
		}
		// Future shocks have expectation zero.
		for i, theta := range m.MACoeffs {
			if t-i-1 >= 0 && t-i-1 < n {
				pred += theta * extResid[t-i-1]
			}
		}
		extZ[t] = pred
	}

	// With differencing there is no drift: the differenced forecasts revert
	// to zero, not to the sample mean step.
	constant := 0.0
	if m.Order.D == 0 {
		constant = m.Intercept
	}

	forecasts := make([]float64, steps)
	for h := range forecasts {
		forecasts[h] = extZ[n+h]*m.scale + constant
	}

	forecasts = m.integrate(forecasts)

	for _, f := range forecasts {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("forecast: %w", ErrNonFinite)
		}
	}
	return forecasts, nil
}

// integrate undoes differencing, innermost level first.
func (m *Model) integrate(forecasts []float64) []float64 {
	result := make([]float64, len(forecasts))
	copy(result, forecasts)

	for level := len(m.lastLevel) - 1; level >= 0; level-- {
		prev := m.lastLevel[level]
		for j := range result {
			result[j] += prev
			prev = result[j]
		}
	}

	return result
}

// Residuals returns the model residuals on the differenced scale.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.residuals))
	copy(result, m.residuals)
	return result
}

// Summary describes a fitted model.
type Summary struct {
	Order     Order
	ARCoeffs  []float64
	MACoeffs  []float64
	Intercept float64
	Variance  float64
	AIC       float64
	BIC       float64
	LogLik    float64
	NObs      int
	LjungBox  *stats.LjungBoxResult
}

// Summary returns a summary of the fitted model, or nil before Fit.
func (m *Model) Summary() *Summary {
	if !m.fitted {
		return nil
	}

	residSeries := timeseries.New(m.Residuals())
	lb := stats.LjungBox(residSeries, min(10, len(m.residuals)/2), m.Order.P+m.Order.Q)

	return &Summary{
		Order:     m.Order,
		ARCoeffs:  append([]float64(nil), m.ARCoeffs...),
		MACoeffs:  append([]float64(nil), m.MACoeffs...),
		Intercept: m.Intercept,
		Variance:  m.Variance,
		AIC:       m.AIC,
		BIC:       m.BIC,
		LogLik:    m.LogLik,
		NObs:      m.nObs,
		LjungBox:  lb,
	}
}

// yuleWalker estimates AR coefficients from autocorrelations using the
// Levinson-Durbin recursion.
func yuleWalker(acf []float64, order int) []float64 {
	if order <= 0 || len(acf) <= order {
		return nil
	}

	phi := make([]float64, order)
	phi[0] = acf[1]
	if order == 1 {
		return phi
	}

	v := 1 - phi[0]*phi[0]
	for i := 1; i < order; i++ {
		if v <= 0 {
			break
		}
		lambda := acf[i+1]
		for j := 0; j < i; j++ {
			lambda -= phi[j] * acf[i-j]
		}
		lambda /= v

		next := make([]float64, i+1)
		for j := 0; j < i; j++ {
			next[j] = phi[j] - lambda*phi[i-1-j]
		}
		next[i] = lambda
		copy(phi, next)

		v *= 1 - lambda*lambda
	}

	return phi
}

package stats

import (
	"math"

	"github.com/jsjsjsjee/FUTURE-ML-01/timeseries"
)

// LjungBoxResult represents the result of a Ljung-Box test.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int // Degrees of freedom
}

// LjungBox performs the Ljung-Box test for autocorrelation in residuals.
// The null hypothesis is that there is no autocorrelation up to lag h.
// fitdf is the number of parameters estimated in the model (p + q for ARIMA).
// Returns nil for fewer than 8 observations or constant residuals.
func LjungBox(series *timeseries.Series, lags, fitdf int) *LjungBoxResult {
	n := series.Len()
	if n < 8 || lags < 1 {
		return nil
	}

	if lags >= n {
		lags = n - 1
	}

	acf := ACF(series, lags)
	if acf == nil {
		return nil
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += (acf[k] * acf[k]) / float64(n-k)
	}
	q *= float64(n * (n + 2))

	dof := lags - fitdf
	if dof < 1 {
		dof = 1
	}

	return &LjungBoxResult{
		Statistic: q,
		PValue:    chiSquaredSF(q, dof),
		Lags:      lags,
		DOF:       dof,
	}
}

// chiSquaredSF is the survival function 1 - CDF of the chi-squared
// distribution with k degrees of freedom.
func chiSquaredSF(x float64, k int) float64 {
	if x <= 0 {
		return 1
	}
	return 1 - regularizedGammaP(float64(k)/2, x/2)
}

// regularizedGammaP computes P(a, x) = gamma(a, x) / Gamma(a).
func regularizedGammaP(a, x float64) float64 {
	if x <= 0 || a <= 0 {
		return 0
	}
	lg, _ := math.Lgamma(a)
	prefix := math.Exp(-x + a*math.Log(x) - lg)

	const (
		maxIter = 200
		eps     = 1e-12
		fpmin   = 1e-300
	)

	if x < a+1 {
		// Series expansion.
		ap, del := a, 1.0/a
		sum := del
		for n := 0; n < maxIter; n++ {
			ap++
			del *= x / ap
			sum += del
			if math.Abs(del) < math.Abs(sum)*eps {
				break
			}
		}
		return sum * prefix
	}

	// Lentz continued fraction for Q(a, x).
	b := x + 1 - a
	c := 1 / fpmin
	d := 1 / b
	h := d
	for i := 1; i < maxIter; i++ {
		an := -float64(i) * (float64(i) - a)
		b += 2
		d = an*d + b
		if math.Abs(d) < fpmin {
			d = fpmin
		}
		c = b + an/c
		if math.Abs(c) < fpmin {
			c = fpmin
		}
		d = 1 / d
		del := d * c
		h *= del
		if math.Abs(del-1) < eps {
			break
		}
	}
	return 1 - prefix*h
}

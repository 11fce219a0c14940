package forecast

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsjsjsjee/FUTURE-ML-01/arima"
	"github.com/jsjsjsjee/FUTURE-ML-01/internal/metrics"
	"github.com/jsjsjsjee/FUTURE-ML-01/sales"
)

var start = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

func monthly(values ...float64) sales.MonthlySeries {
	out := make(sales.MonthlySeries, len(values))
	for i, v := range values {
		out[i] = sales.MonthlySales{Month: start.AddDate(0, i, 0), Sales: v}
	}
	return out
}

func trending(n int) sales.MonthlySeries {
	values := make([]float64, n)
	for i := range values {
		values[i] = 1000 + 25*float64(i) + 80*math.Sin(float64(i)*1.3) + 30*math.Cos(float64(i)*0.7)
	}
	return monthly(values...)
}

func assertWellFormed(t *testing.T, m sales.MonthlySeries, pts Series) {
	t.Helper()
	require.Len(t, pts, Horizon)
	want := m[len(m)-1].Month.AddDate(0, 1, 0)
	for i, p := range pts {
		assert.Equal(t, want.AddDate(0, i, 0), p.Month, "month %d", i)
		assert.LessOrEqual(t, p.Lower, p.Forecast, "month %d", i)
		assert.LessOrEqual(t, p.Forecast, p.Upper, "month %d", i)
	}
}

func TestTrainLength(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 0}, {6, 6}, {12, 12}, {15, 12}, {16, 12}, {20, 16}, {24, 19}, {36, 28},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, trainLength(tt.n), "n=%d", tt.n)
	}
}

func TestForecastShortHistoryFallsBack(t *testing.T) {
	logger, hook := test.NewNullLogger()
	engine := NewEngine(WithLogger(logger))

	m := monthly(100, 200, 300, 400, 500, 600)
	res := engine.Forecast(m)

	assert.Equal(t, StrategyMovingAverage, res.Strategy)
	assert.Equal(t, FallbackAccuracy, res.Accuracy)
	assert.Nil(t, res.Diagnostics)
	assertWellFormed(t, m, res.Points)
	for _, p := range res.Points {
		assert.InDelta(t, 350.0, p.Forecast, 1e-9)
		assert.InDelta(t, 350.0*0.85, p.Lower, 1e-9)
		assert.InDelta(t, 350.0*1.15, p.Upper, 1e-9)
	}

	var fe *FitError
	require.ErrorAs(t, res.Fallback, &fe)
	assert.True(t, errors.Is(res.Fallback, arima.ErrInsufficientData))

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, 6, hook.LastEntry().Data["months"])
}

func TestForecastFallbackUsesTrailingSixMonths(t *testing.T) {
	res := NewEngine().attemptFallback(monthly(1, 1, 1, 10, 20, 30, 40, 50, 60))
	require.Len(t, res.Points, Horizon)
	assert.InDelta(t, 35.0, res.Points[0].Forecast, 1e-9)
}

func TestForecastConstantSeries(t *testing.T) {
	values := make([]float64, 24)
	for i := range values {
		values[i] = 1000
	}
	m := monthly(values...)

	logger, hook := test.NewNullLogger()
	reg := prometheus.NewRegistry()
	met := metrics.New(reg)
	res := NewEngine(WithLogger(logger), WithMetrics(met)).Forecast(m)

	assertWellFormed(t, m, res.Points)
	for _, p := range res.Points {
		assert.InDelta(t, 1000.0, p.Forecast, 1e-6)
	}
	assert.Equal(t, StrategyMovingAverage, res.Strategy)
	assert.ErrorIs(t, res.Fallback, arima.ErrNoVariance)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, 1.0, testutil.ToFloat64(met.FitFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(met.Forecasts.WithLabelValues("moving_average")))
}

func TestForecastARIMA(t *testing.T) {
	m := trending(36)
	reg := prometheus.NewRegistry()
	met := metrics.New(reg)

	res := NewEngine(WithMetrics(met)).Forecast(m)
	require.NoError(t, res.Fallback)
	assert.Equal(t, StrategyARIMA, res.Strategy)
	assertWellFormed(t, m, res.Points)

	require.NotNil(t, res.Diagnostics)
	assert.Equal(t, 28, res.Diagnostics.Train)
	assert.Equal(t, 8, res.Diagnostics.Holdout)

	holdout := m[28:].Series()
	want := math.Max(0, 100*(1-res.Diagnostics.MAE/holdout.Mean()))
	assert.InDelta(t, want, res.Accuracy, 1e-9)
	assert.Greater(t, res.Diagnostics.MAE, 0.0)
	assert.Equal(t, arima.Order{P: 2, D: 1, Q: 1}, res.Diagnostics.Order)
	assert.Equal(t, 1.0, testutil.ToFloat64(met.Forecasts.WithLabelValues("arima")))
	assert.Equal(t, 0.0, testutil.ToFloat64(met.FitFailures))

	for _, p := range res.Points {
		assert.False(t, math.IsNaN(p.Forecast) || math.IsInf(p.Forecast, 0))
		assert.InDelta(t, 0.9*p.Forecast, p.Lower, 1e-6)
	}
}

func TestForecastTwelveMonthsUsesDefaultAccuracy(t *testing.T) {
	res := NewEngine().Forecast(trending(12))
	require.Equal(t, StrategyARIMA, res.Strategy, "fallback: %v", res.Fallback)
	assert.Equal(t, DefaultPrimaryAccuracy, res.Accuracy)
	assert.Equal(t, 0, res.Diagnostics.Holdout)
}

func TestForecastEmpty(t *testing.T) {
	res := NewEngine().Forecast(sales.MonthlySeries{})
	assert.Equal(t, StrategyMovingAverage, res.Strategy)
	assert.Empty(t, res.Points)
}

func TestForecastIsDeterministic(t *testing.T) {
	engine := NewEngine()
	m := trending(30)
	assert.Equal(t, engine.Forecast(m).Points, engine.Forecast(m).Points)
}

func TestBandOrdersNegativeValues(t *testing.T) {
	lower, upper := band(-100, 0.9, 1.1)
	assert.Equal(t, -110.0, math.Round(lower))
	assert.Equal(t, -90.0, math.Round(upper))
}

func TestFitErrorMessage(t *testing.T) {
	err := &FitError{Order: arima.Order{P: 2, D: 1, Q: 1}, Train: 14, Err: arima.ErrNoVariance}
	assert.Equal(t, "ARIMA(2,1,1) on 14 months: differenced series has zero variance", err.Error())
	assert.ErrorIs(t, err, arima.ErrNoVariance)
}

func TestPointJSON(t *testing.T) {
	out, err := json.Marshal(Series{{Month: start, Forecast: 100, Lower: 90, Upper: 110}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"Month":"2022-01","Forecast":100,"Lower_CI":90,"Upper_CI":110}]`, string(out))
}

// Package forecast produces 12-month sales forecasts from a monthly series,
// choosing between an ARIMA(2,1,1) fit and a trailing moving average.
package forecast

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jsjsjsjee/FUTURE-ML-01/arima"
	"github.com/jsjsjsjee/FUTURE-ML-01/internal/metrics"
	"github.com/jsjsjsjee/FUTURE-ML-01/sales"
	"github.com/jsjsjsjee/FUTURE-ML-01/stats"
	"github.com/jsjsjsjee/FUTURE-ML-01/timeseries"
)

const (
	// Horizon is the number of months forecast.
	Horizon = 12
	// MinTrainingMonths is the shortest training window for the ARIMA fit.
	MinTrainingMonths = 12
	// FallbackWindow is the number of trailing months averaged by the fallback.
	FallbackWindow = 6
)

// Accuracy reported when no holdout score is available. Both values are
// calibration literals, not statistically derived.
const (
	DefaultPrimaryAccuracy = stats.DefaultAccuracy
	FallbackAccuracy       = 75.0
)

const (
	primaryLower  = 0.90
	primaryUpper  = 1.10
	fallbackLower = 0.85
	fallbackUpper = 1.15
)

// Strategy names the method that produced a forecast.
type Strategy string

const (
	StrategyARIMA         Strategy = "arima"
	StrategyMovingAverage Strategy = "moving_average"
)

// FitError reports why the ARIMA attempt was abandoned.
type FitError struct {
	Order arima.Order
	Train int
	Err   error
}

func (e *FitError) Error() string {
	return fmt.Sprintf("ARIMA%s on %d months: %v", e.Order, e.Train, e.Err)
}

func (e *FitError) Unwrap() error { return e.Err }

// Diagnostics describes a successful ARIMA fit.
type Diagnostics struct {
	Order     arima.Order
	Train     int
	Holdout   int
	AIC       float64
	BIC       float64
	LjungBoxP *float64 // nil when the residuals are too short to test
	MAE       float64  // Holdout error; zero without a holdout
	RMSE      float64
}

// Result is the outcome of Engine.Forecast.
type Result struct {
	Strategy    Strategy
	Accuracy    float64
	Points      Series
	Diagnostics *Diagnostics // nil for the moving average
	Fallback    error        // why the primary attempt was not used
}

// Engine runs the primary/fallback forecasting policy. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	order   arima.Order
	logger  logrus.FieldLogger
	metrics *metrics.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for fallback decisions.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithMetrics sets the instruments updated per forecast.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine creates an engine for ARIMA(2,1,1).
func NewEngine(opts ...Option) *Engine {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	e := &Engine{
		order:  arima.Order{P: 2, D: 1, Q: 1},
		logger: discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// trainLength returns max(floor(0.8n), MinTrainingMonths) capped at n.
func trainLength(n int) int {
	return min(max(n*4/5, MinTrainingMonths), n)
}

// Forecast returns a Horizon-month forecast starting the month after the last
// entry of monthly. It never fails: any problem with the ARIMA attempt is
// logged and answered with the moving average. An empty series yields an
// empty forecast.
func (e *Engine) Forecast(monthly sales.MonthlySeries) Result {
	res, err := e.attemptPrimary(monthly)
	if err != nil {
		log := e.logger.WithFields(logrus.Fields{
			"months": len(monthly),
			"train":  trainLength(len(monthly)),
			"error":  err.Error(),
		})
		if errors.Is(err, arima.ErrInsufficientData) {
			log.Info("history too short for ARIMA, using moving average")
		} else {
			log.Warn("ARIMA fit failed, using moving average")
			e.metrics.RecordFitFailure()
		}

		res = e.attemptFallback(monthly)
		res.Fallback = err
	}

	e.metrics.RecordForecast(string(res.Strategy), res.Accuracy)
	return res
}

func (e *Engine) attemptPrimary(monthly sales.MonthlySeries) (Result, error) {
	values := monthly.Series().Values
	train := trainLength(len(values))

	fail := func(err error) (Result, error) {
		return Result{}, &FitError{Order: e.order, Train: train, Err: err}
	}

	if train < MinTrainingMonths {
		return fail(fmt.Errorf("%w: %d months, need %d", arima.ErrInsufficientData, train, MinTrainingMonths))
	}

	model := arima.New(e.order.P, e.order.D, e.order.Q)
	if err := model.Fit(timeseries.New(values[:train])); err != nil {
		return fail(err)
	}

	pred, err := model.Predict(Horizon)
	if err != nil {
		return fail(err)
	}

	diag := &Diagnostics{
		Order: e.order,
		Train: train,
		AIC:   model.AIC,
		BIC:   model.BIC,
	}
	if s := model.Summary(); s != nil && s.LjungBox != nil {
		p := s.LjungBox.PValue
		diag.LjungBoxP = &p
	}

	accuracy := DefaultPrimaryAccuracy
	if holdout := values[train:]; len(holdout) > 0 {
		hp, err := model.Predict(len(holdout))
		if err != nil {
			return fail(err)
		}
		score := stats.EvaluateAccuracy(holdout, hp)
		accuracy = score.Percent
		diag.Holdout = len(holdout)
		diag.MAE = score.MAE
		diag.RMSE = score.RMSE
	}

	return Result{
		Strategy:    StrategyARIMA,
		Accuracy:    accuracy,
		Points:      points(nextMonth(monthly), pred, primaryLower, primaryUpper),
		Diagnostics: diag,
	}, nil
}

func (e *Engine) attemptFallback(monthly sales.MonthlySeries) Result {
	res := Result{Strategy: StrategyMovingAverage, Accuracy: FallbackAccuracy, Points: Series{}}
	if len(monthly) == 0 {
		return res
	}

	avg := monthly.Series().Tail(FallbackWindow).Mean()
	pred := make([]float64, Horizon)
	for i := range pred {
		pred[i] = avg
	}
	res.Points = points(nextMonth(monthly), pred, fallbackLower, fallbackUpper)
	return res
}

func nextMonth(monthly sales.MonthlySeries) time.Time {
	last, _ := monthly.Series().Last()
	return timeseries.AddMonths(last, 1)
}

func points(start time.Time, pred []float64, lo, hi float64) Series {
	out := make(Series, len(pred))
	for i, f := range pred {
		lower, upper := band(f, lo, hi)
		out[i] = Point{
			Month:    timeseries.AddMonths(start, i),
			Forecast: f,
			Lower:    lower,
			Upper:    upper,
		}
	}
	return out
}

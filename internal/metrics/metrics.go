// Package metrics exposes Prometheus instruments for the forecasting
// pipeline. A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus instruments for the pipeline
type Metrics struct {
	PipelineRuns  prometheus.Counter
	EmptyInputs   prometheus.Counter
	FitFailures   prometheus.Counter
	Forecasts     *prometheus.CounterVec
	ModelAccuracy prometheus.Histogram
}

// New creates the instruments and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PipelineRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "salesforecast_pipeline_runs_total",
			Help: "Number of forecast pipeline invocations",
		}),
		EmptyInputs: factory.NewCounter(prometheus.CounterOpts{
			Name: "salesforecast_empty_inputs_total",
			Help: "Number of invocations whose filtered record set was empty",
		}),
		FitFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "salesforecast_fit_failures_total",
			Help: "Number of ARIMA fits that failed and fell back",
		}),
		Forecasts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesforecast_forecasts_total",
				Help: "Number of forecasts produced per strategy",
			},
			[]string{"strategy"},
		),
		ModelAccuracy: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "salesforecast_model_accuracy",
			Help:    "Reported forecast accuracy percentage",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
	}
}

// RecordRun counts one pipeline invocation.
func (m *Metrics) RecordRun() {
	if m == nil {
		return
	}
	m.PipelineRuns.Inc()
}

// RecordEmptyInput counts an invocation that short-circuited on no records.
func (m *Metrics) RecordEmptyInput() {
	if m == nil {
		return
	}
	m.EmptyInputs.Inc()
}

// RecordFitFailure counts a failed primary fit.
func (m *Metrics) RecordFitFailure() {
	if m == nil {
		return
	}
	m.FitFailures.Inc()
}

// RecordForecast counts a forecast by strategy and observes its accuracy.
func (m *Metrics) RecordForecast(strategy string, accuracy float64) {
	if m == nil {
		return
	}
	m.Forecasts.WithLabelValues(strategy).Inc()
	m.ModelAccuracy.Observe(accuracy)
}

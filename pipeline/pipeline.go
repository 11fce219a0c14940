// Package pipeline wires the sales aggregator, forecast engine and insight
// generator into the two entry points used by callers.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/jsjsjsjee/FUTURE-ML-01/forecast"
	"github.com/jsjsjsjee/FUTURE-ML-01/insights"
	"github.com/jsjsjsjee/FUTURE-ML-01/internal/metrics"
	"github.com/jsjsjsjee/FUTURE-ML-01/sales"
)

// ErrNilTable is returned when GenerateForecast receives no table.
var ErrNilTable = errors.New("sales table is nil")

// ValidationError describes a malformed input found before any computation.
type ValidationError struct {
	Row    int // 1-based record index; 0 for non-record inputs
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("record %d: invalid %s: %s", e.Row, e.Field, e.Reason)
}

// Result is the output of one pipeline run.
type Result struct {
	MonthlySales sales.MonthlySeries `json:"monthly_sales"`
	Forecast     forecast.Series     `json:"forecast"`
	Insights     insights.Insights   `json:"insights"`

	Strategy    forecast.Strategy     `json:"-"`
	Diagnostics *forecast.Diagnostics `json:"-"`
}

// Pipeline runs forecasts. It holds no mutable state and is safe for
// concurrent use.
type Pipeline struct {
	logger  logrus.FieldLogger
	metrics *metrics.Metrics
	engine  *forecast.Engine
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for the pipeline and its forecast engine.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithMetrics sets the instruments for the pipeline and its forecast engine.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// New creates a Pipeline.
func New(opts ...Option) *Pipeline {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	p := &Pipeline{logger: discard}
	for _, opt := range opts {
		opt(p)
	}
	p.engine = forecast.NewEngine(forecast.WithLogger(p.logger), forecast.WithMetrics(p.metrics))
	return p
}

// GenerateForecast filters table, aggregates it by month, forecasts the next
// 12 months and derives insights. An empty selection is not an error: it
// yields empty series and insights.Default(). The table is never modified.
func (p *Pipeline) GenerateForecast(table *sales.Table, filter sales.Filter) (*Result, error) {
	if err := validate(table, filter); err != nil {
		return nil, err
	}
	p.metrics.RecordRun()

	filtered, err := filter.Apply(table)
	if err != nil {
		return nil, err
	}

	log := p.logger.WithFields(logrus.Fields{
		"region":   filter.Region,
		"category": filter.Category,
		"year":     filter.Year,
		"records":  filtered.Len(),
	})

	monthly := sales.Aggregate(filtered.Records)
	if len(monthly) == 0 {
		p.metrics.RecordEmptyInput()
		log.Debug("no records match filter")
		return &Result{
			MonthlySales: sales.MonthlySeries{},
			Forecast:     forecast.Series{},
			Insights:     insights.Default(),
		}, nil
	}

	fc := p.engine.Forecast(monthly)
	fields := logrus.Fields{
		"months":   len(monthly),
		"strategy": fc.Strategy,
		"accuracy": fc.Accuracy,
	}
	if d := fc.Diagnostics; d != nil {
		fields["aic"] = d.AIC
		fields["bic"] = d.BIC
		fields["holdout"] = d.Holdout
		if d.Holdout > 0 {
			fields["mae"] = d.MAE
			fields["rmse"] = d.RMSE
		}
		if d.LjungBoxP != nil {
			fields["ljung_box_p"] = *d.LjungBoxP
		}
	}
	log.WithFields(fields).Info("forecast generated")

	return &Result{
		MonthlySales: monthly,
		Forecast:     fc.Points,
		Insights:     insights.Generate(filtered, monthly, fc.Points, fc.Accuracy),
		Strategy:     fc.Strategy,
		Diagnostics:  fc.Diagnostics,
	}, nil
}

// FilteredData reloads the table from src and runs GenerateForecast on it.
func (p *Pipeline) FilteredData(ctx context.Context, src sales.Source, filter sales.Filter) (*Result, error) {
	if err := filter.Validate(); err != nil {
		return nil, &ValidationError{Field: "year", Reason: err.Error()}
	}

	table, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sales data: %w", err)
	}
	return p.GenerateForecast(table, filter)
}

func validate(table *sales.Table, filter sales.Filter) error {
	if table == nil {
		return ErrNilTable
	}
	if err := filter.Validate(); err != nil {
		return &ValidationError{Field: "year", Reason: err.Error()}
	}

	for i := range table.Records {
		r := &table.Records[i]
		switch {
		case r.OrderDate.IsZero():
			return &ValidationError{Row: i + 1, Field: "order date", Reason: "missing"}
		case math.IsNaN(r.Sales) || math.IsInf(r.Sales, 0):
			return &ValidationError{Row: i + 1, Field: "sales", Reason: "not a finite number"}
		case r.Sales < 0:
			return &ValidationError{Row: i + 1, Field: "sales", Reason: fmt.Sprintf("negative value %g", r.Sales)}
		case math.IsNaN(r.Profit) || math.IsInf(r.Profit, 0):
			return &ValidationError{Row: i + 1, Field: "profit", Reason: "not a finite number"}
		}
	}
	return nil
}

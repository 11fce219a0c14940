package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jsjsjsjee/FUTURE-ML-01/internal/config"
	"github.com/jsjsjsjee/FUTURE-ML-01/internal/logging"
	"github.com/jsjsjsjee/FUTURE-ML-01/internal/metrics"
	"github.com/jsjsjsjee/FUTURE-ML-01/pipeline"
	"github.com/jsjsjsjee/FUTURE-ML-01/sales"
)

// app carries the state shared by all subcommands.
type app struct {
	cfg      *config.Config
	logger   *logrus.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(config.Load()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	a := &app{cfg: cfg}

	rootCmd := &cobra.Command{
		Use:   "salesforecast",
		Short: "Monthly retail sales forecasting",
		Long: `Aggregates retail order lines by month, forecasts the next 12 months
with ARIMA(2,1,1) or a moving-average fallback, and reports summary insights.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			a.logger = logging.New(cmd.ErrOrStderr(), a.cfg.LogLevel, a.cfg.LogFormat)
			a.registry = prometheus.NewRegistry()
			a.metrics = metrics.New(a.registry)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.MetricsFile == "" {
				return nil
			}
			if err := prometheus.WriteToTextfile(a.cfg.MetricsFile, a.registry); err != nil {
				return fmt.Errorf("failed to write metrics: %w", err)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.DataPath, "data", cfg.DataPath, "CSV file with order lines")
	flags.StringVar(&cfg.DataSource, "source", cfg.DataSource, "Data source: csv or postgres")
	flags.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "Postgres connection URL")
	flags.StringVar(&cfg.SalesTable, "table", cfg.SalesTable, "Postgres table with order lines")
	flags.StringVar(&cfg.DataEncoding, "encoding", cfg.DataEncoding, "CSV encoding: latin1, windows-1252 or utf-8")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json")
	flags.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "Write Prometheus metrics to this file on exit")

	rootCmd.AddCommand(forecastCmd(a))
	rootCmd.AddCommand(filtersCmd(a))

	return rootCmd
}

// forecastCmd runs the pipeline and prints monthly sales, forecast and insights
func forecastCmd(a *app) *cobra.Command {
	var filter sales.Filter

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast the next 12 months of sales",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			src, closeSource, err := a.openSource(ctx)
			if err != nil {
				return err
			}
			defer closeSource()

			p := pipeline.New(pipeline.WithLogger(a.logger), pipeline.WithMetrics(a.metrics))
			res, err := p.FilteredData(ctx, src, filter)
			if err != nil {
				return fmt.Errorf("failed to generate forecast: %w", err)
			}

			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&filter.Region, "region", sales.All, "Region filter")
	cmd.Flags().StringVar(&filter.Category, "category", sales.All, "Category filter")
	cmd.Flags().StringVar(&filter.Year, "year", sales.All, "Order year filter")

	return cmd
}

// filtersCmd lists the regions, categories and years available for filtering
func filtersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List available filter values",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			src, closeSource, err := a.openSource(ctx)
			if err != nil {
				return err
			}
			defer closeSource()

			table, err := src.Load(ctx)
			if err != nil {
				return fmt.Errorf("failed to load sales data: %w", err)
			}

			return writeJSON(cmd.OutOrStdout(), sales.FilterOptions(table))
		},
	}
}

func (a *app) openSource(ctx context.Context) (sales.Source, func(), error) {
	if strings.EqualFold(a.cfg.DataSource, config.SourcePostgres) {
		src, err := sales.NewPostgresSource(ctx, a.cfg.DatabaseURL, a.cfg.SalesTable)
		if err != nil {
			return nil, nil, err
		}
		a.logger.WithField("table", a.cfg.SalesTable).Debug("reading sales from postgres")
		return src, src.Close, nil
	}

	opts := sales.DefaultCSVOptions()
	opts.Encoding = a.cfg.DataEncoding
	a.logger.WithField("path", a.cfg.DataPath).Debug("reading sales from csv")
	return &sales.CSVSource{Path: a.cfg.DataPath, Options: opts}, func() {}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

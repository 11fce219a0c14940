// Package salesforecast forecasts monthly retail sales from order-level data.
//
// Order lines are aggregated into a gap-free monthly series, a 12-month
// forecast is produced with an ARIMA(2,1,1) model (or a trailing 6-month
// moving average when the history is too short or the fit fails), and
// summary insights are derived from the records, the series and the forecast.
//
// # Quick Start
//
// Forecast from records already in memory:
//
//	table := sales.NewTable(records)
//	p := pipeline.New()
//	res, err := p.GenerateForecast(table, sales.Filter{Region: "West"})
//
// Reload from a CSV file on every call:
//
//	src := &sales.CSVSource{Path: "data/Superstore.csv"}
//	res, err := p.FilteredData(ctx, src, sales.Filter{Year: "2017"})
//
// # Packages
//
// The module is organized into the following packages:
//
//   - timeseries: Series type, month grid and gap filling
//   - arima: Non-seasonal ARIMA models
//   - stats: Autocorrelation, Ljung-Box and forecast accuracy
//   - sales: Order records, filters, loaders and monthly aggregation
//   - forecast: ARIMA with moving-average fallback
//   - insights: Summary business metrics
//   - pipeline: Entry points tying the stages together
//
// The salesforecast command in cmd/salesforecast exposes the pipeline on the
// command line.
package salesforecast

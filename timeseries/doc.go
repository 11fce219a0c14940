// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type used by the forecasting packages,
// along with calendar-month helpers for building regular monthly grids.
//
// # Creating a Series
//
// Create a time series from a slice:
//
//	values := []float64{100, 102, 105, 103, 108, 110}
//	series := timeseries.New(values)
//
// Stamp consecutive months starting at a given month:
//
//	series := timeseries.NewMonthly(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), values)
//
// # Basic Statistics
//
//	mean := series.Mean()
//	std := series.Std()
//	peak := series.ArgMax() // first index of the maximum
//
// # Slicing
//
//	train := series.Slice(0, 12)
//	recent := series.Tail(6)
//	diff := series.Diff()
//
// # Monthly Grids
//
// Build the inclusive range of months between two dates and fill months
// that had no observations:
//
//	months := timeseries.MonthRange(first, last)
//	values := timeseries.FillGaps(sums, observed) // ffill, then bfill, then 0
package timeseries

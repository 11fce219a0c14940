package sales

import (
	"encoding/json"
	"time"

	"github.com/jsjsjsjee/FUTURE-ML-01/timeseries"
)

// MonthLayout is the ISO month format used in serialized output.
const MonthLayout = "2006-01"

// MonthlySales is the total sales for one calendar month.
type MonthlySales struct {
	Month time.Time // first of the month, UTC
	Sales float64
}

// MarshalJSON encodes the entry as {"Month": "YYYY-MM", "Sales": n}.
func (m MonthlySales) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Month string
		Sales float64
	}{m.Month.Format(MonthLayout), m.Sales})
}

// MonthlySeries is a gap-free, strictly increasing sequence of months.
type MonthlySeries []MonthlySales

// Series converts the monthly sales into a timestamped time series.
func (s MonthlySeries) Series() *timeseries.Series {
	values := make([]float64, len(s))
	for i, m := range s {
		values[i] = m.Sales
	}
	if len(s) == 0 {
		return timeseries.New(values)
	}

	ts := timeseries.NewMonthly(s[0].Month, values)
	ts.Name = "sales"
	return ts
}

// Aggregate sums Sales by calendar month of OrderDate and reindexes the sums
// onto every month between the first and last observed month. Months with
// no records are filled forward, then backward, then with zero. An empty
// input yields an empty series.
func Aggregate(records []Record) MonthlySeries {
	if len(records) == 0 {
		return MonthlySeries{}
	}

	sums := make(map[time.Time]float64)
	first := timeseries.MonthStart(records[0].OrderDate)
	last := first
	for i := range records {
		month := timeseries.MonthStart(records[i].OrderDate)
		sums[month] += records[i].Sales
		if month.Before(first) {
			first = month
		}
		if month.After(last) {
			last = month
		}
	}

	months := timeseries.MonthRange(first, last)
	values := make([]float64, len(months))
	present := make([]bool, len(months))
	for i, month := range months {
		values[i], present[i] = sums[month]
	}
	values = timeseries.FillGaps(values, present)

	out := make(MonthlySeries, len(months))
	for i, month := range months {
		out[i] = MonthlySales{Month: month, Sales: values[i]}
	}
	return out
}

// Package insights derives summary business metrics from a filtered sales
// table, its monthly series and the forecast.
package insights

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jsjsjsjee/FUTURE-ML-01/forecast"
	"github.com/jsjsjsjee/FUTURE-ML-01/sales"
	"github.com/jsjsjsjee/FUTURE-ML-01/timeseries"
)

// NotAvailable is reported for text metrics that cannot be computed.
const NotAvailable = "N/A"

// MonthNameLayout formats months for display, e.g. "October 2024".
const MonthNameLayout = "January 2006"

// Used when the series is too short to compare against a trailing year.
const (
	DefaultForecastGrowth = 12.5
	DefaultNextPeak       = "December 2024"
)

const (
	trailingMonths = 12
	maxProductLen  = 50
)

// Insights is the flat set of summary metrics.
type Insights struct {
	TotalSales             float64 `json:"total_sales"`
	TotalProfit            float64 `json:"total_profit"`
	TotalOrders            int     `json:"total_orders"`
	AvgOrderValue          float64 `json:"avg_order_value"`
	TopCategory            string  `json:"top_category"`
	TopRegion              string  `json:"top_region"`
	TopProduct             string  `json:"top_product"`
	PeakMonth              string  `json:"peak_month"`
	LowMonth               string  `json:"low_month"`
	ModelAccuracy          float64 `json:"model_accuracy"`
	ForecastGrowth         float64 `json:"forecast_growth"`
	NextPeakForecast       string  `json:"next_peak_forecast"`
	MostProfitableCategory string  `json:"most_profitable_category"`
	ProfitMargin           float64 `json:"profit_margin"`
}

// Default returns the insights reported for an empty record set.
func Default() Insights {
	return Insights{
		TopCategory:            NotAvailable,
		TopRegion:              NotAvailable,
		TopProduct:             NotAvailable,
		PeakMonth:              NotAvailable,
		LowMonth:               NotAvailable,
		NextPeakForecast:       NotAvailable,
		MostProfitableCategory: NotAvailable,
	}
}

// Map returns the metrics keyed by their serialized names.
func (in Insights) Map() map[string]any {
	return map[string]any{
		"total_sales":              in.TotalSales,
		"total_profit":             in.TotalProfit,
		"total_orders":             in.TotalOrders,
		"avg_order_value":          in.AvgOrderValue,
		"top_category":             in.TopCategory,
		"top_region":               in.TopRegion,
		"top_product":              in.TopProduct,
		"peak_month":               in.PeakMonth,
		"low_month":                in.LowMonth,
		"model_accuracy":           in.ModelAccuracy,
		"forecast_growth":          in.ForecastGrowth,
		"next_peak_forecast":       in.NextPeakForecast,
		"most_profitable_category": in.MostProfitableCategory,
		"profit_margin":            in.ProfitMargin,
	}
}

// Generate computes the insights. Columns missing from the table degrade
// the affected metrics to zero or NotAvailable, and every numeric result is
// finite.
func Generate(table *sales.Table, monthly sales.MonthlySeries, fc forecast.Series, accuracy float64) Insights {
	cols := table.Columns
	records := table.Records

	totalSales := decimal.Zero
	totalProfit := decimal.Zero
	orders := make(map[string]struct{})
	byCategory := make(map[string]float64)
	byRegion := make(map[string]float64)
	byProduct := make(map[string]float64)
	profitable := make(map[string]float64)

	for i := range records {
		r := &records[i]
		totalSales = totalSales.Add(decimal.NewFromFloat(finite(r.Sales)))
		if cols.Has(sales.ColumnProfit) {
			totalProfit = totalProfit.Add(decimal.NewFromFloat(finite(r.Profit)))
		}
		if cols.Has(sales.ColumnOrderID) {
			orders[r.OrderID] = struct{}{}
		}
		if cols.Has(sales.ColumnCategory) {
			byCategory[r.Category] += r.Sales
			if cols.Has(sales.ColumnProfit) && r.Profit > 0 {
				profitable[r.Category]++
			}
		}
		if cols.Has(sales.ColumnRegion) {
			byRegion[r.Region] += r.Sales
		}
		if cols.Has(sales.ColumnProductName) {
			byProduct[r.ProductName] += r.Sales
		}
	}

	in := Insights{
		TotalSales:             round(totalSales, 2),
		TotalProfit:            round(totalProfit, 2),
		TotalOrders:            len(orders),
		TopCategory:            topKey(byCategory),
		TopRegion:              topKey(byRegion),
		TopProduct:             truncate(topKey(byProduct), maxProductLen),
		PeakMonth:              NotAvailable,
		LowMonth:               NotAvailable,
		ModelAccuracy:          roundFloat(accuracy, 1),
		ForecastGrowth:         DefaultForecastGrowth,
		NextPeakForecast:       DefaultNextPeak,
		MostProfitableCategory: topKey(profitable),
	}

	if len(orders) > 0 {
		in.AvgOrderValue = round(totalSales.Div(decimal.NewFromInt(int64(len(orders)))), 2)
	}
	if totalSales.IsPositive() {
		in.ProfitMargin = roundFloat(totalProfit.Div(totalSales).InexactFloat64()*100, 2)
	}

	if len(monthly) > 0 {
		ts := monthly.Series()
		in.PeakMonth = ts.Timestamps[ts.ArgMax()].Format(MonthNameLayout)
		in.LowMonth = ts.Timestamps[ts.ArgMin()].Format(MonthNameLayout)
	}

	if len(monthly) >= trailingMonths && len(fc) > 0 {
		in.ForecastGrowth = growth(monthly, fc)
		peak := timeseries.New(fc.Values()).ArgMax()
		in.NextPeakForecast = fc[peak].Month.Format(MonthNameLayout)
	}

	return in
}

// growth compares the mean forecast with the mean of the trailing year, as a
// percentage. A non-positive trailing mean yields 0.
func growth(monthly sales.MonthlySeries, fc forecast.Series) float64 {
	recent := monthly.Series().Tail(trailingMonths).Mean()
	if recent <= 0 {
		return 0
	}
	ahead := timeseries.New(fc.Values()).Mean()
	return roundFloat((ahead/recent-1)*100, 2)
}

// topKey returns the key with the largest value, preferring the
// lexicographically first key on ties. An empty map yields NotAvailable.
func topKey(m map[string]float64) string {
	if len(m) == 0 {
		return NotAvailable
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if m[k] > m[best] {
			best = k
		}
	}
	return best
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func roundFloat(v float64, places int32) float64 {
	return decimal.NewFromFloat(finite(v)).Round(places).InexactFloat64()
}

func round(d decimal.Decimal, places int32) float64 {
	return finite(d.Round(places).InexactFloat64())
}

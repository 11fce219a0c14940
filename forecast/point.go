package forecast

import (
	"encoding/json"
	"time"

	"github.com/jsjsjsjee/FUTURE-ML-01/sales"
)

// Point is one forecast month with its band.
type Point struct {
	Month    time.Time
	Forecast float64
	Lower    float64
	Upper    float64
}

// MarshalJSON encodes the point as {"Month","Forecast","Lower_CI","Upper_CI"}.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Month    string
		Forecast float64
		Lower    float64 `json:"Lower_CI"`
		Upper    float64 `json:"Upper_CI"`
	}{p.Month.Format(sales.MonthLayout), p.Forecast, p.Lower, p.Upper})
}

// Series is an ordered run of forecast months.
type Series []Point

// Values returns the point forecasts.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Forecast
	}
	return out
}

// band scales f by lo and hi, ordering the results so the band always
// contains f, including when f is negative.
func band(f, lo, hi float64) (lower, upper float64) {
	a, b := f*lo, f*hi
	return min(a, b), max(a, b)
}

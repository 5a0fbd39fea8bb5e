package models

import (
	"sort"
	"strings"
	"time"
)

// RawRecord is one CSV row keyed by trimmed header name.
type RawRecord map[string]string

// Value returns the first present, non-blank value among candidates.
func (r RawRecord) Value(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if v, ok := r[c]; ok {
			if v = strings.TrimSpace(v); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// BarRecord is one screen technology averaged over 55-inch models.
type BarRecord struct {
	Technology     string  `json:"technology"`
	AvgConsumption float64 `json:"avg_consumption"` // watts
	Count          float64 `json:"count"`           // sample size as given, 1 when missing
}

// DonutRecord is one screen technology averaged over all sizes.
type DonutRecord struct {
	Technology  string  `json:"technology"`
	Consumption float64 `json:"consumption"` // kWh/year
}

// SpotPriceRow is one year of the spot price table before it is split into
// series. Missing prices read as 0.
type SpotPriceRow struct {
	Year   float64            `json:"year"`
	Prices map[string]float64 `json:"prices"`
}

// PricePoint is a single plotted sample of a series.
type PricePoint struct {
	Year  float64 `json:"year"`
	Price float64 `json:"price"` // $/MWh
}

// PriceSeries is one region's prices in ascending year order.
type PriceSeries struct {
	Name   string       `json:"name"`
	Values []PricePoint `json:"values"`
}

// Last returns the latest sample of the series.
func (s PriceSeries) Last() (PricePoint, bool) {
	if len(s.Values) == 0 {
		return PricePoint{}, false
	}
	return s.Values[len(s.Values)-1], true
}

// At returns the sample recorded for year.
func (s PriceSeries) At(year float64) (PricePoint, bool) {
	i := sort.Search(len(s.Values), func(i int) bool { return s.Values[i].Year >= year })
	if i < len(s.Values) && s.Values[i].Year == year {
		return s.Values[i], true
	}
	return PricePoint{}, false
}

// SpotPrices is the validated line chart dataset. Years holds every valid
// row's year in ascending order and spans the x axis even where no series
// has a positive price.
type SpotPrices struct {
	Years  []float64     `json:"years"`
	Series []PriceSeries `json:"series"`
}

// ScatterRecord is one TV model.
type ScatterRecord struct {
	Brand       string  `json:"brand"`
	ScreenTech  string  `json:"screen_tech"`
	ScreenSize  float64 `json:"screen_size"` // inches
	Consumption float64 `json:"consumption"` // kWh/year
	Stars       float64 `json:"stars"`
}

// Datasets holds the validated records of all four charts, as written to an
// export snapshot.
type Datasets struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Bar         []BarRecord       `json:"bar"`
	Donut       []DonutRecord     `json:"donut"`
	Line        SpotPrices        `json:"line"`
	Scatter     []ScatterRecord   `json:"scatter"`
	Errors      map[string]string `json:"errors,omitempty"`
}

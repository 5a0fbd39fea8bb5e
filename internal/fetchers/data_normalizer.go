package fetchers

import (
	"math"
	"strconv"

	"tvenergy/internal/config"
	"tvenergy/internal/models"
)

// Line chart series, drawn in this order.
var (
	StateSeries   = []string{"NSW", "VIC", "QLD", "SA", "WA"}
	AverageSeries = "Average"
)

// DataNormalizer resolves logical attributes from raw CSV rows using the
// candidate column lists of each chart
type DataNormalizer struct {
	charts config.ChartsConfig
}

// NewDataNormalizer creates a new data normalizer instance
func NewDataNormalizer(charts config.ChartsConfig) *DataNormalizer {
	return &DataNormalizer{charts: charts}
}

// text returns the first non-blank candidate value, or "".
func text(rec models.RawRecord, candidates []string) string {
	v, _ := rec.Value(candidates...)
	return v
}

// number parses the first non-blank candidate value. Missing, unparsable or
// infinite input yields NaN.
func number(rec models.RawRecord, candidates []string) float64 {
	v, ok := rec.Value(candidates...)
	if !ok {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

// NormalizeBar maps rows to bar records. A missing or zero count becomes 1.
func (n *DataNormalizer) NormalizeBar(raw []models.RawRecord) []models.BarRecord {
	fields := n.charts.Bar.Fields
	out := make([]models.BarRecord, 0, len(raw))
	for _, rec := range raw {
		count := number(rec, fields["count"])
		if math.IsNaN(count) || count == 0 {
			count = 1
		}
		out = append(out, models.BarRecord{
			Technology:     text(rec, fields["technology"]),
			AvgConsumption: number(rec, fields["avgConsumption"]),
			Count:          count,
		})
	}
	return out
}

// NormalizeDonut maps rows to donut records
func (n *DataNormalizer) NormalizeDonut(raw []models.RawRecord) []models.DonutRecord {
	fields := n.charts.Donut.Fields
	out := make([]models.DonutRecord, 0, len(raw))
	for _, rec := range raw {
		out = append(out, models.DonutRecord{
			Technology:  text(rec, fields["technology"]),
			Consumption: number(rec, fields["consumption"]),
		})
	}
	return out
}

// NormalizeSpotPrices maps rows to yearly price rows. A missing price reads
// as 0 and is never plotted.
func (n *DataNormalizer) NormalizeSpotPrices(raw []models.RawRecord) []models.SpotPriceRow {
	fields := n.charts.Line.Fields
	series := append(append([]string(nil), StateSeries...), AverageSeries)

	out := make([]models.SpotPriceRow, 0, len(raw))
	for _, rec := range raw {
		row := models.SpotPriceRow{
			Year:   number(rec, fields["year"]),
			Prices: make(map[string]float64, len(series)),
		}
		for _, name := range series {
			p := number(rec, fields[name])
			if math.IsNaN(p) {
				p = 0
			}
			row.Prices[name] = p
		}
		out = append(out, row)
	}
	return out
}

// NormalizeScatter maps rows to per-model scatter records
func (n *DataNormalizer) NormalizeScatter(raw []models.RawRecord) []models.ScatterRecord {
	fields := n.charts.Scatter.Fields
	out := make([]models.ScatterRecord, 0, len(raw))
	for _, rec := range raw {
		out = append(out, models.ScatterRecord{
			Brand:       text(rec, fields["brand"]),
			ScreenTech:  text(rec, fields["screenTech"]),
			ScreenSize:  number(rec, fields["screensize"]),
			Consumption: number(rec, fields["energy"]),
			Stars:       number(rec, fields["stars"]),
		})
	}
	return out
}

package fetchers

import (
	"math"
	"sort"

	"tvenergy/internal/models"
)

// positive reports whether v is a finite number above zero.
func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// ValidateBar keeps records with a technology and a positive consumption
func ValidateBar(records []models.BarRecord) ([]models.BarRecord, error) {
	var out []models.BarRecord
	for _, r := range records {
		if r.Technology != "" && positive(r.AvgConsumption) {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyDataset
	}
	return out, nil
}

// ValidateDonut keeps records with a technology and a positive consumption
func ValidateDonut(records []models.DonutRecord) ([]models.DonutRecord, error) {
	var out []models.DonutRecord
	for _, r := range records {
		if r.Technology != "" && positive(r.Consumption) {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyDataset
	}
	return out, nil
}

// ValidateSpotPrices drops rows without a positive year, sorts the rest by
// year and splits them into series. A state series is kept when it has at
// least one positive price; when no state qualifies the Average series is
// used instead. Only positive prices become points.
func ValidateSpotPrices(rows []models.SpotPriceRow) (models.SpotPrices, error) {
	var valid []models.SpotPriceRow
	for _, r := range rows {
		if positive(r.Year) {
			valid = append(valid, r)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool { return valid[i].Year < valid[j].Year })

	var result models.SpotPrices
	for _, r := range valid {
		result.Years = append(result.Years, r.Year)
	}

	for _, name := range StateSeries {
		if s, ok := buildSeries(valid, name); ok {
			result.Series = append(result.Series, s)
		}
	}
	if len(result.Series) == 0 {
		if s, ok := buildSeries(valid, AverageSeries); ok {
			result.Series = append(result.Series, s)
		}
	}

	if len(result.Series) == 0 {
		return models.SpotPrices{}, ErrEmptyDataset
	}
	return result, nil
}

func buildSeries(rows []models.SpotPriceRow, name string) (models.PriceSeries, bool) {
	s := models.PriceSeries{Name: name}
	for _, r := range rows {
		if p := r.Prices[name]; positive(p) {
			s.Values = append(s.Values, models.PricePoint{Year: r.Year, Price: p})
		}
	}
	return s, len(s.Values) > 0
}

// ValidateScatter keeps records with positive stars, consumption and size
func ValidateScatter(records []models.ScatterRecord) ([]models.ScatterRecord, error) {
	var out []models.ScatterRecord
	for _, r := range records {
		if positive(r.Stars) && positive(r.Consumption) && positive(r.ScreenSize) {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyDataset
	}
	return out, nil
}

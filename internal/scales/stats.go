package scales

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Max returns the largest value, NaN for an empty slice.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return floats.Max(values)
}

// Min returns the smallest value, NaN for an empty slice.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return floats.Min(values)
}

// Extent returns the smallest and largest value.
func Extent(values []float64) (float64, float64) {
	return Min(values), Max(values)
}

// Sum adds all values.
func Sum(values []float64) float64 {
	return floats.Sum(values)
}

// Mean returns the arithmetic mean, NaN for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

// Median returns the middle value, averaging the two middle values of an
// even-length input. The input is not modified.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// BisectLeft returns the first index i with sorted[i] >= x, or len(sorted).
func BisectLeft(sorted []float64, x float64) int {
	return sort.Search(len(sorted), func(i int) bool { return sorted[i] >= x })
}

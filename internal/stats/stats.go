// Package stats provides the scalar statistics behind the outlier pass and
// the summary queries.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean, 0 for an empty series.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the sample standard deviation (n-1 divisor), 0 for series
// shorter than two values.
func StdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := Mean(values)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-1))
}

// ZScores standardizes values against their mean and sample standard
// deviation. A degenerate series (zero deviation) yields all-zero scores,
// so nothing is ever flagged by division against it.
func ZScores(values []float64) []float64 {
	scores := make([]float64, len(values))
	std := StdDev(values)
	if std == 0 {
		return scores
	}
	mean := Mean(values)
	for i, v := range values {
		scores[i] = (v - mean) / std
	}
	return scores
}

// Median returns the middle value of the series, averaging the two middle
// values for even lengths.
func Median(values []float64) float64 {
	return Percentile(values, 50)
}

// Percentile returns the p-th percentile (0-100) using linear interpolation
// between closest ranks, 0 for an empty series.
func Percentile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Round2 rounds to cent precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "empty", values: nil, want: 0},
		{name: "single", values: []float64{7}, want: 7},
		{name: "series", values: []float64{1, 2, 3, 4, 5}, want: 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, Mean(test.values))
		})
	}
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "empty", values: nil, want: 0},
		{name: "single value has no deviation", values: []float64{5}, want: 0},
		{name: "constant series", values: []float64{4, 4, 4}, want: 0},
		{name: "sample deviation", values: []float64{1, 2, 3, 4, 5}, want: math.Sqrt(2.5)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, test.want, StdDev(test.values), 0.000001)
		})
	}
}

func TestZScores(t *testing.T) {
	t.Run("degenerate series yields all zero scores", func(t *testing.T) {
		scores := ZScores([]float64{5, 5, 5, 5})
		assert.Equal(t, []float64{0, 0, 0, 0}, scores)
	})

	t.Run("standardizes against mean and sample deviation", func(t *testing.T) {
		scores := ZScores([]float64{1, 2, 3, 4, 5})
		std := math.Sqrt(2.5)
		assert.InDelta(t, -2/std, scores[0], 0.000001)
		assert.InDelta(t, 0, scores[2], 0.000001)
		assert.InDelta(t, 2/std, scores[4], 0.000001)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, ZScores(nil))
	})
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{name: "empty", values: nil, p: 50, want: 0},
		{name: "median even length interpolates", values: []float64{4, 1, 3, 2}, p: 50, want: 2.5},
		{name: "p25", values: []float64{1, 2, 3, 4}, p: 25, want: 1.75},
		{name: "p100 is the maximum", values: []float64{1, 9, 4}, p: 100, want: 9},
		{name: "p0 is the minimum", values: []float64{1, 9, 4}, p: 0, want: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, test.want, Percentile(test.values, test.p), 0.000001)
		})
	}
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 2.0, Median([]float64{3, 1, 2}))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.2345))
	assert.Equal(t, 1.24, Round2(1.235))
	assert.Equal(t, 0.0, Round2(0.001))
}

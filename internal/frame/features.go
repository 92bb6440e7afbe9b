package frame

import (
	"fmt"
	"math"

	"ecopanel/internal/stats"
)

// Log returns the natural log of each observed positive value; zero, negative
// and missing values become missing.
func Log(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		if math.IsNaN(x) || x <= 0 {
			out[i] = math.NaN()
		} else {
			out[i] = math.Log(x)
		}
	}
	return out
}

// Squared returns each value squared, missing passing through.
func Squared(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		if math.IsNaN(x) {
			out[i] = math.NaN()
		} else {
			out[i] = x * x
		}
	}
	return out
}

// PctChange returns the percent change from periods observations earlier.
// The first periods entries, and entries whose base is missing or zero, are
// missing.
func PctChange(xs []float64, periods int) []float64 {
	out := make([]float64, len(xs))
	for i := range out {
		out[i] = math.NaN()
	}
	for i := periods; i < len(xs); i++ {
		base := xs[i-periods]
		if math.IsNaN(base) || base == 0 || math.IsNaN(xs[i]) {
			continue
		}
		out[i] = 100 * (xs[i] - base) / base
	}
	return out
}

// Diff returns the difference from periods observations earlier.
func Diff(xs []float64, periods int) []float64 {
	out := make([]float64, len(xs))
	for i := range out {
		out[i] = math.NaN()
	}
	for i := periods; i < len(xs); i++ {
		if math.IsNaN(xs[i-periods]) || math.IsNaN(xs[i]) {
			continue
		}
		out[i] = xs[i] - xs[i-periods]
	}
	return out
}

// Lag shifts the series forward by periods, introducing missing values at the
// start.
func Lag(xs []float64, periods int) []float64 {
	out := make([]float64, len(xs))
	for i := range out {
		out[i] = math.NaN()
	}
	for i := periods; i < len(xs); i++ {
		out[i] = xs[i-periods]
	}
	return out
}

// Ratio divides xs by ys element-wise; a missing or zero denominator yields
// missing.
func Ratio(xs, ys []float64) []float64 {
	out := make([]float64, len(xs))
	for i := range out {
		if i >= len(ys) || math.IsNaN(xs[i]) || math.IsNaN(ys[i]) || ys[i] == 0 {
			out[i] = math.NaN()
		} else {
			out[i] = xs[i] / ys[i]
		}
	}
	return out
}

// QuantileBins assigns each observed value to one of len(labels) equal-count
// bins by quantile cut points. Missing values get an empty label.
func QuantileBins(xs []float64, labels []string) []string {
	out := make([]string, len(xs))
	if len(labels) == 0 {
		return out
	}

	cuts := make([]float64, len(labels)-1)
	for i := range cuts {
		cuts[i] = stats.Quantile(xs, float64(i+1)/float64(len(labels)))
	}

	for i, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		bin := 0
		for bin < len(cuts) && x > cuts[bin] {
			bin++
		}
		out[i] = labels[bin]
	}
	return out
}

// DefaultBinLabels builds "q1".."qN" labels for quantile binning.
func DefaultBinLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("q%d", i+1)
	}
	return out
}

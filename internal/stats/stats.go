// Package stats implements the descriptive statistics, outlier detection and
// imputation primitives the pipeline stages share. All functions operate on
// float64 slices where NaN marks a missing observation, and none of them
// mutate their input.
package stats

import (
	"math"
	"sort"
)

// observed returns the non-NaN values of xs.
func observed(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// Count returns the number of non-missing observations.
func Count(xs []float64) int {
	n := 0
	for _, x := range xs {
		if !math.IsNaN(x) {
			n++
		}
	}
	return n
}

// Mean returns the arithmetic mean of the observed values, or NaN when there
// are none.
func Mean(xs []float64) float64 {
	sum, n := 0.0, 0
	for _, x := range xs {
		if !math.IsNaN(x) {
			sum += x
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// StdDev returns the sample standard deviation of the observed values, or NaN
// when there are fewer than two.
func StdDev(xs []float64) float64 {
	obs := observed(xs)
	if len(obs) < 2 {
		return math.NaN()
	}
	mean := Mean(obs)
	sum := 0.0
	for _, x := range obs {
		d := x - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(obs)-1))
}

// Min returns the smallest observed value, or NaN when there are none.
func Min(xs []float64) float64 {
	min := math.NaN()
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if math.IsNaN(min) || x < min {
			min = x
		}
	}
	return min
}

// Max returns the largest observed value, or NaN when there are none.
func Max(xs []float64) float64 {
	max := math.NaN()
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if math.IsNaN(max) || x > max {
			max = x
		}
	}
	return max
}

// Quantile returns the p-quantile (0 <= p <= 1) of the observed values using
// linear interpolation between order statistics, or NaN when there are none.
func Quantile(xs []float64, p float64) float64 {
	obs := observed(xs)
	if len(obs) == 0 || p < 0 || p > 1 {
		return math.NaN()
	}
	sort.Float64s(obs)
	if len(obs) == 1 {
		return obs[0]
	}
	pos := p * float64(len(obs)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return obs[lo]
	}
	frac := pos - float64(lo)
	return obs[lo]*(1-frac) + obs[hi]*frac
}

// Median returns the 0.5-quantile.
func Median(xs []float64) float64 { return Quantile(xs, 0.5) }

// Pearson returns the Pearson correlation between xs and ys over rows where
// both are observed, or NaN when fewer than two such rows exist. The slices
// must have equal length.
func Pearson(xs, ys []float64) float64 {
	if len(xs) != len(ys) {
		return math.NaN()
	}
	var px, py []float64
	for i := range xs {
		if !math.IsNaN(xs[i]) && !math.IsNaN(ys[i]) {
			px = append(px, xs[i])
			py = append(py, ys[i])
		}
	}
	if len(px) < 2 {
		return math.NaN()
	}
	mx, my := Mean(px), Mean(py)
	var sxy, sxx, syy float64
	for i := range px {
		dx, dy := px[i]-mx, py[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN()
	}
	return sxy / math.Sqrt(sxx*syy)
}

package stats

import "math"

// InterpolateLinear fills interior gaps by linear interpolation between the
// nearest observed neighbors and returns a new slice. Leading and trailing
// gaps are left missing; FillForward/FillBackward handle those.
func InterpolateLinear(xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)

	prev := -1
	for i, x := range out {
		if math.IsNaN(x) {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			step := (out[i] - out[prev]) / float64(i-prev)
			for j := prev + 1; j < i; j++ {
				out[j] = out[prev] + step*float64(j-prev)
			}
		}
		prev = i
	}
	return out
}

// FillForward propagates the last observed value into subsequent gaps.
func FillForward(xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	last := math.NaN()
	for i, x := range out {
		if math.IsNaN(x) {
			out[i] = last
		} else {
			last = x
		}
	}
	return out
}

// FillBackward propagates the next observed value into preceding gaps.
func FillBackward(xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	next := math.NaN()
	for i := len(out) - 1; i >= 0; i-- {
		if math.IsNaN(out[i]) {
			out[i] = next
		} else {
			next = out[i]
		}
	}
	return out
}

// FillConstant replaces missing values with v.
func FillConstant(xs []float64, v float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		if math.IsNaN(x) {
			out[i] = v
		} else {
			out[i] = x
		}
	}
	return out
}

// ImputeSeries runs the pipeline's standard per-country imputation: linear
// interpolation for interior gaps, then forward and backward fill for the
// edges. The second return value is the number of cells that were filled.
func ImputeSeries(xs []float64) ([]float64, int) {
	before := Count(xs)
	out := FillBackward(FillForward(InterpolateLinear(xs)))
	return out, Count(out) - before
}

package stats

import "math"

// Bounds is a closed interval used for outlier fences and winsorization.
type Bounds struct {
	Lower float64
	Upper float64
}

// IQRBounds returns the Tukey fences Q1-k*IQR and Q3+k*IQR.
func IQRBounds(xs []float64, k float64) Bounds {
	q1 := Quantile(xs, 0.25)
	q3 := Quantile(xs, 0.75)
	iqr := q3 - q1
	return Bounds{Lower: q1 - k*iqr, Upper: q3 + k*iqr}
}

// OutliersIQR flags values outside the Tukey fences. Missing values are never
// flagged.
func OutliersIQR(xs []float64, k float64) []bool {
	b := IQRBounds(xs, k)
	flags := make([]bool, len(xs))
	for i, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		flags[i] = x < b.Lower || x > b.Upper
	}
	return flags
}

// OutliersZScore flags values whose absolute Z-score exceeds threshold.
// Missing values are never flagged, and a zero or undefined standard
// deviation flags nothing.
func OutliersZScore(xs []float64, threshold float64) []bool {
	flags := make([]bool, len(xs))
	mean := Mean(xs)
	sd := StdDev(xs)
	if math.IsNaN(sd) || sd == 0 {
		return flags
	}
	for i, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		flags[i] = math.Abs((x-mean)/sd) > threshold
	}
	return flags
}

// CountFlags returns the number of true entries.
func CountFlags(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

// Winsorize clamps observed values into the given quantile range and returns
// a new slice. Missing values pass through.
func Winsorize(xs []float64, lowerQ, upperQ float64) []float64 {
	lo := Quantile(xs, lowerQ)
	hi := Quantile(xs, upperQ)
	out := make([]float64, len(xs))
	for i, x := range xs {
		switch {
		case math.IsNaN(x):
			out[i] = x
		case x < lo:
			out[i] = lo
		case x > hi:
			out[i] = hi
		default:
			out[i] = x
		}
	}
	return out
}

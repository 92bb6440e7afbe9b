package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

func TestMeanStdDev(t *testing.T) {
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 5.0, Mean(xs), 1e-9)
	assert.InDelta(t, 2.138, StdDev(xs), 0.001)

	withGaps := []float64{2, nan, 4, nan, 6}
	assert.InDelta(t, 4.0, Mean(withGaps), 1e-9)
	assert.Equal(t, 3, Count(withGaps))

	assert.True(t, math.IsNaN(Mean([]float64{nan, nan})))
	assert.True(t, math.IsNaN(StdDev([]float64{1})))
}

func TestQuantile(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 1.0, Quantile(xs, 0), 1e-9)
	assert.InDelta(t, 3.0, Quantile(xs, 0.5), 1e-9)
	assert.InDelta(t, 5.0, Quantile(xs, 1), 1e-9)
	assert.InDelta(t, 2.0, Quantile(xs, 0.25), 1e-9)

	// Interpolated between order statistics.
	assert.InDelta(t, 1.5, Quantile([]float64{1, 2}, 0.5), 1e-9)

	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
	assert.True(t, math.IsNaN(Quantile(xs, 1.5)))
}

func TestMinMaxMedian(t *testing.T) {
	xs := []float64{nan, 3, 1, nan, 2}
	assert.InDelta(t, 1.0, Min(xs), 1e-9)
	assert.InDelta(t, 3.0, Max(xs), 1e-9)
	assert.InDelta(t, 2.0, Median(xs), 1e-9)
}

func TestPearson(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{2, 4, 6, 8, 10}
	assert.InDelta(t, 1.0, Pearson(xs, ys), 1e-9)

	inverse := []float64{10, 8, 6, 4, 2}
	assert.InDelta(t, -1.0, Pearson(xs, inverse), 1e-9)

	// Rows with a missing side are dropped pairwise.
	gappy := []float64{2, nan, 6, 8, 10}
	assert.InDelta(t, 1.0, Pearson(xs, gappy), 1e-9)

	assert.True(t, math.IsNaN(Pearson(xs, []float64{1, 2})))
	assert.True(t, math.IsNaN(Pearson([]float64{1, 1, 1}, []float64{1, 2, 3})))
}

func TestOutliersIQR(t *testing.T) {
	xs := []float64{10, 11, 12, 11, 10, 12, 11, 100}
	flags := OutliersIQR(xs, 1.5)
	require.Len(t, flags, len(xs))
	assert.True(t, flags[len(flags)-1], "100 should be flagged")
	assert.Equal(t, 1, CountFlags(flags))

	// Missing values are never flagged.
	withGap := []float64{10, nan, 11, 12, 11, 100}
	flags = OutliersIQR(withGap, 1.5)
	assert.False(t, flags[1])
}

func TestOutliersZScore(t *testing.T) {
	xs := []float64{1, 2, 1, 2, 1, 2, 1, 2, 1, 2, 50}
	flags := OutliersZScore(xs, 3)
	assert.True(t, flags[len(flags)-1])
	assert.Equal(t, 1, CountFlags(flags))

	// Constant series has zero deviation and flags nothing.
	constant := []float64{5, 5, 5, 5}
	assert.Equal(t, 0, CountFlags(OutliersZScore(constant, 3)))
}

func TestWinsorize(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100}
	out := Winsorize(xs, 0.05, 0.95)
	assert.Less(t, out[len(out)-1], 100.0)
	assert.InDelta(t, Quantile(xs, 0.05), out[0], 1e-9)
	// Input must not be mutated.
	assert.Equal(t, 100.0, xs[len(xs)-1])
}

func TestInterpolateLinear(t *testing.T) {
	xs := []float64{1, nan, nan, 4}
	out := InterpolateLinear(xs)
	assert.InDelta(t, 2.0, out[1], 1e-9)
	assert.InDelta(t, 3.0, out[2], 1e-9)

	// Edges stay missing.
	edges := []float64{nan, 2, nan, 4, nan}
	out = InterpolateLinear(edges)
	assert.True(t, math.IsNaN(out[0]))
	assert.InDelta(t, 3.0, out[2], 1e-9)
	assert.True(t, math.IsNaN(out[4]))
}

func TestFillForwardBackward(t *testing.T) {
	xs := []float64{nan, 2, nan, 4, nan}

	fwd := FillForward(xs)
	assert.True(t, math.IsNaN(fwd[0]))
	assert.InDelta(t, 2.0, fwd[2], 1e-9)
	assert.InDelta(t, 4.0, fwd[4], 1e-9)

	bwd := FillBackward(xs)
	assert.InDelta(t, 2.0, bwd[0], 1e-9)
	assert.InDelta(t, 4.0, bwd[2], 1e-9)
	assert.True(t, math.IsNaN(bwd[4]))
}

func TestImputeSeries(t *testing.T) {
	xs := []float64{nan, 2, nan, nan, 8, nan}
	out, filled := ImputeSeries(xs)

	assert.Equal(t, 4, filled)
	assert.InDelta(t, 2.0, out[0], 1e-9)
	assert.InDelta(t, 4.0, out[2], 1e-9)
	assert.InDelta(t, 6.0, out[3], 1e-9)
	assert.InDelta(t, 8.0, out[5], 1e-9)
	// Original untouched.
	assert.True(t, math.IsNaN(xs[0]))
}

func TestImputeSeries_AllMissing(t *testing.T) {
	xs := []float64{nan, nan, nan}
	out, filled := ImputeSeries(xs)
	assert.Equal(t, 0, filled)
	for _, v := range out {
		assert.True(t, math.IsNaN(v))
	}
}

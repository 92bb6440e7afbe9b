package plot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestHistogram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figures", "co2_hist.png")
	xs := []float64{1, 2, 2, 3, 3, 3, 4, math.NaN(), 5}

	err := Histogram(path, "CO2 per capita", "t CO2", xs, 5)
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestHistogramAllMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	err := Histogram(path, "empty", "x", []float64{math.NaN()}, 5)
	require.Error(t, err)
}

func TestScatterSkipsMissingPairs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scatter.png")
	xs := []float64{1, 2, math.NaN(), 4}
	ys := []float64{10, math.NaN(), 30, 40}

	err := Scatter(path, "GDP vs CO2", "gdp", "co2", xs, ys)
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trend.png")
	years := []float64{2000, 2001, 2002, 2003}
	values := []float64{1.0, 1.1, 1.3, 1.2}

	err := Line(path, "Global CO2 trend", "year", "t CO2", years, values)
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestBox(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.png")
	groups := map[string][]float64{
		"Europe": {1, 2, 3, 4, 10},
		"Africa": {0.5, 0.7, 0.9},
		"Empty":  {math.NaN()},
	}

	err := Box(path, "CO2 by region", "t CO2", groups, []string{"Europe", "Africa", "Empty"})
	require.NoError(t, err)
	assertPNG(t, path)
}

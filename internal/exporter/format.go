package exporter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// formatFloat renders a float cell for export. Missing values become empty
// cells; integral values drop the fraction so year-like columns stay clean.
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatFloatCell re-renders a float cell gota already stringified (gota
// prints "1.500000"). Cells that do not parse fall back to cleanCell.
func formatFloatCell(v string) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return cleanCell(v)
	}
	return formatFloat(f)
}

// formatPct renders a percentage with two decimals, e.g. for codebook rows.
func formatPct(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// cleanCell normalizes a raw record cell: gota renders missing values as
// "NaN", which must not leak into exported files.
func cleanCell(v string) string {
	switch strings.TrimSpace(v) {
	case "NaN", "NA", "<nil>":
		return ""
	}
	return v
}

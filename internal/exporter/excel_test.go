package exporter

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "final", "dataset.xlsx")

	df := dataframe.New(
		series.New([]string{"France", "Brazil"}, series.String, "country"),
		series.New([]int{2000, 2000}, series.Int, "year"),
		series.New([]float64{1.5, math.NaN()}, series.Float, "co2_per_capita"),
	)
	codebook := []CodebookEntry{
		{Name: "country", Type: "string", Description: "Canonical country name", MissingPct: 0},
		{Name: "year", Type: "int", Description: "Observation year", MissingPct: 0},
		{Name: "co2_per_capita", Type: "float", Description: "CO2 emissions per capita (t)", MissingPct: 50},
	}

	err := NewWorkbookWriter().WriteWorkbook(path, df, codebook)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Data", "Codebook"}, f.GetSheetList())

	header, err := f.GetCellValue("Data", "A1")
	require.NoError(t, err)
	assert.Equal(t, "country", header)

	value, err := f.GetCellValue("Data", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Brazil", value)

	// Missing cell is empty, not "NaN".
	missing, err := f.GetCellValue("Data", "C3")
	require.NoError(t, err)
	assert.Empty(t, missing)

	desc, err := f.GetCellValue("Codebook", "C4")
	require.NoError(t, err)
	assert.Equal(t, "CO2 emissions per capita (t)", desc)

	pct, err := f.GetCellValue("Codebook", "D4")
	require.NoError(t, err)
	assert.Equal(t, "50.00", pct)
}

package dataset

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ecopanel/internal/errors"
)

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeTestSQLite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "countries.sqlite")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE countries (name TEXT, alpha_3 TEXT, population INTEGER)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO countries VALUES
		('France', 'FRA', 67000000),
		('Brazil', 'BRA', 212000000),
		('Kosovo', NULL, 1800000)`)
	require.NoError(t, err)

	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTestCSV(t, "country,year,co2\nFrance,2000,1.5\nBrazil,2000,2.1\n")

	df, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 2, df.Nrow())
	assert.Equal(t, []string{"country", "year", "co2"}, df.Names())
}

func TestLoadCSVEmpty(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"header only", "country,year\n"},
		{"no content at all", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestCSV(t, tt.content)

			_, err := LoadCSV(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrEmptyDataset)
		})
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestLoadSQLiteTable(t *testing.T) {
	path := writeTestSQLite(t)

	df, err := LoadSQLiteTable(path, "countries")
	require.NoError(t, err)
	assert.Equal(t, 3, df.Nrow())
	assert.Equal(t, []string{"name", "alpha_3", "population"}, df.Names())

	// NULL is loaded as a missing cell.
	records := df.Col("alpha_3").Records()
	assert.Equal(t, "FRA", records[0])
	assert.Contains(t, []string{"", "NaN"}, records[2])
}

func TestLoadSQLiteTableMissingFile(t *testing.T) {
	_, err := LoadSQLiteTable(filepath.Join(t.TempDir(), "nope.sqlite"), "countries")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNoSQLiteFile)
}

func TestLoadSQLiteTableRejectsBadName(t *testing.T) {
	path := writeTestSQLite(t)
	_, err := LoadSQLiteTable(path, "countries; DROP TABLE countries")
	require.Error(t, err)
}

func TestListTables(t *testing.T) {
	path := writeTestSQLite(t)

	tables, err := ListTables(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"countries"}, tables)
}

func TestFindSQLiteAndCSV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "world.sqlite"), []byte("x"), 0644))

	found, err := FindSQLite(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nested", "world.sqlite"), found)

	_, err = FindCSV(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNoCSVFile)
}

// Package dataset loads the raw source files into dataframes.
//
// Two source shapes exist: plain CSV files (CO2 and sustainable-energy
// datasets) and a sqlite database (countries reference dataset). Loaders
// return gota dataframes with types detected from the data.
package dataset

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	_ "modernc.org/sqlite"

	apperrors "ecopanel/internal/errors"
)

// LoadCSV reads a CSV file into a dataframe with detected column types.
func LoadCSV(path string) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	df := dataframe.ReadCSV(file,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
	)
	if err := df.Error(); err != nil {
		// gota reports a header-only CSV as an error rather than a frame
		// with zero rows.
		if strings.Contains(err.Error(), "empty DataFrame") {
			return dataframe.DataFrame{}, fmt.Errorf("%s: %w", path, apperrors.ErrEmptyDataset)
		}
		return dataframe.DataFrame{}, apperrors.WrapStageError("dataset", apperrors.CodeParseFailed,
			fmt.Sprintf("failed to parse %s", path), err)
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%s: %w", path, apperrors.ErrEmptyDataset)
	}
	return df, nil
}

// LoadSQLiteTable reads one table of a sqlite database into a dataframe.
// NULL cells become missing values.
func LoadSQLiteTable(path, table string) (dataframe.DataFrame, error) {
	if _, err := os.Stat(path); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%s: %w", path, apperrors.ErrNoSQLiteFile)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	defer db.Close()

	if !validIdentifier(table) {
		return dataframe.DataFrame{}, fmt.Errorf("invalid table name %q", table)
	}

	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %q", table))
	if err != nil {
		return dataframe.DataFrame{}, apperrors.WrapStageError("dataset", apperrors.CodeParseFailed,
			fmt.Sprintf("failed to query table %s", table), err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to read columns: %w", err)
	}

	records := [][]string{columns}
	values := make([]sql.NullString, len(columns))
	scanTargets := make([]any, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("failed to scan row: %w", err)
		}
		record := make([]string, len(columns))
		for i, v := range values {
			if v.Valid {
				record[i] = v.String
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to iterate rows: %w", err)
	}
	if len(records) == 1 {
		return dataframe.DataFrame{}, fmt.Errorf("table %s: %w", table, apperrors.ErrEmptyDataset)
	}

	df := dataframe.LoadRecords(records, dataframe.DetectTypes(true))
	if df.Error() != nil {
		return dataframe.DataFrame{}, apperrors.WrapStageError("dataset", apperrors.CodeParseFailed,
			fmt.Sprintf("failed to build frame from table %s", table), df.Error())
	}
	return df, nil
}

// ListTables returns the user table names of a sqlite database.
func ListTables(path string) ([]string, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// FindSQLite locates the first sqlite file under dir.
func FindSQLite(dir string) (string, error) {
	return findByExt(dir, apperrors.ErrNoSQLiteFile, ".sqlite", ".sqlite3", ".db")
}

// FindCSV locates the first CSV file under dir.
func FindCSV(dir string) (string, error) {
	return findByExt(dir, apperrors.ErrNoCSVFile, ".csv")
}

func findByExt(dir string, notFound error, exts ...string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range exts {
			if ext == want {
				found = path
				return fs.SkipAll
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if found == "" {
		return "", fmt.Errorf("%s: %w", dir, notFound)
	}
	return found, nil
}

// validIdentifier allows only plain table names into the query.
func validIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

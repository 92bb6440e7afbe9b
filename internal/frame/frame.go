// Package frame wraps the gota dataframe with the table helpers the pipeline
// stages share: column-name standardization, missing-value accounting,
// filtering and column selection. Helpers return new dataframes; gota frames
// are treated as immutable throughout.
package frame

import (
	"math"
	"regexp"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Info summarizes the shape of a table.
type Info struct {
	Rows    int
	Cols    int
	Columns []string
}

// Describe returns the shape summary of df.
func Describe(df dataframe.DataFrame) Info {
	return Info{Rows: df.Nrow(), Cols: df.Ncol(), Columns: df.Names()}
}

// HasColumn reports whether df has a column with the given name.
func HasColumn(df dataframe.DataFrame, name string) bool {
	for _, col := range df.Names() {
		if col == name {
			return true
		}
	}
	return false
}

// MissingCount holds missing-value statistics for one column.
type MissingCount struct {
	Column  string
	Missing int
	Pct     float64
}

// missingCell reports whether a raw record cell denotes a missing value.
func missingCell(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == "NaN" || v == "NA" || v == "<nil>"
}

// MissingSummary returns per-column missing counts, in column order.
func MissingSummary(df dataframe.DataFrame) []MissingCount {
	n := df.Nrow()
	out := make([]MissingCount, 0, df.Ncol())
	for _, name := range df.Names() {
		missing := 0
		for _, v := range df.Col(name).Records() {
			if missingCell(v) {
				missing++
			}
		}
		pct := 0.0
		if n > 0 {
			pct = 100 * float64(missing) / float64(n)
		}
		out = append(out, MissingCount{Column: name, Missing: missing, Pct: pct})
	}
	return out
}

// MissingPct returns the overall share of missing cells in df, in percent.
func MissingPct(df dataframe.DataFrame) float64 {
	total := df.Nrow() * df.Ncol()
	if total == 0 {
		return 0
	}
	missing := 0
	for _, col := range MissingSummary(df) {
		missing += col.Missing
	}
	return 100 * float64(missing) / float64(total)
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// SnakeCase normalizes one column name: lower case, runs of non-alphanumeric
// characters collapsed to single underscores.
func SnakeCase(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlnum.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// StandardizeColumnNames renames every column to snake_case and returns the
// renamed frame plus the old-to-new mapping for columns that changed.
func StandardizeColumnNames(df dataframe.DataFrame) (dataframe.DataFrame, map[string]string) {
	renamed := map[string]string{}
	out := df
	for _, name := range df.Names() {
		cleaned := SnakeCase(name)
		if cleaned != name && cleaned != "" {
			out = out.Rename(cleaned, name)
			renamed[name] = cleaned
		}
	}
	return out, renamed
}

// FilterYearRange keeps rows whose yearCol value lies in [minYear, maxYear].
// Frames without the column pass through unchanged.
func FilterYearRange(df dataframe.DataFrame, yearCol string, minYear, maxYear int) dataframe.DataFrame {
	if !HasColumn(df, yearCol) {
		return df
	}
	return df.Filter(
		dataframe.F{Colname: yearCol, Comparator: series.GreaterEq, Comparando: minYear},
	).Filter(
		dataframe.F{Colname: yearCol, Comparator: series.LessEq, Comparando: maxYear},
	)
}

// NumericColumns returns the names of float and int columns.
func NumericColumns(df dataframe.DataFrame) []string {
	var out []string
	names := df.Names()
	for i, typ := range df.Types() {
		if typ == series.Float || typ == series.Int {
			out = append(out, names[i])
		}
	}
	return out
}

// FloatColumn extracts a column as float64 values, NaN for missing cells.
func FloatColumn(df dataframe.DataFrame, name string) []float64 {
	return df.Col(name).Float()
}

// StringColumn extracts a column as strings, "" for missing cells.
func StringColumn(df dataframe.DataFrame, name string) []string {
	records := df.Col(name).Records()
	out := make([]string, len(records))
	for i, v := range records {
		if missingCell(v) {
			out[i] = ""
		} else {
			out[i] = v
		}
	}
	return out
}

// WithFloatColumn returns df with a float column set (replaced or appended).
func WithFloatColumn(df dataframe.DataFrame, name string, values []float64) dataframe.DataFrame {
	return df.Mutate(series.New(values, series.Float, name))
}

// WithStringColumn returns df with a string column set (replaced or appended).
func WithStringColumn(df dataframe.DataFrame, name string, values []string) dataframe.DataFrame {
	return df.Mutate(series.New(values, series.String, name))
}

// DropColumns returns df without the named columns. Missing names are
// ignored.
func DropColumns(df dataframe.DataFrame, names ...string) dataframe.DataFrame {
	drop := map[string]struct{}{}
	for _, name := range names {
		drop[name] = struct{}{}
	}
	var keep []string
	for _, name := range df.Names() {
		if _, ok := drop[name]; !ok {
			keep = append(keep, name)
		}
	}
	return df.Select(keep)
}

// SelectColumns returns df restricted to the named columns that exist, in the
// given order.
func SelectColumns(df dataframe.DataFrame, names ...string) dataframe.DataFrame {
	var keep []string
	for _, name := range names {
		if HasColumn(df, name) {
			keep = append(keep, name)
		}
	}
	return df.Select(keep)
}

// DropConstantColumns removes columns whose observed values are all equal.
func DropConstantColumns(df dataframe.DataFrame) (dataframe.DataFrame, []string) {
	var dropped []string
	for _, name := range df.Names() {
		distinct := map[string]struct{}{}
		for _, v := range df.Col(name).Records() {
			if !missingCell(v) {
				distinct[v] = struct{}{}
			}
		}
		if len(distinct) <= 1 {
			dropped = append(dropped, name)
		}
	}
	if len(dropped) == 0 {
		return df, nil
	}
	return DropColumns(df, dropped...), dropped
}

// DropHighMissing removes columns whose missing share exceeds maxPct.
// Columns in keep are always retained.
func DropHighMissing(df dataframe.DataFrame, maxPct float64, keep ...string) (dataframe.DataFrame, []string) {
	protected := map[string]struct{}{}
	for _, name := range keep {
		protected[name] = struct{}{}
	}
	var dropped []string
	for _, col := range MissingSummary(df) {
		if _, ok := protected[col.Column]; ok {
			continue
		}
		if col.Pct > maxPct {
			dropped = append(dropped, col.Column)
		}
	}
	if len(dropped) == 0 {
		return df, nil
	}
	return DropColumns(df, dropped...), dropped
}

// GroupApplyFloat applies fn to valueCol within each contiguous run of equal
// groupCol values and returns the transformed column. The frame must already
// be sorted by group (and, within groups, by time) for runs to be contiguous.
func GroupApplyFloat(df dataframe.DataFrame, groupCol, valueCol string, fn func([]float64) []float64) []float64 {
	groups := StringColumn(df, groupCol)
	values := FloatColumn(df, valueCol)
	out := make([]float64, len(values))

	start := 0
	for i := 1; i <= len(groups); i++ {
		if i == len(groups) || groups[i] != groups[start] {
			copy(out[start:i], fn(values[start:i]))
			start = i
		}
	}
	return out
}

// IsMissing reports whether a float cell is missing.
func IsMissing(v float64) bool { return math.IsNaN(v) }

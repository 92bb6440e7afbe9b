package stages

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"

	"ecopanel/internal/frame"
	"ecopanel/internal/operations"
	"ecopanel/internal/plot"
	"ecopanel/internal/report"
	"ecopanel/internal/stats"
)

// Core indicators the exploratory figures and the correlation matrix focus
// on, in preference order. Only those present in the panel are used.
var edaFocusColumns = []string{
	"co2", "co2_per_capita", "gdp", "population",
	"primary_energy_consumption", "primary_energy_consumption_twh", "energy_per_capita",
	"access_to_electricity_of_population",
	"renewable_energy_share_in_the_total_final_energy_consumption",
}

// EDAStep profiles the merged panel: summary statistics, correlations and
// distribution figures. It only reads.
type EDAStep struct {
	operations.BaseStep
	deps Deps
}

// NewEDAStep creates the exploratory analysis step.
func NewEDAStep(deps Deps) *EDAStep {
	return &EDAStep{
		BaseStep: operations.NewBaseStep(operations.StepIDEDA, operations.StepNameEDA),
		deps:     deps,
	}
}

// Validate requires the merged panel.
func (s *EDAStep) Validate(state *operations.State) error {
	_, err := state.RequireFrame(s.ID(), operations.FrameMerged)
	return err
}

// Execute writes the exploratory report and its figures.
func (s *EDAStep) Execute(ctx context.Context, state *operations.State) error {
	df, err := state.RequireFrame(s.ID(), operations.FrameMerged)
	if err != nil {
		return err
	}

	doc := report.NewBuilder().
		H1("Exploratory Analysis").
		Paragraphf("The merged panel holds %d observations of %d variables.", df.Nrow(), df.Ncol())

	doc.H2("Summary statistics")
	doc.Table(
		[]string{"Variable", "Count", "Mean", "Std", "Min", "Median", "Max"},
		summaryRows(df),
	)

	focus := presentColumns(df, edaFocusColumns)
	if len(focus) >= 2 {
		doc.H2("Correlations")
		doc.Table(correlationTable(df, focus))
	}

	s.addFigures(doc, df)

	return doc.Save(s.deps.Paths.ReportPath("04_eda.md"))
}

// addFigures renders the standard figures, embedding each one that could be
// drawn. A figure that cannot be drawn (column absent, all missing) is
// skipped rather than failing the run.
func (s *EDAStep) addFigures(doc *report.Builder, df dataframe.DataFrame) {
	doc.H2("Figures")

	if frame.HasColumn(df, "co2_per_capita") {
		path := s.deps.Paths.FigurePath("co2_per_capita_hist.png")
		err := plot.Histogram(path, "CO2 per capita", "t CO2 per person",
			frame.FloatColumn(df, "co2_per_capita"), 30)
		if err == nil {
			doc.Image(relFigure("co2_per_capita_hist.png"), "CO2 per capita distribution", "Distribution of CO2 emissions per capita.")
		}
	}

	if frame.HasColumn(df, "gdp") && frame.HasColumn(df, "co2") {
		path := s.deps.Paths.FigurePath("gdp_vs_co2.png")
		err := plot.Scatter(path, "GDP vs CO2", "GDP", "CO2 (Mt)",
			frame.FloatColumn(df, "gdp"), frame.FloatColumn(df, "co2"))
		if err == nil {
			doc.Image(relFigure("gdp_vs_co2.png"), "GDP vs CO2", "Total CO2 emissions against GDP.")
		}
	}

	if frame.HasColumn(df, "year") && frame.HasColumn(df, "co2_per_capita") {
		years, means := yearlyMeans(df, "year", "co2_per_capita")
		path := s.deps.Paths.FigurePath("co2_per_capita_trend.png")
		if err := plot.Line(path, "Mean CO2 per capita by year", "year", "t CO2 per person", years, means); err == nil {
			doc.Image(relFigure("co2_per_capita_trend.png"), "CO2 per capita trend", "Cross-country mean of CO2 per capita by year.")
		}
	}
}

// relFigure returns the figure path relative to the reports directory, which
// is where the markdown files live.
func relFigure(filename string) string {
	return "figures/" + filename
}

// summaryRows builds the per-variable summary statistics table.
func summaryRows(df dataframe.DataFrame) [][]string {
	cols := frame.NumericColumns(df)
	rows := make([][]string, 0, len(cols))
	for _, col := range cols {
		xs := frame.FloatColumn(df, col)
		rows = append(rows, []string{
			col,
			fmt.Sprintf("%d", stats.Count(xs)),
			fmt.Sprintf("%.3f", stats.Mean(xs)),
			fmt.Sprintf("%.3f", stats.StdDev(xs)),
			fmt.Sprintf("%.3f", stats.Min(xs)),
			fmt.Sprintf("%.3f", stats.Median(xs)),
			fmt.Sprintf("%.3f", stats.Max(xs)),
		})
	}
	return rows
}

// firstPresent returns the first candidate column df has, or "".
func firstPresent(df dataframe.DataFrame, candidates ...string) string {
	for _, col := range candidates {
		if frame.HasColumn(df, col) {
			return col
		}
	}
	return ""
}

// presentColumns filters candidates down to the columns df actually has.
func presentColumns(df dataframe.DataFrame, candidates []string) []string {
	var out []string
	for _, col := range candidates {
		if frame.HasColumn(df, col) {
			out = append(out, col)
		}
	}
	return out
}

// correlationTable builds the pairwise Pearson correlation matrix for the
// given columns.
func correlationTable(df dataframe.DataFrame, cols []string) ([]string, [][]string) {
	headers := append([]string{""}, cols...)
	rows := make([][]string, 0, len(cols))
	values := make(map[string][]float64, len(cols))
	for _, col := range cols {
		values[col] = frame.FloatColumn(df, col)
	}
	for _, rowCol := range cols {
		row := []string{rowCol}
		for _, colCol := range cols {
			r := stats.Pearson(values[rowCol], values[colCol])
			row = append(row, fmt.Sprintf("%.3f", r))
		}
		rows = append(rows, row)
	}
	return headers, rows
}

// yearlyMeans computes the mean of valueCol per distinct year, sorted by
// year.
func yearlyMeans(df dataframe.DataFrame, yearCol, valueCol string) (years, means []float64) {
	yearValues := frame.FloatColumn(df, yearCol)
	values := frame.FloatColumn(df, valueCol)

	byYear := map[float64][]float64{}
	for i, y := range yearValues {
		if frame.IsMissing(y) {
			continue
		}
		byYear[y] = append(byYear[y], values[i])
	}

	years = make([]float64, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Float64s(years)

	means = make([]float64, len(years))
	for i, y := range years {
		means[i] = stats.Mean(byYear[y])
	}
	return years, means
}

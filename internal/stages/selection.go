package stages

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"ecopanel/internal/exporter"
	"ecopanel/internal/frame"
	"ecopanel/internal/operations"
	"ecopanel/internal/report"
)

// metaCodebookKey carries the codebook from selection to export.
const metaCodebookKey = "codebook"

// finalColumns is the preferred final variable set, in output order. Only
// the columns present in the treated panel make it into the final dataset;
// every surviving engineered variable not listed here is appended after.
var finalColumns = []string{
	"country", "iso_code", "region", "year",
	"co2", "co2_per_capita", "co2_growth_pct", "co2_per_capita_lag1",
	"gdp", "gdp_per_capita", "log_gdp", "population",
	"primary_energy_consumption", "primary_energy_consumption_twh", "energy_intensity",
	"access_to_electricity_of_population",
	"renewable_energy_share_in_the_total_final_energy_consumption",
	"log_co2_per_capita", "co2_per_capita_squared", "co2_quartile",
}

// variableDescriptions feeds the codebook. Variables without an entry get a
// generic description.
var variableDescriptions = map[string]string{
	"country":                "Canonical country name",
	"iso_code":               "ISO 3166-1 alpha-3 code",
	"region":                 "Continental region",
	"year":                   "Observation year",
	"co2":                    "Total CO2 emissions (Mt)",
	"co2_per_capita":         "CO2 emissions per capita (t)",
	"co2_growth_pct":         "Year-over-year CO2 growth within country (%)",
	"co2_per_capita_lag1":    "CO2 per capita, previous year",
	"gdp":                    "Gross domestic product (constant USD)",
	"gdp_per_capita":         "GDP per capita (constant USD)",
	"log_gdp":                "Natural log of GDP",
	"population":             "Population",
	"energy_intensity":       "Primary energy consumption per unit of GDP",
	"primary_energy_consumption_twh": "Primary energy consumption (TWh)",
	"log_co2_per_capita":     "Natural log of CO2 per capita",
	"co2_per_capita_squared": "CO2 per capita squared",
	"co2_quartile":           "Quantile bin of CO2 per capita",
	"primary_energy_consumption": "Primary energy consumption (TWh)",
	"access_to_electricity_of_population": "Share of population with electricity access (%)",
	"renewable_energy_share_in_the_total_final_energy_consumption": "Renewables share of final energy consumption (%)",
}

// SelectionStep assembles the final dataset: the preferred variable set in a
// stable order, constant columns removed, rows without the target variable
// dropped, and a codebook for every surviving variable.
type SelectionStep struct {
	operations.BaseStep
	deps Deps
}

// NewSelectionStep creates the variable selection step.
func NewSelectionStep(deps Deps) *SelectionStep {
	return &SelectionStep{
		BaseStep: operations.NewBaseStep(operations.StepIDSelection, operations.StepNameSelection),
		deps:     deps,
	}
}

// Validate requires the treated panel.
func (s *SelectionStep) Validate(state *operations.State) error {
	_, err := state.RequireFrame(s.ID(), operations.FrameTreated)
	return err
}

// Execute selects, orders and registers the final dataset and its codebook.
func (s *SelectionStep) Execute(ctx context.Context, state *operations.State) error {
	df, err := state.RequireFrame(s.ID(), operations.FrameTreated)
	if err != nil {
		return err
	}

	ordered := presentColumns(df, finalColumns)
	listed := map[string]bool{}
	for _, col := range ordered {
		listed[col] = true
	}
	for _, col := range df.Names() {
		if !listed[col] {
			ordered = append(ordered, col)
		}
	}
	df = df.Select(ordered)

	df, constant := frame.DropConstantColumns(df)

	rowsBefore := df.Nrow()
	df = dropRowsMissingTarget(df, "co2_per_capita")
	droppedRows := rowsBefore - df.Nrow()

	if df.Error() != nil {
		return fmt.Errorf("variable selection failed: %w", df.Error())
	}

	codebook := buildCodebook(df)

	state.SetFrame(operations.FrameFinal, df)
	state.SetMeta(metaCodebookKey, codebook)
	state.SetMeta(operations.MetaFinalRows, df.Nrow())
	state.SetMeta(operations.MetaFinalColumns, df.Ncol())

	doc := report.NewBuilder().
		H1("Variable Selection").
		Paragraph("The final dataset keeps the analytical variable set in a stable column order. Constant columns carry no information and are removed; rows without the target variable are dropped.").
		KeyValueTable([][2]string{
			{"Final rows", fmt.Sprintf("%d", df.Nrow())},
			{"Final variables", fmt.Sprintf("%d", df.Ncol())},
			{"Constant columns removed", fmt.Sprintf("%d", len(constant))},
			{"Rows without target removed", fmt.Sprintf("%d", droppedRows)},
		})

	doc.H2("Codebook")
	rows := make([][]string, 0, len(codebook))
	for _, entry := range codebook {
		rows = append(rows, []string{
			entry.Name, entry.Type, entry.Description, fmt.Sprintf("%.2f", entry.MissingPct),
		})
	}
	doc.Table([]string{"Variable", "Type", "Description", "Missing %"}, rows)

	s.deps.Logger.InfoContext(ctx, "final dataset selected",
		slog.Int("rows", df.Nrow()),
		slog.Int("variables", df.Ncol()))

	return doc.Save(s.deps.Paths.ReportPath("08_selection.md"))
}

// dropRowsMissingTarget removes rows where targetCol is missing. Frames
// without the column pass through unchanged.
func dropRowsMissingTarget(df dataframe.DataFrame, targetCol string) dataframe.DataFrame {
	if !frame.HasColumn(df, targetCol) {
		return df
	}
	values := frame.FloatColumn(df, targetCol)
	keep := make([]int, 0, len(values))
	for i, v := range values {
		if !frame.IsMissing(v) {
			keep = append(keep, i)
		}
	}
	if len(keep) == len(values) {
		return df
	}
	return df.Subset(keep)
}

// buildCodebook documents every column of the final dataset.
func buildCodebook(df dataframe.DataFrame) []exporter.CodebookEntry {
	names := df.Names()
	types := df.Types()
	missing := frame.MissingSummary(df)

	entries := make([]exporter.CodebookEntry, 0, len(names))
	for i, name := range names {
		description := variableDescriptions[name]
		if description == "" {
			description = "Source variable, carried through unchanged"
		}
		entries = append(entries, exporter.CodebookEntry{
			Name:        name,
			Type:        typeName(types[i]),
			Description: description,
			MissingPct:  missing[i].Pct,
		})
	}
	return entries
}

// typeName maps a gota series type to a codebook label.
func typeName(t series.Type) string {
	switch t {
	case series.Float:
		return "float"
	case series.Int:
		return "int"
	case series.Bool:
		return "bool"
	default:
		return "string"
	}
}

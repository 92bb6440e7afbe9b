package stages

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"

	"ecopanel/internal/country"
	"ecopanel/internal/frame"
	"ecopanel/internal/operations"
	"ecopanel/internal/report"
)

// CleaningStep normalizes each raw table: snake_case column names, canonical
// country names, aggregate and unrecognized rows dropped, observations
// restricted to the configured year range.
type CleaningStep struct {
	operations.BaseStep
	deps Deps
}

// NewCleaningStep creates the cleaning step.
func NewCleaningStep(deps Deps) *CleaningStep {
	return &CleaningStep{
		BaseStep: operations.NewBaseStep(operations.StepIDCleaning, operations.StepNameCleaning),
		deps:     deps,
	}
}

// Validate requires the raw tables.
func (s *CleaningStep) Validate(state *operations.State) error {
	for _, name := range []string{operations.FrameCO2Raw, operations.FrameEnergyRaw, operations.FrameCountriesRaw} {
		if _, err := state.RequireFrame(s.ID(), name); err != nil {
			return err
		}
	}
	return nil
}

// cleanResult summarizes what cleaning one table did.
type cleanResult struct {
	df              dataframe.DataFrame
	rowsBefore      int
	rowsAfter       int
	aggregatesOut   int
	unrecognizedOut int
	renamedColumns  map[string]string
}

// Execute cleans the three tables and persists them.
func (s *CleaningStep) Execute(ctx context.Context, state *operations.State) error {
	pipeline := s.deps.Config.Pipeline

	doc := report.NewBuilder().
		H1("Dataset Cleaning").
		Paragraphf("Column names are normalized to snake_case, entity names are mapped to canonical country names, aggregate and unrecognized rows are removed, and observations are restricted to %d-%d.",
			pipeline.MinYear, pipeline.MaxYear)

	aggregatesTotal := 0
	tables := []struct {
		in          string
		out         string
		title       string
		filename    string
		filterYears bool
	}{
		{operations.FrameCO2Raw, operations.FrameCO2Clean, "OWID CO2 dataset", "co2_clean.csv", true},
		{operations.FrameEnergyRaw, operations.FrameEnergyClean, "Sustainable energy dataset", "energy_clean.csv", true},
		{operations.FrameCountriesRaw, operations.FrameCountries, "Countries reference dataset", "countries_clean.csv", false},
	}

	for _, table := range tables {
		raw, err := state.RequireFrame(s.ID(), table.in)
		if err != nil {
			return err
		}

		result := s.cleanTable(raw, table.filterYears)
		if result.df.Error() != nil {
			return fmt.Errorf("cleaning %s failed: %w", table.title, result.df.Error())
		}
		state.SetFrame(table.out, result.df)
		aggregatesTotal += result.aggregatesOut

		path := filepath.Join(s.deps.Paths.CleanedDir, table.filename)
		if err := s.deps.CSV.WriteFrame(path, result.df); err != nil {
			return err
		}

		doc.H2(table.title)
		doc.KeyValueTable([][2]string{
			{"Rows before", fmt.Sprintf("%d", result.rowsBefore)},
			{"Rows after", fmt.Sprintf("%d", result.rowsAfter)},
			{"Aggregate rows removed", fmt.Sprintf("%d", result.aggregatesOut)},
			{"Unrecognized rows removed", fmt.Sprintf("%d", result.unrecognizedOut)},
			{"Columns renamed", fmt.Sprintf("%d", len(result.renamedColumns))},
			{"Output", path},
		})

		s.deps.Logger.InfoContext(ctx, "table cleaned",
			slog.String("table", table.title),
			slog.Int("rows_before", result.rowsBefore),
			slog.Int("rows_after", result.rowsAfter))
	}

	state.SetMeta(operations.MetaAggregateRows, aggregatesTotal)
	return doc.Save(s.deps.Paths.ReportPath("02_cleaning.md"))
}

// cleanTable runs the cleaning passes over one table.
func (s *CleaningStep) cleanTable(raw dataframe.DataFrame, filterYears bool) cleanResult {
	result := cleanResult{rowsBefore: raw.Nrow()}

	df, renamed := frame.StandardizeColumnNames(raw)
	result.renamedColumns = renamed

	if col := entityColumn(df); col != "" && col != "country" {
		df = df.Rename("country", col)
	}

	if frame.HasColumn(df, "country") {
		df, result.aggregatesOut, result.unrecognizedOut = s.standardizeCountries(df)
	}

	if filterYears {
		df = frame.FilterYearRange(df, "year",
			s.deps.Config.Pipeline.MinYear, s.deps.Config.Pipeline.MaxYear)
	}

	result.df = df
	result.rowsAfter = df.Nrow()
	return result
}

// standardizeCountries maps the country column to canonical names and drops
// rows that classify as aggregates or unrecognized.
func (s *CleaningStep) standardizeCountries(df dataframe.DataFrame) (out dataframe.DataFrame, aggregates, unrecognized int) {
	opts := s.deps.classifyOptions()
	names := frame.StringColumn(df, "country")

	canonical := make([]string, len(names))
	var keep []int
	for i, name := range names {
		result := s.deps.Classifier.ClassifyWithOptions(name, opts)
		switch result.Kind {
		case country.KindCountry:
			canonical[i] = result.Name
			keep = append(keep, i)
		case country.KindAggregate:
			aggregates++
		default:
			unrecognized++
		}
	}

	out = frame.WithStringColumn(df, "country", canonical).Subset(keep)
	return out, aggregates, unrecognized
}

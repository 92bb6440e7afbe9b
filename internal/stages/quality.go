package stages

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-gota/gota/dataframe"

	"ecopanel/internal/frame"
	"ecopanel/internal/operations"
	"ecopanel/internal/report"
)

// QualityStep assesses the raw tables before anything touches them: shapes,
// per-column missingness, and how the entity names classify. It only reads.
type QualityStep struct {
	operations.BaseStep
	deps Deps
}

// NewQualityStep creates the quality assessment step.
func NewQualityStep(deps Deps) *QualityStep {
	return &QualityStep{
		BaseStep: operations.NewBaseStep(operations.StepIDQuality, operations.StepNameQuality),
		deps:     deps,
	}
}

// Validate requires the raw tables from the download step.
func (s *QualityStep) Validate(state *operations.State) error {
	for _, name := range []string{operations.FrameCO2Raw, operations.FrameEnergyRaw, operations.FrameCountriesRaw} {
		if _, err := state.RequireFrame(s.ID(), name); err != nil {
			return err
		}
	}
	return nil
}

// Execute writes the quality report and records the entity validation tally.
func (s *QualityStep) Execute(ctx context.Context, state *operations.State) error {
	doc := report.NewBuilder().
		H1("Data Quality Assessment").
		Paragraph("Assessment of the three raw sources before cleaning. Nothing is modified at this point.")

	datasets := []struct {
		frame string
		title string
	}{
		{operations.FrameCO2Raw, "OWID CO2 dataset"},
		{operations.FrameEnergyRaw, "Sustainable energy dataset"},
		{operations.FrameCountriesRaw, "Countries reference dataset"},
	}

	totalUnrecognized := 0
	for _, ds := range datasets {
		df, err := state.RequireFrame(s.ID(), ds.frame)
		if err != nil {
			return err
		}

		info := frame.Describe(df)
		doc.H2(ds.title)
		doc.KeyValueTable([][2]string{
			{"Rows", fmt.Sprintf("%d", info.Rows)},
			{"Columns", fmt.Sprintf("%d", info.Cols)},
			{"Overall missing", fmt.Sprintf("%.2f%%", frame.MissingPct(df))},
		})

		doc.H3("Missing values by column")
		doc.Table([]string{"Column", "Missing", "Missing %"}, missingRows(df))

		if entityCol := entityColumn(df); entityCol != "" {
			unrecognized := s.reportEntities(doc, df, entityCol)
			totalUnrecognized += unrecognized
		}
	}

	state.SetMeta(operations.MetaUnrecognized, totalUnrecognized)
	s.deps.Logger.InfoContext(ctx, "quality assessment complete",
		slog.Int("unrecognized_entities", totalUnrecognized))

	return doc.Save(s.deps.Paths.ReportPath("01_quality.md"))
}

// reportEntities classifies the distinct entity names of one table and adds
// the tally to the report, returning the unrecognized count.
func (s *QualityStep) reportEntities(doc *report.Builder, df dataframe.DataFrame, entityCol string) int {
	names := distinct(frame.StringColumn(df, entityCol))
	result := s.deps.Classifier.ValidateEntities(names)

	doc.H3("Entity classification")
	doc.KeyValueTable([][2]string{
		{"Distinct entities", fmt.Sprintf("%d", len(names))},
		{"Countries", fmt.Sprintf("%d", result.ValidCount())},
		{"Aggregates", fmt.Sprintf("%d", result.AggregateCount())},
		{"Unrecognized", fmt.Sprintf("%d", result.InvalidCount())},
	})

	if result.InvalidCount() > 0 {
		doc.WarningBox(fmt.Sprintf("%d entity names could not be classified and will be dropped during cleaning.", result.InvalidCount()))
		doc.BulletList(result.Invalid)
	}
	return result.InvalidCount()
}

// missingRows renders the per-column missing summary as table rows.
func missingRows(df dataframe.DataFrame) [][]string {
	summary := frame.MissingSummary(df)
	rows := make([][]string, 0, len(summary))
	for _, col := range summary {
		rows = append(rows, []string{
			col.Column,
			fmt.Sprintf("%d", col.Missing),
			fmt.Sprintf("%.2f", col.Pct),
		})
	}
	return rows
}

// entityColumn finds the column carrying entity names, trying the raw names
// the three sources actually use.
func entityColumn(df dataframe.DataFrame) string {
	for _, candidate := range []string{"country", "Country", "entity", "Entity", "name", "Name"} {
		if frame.HasColumn(df, candidate) {
			return candidate
		}
	}
	return ""
}

// distinct returns the unique non-empty values, preserving first-seen order.
func distinct(values []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

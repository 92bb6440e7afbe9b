package stages

import (
	"context"
	"fmt"
	"log/slog"

	"ecopanel/internal/frame"
	"ecopanel/internal/operations"
	"ecopanel/internal/report"
	"ecopanel/internal/stats"
)

// Columns the missing-data treatment never drops, whatever their
// missingness.
var protectedColumns = []string{"country", "year", "iso_code", "region"}

// MissingStep treats missing data: variables above the missingness threshold
// are dropped, the rest are imputed within each country's time series by
// linear interpolation with forward/backward fill at the edges.
type MissingStep struct {
	operations.BaseStep
	deps Deps
}

// NewMissingStep creates the missing-data treatment step.
func NewMissingStep(deps Deps) *MissingStep {
	return &MissingStep{
		BaseStep: operations.NewBaseStep(operations.StepIDMissing, operations.StepNameMissing),
		deps:     deps,
	}
}

// Validate requires the outlier-treated panel.
func (s *MissingStep) Validate(state *operations.State) error {
	_, err := state.RequireFrame(s.ID(), operations.FrameTreated)
	return err
}

// Execute drops, imputes and updates the treated panel in the state.
func (s *MissingStep) Execute(ctx context.Context, state *operations.State) error {
	df, err := state.RequireFrame(s.ID(), operations.FrameTreated)
	if err != nil {
		return err
	}

	maxPct := s.deps.Config.Pipeline.MaxMissingPct
	missingBefore := frame.MissingPct(df)

	df, dropped := frame.DropHighMissing(df, maxPct, protectedColumns...)

	totalImputed := 0
	var rows [][]string
	for _, col := range frame.NumericColumns(df) {
		if identifierColumns[col] {
			continue
		}
		xs := frame.FloatColumn(df, col)
		gaps := len(xs) - stats.Count(xs)
		if gaps == 0 {
			continue
		}

		imputedCol := 0
		filled := frame.GroupApplyFloat(df, "country", col, func(series []float64) []float64 {
			out, n := stats.ImputeSeries(series)
			imputedCol += n
			return out
		})
		df = frame.WithFloatColumn(df, col, filled)
		totalImputed += imputedCol

		remaining := len(filled) - stats.Count(filled)
		rows = append(rows, []string{
			col,
			fmt.Sprintf("%d", gaps),
			fmt.Sprintf("%d", imputedCol),
			fmt.Sprintf("%d", remaining),
		})
	}

	if df.Error() != nil {
		return fmt.Errorf("missing-data treatment failed: %w", df.Error())
	}

	state.SetFrame(operations.FrameTreated, df)
	state.SetMeta(operations.MetaImputedCells, totalImputed)
	state.SetMeta(operations.MetaColumnsDropped, len(dropped))

	doc := report.NewBuilder().
		H1("Missing Data Treatment").
		Paragraphf("Variables missing more than %.0f%% of their values are dropped. The remaining gaps are imputed within each country's time series: linear interpolation for interior gaps, forward and backward fill at the edges. Countries with no observed value at all for a variable keep their gaps.", maxPct).
		KeyValueTable([][2]string{
			{"Missing before", fmt.Sprintf("%.2f%%", missingBefore)},
			{"Missing after", fmt.Sprintf("%.2f%%", frame.MissingPct(df))},
			{"Variables dropped", fmt.Sprintf("%d", len(dropped))},
			{"Cells imputed", fmt.Sprintf("%d", totalImputed)},
		})

	if len(dropped) > 0 {
		doc.H2("Dropped variables")
		doc.BulletList(dropped)
	}

	doc.H2("Imputation by variable")
	doc.Table([]string{"Variable", "Gaps", "Imputed", "Remaining"}, rows)

	s.deps.Logger.InfoContext(ctx, "missing data treated",
		slog.Int("imputed_cells", totalImputed),
		slog.Int("dropped_columns", len(dropped)))

	return doc.Save(s.deps.Paths.ReportPath("07_missing.md"))
}

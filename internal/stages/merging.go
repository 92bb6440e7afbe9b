package stages

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"

	apperrors "ecopanel/internal/errors"
	"ecopanel/internal/frame"
	"ecopanel/internal/operations"
	"ecopanel/internal/report"
)

// MergingStep joins the cleaned tables into one country-year panel: CO2 and
// energy observations are inner-joined on country and year, the countries
// reference contributes its country-level attributes, and every row gets a
// region derived from its ISO code or name.
type MergingStep struct {
	operations.BaseStep
	deps Deps
}

// NewMergingStep creates the merging step.
func NewMergingStep(deps Deps) *MergingStep {
	return &MergingStep{
		BaseStep: operations.NewBaseStep(operations.StepIDMerging, operations.StepNameMerging),
		deps:     deps,
	}
}

// Validate requires the cleaned tables.
func (s *MergingStep) Validate(state *operations.State) error {
	for _, name := range []string{operations.FrameCO2Clean, operations.FrameEnergyClean, operations.FrameCountries} {
		if _, err := state.RequireFrame(s.ID(), name); err != nil {
			return err
		}
	}
	return nil
}

// Execute builds and persists the merged panel.
func (s *MergingStep) Execute(ctx context.Context, state *operations.State) error {
	co2, err := state.RequireFrame(s.ID(), operations.FrameCO2Clean)
	if err != nil {
		return err
	}
	energy, err := state.RequireFrame(s.ID(), operations.FrameEnergyClean)
	if err != nil {
		return err
	}
	countries, err := state.RequireFrame(s.ID(), operations.FrameCountries)
	if err != nil {
		return err
	}

	for _, input := range []struct {
		name string
		df   dataframe.DataFrame
	}{{"co2", co2}, {"energy", energy}} {
		for _, key := range []string{"country", "year"} {
			if !frame.HasColumn(input.df, key) {
				return apperrors.NewStageError(s.ID(), apperrors.CodeMergeFailed,
					fmt.Sprintf("%s table has no %q column", input.name, key))
			}
		}
	}

	merged := co2.InnerJoin(energy, "country", "year")
	if merged.Error() != nil {
		return apperrors.WrapStageError(s.ID(), apperrors.CodeMergeFailed,
			"inner join of co2 and energy tables failed", merged.Error())
	}

	merged, joinedAttrs := s.joinCountryAttributes(merged, countries)
	merged = s.deps.Classifier.AddRegionColumn(merged, "country", "iso_code")
	if merged.Error() != nil {
		return apperrors.WrapStageError(s.ID(), apperrors.CodeMergeFailed,
			"joining country attributes failed", merged.Error())
	}

	merged = merged.Arrange(dataframe.Sort("country"), dataframe.Sort("year"))
	state.SetFrame(operations.FrameMerged, merged)
	state.SetMeta(operations.MetaRowsMerged, merged.Nrow())

	path := filepath.Join(s.deps.Paths.MergedDir, "panel.csv")
	if err := s.deps.CSV.WriteFrame(path, merged); err != nil {
		return err
	}

	doc := report.NewBuilder().
		H1("Panel Merging").
		Paragraph("The cleaned CO2 and energy tables are inner-joined on country and year; country-level attributes and a region classification are then attached.").
		KeyValueTable([][2]string{
			{"CO2 rows", fmt.Sprintf("%d", co2.Nrow())},
			{"Energy rows", fmt.Sprintf("%d", energy.Nrow())},
			{"Panel rows", fmt.Sprintf("%d", merged.Nrow())},
			{"Panel columns", fmt.Sprintf("%d", merged.Ncol())},
			{"Country attributes joined", fmt.Sprintf("%d", joinedAttrs)},
			{"Output", path},
		})

	if merged.Nrow() == 0 {
		doc.WarningBox("The join produced an empty panel. Check that entity names were standardized consistently across sources.")
	}

	s.deps.Logger.InfoContext(ctx, "panel merged",
		slog.Int("rows", merged.Nrow()),
		slog.Int("columns", merged.Ncol()))

	return doc.Save(s.deps.Paths.ReportPath("03_merging.md"))
}

// joinCountryAttributes left-joins the countries reference onto the panel,
// keeping only attribute columns the panel does not already have.
func (s *MergingStep) joinCountryAttributes(merged, countries dataframe.DataFrame) (dataframe.DataFrame, int) {
	if !frame.HasColumn(countries, "country") {
		return merged, 0
	}

	keep := []string{"country"}
	for _, col := range countries.Names() {
		if col == "country" || frame.HasColumn(merged, col) {
			continue
		}
		keep = append(keep, col)
	}
	if len(keep) == 1 {
		return merged, 0
	}

	attrs := countries.Select(keep)
	out := merged.LeftJoin(attrs, "country")
	if out.Error() != nil {
		// The panel is still usable without the reference attributes.
		s.deps.Logger.Warn("left join of country attributes failed",
			slog.String("error", out.Error().Error()))
		return merged, 0
	}
	return out, len(keep) - 1
}

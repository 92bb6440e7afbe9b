package stages

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-gota/gota/dataframe"

	"ecopanel/internal/frame"
	"ecopanel/internal/operations"
	"ecopanel/internal/plot"
	"ecopanel/internal/report"
	"ecopanel/internal/stats"
)

// Winsorization clamps at these quantiles.
const (
	winsorLower = 0.01
	winsorUpper = 0.99
)

// Columns that identify an observation rather than measure it; they are
// never treated as outlier candidates.
var identifierColumns = map[string]bool{"year": true}

// OutliersStep flags extreme values per numeric variable with Tukey fences
// and z-scores, then winsorizes the variables where outliers are material.
type OutliersStep struct {
	operations.BaseStep
	deps Deps
}

// NewOutliersStep creates the outlier analysis step.
func NewOutliersStep(deps Deps) *OutliersStep {
	return &OutliersStep{
		BaseStep: operations.NewBaseStep(operations.StepIDOutliers, operations.StepNameOutliers),
		deps:     deps,
	}
}

// Validate requires the feature panel.
func (s *OutliersStep) Validate(state *operations.State) error {
	_, err := state.RequireFrame(s.ID(), operations.FrameFeatures)
	return err
}

// Execute analyzes, winsorizes and persists the treated panel.
func (s *OutliersStep) Execute(ctx context.Context, state *operations.State) error {
	df, err := state.RequireFrame(s.ID(), operations.FrameFeatures)
	if err != nil {
		return err
	}

	pipeline := s.deps.Config.Pipeline

	doc := report.NewBuilder().
		H1("Outlier Analysis").
		Paragraphf("Each numeric variable is checked against Tukey fences (k = %.1f) and z-scores (threshold = %.1f). Variables where more than 1%% of observed values fall outside the fences are winsorized at the %.0f%% and %.0f%% quantiles.",
			pipeline.IQRMultiplier, pipeline.ZScoreThreshold, winsorLower*100, winsorUpper*100)

	var rows [][]string
	var winsorized []string
	totalOutliers := 0

	for _, col := range frame.NumericColumns(df) {
		if identifierColumns[col] {
			continue
		}
		xs := frame.FloatColumn(df, col)
		observed := stats.Count(xs)
		if observed == 0 {
			continue
		}

		iqrCount := stats.CountFlags(stats.OutliersIQR(xs, pipeline.IQRMultiplier))
		zCount := stats.CountFlags(stats.OutliersZScore(xs, pipeline.ZScoreThreshold))
		bounds := stats.IQRBounds(xs, pipeline.IQRMultiplier)
		share := 100 * float64(iqrCount) / float64(observed)
		totalOutliers += iqrCount

		treated := "no"
		if share > 1.0 {
			df = frame.WithFloatColumn(df, col, stats.Winsorize(xs, winsorLower, winsorUpper))
			winsorized = append(winsorized, col)
			treated = "winsorized"
		}

		rows = append(rows, []string{
			col,
			fmt.Sprintf("%d", iqrCount),
			fmt.Sprintf("%.2f", share),
			fmt.Sprintf("%d", zCount),
			fmt.Sprintf("[%.3f, %.3f]", bounds.Lower, bounds.Upper),
			treated,
		})
	}

	doc.H2("Outliers by variable")
	doc.Table([]string{"Variable", "IQR outliers", "IQR %", "Z-score outliers", "Tukey fences", "Treatment"}, rows)

	if len(winsorized) > 0 {
		doc.NoteBox(fmt.Sprintf("%d variables were winsorized: extreme values are clamped, not removed, so the panel keeps every observation.", len(winsorized)))
	}

	s.addRegionFigure(doc, df)

	if df.Error() != nil {
		return fmt.Errorf("outlier treatment failed: %w", df.Error())
	}

	state.SetFrame(operations.FrameTreated, df)
	state.SetMeta(operations.MetaOutlierCells, totalOutliers)

	s.deps.Logger.InfoContext(ctx, "outlier analysis complete",
		slog.Int("outlier_cells", totalOutliers),
		slog.Int("winsorized_columns", len(winsorized)))

	return doc.Save(s.deps.Paths.ReportPath("06_outliers.md"))
}

// addRegionFigure draws CO2 per capita by region when both columns exist.
func (s *OutliersStep) addRegionFigure(doc *report.Builder, df dataframe.DataFrame) {
	if !frame.HasColumn(df, "region") || !frame.HasColumn(df, "co2_per_capita") {
		return
	}

	regions := frame.StringColumn(df, "region")
	values := frame.FloatColumn(df, "co2_per_capita")

	groups := map[string][]float64{}
	var order []string
	for i, region := range regions {
		if region == "" {
			continue
		}
		if _, ok := groups[region]; !ok {
			order = append(order, region)
		}
		groups[region] = append(groups[region], values[i])
	}

	path := s.deps.Paths.FigurePath("co2_per_capita_by_region.png")
	if err := plot.Box(path, "CO2 per capita by region", "t CO2 per person", groups, order); err == nil {
		doc.H2("Distribution by region")
		doc.Image(relFigure("co2_per_capita_by_region.png"), "CO2 per capita by region", "Box plot of CO2 per capita across regions.")
	}
}

package stages

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"

	"ecopanel/internal/frame"
	"ecopanel/internal/operations"
	"ecopanel/internal/report"
)

// FeaturesStep derives the analytical variables: log and squared transforms,
// per-country growth rates and lags, intensity ratios and quantile bins.
type FeaturesStep struct {
	operations.BaseStep
	deps Deps
}

// NewFeaturesStep creates the feature engineering step.
func NewFeaturesStep(deps Deps) *FeaturesStep {
	return &FeaturesStep{
		BaseStep: operations.NewBaseStep(operations.StepIDFeatures, operations.StepNameFeatures),
		deps:     deps,
	}
}

// Validate requires the merged panel.
func (s *FeaturesStep) Validate(state *operations.State) error {
	_, err := state.RequireFrame(s.ID(), operations.FrameMerged)
	return err
}

// Execute derives the features and persists the extended panel.
func (s *FeaturesStep) Execute(ctx context.Context, state *operations.State) error {
	df, err := state.RequireFrame(s.ID(), operations.FrameMerged)
	if err != nil {
		return err
	}

	// Per-country transforms assume country-contiguous, year-ordered rows.
	df = df.Arrange(dataframe.Sort("country"), dataframe.Sort("year"))

	var added []string
	add := func(name string, values []float64) {
		df = frame.WithFloatColumn(df, name, values)
		added = append(added, name)
	}

	if frame.HasColumn(df, "gdp") {
		add("log_gdp", frame.Log(frame.FloatColumn(df, "gdp")))
	}
	if frame.HasColumn(df, "co2_per_capita") {
		perCapita := frame.FloatColumn(df, "co2_per_capita")
		add("log_co2_per_capita", frame.Log(perCapita))
		add("co2_per_capita_squared", frame.Squared(perCapita))
	}
	if frame.HasColumn(df, "gdp") && frame.HasColumn(df, "population") && !frame.HasColumn(df, "gdp_per_capita") {
		add("gdp_per_capita", frame.Ratio(
			frame.FloatColumn(df, "gdp"),
			frame.FloatColumn(df, "population")))
	}
	if energyCol := firstPresent(df, "primary_energy_consumption", "primary_energy_consumption_twh"); energyCol != "" && frame.HasColumn(df, "gdp") {
		add("energy_intensity", frame.Ratio(
			frame.FloatColumn(df, energyCol),
			frame.FloatColumn(df, "gdp")))
	}

	if frame.HasColumn(df, "country") && frame.HasColumn(df, "co2") {
		add("co2_growth_pct", frame.GroupApplyFloat(df, "country", "co2",
			func(xs []float64) []float64 { return frame.PctChange(xs, 1) }))
	}
	if frame.HasColumn(df, "country") && frame.HasColumn(df, "co2_per_capita") {
		add("co2_per_capita_lag1", frame.GroupApplyFloat(df, "country", "co2_per_capita",
			func(xs []float64) []float64 { return frame.Lag(xs, 1) }))
	}

	if frame.HasColumn(df, "co2_per_capita") {
		bins := s.deps.Config.Pipeline.QuantileBins
		labels := frame.DefaultBinLabels(bins)
		df = frame.WithStringColumn(df, "co2_quartile",
			frame.QuantileBins(frame.FloatColumn(df, "co2_per_capita"), labels))
		added = append(added, "co2_quartile")
	}

	if df.Error() != nil {
		return fmt.Errorf("feature engineering failed: %w", df.Error())
	}

	state.SetFrame(operations.FrameFeatures, df)

	path := filepath.Join(s.deps.Paths.FeaturesDir, "panel_features.csv")
	if err := s.deps.CSV.WriteFrame(path, df); err != nil {
		return err
	}

	doc := report.NewBuilder().
		H1("Feature Engineering").
		Paragraphf("%d variables were derived from the merged panel. Growth rates and lags are computed within each country's time series.", len(added)).
		BulletList(added).
		KeyValueTable([][2]string{
			{"Rows", fmt.Sprintf("%d", df.Nrow())},
			{"Columns", fmt.Sprintf("%d", df.Ncol())},
			{"Output", path},
		})

	s.deps.Logger.InfoContext(ctx, "features derived",
		slog.Int("added", len(added)),
		slog.Int("columns", df.Ncol()))

	return doc.Save(s.deps.Paths.ReportPath("05_features.md"))
}

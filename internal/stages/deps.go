package stages

import (
	"fmt"
	"log/slog"

	"ecopanel/internal/config"
	"ecopanel/internal/country"
	"ecopanel/internal/exporter"
	"ecopanel/internal/fetch"
	"ecopanel/internal/operations"
)

// Deps bundles what every step needs: configuration, target paths, the
// entity classifier and the writers.
type Deps struct {
	Config     *config.Config
	Paths      *config.Paths
	Logger     *slog.Logger
	Classifier *country.Classifier
	Downloader *fetch.Downloader
	CSV        *exporter.CSVWriter
	Workbook   *exporter.WorkbookWriter
}

// NewDeps wires the step dependencies from configuration.
func NewDeps(cfg *config.Config, paths *config.Paths, logger *slog.Logger) (Deps, error) {
	if logger == nil {
		logger = slog.Default()
	}

	authority, err := country.NewAuthority()
	if err != nil {
		return Deps{}, fmt.Errorf("failed to load country authority: %w", err)
	}

	downloader := fetch.NewDownloader(fetch.Options{
		Timeout:       cfg.Sources.RequestTimeout,
		MaxRetries:    cfg.Sources.MaxRetries,
		RetryDelay:    fetch.DefaultOptions().RetryDelay,
		RatePerSecond: cfg.Sources.RequestsPerSecond,
	}, logger)

	return Deps{
		Config:     cfg,
		Paths:      paths,
		Logger:     logger,
		Classifier: country.NewClassifier(authority),
		Downloader: downloader,
		CSV:        exporter.NewCSVWriter(),
		Workbook:   exporter.NewWorkbookWriter(),
	}, nil
}

// classifyOptions returns the classification options the cleaning steps use.
func (d Deps) classifyOptions() country.Options {
	return country.Options{Safe: d.Config.Pipeline.SafeCountryMatch}
}

// NewPipelineSteps returns all steps in run order.
func NewPipelineSteps(deps Deps) []operations.Step {
	return []operations.Step{
		NewDownloadStep(deps),
		NewQualityStep(deps),
		NewCleaningStep(deps),
		NewMergingStep(deps),
		NewEDAStep(deps),
		NewFeaturesStep(deps),
		NewOutliersStep(deps),
		NewMissingStep(deps),
		NewSelectionStep(deps),
		NewExportStep(deps),
	}
}

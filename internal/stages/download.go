package stages

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-gota/gota/dataframe"
	"golang.org/x/sync/errgroup"

	"ecopanel/internal/dataset"
	apperrors "ecopanel/internal/errors"
	"ecopanel/internal/operations"
)

const (
	co2Filename    = "owid-co2-data.csv"
	energyFilename = "global-data-on-sustainable-energy.csv"
)

// DownloadStep fetches the three raw sources and loads them into the state.
// The CO2 and energy datasets are downloaded CSVs, fetched concurrently; the
// countries reference is a local sqlite database.
type DownloadStep struct {
	operations.BaseStep
	deps Deps
}

// NewDownloadStep creates the download step.
func NewDownloadStep(deps Deps) *DownloadStep {
	return &DownloadStep{
		BaseStep: operations.NewBaseStep(operations.StepIDDownload, operations.StepNameDownload),
		deps:     deps,
	}
}

// Execute downloads, loads and registers the raw tables.
func (s *DownloadStep) Execute(ctx context.Context, state *operations.State) error {
	sources := s.deps.Config.Sources
	paths := s.deps.Paths

	var co2, energy dataframe.DataFrame
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		df, err := s.fetchCSV(gctx, sources.OWIDCO2URL, paths.DownloadPath(co2Filename))
		co2 = df
		return err
	})
	g.Go(func() error {
		df, err := s.fetchCSV(gctx, sources.SustainableEnergyURL, paths.DownloadPath(energyFilename))
		energy = df
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	state.SetFrame(operations.FrameCO2Raw, co2)
	state.SetFrame(operations.FrameEnergyRaw, energy)

	countries, err := s.loadCountries()
	if err != nil {
		return err
	}
	state.SetFrame(operations.FrameCountriesRaw, countries)

	total := co2.Nrow() + energy.Nrow() + countries.Nrow()
	state.SetMeta(operations.MetaRowsDownloaded, total)
	s.deps.Logger.InfoContext(ctx, "sources loaded",
		slog.Int("co2_rows", co2.Nrow()),
		slog.Int("energy_rows", energy.Nrow()),
		slog.Int("countries_rows", countries.Nrow()))
	return nil
}

// fetchCSV downloads one CSV source into the cache and loads it.
func (s *DownloadStep) fetchCSV(ctx context.Context, url, destPath string) (dataframe.DataFrame, error) {
	if _, err := s.deps.Downloader.Fetch(ctx, url, destPath); err != nil {
		return dataframe.DataFrame{}, err
	}
	return dataset.LoadCSV(destPath)
}

// loadCountries opens the configured sqlite source. The configured path may
// point at the database itself or at a directory containing it.
func (s *DownloadStep) loadCountries() (df dataframe.DataFrame, err error) {
	path := s.deps.Config.Sources.CountriesSQLitePath

	info, statErr := os.Stat(path)
	if statErr != nil {
		return df, fmt.Errorf("countries source %s: %w", path, apperrors.ErrNoSQLiteFile)
	}
	if info.IsDir() {
		path, err = dataset.FindSQLite(path)
		if err != nil {
			return df, err
		}
	}

	return dataset.LoadSQLiteTable(path, s.deps.Config.Sources.CountriesTable)
}

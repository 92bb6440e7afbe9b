// Command pipeline runs the full data-preparation pipeline: download the
// sources, clean and merge them into a country-year panel, engineer the
// analytical variables, treat outliers and missing data, and export the
// final dataset with its reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"ecopanel/internal/config"
	"ecopanel/internal/fetch"
	"ecopanel/internal/infrastructure"
	"ecopanel/internal/operations"
	"ecopanel/internal/stages"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML config file (optional, environment wins)")
	dataDir := flag.String("data-dir", "", "override the data directory")
	from := flag.String("from", "", "start from the named step, skipping earlier ones")
	only := flag.String("only", "", "comma-separated list of steps to run")
	refresh := flag.Bool("refresh", false, "re-download sources even when cached")
	flag.Parse()

	if err := run(*configFile, *dataDir, *from, *only, *refresh); err != nil {
		slog.Error("pipeline failed", "error", err)
		os.Exit(1)
	}
}

func run(configFile, dataDir, from, only string, refresh bool) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if dataDir != "" {
		cfg.Paths.DataDir = dataDir
	}

	paths := config.NewPaths(cfg.Paths.DataDir)
	if err := paths.EnsureDirs(); err != nil {
		return err
	}
	if !filepath.IsAbs(cfg.Logging.FilePath) {
		cfg.Logging.FilePath = filepath.Join(cfg.Paths.DataDir, cfg.Logging.FilePath)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	tracing, err := infrastructure.InitializeTracing(cfg.Tracing.Enabled)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		tracing.Shutdown(shutdownCtx)
	}()

	runID := uuid.New().String()
	ctx := infrastructure.WithRunID(context.Background(), runID)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := stages.NewDeps(cfg, paths, logger)
	if err != nil {
		return err
	}
	if refresh {
		deps.Downloader = fetch.NewDownloader(fetch.Options{
			Timeout:       cfg.Sources.RequestTimeout,
			MaxRetries:    cfg.Sources.MaxRetries,
			RetryDelay:    fetch.DefaultOptions().RetryDelay,
			RatePerSecond: cfg.Sources.RequestsPerSecond,
			Refresh:       true,
		}, logger)
	}

	manager := operations.NewManager(logger, tracing.Tracer)
	for _, step := range stages.NewPipelineSteps(deps) {
		manager.Register(step)
	}

	opts := operations.RunOptions{From: from}
	if only != "" {
		for _, id := range strings.Split(only, ",") {
			if id = strings.TrimSpace(id); id != "" {
				opts.Only = append(opts.Only, id)
			}
		}
	}

	state := operations.NewState(runID, cfg, paths)
	if err := manager.Run(ctx, state, opts); err != nil {
		return err
	}

	logger.Info("pipeline finished",
		slog.String("run_id", runID),
		slog.Duration("elapsed", state.Duration()),
		slog.Int("final_rows", state.MetaInt(operations.MetaFinalRows)),
		slog.Int("final_columns", state.MetaInt(operations.MetaFinalColumns)))
	return nil
}

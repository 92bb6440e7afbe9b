package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths is the single source of truth for every file location the pipeline
// touches. The layout under the data directory mirrors the pipeline order:
//
//	data/
//	├── downloads/   (raw source files, cached between runs)
//	├── cleaned/     (per-dataset cleaned tables)
//	├── merged/      (joined country-year panel)
//	├── features/    (panel with engineered variables)
//	├── final/       (selected dataset, codebook, workbook)
//	├── reports/     (markdown reports per step)
//	│   └── figures/ (png figures referenced by the reports)
//	└── logs/
type Paths struct {
	DataDir      string
	DownloadsDir string
	CleanedDir   string
	MergedDir    string
	FeaturesDir  string
	FinalDir     string
	ReportsDir   string
	FiguresDir   string
	LogsDir      string
}

// NewPaths derives all pipeline paths from the base data directory.
func NewPaths(dataDir string) *Paths {
	reportsDir := filepath.Join(dataDir, "reports")
	return &Paths{
		DataDir:      dataDir,
		DownloadsDir: filepath.Join(dataDir, "downloads"),
		CleanedDir:   filepath.Join(dataDir, "cleaned"),
		MergedDir:    filepath.Join(dataDir, "merged"),
		FeaturesDir:  filepath.Join(dataDir, "features"),
		FinalDir:     filepath.Join(dataDir, "final"),
		ReportsDir:   reportsDir,
		FiguresDir:   filepath.Join(reportsDir, "figures"),
		LogsDir:      filepath.Join(dataDir, "logs"),
	}
}

// EnsureDirs creates every pipeline directory that does not exist yet.
func (p *Paths) EnsureDirs() error {
	dirs := []string{
		p.DataDir, p.DownloadsDir, p.CleanedDir, p.MergedDir,
		p.FeaturesDir, p.FinalDir, p.ReportsDir, p.FiguresDir, p.LogsDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DownloadPath returns the cache path for a raw source file.
func (p *Paths) DownloadPath(filename string) string {
	return filepath.Join(p.DownloadsDir, filename)
}

// ReportPath returns the path of a markdown report.
func (p *Paths) ReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// FigurePath returns the path of a report figure.
func (p *Paths) FigurePath(filename string) string {
	return filepath.Join(p.FiguresDir, filename)
}

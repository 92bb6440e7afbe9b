// Package fetch downloads the raw source files into the downloads cache.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	apperrors "ecopanel/internal/errors"
)

// Options configures the downloader.
type Options struct {
	Timeout       time.Duration
	MaxRetries    int
	RetryDelay    time.Duration
	RatePerSecond float64
	// Refresh forces a download even when a cached copy exists.
	Refresh bool
}

// DefaultOptions returns the downloader defaults used by the pipeline.
func DefaultOptions() Options {
	return Options{
		Timeout:       60 * time.Second,
		MaxRetries:    3,
		RetryDelay:    2 * time.Second,
		RatePerSecond: 1,
	}
}

// Downloader fetches remote files with retries and per-host pacing, caching
// each file under the downloads directory.
type Downloader struct {
	client  *http.Client
	limiter *rate.Limiter
	opts    Options
	logger  *slog.Logger
}

// NewDownloader creates a downloader with the given options.
func NewDownloader(opts Options, logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = slog.Default()
	}
	rps := opts.RatePerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Downloader{
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		opts:    opts,
		logger:  logger,
	}
}

// Fetch downloads url to destPath unless a cached copy already exists. It
// reports whether the cache was used.
func (d *Downloader) Fetch(ctx context.Context, url, destPath string) (cached bool, err error) {
	if !d.opts.Refresh {
		if info, statErr := os.Stat(destPath); statErr == nil && info.Size() > 0 {
			d.logger.InfoContext(ctx, "using cached download",
				slog.String("path", destPath),
				slog.Int64("size_bytes", info.Size()))
			return true, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return false, fmt.Errorf("failed to create download directory: %w", err)
	}

	var lastErr error
	attempts := d.opts.MaxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := d.limiter.Wait(ctx); err != nil {
			return false, err
		}

		d.logger.InfoContext(ctx, "downloading",
			slog.String("url", url),
			slog.Int("attempt", attempt))

		if err := d.fetchOnce(ctx, url, destPath); err != nil {
			lastErr = err
			d.logger.WarnContext(ctx, "download attempt failed",
				slog.String("url", url),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			if attempt < attempts {
				select {
				case <-ctx.Done():
					return false, ctx.Err()
				case <-time.After(d.opts.RetryDelay * time.Duration(attempt)):
				}
			}
			continue
		}
		return false, nil
	}

	return false, apperrors.WrapStageError("download", apperrors.CodeDownloadFailed,
		fmt.Sprintf("failed to download %s after %d attempts", url, attempts), lastErr)
}

// fetchOnce performs a single download attempt, writing to a temp file and
// renaming on success so a failed attempt never leaves a partial cache entry.
func (d *Downloader) fetchOnce(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write download: %w", err)
	}
	if written == 0 {
		return fmt.Errorf("empty response body for %s", url)
	}

	if err := os.Rename(tmp.Name(), destPath); err != nil {
		return fmt.Errorf("failed to move download into place: %w", err)
	}

	d.logger.InfoContext(ctx, "download complete",
		slog.String("path", destPath),
		slog.Int64("size_bytes", written))
	return nil
}

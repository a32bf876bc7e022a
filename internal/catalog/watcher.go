package catalog

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dipdaga/patina/internal/checksum"
	"github.com/dipdaga/patina/internal/models"
)

// ReloadCallback is called after a watcher-driven catalog reload with the
// freshly normalized record set.
type ReloadCallback func(records []models.Record)

// Watch starts an fsnotify watcher on the catalog file's directory and
// reloads the catalog when the file changes, until ctx is cancelled.
//
// The parent directory is watched rather than the file itself because the
// batch transforms (and most editors) replace the file via rename, which
// would drop a direct file watch. Events are debounced so a write burst
// produces a single reload, and reloads whose bytes hash identically to
// the previous load are suppressed.
func Watch(ctx context.Context, path string, logger *slog.Logger, cb ReloadCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("catalog", path))

	var lastSum string
	if data, readErr := os.ReadFile(path); readErr == nil {
		lastSum = checksum.Sum(data)
	}

	// reloadTimer debounces bursts of write events into one reload.
	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reloadCh:
			data, readErr := os.ReadFile(path)
			if readErr != nil {
				logger.Warn("watcher: read failed", slog.String("path", path), slog.String("error", readErr.Error()))
				continue
			}
			sum := checksum.Sum(data)
			if sum == lastSum {
				continue
			}
			records, parseErr := Parse(data)
			if parseErr != nil {
				// A half-written or invalid file is not fatal here; the
				// previously loaded catalog stays in effect.
				logger.Warn("watcher: parse failed", slog.String("path", path), slog.String("error", parseErr.Error()))
				continue
			}
			lastSum = sum
			logger.Info("watcher: catalog reloaded", slog.Int("records", len(records)))
			if cb != nil {
				cb(records)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

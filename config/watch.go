package config

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of events editors emit for one save.
const reloadDebounce = 200 * time.Millisecond

// Watch reloads path whenever it changes on disk and hands the new config
// to onChange. The parent directory is watched so atomic renames are seen.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	name := filepath.Base(abs)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			cfg, err := Load(abs)
			switch {
			case errors.Is(err, ErrAdjusted):
				if logger != nil {
					logger.Warn("config adjusted", "path", abs, "error", err)
				}
			case err != nil:
				if logger != nil {
					logger.Warn("config reload failed", "path", abs, "error", err)
				}
				continue
			}
			if logger != nil {
				logger.Info("config reloaded", "path", abs)
			}
			onChange(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if logger != nil {
				logger.Warn("config watcher", "error", err)
			}
		}
	}
}

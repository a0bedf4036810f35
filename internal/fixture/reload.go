package fixture

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses editor write bursts into one reload
const DefaultDebounce = 100 * time.Millisecond

// Reloader watches a fixture file and swaps the provider's dataset
// whenever the file changes and still parses
type Reloader struct {
	path     string
	provider *Provider
	logger   *slog.Logger
	debounce time.Duration

	// OnReload runs after each successful swap
	OnReload func(*Dataset)
	// OnError runs when a changed file fails to load
	OnError func(error)
}

// NewReloader creates a reloader for path serving into provider
func NewReloader(path string, provider *Provider, logger *slog.Logger) *Reloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reloader{
		path:     path,
		provider: provider,
		logger:   logger.With("component", "fixture"),
		debounce: DefaultDebounce,
	}
}

// Run watches until ctx is done. The parent directory is watched rather
// than the file so that atomic saves through rename are seen.
func (r *Reloader) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(r.path)
	if err != nil {
		return fmt.Errorf("failed to resolve fixture path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer
	defer debounce.Stop()

	pending := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !r.isRelevant(abs, event) {
				continue
			}
			pending = true
			debounce.Reset(r.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("watcher error", "error", err)

		case <-debounce.C:
			if pending {
				pending = false
				r.Reload()
			}
		}
	}
}

// Reload loads the file now, keeping the current dataset on failure
func (r *Reloader) Reload() error {
	ds, err := Load(r.path)
	if err != nil {
		r.logger.Error("fixture reload failed, keeping previous dataset", "path", r.path, "error", err)
		if r.OnError != nil {
			r.OnError(err)
		}
		return err
	}

	r.provider.Swap(ds)
	r.logger.Info("fixture reloaded", "path", r.path, "agents", len(ds.Agents))
	if r.OnReload != nil {
		r.OnReload(ds)
	}
	return nil
}

func (r *Reloader) isRelevant(abs string, event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != abs {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/recera/mission-control/internal/config"
	"github.com/recera/mission-control/internal/fixture"
	"github.com/spf13/cobra"
)

// fixtureFlags are shared by every command that serves cockpit data
type fixtureFlags struct {
	path  string
	watch bool
}

func (f *fixtureFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "fixture", "f", "", "Cockpit dataset YAML (defaults to the embedded dataset)")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Reload the dataset when the file changes")
}

// loadConfig reads the config file and environment, then applies any flag
// the user set explicitly (flags take precedence)
func loadConfig(cmd *cobra.Command, path string, f *fixtureFlags) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if f != nil {
		if cmd.Flags().Changed("fixture") {
			cfg.Fixture.Path = f.path
		}
		if cmd.Flags().Changed("watch") {
			cfg.Fixture.Watch = f.watch
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openProvider loads the configured dataset. When watching, it also
// returns a reloader for the caller to start with watch.
func openProvider(cfg config.FixtureConfig, logger *slog.Logger) (*fixture.Provider, *fixture.Reloader, error) {
	ds, err := loadDataset(cfg.Path)
	if err != nil {
		return nil, nil, err
	}
	provider := fixture.NewProvider(ds)

	if !cfg.Watch {
		return provider, nil, nil
	}
	return provider, fixture.NewReloader(cfg.Path, provider, logger), nil
}

// watch runs r until ctx is done
func watch(ctx context.Context, r *fixture.Reloader, logger *slog.Logger) {
	if r == nil {
		return
	}
	go func() {
		if err := r.Run(ctx); err != nil {
			logger.Error("fixture watcher stopped", "error", err)
		}
	}()
}

func loadDataset(path string) (*fixture.Dataset, error) {
	if path == "" {
		return fixture.Default()
	}
	return fixture.Load(path)
}

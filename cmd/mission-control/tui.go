package main

import (
	"context"

	"github.com/recera/mission-control/internal/logging"
	"github.com/recera/mission-control/internal/tui"
	"github.com/spf13/cobra"
)

func newTUICommand(configPath *string) *cobra.Command {
	var fixtures fixtureFlags

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the cockpit in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *configPath, &fixtures)
			if err != nil {
				return err
			}

			// The alternate screen owns the terminal
			logger := logging.Discard()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			provider, reloader, err := openProvider(cfg.Fixture, logger)
			if err != nil {
				return err
			}
			watch(ctx, reloader, logger)

			return tui.Run(provider, tui.WithTiming(cfg.Zoom.Timing()))
		},
	}

	fixtures.register(cmd)
	return cmd
}

package main

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/recera/mission-control/internal/logging"
	"github.com/recera/mission-control/internal/mcptools"
	"github.com/spf13/cobra"
)

func newMCPCommand(configPath *string) *cobra.Command {
	var fixtures fixtureFlags

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the cockpit as MCP tools over stdio",
		Long: `Starts an MCP server on stdin/stdout so an AI client can query the
cockpit and drive its own zoom session. Logs go to stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *configPath, &fixtures)
			if err != nil {
				return err
			}

			// stdout belongs to the stdio transport
			logger, err := logging.Setup(cfg.Log, os.Stderr)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			provider, reloader, err := openProvider(cfg.Fixture, logger)
			if err != nil {
				return err
			}
			watch(ctx, reloader, logger)

			s, cleanup := mcptools.New(provider, version,
				mcptools.WithTiming(cfg.Zoom.Timing()),
				mcptools.WithLogger(logger),
			)
			defer cleanup()

			return server.ServeStdio(s)
		},
	}

	fixtures.register(cmd)
	return cmd
}

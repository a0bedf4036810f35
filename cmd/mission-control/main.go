package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-preview"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var configPath string

	var rootCmd = &cobra.Command{
		Use:   "mission-control",
		Short: "Mission Control - a zoomable organization cockpit",
		Long: `Mission Control presents an organization as a cockpit you zoom into:
the global view, a region, a department, an agent. Every surface (web,
terminal, MCP) drives the same navigation state machine.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to mission-control.yaml")

	// Add commands
	rootCmd.AddCommand(newServeCommand(&configPath))
	rootCmd.AddCommand(newTUICommand(&configPath))
	rootCmd.AddCommand(newMCPCommand(&configPath))
	rootCmd.AddCommand(newFixtureCommand())
	rootCmd.AddCommand(newConfigCommand(&configPath))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFixtureCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Inspect cockpit datasets",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate [path]",
		Short: "Check a dataset for unknown sectors and dangling references",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			ds, err := loadDataset(path)
			if err != nil {
				return err
			}
			if err := ds.Validate(); err != nil {
				return fmt.Errorf("invalid dataset: %w", err)
			}

			name := path
			if name == "" {
				name = "embedded dataset"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %s is valid\n", name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "dump [path]",
		Short: "Print a dataset as YAML, the embedded one by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			ds, err := loadDataset(path)
			if err != nil {
				return err
			}
			data, err := ds.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	return cmd
}

// Package main provides the entry point for the stationwatch CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for stationwatch.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stationwatch",
		Short: "Track the stations a bike-share network advertises",
		Long: `Stationwatch fetches a bike-share network's public map page, extracts
the embedded station marker payload, and reports which stations appeared,
disappeared, or changed status since the baselines recorded in the
configuration file.

Networks are defined in a .stationwatch configuration file.
Run 'stationwatch init' to create one.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

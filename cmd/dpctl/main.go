// Dpctl is a terminal controller for Rigol DP800-series bench power
// supplies.
//
// It speaks the SCPI line protocol over raw TCP and provides an
// interactive TUI with one column per channel (live measurements,
// setpoints, protection limits), plus one-shot commands for scripting.
//
// Usage:
//
//	dpctl [command] [flags]
//
// Running without arguments launches the interactive TUI.
// See 'dpctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/dpctl/internal/logging"
	"github.com/muurk/dpctl/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logging.Sync()
		os.Exit(1)
	}
	logging.Sync()
}

var rootCmd = &cobra.Command{
	Use:   "dpctl",
	Short: "Rigol DP800 power supply controller",
	Long: `A terminal controller for Rigol DP800-series bench power supplies.

Connects to the instrument over raw TCP (SCPI line protocol) and shows
live measurements, setpoints, and protection limits for every channel,
with keyboard-driven editing.

If no command is specified, the interactive TUI will launch.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logLevel != "" {
			return logging.Initialize(logLevel)
		}
		return logging.InitializeFromEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the TUI when no subcommand provided
		return runTUI(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dpctl %s\n", version.Full())
	},
}

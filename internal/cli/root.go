// Package cli implements the Pulse command-line interface using Cobra.
// Each subcommand opens the app state, performs one operation, and prints.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Pulse — Gentle personal tracking",
	Long: `Pulse is a local-first personal tracker.
Time focus sessions, journal your days, and keep a gentle pulse on how
engaged you are — all on your machine, no accounts, no sync.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

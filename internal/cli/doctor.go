package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pulse-app/pulse/internal/daemon"
	"github.com/pulse-app/pulse/internal/health"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the data store for problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		checker := health.NewChecker(app.DB, app.Config.Data.Dir)
		statuses := checker.RunAll(cmd.Context())

		failed := 0
		for _, s := range statuses {
			if s.Healthy {
				color.New(color.FgGreen).Printf("  ok  ")
				fmt.Println(s.Name)
			} else {
				failed++
				color.New(color.FgRed).Printf("  FAIL")
				fmt.Printf(" %s: %s\n", s.Name, s.Error)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d check(s) failed", failed)
		}
		fmt.Println("\nEverything looks good.")
		return nil
	},
}

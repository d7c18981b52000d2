package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulse-app/pulse/internal/daemon"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [PATH]",
	Short: "Export all data as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		path := fmt.Sprintf("pulse-export-%s.json", time.Now().Format("2006-01-02"))
		if len(args) > 0 {
			path = args[0]
		}

		if err := app.Tracker.WriteExport(path); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", path)
		return nil
	},
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pulse-app/pulse/internal/daemon"
)

func init() {
	rootCmd.AddCommand(startCmd)
}

var startCmd = &cobra.Command{
	Use:   "start [FOCUS_AREA_ID]",
	Short: "Start a focus session",
	Long: `Start timing a focus session. With no argument a quick session is
started; pass a focus area ID to attribute the time (see 'pulse focus list').`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	app, err := daemon.New()
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer app.Close()

	var focusID string
	if len(args) > 0 {
		focusID = args[0]
	}

	sess, err := app.Tracker.Start(focusID)
	if err != nil {
		return err
	}

	if focusID == "" {
		fmt.Printf("Session started at %s (quick session)\n", sess.StartTime.Format("15:04"))
	} else {
		fmt.Printf("Session started at %s\n", sess.StartTime.Format("15:04"))
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pulse-app/pulse/internal/daemon"
)

func init() {
	stopCmd.Flags().StringVarP(&stopNote, "note", "n", "", "What did you work on?")
	stopCmd.Flags().IntVarP(&stopRating, "rating", "r", 0, "Session quality 1-5 (0 = unrated)")
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(discardCmd)
}

var (
	stopNote   string
	stopRating int
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running session",
	RunE:  runStop,
}

func runStop(cmd *cobra.Command, args []string) error {
	app, err := daemon.New()
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer app.Close()

	sess, err := app.Tracker.Stop(stopNote, stopRating)
	if err != nil {
		return err
	}

	fmt.Printf("Session stopped: %d min\n", sess.DurationMin)
	return nil
}

var discardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Discard the running session without saving it",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		if err := app.Tracker.Discard(); err != nil {
			return err
		}
		fmt.Println("Session discarded.")
		return nil
	},
}

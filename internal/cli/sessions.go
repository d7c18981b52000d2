package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pulse-app/pulse/internal/daemon"
)

func init() {
	sessionsEditCmd.Flags().StringVarP(&editNote, "note", "n", "", "New note")
	sessionsEditCmd.Flags().IntVarP(&editRating, "rating", "r", 0, "New quality rating 1-5 (0 = unrated)")
	sessionsCmd.AddCommand(sessionsEditCmd, sessionsRmCmd)
	rootCmd.AddCommand(sessionsCmd)
}

var (
	editNote   string
	editRating int
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List and edit recorded sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		sessions, err := app.DB.ListAllSessions()
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDAY\tMIN\tRATING\tNOTE")
		for _, s := range sessions {
			min := "-"
			if !s.Open() {
				min = fmt.Sprintf("%d", s.DurationMin)
			}
			rating := "-"
			if s.QualityRating > 0 {
				rating = fmt.Sprintf("%d", s.QualityRating)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Day, min, rating, s.Note)
		}
		return w.Flush()
	},
}

var sessionsEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Update a session's note and rating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		if err := app.Tracker.Edit(args[0], editNote, editRating); err != nil {
			return err
		}
		fmt.Println("Updated.")
		return nil
	},
}

var sessionsRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		if err := app.Tracker.Delete(args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulse-app/pulse/internal/daemon"
	"github.com/pulse-app/pulse/internal/domain"
)

func init() {
	checkinCmd.AddCommand(checkinCompleteCmd, checkinDismissCmd)
	intentionCmd.AddCommand(intentionAddCmd, intentionDoneCmd, intentionListCmd)
	rootCmd.AddCommand(checkinCmd)
	rootCmd.AddCommand(intentionCmd)
}

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Weekly and monthly check-ins",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		now := time.Now()
		for _, cadence := range []domain.Cadence{domain.CadenceWeekly, domain.CadenceMonthly} {
			state, err := app.CheckIn.State(cadence, now)
			if err != nil {
				return err
			}
			printCheckInState(state)
		}
		return nil
	},
}

func printCheckInState(state domain.CheckInState) {
	status := "not due today"
	switch {
	case state.Completed:
		status = "completed"
	case state.Dismissed:
		status = "dismissed"
	case state.ShowPrompt:
		status = "due now"
	}
	fmt.Printf("%-8s %s: %s", state.Cadence, state.Period, status)
	if state.OpenIntentions > 0 {
		fmt.Printf(" (%d open intention(s) from last week)", state.OpenIntentions)
	}
	fmt.Println()
}

var checkinCompleteCmd = &cobra.Command{
	Use:   "complete {weekly|monthly}",
	Short: "Mark the current period's check-in done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		now := time.Now()
		cadence := domain.Cadence(args[0])
		if err := app.CheckIn.Complete(cadence, now); err != nil {
			return err
		}
		// The monthly reminder is a one-shot; re-arm it for next month.
		if cadence == domain.CadenceMonthly {
			if p, err := app.Prefs.NotificationPreferences(); err == nil {
				_ = app.Policy.RescheduleMonthly(p, now)
			}
		}
		fmt.Printf("%s check-in completed.\n", cadence)
		return nil
	},
}

var checkinDismissCmd = &cobra.Command{
	Use:   "dismiss {weekly|monthly}",
	Short: "Snooze the check-in until next period",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		cadence := domain.Cadence(args[0])
		if err := app.CheckIn.Dismiss(cadence, time.Now()); err != nil {
			return err
		}
		fmt.Printf("%s check-in dismissed for this period.\n", cadence)
		return nil
	},
}

// ─── Weekly intentions ──────────────────────────────────────────────────────

var intentionCmd = &cobra.Command{
	Use:   "intention",
	Short: "Weekly intentions set during check-ins",
}

var intentionAddCmd = &cobra.Command{
	Use:   "add TEXT",
	Short: "Add an intention for this week",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		i, err := app.CheckIn.AddIntention(args[0], time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("Added for %s: %s\n", i.Week, i.Text)
		return nil
	},
}

var intentionDoneCmd = &cobra.Command{
	Use:   "done ID",
	Short: "Mark an intention done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		if err := app.CheckIn.CompleteIntention(args[0]); err != nil {
			return err
		}
		fmt.Println("Done.")
		return nil
	},
}

var intentionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List this week's intentions",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		intentions, err := app.CheckIn.Intentions(time.Now())
		if err != nil {
			return err
		}
		if len(intentions) == 0 {
			fmt.Println("No intentions this week.")
			return nil
		}
		for _, i := range intentions {
			mark := " "
			if i.Done {
				mark = "x"
			}
			fmt.Printf("[%s] %s  %s\n", mark, i.ID, i.Text)
		}
		return nil
	},
}

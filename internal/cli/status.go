package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pulse-app/pulse/internal/daemon"
	"github.com/pulse-app/pulse/internal/domain"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's pulse: session, totals, streak, check-ins",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, err := daemon.New()
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer app.Close()

	snap, err := app.Refresh(time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Pulse — %s\n\n", snap.Day)

	levelColor(snap.Engagement.Level).Printf("  %s", snap.Engagement.Level)
	if snap.Engagement.CurrentStreak > 0 {
		fmt.Printf("  ·  %d-day streak", snap.Engagement.CurrentStreak)
	}
	fmt.Println()

	if snap.ActiveSession != nil {
		elapsed := int(time.Since(snap.ActiveSession.StartTime).Minutes())
		color.New(color.FgGreen).Printf("  ● session running (%d min)\n", elapsed)
	}
	fmt.Printf("  %d min today across %d session(s)\n", snap.Today.TotalMinutes, snap.Today.SessionCount)

	if snap.Prompt != nil {
		fmt.Println()
		color.New(color.FgYellow).Printf("  %s\n", snap.Prompt.Title)
		fmt.Printf("  %s\n", snap.Prompt.Message)
	}

	if snap.Weekly.ShowPrompt {
		fmt.Println()
		fmt.Printf("  Weekly check-in due (%s)", snap.Weekly.Period)
		if snap.Weekly.OpenIntentions > 0 {
			fmt.Printf(" — %d open intention(s) from last week", snap.Weekly.OpenIntentions)
		}
		fmt.Println()
	}
	if snap.Monthly.ShowPrompt {
		fmt.Printf("  Monthly check-in due (%s)\n", snap.Monthly.Period)
	}

	return nil
}

func levelColor(level domain.EngagementLevel) *color.Color {
	switch level {
	case domain.LevelActive:
		return color.New(color.FgGreen, color.Bold)
	case domain.LevelSlipping:
		return color.New(color.FgYellow, color.Bold)
	case domain.LevelDormant:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgHiBlack, color.Bold)
	}
}

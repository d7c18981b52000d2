package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulse-app/pulse/internal/daemon"
	"github.com/pulse-app/pulse/internal/domain"
)

func init() {
	logMorningCmd.Flags().StringVarP(&logIntention, "intention", "i", "", "What matters most today?")
	logMorningCmd.Flags().StringVarP(&logCommitment, "commitment", "c", "", "One concrete commitment")
	logEveningCmd.Flags().StringVarP(&logReflection, "reflection", "r", "", "How did today go?")
	logEveningCmd.Flags().IntVarP(&logFeeling, "feeling", "f", 0, "Feeling rating 1-5")
	logCmd.PersistentFlags().StringVar(&logDate, "date", "", "Date (YYYY-MM-DD, default today)")
	logCmd.AddCommand(logMorningCmd, logEveningCmd, logShowCmd)
	rootCmd.AddCommand(logCmd)
}

var (
	logDate       string
	logIntention  string
	logCommitment string
	logReflection string
	logFeeling    int
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Daily journal: morning intention, evening reflection",
}

// logDay resolves the --date flag, defaulting to today.
func logDay() string {
	if logDate != "" {
		return logDate
	}
	return domain.DayOf(time.Now())
}

var logMorningCmd = &cobra.Command{
	Use:   "morning",
	Short: "Record the day's intention and commitment",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		if err := app.LogMorning(logDay(), logIntention, logCommitment); err != nil {
			return err
		}
		fmt.Printf("Morning log saved for %s.\n", logDay())
		return nil
	},
}

var logEveningCmd = &cobra.Command{
	Use:   "evening",
	Short: "Record the day's reflection and feeling",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		if err := app.LogEvening(logDay(), logReflection, logFeeling); err != nil {
			return err
		}
		fmt.Printf("Evening log saved for %s.\n", logDay())
		return nil
	},
}

var logShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a day's log",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		day := logDay()
		if _, err := domain.ParseDay(day); err != nil {
			return domain.ErrInvalidDate
		}
		entry, err := app.DB.GetDailyLog(day)
		if err != nil {
			return err
		}
		if entry == nil {
			fmt.Printf("No log for %s.\n", day)
			return nil
		}

		fmt.Printf("%s\n", entry.Date)
		if entry.Intention != "" {
			fmt.Printf("  Intention:  %s\n", entry.Intention)
		}
		if entry.Commitment != "" {
			fmt.Printf("  Commitment: %s\n", entry.Commitment)
		}
		if entry.Reflection != "" {
			fmt.Printf("  Reflection: %s\n", entry.Reflection)
		}
		if entry.FeelingRating > 0 {
			fmt.Printf("  Feeling:    %d/5\n", entry.FeelingRating)
		}
		return nil
	},
}

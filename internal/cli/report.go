package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulse-app/pulse/internal/app/report"
	"github.com/pulse-app/pulse/internal/daemon"
	"github.com/pulse-app/pulse/internal/domain"
)

func init() {
	reportCmd.PersistentFlags().StringVar(&reportDate, "date", "", "Anchor date (YYYY-MM-DD, default today)")
	reportCmd.AddCommand(reportDayCmd, reportWeekCmd, reportMonthCmd)
	rootCmd.AddCommand(reportCmd)
}

var reportDate string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregated focus time per day, week or month",
}

// reportAnchor resolves the --date flag, defaulting to now.
func reportAnchor() (time.Time, error) {
	if reportDate == "" {
		return time.Now(), nil
	}
	t, err := domain.ParseDay(reportDate)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return t, nil
}

func printTotals(totals report.Totals) {
	if totals.SessionCount == 0 {
		fmt.Println("No completed sessions in this period.")
		return
	}
	fmt.Printf("%s — %s: %d min, %d session(s)\n\n", totals.From, totals.To, totals.TotalMinutes, totals.SessionCount)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FOCUS\tMINUTES\tSESSIONS")
	for _, b := range totals.Buckets {
		fmt.Fprintf(w, "%s\t%d\t%d\n", b.FocusAreaName, b.Minutes, b.Sessions)
	}
	w.Flush()
}

var reportDayCmd = &cobra.Command{
	Use:   "day",
	Short: "One day's totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		t, err := reportAnchor()
		if err != nil {
			return err
		}
		totals, err := app.Report.Day(t)
		if err != nil {
			return err
		}
		printTotals(totals)
		return nil
	},
}

var reportWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "This week's totals (Monday through Sunday)",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		t, err := reportAnchor()
		if err != nil {
			return err
		}
		totals, err := app.Report.Week(t)
		if err != nil {
			return err
		}
		printTotals(totals)
		return nil
	},
}

var reportMonthCmd = &cobra.Command{
	Use:   "month",
	Short: "Month summary with active days and month-over-month change",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		t, err := reportAnchor()
		if err != nil {
			return err
		}
		summary, err := app.Report.Month(t)
		if err != nil {
			return err
		}

		printTotals(summary.Totals)
		fmt.Printf("\nActive days: %d\n", summary.ActiveDays)
		if summary.PercentChange != nil {
			fmt.Printf("vs %d min last month: %+d%%\n", summary.PrevMinutes, *summary.PercentChange)
		}
		return nil
	},
}

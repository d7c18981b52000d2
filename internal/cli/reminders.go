package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulse-app/pulse/internal/daemon"
	"github.com/pulse-app/pulse/internal/domain"
)

func init() {
	remindersSetCmd.Flags().StringVar(&reminderAt, "at", "", "Time of day (HH:MM)")
	remindersCmd.AddCommand(remindersSetCmd, remindersOffCmd)
	rootCmd.AddCommand(remindersCmd)
}

var reminderAt string

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Configure local reminders",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := daemon.New()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		p, err := app.Prefs.NotificationPreferences()
		if err != nil {
			return err
		}
		printReminder("morning", p.Morning)
		printReminder("evening", p.Evening)
		printReminder("weekly", p.Weekly)
		printReminder("monthly", p.Monthly)
		fmt.Printf("permission: %s\n", p.Permission)
		return nil
	},
}

func printReminder(name string, s domain.ReminderSetting) {
	state := "off"
	if s.Enabled {
		state = fmt.Sprintf("on at %02d:%02d", s.At.Hour, s.At.Minute)
	}
	fmt.Printf("%-8s %s\n", name, state)
}

var remindersSetCmd = &cobra.Command{
	Use:   "set {morning|evening|weekly|monthly}",
	Short: "Enable a reminder, optionally changing its time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateReminder(args[0], true)
	},
}

var remindersOffCmd = &cobra.Command{
	Use:   "off {morning|evening|weekly|monthly}",
	Short: "Disable a reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateReminder(args[0], false)
	},
}

func updateReminder(name string, enabled bool) error {
	app, err := daemon.New()
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer app.Close()

	p, err := app.Prefs.NotificationPreferences()
	if err != nil {
		return err
	}

	var setting *domain.ReminderSetting
	switch name {
	case "morning":
		setting = &p.Morning
	case "evening":
		setting = &p.Evening
	case "weekly":
		setting = &p.Weekly
	case "monthly":
		setting = &p.Monthly
	default:
		return fmt.Errorf("unknown reminder %q", name)
	}

	setting.Enabled = enabled
	if reminderAt != "" {
		at, err := parseTimeOfDay(reminderAt)
		if err != nil {
			return err
		}
		setting.At = at
	}

	if err := app.Prefs.SaveNotificationPreferences(p); err != nil {
		return err
	}

	// Apply the new schedule right away.
	now := time.Now()
	snap, err := app.Engagement.Snapshot(now)
	if err != nil {
		return err
	}
	if err := app.Policy.Sync(p, snap.Level, now); err != nil {
		return err
	}

	printReminder(name, *setting)
	return nil
}

func parseTimeOfDay(s string) (domain.TimeOfDay, error) {
	var t domain.TimeOfDay
	if _, err := fmt.Sscanf(s, "%d:%d", &t.Hour, &t.Minute); err != nil || !t.Valid() {
		return domain.TimeOfDay{}, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	return t, nil
}

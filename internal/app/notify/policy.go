package notify

import (
	"fmt"
	"time"

	"github.com/pulse-app/pulse/internal/app/engagement"
	"github.com/pulse-app/pulse/internal/domain"
)

// Policy reconciles reminder preferences and engagement state against the
// scheduler: enabled reminders are (re)scheduled in place, disabled ones
// cancelled. Sync is idempotent — running it twice leaves the same schedule.
type Policy struct {
	scheduler Scheduler
}

// NewPolicy creates a notification policy over a scheduler capability.
func NewPolicy(scheduler Scheduler) *Policy {
	return &Policy{scheduler: scheduler}
}

// Scheduler exposes the underlying capability (for permission checks).
func (p *Policy) Scheduler() Scheduler { return p.scheduler }

// Sync applies the full desired schedule for the given preferences and
// engagement level.
func (p *Policy) Sync(prefs domain.NotificationPreferences, level domain.EngagementLevel, now time.Time) error {
	if err := p.applyReminder(domain.ReminderMorning, prefs.Morning, domain.Trigger{
		Kind: domain.TriggerDaily, At: prefs.Morning.At,
	}, "Morning check-in", "What matters most today?"); err != nil {
		return err
	}

	if err := p.applyReminder(domain.ReminderEvening, prefs.Evening, domain.Trigger{
		Kind: domain.TriggerDaily, At: prefs.Evening.At,
	}, "Evening reflection", "How did today go?"); err != nil {
		return err
	}

	if err := p.applyReminder(domain.ReminderWeeklyCheck, prefs.Weekly, domain.Trigger{
		Kind: domain.TriggerWeekly, Weekday: time.Monday, At: prefs.Weekly.At,
	}, "Weekly check-in", "Review last week and set intentions."); err != nil {
		return err
	}

	if err := p.syncMonthly(prefs.Monthly, now); err != nil {
		return err
	}

	return p.SyncReturnPrompt(level, now)
}

// applyReminder schedules an enabled reminder or cancels a disabled one.
func (p *Policy) applyReminder(kind domain.ReminderKind, setting domain.ReminderSetting, trigger domain.Trigger, title, body string) error {
	if !setting.Enabled {
		if err := p.scheduler.Cancel(string(kind)); err != nil {
			return fmt.Errorf("cancel %s: %w", kind, err)
		}
		return nil
	}
	err := p.scheduler.Schedule(domain.ScheduledNotification{
		ID:      string(kind),
		Title:   title,
		Body:    body,
		Trigger: trigger,
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", kind, err)
	}
	return nil
}

// syncMonthly schedules the monthly check-in. The trigger primitive has no
// day-of-month recurrence, so it is a one-shot at the next 1st at the
// configured time, re-armed after each delivery via RescheduleMonthly.
func (p *Policy) syncMonthly(setting domain.ReminderSetting, now time.Time) error {
	if !setting.Enabled {
		if err := p.scheduler.Cancel(string(domain.ReminderMonthlyCheck)); err != nil {
			return fmt.Errorf("cancel %s: %w", domain.ReminderMonthlyCheck, err)
		}
		return nil
	}
	err := p.scheduler.Schedule(domain.ScheduledNotification{
		ID:    string(domain.ReminderMonthlyCheck),
		Title: "Monthly check-in",
		Body:  "Step back: how was your month?",
		Trigger: domain.Trigger{
			Kind:    domain.TriggerOneShot,
			Instant: NextMonthlyFire(now, setting.At),
		},
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", domain.ReminderMonthlyCheck, err)
	}
	return nil
}

// RescheduleMonthly re-arms the monthly one-shot. The delivery shell calls
// this when the monthly notification is received.
func (p *Policy) RescheduleMonthly(prefs domain.NotificationPreferences, now time.Time) error {
	return p.syncMonthly(prefs.Monthly, now)
}

// SyncReturnPrompt replaces the dynamic re-engagement prompt: cancelled for
// active users, otherwise a one-shot at 10:00 tomorrow with the level's copy.
// Cancel-then-reschedule keeps the replacement idempotent.
func (p *Policy) SyncReturnPrompt(level domain.EngagementLevel, now time.Time) error {
	id := string(domain.ReminderReturn)
	if err := p.scheduler.Cancel(id); err != nil {
		return fmt.Errorf("cancel %s: %w", id, err)
	}
	if !domain.ShouldShowPrompt(level) {
		return nil
	}

	prompt := engagement.PromptFor(level)
	err := p.scheduler.Schedule(domain.ScheduledNotification{
		ID:    id,
		Title: prompt.Title,
		Body:  prompt.Message,
		Trigger: domain.Trigger{
			Kind:    domain.TriggerOneShot,
			Instant: ReturnPromptTime(now),
		},
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", id, err)
	}
	return nil
}

// NextMonthlyFire returns the next 1st-of-month at the configured time,
// rolling to the following month when this month's instant has passed.
func NextMonthlyFire(now time.Time, t domain.TimeOfDay) time.Time {
	fire := time.Date(now.Year(), now.Month(), 1, t.Hour, t.Minute, 0, 0, now.Location())
	if !fire.After(now) {
		fire = fire.AddDate(0, 1, 0)
	}
	return fire
}

// ReturnPromptTime is the fixed return-prompt offset: next day at 10:00.
func ReturnPromptTime(now time.Time) time.Time {
	next := now.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), 10, 0, 0, 0, now.Location())
}

// Package notify maps reminder preferences and engagement state onto a set
// of scheduled local notifications.
//
// The platform notification surface is modeled as a capability: the Scheduler
// interface is picked once at startup, and constrained runtimes get the no-op
// implementation instead of scattering environment checks before every call.
package notify

import (
	"fmt"
	"time"

	"github.com/pulse-app/pulse/internal/domain"
	"github.com/pulse-app/pulse/internal/infra/metrics"
)

// Scheduler is the local-notification capability.
type Scheduler interface {
	// Schedule stores or replaces the notification with n.ID.
	Schedule(n domain.ScheduledNotification) error
	// Cancel removes a scheduled notification; absent IDs are a no-op.
	Cancel(id string) error
	// CancelAll clears the whole schedule.
	CancelAll() error
	// Permission reports the cached permission state. Never an error.
	Permission() domain.PermissionStatus
}

// ─── Store-backed scheduler ─────────────────────────────────────────────────

// ScheduleStore is the persistence slice the store-backed scheduler needs.
// Satisfied by *sqlite.DB.
type ScheduleStore interface {
	UpsertScheduled(n domain.ScheduledNotification) error
	GetScheduled(id string) (*domain.ScheduledNotification, error)
	ListScheduled() ([]domain.ScheduledNotification, error)
	DeleteScheduled(id string) error
	DeleteAllScheduled() error
}

// StoreScheduler keeps the schedule in the SQLite ledger and computes each
// entry's next fire instant. A delivery shell (the UI host) reads the ledger
// and raises the platform notifications.
type StoreScheduler struct {
	store ScheduleStore
	now   func() time.Time
}

// NewStoreScheduler creates a scheduler over the SQLite ledger.
func NewStoreScheduler(store ScheduleStore) *StoreScheduler {
	return &StoreScheduler{store: store, now: time.Now}
}

// NewStoreSchedulerAt creates a scheduler with a fixed clock, for tests.
func NewStoreSchedulerAt(store ScheduleStore, now func() time.Time) *StoreScheduler {
	return &StoreScheduler{store: store, now: now}
}

// Schedule stores or replaces a notification and stamps its next fire time.
func (s *StoreScheduler) Schedule(n domain.ScheduledNotification) error {
	fire, err := NextFire(n.Trigger, s.now())
	if err != nil {
		return fmt.Errorf("schedule %s: %w", n.ID, err)
	}
	n.NextFire = fire
	if err := s.store.UpsertScheduled(n); err != nil {
		return fmt.Errorf("schedule %s: %w", n.ID, err)
	}
	metrics.NotificationsScheduled.WithLabelValues(n.ID).Inc()
	return nil
}

// Cancel removes one scheduled notification.
func (s *StoreScheduler) Cancel(id string) error {
	if err := s.store.DeleteScheduled(id); err != nil {
		return fmt.Errorf("cancel %s: %w", id, err)
	}
	metrics.NotificationsCancelled.WithLabelValues(id).Inc()
	return nil
}

// CancelAll clears the schedule ledger.
func (s *StoreScheduler) CancelAll() error {
	return s.store.DeleteAllScheduled()
}

// Permission reports granted — the local ledger is always writable.
func (s *StoreScheduler) Permission() domain.PermissionStatus {
	return domain.PermissionGranted
}

// Pending lists the current schedule for the delivery shell.
func (s *StoreScheduler) Pending() ([]domain.ScheduledNotification, error) {
	return s.store.ListScheduled()
}

// ─── No-op scheduler ────────────────────────────────────────────────────────

// NoopScheduler is the degraded-runtime capability: every operation returns
// immediately without error, so callers never branch on environment.
type NoopScheduler struct{}

func (NoopScheduler) Schedule(domain.ScheduledNotification) error { return nil }
func (NoopScheduler) Cancel(string) error                         { return nil }
func (NoopScheduler) CancelAll() error                            { return nil }
func (NoopScheduler) Permission() domain.PermissionStatus         { return domain.PermissionDenied }

// ─── Trigger math ───────────────────────────────────────────────────────────

// NextFire computes the first instant after now at which the trigger fires.
func NextFire(tr domain.Trigger, now time.Time) (time.Time, error) {
	switch tr.Kind {
	case domain.TriggerDaily:
		fire := at(now, tr.At)
		if !fire.After(now) {
			fire = fire.AddDate(0, 0, 1)
		}
		return fire, nil

	case domain.TriggerWeekly:
		fire := at(now, tr.At)
		days := (int(tr.Weekday) - int(now.Weekday()) + 7) % 7
		fire = fire.AddDate(0, 0, days)
		if !fire.After(now) {
			fire = fire.AddDate(0, 0, 7)
		}
		return fire, nil

	case domain.TriggerOneShot:
		if tr.Instant.IsZero() {
			return time.Time{}, fmt.Errorf("one-shot trigger without instant")
		}
		return tr.Instant, nil
	}
	return time.Time{}, fmt.Errorf("unknown trigger kind %q", tr.Kind)
}

// at returns the given wall-clock time on now's calendar day.
func at(now time.Time, t domain.TimeOfDay) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour, t.Minute, 0, 0, now.Location())
}

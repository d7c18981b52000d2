// Package health runs data-integrity checks over the Pulse store.
// Checks are cheap reads; none of them mutate state.
package health

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pulse-app/pulse/internal/domain"
	"github.com/pulse-app/pulse/internal/infra/sqlite"
)

// Check defines a single health check.
type Check struct {
	Name    string
	CheckFn func(ctx context.Context) error
}

// Status represents the result of a health check.
type Status struct {
	Name      string    `json:"name"`
	Healthy   bool      `json:"healthy"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Checker runs the store checks, on demand or periodically.
type Checker struct {
	mu       sync.RWMutex
	checks   []Check
	statuses []Status
	interval time.Duration
}

// NewChecker creates a checker with the standard Pulse checks.
func NewChecker(db *sqlite.DB, dataDir string) *Checker {
	return &Checker{
		interval: 10 * time.Minute,
		checks: []Check{
			{
				Name: "sqlite",
				CheckFn: func(ctx context.Context) error {
					return db.Ping()
				},
			},
			{
				Name: "data_dir",
				CheckFn: func(ctx context.Context) error {
					return checkDataDir(dataDir)
				},
			},
			{
				Name: "single_open_session",
				CheckFn: func(ctx context.Context) error {
					return checkSingleOpenSession(db)
				},
			},
			{
				Name: "session_durations",
				CheckFn: func(ctx context.Context) error {
					return checkSessionDurations(db)
				},
			},
			{
				Name: "schedule_ledger",
				CheckFn: func(ctx context.Context) error {
					return checkScheduleLedger(db)
				},
			},
		},
	}
}

// Run starts the periodic check loop. Call in a goroutine.
func (c *Checker) Run(ctx context.Context) {
	c.RunAll(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.RunAll(ctx)
		}
	}
}

// RunAll executes every check once and records the results.
func (c *Checker) RunAll(ctx context.Context) []Status {
	statuses := make([]Status, len(c.checks))
	for i, check := range c.checks {
		s := Status{
			Name:      check.Name,
			CheckedAt: time.Now(),
		}
		if err := check.CheckFn(ctx); err != nil {
			s.Error = err.Error()
		} else {
			s.Healthy = true
		}
		statuses[i] = s
	}

	c.mu.Lock()
	c.statuses = statuses
	c.mu.Unlock()
	return statuses
}

// Statuses returns the latest check results.
func (c *Checker) Statuses() []Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]Status, len(c.statuses))
	copy(result, c.statuses)
	return result
}

// IsHealthy returns true if all checks pass.
func (c *Checker) IsHealthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.statuses {
		if !s.Healthy {
			return false
		}
	}
	return true
}

// ─── Check Implementations ──────────────────────────────────────────────────

func checkDataDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("check data dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// checkSingleOpenSession verifies the at-most-one-open invariant the store's
// unique index enforces. A failure here means the index was dropped or the
// file was edited outside Pulse.
func checkSingleOpenSession(db *sqlite.DB) error {
	sessions, err := db.ListAllSessions()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	open := 0
	for _, s := range sessions {
		if s.Open() {
			open++
		}
	}
	if open > 1 {
		return fmt.Errorf("%d sessions open at once, want at most 1", open)
	}
	return nil
}

func checkSessionDurations(db *sqlite.DB) error {
	sessions, err := db.ListAllSessions()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	for _, s := range sessions {
		if s.Open() {
			continue
		}
		if s.DurationMin < 0 {
			return fmt.Errorf("session %s has negative duration %d", s.ID, s.DurationMin)
		}
		if s.EndTime.Before(s.StartTime) {
			return fmt.Errorf("session %s ends before it starts", s.ID)
		}
	}
	return nil
}

// checkScheduleLedger verifies every scheduled notification carries a known
// reminder id and a well-formed trigger.
func checkScheduleLedger(db *sqlite.DB) error {
	known := map[string]bool{
		string(domain.ReminderMorning):      true,
		string(domain.ReminderEvening):      true,
		string(domain.ReminderWeeklyCheck):  true,
		string(domain.ReminderMonthlyCheck): true,
		string(domain.ReminderReturn):       true,
	}
	scheduled, err := db.ListScheduled()
	if err != nil {
		return fmt.Errorf("list scheduled: %w", err)
	}
	for _, n := range scheduled {
		if !known[n.ID] {
			return fmt.Errorf("unknown reminder id %q in schedule", n.ID)
		}
		switch n.Trigger.Kind {
		case domain.TriggerDaily, domain.TriggerWeekly:
			if !n.Trigger.At.Valid() {
				return fmt.Errorf("reminder %s has invalid time of day", n.ID)
			}
		case domain.TriggerOneShot:
			if n.Trigger.Instant.IsZero() {
				return fmt.Errorf("reminder %s has no fire instant", n.ID)
			}
		default:
			return fmt.Errorf("reminder %s has unknown trigger kind %q", n.ID, n.Trigger.Kind)
		}
	}
	return nil
}

package checkin

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pulse-app/pulse/internal/domain"
	"github.com/pulse-app/pulse/internal/infra/metrics"
	"github.com/pulse-app/pulse/internal/infra/prefs"
)

// IntentionStore is the slice of the session store the scheduler reads for
// the prior-period context count. Satisfied by *sqlite.DB.
type IntentionStore interface {
	InsertIntention(i domain.WeeklyIntention) error
	ListIntentions(week string) ([]domain.WeeklyIntention, error)
	SetIntentionDone(id string, done bool) error
	CountOpenIntentions(week string) (int, error)
}

// Scheduler is the check-in state machine. Per cadence it keeps two
// markers in the preference store: the last completed period and the
// last dismissed period. Reads are side-effect free.
type Scheduler struct {
	prefs      *prefs.Store
	intentions IntentionStore
}

// NewScheduler creates a check-in scheduler.
func NewScheduler(p *prefs.Store, intentions IntentionStore) *Scheduler {
	return &Scheduler{prefs: p, intentions: intentions}
}

func markerKeys(cadence domain.Cadence) (done, dismissed string) {
	if cadence == domain.CadenceMonthly {
		return prefs.KeyMonthlyDone, prefs.KeyMonthlyDismissed
	}
	return prefs.KeyWeeklyDone, prefs.KeyWeeklyDismissed
}

// State returns the prompt state for one cadence on the given day.
// The prompt shows only on the anchor day, and only while the current
// period is neither completed nor dismissed.
func (s *Scheduler) State(cadence domain.Cadence, today time.Time) (domain.CheckInState, error) {
	if !domain.ValidCadence(cadence) {
		return domain.CheckInState{}, domain.ErrUnknownCadence
	}

	doneKey, dismissedKey := markerKeys(cadence)
	period := PeriodOf(cadence, today)

	done, err := s.prefs.Marker(doneKey)
	if err != nil {
		return domain.CheckInState{}, fmt.Errorf("read %s: %w", doneKey, err)
	}
	dismissed, err := s.prefs.Marker(dismissedKey)
	if err != nil {
		return domain.CheckInState{}, fmt.Errorf("read %s: %w", dismissedKey, err)
	}

	state := domain.CheckInState{
		Cadence:   cadence,
		Period:    period,
		Completed: done == period,
		Dismissed: dismissed == period,
	}
	state.ShowPrompt = IsAnchorDay(cadence, today) && !state.Completed && !state.Dismissed

	if cadence == domain.CadenceWeekly && state.ShowPrompt {
		n, err := s.intentions.CountOpenIntentions(PrevPeriodOf(cadence, today))
		if err != nil {
			return domain.CheckInState{}, fmt.Errorf("count open intentions: %w", err)
		}
		state.OpenIntentions = n
	}

	return state, nil
}

// Complete marks the current period done and clears any dismissal.
// Calling it again in the same period is a no-op.
func (s *Scheduler) Complete(cadence domain.Cadence, today time.Time) error {
	if !domain.ValidCadence(cadence) {
		return domain.ErrUnknownCadence
	}

	doneKey, dismissedKey := markerKeys(cadence)
	period := PeriodOf(cadence, today)

	if err := s.prefs.SetMarker(doneKey, period); err != nil {
		return fmt.Errorf("set %s: %w", doneKey, err)
	}
	if err := s.prefs.ClearMarker(dismissedKey); err != nil {
		return fmt.Errorf("clear %s: %w", dismissedKey, err)
	}
	metrics.CheckinsCompleted.WithLabelValues(string(cadence)).Inc()
	return nil
}

// Dismiss snoozes the prompt for the rest of the current period.
// Completion markers are untouched. Idempotent within a period.
func (s *Scheduler) Dismiss(cadence domain.Cadence, today time.Time) error {
	if !domain.ValidCadence(cadence) {
		return domain.ErrUnknownCadence
	}

	_, dismissedKey := markerKeys(cadence)
	if err := s.prefs.SetMarker(dismissedKey, PeriodOf(cadence, today)); err != nil {
		return fmt.Errorf("set %s: %w", dismissedKey, err)
	}
	metrics.CheckinsDismissed.WithLabelValues(string(cadence)).Inc()
	return nil
}

// AddIntention records a weekly intention for today's week.
func (s *Scheduler) AddIntention(text string, today time.Time) (domain.WeeklyIntention, error) {
	i := domain.WeeklyIntention{
		ID:        uuid.NewString(),
		Week:      domain.ISOWeek(today),
		Text:      text,
		CreatedAt: today,
	}
	if err := s.intentions.InsertIntention(i); err != nil {
		return domain.WeeklyIntention{}, fmt.Errorf("insert intention: %w", err)
	}
	return i, nil
}

// CompleteIntention marks one intention done.
func (s *Scheduler) CompleteIntention(id string) error {
	if err := s.intentions.SetIntentionDone(id, true); err != nil {
		return fmt.Errorf("complete intention: %w", err)
	}
	return nil
}

// Intentions lists the intentions for today's week.
func (s *Scheduler) Intentions(today time.Time) ([]domain.WeeklyIntention, error) {
	return s.intentions.ListIntentions(domain.ISOWeek(today))
}

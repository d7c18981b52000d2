package checkin_test

import (
	"testing"
	"time"

	"github.com/pulse-app/pulse/internal/app/checkin"
	"github.com/pulse-app/pulse/internal/domain"
	"github.com/pulse-app/pulse/internal/infra/prefs"
	"github.com/pulse-app/pulse/internal/infra/sqlite"
)

// testScheduler builds a scheduler over a temporary SQLite store.
func testScheduler(t *testing.T) *checkin.Scheduler {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return checkin.NewScheduler(prefs.NewStore(db), db)
}

var (
	monday  = time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC) // Monday, week 2024-W11
	tuesday = monday.AddDate(0, 0, 1)
	first   = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) // 1st of March
	second  = first.AddDate(0, 0, 1)
)

func TestPeriodHelpers(t *testing.T) {
	if p := checkin.PeriodOf(domain.CadenceWeekly, monday); p != "2024-W11" {
		t.Errorf("weekly period = %s, want 2024-W11", p)
	}
	if p := checkin.PeriodOf(domain.CadenceMonthly, first); p != "2024-03" {
		t.Errorf("monthly period = %s, want 2024-03", p)
	}
	if p := checkin.PrevPeriodOf(domain.CadenceWeekly, monday); p != "2024-W10" {
		t.Errorf("prev weekly = %s, want 2024-W10", p)
	}
	if p := checkin.PrevPeriodOf(domain.CadenceMonthly, first); p != "2024-02" {
		t.Errorf("prev monthly = %s, want 2024-02", p)
	}
	if !checkin.IsAnchorDay(domain.CadenceWeekly, monday) {
		t.Error("Monday should anchor the weekly cadence")
	}
	if checkin.IsAnchorDay(domain.CadenceWeekly, tuesday) {
		t.Error("Tuesday should not anchor the weekly cadence")
	}
	if !checkin.IsAnchorDay(domain.CadenceMonthly, first) {
		t.Error("the 1st should anchor the monthly cadence")
	}
	if checkin.IsAnchorDay(domain.CadenceMonthly, second) {
		t.Error("the 2nd should not anchor the monthly cadence")
	}
}

func TestWeeklyPrompt_ShowsWhenUnprompted(t *testing.T) {
	s := testScheduler(t)

	// Last completed a previous week, nothing dismissed.
	if err := s.Complete(domain.CadenceWeekly, monday.AddDate(0, 0, -7)); err != nil {
		t.Fatalf("complete prior week: %v", err)
	}

	state, err := s.State(domain.CadenceWeekly, monday)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if !state.ShowPrompt {
		t.Error("prompt should show on Monday with a stale completion marker")
	}
	if state.Period != "2024-W11" {
		t.Errorf("period = %s", state.Period)
	}
}

func TestWeeklyPrompt_AnchorGating(t *testing.T) {
	s := testScheduler(t)

	// Never completed, never dismissed — still hidden off-Monday.
	for i := 1; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		state, err := s.State(domain.CadenceWeekly, day)
		if err != nil {
			t.Fatalf("state: %v", err)
		}
		if state.ShowPrompt {
			t.Errorf("prompt shown on %s", day.Weekday())
		}
	}
}

func TestMonthlyPrompt_AnchorGating(t *testing.T) {
	s := testScheduler(t)

	state, err := s.State(domain.CadenceMonthly, first)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if !state.ShowPrompt {
		t.Error("prompt should show on the 1st")
	}

	state, _ = s.State(domain.CadenceMonthly, second)
	if state.ShowPrompt {
		t.Error("prompt should hide on the 2nd")
	}
}

func TestDismiss_HidesForPeriod(t *testing.T) {
	s := testScheduler(t)

	if err := s.Dismiss(domain.CadenceWeekly, monday); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	state, _ := s.State(domain.CadenceWeekly, monday)
	if state.ShowPrompt {
		t.Error("prompt should hide after dismissal")
	}
	if !state.Dismissed || state.Completed {
		t.Errorf("state = %+v", state)
	}

	// Dismissing twice leaves state identical.
	if err := s.Dismiss(domain.CadenceWeekly, monday); err != nil {
		t.Fatalf("second dismiss: %v", err)
	}
	again, _ := s.State(domain.CadenceWeekly, monday)
	if again != state {
		t.Errorf("dismiss not idempotent: %+v vs %+v", again, state)
	}

	// Next week's Monday prompts again.
	nextMonday := monday.AddDate(0, 0, 7)
	state, _ = s.State(domain.CadenceWeekly, nextMonday)
	if !state.ShowPrompt {
		t.Error("dismissal must not carry into the next period")
	}
}

func TestComplete_ClearsDismissal(t *testing.T) {
	s := testScheduler(t)

	if err := s.Dismiss(domain.CadenceWeekly, monday); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if err := s.Complete(domain.CadenceWeekly, monday); err != nil {
		t.Fatalf("complete: %v", err)
	}

	state, _ := s.State(domain.CadenceWeekly, monday)
	if state.ShowPrompt {
		t.Error("prompt should hide after completion")
	}
	if !state.Completed || state.Dismissed {
		t.Errorf("complete should set done and clear dismissed: %+v", state)
	}
}

func TestDismissedThisWeek_ScenarioD(t *testing.T) {
	s := testScheduler(t)

	// lastCompleted = 2024-W10, dismissed = 2024-W11, today Monday of W11.
	if err := s.Complete(domain.CadenceWeekly, monday.AddDate(0, 0, -7)); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := s.Dismiss(domain.CadenceWeekly, monday); err != nil {
		t.Fatalf("dismiss: %v", err)
	}

	state, _ := s.State(domain.CadenceWeekly, monday)
	if state.ShowPrompt {
		t.Error("prompt should hide when the current week was dismissed")
	}
}

func TestOpenIntentionCount(t *testing.T) {
	s := testScheduler(t)

	prevMonday := monday.AddDate(0, 0, -7)
	a, err := s.AddIntention("write more", prevMonday)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddIntention("sleep earlier", prevMonday); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.CompleteIntention(a.ID); err != nil {
		t.Fatalf("complete intention: %v", err)
	}

	state, err := s.State(domain.CadenceWeekly, monday)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if !state.ShowPrompt {
		t.Fatal("prompt should show")
	}
	if state.OpenIntentions != 1 {
		t.Errorf("open intentions = %d, want 1", state.OpenIntentions)
	}
}

func TestUnknownCadence(t *testing.T) {
	s := testScheduler(t)
	if _, err := s.State("daily", monday); err != domain.ErrUnknownCadence {
		t.Errorf("state = %v, want ErrUnknownCadence", err)
	}
	if err := s.Complete("daily", monday); err != domain.ErrUnknownCadence {
		t.Errorf("complete = %v, want ErrUnknownCadence", err)
	}
	if err := s.Dismiss("daily", monday); err != domain.ErrUnknownCadence {
		t.Errorf("dismiss = %v, want ErrUnknownCadence", err)
	}
}

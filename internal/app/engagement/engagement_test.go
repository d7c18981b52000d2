package engagement_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pulse-app/pulse/internal/app/engagement"
	"github.com/pulse-app/pulse/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestClassify_NeverActive(t *testing.T) {
	snap := engagement.Classify(nil, day(2024, 3, 12))

	if snap.Level != domain.LevelReset {
		t.Errorf("level = %s, want RESET", snap.Level)
	}
	if snap.GapDays != domain.GapNever {
		t.Errorf("gap = %d, want %d", snap.GapDays, domain.GapNever)
	}
	if snap.CurrentStreak != 0 || snap.LastActiveDay != "" {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestClassify_ThreeDayStreak(t *testing.T) {
	// Sessions completed on 03-10, 03-11, 03-12; today is 03-12.
	days := []string{"2024-03-12", "2024-03-11", "2024-03-10"}
	snap := engagement.Classify(days, day(2024, 3, 12))

	if snap.CurrentStreak != 3 {
		t.Errorf("streak = %d, want 3", snap.CurrentStreak)
	}
	if snap.GapDays != 0 {
		t.Errorf("gap = %d, want 0", snap.GapDays)
	}
	if snap.Level != domain.LevelActive {
		t.Errorf("level = %s, want ACTIVE", snap.Level)
	}
	if snap.LastActiveDay != "2024-03-12" {
		t.Errorf("last active = %s", snap.LastActiveDay)
	}
}

func TestClassify_DormantBreaksStreak(t *testing.T) {
	// Last completed session on 03-08, today 03-12: gap 4, DORMANT, streak 0
	// even though the historical days were consecutive.
	days := []string{"2024-03-08", "2024-03-07", "2024-03-06"}
	snap := engagement.Classify(days, day(2024, 3, 12))

	if snap.GapDays != 4 {
		t.Errorf("gap = %d, want 4", snap.GapDays)
	}
	if snap.Level != domain.LevelDormant {
		t.Errorf("level = %s, want DORMANT", snap.Level)
	}
	if snap.CurrentStreak != 0 {
		t.Errorf("streak = %d, want 0 (broken)", snap.CurrentStreak)
	}
}

func TestClassify_StreakAliveFromYesterday(t *testing.T) {
	// No session yet today; streak ends at yesterday and still counts.
	days := []string{"2024-03-11", "2024-03-10", "2024-03-09"}
	snap := engagement.Classify(days, day(2024, 3, 12))

	if snap.CurrentStreak != 3 {
		t.Errorf("streak = %d, want 3", snap.CurrentStreak)
	}
	if snap.GapDays != 1 || snap.Level != domain.LevelActive {
		t.Errorf("gap/level = %d/%s, want 1/ACTIVE", snap.GapDays, snap.Level)
	}
}

func TestClassify_StreakStopsAtGap(t *testing.T) {
	// 03-12 and 03-11 are consecutive; 03-09 is behind a hole.
	days := []string{"2024-03-12", "2024-03-11", "2024-03-09", "2024-03-08"}
	snap := engagement.Classify(days, day(2024, 3, 12))

	if snap.CurrentStreak != 2 {
		t.Errorf("streak = %d, want 2", snap.CurrentStreak)
	}
}

func TestClassify_LevelThresholds(t *testing.T) {
	today := day(2024, 3, 12)
	cases := []struct {
		lastActive string
		wantGap    int
		wantLevel  domain.EngagementLevel
	}{
		{"2024-03-12", 0, domain.LevelActive},
		{"2024-03-11", 1, domain.LevelActive},
		{"2024-03-10", 2, domain.LevelSlipping},
		{"2024-03-09", 3, domain.LevelSlipping},
		{"2024-03-08", 4, domain.LevelDormant},
		{"2024-03-07", 5, domain.LevelDormant},
		{"2024-03-06", 6, domain.LevelReset},
		{"2024-01-01", 71, domain.LevelReset},
	}
	for _, tc := range cases {
		snap := engagement.Classify([]string{tc.lastActive}, today)
		if snap.GapDays != tc.wantGap {
			t.Errorf("last %s: gap = %d, want %d", tc.lastActive, snap.GapDays, tc.wantGap)
		}
		if snap.Level != tc.wantLevel {
			t.Errorf("last %s: level = %s, want %s", tc.lastActive, snap.Level, tc.wantLevel)
		}
	}
}

func TestClassify_UnsortedInput(t *testing.T) {
	// Order must not matter — the classifier sorts internally.
	days := []string{"2024-03-10", "2024-03-12", "2024-03-11"}
	snap := engagement.Classify(days, day(2024, 3, 12))
	if snap.CurrentStreak != 3 {
		t.Errorf("streak = %d, want 3", snap.CurrentStreak)
	}
}

func TestClassify_StreakAcrossMonthBoundary(t *testing.T) {
	days := []string{"2024-03-01", "2024-02-29", "2024-02-28"}
	snap := engagement.Classify(days, day(2024, 3, 1))
	if snap.CurrentStreak != 3 {
		t.Errorf("streak across Feb/Mar = %d, want 3", snap.CurrentStreak)
	}
}

type stubStore struct {
	days []string
	err  error
}

func (s stubStore) DistinctActiveDays() ([]string, error) { return s.days, s.err }

func TestService_Snapshot(t *testing.T) {
	svc := engagement.NewService(stubStore{days: []string{"2024-03-12", "2024-03-11"}})

	snap, err := svc.Snapshot(day(2024, 3, 12))
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.CurrentStreak != 2 || snap.Level != domain.LevelActive {
		t.Errorf("snapshot = %+v", snap)
	}

	svc = engagement.NewService(stubStore{err: errors.New("store down")})
	if _, err := svc.Snapshot(day(2024, 3, 12)); err == nil {
		t.Error("store failure should surface")
	}
}

func TestPromptFor(t *testing.T) {
	for _, level := range []domain.EngagementLevel{
		domain.LevelActive, domain.LevelSlipping, domain.LevelDormant, domain.LevelReset,
	} {
		p := engagement.PromptFor(level)
		if p.Title == "" || p.Message == "" {
			t.Errorf("level %s has empty prompt copy", level)
		}
	}
}

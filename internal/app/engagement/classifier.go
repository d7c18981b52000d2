// Package engagement derives the user's streak and engagement level from
// the days on which sessions were completed. Everything here is recomputed
// on every read — no engagement state is ever persisted.
package engagement

import (
	"time"

	"github.com/pulse-app/pulse/internal/domain"
)

// Classify computes the engagement snapshot from the distinct active days
// (days with ≥1 completed session, any order) and today's date.
//
// A streak only counts while it is alive: if the last active day is neither
// today nor yesterday, the streak is 0 even when the historical days are
// consecutive. A user with no completed sessions gets the GapNever sentinel
// and lands on RESET.
func Classify(activeDays []string, today time.Time) domain.EngagementSnapshot {
	todayKey := domain.DayOf(today)

	last := lastActiveDay(activeDays)
	if last == "" {
		return domain.EngagementSnapshot{
			GapDays: domain.GapNever,
			Level:   domain.LevelReset,
		}
	}

	gap, err := domain.DaysBetween(last, todayKey)
	if err != nil || gap < 0 {
		// Malformed day keys or a clock behind the store: treat as never.
		return domain.EngagementSnapshot{
			GapDays: domain.GapNever,
			Level:   domain.LevelReset,
		}
	}

	return domain.EngagementSnapshot{
		LastActiveDay: last,
		GapDays:       gap,
		CurrentStreak: streak(activeDays, todayKey),
		Level:         domain.LevelForGap(gap),
	}
}

// lastActiveDay returns the lexicographically greatest day key ("" if none).
// "YYYY-MM-DD" keys sort chronologically.
func lastActiveDay(days []string) string {
	last := ""
	for _, d := range days {
		if d > last {
			last = d
		}
	}
	return last
}

// streak counts consecutive active days ending at the last active day,
// which must be today or yesterday for the streak to be alive.
func streak(activeDays []string, todayKey string) int {
	if len(activeDays) == 0 {
		return 0
	}

	active := make(map[string]bool, len(activeDays))
	for _, d := range activeDays {
		active[d] = true
	}

	expected := todayKey
	if !active[expected] {
		expected = domain.PrevDay(todayKey)
		if !active[expected] {
			return 0 // Broken — last activity is older than yesterday
		}
	}

	count := 0
	for active[expected] {
		count++
		expected = domain.PrevDay(expected)
	}
	return count
}

// Package report groups completed sessions into per-focus-area totals for a
// day, week, or month. Plain grouping and summation over queried rows —
// derived on demand, never stored.
package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/pulse-app/pulse/internal/domain"
)

// Bucket is one focus area's share of a period. The empty FocusAreaID
// bucket collects untracked "quick" sessions.
type Bucket struct {
	FocusAreaID   string `json:"focus_area_id,omitempty"`
	FocusAreaName string `json:"focus_area_name,omitempty"`
	Minutes       int    `json:"minutes"`
	Sessions      int    `json:"sessions"`
}

// Totals is a period's aggregation.
type Totals struct {
	From         string   `json:"from"` // day keys, inclusive
	To           string   `json:"to"`
	TotalMinutes int      `json:"total_minutes"`
	SessionCount int      `json:"session_count"`
	Buckets      []Bucket `json:"buckets"`
}

// MonthlySummary extends a month's totals with an active-day count and a
// comparison against the month before.
type MonthlySummary struct {
	Totals
	Month         string `json:"month"` // "YYYY-MM"
	ActiveDays    int    `json:"active_days"`
	PrevMinutes   int    `json:"prev_minutes"`
	PercentChange *int   `json:"percent_change"` // nil when the prior month is empty
}

// Aggregate groups completed sessions by focus area. Open sessions are
// skipped — they have no duration yet.
func Aggregate(sessions []domain.Session) []Bucket {
	byFocus := map[string]*Bucket{}
	for _, s := range sessions {
		if s.Open() {
			continue
		}
		b, ok := byFocus[s.FocusAreaID]
		if !ok {
			b = &Bucket{FocusAreaID: s.FocusAreaID}
			byFocus[s.FocusAreaID] = b
		}
		b.Minutes += s.DurationMin
		b.Sessions++
	}

	buckets := make([]Bucket, 0, len(byFocus))
	for _, b := range byFocus {
		buckets = append(buckets, *b)
	}
	// Largest first; quick-session bucket ties break after named ones.
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Minutes != buckets[j].Minutes {
			return buckets[i].Minutes > buckets[j].Minutes
		}
		return buckets[i].FocusAreaID > buckets[j].FocusAreaID
	})
	return buckets
}

// ActiveDayCount counts distinct days with at least one completed session.
func ActiveDayCount(sessions []domain.Session) int {
	days := map[string]bool{}
	for _, s := range sessions {
		if !s.Open() {
			days[s.Day] = true
		}
	}
	return len(days)
}

// PercentChange returns round((cur-prev)/prev*100), or nil when prev is 0.
func PercentChange(cur, prev int) *int {
	if prev == 0 {
		return nil
	}
	pct := int(math.Round(float64(cur-prev) / float64(prev) * 100))
	return &pct
}

// ─── Period ranges ──────────────────────────────────────────────────────────

// DayRange returns the single-day range for t.
func DayRange(t time.Time) (from, to string) {
	d := domain.DayOf(t)
	return d, d
}

// WeekRange returns Monday through Sunday of t's ISO week.
func WeekRange(t time.Time) (from, to string) {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	monday := t.AddDate(0, 0, -offset)
	return domain.DayOf(monday), domain.DayOf(monday.AddDate(0, 0, 6))
}

// MonthRange returns the first through last day of t's month.
func MonthRange(t time.Time) (from, to string) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return domain.DayOf(first), domain.DayOf(first.AddDate(0, 1, -1))
}

// ─── Service ────────────────────────────────────────────────────────────────

// SessionStore is the query surface the reporter needs. Satisfied by
// *sqlite.DB.
type SessionStore interface {
	ListSessionsRange(from, to string) ([]domain.Session, error)
	SumDurationRange(from, to string) (int, error)
	ListFocusAreas() ([]domain.FocusArea, error)
}

// Service computes aggregations from the session store.
type Service struct {
	store SessionStore
}

// NewService creates a report service.
func NewService(store SessionStore) *Service {
	return &Service{store: store}
}

// Range aggregates the completed sessions with day in [from, to].
func (s *Service) Range(from, to string) (Totals, error) {
	sessions, err := s.store.ListSessionsRange(from, to)
	if err != nil {
		return Totals{}, fmt.Errorf("list sessions: %w", err)
	}

	totals := Totals{From: from, To: to, Buckets: Aggregate(sessions)}
	for _, b := range totals.Buckets {
		totals.TotalMinutes += b.Minutes
		totals.SessionCount += b.Sessions
	}
	if err := s.nameBuckets(totals.Buckets); err != nil {
		return Totals{}, err
	}
	return totals, nil
}

// Day aggregates one calendar day.
func (s *Service) Day(t time.Time) (Totals, error) {
	from, to := DayRange(t)
	return s.Range(from, to)
}

// Week aggregates t's Monday-to-Sunday week.
func (s *Service) Week(t time.Time) (Totals, error) {
	from, to := WeekRange(t)
	return s.Range(from, to)
}

// Month aggregates t's month and compares it against the previous one.
func (s *Service) Month(t time.Time) (MonthlySummary, error) {
	from, to := MonthRange(t)
	sessions, err := s.store.ListSessionsRange(from, to)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("list sessions: %w", err)
	}

	summary := MonthlySummary{
		Totals:     Totals{From: from, To: to, Buckets: Aggregate(sessions)},
		Month:      domain.MonthKey(t),
		ActiveDays: ActiveDayCount(sessions),
	}
	for _, b := range summary.Buckets {
		summary.TotalMinutes += b.Minutes
		summary.SessionCount += b.Sessions
	}

	prevFrom, prevTo := MonthRange(time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 0, -1))
	prev, err := s.store.SumDurationRange(prevFrom, prevTo)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("sum previous month: %w", err)
	}
	summary.PrevMinutes = prev
	summary.PercentChange = PercentChange(summary.TotalMinutes, prev)

	if err := s.nameBuckets(summary.Buckets); err != nil {
		return MonthlySummary{}, err
	}
	return summary, nil
}

// nameBuckets fills in focus area display names.
func (s *Service) nameBuckets(buckets []Bucket) error {
	if len(buckets) == 0 {
		return nil
	}
	areas, err := s.store.ListFocusAreas()
	if err != nil {
		return fmt.Errorf("list focus areas: %w", err)
	}
	names := make(map[string]string, len(areas))
	for _, a := range areas {
		names[a.ID] = a.Name
	}
	for i := range buckets {
		if buckets[i].FocusAreaID == "" {
			buckets[i].FocusAreaName = "Quick sessions"
		} else {
			buckets[i].FocusAreaName = names[buckets[i].FocusAreaID]
		}
	}
	return nil
}

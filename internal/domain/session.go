// Package domain holds the Pulse entity types and business rules.
// Entities are rows in the SQLite store; derived state (engagement
// snapshots, report buckets) is recomputed on every read, never persisted.
package domain

import "time"

// Session is one contiguous time-tracking interval, optionally tied to a
// focus area. A session with no EndTime is "open"; at most one open session
// exists at a time (enforced by the store and checked at start time).
type Session struct {
	ID            string    `json:"id"`
	FocusAreaID   string    `json:"focus_area_id,omitempty"` // empty = quick session
	Day           string    `json:"day"`                     // "YYYY-MM-DD", derived from StartTime
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time,omitzero"`
	DurationMin   int       `json:"duration_minutes,omitempty"`
	Note          string    `json:"note,omitempty"`
	QualityRating int       `json:"quality_rating,omitempty"` // 1..5, 0 = unset
}

// Open reports whether the session is still running.
func (s Session) Open() bool {
	return s.EndTime.IsZero()
}

// DurationMinutes rounds an interval to whole minutes.
// Invariant: a closed session's DurationMin is always this of its interval.
func DurationMinutes(start, end time.Time) int {
	return int((end.Sub(start) + 30*time.Second) / time.Minute)
}

// ValidRating reports whether r is an acceptable quality rating.
// Zero means "not rated" and is always valid.
func ValidRating(r int) bool {
	return r >= 0 && r <= 5
}

package domain

import "time"

// DailyLog holds one calendar day's journaling: a morning intention and
// commitment, and an evening reflection with a feeling rating.
// One row per date, upserted — created on first write, updated thereafter.
type DailyLog struct {
	Date          string    `json:"date"` // "YYYY-MM-DD", primary key
	Intention     string    `json:"intention,omitempty"`
	Commitment    string    `json:"commitment,omitempty"`
	Reflection    string    `json:"reflection,omitempty"`
	FeelingRating int       `json:"feeling_rating,omitempty"` // 1..5, 0 = unset
	UpdatedAt     time.Time `json:"updated_at"`
}

// WeeklyIntention is one goal set during a weekly check-in.
// Open intentions from the previous week are surfaced for context when the
// next check-in prompt renders.
type WeeklyIntention struct {
	ID        string    `json:"id"`
	Week      string    `json:"week"` // "YYYY-Www" ISO week
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

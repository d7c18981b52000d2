package domain

// EngagementLevel classifies how recently the user tracked time.
type EngagementLevel string

const (
	LevelActive   EngagementLevel = "ACTIVE"   // gap ≤ 1 day
	LevelSlipping EngagementLevel = "SLIPPING" // gap 2–3 days
	LevelDormant  EngagementLevel = "DORMANT"  // gap 4–5 days
	LevelReset    EngagementLevel = "RESET"    // gap ≥ 6 days, or never active
)

// GapNever is the gap-days sentinel for a user with no completed sessions.
const GapNever = 999

// EngagementSnapshot is the derived engagement state. Recomputed on every
// read from the distinct active days in the session store; never persisted.
type EngagementSnapshot struct {
	LastActiveDay string          `json:"last_active_day,omitempty"` // "" = never
	GapDays       int             `json:"gap_days"`
	CurrentStreak int             `json:"current_streak"`
	Level         EngagementLevel `json:"level"`
}

// LevelForGap maps a gap in days to an engagement level.
func LevelForGap(gapDays int) EngagementLevel {
	switch {
	case gapDays <= 1:
		return LevelActive
	case gapDays <= 3:
		return LevelSlipping
	case gapDays <= 5:
		return LevelDormant
	default:
		return LevelReset
	}
}

// ShouldShowPrompt reports whether a re-engagement prompt renders for the
// level. Active users never see one.
func ShouldShowPrompt(level EngagementLevel) bool {
	return level != LevelActive
}

package domain

import "time"

// FocusAreaType categorizes a focus area.
// AREA rows are grouping containers only; every other type is trackable.
type FocusAreaType string

const (
	TypeArea        FocusAreaType = "AREA"
	TypeSkill       FocusAreaType = "SKILL"
	TypeHabit       FocusAreaType = "HABIT"
	TypeProject     FocusAreaType = "PROJECT"
	TypeMaintenance FocusAreaType = "MAINTENANCE"
)

// ValidFocusAreaType reports whether t is a known type.
func ValidFocusAreaType(t FocusAreaType) bool {
	switch t {
	case TypeArea, TypeSkill, TypeHabit, TypeProject, TypeMaintenance:
		return true
	}
	return false
}

// FocusArea is a trackable goal/habit/project, optionally grouped under an
// AREA-typed parent. Only AREA rows may be parents, and AREA rows themselves
// cannot be timed.
type FocusArea struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Type      FocusAreaType `json:"type"`
	ParentID  string        `json:"parent_id,omitempty"`
	Archived  bool          `json:"archived"`
	CreatedAt time.Time     `json:"created_at"`
}

// Trackable reports whether sessions may reference this focus area.
func (f FocusArea) Trackable() bool {
	return f.Type != TypeArea
}

package domain

import "errors"

// Domain errors are pure — no infrastructure dependency.

var (
	// Session errors
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionAlreadyOpen = errors.New("a session is already running — stop it first")
	ErrNoOpenSession      = errors.New("no session is currently running")
	ErrSessionClosed      = errors.New("session is already stopped")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")

	// Focus-area errors
	ErrFocusAreaNotFound = errors.New("focus area not found")
	ErrInvalidParent     = errors.New("parent must be an AREA-typed focus area")
	ErrNotTrackable      = errors.New("AREA-typed focus areas cannot be timed")
	ErrInvalidAreaType   = errors.New("unknown focus area type")

	// Check-in errors
	ErrUnknownCadence = errors.New("cadence must be weekly or monthly")

	// Daily-log errors
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
)

// Package tracker owns the session lifecycle and the focus-area hierarchy
// rules: one open session at a time, AREA rows group but are never timed,
// and only AREA rows may be parents.
package tracker

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pulse-app/pulse/internal/domain"
	"github.com/pulse-app/pulse/internal/infra/metrics"
	"github.com/pulse-app/pulse/internal/infra/sqlite"
)

// Service manages sessions and focus areas.
type Service struct {
	db  *sqlite.DB
	now func() time.Time
}

// NewService creates a tracker service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// NewServiceAt creates a tracker with a fixed clock, for tests.
func NewServiceAt(db *sqlite.DB, now func() time.Time) *Service {
	return &Service{db: db, now: now}
}

// ─── Sessions ───────────────────────────────────────────────────────────────

// Start opens a new session, optionally against a focus area.
// Fails fast when a session is already running; the store's unique index
// backs the same invariant up against racing writers.
func (s *Service) Start(focusAreaID string) (domain.Session, error) {
	if focusAreaID != "" {
		area, err := s.db.GetFocusArea(focusAreaID)
		if err != nil {
			return domain.Session{}, fmt.Errorf("get focus area: %w", err)
		}
		if area == nil {
			return domain.Session{}, domain.ErrFocusAreaNotFound
		}
		if !area.Trackable() {
			return domain.Session{}, domain.ErrNotTrackable
		}
	}

	open, err := s.db.OpenSession()
	if err != nil {
		return domain.Session{}, fmt.Errorf("check open session: %w", err)
	}
	if open != nil {
		return domain.Session{}, domain.ErrSessionAlreadyOpen
	}

	now := s.now()
	sess := domain.Session{
		ID:          uuid.NewString(),
		FocusAreaID: focusAreaID,
		Day:         domain.DayOf(now),
		StartTime:   now,
	}
	if err := s.db.InsertSession(sess); err != nil {
		return domain.Session{}, fmt.Errorf("insert session: %w", err)
	}
	metrics.SessionsStarted.Inc()
	return sess, nil
}

// Stop closes the running session with an optional note and quality rating
// (0 = unrated). Duration is rounded to whole minutes.
func (s *Service) Stop(note string, rating int) (domain.Session, error) {
	if !domain.ValidRating(rating) {
		return domain.Session{}, domain.ErrInvalidRating
	}

	open, err := s.db.OpenSession()
	if err != nil {
		return domain.Session{}, fmt.Errorf("check open session: %w", err)
	}
	if open == nil {
		return domain.Session{}, domain.ErrNoOpenSession
	}

	end := s.now()
	minutes := domain.DurationMinutes(open.StartTime, end)
	if err := s.db.CloseSession(open.ID, end, minutes, note, rating); err != nil {
		return domain.Session{}, fmt.Errorf("close session: %w", err)
	}

	open.EndTime = end
	open.DurationMin = minutes
	open.Note = note
	open.QualityRating = rating
	metrics.SessionsCompleted.Inc()
	metrics.SessionMinutes.Add(float64(minutes))
	return *open, nil
}

// Discard deletes the running session without recording it.
func (s *Service) Discard() error {
	open, err := s.db.OpenSession()
	if err != nil {
		return fmt.Errorf("check open session: %w", err)
	}
	if open == nil {
		return domain.ErrNoOpenSession
	}
	return s.db.DeleteSession(open.ID)
}

// Active returns the running session, or nil if none.
func (s *Service) Active() (*domain.Session, error) {
	return s.db.OpenSession()
}

// Edit updates a closed session's note and rating.
func (s *Service) Edit(id, note string, rating int) error {
	if !domain.ValidRating(rating) {
		return domain.ErrInvalidRating
	}
	return s.db.UpdateSessionNote(id, note, rating)
}

// Delete removes a session on user request.
func (s *Service) Delete(id string) error {
	return s.db.DeleteSession(id)
}

// ─── Focus areas ────────────────────────────────────────────────────────────

// CreateFocusArea validates the type and parent rules, then stores the row.
func (s *Service) CreateFocusArea(name string, typ domain.FocusAreaType, parentID string) (domain.FocusArea, error) {
	if !domain.ValidFocusAreaType(typ) {
		return domain.FocusArea{}, domain.ErrInvalidAreaType
	}
	if parentID != "" {
		parent, err := s.db.GetFocusArea(parentID)
		if err != nil {
			return domain.FocusArea{}, fmt.Errorf("get parent: %w", err)
		}
		if parent == nil || parent.Type != domain.TypeArea {
			return domain.FocusArea{}, domain.ErrInvalidParent
		}
	}

	area := domain.FocusArea{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      typ,
		ParentID:  parentID,
		CreatedAt: s.now(),
	}
	if err := s.db.InsertFocusArea(area); err != nil {
		return domain.FocusArea{}, fmt.Errorf("insert focus area: %w", err)
	}
	return area, nil
}

// FocusAreas lists focus areas, optionally including archived ones.
func (s *Service) FocusAreas(includeArchived bool) ([]domain.FocusArea, error) {
	areas, err := s.db.ListFocusAreas()
	if err != nil {
		return nil, fmt.Errorf("list focus areas: %w", err)
	}
	if includeArchived {
		return areas, nil
	}
	active := areas[:0]
	for _, a := range areas {
		if !a.Archived {
			active = append(active, a)
		}
	}
	return active, nil
}

// Archive hides a focus area from pickers without touching its history.
func (s *Service) Archive(id string) error {
	return s.db.SetFocusAreaArchived(id, true)
}

package engagement

import (
	"fmt"
	"time"

	"github.com/pulse-app/pulse/internal/domain"
	"github.com/pulse-app/pulse/internal/infra/metrics"
)

// ActiveDayStore supplies the distinct completed-session days, newest first.
// Satisfied by *sqlite.DB.
type ActiveDayStore interface {
	DistinctActiveDays() ([]string, error)
}

// Service computes engagement snapshots from the session store.
type Service struct {
	store ActiveDayStore
}

// NewService creates an engagement service.
func NewService(store ActiveDayStore) *Service {
	return &Service{store: store}
}

// Snapshot classifies the user's engagement as of today.
func (s *Service) Snapshot(today time.Time) (domain.EngagementSnapshot, error) {
	days, err := s.store.DistinctActiveDays()
	if err != nil {
		return domain.EngagementSnapshot{}, fmt.Errorf("list active days: %w", err)
	}

	snap := Classify(days, today)
	metrics.CurrentStreak.Set(float64(snap.CurrentStreak))
	metrics.GapDays.Set(float64(snap.GapDays))
	return snap, nil
}

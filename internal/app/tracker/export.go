package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pulse-app/pulse/internal/domain"
)

// ExportVersion marks the dump layout. The export is an ad-hoc backup for
// the share sheet, not a versioned round-trip format.
const ExportVersion = "1"

// Export is the on-demand JSON dump of all user data.
type Export struct {
	ExportedAt time.Time          `json:"exported_at"`
	Version    string             `json:"version"`
	FocusAreas []domain.FocusArea `json:"focus_areas"`
	Sessions   []domain.Session   `json:"sessions"`
}

// BuildExport assembles the full dump.
func (s *Service) BuildExport() (Export, error) {
	areas, err := s.db.ListFocusAreas()
	if err != nil {
		return Export{}, fmt.Errorf("list focus areas: %w", err)
	}
	sessions, err := s.db.ListAllSessions()
	if err != nil {
		return Export{}, fmt.Errorf("list sessions: %w", err)
	}
	return Export{
		ExportedAt: s.now(),
		Version:    ExportVersion,
		FocusAreas: areas,
		Sessions:   sessions,
	}, nil
}

// WriteExport dumps all data as JSON to path. Writes to a temp file first
// and renames, so a failed export never truncates an existing file.
func (s *Service) WriteExport(path string) error {
	dump, err := s.BuildExport()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalize export: %w", err)
	}
	return nil
}

package sqlite

import (
	"database/sql"
	"time"

	"github.com/pulse-app/pulse/internal/domain"
)

const focusCols = `id, name, type, parent_id, archived, created_at`

// InsertFocusArea stores a new focus area. Parent validation (AREA-typed
// parents only) happens in the tracker service before the write.
func (d *DB) InsertFocusArea(f domain.FocusArea) error {
	_, err := d.db.Exec(
		`INSERT INTO focus_areas (id, name, type, parent_id, archived, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		f.ID, f.Name, string(f.Type), nullableStr(f.ParentID), f.Archived, f.CreatedAt.Unix(),
	)
	return err
}

// GetFocusArea retrieves a focus area by ID (nil if not found).
func (d *DB) GetFocusArea(id string) (*domain.FocusArea, error) {
	row := d.db.QueryRow(`SELECT `+focusCols+` FROM focus_areas WHERE id = ?`, id)
	return scanFocusArea(row)
}

// ListFocusAreas returns all focus areas ordered by creation time.
// Archived rows are included — callers filter for display.
func (d *DB) ListFocusAreas() ([]domain.FocusArea, error) {
	rows, err := d.db.Query(`SELECT ` + focusCols + ` FROM focus_areas ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var areas []domain.FocusArea
	for rows.Next() {
		f, err := scanFocusArea(rows)
		if err != nil {
			return nil, err
		}
		areas = append(areas, *f)
	}
	return areas, rows.Err()
}

// SetFocusAreaArchived flips the archived flag.
func (d *DB) SetFocusAreaArchived(id string, archived bool) error {
	result, err := d.db.Exec(`UPDATE focus_areas SET archived = ? WHERE id = ?`, archived, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrFocusAreaNotFound
	}
	return nil
}

func scanFocusArea(s scanner) (*domain.FocusArea, error) {
	var f domain.FocusArea
	var typ string
	var parent sql.NullString
	var created int64

	err := s.Scan(&f.ID, &f.Name, &typ, &parent, &f.Archived, &created)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	f.Type = domain.FocusAreaType(typ)
	f.ParentID = parent.String
	f.CreatedAt = time.Unix(created, 0)
	return &f, nil
}

package sqlite

import (
	"database/sql"
	"time"

	"github.com/pulse-app/pulse/internal/domain"
)

// sessionCols is the canonical column list for session scans.
const sessionCols = `id, focus_area_id, day, start_time, end_time, duration_minutes, note, quality_rating`

// InsertSession stores a new session row. An open row (NULL end_time)
// violates the single-open-session unique index if one already exists;
// callers translate that into domain.ErrSessionAlreadyOpen.
func (d *DB) InsertSession(s domain.Session) error {
	_, err := d.db.Exec(
		`INSERT INTO sessions (id, focus_area_id, day, start_time, end_time, duration_minutes, note, quality_rating)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, nullableStr(s.FocusAreaID), s.Day, s.StartTime.Unix(),
		nullableUnix(s.EndTime), nullableInt(s.DurationMin), s.Note, nullableInt(s.QualityRating),
	)
	return err
}

// CloseSession sets end_time and duration_minutes on an open session.
func (d *DB) CloseSession(id string, end time.Time, durationMin int, note string, rating int) error {
	result, err := d.db.Exec(
		`UPDATE sessions SET end_time = ?, duration_minutes = ?, note = ?, quality_rating = ?
		 WHERE id = ? AND end_time IS NULL`,
		end.Unix(), durationMin, note, nullableInt(rating), id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// OpenSession returns the currently running session, or nil if none.
func (d *DB) OpenSession() (*domain.Session, error) {
	row := d.db.QueryRow(
		`SELECT ` + sessionCols + ` FROM sessions WHERE end_time IS NULL LIMIT 1`,
	)
	return scanSession(row)
}

// GetSession retrieves a single session by ID.
func (d *DB) GetSession(id string) (*domain.Session, error) {
	row := d.db.QueryRow(`SELECT `+sessionCols+` FROM sessions WHERE id = ?`, id)
	return scanSession(row)
}

// ListSessionsRange returns completed sessions with day in [from, to],
// ordered by start time.
func (d *DB) ListSessionsRange(from, to string) ([]domain.Session, error) {
	rows, err := d.db.Query(
		`SELECT `+sessionCols+` FROM sessions
		 WHERE end_time IS NOT NULL AND day >= ? AND day <= ?
		 ORDER BY start_time`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

// ListAllSessions returns every session (open and closed) for export,
// ordered by start time.
func (d *DB) ListAllSessions() ([]domain.Session, error) {
	rows, err := d.db.Query(`SELECT ` + sessionCols + ` FROM sessions ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

// UpdateSessionNote edits the note and rating of a closed session.
func (d *DB) UpdateSessionNote(id, note string, rating int) error {
	result, err := d.db.Exec(
		`UPDATE sessions SET note = ?, quality_rating = ? WHERE id = ?`,
		note, nullableInt(rating), id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// DeleteSession removes a session row.
func (d *DB) DeleteSession(id string) error {
	result, err := d.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// DistinctActiveDays returns the distinct day keys with at least one
// completed session, newest first. Feeds the engagement classifier.
func (d *DB) DistinctActiveDays() ([]string, error) {
	rows, err := d.db.Query(
		`SELECT DISTINCT day FROM sessions WHERE end_time IS NOT NULL ORDER BY day DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// SumDurationRange returns total completed minutes with day in [from, to].
func (d *DB) SumDurationRange(from, to string) (int, error) {
	var total int
	err := d.db.QueryRow(
		`SELECT COALESCE(SUM(duration_minutes), 0) FROM sessions
		 WHERE end_time IS NOT NULL AND day >= ? AND day <= ?`,
		from, to,
	).Scan(&total)
	return total, err
}

func collectSessions(rows *sql.Rows) ([]domain.Session, error) {
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

func scanSession(s scanner) (*domain.Session, error) {
	var sess domain.Session
	var focusID sql.NullString
	var start int64
	var end, duration, rating sql.NullInt64

	err := s.Scan(&sess.ID, &focusID, &sess.Day, &start, &end, &duration, &sess.Note, &rating)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	sess.FocusAreaID = focusID.String
	sess.StartTime = time.Unix(start, 0)
	if end.Valid {
		sess.EndTime = time.Unix(end.Int64, 0)
	}
	sess.DurationMin = int(duration.Int64)
	sess.QualityRating = int(rating.Int64)
	return &sess, nil
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func nullableInt(n int) sql.NullInt64 {
	if n == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(n), Valid: true}
}

func nullableStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

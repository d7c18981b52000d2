package sqlite

import (
	"database/sql"
	"time"

	"github.com/pulse-app/pulse/internal/domain"
)

// UpsertDailyLogMorning writes the morning intention/commitment for a date,
// creating the row on first write and preserving evening fields.
func (d *DB) UpsertDailyLogMorning(date, intention, commitment string) error {
	_, err := d.db.Exec(
		`INSERT INTO daily_logs (date, intention, commitment, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
			intention=excluded.intention,
			commitment=excluded.commitment,
			updated_at=excluded.updated_at`,
		date, intention, commitment, time.Now().Unix(),
	)
	return err
}

// UpsertDailyLogEvening writes the evening reflection/feeling for a date,
// preserving morning fields.
func (d *DB) UpsertDailyLogEvening(date, reflection string, feelingRating int) error {
	_, err := d.db.Exec(
		`INSERT INTO daily_logs (date, reflection, feeling_rating, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
			reflection=excluded.reflection,
			feeling_rating=excluded.feeling_rating,
			updated_at=excluded.updated_at`,
		date, reflection, nullableInt(feelingRating), time.Now().Unix(),
	)
	return err
}

// GetDailyLog retrieves the log for a date (nil if none written yet).
func (d *DB) GetDailyLog(date string) (*domain.DailyLog, error) {
	row := d.db.QueryRow(
		`SELECT date, intention, commitment, reflection, feeling_rating, updated_at
		 FROM daily_logs WHERE date = ?`, date,
	)

	var l domain.DailyLog
	var rating sql.NullInt64
	var updated int64
	err := row.Scan(&l.Date, &l.Intention, &l.Commitment, &l.Reflection, &rating, &updated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	l.FeelingRating = int(rating.Int64)
	l.UpdatedAt = time.Unix(updated, 0)
	return &l, nil
}

// ─── Weekly intentions ──────────────────────────────────────────────────────

// InsertIntention stores a weekly check-in intention.
func (d *DB) InsertIntention(i domain.WeeklyIntention) error {
	_, err := d.db.Exec(
		`INSERT INTO weekly_intentions (id, week, text, done, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		i.ID, i.Week, i.Text, i.Done, i.CreatedAt.Unix(),
	)
	return err
}

// ListIntentions returns a week's intentions in creation order.
func (d *DB) ListIntentions(week string) ([]domain.WeeklyIntention, error) {
	rows, err := d.db.Query(
		`SELECT id, week, text, done, created_at FROM weekly_intentions
		 WHERE week = ? ORDER BY created_at`, week,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intentions []domain.WeeklyIntention
	for rows.Next() {
		var i domain.WeeklyIntention
		var created int64
		if err := rows.Scan(&i.ID, &i.Week, &i.Text, &i.Done, &created); err != nil {
			return nil, err
		}
		i.CreatedAt = time.Unix(created, 0)
		intentions = append(intentions, i)
	}
	return intentions, rows.Err()
}

// SetIntentionDone marks an intention complete or open.
func (d *DB) SetIntentionDone(id string, done bool) error {
	result, err := d.db.Exec(`UPDATE weekly_intentions SET done = ? WHERE id = ?`, done, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountOpenIntentions returns how many of a week's intentions are not done.
func (d *DB) CountOpenIntentions(week string) (int, error) {
	var n int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM weekly_intentions WHERE week = ? AND done = 0`, week,
	).Scan(&n)
	return n, err
}

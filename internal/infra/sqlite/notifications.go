package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pulse-app/pulse/internal/domain"
)

// UpsertScheduled stores or replaces a scheduled notification by identifier.
// Replacing in place is what makes policy syncs idempotent.
func (d *DB) UpsertScheduled(n domain.ScheduledNotification) error {
	trigger, err := json.Marshal(n.Trigger)
	if err != nil {
		return fmt.Errorf("encode trigger: %w", err)
	}
	_, err = d.db.Exec(
		`INSERT INTO scheduled_notifications (id, title, body, trigger, next_fire, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			body=excluded.body,
			trigger=excluded.trigger,
			next_fire=excluded.next_fire,
			updated_at=excluded.updated_at`,
		n.ID, n.Title, n.Body, string(trigger), nullableUnix(n.NextFire), time.Now().Unix(),
	)
	return err
}

// GetScheduled retrieves one scheduled notification (nil if absent).
func (d *DB) GetScheduled(id string) (*domain.ScheduledNotification, error) {
	row := d.db.QueryRow(
		`SELECT id, title, body, trigger, next_fire, updated_at
		 FROM scheduled_notifications WHERE id = ?`, id,
	)
	return scanScheduled(row)
}

// ListScheduled returns every scheduled notification.
func (d *DB) ListScheduled() ([]domain.ScheduledNotification, error) {
	rows, err := d.db.Query(
		`SELECT id, title, body, trigger, next_fire, updated_at
		 FROM scheduled_notifications ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scheduled []domain.ScheduledNotification
	for rows.Next() {
		n, err := scanScheduled(rows)
		if err != nil {
			return nil, err
		}
		scheduled = append(scheduled, *n)
	}
	return scheduled, rows.Err()
}

// DeleteScheduled removes one scheduled notification. Removing an absent
// identifier is a no-op — cancels are idempotent.
func (d *DB) DeleteScheduled(id string) error {
	_, err := d.db.Exec(`DELETE FROM scheduled_notifications WHERE id = ?`, id)
	return err
}

// DeleteAllScheduled clears the schedule ledger.
func (d *DB) DeleteAllScheduled() error {
	_, err := d.db.Exec(`DELETE FROM scheduled_notifications`)
	return err
}

func scanScheduled(s scanner) (*domain.ScheduledNotification, error) {
	var n domain.ScheduledNotification
	var trigger string
	var nextFire sql.NullInt64
	var updated int64

	err := s.Scan(&n.ID, &n.Title, &n.Body, &trigger, &nextFire, &updated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(trigger), &n.Trigger); err != nil {
		return nil, fmt.Errorf("decode trigger for %s: %w", n.ID, err)
	}
	if nextFire.Valid {
		n.NextFire = time.Unix(nextFire.Int64, 0)
	}
	n.UpdatedAt = time.Unix(updated, 0)
	return &n, nil
}

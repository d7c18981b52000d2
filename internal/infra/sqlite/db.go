// Package sqlite provides SQLite-based persistent storage for Pulse.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/pulse.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "pulse.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Focus areas: hierarchical, AREA rows are grouping containers
		`CREATE TABLE IF NOT EXISTS focus_areas (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			type       TEXT NOT NULL,
			parent_id  TEXT REFERENCES focus_areas(id),
			archived   BOOLEAN DEFAULT 0,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_focus_parent ON focus_areas(parent_id)`,

		// Time-tracking sessions. day is derived from start_time at insert so
		// calendar grouping never depends on SQL date functions.
		`CREATE TABLE IF NOT EXISTS sessions (
			id               TEXT PRIMARY KEY,
			focus_area_id    TEXT REFERENCES focus_areas(id),
			day              TEXT NOT NULL,
			start_time       INTEGER NOT NULL,
			end_time         INTEGER,
			duration_minutes INTEGER,
			note             TEXT NOT NULL DEFAULT '',
			quality_rating   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_day ON sessions(day)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_focus ON sessions(focus_area_id)`,
		// At most one open session at a time — the store enforces the
		// invariant instead of trusting caller discipline.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_open
			ON sessions(end_time IS NULL) WHERE end_time IS NULL`,

		// One journaling row per calendar date, upserted
		`CREATE TABLE IF NOT EXISTS daily_logs (
			date           TEXT PRIMARY KEY,
			intention      TEXT NOT NULL DEFAULT '',
			commitment     TEXT NOT NULL DEFAULT '',
			reflection     TEXT NOT NULL DEFAULT '',
			feeling_rating INTEGER,
			updated_at     INTEGER NOT NULL
		)`,

		// Weekly check-in intentions
		`CREATE TABLE IF NOT EXISTS weekly_intentions (
			id         TEXT PRIMARY KEY,
			week       TEXT NOT NULL,
			text       TEXT NOT NULL,
			done       BOOLEAN DEFAULT 0,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_intentions_week ON weekly_intentions(week)`,

		// Scheduled local notifications (the store-backed scheduler's ledger)
		`CREATE TABLE IF NOT EXISTS scheduled_notifications (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			trigger    TEXT NOT NULL,
			next_fire  INTEGER,
			updated_at INTEGER NOT NULL
		)`,

		// Key-value preference store (notification prefs, check-in markers)
		`CREATE TABLE IF NOT EXISTS prefs (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Preference KV ──────────────────────────────────────────────────────────

// SetPref stores a key-value pair in the preference store.
func (d *DB) SetPref(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO prefs (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// GetPref retrieves a value from the preference store ("" if unset).
func (d *DB) GetPref(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM prefs WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// DeletePref removes a preference key.
func (d *DB) DeletePref(key string) error {
	_, err := d.db.Exec(`DELETE FROM prefs WHERE key = ?`, key)
	return err
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

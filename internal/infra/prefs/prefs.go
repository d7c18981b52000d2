// Package prefs is the typed layer over the key-value preference store.
// Raw values are strings; everything structured goes through explicit
// records with defaults merged at load time — stored shape is never trusted.
package prefs

import (
	"encoding/json"
	"fmt"

	"github.com/pulse-app/pulse/internal/domain"
)

// KV is the raw string store. Satisfied by *sqlite.DB.
type KV interface {
	GetPref(key string) (string, error)
	SetPref(key, value string) error
	DeletePref(key string) error
}

// Preference keys. Check-in markers are plain period-identifier strings;
// notification preferences are a JSON blob.
const (
	keyNotificationPrefs = "notification_preferences"

	KeyWeeklyDone       = "checkin_weekly_done"
	KeyWeeklyDismissed  = "checkin_weekly_dismissed"
	KeyMonthlyDone      = "checkin_monthly_done"
	KeyMonthlyDismissed = "checkin_monthly_dismissed"
)

// Store reads and writes typed preferences.
type Store struct {
	kv KV
}

// NewStore creates a preference store over the raw KV.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// NotificationPreferences loads the reminder configuration. Missing or
// malformed stored state falls back to defaults; fields absent from the
// stored blob keep their default values.
func (s *Store) NotificationPreferences() (domain.NotificationPreferences, error) {
	p := domain.DefaultPreferences()

	raw, err := s.kv.GetPref(keyNotificationPrefs)
	if err != nil {
		return p, fmt.Errorf("get notification prefs: %w", err)
	}
	if raw == "" {
		return p, nil
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		// Corrupt blob: defaults win over a hard failure.
		return domain.DefaultPreferences(), nil
	}
	if !p.Morning.At.Valid() || !p.Evening.At.Valid() || !p.Weekly.At.Valid() || !p.Monthly.At.Valid() {
		return domain.DefaultPreferences(), nil
	}
	return p, nil
}

// SaveNotificationPreferences persists the reminder configuration.
func (s *Store) SaveNotificationPreferences(p domain.NotificationPreferences) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode notification prefs: %w", err)
	}
	if err := s.kv.SetPref(keyNotificationPrefs, string(raw)); err != nil {
		return fmt.Errorf("save notification prefs: %w", err)
	}
	return nil
}

// Marker returns a check-in period marker ("" if unset).
func (s *Store) Marker(key string) (string, error) {
	return s.kv.GetPref(key)
}

// SetMarker stores a check-in period marker.
func (s *Store) SetMarker(key, period string) error {
	return s.kv.SetPref(key, period)
}

// ClearMarker removes a check-in period marker.
func (s *Store) ClearMarker(key string) error {
	return s.kv.DeletePref(key)
}

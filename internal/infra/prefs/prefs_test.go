package prefs

import (
	"testing"

	"github.com/pulse-app/pulse/internal/domain"
)

// mapKV is an in-memory KV for tests.
type mapKV map[string]string

func (m mapKV) GetPref(key string) (string, error) { return m[key], nil }
func (m mapKV) SetPref(key, value string) error    { m[key] = value; return nil }
func (m mapKV) DeletePref(key string) error        { delete(m, key); return nil }

func TestNotificationPreferences_Defaults(t *testing.T) {
	s := NewStore(mapKV{})

	p, err := s.NotificationPreferences()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := domain.DefaultPreferences()
	if p != want {
		t.Errorf("empty store should yield defaults, got %+v", p)
	}
}

func TestNotificationPreferences_RoundTrip(t *testing.T) {
	s := NewStore(mapKV{})

	p := domain.DefaultPreferences()
	p.Morning.Enabled = true
	p.Morning.At = domain.TimeOfDay{Hour: 7, Minute: 30}
	p.Permission = domain.PermissionGranted
	if err := s.SaveNotificationPreferences(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.NotificationPreferences()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != p {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestNotificationPreferences_UntrustedShape(t *testing.T) {
	kv := mapKV{}
	s := NewStore(kv)

	// Corrupt JSON falls back to defaults rather than erroring.
	kv["notification_preferences"] = "{not json"
	p, err := s.NotificationPreferences()
	if err != nil {
		t.Fatalf("load corrupt: %v", err)
	}
	if p != domain.DefaultPreferences() {
		t.Errorf("corrupt blob should yield defaults, got %+v", p)
	}

	// Partial blob keeps defaults for missing fields.
	kv["notification_preferences"] = `{"morning":{"enabled":true,"at":{"hour":6,"minute":0}}}`
	p, err = s.NotificationPreferences()
	if err != nil {
		t.Fatalf("load partial: %v", err)
	}
	if !p.Morning.Enabled || p.Morning.At.Hour != 6 {
		t.Errorf("stored morning setting lost: %+v", p.Morning)
	}
	if p.Evening.At.Hour != 21 {
		t.Errorf("evening default lost: %+v", p.Evening)
	}
	if p.Permission != domain.PermissionUndetermined {
		t.Errorf("permission default lost: %s", p.Permission)
	}

	// Out-of-range time of day is rejected wholesale.
	kv["notification_preferences"] = `{"morning":{"enabled":true,"at":{"hour":99,"minute":0}}}`
	p, _ = s.NotificationPreferences()
	if p != domain.DefaultPreferences() {
		t.Errorf("invalid time should yield defaults, got %+v", p)
	}
}

func TestMarkers(t *testing.T) {
	s := NewStore(mapKV{})

	if err := s.SetMarker(KeyWeeklyDone, "2024-W11"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, err := s.Marker(KeyWeeklyDone)
	if err != nil || v != "2024-W11" {
		t.Fatalf("marker = %q, %v", v, err)
	}
	if err := s.ClearMarker(KeyWeeklyDone); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if v, _ := s.Marker(KeyWeeklyDone); v != "" {
		t.Errorf("after clear = %q, want empty", v)
	}
}

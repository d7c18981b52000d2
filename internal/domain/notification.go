package domain

import "time"

// ReminderKind identifies one of the fixed local reminders. The kind doubles
// as the stable schedule identifier, so re-scheduling replaces in place.
type ReminderKind string

const (
	ReminderMorning      ReminderKind = "morning_reminder"
	ReminderEvening      ReminderKind = "evening_reminder"
	ReminderWeeklyCheck  ReminderKind = "weekly_checkin"
	ReminderMonthlyCheck ReminderKind = "monthly_checkin"
	ReminderReturn       ReminderKind = "return_prompt" // dynamic, engagement-driven
)

// TimeOfDay is a wall-clock time for a recurring reminder.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Valid reports whether the time of day is within a single day.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
}

// ReminderSetting is one reminder's preference: whether it fires and when.
type ReminderSetting struct {
	Enabled bool      `json:"enabled"`
	At      TimeOfDay `json:"at"`
}

// PermissionStatus is the cached notification permission state.
// Never an error — callers branch on the value.
type PermissionStatus string

const (
	PermissionGranted      PermissionStatus = "granted"
	PermissionDenied       PermissionStatus = "denied"
	PermissionUndetermined PermissionStatus = "undetermined"
)

// NotificationPreferences is the typed record behind the prefs JSON blob.
// Stored shape is never trusted: decode merges onto DefaultPreferences so
// missing or unknown fields always land on explicit defaults.
type NotificationPreferences struct {
	Morning    ReminderSetting  `json:"morning"`
	Evening    ReminderSetting  `json:"evening"`
	Weekly     ReminderSetting  `json:"weekly"`
	Monthly    ReminderSetting  `json:"monthly"`
	Permission PermissionStatus `json:"permission"`
}

// DefaultPreferences returns the out-of-box reminder configuration.
func DefaultPreferences() NotificationPreferences {
	return NotificationPreferences{
		Morning:    ReminderSetting{Enabled: false, At: TimeOfDay{Hour: 8, Minute: 0}},
		Evening:    ReminderSetting{Enabled: false, At: TimeOfDay{Hour: 21, Minute: 0}},
		Weekly:     ReminderSetting{Enabled: false, At: TimeOfDay{Hour: 9, Minute: 0}},
		Monthly:    ReminderSetting{Enabled: false, At: TimeOfDay{Hour: 9, Minute: 0}},
		Permission: PermissionUndetermined,
	}
}

// TriggerKind discriminates notification trigger payloads.
type TriggerKind string

const (
	TriggerDaily   TriggerKind = "daily"    // every day at a time
	TriggerWeekly  TriggerKind = "weekly"   // fixed weekday at a time
	TriggerOneShot TriggerKind = "one_shot" // single instant
)

// Trigger describes when a scheduled notification fires.
// Exactly the fields for its kind are set.
type Trigger struct {
	Kind    TriggerKind  `json:"kind"`
	At      TimeOfDay    `json:"at,omitzero"`      // daily, weekly
	Weekday time.Weekday `json:"weekday,omitzero"` // weekly
	Instant time.Time    `json:"instant,omitzero"` // one_shot
}

// ScheduledNotification is one entry in the scheduler's ledger.
type ScheduledNotification struct {
	ID        string    `json:"id"` // ReminderKind value
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Trigger   Trigger   `json:"trigger"`
	NextFire  time.Time `json:"next_fire,omitzero"`
	UpdatedAt time.Time `json:"updated_at"`
}

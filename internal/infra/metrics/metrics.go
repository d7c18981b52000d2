// Package metrics provides Prometheus metrics for Pulse.
// Counters for session and check-in activity, gauges for derived
// engagement state. Registered once at import via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Sessions ───────────────────────────────────────────────────────────────

// SessionsStarted tracks started tracking sessions.
var SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pulse",
	Name:      "sessions_started_total",
	Help:      "Total tracking sessions started.",
})

// SessionsCompleted tracks completed tracking sessions.
var SessionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pulse",
	Name:      "sessions_completed_total",
	Help:      "Total tracking sessions completed.",
})

// SessionMinutes tracks total completed minutes.
var SessionMinutes = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pulse",
	Name:      "session_minutes_total",
	Help:      "Total minutes of completed tracking time.",
})

// ─── Engagement ─────────────────────────────────────────────────────────────

// CurrentStreak is the live consecutive-day streak.
var CurrentStreak = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "pulse",
	Name:      "current_streak_days",
	Help:      "Consecutive active days ending today or yesterday.",
})

// GapDays is the days since the last completed session.
var GapDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "pulse",
	Name:      "gap_days",
	Help:      "Days since the last completed session (999 = never).",
})

// ─── Check-ins ──────────────────────────────────────────────────────────────

// CheckinsCompleted tracks completed check-ins by cadence.
var CheckinsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pulse",
	Name:      "checkins_completed_total",
	Help:      "Total completed reflection check-ins.",
}, []string{"cadence"})

// CheckinsDismissed tracks dismissed check-in prompts by cadence.
var CheckinsDismissed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pulse",
	Name:      "checkins_dismissed_total",
	Help:      "Total dismissed reflection check-in prompts.",
}, []string{"cadence"})

// ─── Notifications ──────────────────────────────────────────────────────────

// NotificationsScheduled tracks schedule operations by reminder identifier.
var NotificationsScheduled = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pulse",
	Name:      "notifications_scheduled_total",
	Help:      "Total local notification schedule operations.",
}, []string{"id"})

// NotificationsCancelled tracks cancel operations by reminder identifier.
var NotificationsCancelled = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pulse",
	Name:      "notifications_cancelled_total",
	Help:      "Total local notification cancel operations.",
}, []string{"id"})

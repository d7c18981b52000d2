// Package api provides the local HTTP surface a UI shell renders from.
// Derived state is computed per request; writes go through the same
// services the CLI uses.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pulse-app/pulse/internal/daemon"
	"github.com/pulse-app/pulse/internal/domain"
	"github.com/pulse-app/pulse/internal/health"
)

// Server is the Pulse HTTP API server.
type Server struct {
	app            *daemon.App
	checker        *health.Checker
	metricsEnabled bool
	now            func() time.Time
}

// NewServer creates a new API server over the application state.
func NewServer(app *daemon.App) *Server {
	return &Server{
		app:     app,
		checker: health.NewChecker(app.DB, app.Config.Data.Dir),
		now:     time.Now,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/engagement", s.handleEngagement)

		r.Get("/checkin", s.handleCheckInState)
		r.Post("/checkin/{cadence}/complete", s.handleCheckInComplete)
		r.Post("/checkin/{cadence}/dismiss", s.handleCheckInDismiss)
		r.Post("/checkin/intentions", s.handleAddIntention)
		r.Post("/checkin/intentions/{id}/done", s.handleCompleteIntention)

		r.Post("/sessions/start", s.handleSessionStart)
		r.Post("/sessions/stop", s.handleSessionStop)

		r.Get("/focus", s.handleListFocus)
		r.Post("/focus", s.handleCreateFocus)

		r.Get("/report/day", s.handleReportDay)
		r.Get("/report/week", s.handleReportWeek)
		r.Get("/report/month", s.handleReportMonth)

		r.Get("/log/{date}", s.handleGetLog)
		r.Put("/log/{date}", s.handlePutLog)

		r.Get("/notifications", s.handleNotificationPrefs)
		r.Put("/notifications", s.handlePutNotificationPrefs)

		r.Get("/export", s.handleExport)
	})

	// Rendered journaling page for the local web view
	r.Get("/today", s.handleTodayPage)

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	statuses := s.checker.RunAll(r.Context())
	status := http.StatusOK
	overall := "ok"
	if !s.checker.IsHealthy() {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	writeJSON(w, status, map[string]any{
		"status": overall,
		"checks": statuses,
	})
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] encode response: %v", err)
	}
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrFocusAreaNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSessionAlreadyOpen):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNoOpenSession),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidParent),
		errors.Is(err, domain.ErrNotTrackable),
		errors.Is(err, domain.ErrInvalidAreaType),
		errors.Is(err, domain.ErrUnknownCadence),
		errors.Is(err, domain.ErrInvalidDate):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

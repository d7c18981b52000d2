package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pulse-app/pulse/internal/app/engagement"
	"github.com/pulse-app/pulse/internal/domain"
)

// ─── Dashboard & engagement ─────────────────────────────────────────────────

// handleDashboard refreshes and returns the full derived-state snapshot.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := s.app.Refresh(s.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleEngagement(w http.ResponseWriter, r *http.Request) {
	snap, err := s.app.Engagement.Snapshot(s.now())
	if err != nil {
		writeError(w, err)
		return
	}
	resp := struct {
		domain.EngagementSnapshot
		Prompt *engagement.Prompt `json:"prompt,omitempty"`
	}{EngagementSnapshot: snap}
	if domain.ShouldShowPrompt(snap.Level) {
		p := engagement.PromptFor(snap.Level)
		resp.Prompt = &p
	}
	writeJSON(w, http.StatusOK, resp)
}

// ─── Check-ins ──────────────────────────────────────────────────────────────

func (s *Server) handleCheckInState(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	weekly, err := s.app.CheckIn.State(domain.CadenceWeekly, now)
	if err != nil {
		writeError(w, err)
		return
	}
	monthly, err := s.app.CheckIn.State(domain.CadenceMonthly, now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]domain.CheckInState{
		"weekly":  weekly,
		"monthly": monthly,
	})
}

func (s *Server) handleCheckInComplete(w http.ResponseWriter, r *http.Request) {
	cadence := domain.Cadence(chi.URLParam(r, "cadence"))
	now := s.now()
	if err := s.app.CheckIn.Complete(cadence, now); err != nil {
		writeError(w, err)
		return
	}
	// Completing the monthly review consumes its one-shot; re-arm it.
	if cadence == domain.CadenceMonthly {
		if p, err := s.app.Prefs.NotificationPreferences(); err == nil {
			_ = s.app.Policy.RescheduleMonthly(p, now)
		}
	}
	state, err := s.app.CheckIn.State(cadence, now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleCheckInDismiss(w http.ResponseWriter, r *http.Request) {
	cadence := domain.Cadence(chi.URLParam(r, "cadence"))
	now := s.now()
	if err := s.app.CheckIn.Dismiss(cadence, now); err != nil {
		writeError(w, err)
		return
	}
	state, err := s.app.CheckIn.State(cadence, now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleAddIntention(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}
	i, err := s.app.CheckIn.AddIntention(req.Text, s.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, i)
}

func (s *Server) handleCompleteIntention(w http.ResponseWriter, r *http.Request) {
	if err := s.app.CheckIn.CompleteIntention(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─── Sessions ───────────────────────────────────────────────────────────────

func (s *Server) handleSessionStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FocusAreaID string `json:"focus_area_id"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req) // empty body means quick session
	}
	sess, err := s.app.Tracker.Start(req.FocusAreaID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleSessionStop(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Note   string `json:"note"`
		Rating int    `json:"rating"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	sess, err := s.app.Tracker.Stop(req.Note, req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// ─── Focus areas ────────────────────────────────────────────────────────────

func (s *Server) handleListFocus(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("archived") == "true"
	areas, err := s.app.Tracker.FocusAreas(includeArchived)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, areas)
}

func (s *Server) handleCreateFocus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		ParentID string `json:"parent_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	area, err := s.app.Tracker.CreateFocusArea(req.Name, domain.FocusAreaType(req.Type), req.ParentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, area)
}

// ─── Reports ────────────────────────────────────────────────────────────────

// reportTime resolves the optional ?date=YYYY-MM-DD query, defaulting to now.
func (s *Server) reportTime(r *http.Request) (time.Time, error) {
	q := r.URL.Query().Get("date")
	if q == "" {
		return s.now(), nil
	}
	t, err := domain.ParseDay(q)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return t, nil
}

func (s *Server) handleReportDay(w http.ResponseWriter, r *http.Request) {
	t, err := s.reportTime(r)
	if err != nil {
		writeError(w, err)
		return
	}
	totals, err := s.app.Report.Day(t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleReportWeek(w http.ResponseWriter, r *http.Request) {
	t, err := s.reportTime(r)
	if err != nil {
		writeError(w, err)
		return
	}
	totals, err := s.app.Report.Week(t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleReportMonth(w http.ResponseWriter, r *http.Request) {
	t, err := s.reportTime(r)
	if err != nil {
		writeError(w, err)
		return
	}
	summary, err := s.app.Report.Month(t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ─── Daily log ──────────────────────────────────────────────────────────────

func (s *Server) handleGetLog(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := domain.ParseDay(date); err != nil {
		writeError(w, domain.ErrInvalidDate)
		return
	}
	entry, err := s.app.DB.GetDailyLog(date)
	if err != nil {
		writeError(w, err)
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusOK, domain.DailyLog{Date: date})
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// handlePutLog writes the morning or evening half of a day's log, depending
// on which fields the body carries.
func (s *Server) handlePutLog(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	var req struct {
		Intention     *string `json:"intention"`
		Commitment    *string `json:"commitment"`
		Reflection    *string `json:"reflection"`
		FeelingRating *int    `json:"feeling_rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	if req.Intention != nil || req.Commitment != nil {
		err := s.app.LogMorning(date, strOrEmpty(req.Intention), strOrEmpty(req.Commitment))
		if err != nil {
			writeError(w, err)
			return
		}
	}
	if req.Reflection != nil || req.FeelingRating != nil {
		rating := 0
		if req.FeelingRating != nil {
			rating = *req.FeelingRating
		}
		if err := s.app.LogEvening(date, strOrEmpty(req.Reflection), rating); err != nil {
			writeError(w, err)
			return
		}
	}

	entry, err := s.app.DB.GetDailyLog(date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// ─── Notification preferences ───────────────────────────────────────────────

func (s *Server) handleNotificationPrefs(w http.ResponseWriter, r *http.Request) {
	p, err := s.app.Prefs.NotificationPreferences()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handlePutNotificationPrefs saves new preferences and immediately syncs the
// notification schedule against them.
func (s *Server) handlePutNotificationPrefs(w http.ResponseWriter, r *http.Request) {
	p := domain.DefaultPreferences()
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	for _, t := range []domain.TimeOfDay{p.Morning.At, p.Evening.At, p.Weekly.At, p.Monthly.At} {
		if !t.Valid() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid time of day"})
			return
		}
	}
	if err := s.app.Prefs.SaveNotificationPreferences(p); err != nil {
		writeError(w, err)
		return
	}

	now := s.now()
	snap, err := s.app.Engagement.Snapshot(now)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.app.Policy.Sync(p, snap.Level, now); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ─── Export ─────────────────────────────────────────────────────────────────

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	dump, err := s.app.Tracker.BuildExport()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="pulse-export.json"`)
	writeJSON(w, http.StatusOK, dump)
}

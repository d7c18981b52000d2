package daemon

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/pulse-app/pulse/internal/app/checkin"
	"github.com/pulse-app/pulse/internal/app/engagement"
	"github.com/pulse-app/pulse/internal/app/notify"
	"github.com/pulse-app/pulse/internal/app/report"
	"github.com/pulse-app/pulse/internal/app/tracker"
	"github.com/pulse-app/pulse/internal/domain"
	_ "github.com/pulse-app/pulse/internal/infra/metrics" // Register Prometheus metrics
	"github.com/pulse-app/pulse/internal/infra/prefs"
	"github.com/pulse-app/pulse/internal/infra/sqlite"
)

// App is the explicit application state: every service hangs off it and is
// injected where needed — no package-level store singletons. UI surfaces
// (CLI commands, HTTP handlers) call Refresh and read the snapshot.
type App struct {
	Config     Config
	DB         *sqlite.DB
	Prefs      *prefs.Store
	Tracker    *tracker.Service
	Engagement *engagement.Service
	CheckIn    *checkin.Scheduler
	Report     *report.Service
	Policy     *notify.Policy

	mu       sync.RWMutex
	snapshot *Snapshot
}

// Snapshot is one consistent view of derived state, assembled by Refresh in
// a fixed read order and swapped in atomically — a partially refreshed view
// is never observable.
type Snapshot struct {
	Day           string                    `json:"day"`
	ActiveSession *domain.Session           `json:"active_session,omitempty"`
	Today         report.Totals             `json:"today"`
	Log           *domain.DailyLog          `json:"log,omitempty"`
	Engagement    domain.EngagementSnapshot `json:"engagement"`
	Prompt        *engagement.Prompt        `json:"prompt,omitempty"`
	Weekly        domain.CheckInState       `json:"weekly"`
	Monthly       domain.CheckInState       `json:"monthly"`
	Permission    domain.PermissionStatus   `json:"notification_permission"`
	RefreshedAt   time.Time                 `json:"refreshed_at"`
}

// New creates an App from the on-disk config.
func New() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates an App with all services wired.
func NewWithConfig(cfg Config) (*App, error) {
	db, err := sqlite.Open(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Notification capability: picked once here, not re-checked per call.
	var scheduler notify.Scheduler
	switch cfg.Notifications.Mode {
	case "off":
		scheduler = notify.NoopScheduler{}
	default:
		scheduler = notify.NewStoreScheduler(db)
	}

	p := prefs.NewStore(db)
	app := &App{
		Config:     cfg,
		DB:         db,
		Prefs:      p,
		Tracker:    tracker.NewService(db),
		Engagement: engagement.NewService(db),
		CheckIn:    checkin.NewScheduler(p, db),
		Report:     report.NewService(db),
		Policy:     notify.NewPolicy(scheduler),
	}
	return app, nil
}

// Close shuts down the app's resources.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

// Refresh recomputes the derived-state snapshot for now. Reads run in a
// fixed sequence (sessions → aggregation → log → engagement → check-in) and
// the result is applied in one swap. On failure the previous snapshot stays.
func (a *App) Refresh(now time.Time) (*Snapshot, error) {
	day := domain.DayOf(now)

	active, err := a.Tracker.Active()
	if err != nil {
		return nil, fmt.Errorf("active session: %w", err)
	}

	today, err := a.Report.Day(now)
	if err != nil {
		return nil, fmt.Errorf("today totals: %w", err)
	}

	dailyLog, err := a.DB.GetDailyLog(day)
	if err != nil {
		return nil, fmt.Errorf("daily log: %w", err)
	}

	snap, err := a.Engagement.Snapshot(now)
	if err != nil {
		return nil, fmt.Errorf("engagement: %w", err)
	}

	weekly, err := a.CheckIn.State(domain.CadenceWeekly, now)
	if err != nil {
		return nil, fmt.Errorf("weekly check-in: %w", err)
	}
	monthly, err := a.CheckIn.State(domain.CadenceMonthly, now)
	if err != nil {
		return nil, fmt.Errorf("monthly check-in: %w", err)
	}

	s := &Snapshot{
		Day:           day,
		ActiveSession: active,
		Today:         today,
		Log:           dailyLog,
		Engagement:    snap,
		Weekly:        weekly,
		Monthly:       monthly,
		Permission:    a.Policy.Scheduler().Permission(),
		RefreshedAt:   now,
	}
	if domain.ShouldShowPrompt(snap.Level) {
		p := engagement.PromptFor(snap.Level)
		s.Prompt = &p
	}

	a.mu.Lock()
	a.snapshot = s
	a.mu.Unlock()

	// Reconcile the notification schedule against the fresh level.
	// Best-effort: a scheduling failure never blocks the refresh.
	if err := a.syncNotifications(snap.Level, now); err != nil {
		log.Printf("[app] notification sync failed: %v", err)
	}

	return s, nil
}

// Snapshot returns the last refreshed view (nil before the first Refresh).
func (a *App) Snapshot() *Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

func (a *App) syncNotifications(level domain.EngagementLevel, now time.Time) error {
	p, err := a.Prefs.NotificationPreferences()
	if err != nil {
		return err
	}
	return a.Policy.Sync(p, level, now)
}

// ─── Daily log writes ───────────────────────────────────────────────────────

// LogMorning upserts the morning intention/commitment for a date.
func (a *App) LogMorning(date, intention, commitment string) error {
	if _, err := domain.ParseDay(date); err != nil {
		return domain.ErrInvalidDate
	}
	return a.DB.UpsertDailyLogMorning(date, intention, commitment)
}

// LogEvening upserts the evening reflection for a date.
func (a *App) LogEvening(date, reflection string, feelingRating int) error {
	if _, err := domain.ParseDay(date); err != nil {
		return domain.ErrInvalidDate
	}
	if !domain.ValidRating(feelingRating) {
		return domain.ErrInvalidRating
	}
	return a.DB.UpsertDailyLogEvening(date, reflection, feelingRating)
}

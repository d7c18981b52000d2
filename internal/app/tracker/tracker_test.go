package tracker_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pulse-app/pulse/internal/app/tracker"
	"github.com/pulse-app/pulse/internal/domain"
	"github.com/pulse-app/pulse/internal/infra/sqlite"
)

// clock is a settable test clock.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func testTracker(t *testing.T) (*tracker.Service, *sqlite.DB, *clock) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	c := &clock{t: time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)}
	return tracker.NewServiceAt(db, c.now), db, c
}

func TestStartStop(t *testing.T) {
	svc, _, c := testTracker(t)

	sess, err := svc.Start("")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if sess.Day != "2024-03-12" || !sess.Open() {
		t.Errorf("session = %+v", sess)
	}

	active, err := svc.Active()
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active == nil || active.ID != sess.ID {
		t.Fatalf("active = %+v", active)
	}

	c.t = c.t.Add(25*time.Minute + 40*time.Second)
	done, err := svc.Stop("good focus", 4)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if done.DurationMin != 26 { // 25m40s rounds up
		t.Errorf("duration = %d, want 26", done.DurationMin)
	}
	if done.Note != "good focus" || done.QualityRating != 4 {
		t.Errorf("closed session = %+v", done)
	}

	if active, _ := svc.Active(); active != nil {
		t.Errorf("still active after stop: %+v", active)
	}
}

func TestStart_RejectsSecondOpen(t *testing.T) {
	svc, _, _ := testTracker(t)

	if _, err := svc.Start(""); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if _, err := svc.Start(""); err != domain.ErrSessionAlreadyOpen {
		t.Errorf("second start = %v, want ErrSessionAlreadyOpen", err)
	}
}

func TestStop_NoOpenSession(t *testing.T) {
	svc, _, _ := testTracker(t)
	if _, err := svc.Stop("", 0); err != domain.ErrNoOpenSession {
		t.Errorf("stop = %v, want ErrNoOpenSession", err)
	}
}

func TestStop_InvalidRating(t *testing.T) {
	svc, _, _ := testTracker(t)
	if _, err := svc.Start(""); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Stop("", 6); err != domain.ErrInvalidRating {
		t.Errorf("stop rating 6 = %v, want ErrInvalidRating", err)
	}
}

func TestStart_FocusAreaRules(t *testing.T) {
	svc, _, _ := testTracker(t)

	if _, err := svc.Start("missing"); err != domain.ErrFocusAreaNotFound {
		t.Errorf("unknown focus = %v, want ErrFocusAreaNotFound", err)
	}

	area, err := svc.CreateFocusArea("Health", domain.TypeArea, "")
	if err != nil {
		t.Fatalf("create area: %v", err)
	}
	if _, err := svc.Start(area.ID); err != domain.ErrNotTrackable {
		t.Errorf("start on AREA = %v, want ErrNotTrackable", err)
	}

	habit, err := svc.CreateFocusArea("Running", domain.TypeHabit, area.ID)
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
	if _, err := svc.Start(habit.ID); err != nil {
		t.Errorf("start on habit: %v", err)
	}
}

func TestCreateFocusArea_ParentValidation(t *testing.T) {
	svc, _, _ := testTracker(t)

	habit, err := svc.CreateFocusArea("Running", domain.TypeHabit, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Non-AREA parents are rejected, as are missing ones.
	if _, err := svc.CreateFocusArea("Intervals", domain.TypeHabit, habit.ID); err != domain.ErrInvalidParent {
		t.Errorf("habit parent = %v, want ErrInvalidParent", err)
	}
	if _, err := svc.CreateFocusArea("Orphan", domain.TypeHabit, "missing"); err != domain.ErrInvalidParent {
		t.Errorf("missing parent = %v, want ErrInvalidParent", err)
	}
	if _, err := svc.CreateFocusArea("Thing", "GOAL", ""); err != domain.ErrInvalidAreaType {
		t.Errorf("bad type = %v, want ErrInvalidAreaType", err)
	}
}

func TestDiscard(t *testing.T) {
	svc, _, _ := testTracker(t)

	if err := svc.Discard(); err != domain.ErrNoOpenSession {
		t.Errorf("discard idle = %v, want ErrNoOpenSession", err)
	}
	if _, err := svc.Start(""); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := svc.Discard(); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if active, _ := svc.Active(); active != nil {
		t.Errorf("active after discard: %+v", active)
	}
}

func TestFocusAreas_ArchiveFilter(t *testing.T) {
	svc, _, _ := testTracker(t)

	a, _ := svc.CreateFocusArea("Keep", domain.TypeSkill, "")
	b, _ := svc.CreateFocusArea("Old", domain.TypeProject, "")
	if err := svc.Archive(b.ID); err != nil {
		t.Fatalf("archive: %v", err)
	}

	active, err := svc.FocusAreas(false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 1 || active[0].ID != a.ID {
		t.Errorf("active list = %+v", active)
	}
	all, _ := svc.FocusAreas(true)
	if len(all) != 2 {
		t.Errorf("full list = %d entries, want 2", len(all))
	}
}

func TestWriteExport(t *testing.T) {
	svc, _, c := testTracker(t)

	area, _ := svc.CreateFocusArea("Writing", domain.TypeSkill, "")
	if _, err := svc.Start(area.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	c.t = c.t.Add(30 * time.Minute)
	if _, err := svc.Stop("", 0); err != nil {
		t.Fatalf("stop: %v", err)
	}

	path := filepath.Join(t.TempDir(), "pulse-export.json")
	if err := svc.WriteExport(path); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var dump tracker.Export
	if err := json.Unmarshal(data, &dump); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if dump.Version != tracker.ExportVersion {
		t.Errorf("version = %s", dump.Version)
	}
	if len(dump.FocusAreas) != 1 || len(dump.Sessions) != 1 {
		t.Errorf("dump = %d areas / %d sessions", len(dump.FocusAreas), len(dump.Sessions))
	}
	if dump.Sessions[0].DurationMin != 30 {
		t.Errorf("exported duration = %d", dump.Sessions[0].DurationMin)
	}
}

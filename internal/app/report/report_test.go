package report_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pulse-app/pulse/internal/app/report"
	"github.com/pulse-app/pulse/internal/domain"
	"github.com/pulse-app/pulse/internal/infra/sqlite"
)

func testStore(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func insertClosed(t *testing.T, db *sqlite.DB, start time.Time, minutes int, focusID string) {
	t.Helper()
	err := db.InsertSession(domain.Session{
		ID:          uuid.NewString(),
		FocusAreaID: focusID,
		Day:         domain.DayOf(start),
		StartTime:   start,
		EndTime:     start.Add(time.Duration(minutes) * time.Minute),
		DurationMin: minutes,
	})
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
}

func TestAggregate_BucketsByFocusArea(t *testing.T) {
	// Two sessions on focus A (20 + 25 min), one quick session (10 min).
	start := time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)
	sessions := []domain.Session{
		{ID: "1", FocusAreaID: "A", Day: "2024-03-12", StartTime: start, EndTime: start.Add(20 * time.Minute), DurationMin: 20},
		{ID: "2", FocusAreaID: "A", Day: "2024-03-12", StartTime: start, EndTime: start.Add(25 * time.Minute), DurationMin: 25},
		{ID: "3", Day: "2024-03-12", StartTime: start, EndTime: start.Add(10 * time.Minute), DurationMin: 10},
		{ID: "4", Day: "2024-03-12", StartTime: start}, // open — excluded
	}

	buckets := report.Aggregate(sessions)
	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(buckets))
	}
	if buckets[0].FocusAreaID != "A" || buckets[0].Minutes != 45 || buckets[0].Sessions != 2 {
		t.Errorf("focus bucket = %+v, want A/45/2", buckets[0])
	}
	if buckets[1].FocusAreaID != "" || buckets[1].Minutes != 10 || buckets[1].Sessions != 1 {
		t.Errorf("quick bucket = %+v, want empty/10/1", buckets[1])
	}

	// Bucket sums equal the plain totals over completed sessions.
	totalMin, totalN := 0, 0
	for _, b := range buckets {
		totalMin += b.Minutes
		totalN += b.Sessions
	}
	if totalMin != 55 || totalN != 3 {
		t.Errorf("sums = %d min / %d sessions, want 55/3", totalMin, totalN)
	}
}

func TestPercentChange(t *testing.T) {
	if got := report.PercentChange(100, 0); got != nil {
		t.Errorf("prev 0 should yield nil, got %d", *got)
	}
	cases := []struct {
		cur, prev, want int
	}{
		{150, 100, 50},
		{50, 100, -50},
		{100, 100, 0},
		{100, 300, -67}, // rounds -66.67 to -67
		{110, 300, -63}, // rounds -63.33 to -63
	}
	for _, tc := range cases {
		got := report.PercentChange(tc.cur, tc.prev)
		if got == nil || *got != tc.want {
			t.Errorf("PercentChange(%d, %d) = %v, want %d", tc.cur, tc.prev, got, tc.want)
		}
	}
}

func TestPeriodRanges(t *testing.T) {
	wed := time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC) // Wednesday

	from, to := report.DayRange(wed)
	if from != "2024-03-13" || to != "2024-03-13" {
		t.Errorf("day range = %s..%s", from, to)
	}

	from, to = report.WeekRange(wed)
	if from != "2024-03-11" || to != "2024-03-17" {
		t.Errorf("week range = %s..%s, want Monday..Sunday", from, to)
	}
	// Sunday belongs to the week started the previous Monday.
	sun := time.Date(2024, 3, 17, 8, 0, 0, 0, time.UTC)
	from, to = report.WeekRange(sun)
	if from != "2024-03-11" || to != "2024-03-17" {
		t.Errorf("Sunday week range = %s..%s", from, to)
	}

	from, to = report.MonthRange(wed)
	if from != "2024-03-01" || to != "2024-03-31" {
		t.Errorf("month range = %s..%s", from, to)
	}
	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	from, to = report.MonthRange(feb)
	if from != "2024-02-01" || to != "2024-02-29" {
		t.Errorf("leap Feb range = %s..%s", from, to)
	}
}

func TestService_DayNamesBuckets(t *testing.T) {
	db := testStore(t)
	svc := report.NewService(db)

	area := domain.FocusArea{ID: uuid.NewString(), Name: "Writing", Type: domain.TypeSkill, CreatedAt: time.Now()}
	if err := db.InsertFocusArea(area); err != nil {
		t.Fatalf("insert area: %v", err)
	}

	day := time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)
	insertClosed(t, db, day, 30, area.ID)
	insertClosed(t, db, day.Add(2*time.Hour), 15, "")

	totals, err := svc.Day(day)
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if totals.TotalMinutes != 45 || totals.SessionCount != 2 {
		t.Errorf("totals = %+v", totals)
	}
	if totals.Buckets[0].FocusAreaName != "Writing" {
		t.Errorf("bucket name = %q, want Writing", totals.Buckets[0].FocusAreaName)
	}
	if totals.Buckets[1].FocusAreaName != "Quick sessions" {
		t.Errorf("quick bucket name = %q", totals.Buckets[1].FocusAreaName)
	}
}

func TestService_MonthSummary(t *testing.T) {
	db := testStore(t)
	svc := report.NewService(db)

	// February: 100 minutes over two days.
	feb := time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC)
	insertClosed(t, db, feb, 60, "")
	insertClosed(t, db, feb.AddDate(0, 0, 1), 40, "")

	// March: 150 minutes over two days (one day has two sessions).
	mar := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	insertClosed(t, db, mar, 50, "")
	insertClosed(t, db, mar.Add(3*time.Hour), 40, "")
	insertClosed(t, db, mar.AddDate(0, 0, 2), 60, "")

	summary, err := svc.Month(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("month: %v", err)
	}
	if summary.Month != "2024-03" {
		t.Errorf("month = %s", summary.Month)
	}
	if summary.TotalMinutes != 150 || summary.SessionCount != 3 {
		t.Errorf("totals = %d min / %d sessions", summary.TotalMinutes, summary.SessionCount)
	}
	if summary.ActiveDays != 2 {
		t.Errorf("active days = %d, want 2", summary.ActiveDays)
	}
	if summary.PrevMinutes != 100 {
		t.Errorf("prev minutes = %d, want 100", summary.PrevMinutes)
	}
	if summary.PercentChange == nil || *summary.PercentChange != 50 {
		t.Errorf("percent change = %v, want 50", summary.PercentChange)
	}
}

func TestService_MonthSummary_NoPriorMonth(t *testing.T) {
	db := testStore(t)
	svc := report.NewService(db)

	mar := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	insertClosed(t, db, mar, 50, "")

	summary, err := svc.Month(mar)
	if err != nil {
		t.Fatalf("month: %v", err)
	}
	if summary.PercentChange != nil {
		t.Errorf("percent change = %d, want nil for empty prior month", *summary.PercentChange)
	}
}

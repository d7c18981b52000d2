package domain

import (
	"testing"
	"time"
)

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want int
	}{
		{"exact", start.Add(25 * time.Minute), 25},
		{"rounds down", start.Add(25*time.Minute + 29*time.Second), 25},
		{"rounds up", start.Add(25*time.Minute + 30*time.Second), 26},
		{"sub-minute", start.Add(20 * time.Second), 0},
		{"zero", start, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DurationMinutes(start, tc.end); got != tc.want {
				t.Errorf("DurationMinutes = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestLevelForGap(t *testing.T) {
	cases := []struct {
		gap  int
		want EngagementLevel
	}{
		{0, LevelActive},
		{1, LevelActive},
		{2, LevelSlipping},
		{3, LevelSlipping},
		{4, LevelDormant},
		{5, LevelDormant},
		{6, LevelReset},
		{30, LevelReset},
		{GapNever, LevelReset},
	}
	for _, tc := range cases {
		if got := LevelForGap(tc.gap); got != tc.want {
			t.Errorf("LevelForGap(%d) = %s, want %s", tc.gap, got, tc.want)
		}
	}
}

func TestShouldShowPrompt(t *testing.T) {
	if ShouldShowPrompt(LevelActive) {
		t.Error("active users should not see a prompt")
	}
	for _, level := range []EngagementLevel{LevelSlipping, LevelDormant, LevelReset} {
		if !ShouldShowPrompt(level) {
			t.Errorf("%s should show a prompt", level)
		}
	}
}

func TestDayHelpers(t *testing.T) {
	gap, err := DaysBetween("2024-03-08", "2024-03-12")
	if err != nil {
		t.Fatalf("DaysBetween: %v", err)
	}
	if gap != 4 {
		t.Errorf("DaysBetween = %d, want 4", gap)
	}

	if got := PrevDay("2024-03-01"); got != "2024-02-29" {
		t.Errorf("PrevDay across month = %s, want 2024-02-29", got)
	}

	mon := time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)
	if got := ISOWeek(mon); got != "2024-W11" {
		t.Errorf("ISOWeek = %s, want 2024-W11", got)
	}
	if got := PrevISOWeek(mon); got != "2024-W10" {
		t.Errorf("PrevISOWeek = %s, want 2024-W10", got)
	}
	if got := MonthKey(mon); got != "2024-03" {
		t.Errorf("MonthKey = %s, want 2024-03", got)
	}
	if got := PrevMonthKey(mon); got != "2024-02" {
		t.Errorf("PrevMonthKey = %s, want 2024-02", got)
	}
	// January rolls into the previous year.
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if got := PrevMonthKey(jan); got != "2023-12" {
		t.Errorf("PrevMonthKey(Jan) = %s, want 2023-12", got)
	}
}

func TestFocusAreaRules(t *testing.T) {
	area := FocusArea{Type: TypeArea}
	if area.Trackable() {
		t.Error("AREA rows must not be trackable")
	}
	for _, typ := range []FocusAreaType{TypeSkill, TypeHabit, TypeProject, TypeMaintenance} {
		if !(FocusArea{Type: typ}).Trackable() {
			t.Errorf("%s should be trackable", typ)
		}
	}
	if ValidFocusAreaType("GOAL") {
		t.Error("unknown type accepted")
	}
}

package domain

import (
	"fmt"
	"time"
)

// DayLayout is the canonical calendar-day key, "YYYY-MM-DD".
const DayLayout = "2006-01-02"

// DayOf returns the calendar-day key for t in its own location.
func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a "YYYY-MM-DD" key into a midnight UTC time.
// Day arithmetic (gaps, streak walks) happens on these normalized values so
// DST transitions cannot skew day counts.
func ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(DayLayout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", day, err)
	}
	return t, nil
}

// DaysBetween returns the whole calendar days from an earlier day key to a
// later one (0 for the same day).
func DaysBetween(from, to string) (int, error) {
	a, err := ParseDay(from)
	if err != nil {
		return 0, err
	}
	b, err := ParseDay(to)
	if err != nil {
		return 0, err
	}
	return int(b.Sub(a) / (24 * time.Hour)), nil
}

// PrevDay returns the day key immediately before day.
func PrevDay(day string) string {
	t, err := ParseDay(day)
	if err != nil {
		return day
	}
	return t.AddDate(0, 0, -1).Format(DayLayout)
}

// ISOWeek returns the "YYYY-Www" period identifier for t.
func ISOWeek(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthKey returns the "YYYY-MM" period identifier for t.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// PrevISOWeek returns the identifier of the week before t's.
func PrevISOWeek(t time.Time) string {
	return ISOWeek(t.AddDate(0, 0, -7))
}

// PrevMonthKey returns the identifier of the month before t's.
func PrevMonthKey(t time.Time) string {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return MonthKey(first.AddDate(0, 0, -1))
}

// Package checkin decides when weekly and monthly reflection prompts show,
// and tracks their completed/dismissed markers in the preference store.
//
// Prompts are gated to anchor days only: Monday for the weekly cadence, the
// 1st for the monthly one. If the app never opens on the anchor day, the
// prompt silently never appears for that period.
package checkin

import (
	"time"

	"github.com/pulse-app/pulse/internal/domain"
)

// PeriodOf returns the cadence's period identifier for t:
// "YYYY-Www" for weekly, "YYYY-MM" for monthly.
func PeriodOf(cadence domain.Cadence, t time.Time) string {
	if cadence == domain.CadenceMonthly {
		return domain.MonthKey(t)
	}
	return domain.ISOWeek(t)
}

// PrevPeriodOf returns the identifier of the period before t's.
func PrevPeriodOf(cadence domain.Cadence, t time.Time) string {
	if cadence == domain.CadenceMonthly {
		return domain.PrevMonthKey(t)
	}
	return domain.PrevISOWeek(t)
}

// IsAnchorDay reports whether t is the cadence's anchor day.
func IsAnchorDay(cadence domain.Cadence, t time.Time) bool {
	if cadence == domain.CadenceMonthly {
		return t.Day() == 1
	}
	return t.Weekday() == time.Monday
}

package contributions

import (
	"time"

	"github.com/SscSPs/pension_management_app/internal/core/domain"
)

// DayOf returns the calendar date of t, read in t's own location, as midnight UTC.
// Two instants on the same wall-clock day always map to the same value.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthOf returns the calendar month of t, read in t's own location.
func MonthOf(t time.Time) domain.MonthKey {
	y, m, _ := t.Date()
	return domain.MonthKey{Year: y, Month: m}
}

// MonthsSpanned counts calendar months from the month of a to the month of b, inclusive.
// It returns 0 when b is in an earlier month than a.
func MonthsSpanned(a, b time.Time) int {
	ma, mb := MonthOf(a), MonthOf(b)
	n := (mb.Year-ma.Year)*12 + int(mb.Month) - int(ma.Month) + 1
	if n < 0 {
		return 0
	}
	return n
}

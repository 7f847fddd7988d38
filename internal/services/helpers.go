package services

import (
	"time"

	"fintrack/internal/models"
)

// monthKeyLayout is the YYYY-MM key format used by budgets and monthly
// aggregates.
const monthKeyLayout = "2006-01"

// monthKey returns the YYYY-MM key for a point in time.
func monthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// parseMonthKey parses a YYYY-MM key into the first instant of that month.
func parseMonthKey(month string) (time.Time, error) {
	return time.ParseInLocation(monthKeyLayout, month, time.Local)
}

// inMonth reports whether the transaction's effective date falls in the
// given YYYY-MM month.
func inMonth(tx models.Transaction, month string) bool {
	return monthKey(tx.Time()) == month
}

// dateOnly truncates t to midnight in its own location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// removeAt returns a copy of s without the element at index i. The input
// slice is left untouched so outstanding snapshots stay consistent.
func removeAt[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// mergeDateWithTime combines a caller-supplied calendar date with the
// time-of-day of now, so a backdated entry still sorts naturally among
// entries recorded the same day.
func mergeDateWithTime(date, now time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location())
}

// Package recurring implements the cadence logic shared by ledger
// forecasting and rule materialization. Everything here is pure calendar
// arithmetic: no function mutates a rule or creates transactions.
package recurring

import (
	"time"

	"fintrack/internal/models"
)

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween returns the whole calendar days from a to b. Both dates are
// rebuilt in UTC first: subtracting local midnights directly undercounts
// across a DST spring-forward day (23 wall-clock hours) and would floor the
// quotient a day short.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// anchorDay returns the rule's anchor day-of-month clamped into the given
// month. A rule anchored on the 31st fires on the last day of shorter
// months rather than skipping them.
func anchorDay(anchor, year int, month time.Month) int {
	if max := daysInMonth(year, month); anchor > max {
		return max
	}
	return anchor
}

// inWindow reports whether date falls inside the rule's active date range.
// StartDate and EndDate are both inclusive.
func inWindow(rule models.RecurringRule, date time.Time) bool {
	d := DateOnly(date)
	if d.Before(DateOnly(rule.StartDate)) {
		return false
	}
	if rule.EndDate != nil && d.After(DateOnly(*rule.EndDate)) {
		return false
	}
	return true
}

// OccursOn reports whether the rule's cadence lands on the given date.
// Inactive rules and dates outside [StartDate, EndDate] never match.
func OccursOn(rule models.RecurringRule, date time.Time) bool {
	if !rule.IsActive || !inWindow(rule, date) {
		return false
	}

	d := DateOnly(date)
	start := DateOnly(rule.StartDate)

	switch rule.Interval {
	case models.IntervalDaily:
		return true
	case models.IntervalWeekly:
		return daysBetween(start, d)%7 == 0
	case models.IntervalMonthly:
		return d.Day() == anchorDay(start.Day(), d.Year(), d.Month())
	case models.IntervalYearly:
		return d.Month() == start.Month() &&
			d.Day() == anchorDay(start.Day(), d.Year(), d.Month())
	}
	return false
}

// ExpandWindow returns every date in [from, to] (inclusive) on which the
// rule occurs, in ascending order. It is side-effect-free and safe to call
// repeatedly from calendar and projection views.
func ExpandWindow(rule models.RecurringRule, from, to time.Time) []time.Time {
	var dates []time.Time
	for d := DateOnly(from); !d.After(DateOnly(to)); d = d.AddDate(0, 0, 1) {
		if OccursOn(rule, d) {
			dates = append(dates, d)
		}
	}
	return dates
}

// DueAt reports whether the rule is due for materialization on the given
// day. The reference point is LastProcessed, or StartDate if the rule has
// never been processed; the rule is due once a full interval has elapsed
// since that point. This check deliberately says nothing about how many
// intervals have elapsed: materialization creates at most one catch-up
// transaction per run.
func DueAt(rule models.RecurringRule, today time.Time) bool {
	if !rule.IsActive || !inWindow(rule, today) {
		return false
	}

	ref := DateOnly(rule.StartDate)
	if rule.LastProcessed != nil {
		ref = DateOnly(*rule.LastProcessed)
	}
	d := DateOnly(today)

	switch rule.Interval {
	case models.IntervalDaily:
		return daysBetween(ref, d) >= 1
	case models.IntervalWeekly:
		return daysBetween(ref, d) >= 7
	case models.IntervalMonthly:
		return monthsElapsed(ref, d) >= 1
	case models.IntervalYearly:
		return monthsElapsed(ref, d) >= 12
	}
	return false
}

// monthsElapsed returns the number of whole calendar months from a to b,
// clamping the anchor day into short months so that a January 31 reference
// counts a full month by February 28.
func monthsElapsed(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if months <= 0 {
		return 0
	}
	if b.Day() < anchorDay(a.Day(), b.Year(), b.Month()) {
		months--
	}
	return months
}

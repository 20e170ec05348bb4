// Package calendar wraps timezone-aware calendar arithmetic behind a narrow
// interface: field decomposition, reconstruction of dates from week
// coordinates, and date offsets. Day and week boundaries are always computed
// through the calendar rather than by adding raw second counts, so daylight
// saving transitions stay inside the configured location.
package calendar

import (
	"fmt"
	"time"
)

// Components is the field decomposition of an instant.
//
// Weekday is positional: 1 is the calendar's first weekday (Sunday by
// default), 7 the last. YearForWeekOfYear is the year the containing week
// belongs to, which differs from the civil year for weeks straddling
// January 1.
type Components struct {
	YearForWeekOfYear int
	WeekOfYear        int
	Month             int
	Day               int
	Weekday           int
}

// Calendar is the capability the week builder consumes.
type Calendar interface {
	// Components decomposes an instant in the calendar's location.
	Components(t time.Time) Components
	// DateOf returns local midnight of the given weekday (1..7) in the
	// (yearForWeek, week) bucket.
	DateOf(yearForWeek, week, weekday int) (time.Time, error)
	// AddDays offsets a date by whole calendar days.
	AddDays(t time.Time, days int) (time.Time, error)
	// AddWeeks offsets a date by whole calendar weeks.
	AddWeeks(t time.Time, weeks int) (time.Time, error)
	// StartOfDay returns local midnight of the day containing t.
	StartOfDay(t time.Time) time.Time
	// Location is the calendar's timezone.
	Location() *time.Location
}

// Error reports a calendar arithmetic failure. It indicates an adapter or
// configuration bug rather than bad user input, so callers generally treat
// it as fatal.
type Error struct {
	Op     string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("calendar: %s: %s", e.Op, e.Reason)
}

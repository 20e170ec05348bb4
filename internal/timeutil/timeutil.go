// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

type Period string

const (
	PeriodAllTime   Period = "all-time"
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	Period7Days     Period = "7days"
	Period14Days    Period = "14days"
	Period30Days    Period = "30days"
	Period90Days    Period = "90days"
)

var Range = map[Period]int{
	PeriodAllTime:   0,
	PeriodToday:     0,
	PeriodYesterday: -1,
	Period7Days:     -6,
	Period14Days:    -13,
	Period30Days:    -29,
	Period90Days:    -89,
}

var PeriodCollection = []Period{
	PeriodAllTime,
	PeriodToday,
	PeriodYesterday,
	Period7Days,
	Period14Days,
	Period30Days,
	Period90Days,
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// RoundToEnd resets the given time to the end of the day (one second before
// the next midnight).
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		0,
		t.Location(),
	)
}

// FormatSeconds renders a duration as zero-padded HH:MM:SS, rounding
// fractional seconds up. Durations of a day or more keep accumulating in the
// hours column.
func FormatSeconds(d time.Duration) string {
	secs := int64(math.Ceil(d.Seconds()))
	if secs < 0 {
		secs = 0
	}

	hrs := secs / 3600
	mins := (secs % 3600) / 60
	secs %= 60

	return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs)
}

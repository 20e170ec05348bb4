// Package topic implements the aggregation and mutation logic for a tracked
// topic: elapsed-time queries over arbitrary intervals, goal history
// resolution, and the commands that evolve a topic value.
package topic

import (
	"errors"
	"time"

	"github.com/tally-cli/tally/internal/models"
)

var ErrInvalidInterval = errors.New(
	"the interval start must not be later than its end",
)

// Options adjusts interval aggregation.
type Options struct {
	// ClampActiveSession clamps the running session's contribution to the
	// query bounds, like recorded sessions. When false (the default), the
	// active session contributes end minus its raw start, even if that start
	// precedes the query start.
	ClampActiveSession bool
}

// TotalIntervalBetween returns the total tracked time falling within the
// closed interval [start, end], combining the running session (if any) with
// each matching recorded session clamped to the query bounds.
func TotalIntervalBetween(
	t *models.Topic,
	start, end time.Time,
	opts Options,
) (time.Duration, error) {
	if start.After(end) {
		return 0, ErrInvalidInterval
	}

	var total time.Duration

	if t.ActiveSessionStart != nil {
		from := *t.ActiveSessionStart

		if opts.ClampActiveSession {
			if from.Before(start) {
				from = start
			}

			if !from.After(end) {
				total += end.Sub(from)
			}
		} else {
			total += end.Sub(from)
		}
	}

	for _, sess := range SessionsBetween(t.Sessions, start, end) {
		s, e := sess.Start, sess.End

		if s.Before(start) {
			s = start
		}

		if e.After(end) {
			e = end
		}

		total += e.Sub(s)
	}

	return total, nil
}

// SessionsBetween returns the recorded sessions with at least one endpoint in
// the closed interval [start, end], newest first. A session that fully spans
// the interval but has both endpoints outside it is not matched.
//
// Sessions must be sorted by start ascending: the scan walks from the newest
// session backwards and stops at the first non-match after a match, so an
// unsorted slice silently yields incomplete results. An inverted interval
// yields no matches.
func SessionsBetween(
	sessions []models.Session,
	start, end time.Time,
) []models.Session {
	if start.After(end) {
		return nil
	}

	var matching []models.Session

	for i := len(sessions) - 1; i >= 0; i-- {
		sess := sessions[i]

		if inRange(sess.Start, start, end) || inRange(sess.End, start, end) {
			matching = append(matching, sess)
		} else if len(matching) != 0 {
			// Past the relevant block of the sorted slice, nothing earlier
			// can match.
			break
		}
	}

	return matching
}

// SessionCountBetween counts the recorded sessions matching [start, end],
// plus one for a running session. The running session is counted whenever one
// exists, regardless of whether its start falls in range.
func SessionCountBetween(
	t *models.Topic,
	start, end time.Time,
) (int, error) {
	if start.After(end) {
		return 0, ErrInvalidInterval
	}

	count := len(SessionsBetween(t.Sessions, start, end))

	if t.ActiveSessionStart != nil {
		count++
	}

	return count, nil
}

// SessionsBefore reports whether any session started at or before date. It
// distinguishes "no data yet" from "zero tracked time" when presenting a day.
func SessionsBefore(t *models.Topic, date time.Time) bool {
	if len(t.Sessions) != 0 {
		return !t.Sessions[0].Start.After(date)
	}

	if t.ActiveSessionStart != nil {
		return !t.ActiveSessionStart.After(date)
	}

	return false
}

func inRange(ts, start, end time.Time) bool {
	return !ts.Before(start) && !ts.After(end)
}

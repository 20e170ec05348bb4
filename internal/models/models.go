// Package models defines the entities tracked by tally: topics, their
// sessions and goals, and the derived calendar values used for weekly review.
package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrSessionBounds = errors.New("session start must not be later than its end")

// DefaultTopicID identifies the single built-in topic. Storage is keyed by
// topic id, so additional topics only require handing out new ids.
var DefaultTopicID = uuid.Nil

// Session is one completed tracked interval.
type Session struct {
	ID    uuid.UUID `json:"id"`
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
}

// NewSession validates the interval bounds before constructing a Session.
func NewSession(id uuid.UUID, start, end time.Time) (Session, error) {
	if start.After(end) {
		return Session{}, fmt.Errorf(
			"%w: start=%s, end=%s",
			ErrSessionBounds,
			start.Format(time.RFC3339),
			end.Format(time.RFC3339),
		)
	}

	return Session{ID: id, Start: start, End: end}, nil
}

// Duration is the full recorded length of the session.
func (s Session) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Goal is a change event in a topic's goal history: from Start onward the
// daily target is Duration, until superseded by a later goal. A nil Duration
// explicitly unsets the goal from that date forward.
type Goal struct {
	ID       uuid.UUID      `json:"id"`
	Start    time.Time      `json:"start_time"`
	Duration *time.Duration `json:"duration,omitempty"`
}

// NewGoal constructs a Goal. Start is expected to be a local midnight.
// A non-positive duration is normalized to nil.
func NewGoal(id uuid.UUID, start time.Time, duration *time.Duration) Goal {
	if duration != nil && *duration <= 0 {
		duration = nil
	}

	var d *time.Duration

	if duration != nil {
		v := *duration
		d = &v
	}

	return Goal{ID: id, Start: start, Duration: d}
}

// Topic is the mutable aggregate for one tracked subject. Sessions and Goals
// are sorted by start time ascending; the aggregation functions rely on this
// ordering, so it is maintained at the mutation boundary rather than
// re-validated on every read.
type Topic struct {
	ID                 uuid.UUID  `json:"id"`
	ActiveSessionStart *time.Time `json:"active_session_start,omitempty"`
	Sessions           []Session  `json:"sessions"`
	Goals              []Goal     `json:"goals"`
}

// NewTopic returns an empty topic, the normal first-run state.
func NewTopic(id uuid.UUID) *Topic {
	return &Topic{ID: id}
}

// Active reports whether a session is currently running.
func (t *Topic) Active() bool {
	return t.ActiveSessionStart != nil
}

// Clone returns a deep copy so commands can produce a new value without
// aliasing the caller's slices.
func (t *Topic) Clone() *Topic {
	c := &Topic{ID: t.ID}

	if t.ActiveSessionStart != nil {
		v := *t.ActiveSessionStart
		c.ActiveSessionStart = &v
	}

	c.Sessions = make([]Session, len(t.Sessions))
	copy(c.Sessions, t.Sessions)

	c.Goals = make([]Goal, len(t.Goals))
	for i, g := range t.Goals {
		c.Goals[i] = NewGoal(g.ID, g.Start, g.Duration)
	}

	return c
}

// DayInterval is one calendar day represented as the closed interval
// [midnight, next midnight - 1s].
type DayInterval struct {
	StartDate time.Time
	EndDate   time.Time
}

// Contains reports whether ts falls within the closed interval.
func (d DayInterval) Contains(ts time.Time) bool {
	return !ts.Before(d.StartDate) && !ts.After(d.EndDate)
}

// Week is a pure derived value: seven contiguous day intervals ordered from
// the calendar's first weekday, plus the calendar fields identifying it.
type Week struct {
	YearForWeekOfYear int
	WeekOfYear        int
	Month             int
	FirstDayOfWeek    int // day of month of the week's first day
	WeekDayIntervals  [7]DayInterval
}

// ID is the identity key for a week, e.g. "2023:32".
func (w Week) ID() string {
	return fmt.Sprintf("%d:%d", w.YearForWeekOfYear, w.WeekOfYear)
}

// FirstMoment is the first second of the week.
func (w Week) FirstMoment() time.Time {
	return w.WeekDayIntervals[0].StartDate
}

// LastMoment is the last second of the week.
func (w Week) LastMoment() time.Time {
	return w.WeekDayIntervals[6].EndDate
}

// TopicWeek pairs a topic with one of its weeks for a weekly summary.
type TopicWeek struct {
	Topic *Topic
	Week  Week
}

// ID is the identity key for the pairing, e.g. "<topic-uuid>:2023:32".
func (tw TopicWeek) ID() string {
	return fmt.Sprintf("%s:%s", tw.Topic.ID, tw.Week.ID())
}

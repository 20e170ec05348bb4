// Package tracker owns the runtime lifecycle of a tracked topic: loading it
// from the store, applying mutation commands, persisting after every change,
// and keeping the cached start-of-today fresh across midnight.
package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"

	"github.com/tally-cli/tally/internal/calendar"
	"github.com/tally-cli/tally/internal/config"
	"github.com/tally-cli/tally/internal/models"
	"github.com/tally-cli/tally/internal/topic"
	"github.com/tally-cli/tally/internal/week"
	"github.com/tally-cli/tally/store"
)

// Status is a snapshot of the topic for display.
type Status struct {
	Running      bool
	ActiveSince  *time.Time
	StartOfToday time.Time
	TodayTotal   time.Duration
	SessionCount int
	Goal         *time.Duration
	GoalComplete bool
	// HasData is false until the very first session is started.
	HasData bool
}

// Tracker mediates access to a single topic. Access is single-writer by
// design; the mutex only guards the cached day boundary against the midnight
// rollover.
type Tracker struct {
	mu           sync.Mutex
	db           store.DB
	cfg          *config.Config
	cal          calendar.Calendar
	env          topic.Env
	topic        *models.Topic
	startOfToday time.Time
}

// New loads the configured topic and prepares a tracker around it. Zero
// fields of env fall back to the production defaults: wall clock, random
// UUIDs, and day boundaries from the configured calendar.
func New(db store.DB, cfg *config.Config, env topic.Env) (*Tracker, error) {
	t, err := db.GetTopic(cfg.Tracking.TopicID)
	if err != nil {
		return nil, err
	}

	cal := calendar.NewGregorian(
		cfg.Calendar.Location,
		cfg.Calendar.FirstWeekday,
	)

	if env.Now == nil {
		env.Now = time.Now
	}

	if env.NewID == nil {
		env.NewID = uuid.New
	}

	if env.StartOfDay == nil {
		env.StartOfDay = cal.StartOfDay
	}

	tr := &Tracker{
		db:    db,
		cfg:   cfg,
		cal:   cal,
		env:   env,
		topic: t,
	}
	tr.startOfToday = cal.StartOfDay(env.Now())

	return tr, nil
}

// Run keeps the cached start-of-today rolling over at each local midnight
// until the context is canceled. Long-lived callers run it on its own
// goroutine; short-lived commands can skip it since StartOfToday also
// refreshes lazily.
func (tr *Tracker) Run(ctx context.Context) error {
	for {
		now := tr.env.Now()

		next, err := tr.cal.AddDays(tr.cal.StartOfDay(now), 1)
		if err != nil {
			return err
		}

		timer := time.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			tr.refreshStartOfToday()
			slog.Debug("rolled over day boundary",
				slog.Time("start_of_today", tr.StartOfToday()))
		}
	}
}

// StartOfToday returns the cached local midnight, refreshing it when the day
// has changed since it was computed.
func (tr *Tracker) StartOfToday() time.Time {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	day := tr.cal.StartOfDay(tr.env.Now())
	if !day.Equal(tr.startOfToday) {
		tr.startOfToday = day
	}

	return tr.startOfToday
}

func (tr *Tracker) refreshStartOfToday() {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	tr.startOfToday = tr.cal.StartOfDay(tr.env.Now())
}

// Topic exposes the current topic value for read-only use.
func (tr *Tracker) Topic() *models.Topic {
	return tr.topic
}

// Calendar exposes the calendar adapter built from configuration.
func (tr *Tracker) Calendar() calendar.Calendar {
	return tr.cal
}

// Toggle starts a session when idle and stops the running one otherwise.
func (tr *Tracker) Toggle() ([]topic.Event, error) {
	if tr.topic.Active() {
		return tr.apply(topic.StopSession{})
	}

	return tr.apply(topic.StartSession{})
}

// SetGoal records a goal change effective from the day containing at (today
// when zero). A nil duration unsets the goal.
func (tr *Tracker) SetGoal(
	d *time.Duration,
	at time.Time,
) ([]topic.Event, error) {
	return tr.apply(topic.SetGoal{Duration: d, At: at})
}

// DeleteSession removes a recorded session by id.
func (tr *Tracker) DeleteSession(id uuid.UUID) ([]topic.Event, error) {
	return tr.apply(topic.DeleteSession{ID: id})
}

// apply runs a command and persists the result when anything changed. The
// save is the caller-side obligation of the command's events.
func (tr *Tracker) apply(cmd topic.Command) ([]topic.Event, error) {
	next, events, err := topic.Apply(tr.topic, cmd, tr.env)
	if err != nil {
		return nil, err
	}

	if len(events) == 0 {
		return nil, nil
	}

	if err := tr.db.SaveTopic(next); err != nil {
		return nil, err
	}

	tr.topic = next

	slog.Debug("applied command", slog.String("events", spew.Sdump(events)))

	return events, nil
}

// Options returns the interval aggregation options from configuration.
func (tr *Tracker) Options() topic.Options {
	return topic.Options{
		ClampActiveSession: tr.cfg.Tracking.ClampActiveSession,
	}
}

// Status summarizes the topic for today.
func (tr *Tracker) Status() (Status, error) {
	now := tr.env.Now()
	dayStart := tr.StartOfToday()

	total, err := topic.TotalIntervalBetween(tr.topic, dayStart, now, tr.Options())
	if err != nil {
		return Status{}, err
	}

	count, err := topic.SessionCountBetween(tr.topic, dayStart, now)
	if err != nil {
		return Status{}, err
	}

	s := Status{
		Running:      tr.topic.Active(),
		ActiveSince:  tr.topic.ActiveSessionStart,
		StartOfToday: dayStart,
		TodayTotal:   total,
		SessionCount: count,
		GoalComplete: topic.IsGoalComplete(tr.topic, dayStart, now, tr.Options()),
		HasData:      topic.SessionsBefore(tr.topic, now),
	}

	if g := topic.CurrentGoal(tr.topic); g != nil {
		s.Goal = g.Duration
	}

	return s, nil
}

// Week builds the topic's week containing date.
func (tr *Tracker) Week(date time.Time) (models.TopicWeek, error) {
	w, err := week.Of(date, tr.cal)
	if err != nil {
		return models.TopicWeek{}, err
	}

	return models.TopicWeek{Topic: tr.topic, Week: w}, nil
}

// SessionsIn returns the recorded sessions overlapping [start, end], oldest
// first.
func (tr *Tracker) SessionsIn(start, end time.Time) []models.Session {
	matches := topic.SessionsBetween(tr.topic.Sessions, start, end)

	// SessionsBetween yields newest first; present oldest first.
	out := make([]models.Session, len(matches))
	for i, s := range matches {
		out[len(matches)-1-i] = s
	}

	return out
}

package topic

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tally-cli/tally/internal/models"
)

var (
	ErrSessionActive = errors.New(
		"a session is already running, stop it before starting another",
	)
	ErrNoActiveSession = errors.New("no session is currently running")
	ErrSessionNotFound = errors.New("session not found")
	ErrGoalNotFound    = errors.New("goal not found")
)

// Env supplies the ambient capabilities commands need. Injectable so command
// application stays deterministic under test.
type Env struct {
	Now        func() time.Time
	NewID      func() uuid.UUID
	StartOfDay func(time.Time) time.Time
}

// Command describes one mutation of a topic.
type Command interface {
	isCommand()
}

// StartSession begins a session at At (Env.Now when zero).
type StartSession struct {
	At time.Time
}

// StopSession materializes the running session into a record, ending at At
// (Env.Now when zero).
type StopSession struct {
	At time.Time
}

// SetGoal appends a goal change effective from the day containing At
// (Env.Now when zero). A nil Duration unsets the goal from that day forward.
// Setting a goal equal to the current one is a no-op.
type SetGoal struct {
	Duration *time.Duration
	At       time.Time
}

// DeleteSession removes a recorded session by id.
type DeleteSession struct {
	ID uuid.UUID
}

// DeleteGoal removes a goal change by id.
type DeleteGoal struct {
	ID uuid.UUID
}

func (StartSession) isCommand()  {}
func (StopSession) isCommand()   {}
func (SetGoal) isCommand()       {}
func (DeleteSession) isCommand() {}
func (DeleteGoal) isCommand()    {}

// Event records an applied mutation. A non-empty event list is the caller's
// obligation to persist the returned topic.
type Event interface {
	isEvent()
}

type SessionStarted struct {
	At time.Time
}

type SessionRecorded struct {
	Session models.Session
}

type GoalChanged struct {
	Goal models.Goal
}

type SessionDeleted struct {
	ID uuid.UUID
}

type GoalDeleted struct {
	ID uuid.UUID
}

func (SessionStarted) isEvent()  {}
func (SessionRecorded) isEvent() {}
func (GoalChanged) isEvent()     {}
func (SessionDeleted) isEvent()  {}
func (GoalDeleted) isEvent()     {}

// Apply executes a command against a topic, returning the new topic value and
// the events describing what changed. The input topic is never mutated. An
// empty event list means nothing changed and nothing needs saving.
func Apply(
	t *models.Topic,
	cmd Command,
	env Env,
) (*models.Topic, []Event, error) {
	switch c := cmd.(type) {
	case StartSession:
		return applyStart(t, c, env)
	case StopSession:
		return applyStop(t, c, env)
	case SetGoal:
		return applySetGoal(t, c, env)
	case DeleteSession:
		return applyDeleteSession(t, c)
	case DeleteGoal:
		return applyDeleteGoal(t, c)
	default:
		return nil, nil, fmt.Errorf("unknown command %T", cmd)
	}
}

func applyStart(
	t *models.Topic,
	cmd StartSession,
	env Env,
) (*models.Topic, []Event, error) {
	if t.ActiveSessionStart != nil {
		return nil, nil, ErrSessionActive
	}

	at := cmd.At
	if at.IsZero() {
		at = env.Now()
	}

	next := t.Clone()
	next.ActiveSessionStart = &at

	return next, []Event{SessionStarted{At: at}}, nil
}

func applyStop(
	t *models.Topic,
	cmd StopSession,
	env Env,
) (*models.Topic, []Event, error) {
	if t.ActiveSessionStart == nil {
		return nil, nil, ErrNoActiveSession
	}

	at := cmd.At
	if at.IsZero() {
		at = env.Now()
	}

	sess, err := models.NewSession(env.NewID(), *t.ActiveSessionStart, at)
	if err != nil {
		return nil, nil, err
	}

	next := t.Clone()
	next.ActiveSessionStart = nil
	next.Sessions = insertSession(next.Sessions, sess)

	return next, []Event{SessionRecorded{Session: sess}}, nil
}

func applySetGoal(
	t *models.Topic,
	cmd SetGoal,
	env Env,
) (*models.Topic, []Event, error) {
	at := cmd.At
	if at.IsZero() {
		at = env.Now()
	}

	goal := models.NewGoal(env.NewID(), env.StartOfDay(at), cmd.Duration)

	current := CurrentGoal(t)

	var currentDuration *time.Duration
	if current != nil {
		currentDuration = current.Duration
	}

	if durationsEqual(currentDuration, goal.Duration) {
		// The goal hasn't changed, avoid a redundant history record.
		return t, nil, nil
	}

	next := t.Clone()
	next.Goals = insertGoal(next.Goals, goal)

	return next, []Event{GoalChanged{Goal: goal}}, nil
}

func applyDeleteSession(
	t *models.Topic,
	cmd DeleteSession,
) (*models.Topic, []Event, error) {
	idx := -1

	for i := range t.Sessions {
		if t.Sessions[i].ID == cmd.ID {
			idx = i
			break
		}
	}

	if idx == -1 {
		return nil, nil, fmt.Errorf("%w: %s", ErrSessionNotFound, cmd.ID)
	}

	next := t.Clone()
	next.Sessions = append(next.Sessions[:idx], next.Sessions[idx+1:]...)

	return next, []Event{SessionDeleted{ID: cmd.ID}}, nil
}

func applyDeleteGoal(
	t *models.Topic,
	cmd DeleteGoal,
) (*models.Topic, []Event, error) {
	idx := -1

	for i := range t.Goals {
		if t.Goals[i].ID == cmd.ID {
			idx = i
			break
		}
	}

	if idx == -1 {
		return nil, nil, fmt.Errorf("%w: %s", ErrGoalNotFound, cmd.ID)
	}

	next := t.Clone()
	next.Goals = append(next.Goals[:idx], next.Goals[idx+1:]...)

	return next, []Event{GoalDeleted{ID: cmd.ID}}, nil
}

// insertSession keeps the slice sorted by start ascending. New sessions are
// normally the latest, so the scan starts from the end.
func insertSession(
	sessions []models.Session,
	sess models.Session,
) []models.Session {
	idx := len(sessions)
	for idx > 0 && sessions[idx-1].Start.After(sess.Start) {
		idx--
	}

	sessions = append(sessions, models.Session{})
	copy(sessions[idx+1:], sessions[idx:])
	sessions[idx] = sess

	return sessions
}

func insertGoal(goals []models.Goal, goal models.Goal) []models.Goal {
	idx := len(goals)
	for idx > 0 && goals[idx-1].Start.After(goal.Start) {
		idx--
	}

	goals = append(goals, models.Goal{})
	copy(goals[idx+1:], goals[idx:])
	goals[idx] = goal

	return goals
}

func durationsEqual(a, b *time.Duration) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}

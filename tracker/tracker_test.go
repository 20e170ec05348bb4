package tracker_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tally-cli/tally/internal/config"
	"github.com/tally-cli/tally/internal/testutil"
	"github.com/tally-cli/tally/internal/topic"
	"github.com/tally-cli/tally/store"
	"github.com/tally-cli/tally/tracker"
)

func testConfig() *config.Config {
	cfg, _ := config.New()
	cfg.Calendar.Timezone = "UTC"
	cfg.Calendar.Location = time.UTC
	cfg.Calendar.FirstWeekday = time.Sunday

	return cfg
}

func testDB(t *testing.T) store.DB {
	t.Helper()

	c, err := store.NewClient(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

func newTracker(
	t *testing.T,
	db store.DB,
	clock *testutil.Clock,
) *tracker.Tracker {
	t.Helper()

	tr, err := tracker.New(db, testConfig(), topic.Env{
		Now:   clock.Now,
		NewID: testutil.SequentialIDs(),
	})
	if err != nil {
		t.Fatal(err)
	}

	return tr
}

func TestStatusFirstRun(t *testing.T) {
	clock := testutil.NewClock(
		time.Date(2023, time.July, 10, 9, 0, 0, 0, time.UTC),
	)
	tr := newTracker(t, testDB(t), clock)

	s, err := tr.Status()
	if err != nil {
		t.Fatal(err)
	}

	if s.Running || s.HasData {
		t.Error("a fresh topic has no running session and no data")
	}

	wantDay := time.Date(2023, time.July, 10, 0, 0, 0, 0, time.UTC)
	if !s.StartOfToday.Equal(wantDay) {
		t.Errorf("expected start of today %v, got: %v", wantDay, s.StartOfToday)
	}
}

func TestToggleLifecycle(t *testing.T) {
	clock := testutil.NewClock(
		time.Date(2023, time.July, 10, 9, 0, 0, 0, time.UTC),
	)
	db := testDB(t)
	tr := newTracker(t, db, clock)

	events, err := tr.Toggle()
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := events[0].(topic.SessionStarted); !ok {
		t.Fatalf("expected SessionStarted, got: %T", events[0])
	}

	s, err := tr.Status()
	if err != nil {
		t.Fatal(err)
	}

	if !s.Running || !s.HasData {
		t.Error("a running session means the topic is live and has data")
	}

	clock.Advance(30 * time.Minute)

	events, err = tr.Toggle()
	if err != nil {
		t.Fatal(err)
	}

	recorded, ok := events[0].(topic.SessionRecorded)
	if !ok {
		t.Fatalf("expected SessionRecorded, got: %T", events[0])
	}

	if recorded.Session.Duration() != 30*time.Minute {
		t.Errorf("expected a 30m session, got: %v", recorded.Session.Duration())
	}

	s, err = tr.Status()
	if err != nil {
		t.Fatal(err)
	}

	if s.Running {
		t.Error("the session should have stopped")
	}

	if s.TodayTotal != 30*time.Minute {
		t.Errorf("expected 30m tracked today, got: %v", s.TodayTotal)
	}

	if s.SessionCount != 1 {
		t.Errorf("expected 1 session today, got: %d", s.SessionCount)
	}

	// A second tracker over the same database must see the recorded session.
	reloaded := newTracker(t, db, clock)

	if len(reloaded.Topic().Sessions) != 1 {
		t.Errorf(
			"expected the session to persist, got: %d",
			len(reloaded.Topic().Sessions),
		)
	}
}

func TestSetGoal(t *testing.T) {
	clock := testutil.NewClock(
		time.Date(2023, time.July, 10, 9, 0, 0, 0, time.UTC),
	)
	tr := newTracker(t, testDB(t), clock)

	goal := time.Hour

	events, err := tr.SetGoal(&goal, time.Time{})
	if err != nil {
		t.Fatal(err)
	}

	if len(events) != 1 {
		t.Fatalf("expected one event, got: %d", len(events))
	}

	// Re-setting the same goal records nothing and saves nothing.
	events, err = tr.SetGoal(&goal, time.Time{})
	if err != nil {
		t.Fatal(err)
	}

	if len(events) != 0 {
		t.Errorf("expected no events for an unchanged goal, got: %d", len(events))
	}

	s, err := tr.Status()
	if err != nil {
		t.Fatal(err)
	}

	if s.Goal == nil || *s.Goal != time.Hour {
		t.Errorf("expected a 1h goal in the status, got: %v", s.Goal)
	}
}

func TestGoalCompletion(t *testing.T) {
	clock := testutil.NewClock(
		time.Date(2023, time.July, 10, 9, 0, 0, 0, time.UTC),
	)
	tr := newTracker(t, testDB(t), clock)

	goal := time.Hour
	if _, err := tr.SetGoal(&goal, time.Time{}); err != nil {
		t.Fatal(err)
	}

	if _, err := tr.Toggle(); err != nil {
		t.Fatal(err)
	}

	clock.Advance(30 * time.Minute)

	s, err := tr.Status()
	if err != nil {
		t.Fatal(err)
	}

	if s.GoalComplete {
		t.Error("30m of a 1h goal is not complete")
	}

	clock.Advance(45 * time.Minute)

	s, err = tr.Status()
	if err != nil {
		t.Fatal(err)
	}

	if !s.GoalComplete {
		t.Error("75m of a 1h goal is complete, even mid-session")
	}
}

func TestDeleteSession(t *testing.T) {
	clock := testutil.NewClock(
		time.Date(2023, time.July, 10, 9, 0, 0, 0, time.UTC),
	)
	tr := newTracker(t, testDB(t), clock)

	if _, err := tr.Toggle(); err != nil {
		t.Fatal(err)
	}

	clock.Advance(time.Hour)

	if _, err := tr.Toggle(); err != nil {
		t.Fatal(err)
	}

	id := tr.Topic().Sessions[0].ID

	if _, err := tr.DeleteSession(id); err != nil {
		t.Fatal(err)
	}

	if len(tr.Topic().Sessions) != 0 {
		t.Error("the session should be gone")
	}

	_, err := tr.DeleteSession(id)
	if !errors.Is(err, topic.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got: %v", err)
	}
}

func TestSessionsInOldestFirst(t *testing.T) {
	clock := testutil.NewClock(
		time.Date(2023, time.July, 10, 9, 0, 0, 0, time.UTC),
	)
	tr := newTracker(t, testDB(t), clock)

	for i := 0; i < 2; i++ {
		if _, err := tr.Toggle(); err != nil {
			t.Fatal(err)
		}

		clock.Advance(30 * time.Minute)

		if _, err := tr.Toggle(); err != nil {
			t.Fatal(err)
		}

		clock.Advance(time.Hour)
	}

	got := tr.SessionsIn(
		time.Date(2023, time.July, 10, 0, 0, 0, 0, time.UTC),
		clock.Now(),
	)

	if len(got) != 2 {
		t.Fatalf("expected 2 sessions, got: %d", len(got))
	}

	if got[0].Start.After(got[1].Start) {
		t.Error("sessions must be presented oldest first")
	}
}

func TestWeek(t *testing.T) {
	clock := testutil.NewClock(
		time.Date(2023, time.July, 12, 9, 0, 0, 0, time.UTC),
	)
	tr := newTracker(t, testDB(t), clock)

	tw, err := tr.Week(clock.Now())
	if err != nil {
		t.Fatal(err)
	}

	if got := tw.Week.ID(); got != "2023:28" {
		t.Errorf("expected week 2023:28, got: %s", got)
	}

	if tw.Topic != tr.Topic() {
		t.Error("the pairing should reference the tracker's topic")
	}
}

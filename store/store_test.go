package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/tally-cli/tally/internal/models"
	"github.com/tally-cli/tally/store"
)

func testClient(t *testing.T) *store.Client {
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

func TestGetTopicFirstRun(t *testing.T) {
	c := testClient(t)

	tp, err := c.GetTopic(models.DefaultTopicID)
	if err != nil {
		t.Fatal(err)
	}

	if tp.ID != models.DefaultTopicID {
		t.Errorf("expected the requested id back, got: %s", tp.ID)
	}

	if tp.Active() || len(tp.Sessions) != 0 || len(tp.Goals) != 0 {
		t.Error("an unsaved topic must come back empty")
	}
}

func TestSaveAndGetTopic(t *testing.T) {
	c := testClient(t)

	start := time.Date(2023, time.July, 10, 9, 0, 0, 0, time.UTC)

	sess, err := models.NewSession(uuid.New(), start, start.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}

	goalDuration := 2 * time.Hour

	tp := models.NewTopic(models.DefaultTopicID)
	tp.Sessions = []models.Session{sess}
	tp.Goals = []models.Goal{
		models.NewGoal(uuid.New(), start.Truncate(24*time.Hour), &goalDuration),
	}

	if err = c.SaveTopic(tp); err != nil {
		t.Fatal(err)
	}

	got, err := c.GetTopic(models.DefaultTopicID)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(tp, got); diff != "" {
		t.Errorf("round-tripped topic mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveTopicOverwrites(t *testing.T) {
	c := testClient(t)

	tp := models.NewTopic(models.DefaultTopicID)

	activeStart := time.Date(2023, time.July, 10, 9, 0, 0, 0, time.UTC)
	tp.ActiveSessionStart = &activeStart

	if err := c.SaveTopic(tp); err != nil {
		t.Fatal(err)
	}

	tp.ActiveSessionStart = nil

	if err := c.SaveTopic(tp); err != nil {
		t.Fatal(err)
	}

	got, err := c.GetTopic(models.DefaultTopicID)
	if err != nil {
		t.Fatal(err)
	}

	if got.Active() {
		t.Error("the overwrite must clear the running session")
	}
}

func TestDeleteTopic(t *testing.T) {
	c := testClient(t)

	id := uuid.New()

	tp := models.NewTopic(id)
	tp.Goals = []models.Goal{
		models.NewGoal(uuid.New(), time.Now(), nil),
	}

	if err := c.SaveTopic(tp); err != nil {
		t.Fatal(err)
	}

	if err := c.DeleteTopic(id); err != nil {
		t.Fatal(err)
	}

	got, err := c.GetTopic(id)
	if err != nil {
		t.Fatal(err)
	}

	if len(got.Goals) != 0 {
		t.Error("a deleted topic must come back empty")
	}
}

func TestTopicsAreKeyedByID(t *testing.T) {
	c := testClient(t)

	first := models.NewTopic(uuid.New())
	second := models.NewTopic(uuid.New())

	activeStart := time.Date(2023, time.July, 10, 9, 0, 0, 0, time.UTC)
	second.ActiveSessionStart = &activeStart

	if err := c.SaveTopic(first); err != nil {
		t.Fatal(err)
	}

	if err := c.SaveTopic(second); err != nil {
		t.Fatal(err)
	}

	got, err := c.GetTopic(first.ID)
	if err != nil {
		t.Fatal(err)
	}

	if got.Active() {
		t.Error("topics must not leak state across ids")
	}
}

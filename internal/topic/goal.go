package topic

import (
	"time"

	"github.com/tally-cli/tally/internal/models"
)

// CurrentGoal returns the most recently created goal, or nil if the topic
// has none.
func CurrentGoal(t *models.Topic) *models.Goal {
	var current *models.Goal

	for i := range t.Goals {
		g := t.Goals[i]

		if current == nil || g.Start.After(current.Start) {
			cp := g
			current = &cp
		}
	}

	return current
}

// GoalFor returns the goal effective on the given date: the latest goal whose
// start is at or before date. Goal changes apply from their start date
// forward; past days keep the goal that was active then. Returns nil when no
// goal predates the date.
func GoalFor(t *models.Topic, date time.Time) *models.Goal {
	for i := len(t.Goals) - 1; i >= 0; i-- {
		g := t.Goals[i]

		if !g.Start.After(date) {
			return &g
		}
	}

	return nil
}

// IsGoalComplete reports whether the current goal is set and the time tracked
// since dayStart meets it.
func IsGoalComplete(
	t *models.Topic,
	dayStart, now time.Time,
	opts Options,
) bool {
	current := CurrentGoal(t)
	if current == nil || current.Duration == nil {
		return false
	}

	total, err := TotalIntervalBetween(t, dayStart, now, opts)
	if err != nil {
		return false
	}

	return total >= *current.Duration
}

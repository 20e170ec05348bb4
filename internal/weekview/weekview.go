// Package weekview projects a topic and a week into per-day presentation
// data: tracked duration, applicable goal, and a completion indicator.
package weekview

import (
	"fmt"
	"time"

	"github.com/tally-cli/tally/internal/models"
	"github.com/tally-cli/tally/internal/timeutil"
	"github.com/tally-cli/tally/internal/topic"
)

// Placeholder stands in for a duration that has no data behind it.
const Placeholder = "--:--:--"

// Indicator is the completion state of one day against its goal.
type Indicator int

const (
	// IndicatorNone means there is no session data or no goal to compare.
	IndicatorNone Indicator = iota
	// IndicatorEmpty means a goal exists but nothing was tracked.
	IndicatorEmpty
	// IndicatorPartial means some of the goal was met.
	IndicatorPartial
	// IndicatorComplete means the goal was met or exceeded.
	IndicatorComplete
)

func (i Indicator) String() string {
	switch i {
	case IndicatorEmpty:
		return "○"
	case IndicatorPartial:
		return "◐"
	case IndicatorComplete:
		return "●"
	default:
		return "·"
	}
}

// Day is the projection of one day interval.
type Day struct {
	Title     string // month/day, e.g. "07/09"
	Duration  string
	Goal      string
	Indicator Indicator
}

// ViewData is the projection of a topic's week.
type ViewData struct {
	Title    string // e.g. "Week 28"
	Subtitle string // e.g. "Jul 9-15, 2023"
	Days     [7]Day
}

// Project summarizes each day of the topic's week as of now. Days that have
// not begun yet, or that precede all recorded data, show placeholders rather
// than a zero duration.
func Project(tw models.TopicWeek, now time.Time, opts topic.Options) ViewData {
	v := ViewData{
		Title:    fmt.Sprintf("Week %d", tw.Week.WeekOfYear),
		Subtitle: formatRange(tw.Week.FirstMoment(), tw.Week.LastMoment()),
	}

	for i, iv := range tw.Week.WeekDayIntervals {
		v.Days[i] = projectDay(tw.Topic, iv, now, opts)
	}

	return v
}

func projectDay(
	t *models.Topic,
	iv models.DayInterval,
	now time.Time,
	opts topic.Options,
) Day {
	day := Day{
		Title:     iv.StartDate.Format("01/02"),
		Duration:  Placeholder,
		Goal:      Placeholder,
		Indicator: IndicatorNone,
	}

	var (
		tracked    time.Duration
		hasTracked bool
	)

	if !now.Before(iv.StartDate) && topic.SessionsBefore(t, iv.StartDate) {
		end := iv.EndDate
		if now.Before(end) {
			end = now
		}

		total, err := topic.TotalIntervalBetween(t, iv.StartDate, end, opts)
		if err == nil {
			tracked = total
			hasTracked = true
			day.Duration = timeutil.FormatSeconds(total)
		}
	}

	goal := topic.GoalFor(t, iv.StartDate)
	if goal != nil && goal.Duration != nil {
		day.Goal = timeutil.FormatSeconds(*goal.Duration)
	}

	// The ratio is only meaningful when both sides exist.
	if hasTracked && goal != nil && goal.Duration != nil {
		switch ratio := float64(tracked) / float64(*goal.Duration); {
		case ratio <= 0:
			day.Indicator = IndicatorEmpty
		case ratio < 1:
			day.Indicator = IndicatorPartial
		default:
			day.Indicator = IndicatorComplete
		}
	}

	return day
}

func formatRange(first, last time.Time) string {
	switch {
	case first.Year() != last.Year():
		return first.Format("Jan 2, 2006") + " - " + last.Format("Jan 2, 2006")
	case first.Month() != last.Month():
		return first.Format("Jan 2") + " - " + last.Format("Jan 2, 2006")
	default:
		return first.Format("Jan 2") + "-" + last.Format("2, 2006")
	}
}

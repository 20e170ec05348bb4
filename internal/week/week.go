// Package week derives calendar weeks: seven contiguous day intervals plus
// the calendar fields identifying the week, with navigation to adjacent
// weeks. All boundary arithmetic goes through the calendar adapter.
package week

import (
	"time"

	"github.com/tally-cli/tally/internal/calendar"
	"github.com/tally-cli/tally/internal/models"
)

// Of builds the week containing date. The week's month is the month of the
// queried date itself, not of the week's first day.
func Of(date time.Time, cal calendar.Calendar) (models.Week, error) {
	c := cal.Components(date)
	return build(c.YearForWeekOfYear, c.WeekOfYear, c.Month, cal)
}

// Previous returns the week before w. Failure indicates a calendar adapter
// bug, not the edge of navigable history: weeks extend indefinitely in both
// directions.
func Previous(w models.Week, cal calendar.Calendar) (models.Week, error) {
	return adjacent(w, -1, cal)
}

// Next returns the week after w.
func Next(w models.Week, cal calendar.Calendar) (models.Week, error) {
	return adjacent(w, 1, cal)
}

func adjacent(
	w models.Week,
	offset int,
	cal calendar.Calendar,
) (models.Week, error) {
	firstDay, err := cal.DateOf(w.YearForWeekOfYear, w.WeekOfYear, 1)
	if err != nil {
		return models.Week{}, err
	}

	shifted, err := cal.AddWeeks(firstDay, offset)
	if err != nil {
		return models.Week{}, err
	}

	return Of(shifted, cal)
}

func build(
	yearForWeek, weekOfYear, month int,
	cal calendar.Calendar,
) (models.Week, error) {
	var intervals [7]models.DayInterval

	for weekday := 1; weekday <= 7; weekday++ {
		day, err := cal.DateOf(yearForWeek, weekOfYear, weekday)
		if err != nil {
			return models.Week{}, err
		}

		iv, err := dayInterval(day, cal)
		if err != nil {
			return models.Week{}, err
		}

		intervals[weekday-1] = iv
	}

	return models.Week{
		YearForWeekOfYear: yearForWeek,
		WeekOfYear:        weekOfYear,
		Month:             month,
		FirstDayOfWeek:    cal.Components(intervals[0].StartDate).Day,
		WeekDayIntervals:  intervals,
	}, nil
}

// dayInterval spans [midnight, next midnight - 1s]. The next midnight comes
// from calendar day addition, so days stretched or shortened by daylight
// saving keep their true boundary.
func dayInterval(
	midnight time.Time,
	cal calendar.Calendar,
) (models.DayInterval, error) {
	next, err := cal.AddDays(midnight, 1)
	if err != nil {
		return models.DayInterval{}, err
	}

	return models.DayInterval{
		StartDate: midnight,
		EndDate:   cal.StartOfDay(next).Add(-time.Second),
	}, nil
}

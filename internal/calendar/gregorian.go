package calendar

import (
	"fmt"
	"time"
)

// Computed dates outside this range are treated as arithmetic failures.
const (
	minYear = 1
	maxYear = 9999
)

// Gregorian implements Calendar for the Gregorian calendar in a fixed
// location. Week numbering starts at 1 for the week containing January 1,
// matching a calendar with a one-day minimum first week.
type Gregorian struct {
	loc          *time.Location
	firstWeekday time.Weekday
}

// NewGregorian returns a Gregorian calendar for the given location and first
// weekday. A nil location defaults to the system local zone.
func NewGregorian(loc *time.Location, firstWeekday time.Weekday) *Gregorian {
	if loc == nil {
		loc = time.Local
	}

	return &Gregorian{loc: loc, firstWeekday: firstWeekday}
}

func (g *Gregorian) Location() *time.Location {
	return g.loc
}

func (g *Gregorian) StartOfDay(t time.Time) time.Time {
	t = t.In(g.loc)

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, g.loc)
}

// startOfWeek returns local midnight of the first weekday of the week
// containing t.
func (g *Gregorian) startOfWeek(t time.Time) time.Time {
	day := g.StartOfDay(t)
	offset := (int(day.Weekday()) - int(g.firstWeekday) + 7) % 7

	return g.StartOfDay(day.AddDate(0, 0, -offset))
}

func (g *Gregorian) Components(t time.Time) Components {
	t = t.In(g.loc)

	sow := g.startOfWeek(t)
	eow := sow.AddDate(0, 0, 6)

	// A week straddling January 1 counts as week 1 of the new year, so the
	// week year is always the year of the week's last day.
	weekYear := eow.Year()
	jan1 := time.Date(weekYear, time.January, 1, 0, 0, 0, 0, g.loc)
	week := daysBetween(g.startOfWeek(jan1), sow)/7 + 1

	return Components{
		YearForWeekOfYear: weekYear,
		WeekOfYear:        week,
		Month:             int(t.Month()),
		Day:               t.Day(),
		Weekday:           (int(t.Weekday())-int(g.firstWeekday)+7)%7 + 1,
	}
}

func (g *Gregorian) DateOf(yearForWeek, week, weekday int) (time.Time, error) {
	if weekday < 1 || weekday > 7 {
		return time.Time{}, &Error{
			Op:     "DateOf",
			Reason: fmt.Sprintf("weekday %d out of range 1..7", weekday),
		}
	}

	if week < 1 {
		return time.Time{}, &Error{
			Op:     "DateOf",
			Reason: fmt.Sprintf("week %d out of range", week),
		}
	}

	jan1 := time.Date(yearForWeek, time.January, 1, 0, 0, 0, 0, g.loc)
	d := g.startOfWeek(jan1).AddDate(0, 0, (week-1)*7+weekday-1)

	if d.Year() < minYear || d.Year() > maxYear {
		return time.Time{}, &Error{
			Op:     "DateOf",
			Reason: fmt.Sprintf("resulting year %d out of range", d.Year()),
		}
	}

	return g.StartOfDay(d), nil
}

func (g *Gregorian) AddDays(t time.Time, days int) (time.Time, error) {
	out := t.In(g.loc).AddDate(0, 0, days)

	if out.Year() < minYear || out.Year() > maxYear {
		return time.Time{}, &Error{
			Op:     "AddDays",
			Reason: fmt.Sprintf("resulting year %d out of range", out.Year()),
		}
	}

	return out, nil
}

func (g *Gregorian) AddWeeks(t time.Time, weeks int) (time.Time, error) {
	return g.AddDays(t, weeks*7)
}

// daysBetween counts the calendar days from a to b. It works on civil dates
// rather than elapsed durations, so days shortened or lengthened by daylight
// saving still count as one day.
func daysBetween(a, b time.Time) int {
	return civilDays(b.Date()) - civilDays(a.Date())
}

// civilDays converts a civil date to a serial day number (days since
// 1970-01-01).
func civilDays(y int, m time.Month, d int) int {
	if m <= time.February {
		y--
	}

	era := y / 400
	if y < 0 && y%400 != 0 {
		era--
	}

	yoe := y - era*400

	mp := int(m) - 3
	if m <= time.February {
		mp = int(m) + 9
	}

	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy

	return era*146097 + doe - 719468
}

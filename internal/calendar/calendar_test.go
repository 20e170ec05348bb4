package calendar_test

import (
	"errors"
	"testing"
	"time"

	"github.com/tally-cli/tally/internal/calendar"
)

func TestComponents(t *testing.T) {
	g := calendar.NewGregorian(time.UTC, time.Sunday)

	cases := []struct {
		name string
		date time.Time
		want calendar.Components
	}{
		{
			name: "mid-year sunday",
			date: time.Date(2023, time.July, 9, 15, 30, 0, 0, time.UTC),
			want: calendar.Components{
				YearForWeekOfYear: 2023,
				WeekOfYear:        28,
				Month:             7,
				Day:               9,
				Weekday:           1,
			},
		},
		{
			name: "week straddling new year belongs to the new year",
			date: time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC),
			want: calendar.Components{
				YearForWeekOfYear: 2024,
				WeekOfYear:        1,
				Month:             12,
				Day:               31,
				Weekday:           1,
			},
		},
		{
			name: "early january in the old week year",
			date: time.Date(2021, time.January, 2, 12, 0, 0, 0, time.UTC),
			want: calendar.Components{
				YearForWeekOfYear: 2021,
				WeekOfYear:        1,
				Month:             1,
				Day:               2,
				Weekday:           7,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Components(tc.date); got != tc.want {
				t.Errorf("Components(%v) = %+v, want %+v", tc.date, got, tc.want)
			}
		})
	}
}

func TestDateOfRoundTrip(t *testing.T) {
	g := calendar.NewGregorian(time.UTC, time.Sunday)

	dates := []time.Time{
		time.Date(2023, time.July, 9, 10, 0, 0, 0, time.UTC),
		time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2021, time.January, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 8, 0, 0, 0, time.UTC),
	}

	for _, date := range dates {
		c := g.Components(date)

		got, err := g.DateOf(c.YearForWeekOfYear, c.WeekOfYear, c.Weekday)
		if err != nil {
			t.Fatalf("DateOf(%v): %v", date, err)
		}

		if want := g.StartOfDay(date); !got.Equal(want) {
			t.Errorf("DateOf round trip for %v = %v, want %v", date, got, want)
		}
	}
}

func TestDateOfRejectsBadArguments(t *testing.T) {
	g := calendar.NewGregorian(time.UTC, time.Sunday)

	for _, args := range [][3]int{
		{2023, 28, 0},
		{2023, 28, 8},
		{2023, 0, 1},
	} {
		_, err := g.DateOf(args[0], args[1], args[2])

		var calErr *calendar.Error
		if !errors.As(err, &calErr) {
			t.Errorf("DateOf(%v) expected *calendar.Error, got: %v", args, err)
		}
	}
}

func TestAddDaysAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}

	g := calendar.NewGregorian(loc, time.Sunday)

	// 2023-03-12 is the spring-forward date in the US: the civil day is only
	// 23 hours long, but calendar addition still lands on the next midnight.
	start := time.Date(2023, time.March, 12, 0, 0, 0, 0, loc)

	next, err := g.AddDays(start, 1)
	if err != nil {
		t.Fatal(err)
	}

	want := time.Date(2023, time.March, 13, 0, 0, 0, 0, loc)
	if !next.Equal(want) {
		t.Fatalf("AddDays across DST = %v, want %v", next, want)
	}

	if elapsed := next.Sub(start); elapsed != 23*time.Hour {
		t.Errorf("spring-forward day spans %v, want 23h", elapsed)
	}
}

func TestMondayFirstWeekday(t *testing.T) {
	g := calendar.NewGregorian(time.UTC, time.Monday)

	// 2023-07-09 is a Sunday: last positional weekday of a Monday-first week.
	c := g.Components(time.Date(2023, time.July, 9, 0, 0, 0, 0, time.UTC))

	if c.Weekday != 7 {
		t.Errorf("expected positional weekday 7, got: %d", c.Weekday)
	}

	first, err := g.DateOf(c.YearForWeekOfYear, c.WeekOfYear, 1)
	if err != nil {
		t.Fatal(err)
	}

	if first.Weekday() != time.Monday {
		t.Errorf("expected the week to start on Monday, got: %v", first.Weekday())
	}
}

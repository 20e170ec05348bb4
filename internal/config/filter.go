package config

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/urfave/cli/v2"

	"github.com/tally-cli/tally/internal/timeutil"
)

var (
	errInvalidDateRange = errors.New(
		"the start time must be earlier than the end time",
	)

	errInvalidPeriod = errors.New(
		"please provide a valid time period",
	)
)

// FilterConfig represents a configuration to filter sessions by their start
// and end time.
type FilterConfig struct {
	StartTime time.Time
	EndTime   time.Time
}

// getTimeRange returns the start and end time according to the specified
// time period.
func getTimeRange(period timeutil.Period, now time.Time) (start, end time.Time) {
	start = timeutil.RoundToStart(now)
	end = timeutil.RoundToEnd(now)

	//nolint:exhaustive // other cases covered by default
	switch period {
	case timeutil.PeriodToday:
		return
	case timeutil.PeriodYesterday:
		start = timeutil.RoundToStart(now.AddDate(0, 0, timeutil.Range[period]))
		end = timeutil.RoundToEnd(start)

		return
	case timeutil.PeriodAllTime:
		start = time.Time{}
		return
	default:
		start = timeutil.RoundToStart(now.AddDate(0, 0, timeutil.Range[period]))
	}

	return
}

// Filter derives session filter bounds from command-line arguments. A period
// takes precedence; otherwise free-form --start/--end dates are parsed. With
// no arguments the filter covers today.
func Filter(ctx *cli.Context) (*FilterConfig, error) {
	filterCfg := &FilterConfig{}

	now := time.Now()

	period := timeutil.Period(strings.TrimSpace(ctx.String("period")))

	if period != "" && !slices.Contains(timeutil.PeriodCollection, period) {
		return nil, errInvalidPeriod
	}

	if period != "" {
		filterCfg.StartTime, filterCfg.EndTime = getTimeRange(period, now)

		return filterCfg, nil
	}

	filterCfg.StartTime = timeutil.RoundToStart(now)
	filterCfg.EndTime = now

	if start := ctx.String("start"); start != "" {
		dateTime, err := dateparse.ParseIn(start, now.Location())
		if err != nil {
			return nil, err
		}

		filterCfg.StartTime = dateTime

		if now.After(dateTime) {
			filterCfg.EndTime = now
		} else {
			filterCfg.EndTime = timeutil.RoundToEnd(dateTime)
		}
	}

	if end := ctx.String("end"); end != "" {
		dateTime, err := dateparse.ParseIn(end, now.Location())
		if err != nil {
			return nil, err
		}

		filterCfg.EndTime = dateTime
	}

	if filterCfg.EndTime.Before(filterCfg.StartTime) {
		return nil, errInvalidDateRange
	}

	return filterCfg, nil
}

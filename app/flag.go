package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}

	dateFlag = &cli.StringFlag{
		Name:    "date",
		Aliases: []string{"d"},
		Usage:   "Act on the day containing this date (e.g. '2023-07-09', 'last tuesday')",
	}

	offsetFlag = &cli.IntFlag{
		Name:    "offset",
		Aliases: []string{"o"},
		Usage:   "Navigate this many weeks forward (positive) or back (negative)",
	}

	setFlag = &cli.StringFlag{
		Name:    "set",
		Aliases: []string{"s"},
		Usage:   "Set the daily goal (e.g. '2h30m')",
	}

	clearFlag = &cli.BoolFlag{
		Name:    "clear",
		Aliases: []string{"c"},
		Usage:   "Unset the daily goal from the given day forward",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Filter sessions by a time period: today, yesterday, 7days, 14days, 30days, 90days, all-time",
	}

	startFlag = &cli.StringFlag{
		Name:  "start",
		Usage: "Filter sessions from this start date",
	}

	endFlag = &cli.StringFlag{
		Name:  "end",
		Usage: "Filter sessions up to this end date",
	}
)

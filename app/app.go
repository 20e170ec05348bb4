// Package app assembles the tally command-line application.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tally-cli/tally/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the tally app instance.
func Get() *cli.App {
	tallyApp := &cli.App{
		Name: "tally",
		Usage: `
		Tally is a personal time tracker for the command-line. Toggle timed
		sessions on a tracked topic, set daily goals, and review totals per
		day and week.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "toggle",
				Usage:  "Start a session, or stop the running one",
				Action: toggleAction,
			},
			{
				Name:   "status",
				Usage:  "Print today's total, session count, and goal progress",
				Action: statusAction,
			},
			{
				Name:   "goal",
				Usage:  "Show or change the daily goal",
				Action: goalAction,
				Flags: []cli.Flag{
					setFlag,
					clearFlag,
					dateFlag,
				},
			},
			{
				Name:   "week",
				Usage:  "Print the weekly summary, one row per day",
				Action: weekAction,
				Flags: []cli.Flag{
					dateFlag,
					offsetFlag,
				},
			},
			{
				Name:   "list",
				Usage:  "List recorded sessions. Defaults to today",
				Action: listAction,
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete sessions by their list number",
				ArgsUsage: "<number>...",
				Action:    deleteAction,
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
				},
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			noColorFlag,
			debugFlag,
		},
		Action: statusAction,
		Before: beforeAction,
	}

	return tallyApp
}

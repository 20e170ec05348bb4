package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tally-cli/tally/internal/config"
	"github.com/tally-cli/tally/internal/models"
	"github.com/tally-cli/tally/internal/timeutil"
	"github.com/tally-cli/tally/internal/topic"
	"github.com/tally-cli/tally/internal/ui"
	"github.com/tally-cli/tally/internal/week"
	"github.com/tally-cli/tally/internal/weekview"
	"github.com/tally-cli/tally/store"
	"github.com/tally-cli/tally/tracker"
)

var appCfg *config.Config

var errSessionNumber = errors.New(
	"session numbers must match the output of the list command",
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

func beforeAction(ctx *cli.Context) error {
	if ctx.Bool("no-color") {
		disableStyling()
	}

	config.InitializePaths()
	config.SetupLogging(ctx.Bool("debug"))

	cfg, err := config.New(
		config.WithViperConfig(config.ConfigFilePath()),
	)
	if err != nil {
		return err
	}

	appCfg = cfg
	ui.DarkTheme = cfg.Display.DarkTheme

	return nil
}

// newTracker opens the database and loads the configured topic. The caller
// closes the returned client.
func newTracker() (*tracker.Tracker, *store.Client, error) {
	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return nil, nil, err
	}

	tr, err := tracker.New(db, appCfg, topic.Env{})
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return tr, db, nil
}

// parseDate resolves a --date flag value, defaulting to now.
func parseDate(ctx *cli.Context) (time.Time, error) {
	loc := appCfg.Calendar.Location

	val := ctx.String("date")
	if val == "" {
		return time.Now().In(loc), nil
	}

	return dateparse.ParseIn(val, loc)
}

func toggleAction(ctx *cli.Context) error {
	tr, db, err := newTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	events, err := tr.Toggle()
	if err != nil {
		return err
	}

	for _, ev := range events {
		switch e := ev.(type) {
		case topic.SessionStarted:
			pterm.Success.Printfln(
				"Session started at %s",
				e.At.Format("03:04:05 PM"),
			)
		case topic.SessionRecorded:
			pterm.Success.Printfln(
				"Session recorded: %s (%s to %s)",
				ui.Green(timeutil.FormatSeconds(e.Session.Duration())),
				e.Session.Start.Format("03:04:05 PM"),
				e.Session.End.Format("03:04:05 PM"),
			)
		}
	}

	slog.InfoContext(ctx.Context, "toggled session",
		slog.Int("events", len(events)))

	return nil
}

func statusAction(ctx *cli.Context) error {
	tr, db, err := newTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := tr.Status()
	if err != nil {
		return err
	}

	if !s.HasData {
		pterm.Info.Println(
			"No sessions tracked yet. Run 'tally toggle' to start one",
		)
		return nil
	}

	goalTitle := weekview.Placeholder
	if s.Goal != nil {
		goalTitle = timeutil.FormatSeconds(*s.Goal)
	}

	pterm.Printfln(
		"%s / %s",
		ui.Highlight(timeutil.FormatSeconds(s.TodayTotal)),
		goalTitle,
	)

	if s.Running {
		pterm.Success.Printfln(
			"Tracking since %s",
			s.ActiveSince.Format("03:04:05 PM"),
		)
	} else {
		pterm.Info.Println("Not tracking")
	}

	if s.GoalComplete {
		pterm.Println(ui.Green("Goal complete"))
	}

	unit := "sessions"
	if s.SessionCount == 1 {
		unit = "session"
	}

	pterm.Printfln("%d %s today", s.SessionCount, unit)

	return nil
}

func goalAction(ctx *cli.Context) error {
	tr, db, err := newTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	if !ctx.IsSet("set") && !ctx.Bool("clear") {
		g := topic.CurrentGoal(tr.Topic())
		if g == nil || g.Duration == nil {
			pterm.Info.Println("No daily goal is set")
			return nil
		}

		pterm.Printfln(
			"Daily goal: %s",
			ui.Highlight(timeutil.FormatSeconds(*g.Duration)),
		)

		return nil
	}

	at, err := parseDate(ctx)
	if err != nil {
		return err
	}

	var goal *time.Duration

	if ctx.IsSet("set") {
		d, err := time.ParseDuration(ctx.String("set"))
		if err != nil {
			return fmt.Errorf("invalid goal duration: %w", err)
		}

		goal = &d
	}

	events, err := tr.SetGoal(goal, at)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		pterm.Info.Println("The goal is unchanged")
		return nil
	}

	if goal == nil {
		pterm.Success.Println("Daily goal cleared")
	} else {
		pterm.Success.Printfln(
			"Daily goal set to %s",
			timeutil.FormatSeconds(*goal),
		)
	}

	return nil
}

func weekAction(ctx *cli.Context) error {
	tr, db, err := newTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	date, err := parseDate(ctx)
	if err != nil {
		return err
	}

	tw, err := tr.Week(date)
	if err != nil {
		return err
	}

	tw, err = offsetWeek(tr, tw, ctx.Int("offset"))
	if err != nil {
		return err
	}

	v := weekview.Project(tw, time.Now().In(appCfg.Calendar.Location), tr.Options())

	pterm.DefaultSection.Printfln("%s: %s", v.Title, v.Subtitle)
	printWeekTable(v)

	return nil
}

func listAction(ctx *cli.Context) error {
	tr, db, err := newTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	filter, err := config.Filter(ctx)
	if err != nil {
		return err
	}

	sessions := tr.SessionsIn(filter.StartTime, filter.EndTime)
	if len(sessions) == 0 {
		pterm.Info.Println("No sessions found for the specified time range")
		return nil
	}

	printSessionsTable(sessions)

	return nil
}

func deleteAction(ctx *cli.Context) error {
	tr, db, err := newTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	filter, err := config.Filter(ctx)
	if err != nil {
		return err
	}

	sessions := tr.SessionsIn(filter.StartTime, filter.EndTime)

	for _, arg := range ctx.Args().Slice() {
		num, err := strconv.Atoi(arg)
		if err != nil || num < 1 || num > len(sessions) {
			return fmt.Errorf("%w: %q", errSessionNumber, arg)
		}

		sess := sessions[num-1]

		if _, err := tr.DeleteSession(sess.ID); err != nil {
			return err
		}

		pterm.Success.Printfln(
			"Deleted session %d (%s)",
			num,
			sess.Start.Format("Jan 02, 2006 03:04 PM"),
		)
	}

	return nil
}

func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "vi"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, config.ConfigFilePath())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

func offsetWeek(
	tr *tracker.Tracker,
	tw models.TopicWeek,
	offset int,
) (models.TopicWeek, error) {
	cal := tr.Calendar()

	for offset > 0 {
		w, err := week.Next(tw.Week, cal)
		if err != nil {
			return models.TopicWeek{}, err
		}

		tw.Week = w
		offset--
	}

	for offset < 0 {
		w, err := week.Previous(tw.Week, cal)
		if err != nil {
			return models.TopicWeek{}, err
		}

		tw.Week = w
		offset++
	}

	return tw, nil
}

func printWeekTable(v weekview.ViewData) {
	tableBody := make([][]string, 0, len(v.Days)+1)
	tableBody = append(tableBody, []string{"", "DAY", "DURATION", "GOAL"})

	for _, day := range v.Days {
		duration := day.Duration
		if day.Indicator == weekview.IndicatorComplete {
			duration = ui.Green(duration)
		}

		tableBody = append(tableBody, []string{
			day.Indicator.String(),
			day.Title,
			duration,
			day.Goal,
		})
	}

	ui.PrintTable(tableBody, os.Stdout)
}

// printSessionsTable prints a session table to the command-line.
func printSessionsTable(sessions []models.Session) {
	tableBody := make([][]string, len(sessions))

	for i := range sessions {
		sess := sessions[i]

		tableBody[i] = []string{
			fmt.Sprintf("%d", i+1),
			sess.Start.Format("Jan 02, 2006 03:04 PM"),
			sess.End.Format("Jan 02, 2006 03:04 PM"),
			timeutil.FormatSeconds(sess.Duration()),
		}
	}

	tableBody = append([][]string{
		{"#", "START DATE", "END DATE", "DURATION"},
	}, tableBody...)

	ui.PrintTable(tableBody, os.Stdout)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/MrG-Man/Acca-Tracker/internal/app"
	"github.com/MrG-Man/Acca-Tracker/internal/config"
	"github.com/MrG-Man/Acca-Tracker/internal/platform/logging"
	"github.com/MrG-Man/Acca-Tracker/internal/usecase"
)

// selections is the admin tool for the weekly panel: list the
// selectable fixtures, claim and release matches, confirm an
// incomplete week and print the season table.
func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	application, err := app.New(ctx, cfg, logger, app.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "build app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "fixtures":
		err = runFixtures(ctx, application, args)
	case "assign":
		err = runAssign(ctx, application, args)
	case "unassign":
		err = runUnassign(ctx, application, args)
	case "override":
		err = runOverride(ctx, application, args)
	case "week":
		err = runWeek(ctx, application, args)
	case "standings":
		err = runStandings(ctx, application)
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func saturdayFlag(fs *flag.FlagSet) *string {
	return fs.String("saturday", "", "target Saturday (YYYY-MM-DD, default: next)")
}

func resolveSaturday(application *app.App, value string) string {
	if value != "" {
		return value
	}
	return application.Catalog.NextSaturday()
}

func runFixtures(ctx context.Context, application *app.App, args []string) error {
	fs := flag.NewFlagSet("fixtures", flag.ExitOnError)
	saturday := saturdayFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := application.Catalog.ListSelectableFixtures(ctx, resolveSaturday(application, *saturday))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Saturday %s: %d fixtures\n", result.Saturday, len(result.Matches))
	fmt.Fprintln(w, "MATCH ID\tLEAGUE\tFIXTURE\tVENUE")
	for _, m := range result.Matches {
		fmt.Fprintf(w, "%s\t%s\t%s v %s\t%s\n", m.ID(), m.League, m.HomeTeam, m.AwayTeam, m.Venue)
	}
	if len(result.FailedLeagues) > 0 {
		fmt.Fprintf(w, "unavailable leagues: %v\n", result.FailedLeagues)
	}
	return w.Flush()
}

func runAssign(ctx context.Context, application *app.App, args []string) error {
	fs := flag.NewFlagSet("assign", flag.ExitOnError)
	saturday := saturdayFlag(fs)
	selector := fs.String("selector", "", "panel member making the pick")
	matchID := fs.String("match", "", "match identity from the fixtures listing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	assignment, err := application.Ledger.Assign(ctx, usecase.AssignInput{
		Saturday: resolveSaturday(application, *saturday),
		Selector: *selector,
		MatchID:  *matchID,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s has %s v %s (%s)\n",
		assignment.Selector,
		assignment.Match.HomeTeam,
		assignment.Match.AwayTeam,
		assignment.Match.League,
	)
	return nil
}

func runUnassign(ctx context.Context, application *app.App, args []string) error {
	fs := flag.NewFlagSet("unassign", flag.ExitOnError)
	saturday := saturdayFlag(fs)
	selector := fs.String("selector", "", "panel member releasing their pick")
	if err := fs.Parse(args); err != nil {
		return err
	}

	target := resolveSaturday(application, *saturday)
	if err := application.Ledger.Unassign(ctx, usecase.UnassignInput{
		Saturday: target,
		Selector: *selector,
	}); err != nil {
		return err
	}

	fmt.Printf("%s released their pick for %s\n", *selector, target)
	return nil
}

func runOverride(ctx context.Context, application *app.App, args []string) error {
	fs := flag.NewFlagSet("override", flag.ExitOnError)
	saturday := saturdayFlag(fs)
	actor := fs.String("actor", "", "who is confirming the incomplete week")
	reason := fs.String("reason", "", "why the week goes ahead short-handed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	target := resolveSaturday(application, *saturday)
	if err := application.Ledger.ConfirmOverride(ctx, usecase.OverrideInput{
		Saturday: target,
		Actor:    *actor,
		Reason:   *reason,
	}); err != nil {
		return err
	}

	fmt.Printf("week %s confirmed incomplete by %s\n", target, *actor)
	return nil
}

func runWeek(ctx context.Context, application *app.App, args []string) error {
	fs := flag.NewFlagSet("week", flag.ExitOnError)
	saturday := saturdayFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	target := resolveSaturday(application, *saturday)
	state, err := application.Ledger.GetWeekState(ctx, target)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Saturday %s: %d/%d assigned, complete=%t\n",
		state.Saturday, len(state.Assignments), len(application.Ledger.Panel()), state.IsComplete())
	fmt.Fprintln(w, "SELECTOR\tFIXTURE\tLEAGUE")
	for _, selector := range application.Ledger.Panel() {
		assignment, ok := state.Assignments[selector]
		if !ok {
			fmt.Fprintf(w, "%s\t-\t-\n", selector)
			continue
		}
		fmt.Fprintf(w, "%s\t%s v %s\t%s\n",
			selector, assignment.Match.HomeTeam, assignment.Match.AwayTeam, assignment.Match.League)
	}
	if state.Override != nil && state.Override.Confirmed {
		fmt.Fprintf(w, "override by %s: %s\n", state.Override.Actor, state.Override.Reason)
	}
	return w.Flush()
}

func runStandings(ctx context.Context, application *app.App) error {
	rows, err := application.Standings.Standings(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "POS\tSELECTOR\tPOINTS\tLANDED\tMISSED")
	for i, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\n", i+1, row.Selector, row.Points, row.Landed, row.Missed)
	}
	return w.Flush()
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: selections <fixtures|assign|unassign|override|week|standings> [flags]")
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintln(os.Stderr, "  selections fixtures")
	fmt.Fprintln(os.Stderr, "  selections assign -selector 'Glynny' -match 'premier league_arsenal_spurs'")
	fmt.Fprintln(os.Stderr, "  selections unassign -selector 'Glynny'")
	fmt.Fprintln(os.Stderr, "  selections override -actor 'MrG' -reason 'two away this week'")
	fmt.Fprintln(os.Stderr, "  selections standings")
}

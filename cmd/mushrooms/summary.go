package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/spilled-mushrooms/game/engine"
	"github.com/wricardo/spilled-mushrooms/game/runlog"
)

func summaryCommand() *cli.Command {
	return &cli.Command{
		Name:      "summary",
		Usage:     "List archived runs, or show one run in detail",
		ArgsUsage: "[run-id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "runs-db", Value: "data/runs.db", Usage: "Sqlite run archive"},
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum runs to list (0 = all)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, err := runlog.Open(cmd.String("runs-db"))
			if err != nil {
				return fmt.Errorf("open run archive: %w", err)
			}
			defer store.Close()

			if id := cmd.Args().First(); id != "" {
				return showRun(ctx, cmd, store, id)
			}
			return listRuns(ctx, cmd, store, int(cmd.Int("limit")))
		},
	}
}

func listRuns(ctx context.Context, cmd *cli.Command, store *runlog.SQLiteStore, limit int) error {
	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	out := writer(cmd)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No archived runs")
		return nil
	}

	wins := 0
	for _, run := range runs {
		if run.Victory {
			wins++
		}
		fmt.Fprintf(out, "%s  %s  %-12s %-8s day %d  %3d gathered  %3d left\n",
			run.ID[:8], run.EndedAt.Local().Format("2006-01-02 15:04"), run.ConfigName,
			run.Outcome(), run.Days, run.TotalCollected, run.MushroomsLeft)
	}
	fmt.Fprintf(out, "%d runs, %d won\n", len(runs), wins)
	return nil
}

func showRun(ctx context.Context, cmd *cli.Command, store *runlog.SQLiteStore, id string) error {
	run, err := store.GetRun(ctx, id)
	if err != nil {
		return err
	}

	out := writer(cmd)
	fmt.Fprintf(out, "Run %s (%s)\n", run.ID, run.ConfigName)
	fmt.Fprintf(out, "Outcome: %s after %d days and %d turns\n", run.Outcome(), run.Days, run.Turns)
	fmt.Fprintf(out, "Roster: %s\n", strings.Join(run.Roster, ", "))
	fmt.Fprintf(out, "Gathered %d, left %d\n", run.TotalCollected, run.MushroomsLeft)
	for _, c := range run.Critters {
		kind := c.Type
		if c.Duplicate {
			kind += " (copy)"
		}
		where := "queue"
		if c.LastLocation != engine.NoLocation {
			where = fmt.Sprintf("location %d", c.LastLocation)
		}
		fmt.Fprintf(out, "  #%d %-16s %d/%d  %-9s gathered %d, last seen at %s\n",
			c.CritterID, kind, c.MushroomsPerDay, c.Lifespan, c.Status, c.Collected, where)
	}
	return nil
}

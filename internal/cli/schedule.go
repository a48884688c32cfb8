package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sky-flux/recall"
	"github.com/sky-flux/recall/review"
	"github.com/urfave/cli/v3"
)

func cmdSchedule(e *env) *cli.Command {
	var at string

	return &cli.Command{
		Name:      "schedule",
		Aliases:   []string{"s"},
		Usage:     "Schedule the next review of a completed module from its score (0.0-1.0)",
		ArgsUsage: "<module-id> <score>",
		Flags:     []cli.Flag{atFlag(&at)},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireArgs(c, 2, "<module-id> <score>"); err != nil {
				return err
			}
			score, err := strconv.ParseFloat(c.Args().Get(1), 64)
			if err != nil {
				return goerr.Wrap(err, "invalid score", goerr.V("score", c.Args().Get(1)))
			}
			when, err := parseAt(at)
			if err != nil {
				return err
			}

			rec, err := e.scheduler.ScheduleModuleReview(ctx, c.Args().Get(0), score, when)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.Root().Writer, "graded %s (score %.2f)\n", recall.ScoreToQuality(score).Label(), score)
			printRecord(c.Root().Writer, rec, e.scheduler.Now())
			return nil
		},
	}
}

func cmdReview(e *env) *cli.Command {
	var at string

	return &cli.Command{
		Name:      "review",
		Aliases:   []string{"r"},
		Usage:     "Record a self-rated review (quality 0-5 or its name, e.g. CorrectEasy)",
		ArgsUsage: "<module-id> <quality>",
		Flags:     []cli.Flag{atFlag(&at)},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireArgs(c, 2, "<module-id> <quality>"); err != nil {
				return err
			}
			q, err := recall.ParseQuality(c.Args().Get(1))
			if err != nil {
				return err
			}
			when, err := parseAt(at)
			if err != nil {
				return err
			}

			rec, err := e.scheduler.RecordReview(ctx, review.Result{
				ModuleID:  c.Args().Get(0),
				Quality:   q,
				Timestamp: when,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(c.Root().Writer, "rated %s: %s\n", q.Label(), q.Description())
			printRecord(c.Root().Writer, rec, e.scheduler.Now())
			return nil
		},
	}
}

func cmdReset(e *env) *cli.Command {
	return &cli.Command{
		Name:      "reset",
		Usage:     "Remove the review schedule of a module",
		ArgsUsage: "<module-id>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireArgs(c, 1, "<module-id>"); err != nil {
				return err
			}
			id := c.Args().First()
			if err := e.scheduler.ResetModuleReview(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(c.Root().Writer, "reset %s\n", id)
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdDue(e *env) *cli.Command {
	return &cli.Command{
		Name:  "due",
		Usage: "List modules due for review now",
		Action: func(ctx context.Context, c *cli.Command) error {
			w := c.Root().Writer
			due := e.scheduler.DueReviews(ctx)
			if len(due) == 0 {
				fmt.Fprintln(w, "No reviews due.")
				return nil
			}
			now := e.scheduler.Now()
			for _, rec := range due {
				printRecord(w, rec, now)
			}
			return nil
		},
	}
}

func cmdUpcoming(e *env) *cli.Command {
	return &cli.Command{
		Name:      "upcoming",
		Usage:     "List reviews coming up within the next N days (default 7)",
		ArgsUsage: "[days]",
		Action: func(ctx context.Context, c *cli.Command) error {
			days := 7
			if c.Args().Present() {
				n, err := strconv.Atoi(c.Args().First())
				if err != nil {
					return goerr.Wrap(err, "invalid days", goerr.V("days", c.Args().First()))
				}
				days = n
			}

			w := c.Root().Writer
			upcoming := e.scheduler.UpcomingReviews(ctx, days)
			if len(upcoming) == 0 {
				fmt.Fprintf(w, "No reviews in the next %d days.\n", days)
				return nil
			}
			now := e.scheduler.Now()
			for _, rec := range upcoming {
				printRecord(w, rec, now)
			}
			return nil
		},
	}
}

func cmdStats(e *env) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show review statistics",
		Action: func(ctx context.Context, c *cli.Command) error {
			s := e.scheduler.Stats(ctx)
			w := c.Root().Writer
			fmt.Fprintf(w, "Total reviews:       %d\n", s.TotalReviews)
			fmt.Fprintf(w, "Due today:           %d\n", s.DueToday)
			fmt.Fprintf(w, "Due this week:       %d\n", s.DueThisWeek)
			fmt.Fprintf(w, "Average ease factor: %.2f\n", s.AverageEaseFactor)
			fmt.Fprintf(w, "Retention rate:      %.0f%%\n", s.RetentionRate*100)
			return nil
		},
	}
}

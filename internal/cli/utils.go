package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sky-flux/recall"
	"github.com/urfave/cli/v3"
)

func joinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, flag := range flags {
		result = append(result, flag...)
	}
	return result
}

// atFlag is the optional review instant accepted by mutating commands.
func atFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "at",
		Usage:       "Review time in RFC 3339 (default: now)",
		Destination: dst,
	}
}

func parseAt(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	at, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid --at", goerr.V("at", s))
	}
	return at, nil
}

func requireArgs(c *cli.Command, n int, usage string) error {
	if c.Args().Len() != n {
		return goerr.New("usage: recall "+c.Name+" "+usage, goerr.V("args", c.Args().Slice()))
	}
	return nil
}

func printRecord(w io.Writer, rec recall.ReviewRecord, now time.Time) {
	fmt.Fprintf(w, "%s\tnext review %s (%s)\tinterval %s\tease %.2f\trepetition %d\n",
		rec.ModuleID,
		rec.NextReview.Local().Format(time.DateOnly),
		humanize.RelTime(rec.NextReview, now, "ago", "from now"),
		days(rec.IntervalDays),
		rec.EaseFactor,
		rec.Repetition,
	)
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return humanize.Comma(int64(n)) + " days"
}

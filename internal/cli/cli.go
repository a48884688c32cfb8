package cli

import (
	"context"
	"io"
	"os"
	"slices"

	"github.com/sky-flux/recall/internal/cli/config"
	"github.com/sky-flux/recall/internal/logging"
	"github.com/sky-flux/recall/review"
	"github.com/urfave/cli/v3"
)

// env carries what the root command sets up for its subcommands.
type env struct {
	scheduler *review.Scheduler
}

func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout)
}

func run(ctx context.Context, args []string, w io.Writer) error {
	var (
		loggerCfg    config.Logger
		storeCfg     config.Store
		schedulerCfg config.Scheduler
		closers      []func()
		e            env
	)

	app := &cli.Command{
		Name:   "recall",
		Usage:  "SM-2 spaced-repetition review scheduler",
		Writer: w,
		Flags:  joinFlags(loggerCfg.Flags(), storeCfg.Flags(), schedulerCfg.Flags()),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := loggerCfg.Configure()
			closers = append(closers, closer)
			if err != nil {
				return ctx, err
			}
			ctx = logging.With(ctx, logger)
			logger.Debug("base options", "logger", loggerCfg, "store", &storeCfg, "scheduler", &schedulerCfg)

			st, closeStore, err := storeCfg.Configure(ctx)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, closeStore)

			cfg, err := schedulerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			e.scheduler, err = review.New(st, cfg)
			if err != nil {
				return ctx, err
			}
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			for _, closer := range slices.Backward(closers) {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdSchedule(&e),
			cmdReview(&e),
			cmdDue(&e),
			cmdUpcoming(&e),
			cmdStats(&e),
			cmdReset(&e),
			cmdExport(&e),
			cmdImport(&e),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}

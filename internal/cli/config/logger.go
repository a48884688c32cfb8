package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sky-flux/recall/internal/logging"
	"github.com/sky-flux/recall/internal/safe"
	"github.com/urfave/cli/v3"
)

type Logger struct {
	level      string
	format     string
	output     string
	quiet      bool
	stacktrace bool
}

func (x *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Category:    "logging",
			Aliases:     []string{"l"},
			Sources:     cli.EnvVars("RECALL_LOG_LEVEL"),
			Usage:       "Set log level [debug|info|warn|error]",
			Value:       "warn",
			Destination: &x.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Category:    "logging",
			Sources:     cli.EnvVars("RECALL_LOG_FORMAT"),
			Usage:       "Set log format [auto|console|json] (auto: console on a terminal, json otherwise)",
			Value:       "auto",
			Destination: &x.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Category:    "logging",
			Sources:     cli.EnvVars("RECALL_LOG_OUTPUT"),
			Usage:       "Set log output (create file other than '-', 'stdout', 'stderr')",
			Value:       "stderr",
			Destination: &x.output,
		},
		&cli.BoolFlag{
			Name:        "log-quiet",
			Category:    "logging",
			Aliases:     []string{"q"},
			Usage:       "Quiet mode (no log output)",
			Sources:     cli.EnvVars("RECALL_LOG_QUIET"),
			Destination: &x.quiet,
		},
		&cli.BoolFlag{
			Name:        "log-stacktrace",
			Category:    "logging",
			Usage:       "Show stacktrace (only for console format)",
			Sources:     cli.EnvVars("RECALL_LOG_STACKTRACE"),
			Destination: &x.stacktrace,
		},
	}
}

func (x Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", x.level),
		slog.String("format", x.format),
		slog.String("output", x.output),
	)
}

// Configure sets up the default logger and returns it with a closer. The
// closer is safe to call even when an error is returned.
func (x *Logger) Configure() (*slog.Logger, func(), error) {
	closer := func() {}
	if x.quiet {
		logging.Quiet()
		return logging.Default(), closer, nil
	}

	formatMap := map[string]logging.Format{
		"auto":    logging.FormatAuto,
		"":        logging.FormatAuto,
		"console": logging.FormatConsole,
		"json":    logging.FormatJSON,
	}
	format, ok := formatMap[x.format]
	if !ok {
		return nil, closer, goerr.New("invalid log format", goerr.V("format", x.format))
	}

	levelMap := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	level, ok := levelMap[x.level]
	if !ok {
		return nil, closer, goerr.New("invalid log level", goerr.V("level", x.level))
	}

	var output io.Writer
	switch x.output {
	case "stdout", "-":
		output = os.Stdout
	case "stderr", "":
		output = os.Stderr
	default:
		f, err := os.OpenFile(filepath.Clean(x.output), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
		if err != nil {
			return nil, closer, goerr.Wrap(err, "failed to open log file", goerr.V("path", x.output))
		}
		output = f
		closer = func() {
			safe.Close(context.Background(), f)
		}
	}

	logger := logging.New(output, level, format, x.stacktrace)
	logging.SetDefault(logger)

	return logger, closer, nil
}

package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/sky-flux/recall/internal/cli/config"
	"github.com/sky-flux/recall/store"
	"github.com/urfave/cli/v3"
)

// parse runs a throwaway command so flag values and defaults land in the
// config structs.
func parse(t *testing.T, flags []cli.Flag, args ...string) {
	t.Helper()
	cmd := &cli.Command{
		Name:   "test",
		Flags:  flags,
		Action: func(context.Context, *cli.Command) error { return nil },
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...))).Required()
}

func TestLogger_Configure(t *testing.T) {
	t.Run("quiet", func(t *testing.T) {
		var cfg config.Logger
		parse(t, cfg.Flags(), "--log-quiet")
		logger, closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		defer closer()
		gt.V(t, logger).NotNil()
	})

	t.Run("log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "recall.log")
		var cfg config.Logger
		parse(t, cfg.Flags(), "--log-output", path, "--log-format", "json", "--log-level", "info")
		logger, closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		logger.Info("hello", "secret_token", "abc123")
		closer()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.S(t, string(data)).Contains("hello").NotContains("abc123")
	})

	t.Run("auto format writes json to a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "recall.log")
		var cfg config.Logger
		parse(t, cfg.Flags(), "--log-output", path, "--log-level", "info")
		logger, closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		logger.Info("auto detected")
		closer()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.S(t, string(data)).Contains(`"msg":"auto detected"`)
	})

	t.Run("invalid format", func(t *testing.T) {
		var cfg config.Logger
		parse(t, cfg.Flags(), "--log-format", "xml")
		_, closer, err := cfg.Configure()
		closer()
		gt.Error(t, err)
	})

	t.Run("invalid level", func(t *testing.T) {
		var cfg config.Logger
		parse(t, cfg.Flags(), "--log-level", "verbose")
		_, closer, err := cfg.Configure()
		closer()
		gt.Error(t, err)
	})
}

func TestStore_Configure(t *testing.T) {
	ctx := context.Background()

	t.Run("json default path", func(t *testing.T) {
		var cfg config.Store
		parse(t, cfg.Flags())
		gt.Equal(t, cfg.Path(), "progress.json")

		s, closer, err := cfg.Configure(ctx)
		gt.NoError(t, err).Required()
		defer closer()
		_, ok := s.(*store.File)
		gt.True(t, ok)
	})

	t.Run("sqlite", func(t *testing.T) {
		var cfg config.Store
		parse(t, cfg.Flags(), "--store", "sqlite", "--data", filepath.Join(t.TempDir(), "r.db"))

		s, closer, err := cfg.Configure(ctx)
		gt.NoError(t, err).Required()
		defer closer()
		_, ok := s.(*store.SQLite)
		gt.True(t, ok)
	})

	t.Run("sqlite default path", func(t *testing.T) {
		var cfg config.Store
		parse(t, cfg.Flags(), "--store", "sqlite")
		gt.Equal(t, cfg.Path(), "recall.db")
	})

	t.Run("memory", func(t *testing.T) {
		var cfg config.Store
		parse(t, cfg.Flags(), "--store", "memory")

		s, closer, err := cfg.Configure(ctx)
		gt.NoError(t, err).Required()
		defer closer()
		_, ok := s.(*store.Memory)
		gt.True(t, ok)
	})

	t.Run("unknown backend", func(t *testing.T) {
		var cfg config.Store
		parse(t, cfg.Flags(), "--store", "redis")
		_, _, err := cfg.Configure(ctx)
		gt.Error(t, err)
	})
}

func TestScheduler_Configure(t *testing.T) {
	write := func(t *testing.T, body string) string {
		path := filepath.Join(t.TempDir(), "recall.yaml")
		gt.NoError(t, os.WriteFile(path, []byte(body), 0600)).Required()
		return path
	}

	t.Run("no file", func(t *testing.T) {
		var cfg config.Scheduler
		parse(t, cfg.Flags())
		got, err := cfg.Configure()
		gt.NoError(t, err).Required()
		gt.Equal(t, got.StatsWindowDays, 0)
		gt.Equal(t, got.Engine.DefaultEaseFactor, 0.0)
	})

	t.Run("full file", func(t *testing.T) {
		var cfg config.Scheduler
		parse(t, cfg.Flags(), "--config", write(t, "default_ease_factor: 2.3\nmin_ease_factor: 1.4\nstats_window_days: 14\n"))
		got, err := cfg.Configure()
		gt.NoError(t, err).Required()
		gt.Equal(t, got.Engine.DefaultEaseFactor, 2.3)
		gt.Equal(t, got.Engine.MinEaseFactor, 1.4)
		gt.Equal(t, got.StatsWindowDays, 14)
	})

	t.Run("empty file", func(t *testing.T) {
		var cfg config.Scheduler
		parse(t, cfg.Flags(), "--config", write(t, ""))
		_, err := cfg.Configure()
		gt.NoError(t, err)
	})

	t.Run("unknown key", func(t *testing.T) {
		var cfg config.Scheduler
		parse(t, cfg.Flags(), "--config", write(t, "ease: 2.0\n"))
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		var cfg config.Scheduler
		parse(t, cfg.Flags(), "--config", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := cfg.Configure()
		gt.Error(t, err)
	})
}

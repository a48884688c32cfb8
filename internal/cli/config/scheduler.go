package config

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sky-flux/recall/review"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Scheduler loads scheduler tuning from an optional YAML file:
//
//	default_ease_factor: 2.5
//	min_ease_factor: 1.3
//	stats_window_days: 7
type Scheduler struct {
	path string
}

type schedulerFile struct {
	DefaultEaseFactor float64 `yaml:"default_ease_factor"`
	MinEaseFactor     float64 `yaml:"min_ease_factor"`
	StatsWindowDays   int     `yaml:"stats_window_days"`
}

func (x *Scheduler) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Scheduler config file (YAML)",
			Category:    "Scheduler",
			Destination: &x.path,
			Sources:     cli.EnvVars("RECALL_CONFIG"),
		},
	}
}

func (x *Scheduler) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("config", x.path),
	)
}

// Configure returns the scheduler config; without a file every field keeps
// its zero value so the library defaults apply.
func (x *Scheduler) Configure() (review.Config, error) {
	if x.path == "" {
		return review.Config{}, nil
	}

	data, err := os.ReadFile(filepath.Clean(x.path))
	if err != nil {
		return review.Config{}, goerr.Wrap(err, "failed to read scheduler config", goerr.V("path", x.path))
	}

	var file schedulerFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return review.Config{}, goerr.Wrap(err, "failed to parse scheduler config", goerr.V("path", x.path))
	}

	var cfg review.Config
	cfg.Engine.DefaultEaseFactor = file.DefaultEaseFactor
	cfg.Engine.MinEaseFactor = file.MinEaseFactor
	cfg.StatsWindowDays = file.StatsWindowDays
	return cfg, nil
}

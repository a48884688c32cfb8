package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sky-flux/recall/internal/safe"
	"github.com/sky-flux/recall/review"
	"github.com/sky-flux/recall/store"
	"github.com/urfave/cli/v3"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var defaultDataPath = map[string]string{
	BackendJSON:   "progress.json",
	BackendSQLite: "recall.db",
}

// Store selects the persistence backend for review records.
type Store struct {
	backend string
	data    string
}

func (x *Store) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "store",
			Usage:       "Storage backend [json|sqlite|memory]",
			Category:    "Storage",
			Value:       BackendJSON,
			Destination: &x.backend,
			Sources:     cli.EnvVars("RECALL_STORE"),
		},
		&cli.StringFlag{
			Name:        "data",
			Aliases:     []string{"d"},
			Usage:       "Data file path (default: progress.json for json, recall.db for sqlite)",
			Category:    "Storage",
			Destination: &x.data,
			Sources:     cli.EnvVars("RECALL_DATA"),
		},
	}
}

func (x *Store) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", x.backend),
		slog.String("data", x.Path()),
	)
}

// Path returns the data path in effect for the selected backend.
func (x *Store) Path() string {
	if x.data != "" {
		return x.data
	}
	return defaultDataPath[x.backend]
}

// Configure opens the selected backend. The returned closer releases it and
// is never nil on success.
func (x *Store) Configure(ctx context.Context) (review.Store, func(), error) {
	switch x.backend {
	case BackendJSON, "":
		return store.NewOSFile(x.Path()), func() {}, nil

	case BackendSQLite:
		db, err := store.OpenSQLite(x.Path())
		if err != nil {
			return nil, nil, err
		}
		return db, func() { safe.Close(ctx, db) }, nil

	case BackendMemory:
		return store.NewMemory(), func() {}, nil

	default:
		return nil, nil, goerr.New("invalid storage backend", goerr.V("store", x.backend))
	}
}

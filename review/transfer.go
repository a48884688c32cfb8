package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sky-flux/recall"
	"github.com/sky-flux/recall/internal/logging"
)

// SnapshotVersion is the format version written by Export.
const SnapshotVersion = "1.0"

// Snapshot is a portable copy of the review record collection.
type Snapshot struct {
	Version    string                `json:"version" yaml:"version"`
	ExportedAt time.Time             `json:"exported_at" yaml:"exported_at"`
	Reviews    []recall.ReviewRecord `json:"reviews" yaml:"reviews"`
}

// Export returns the full collection. Unlike the display queries, a store
// read failure is returned to the caller.
func (s *Scheduler) Export(ctx context.Context) (Snapshot, error) {
	items, err := s.store.GetReviewItems(ctx)
	if err != nil {
		return Snapshot{}, goerr.Wrap(err, "failed to load review records", goerr.T(TagPersistenceRead))
	}
	if items == nil {
		items = []recall.ReviewRecord{}
	}
	return Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: s.now(),
		Reviews:    items,
	}, nil
}

// Import replaces the collection with the snapshot's records. Records are
// normalized (ease floor, interval >= 1, repetition >= 0); when a module ID
// appears more than once the last occurrence wins.
func (s *Scheduler) Import(ctx context.Context, snap Snapshot) error {
	if snap.Version != SnapshotVersion {
		return goerr.Wrap(ErrInvalidSnapshot, "unsupported snapshot version",
			goerr.T(TagValidation), goerr.TV(VersionKey, snap.Version))
	}

	items := make([]recall.ReviewRecord, 0, len(snap.Reviews))
	for i, rec := range snap.Reviews {
		if rec.ModuleID == "" {
			return goerr.Wrap(ErrInvalidSnapshot, "review without module ID",
				goerr.T(TagValidation), goerr.V("index", i))
		}
		items = upsert(items, s.engine.Normalize(rec))
	}

	if err := s.store.SaveReviewItems(ctx, items); err != nil {
		return goerr.Wrap(err, "failed to save review records",
			goerr.T(TagPersistenceWrite), goerr.TV(CountKey, len(items)))
	}
	logging.From(ctx).Info("reviews imported",
		slog.Int("count", len(items)),
		slog.Time("exported_at", snap.ExportedAt),
	)
	return nil
}

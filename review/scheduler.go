package review

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sky-flux/recall"
	"github.com/sky-flux/recall/internal/logging"
)

// Config configures a Scheduler.
// Zero values produce sensible defaults; see field comments.
type Config struct {
	Engine          recall.EngineConfig `json:"engine" yaml:"engine"`
	StatsWindowDays int                 `json:"stats_window_days" yaml:"stats_window_days"` // zero → 7
	Now             func() time.Time    `json:"-" yaml:"-"`                                 // nil → time.Now
}

// Scheduler runs the SM-2 Engine over the record collection held by a Store.
//
// Every mutating operation reads the full collection, applies one change and
// writes the full collection back. Two concurrent mutations may therefore lose
// one of the updates; callers needing multi-writer safety must serialize.
type Scheduler struct {
	engine      *recall.Engine
	store       Store
	now         func() time.Time
	statsWindow int
}

// Result is a learner's self-rated outcome of one review session.
type Result struct {
	ModuleID  string         `json:"module_id"`
	Quality   recall.Quality `json:"quality"`
	Timestamp time.Time      `json:"timestamp"` // zero → now
}

// New creates a Scheduler backed by store.
func New(store Store, cfg Config) (*Scheduler, error) {
	if store == nil {
		return nil, goerr.New("store is required", goerr.T(TagValidation))
	}
	engine, err := recall.NewEngine(cfg.Engine)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid engine config", goerr.T(TagValidation))
	}

	window := cfg.StatsWindowDays
	if window == 0 {
		window = 7
	}
	if window < 0 {
		return nil, goerr.New("stats window must be positive",
			goerr.T(TagValidation), goerr.V("stats_window_days", window))
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Scheduler{
		engine:      engine,
		store:       store,
		now:         now,
		statsWindow: window,
	}, nil
}

// Engine returns the Engine used for interval computation.
func (s *Scheduler) Engine() *recall.Engine {
	return s.engine
}

// Now returns the current instant of the scheduler's clock.
func (s *Scheduler) Now() time.Time {
	return s.now()
}

// ScheduleModuleReview grades a completed module from its completion score
// (a fraction in [0, 1]) and stores the resulting record. A zero at means now.
func (s *Scheduler) ScheduleModuleReview(ctx context.Context, moduleID string, score float64, at time.Time) (recall.ReviewRecord, error) {
	if moduleID == "" {
		return recall.ReviewRecord{}, goerr.Wrap(ErrEmptyModuleID, "cannot schedule review", goerr.T(TagValidation))
	}
	if math.IsNaN(score) {
		return recall.ReviewRecord{}, goerr.Wrap(recall.ErrInvalidScore, "cannot schedule review",
			goerr.T(TagValidation), goerr.TV(ModuleIDKey, moduleID), goerr.TV(ScoreKey, score))
	}
	return s.apply(ctx, moduleID, recall.ScoreToQuality(score), s.instant(at))
}

// RecordReview stores the outcome of a review the learner rated explicitly.
func (s *Scheduler) RecordReview(ctx context.Context, result Result) (recall.ReviewRecord, error) {
	if result.ModuleID == "" {
		return recall.ReviewRecord{}, goerr.Wrap(ErrEmptyModuleID, "cannot record review", goerr.T(TagValidation))
	}
	if !result.Quality.IsValid() {
		return recall.ReviewRecord{}, goerr.Wrap(recall.ErrInvalidQuality, "cannot record review",
			goerr.T(TagValidation),
			goerr.TV(ModuleIDKey, result.ModuleID),
			goerr.TV(QualityKey, int(result.Quality)))
	}
	return s.apply(ctx, result.ModuleID, result.Quality, s.instant(result.Timestamp))
}

// ResetModuleReview deletes the record of moduleID. Resetting a module that
// has no record is a no-op and does not write to the store.
func (s *Scheduler) ResetModuleReview(ctx context.Context, moduleID string) error {
	if moduleID == "" {
		return goerr.Wrap(ErrEmptyModuleID, "cannot reset review", goerr.T(TagValidation))
	}

	items, err := s.store.GetReviewItems(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to load review records",
			goerr.T(TagPersistenceRead), goerr.TV(ModuleIDKey, moduleID))
	}
	if indexOf(items, moduleID) < 0 {
		logging.From(ctx).Debug("no review to reset", slog.String("module_id", moduleID))
		return nil
	}

	if err := s.store.SaveReviewItems(ctx, without(items, moduleID)); err != nil {
		return goerr.Wrap(err, "failed to save review records",
			goerr.T(TagPersistenceWrite), goerr.TV(ModuleIDKey, moduleID))
	}
	logging.From(ctx).Debug("review reset", slog.String("module_id", moduleID))
	return nil
}

// apply loads the collection, reviews the module's record (seeding a new one
// if needed) and saves the collection with that record replaced.
func (s *Scheduler) apply(ctx context.Context, moduleID string, q recall.Quality, now time.Time) (recall.ReviewRecord, error) {
	items, err := s.store.GetReviewItems(ctx)
	if err != nil {
		return recall.ReviewRecord{}, goerr.Wrap(err, "failed to load review records",
			goerr.T(TagPersistenceRead), goerr.TV(ModuleIDKey, moduleID))
	}

	var rec recall.ReviewRecord
	if i := indexOf(items, moduleID); i >= 0 {
		rec = items[i]
		if rec.EaseFactor <= 0 {
			logging.From(ctx).Warn("stored review has no ease factor, using default",
				slog.String("module_id", moduleID))
		}
	} else {
		rec = s.engine.NewRecord(moduleID, now)
	}

	next, _ := s.engine.ReviewRecord(rec, q, now)
	next.ModuleID = moduleID

	if err := s.store.SaveReviewItems(ctx, upsert(items, next)); err != nil {
		return recall.ReviewRecord{}, goerr.Wrap(err, "failed to save review records",
			goerr.T(TagPersistenceWrite),
			goerr.TV(ModuleIDKey, moduleID),
			goerr.TV(QualityKey, int(q)))
	}

	logging.From(ctx).Debug("review scheduled",
		slog.String("module_id", moduleID),
		slog.String("quality", q.String()),
		slog.Int("interval_days", next.IntervalDays),
		slog.Float64("ease_factor", next.EaseFactor),
		slog.Int("repetition", next.Repetition),
		slog.Time("next_review", next.NextReview),
	)
	return next, nil
}

func (s *Scheduler) instant(at time.Time) time.Time {
	if at.IsZero() {
		return s.now()
	}
	return at
}

func indexOf(items []recall.ReviewRecord, moduleID string) int {
	for i, it := range items {
		if it.ModuleID == moduleID {
			return i
		}
	}
	return -1
}

// upsert returns a copy of items with rec in place of the first record sharing
// its module ID (appended if none). Further duplicates are dropped.
func upsert(items []recall.ReviewRecord, rec recall.ReviewRecord) []recall.ReviewRecord {
	out := make([]recall.ReviewRecord, 0, len(items)+1)
	replaced := false
	for _, it := range items {
		if it.ModuleID != rec.ModuleID {
			out = append(out, it)
			continue
		}
		if !replaced {
			out = append(out, rec)
			replaced = true
		}
	}
	if !replaced {
		out = append(out, rec)
	}
	return out
}

func without(items []recall.ReviewRecord, moduleID string) []recall.ReviewRecord {
	out := make([]recall.ReviewRecord, 0, len(items))
	for _, it := range items {
		if it.ModuleID != moduleID {
			out = append(out, it)
		}
	}
	return out
}

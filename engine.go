package recall

import (
	"encoding/json"
	"fmt"
	"time"
)

// Engine schedules module reviews using the SM-2 algorithm.
// It holds no state besides its configuration and is safe for concurrent use.
type Engine struct {
	algo algo
	cfg  EngineConfig
}

// NewEngine creates an Engine from the given config.
// Zero-value fields are filled with defaults; invalid values return an error.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := ValidateParameters(cfg); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	return &Engine{algo: newAlgo(cfg), cfg: cfg}, nil
}

// Config returns the effective configuration, defaults applied.
func (e *Engine) Config() EngineConfig {
	return e.cfg
}

// Next computes the scheduling state that follows prev after a review graded q
// at now. A nil prev yields the canonical first-time state (due at now,
// interval 1, default ease, repetition 0) without applying q.
//
// Next is pure: the same prev, q and now always give the same result.
// Quality outside [0, 5] is clamped.
func (e *Engine) Next(prev *ReviewRecord, q Quality, now time.Time) ReviewRecord {
	if prev == nil {
		return e.algo.initial(now)
	}
	return e.algo.next(*prev, q, now)
}

// NewRecord returns the canonical first-time state for moduleID.
func (e *Engine) NewRecord(moduleID string, now time.Time) ReviewRecord {
	r := e.algo.initial(now)
	r.ModuleID = moduleID
	return r
}

// ReviewRecord processes a review of the record at the given time.
// It returns the updated record and a review log. The input is not mutated.
func (e *Engine) ReviewRecord(rec ReviewRecord, q Quality, now time.Time) (ReviewRecord, ReviewLog) {
	out := e.algo.next(rec, q, now)
	log := ReviewLog{
		ModuleID:       rec.ModuleID,
		Quality:        q,
		ReviewDatetime: now,
	}
	return out, log
}

// PreviewRecord returns the result of reviewing the record with each grade.
func (e *Engine) PreviewRecord(rec ReviewRecord, now time.Time) map[Quality]ReviewRecord {
	result := make(map[Quality]ReviewRecord, len(Qualities))
	for _, q := range Qualities {
		result[q], _ = e.ReviewRecord(rec, q, now)
	}
	return result
}

// RescheduleRecord replays the given review logs to rebuild the record's state.
// Returns ErrModuleIDMismatch if any log's ModuleID does not match the record.
func (e *Engine) RescheduleRecord(rec ReviewRecord, logs []ReviewLog) (ReviewRecord, error) {
	out := rec
	for _, log := range logs {
		if log.ModuleID != rec.ModuleID {
			return ReviewRecord{}, fmt.Errorf("%w: module %q, log %q", ErrModuleIDMismatch, rec.ModuleID, log.ModuleID)
		}
		out, _ = e.ReviewRecord(out, log.Quality, log.ReviewDatetime)
	}
	return out, nil
}

// Normalize returns rec with malformed fields replaced: missing ease becomes
// the default ease, ease below the floor is raised to it, interval is at
// least 1 and repetition is not negative.
func (e *Engine) Normalize(rec ReviewRecord) ReviewRecord {
	rec = e.algo.sanitize(rec)
	rec.EaseFactor = max(rec.EaseFactor, e.algo.minEase)
	return rec
}

// MarshalJSON implements json.Marshaler. The Engine serializes as its config.
func (e *Engine) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.cfg)
}

// UnmarshalJSON implements json.Unmarshaler.
// It validates the serialized config and rebuilds the Engine from it.
func (e *Engine) UnmarshalJSON(data []byte) error {
	var cfg EngineConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return err
	}
	rebuilt, err := NewEngine(cfg)
	if err != nil {
		return err
	}
	*e = *rebuilt
	return nil
}

package recall

import (
	"math"
	"time"
)

// algo holds the ease bounds used by the SM-2 update rules.
type algo struct {
	defaultEase float64
	minEase     float64
}

func newAlgo(cfg EngineConfig) algo {
	return algo{defaultEase: cfg.DefaultEaseFactor, minEase: cfg.MinEaseFactor}
}

// initial returns the canonical state of a module that was never scheduled:
// due immediately, interval 1, default ease, no repetitions.
func (a *algo) initial(now time.Time) ReviewRecord {
	return ReviewRecord{
		NextReview:   now,
		IntervalDays: 1,
		EaseFactor:   a.defaultEase,
		Repetition:   0,
	}
}

// sanitize substitutes defaults for fields a stored record should never hold:
// missing ease, interval below 1, negative repetition.
func (a *algo) sanitize(r ReviewRecord) ReviewRecord {
	if r.EaseFactor <= 0 || math.IsNaN(r.EaseFactor) {
		r.EaseFactor = a.defaultEase
	}
	if r.IntervalDays < 1 {
		r.IntervalDays = 1
	}
	if r.Repetition < 0 {
		r.Repetition = 0
	}
	return r
}

// nextInterval returns the interval and repetition after a review.
//
//	q >= 3: rep 0 → 1 day, rep 1 → 6 days, else round(I * EF); rep + 1
//	q <  3: 1 day, rep reset to 0
func (a *algo) nextInterval(interval, repetition int, ease float64, q Quality) (int, int) {
	if !q.IsSuccess() {
		return 1, 0
	}
	switch repetition {
	case 0:
		interval = 1
	case 1:
		interval = 6
	default:
		interval = int(math.Round(float64(interval) * ease))
	}
	return max(interval, 1), repetition + 1
}

// nextEase computes EF' = EF + (0.1 - (5-q) * (0.08 + (5-q) * 0.02)),
// clamped to the ease floor.
func (a *algo) nextEase(ease float64, q Quality) float64 {
	d := float64(CorrectEasy - q)
	ease += 0.1 - d*(0.08+d*0.02)
	return math.Max(ease, a.minEase)
}

// next applies one graded review to a prior state at the given instant.
func (a *algo) next(prev ReviewRecord, q Quality, now time.Time) ReviewRecord {
	prev = a.sanitize(prev)
	q = q.clamp()

	interval, repetition := a.nextInterval(prev.IntervalDays, prev.Repetition, prev.EaseFactor, q)
	return ReviewRecord{
		ModuleID:     prev.ModuleID,
		NextReview:   now.AddDate(0, 0, interval),
		IntervalDays: interval,
		EaseFactor:   a.nextEase(prev.EaseFactor, q),
		Repetition:   repetition,
	}
}

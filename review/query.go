package review

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sky-flux/recall"
	"github.com/sky-flux/recall/internal/logging"
)

// Stats summarizes the review record collection.
type Stats struct {
	TotalReviews      int     `json:"total_reviews" yaml:"total_reviews"`
	DueToday          int     `json:"due_today" yaml:"due_today"`
	DueThisWeek       int     `json:"due_this_week" yaml:"due_this_week"`
	AverageEaseFactor float64 `json:"average_ease_factor" yaml:"average_ease_factor"`
	RetentionRate     float64 `json:"retention_rate" yaml:"retention_rate"`
}

// The query methods below feed best-effort displays: a store read failure is
// logged and an empty or default result is returned instead of an error.

// DueReviews returns the records whose review instant is at or before now,
// in store order.
func (s *Scheduler) DueReviews(ctx context.Context) []recall.ReviewRecord {
	items, ok := s.load(ctx, "due_reviews")
	if !ok {
		return []recall.ReviewRecord{}
	}
	return dueAt(items, s.now())
}

// UpcomingReviews returns the records due after now and no later than
// now + days, earliest first. Records already due are not included.
func (s *Scheduler) UpcomingReviews(ctx context.Context, days int) []recall.ReviewRecord {
	items, ok := s.load(ctx, "upcoming_reviews")
	if !ok {
		return []recall.ReviewRecord{}
	}
	return upcomingAt(items, s.now(), days)
}

// Stats returns aggregate counts over the collection. Ratios are rounded to
// two decimals. An empty or unreadable collection yields the default ease
// and a retention rate of 1.
func (s *Scheduler) Stats(ctx context.Context) Stats {
	defaultEase := s.engine.Config().DefaultEaseFactor
	empty := Stats{AverageEaseFactor: defaultEase, RetentionRate: 1}

	items, ok := s.load(ctx, "review_stats")
	if !ok || len(items) == 0 {
		return empty
	}

	now := s.now()
	var sum float64
	var retained int
	for _, it := range items {
		ease := it.EaseFactor
		if ease <= 0 {
			ease = defaultEase
		}
		sum += ease
		if ease >= defaultEase {
			retained++
		}
	}

	total := len(items)
	return Stats{
		TotalReviews:      total,
		DueToday:          len(dueAt(items, now)),
		DueThisWeek:       len(upcomingAt(items, now, s.statsWindow)),
		AverageEaseFactor: round2(sum / float64(total)),
		RetentionRate:     round2(float64(retained) / float64(total)),
	}
}

// IsModuleDue reports whether moduleID has a record that is due now.
func (s *Scheduler) IsModuleDue(ctx context.Context, moduleID string) bool {
	rec, ok := s.lookup(ctx, moduleID)
	return ok && rec.IsDue(s.now())
}

// NextReviewDate returns the review instant of moduleID, if scheduled.
func (s *Scheduler) NextReviewDate(ctx context.Context, moduleID string) (time.Time, bool) {
	rec, ok := s.lookup(ctx, moduleID)
	if !ok {
		return time.Time{}, false
	}
	return rec.NextReview, true
}

// TimeUntilReview returns "Due now", "Due tomorrow" or "Due in N days" for a
// scheduled module and an empty string otherwise.
func (s *Scheduler) TimeUntilReview(ctx context.Context, moduleID string) string {
	rec, ok := s.lookup(ctx, moduleID)
	if !ok {
		return ""
	}
	return rec.DueLabel(s.now())
}

func (s *Scheduler) lookup(ctx context.Context, moduleID string) (recall.ReviewRecord, bool) {
	items, ok := s.load(ctx, "module_review")
	if !ok {
		return recall.ReviewRecord{}, false
	}
	i := indexOf(items, moduleID)
	if i < 0 {
		return recall.ReviewRecord{}, false
	}
	return items[i], true
}

// load reads the collection for a query, logging instead of failing.
func (s *Scheduler) load(ctx context.Context, query string) ([]recall.ReviewRecord, bool) {
	items, err := s.store.GetReviewItems(ctx)
	if err != nil {
		err = goerr.Wrap(err, "failed to load review records", goerr.T(TagPersistenceRead))
		logging.From(ctx).Warn("review query degraded to empty result",
			slog.String("query", query),
			logging.ErrAttr(err),
		)
		return nil, false
	}
	return items, true
}

func dueAt(items []recall.ReviewRecord, now time.Time) []recall.ReviewRecord {
	due := make([]recall.ReviewRecord, 0, len(items))
	for _, it := range items {
		if it.IsDue(now) {
			due = append(due, it)
		}
	}
	return due
}

func upcomingAt(items []recall.ReviewRecord, now time.Time, days int) []recall.ReviewRecord {
	if days < 0 {
		return []recall.ReviewRecord{}
	}
	end := now.AddDate(0, 0, days)
	upcoming := make([]recall.ReviewRecord, 0, len(items))
	for _, it := range items {
		if it.NextReview.After(now) && !it.NextReview.After(end) {
			upcoming = append(upcoming, it)
		}
	}
	slices.SortStableFunc(upcoming, func(a, b recall.ReviewRecord) int {
		return a.NextReview.Compare(b.NextReview)
	})
	return upcoming
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

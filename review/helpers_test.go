package review_test

import (
	"context"
	"errors"
	"math"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/sky-flux/recall"
	"github.com/sky-flux/recall/review"
)

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

var (
	errRead  = errors.New("disk unreadable")
	errWrite = errors.New("disk full")
)

// fakeStore is an in-memory review.Store with injectable failures.
type fakeStore struct {
	mu      sync.Mutex
	items   []recall.ReviewRecord
	getErr  error
	saveErr error
	gets    int
	saves   int
}

func (f *fakeStore) GetReviewItems(_ context.Context) ([]recall.ReviewRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return slices.Clone(f.items), nil
}

func (f *fakeStore) SaveReviewItems(_ context.Context, items []recall.ReviewRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.items = slices.Clone(items)
	return nil
}

func mustScheduler(t *testing.T, s review.Store) *review.Scheduler {
	t.Helper()
	sch, err := review.New(s, review.Config{Now: func() time.Time { return t0 }})
	gt.NoError(t, err).Required()
	return sch
}

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func record(id string, next time.Time, ease float64) recall.ReviewRecord {
	return recall.ReviewRecord{
		ModuleID:     id,
		NextReview:   next,
		IntervalDays: 1,
		EaseFactor:   ease,
		Repetition:   1,
	}
}

func ids(items []recall.ReviewRecord) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ModuleID
	}
	return out
}

package store

import (
	"context"
	"slices"
	"sync"

	"github.com/sky-flux/recall"
)

// Memory keeps the collection in process memory. It is safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	items []recall.ReviewRecord

	callMu     sync.RWMutex
	callCounts map[string]int
}

// NewMemory returns a Memory store seeded with items.
func NewMemory(items ...recall.ReviewRecord) *Memory {
	return &Memory{
		items:      slices.Clone(items),
		callCounts: make(map[string]int),
	}
}

func (m *Memory) incrementCallCount(method string) {
	m.callMu.Lock()
	defer m.callMu.Unlock()
	m.callCounts[method]++
}

// CallCount returns how many times method has been invoked.
func (m *Memory) CallCount(method string) int {
	m.callMu.RLock()
	defer m.callMu.RUnlock()
	return m.callCounts[method]
}

// GetReviewItems returns a copy of the stored collection.
func (m *Memory) GetReviewItems(ctx context.Context) ([]recall.ReviewRecord, error) {
	m.incrementCallCount("GetReviewItems")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]recall.ReviewRecord, len(m.items))
	copy(out, m.items)
	return out, nil
}

// SaveReviewItems replaces the collection with a copy of items.
func (m *Memory) SaveReviewItems(ctx context.Context, items []recall.ReviewRecord) error {
	m.incrementCallCount("SaveReviewItems")
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = slices.Clone(items)
	return nil
}

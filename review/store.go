package review

import (
	"context"

	"github.com/sky-flux/recall"
)

// Store persists the review record collection.
//
// GetReviewItems returns an empty slice when nothing is stored; an error means
// the backend could not be read. SaveReviewItems replaces the whole collection.
type Store interface {
	GetReviewItems(ctx context.Context) ([]recall.ReviewRecord, error)
	SaveReviewItems(ctx context.Context, items []recall.ReviewRecord) error
}

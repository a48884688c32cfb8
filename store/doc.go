// Package store provides persistence backends for the review record
// collection: an in-memory store, a JSON document on an afero filesystem and
// an embedded SQLite database.
//
// All stores satisfy review.Store: GetReviewItems returns an empty slice when
// nothing has been saved, and SaveReviewItems replaces the whole collection.
package store

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sky-flux/recall"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS review_items (
    module_id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    next_review TEXT NOT NULL,
    interval_days INTEGER NOT NULL,
    ease_factor REAL NOT NULL,
    repetition INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_review_items_position ON review_items(position);
`

// SQLite stores the collection in an embedded SQLite database, one row per
// record. Store order is kept in the position column.
type SQLite struct {
	db    *sql.DB
	owned bool
}

// OpenSQLite opens (creating if needed) the database at path. Use ":memory:"
// for a throwaway database.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("path", path))
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	s, err := NewSQLite(db)
	if err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to prepare sqlite database", goerr.V("path", path))
	}
	s.owned = true
	return s, nil
}

// NewSQLite uses an already opened database and creates the schema.
func NewSQLite(db *sql.DB) (*SQLite, error) {
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, goerr.Wrap(err, "failed to migrate review_items")
	}
	return &SQLite{db: db}, nil
}

// Close closes the database if it was opened by OpenSQLite.
func (s *SQLite) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

// GetReviewItems returns every row ordered by position.
func (s *SQLite) GetReviewItems(ctx context.Context) ([]recall.ReviewRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT module_id, next_review, interval_days, ease_factor, repetition
		FROM review_items
		ORDER BY position ASC`)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query review_items")
	}
	defer rows.Close()

	items := []recall.ReviewRecord{}
	for rows.Next() {
		var rec recall.ReviewRecord
		var nextReview string
		if err := rows.Scan(&rec.ModuleID, &nextReview, &rec.IntervalDays, &rec.EaseFactor, &rec.Repetition); err != nil {
			return nil, goerr.Wrap(err, "failed to scan review_items row")
		}
		rec.NextReview, err = time.Parse(time.RFC3339Nano, nextReview)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid next_review",
				goerr.V("module_id", rec.ModuleID), goerr.V("next_review", nextReview))
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate review_items")
	}
	return items, nil
}

// SaveReviewItems replaces all rows with items in a single transaction. On
// failure the previous collection is kept.
func (s *SQLite) SaveReviewItems(ctx context.Context, items []recall.ReviewRecord) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM review_items`); err != nil {
		return goerr.Wrap(err, "failed to clear review_items")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO review_items (module_id, position, next_review, interval_days, ease_factor, repetition)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return goerr.Wrap(err, "failed to prepare insert")
	}
	defer stmt.Close()

	for i, rec := range items {
		_, err = stmt.ExecContext(ctx,
			rec.ModuleID,
			i,
			rec.NextReview.UTC().Format(time.RFC3339Nano),
			rec.IntervalDays,
			rec.EaseFactor,
			rec.Repetition,
		)
		if err != nil {
			return goerr.Wrap(err, "failed to insert review item",
				goerr.V("module_id", rec.ModuleID), goerr.V("position", i))
		}
	}

	if err = tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit review_items")
	}
	return nil
}

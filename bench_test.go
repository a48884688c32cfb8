package recall_test

import (
	"testing"
	"time"

	"github.com/sky-flux/recall"
)

// BenchmarkReviewRecord measures the time to process a single review.
func BenchmarkReviewRecord(b *testing.B) {
	e, err := recall.NewEngine(recall.EngineConfig{})
	if err != nil {
		b.Fatal(err)
	}
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := e.NewRecord("m", now)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Alternate success and lapse so intervals stay bounded.
		q := recall.CorrectEasy
		if i%4 == 3 {
			q = recall.IncorrectEasy
		}
		rec, _ = e.ReviewRecord(rec, q, now)
		now = rec.NextReview
	}
}

// BenchmarkPreviewRecord measures the time to preview all six grades.
func BenchmarkPreviewRecord(b *testing.B) {
	e, err := recall.NewEngine(recall.EngineConfig{})
	if err != nil {
		b.Fatal(err)
	}
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := e.NewRecord("m", now)
	rec, _ = e.ReviewRecord(rec, recall.CorrectHard, now)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.PreviewRecord(rec, now)
	}
}

// BenchmarkScoreToQuality measures the score-to-grade mapping.
func BenchmarkScoreToQuality(b *testing.B) {
	for i := 0; i < b.N; i++ {
		recall.ScoreToQuality(float64(i%100) / 100)
	}
}

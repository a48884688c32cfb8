package recall

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestReviewLogJSONRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	dur := 2500
	rl := ReviewLog{
		ModuleID:       "02-linear-algebra",
		Quality:        IncorrectEasy,
		ReviewDatetime: now,
		ReviewDuration: &dur,
	}

	data, err := json.Marshal(rl)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got ReviewLog
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.ModuleID != rl.ModuleID || got.Quality != rl.Quality || *got.ReviewDuration != *rl.ReviewDuration {
		t.Errorf("round-trip mismatch: got %+v", got)
	}
	if !got.ReviewDatetime.Equal(now) {
		t.Errorf("ReviewDatetime = %v, want %v", got.ReviewDatetime, now)
	}
}

func TestReviewLogJSONOmitDuration(t *testing.T) {
	rl := ReviewLog{
		ModuleID:       "m",
		Quality:        CompleteBlackout,
		ReviewDatetime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(rl)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(data), "review_duration") {
		t.Errorf("review_duration should be omitted: %s", data)
	}
}

func TestReviewLogJSONNumericQuality(t *testing.T) {
	raw := `{"module_id":"m","quality":3,"review_datetime":"2025-01-01T00:00:00Z"}`
	var rl ReviewLog
	if err := json.Unmarshal([]byte(raw), &rl); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if rl.Quality != CorrectHard {
		t.Errorf("Quality = %v, want CorrectHard", rl.Quality)
	}
}

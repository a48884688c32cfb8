package recall

import (
	"encoding/json"
	"testing"
	"time"
)

func TestReviewRecordIsDue(t *testing.T) {
	tests := []struct {
		name string
		next time.Time
		want bool
	}{
		{"past", t0.Add(-24 * time.Hour), true},
		{"exactly now", t0, true},
		{"future", t0.Add(time.Second), false},
	}
	for _, tt := range tests {
		r := ReviewRecord{ModuleID: "m", NextReview: tt.next}
		if got := r.IsDue(t0); got != tt.want {
			t.Errorf("%s: IsDue = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestReviewRecordDueLabel(t *testing.T) {
	tests := []struct {
		next time.Time
		want string
	}{
		{t0.Add(-72 * time.Hour), "Due now"},
		{t0, "Due now"},
		{t0.Add(time.Hour), "Due tomorrow"},
		{t0.Add(24 * time.Hour), "Due tomorrow"},
		{t0.Add(25 * time.Hour), "Due in 2 days"},
		{t0.AddDate(0, 0, 6), "Due in 6 days"},
	}
	for _, tt := range tests {
		r := ReviewRecord{ModuleID: "m", NextReview: tt.next}
		if got := r.DueLabel(t0); got != tt.want {
			t.Errorf("DueLabel(next=%v) = %q, want %q", tt.next, got, tt.want)
		}
	}
}

func TestReviewRecordJSONFieldNames(t *testing.T) {
	r := ReviewRecord{
		ModuleID:     "01-calculus",
		NextReview:   t0,
		IntervalDays: 6,
		EaseFactor:   2.6,
		Repetition:   2,
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"module_id", "next_review", "interval_days", "ease_factor", "repetition"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing JSON key %q in %s", key, data)
		}
	}
	if m["next_review"] != "2025-06-15T10:00:00Z" {
		t.Errorf("next_review = %v, want RFC 3339", m["next_review"])
	}
}

func TestReviewRecordJSONMissingEase(t *testing.T) {
	var r ReviewRecord
	raw := `{"module_id":"m","next_review":"2025-06-15T10:00:00Z","interval_days":3}`
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if r.EaseFactor != 0 || r.Repetition != 0 {
		t.Errorf("absent fields should decode to zero: %+v", r)
	}
}

package recall

import (
	"fmt"
	"math"
	"time"
)

// ReviewRecord is the scheduling state of one module.
// A collection holds at most one record per ModuleID.
type ReviewRecord struct {
	ModuleID     string    `json:"module_id" yaml:"module_id"`
	NextReview   time.Time `json:"next_review" yaml:"next_review"`
	IntervalDays int       `json:"interval_days" yaml:"interval_days"` // >= 1.
	EaseFactor   float64   `json:"ease_factor" yaml:"ease_factor"`     // >= MinEaseFactor, no ceiling.
	Repetition   int       `json:"repetition" yaml:"repetition"`       // consecutive successes since last lapse.
}

// IsDue reports whether the record's review instant is at or before now.
func (r ReviewRecord) IsDue(now time.Time) bool {
	return !r.NextReview.After(now)
}

// DaysUntil returns the number of days until the review, rounded up.
// Zero or negative means the review is due.
func (r ReviewRecord) DaysUntil(now time.Time) int {
	return int(math.Ceil(r.NextReview.Sub(now).Hours() / 24.0))
}

// DueLabel returns a short human label for the time left until review:
// "Due now", "Due tomorrow" or "Due in N days".
func (r ReviewRecord) DueLabel(now time.Time) string {
	switch days := r.DaysUntil(now); {
	case days <= 0:
		return "Due now"
	case days == 1:
		return "Due tomorrow"
	default:
		return fmt.Sprintf("Due in %d days", days)
	}
}

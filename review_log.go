package recall

import "time"

// ReviewLog records a single review event for a module.
type ReviewLog struct {
	ModuleID       string    `json:"module_id" yaml:"module_id"`
	Quality        Quality   `json:"quality" yaml:"quality"`
	ReviewDatetime time.Time `json:"review_datetime" yaml:"review_datetime"`
	ReviewDuration *int      `json:"review_duration,omitempty" yaml:"review_duration,omitempty"` // milliseconds, optional.
}

package recall

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Quality is the learner's 0-5 self-rating of recall for a reviewed module.
// Grades below CorrectHard are failed recalls.
type Quality int

const (
	CompleteBlackout Quality = iota // Could not recall anything.
	IncorrectHard                   // Serious difficulty recalling.
	IncorrectEasy                   // Barely recalled the concepts.
	CorrectHard                     // Recalled with some difficulty.
	CorrectHesitant                 // Recalled most with minor hesitation.
	CorrectEasy                     // Recalled everything easily.
)

// Qualities lists every grade of the rating scale, lowest first.
var Qualities = [...]Quality{
	CompleteBlackout, IncorrectHard, IncorrectEasy,
	CorrectHard, CorrectHesitant, CorrectEasy,
}

var (
	qualityNames = [...]string{
		CompleteBlackout: "CompleteBlackout",
		IncorrectHard:    "IncorrectHard",
		IncorrectEasy:    "IncorrectEasy",
		CorrectHard:      "CorrectHard",
		CorrectHesitant:  "CorrectHesitant",
		CorrectEasy:      "CorrectEasy",
	}
	qualityLabels = [...]string{
		CompleteBlackout: "Complete Blackout",
		IncorrectHard:    "Very Hard",
		IncorrectEasy:    "Hard",
		CorrectHard:      "Fair",
		CorrectHesitant:  "Good",
		CorrectEasy:      "Perfect",
	}
	qualityDescriptions = [...]string{
		CompleteBlackout: "Could not recall anything",
		IncorrectHard:    "Serious difficulty recalling",
		IncorrectEasy:    "Barely recalled the concepts",
		CorrectHard:      "Recalled with some difficulty",
		CorrectHesitant:  "Recalled most with minor hesitation",
		CorrectEasy:      "Recalled everything easily",
	}
	qualityByName = map[string]Quality{
		"CompleteBlackout": CompleteBlackout,
		"IncorrectHard":    IncorrectHard,
		"IncorrectEasy":    IncorrectEasy,
		"CorrectHard":      CorrectHard,
		"CorrectHesitant":  CorrectHesitant,
		"CorrectEasy":      CorrectEasy,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Quality(0)
	_ json.Marshaler           = Quality(0)
	_ json.Unmarshaler         = (*Quality)(nil)
	_ encoding.TextMarshaler   = Quality(0)
	_ encoding.TextUnmarshaler = (*Quality)(nil)
)

// String returns the name of the grade ("CompleteBlackout" ... "CorrectEasy").
// For invalid values it returns "Quality(n)".
func (q Quality) String() string {
	if q.IsValid() {
		return qualityNames[q]
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// Label returns the short rating-scale label shown to learners ("Perfect", "Fair", ...).
func (q Quality) Label() string {
	if q.IsValid() {
		return qualityLabels[q]
	}
	return q.String()
}

// Description returns the one-line explanation of the grade.
func (q Quality) Description() string {
	if q.IsValid() {
		return qualityDescriptions[q]
	}
	return ""
}

// IsValid reports whether q is within CompleteBlackout through CorrectEasy.
func (q Quality) IsValid() bool {
	return q >= CompleteBlackout && q <= CorrectEasy
}

// IsSuccess reports whether q counts as a successful recall (q >= 3).
func (q Quality) IsSuccess() bool {
	return q >= CorrectHard
}

// clamp forces q into the valid range.
func (q Quality) clamp() Quality {
	return min(max(q, CompleteBlackout), CorrectEasy)
}

// ParseQuality parses either a grade name ("CorrectEasy") or its number ("5").
func ParseQuality(s string) (Quality, error) {
	if v, ok := qualityByName[s]; ok {
		return v, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || !Quality(n).IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuality, s)
	}
	return Quality(n), nil
}

// MarshalText implements encoding.TextMarshaler.
func (q Quality) MarshalText() ([]byte, error) {
	if !q.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuality, int(q))
	}
	return []byte(qualityNames[q]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quality) UnmarshalText(text []byte) error {
	v, err := ParseQuality(string(text))
	if err != nil {
		return err
	}
	*q = v
	return nil
}

// MarshalJSON implements json.Marshaler. Quality serializes as a JSON string.
func (q Quality) MarshalJSON() ([]byte, error) {
	text, err := q.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler.
// Accepts a grade name string or a bare integer grade.
func (q *Quality) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] != '"' {
		var n int
		if err := json.Unmarshal(data, &n); err != nil || !Quality(n).IsValid() {
			return fmt.Errorf("%w: %s", ErrInvalidQuality, data)
		}
		*q = Quality(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidQuality, data)
	}
	return q.UnmarshalText([]byte(s))
}

// ScoreToQuality maps a completion score in [0, 1] (e.g. a quiz percentage)
// to a quality grade using fixed thresholds. Scores above 1 map to
// CorrectEasy; negative scores and NaN map to CompleteBlackout.
func ScoreToQuality(score float64) Quality {
	switch {
	case math.IsNaN(score):
		return CompleteBlackout
	case score >= 0.9:
		return CorrectEasy
	case score >= 0.8:
		return CorrectHesitant
	case score >= 0.6:
		return CorrectHard
	case score >= 0.4:
		return IncorrectEasy
	case score >= 0.2:
		return IncorrectHard
	default:
		return CompleteBlackout
	}
}

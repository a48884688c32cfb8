package recall

import (
	"fmt"
	"math"
)

// SM-2 defaults.
const (
	DefaultEaseFactor = 2.5 // ease of a module that has never been reviewed
	MinEaseFactor     = 1.3 // floor applied after every ease update
)

// EngineConfig configures an Engine.
// Zero values produce the SM-2 defaults; see field comments.
type EngineConfig struct {
	DefaultEaseFactor float64 `json:"default_ease_factor" yaml:"default_ease_factor"` // zero → 2.5
	MinEaseFactor     float64 `json:"min_ease_factor" yaml:"min_ease_factor"`         // zero → 1.3
}

// withDefaults returns cfg with zero-valued fields replaced by defaults.
func (cfg EngineConfig) withDefaults() EngineConfig {
	if cfg.DefaultEaseFactor == 0 {
		cfg.DefaultEaseFactor = DefaultEaseFactor
	}
	if cfg.MinEaseFactor == 0 {
		cfg.MinEaseFactor = MinEaseFactor
	}
	return cfg
}

// ValidateParameters checks that both ease values are finite, that the ease
// floor is positive and that the default ease is not below it. Zero fields are
// checked after defaulting.
func ValidateParameters(cfg EngineConfig) error {
	cfg = cfg.withDefaults()
	if !isFinite(cfg.MinEaseFactor) || !isFinite(cfg.DefaultEaseFactor) {
		return fmt.Errorf("%w: ease factors must be finite (default %f, min %f)",
			ErrInvalidParameters, cfg.DefaultEaseFactor, cfg.MinEaseFactor)
	}
	if cfg.MinEaseFactor <= 0 {
		return fmt.Errorf("%w: min ease factor %f must be positive",
			ErrInvalidParameters, cfg.MinEaseFactor)
	}
	if cfg.DefaultEaseFactor < cfg.MinEaseFactor {
		return fmt.Errorf("%w: default ease factor %f below minimum %f",
			ErrInvalidParameters, cfg.DefaultEaseFactor, cfg.MinEaseFactor)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

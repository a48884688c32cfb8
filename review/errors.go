package review

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrEmptyModuleID   = errors.New("review: empty module ID")
	ErrInvalidSnapshot = errors.New("review: invalid snapshot")
)

// Tags classify errors returned by the Scheduler.
var (
	TagPersistenceRead  = goerr.NewTag("persistence_read")
	TagPersistenceWrite = goerr.NewTag("persistence_write")
	TagValidation       = goerr.NewTag("validation")
)

// Keys attached to returned errors.
var (
	ModuleIDKey = goerr.NewTypedKey[string]("module_id")
	QualityKey  = goerr.NewTypedKey[int]("quality")
	ScoreKey    = goerr.NewTypedKey[float64]("score")
	CountKey    = goerr.NewTypedKey[int]("count")
	VersionKey  = goerr.NewTypedKey[string]("version")
)

package recall

import "errors"

// Sentinel errors for the recall package.
// Use errors.Is to check: errors.Is(err, recall.ErrInvalidQuality)
var (
	ErrInvalidQuality    = errors.New("recall: invalid quality grade")
	ErrInvalidScore      = errors.New("recall: invalid completion score")
	ErrInvalidParameters = errors.New("recall: parameters out of bounds")
	ErrModuleIDMismatch  = errors.New("recall: module ID mismatch in review log")
)

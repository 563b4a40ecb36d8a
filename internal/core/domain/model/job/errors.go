package job

import "errors"

var (
	// ErrJobIsNil is returned when a nil job reaches a use case.
	ErrJobIsNil = errors.New("job is nil")
)

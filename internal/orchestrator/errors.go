package orchestrator

import "errors"

var (
	ErrInvalidCount   = errors.New("document count must not be negative")
	ErrNoRenderer     = errors.New("renderer is required")
	ErrNoSaverFactory = errors.New("saver factory is required")
)

// stageError tags a per-document failure with the pipeline stage it came from
type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string {
	return e.stage + ": " + e.err.Error()
}

func (e *stageError) Unwrap() error {
	return e.err
}

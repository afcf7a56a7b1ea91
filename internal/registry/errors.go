package registry

import "errors"

var (
	// ErrNoTemplatesFound is returned when a template directory yields nothing usable
	ErrNoTemplatesFound = errors.New("no templates found")
	ErrInvalidDirectory = errors.New("invalid template directory")
)

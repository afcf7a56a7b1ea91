package fields

import "errors"

var (
	// ErrTemplateResourceMissing is returned when generation runs before any template was dispatched
	ErrTemplateResourceMissing = errors.New("template resource missing")
	ErrClassMismatch           = errors.New("template class does not match ruleset")
	ErrUnknownClass            = errors.New("unknown document class")
	ErrUnknownSubtype          = errors.New("unknown document subtype")
)

package degrade

import "errors"

var (
	ErrUnknownEffect = errors.New("unknown degradation effect")
	ErrInvalidRange  = errors.New("invalid degradation range")
)

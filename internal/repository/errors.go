package repository

import "errors"

var (
	ErrJobNotFound = errors.New("batch job not found")
	ErrNilReport   = errors.New("batch report is nil")
)

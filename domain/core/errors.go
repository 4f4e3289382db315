package core

import (
	"errors"
)

// Domain errors - centralized error definitions
var (
	ErrConfiguration  = errors.New("invalid titration configuration")
	ErrNotImplemented = errors.New("titration type not implemented")
	ErrInvalidState   = errors.New("reaction state matches no titration regime")
	ErrEmptyResult    = errors.New("no sampled point fell inside the pH scale")
	ErrNotFound       = errors.New("resource not found")
)

// IsConfigurationError reports whether err stems from bad input parameters
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsFatalComputationError reports whether err aborted a curve after validation passed
func IsFatalComputationError(err error) bool {
	return errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrEmptyResult)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

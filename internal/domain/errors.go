package domain

import "errors"

// Loading errors.
var (
	ErrDataUnavailable = errors.New("data unavailable")
	ErrRemoteFetch     = errors.New("remote fetch failed")
	ErrFileFormat      = errors.New("malformed data file")
)

// Derivation errors.
var (
	ErrPivotConflict    = errors.New("conflicting values for pivot key")
	ErrInsufficientData = errors.New("insufficient data for regression")
)

// Render errors.
var (
	ErrUnknownCountry = errors.New("unknown country")
	ErrInvalidInput   = errors.New("invalid input value")
)

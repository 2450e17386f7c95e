package domain

import "errors"

var (
	ErrUnsupportedSymbol = errors.New("unsupported symbol")
	ErrUnsupportedMode   = errors.New("unsupported mode")

	// ErrNoResult is the only failure the engine reports upward.
	ErrNoResult = errors.New("analysis unavailable")

	ErrDataUnavailable = errors.New("series unavailable or too short")
	ErrComputeFault    = errors.New("unexpected compute fault")
)

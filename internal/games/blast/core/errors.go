package core

import "errors"

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("blast: coordinate out of bounds")

	// ErrInvalidDimensions is returned for a grid with non-positive rows or columns.
	ErrInvalidDimensions = errors.New("blast: invalid board dimensions")

	// ErrInvalidColorCount is returned when fewer than two colors are configured
	// or a fixture cell uses a color outside the palette.
	ErrInvalidColorCount = errors.New("blast: invalid color count")

	// ErrInvalidRules is returned for a negative move budget or a non-positive target.
	ErrInvalidRules = errors.New("blast: invalid rules")

	// ErrStaleCompletion is returned when a completion arrives for a turn
	// that is no longer in flight.
	ErrStaleCompletion = errors.New("blast: stale turn completion")

	// ErrLoopStopped is returned by Loop requests after Run has returned.
	ErrLoopStopped = errors.New("blast: loop stopped")
)

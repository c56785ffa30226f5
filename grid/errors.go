package grid

import "errors"

var (
	// ErrInvalidDimension is returned when a grid is built with a non-positive size
	ErrInvalidDimension = errors.New("grid: invalid dimension")

	// ErrOutOfBounds is returned for coordinates outside [0, size)
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
)

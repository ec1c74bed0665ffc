package newton

import "errors"

// Sentinel errors for fractal configuration.
var (
	// ErrUnsupportedDegree is returned for a polynomial degree outside [MinDegree, MaxDegree].
	ErrUnsupportedDegree = errors.New("newton: unsupported degree")

	// ErrInvalidGridSize is returned when the grid cannot be sampled (fewer than two points per axis).
	ErrInvalidGridSize = errors.New("newton: invalid grid size")
)

package newton

import "fmt"

// Bounds of the sampled square [-Extent, Extent] x [-Extent, Extent].
const Extent = 2.0

// Grid maps pixel indices of a Size x Size image onto the complex plane.
// Row indices select the real part and column indices the imaginary part.
type Grid struct {
	Size int
	step float64
}

// NewGrid returns a sampler for a size x size image. At least two points
// per axis are required so that both bounds are hit.
func NewGrid(size int) (Grid, error) {
	if size < 2 {
		return Grid{}, fmt.Errorf("%w: %d (need at least 2)", ErrInvalidGridSize, size)
	}
	return Grid{
		Size: size,
		step: 2 * Extent / float64(size-1),
	}, nil
}

// Real returns the real coordinate of a row.
func (g Grid) Real(row int) float64 {
	return float64(row)*g.step - Extent
}

// Imag returns the imaginary coordinate of a column.
func (g Grid) Imag(col int) float64 {
	return float64(col)*g.step - Extent
}

// Point returns the complex coordinate of pixel (row, col).
func (g Grid) Point(row, col int) complex128 {
	return complex(g.Real(row), g.Imag(col))
}

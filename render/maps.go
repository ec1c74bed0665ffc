// Package render runs the parallel compute/write pipeline for the Newton
// fractal: a fixed pool of workers fills the attractor and convergence maps
// row by row, and a single writer streams the rows out in index order as
// soon as each one is complete.
package render

// Maps holds the per-pixel results of one render. Both grids are stored
// row-major, Size*Size cells each.
//
// Each row is written by exactly one worker and becomes read-only once its
// RowProgress flag is set.
type Maps struct {
	Size        int
	Attractors  []uint8
	Convergence []uint8
}

// NewMaps allocates both grids for a size x size image.
func NewMaps(size int) *Maps {
	return &Maps{
		Size:        size,
		Attractors:  make([]uint8, size*size),
		Convergence: make([]uint8, size*size),
	}
}

// AttractorRow returns the attractor classes of one row.
func (m *Maps) AttractorRow(row int) []uint8 {
	return m.Attractors[row*m.Size : (row+1)*m.Size]
}

// ConvergenceRow returns the convergence counts of one row.
func (m *Maps) ConvergenceRow(row int) []uint8 {
	return m.Convergence[row*m.Size : (row+1)*m.Size]
}

package render

import (
	"fmt"
	"path/filepath"
)

// AttractorFileName returns the attractor image name for a degree.
func AttractorFileName(degree int) string {
	return fmt.Sprintf("newton_attractors_x%d.ppm", degree)
}

// ConvergenceFileName returns the convergence image name for a degree.
func ConvergenceFileName(degree int) string {
	return fmt.Sprintf("newton_convergence_x%d.ppm", degree)
}

// OutputPaths returns both image paths inside dir.
func OutputPaths(dir string, degree int) (attractors, convergence string) {
	return filepath.Join(dir, AttractorFileName(degree)), filepath.Join(dir, ConvergenceFileName(degree))
}

package newton

import (
	"fmt"
	"math"
)

// Supported polynomial degrees.
const (
	MinDegree = 1
	MaxDegree = 9
)

// rootTable holds the d-th roots of unity for every supported degree,
// indexed by degree-1. It is filled by init and never written again.
var rootTable [MaxDegree][]complex128

func init() {
	for d := MinDegree; d <= MaxDegree; d++ {
		rootTable[d-1] = unityRoots(d)
	}
}

// unityRoots computes e^(2πik/d) for k = 0..d-1 in increasing angle order.
// Roots that lie on an axis are snapped to exact values so that, for
// example, the roots of z^4 - 1 are exactly 1, i, -1 and -i.
func unityRoots(d int) []complex128 {
	roots := make([]complex128, d)
	for k := 0; k < d; k++ {
		// Quarter turns are exact.
		if (4*k)%d == 0 {
			switch (4 * k) / d {
			case 0:
				roots[k] = complex(1, 0)
			case 1:
				roots[k] = complex(0, 1)
			case 2:
				roots[k] = complex(-1, 0)
			case 3:
				roots[k] = complex(0, -1)
			}
			continue
		}
		sin, cos := math.Sincos(2 * math.Pi * float64(k) / float64(d))
		roots[k] = complex(cos, sin)
	}
	return roots
}

// ValidateDegree reports whether d is a supported degree.
func ValidateDegree(d int) error {
	if d < MinDegree || d > MaxDegree {
		return fmt.Errorf("%w: %d (supported: %d..%d)", ErrUnsupportedDegree, d, MinDegree, MaxDegree)
	}
	return nil
}

// Roots returns the roots of z^d - 1 in canonical order.
// The returned slice is a copy; callers may modify it freely.
func Roots(d int) ([]complex128, error) {
	if err := ValidateDegree(d); err != nil {
		return nil, err
	}
	out := make([]complex128, d)
	copy(out, rootTable[d-1])
	return out, nil
}

package newton

import "math"

// Iteration parameters.
const (
	// Epsilon is the capture radius around a root and around the origin.
	Epsilon = 0.001

	// EscapeBound is the per-component magnitude beyond which a trajectory
	// counts as escaped to infinity.
	EscapeBound = 1e10

	// MaxConvergence is the number of distinct convergence values.
	// Iteration counts are clamped to MaxConvergence-1.
	MaxConvergence = 50

	// Sentinel is the attractor class shared by points captured at the
	// origin and points that escape. Classes 0..d-1 name roots.
	Sentinel uint8 = 9
)

const epsilonSq = Epsilon * Epsilon

// Result is the outcome of classifying one coordinate.
type Result struct {
	// Attractor is the index of the root reached, or Sentinel.
	Attractor uint8

	// Convergence is the iteration count, clamped to MaxConvergence-1.
	Convergence uint8
}

// Classifier runs Newton's method for f(z) = z^d - 1 at a fixed degree.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	degree int
	roots  []complex128
}

// NewClassifier returns a Classifier for degree d. Any degree outside
// [MinDegree, MaxDegree] is rejected here, before any computation runs.
func NewClassifier(d int) (*Classifier, error) {
	if err := ValidateDegree(d); err != nil {
		return nil, err
	}
	return &Classifier{
		degree: d,
		roots:  rootTable[d-1],
	}, nil
}

// Degree returns the polynomial degree.
func (c *Classifier) Degree() int {
	return c.degree
}

// Classify iterates from z until one of the termination predicates fires.
// There is no iteration cap: roots and the origin are absorbing and the
// escape bound catches divergent trajectories.
func (c *Classifier) Classify(z complex128) Result {
	res, _ := c.iterate(z, 0)
	return res
}

// iterate is Classify with an optional iteration ceiling. A limit of zero
// means unbounded. ok is false only when the ceiling was reached.
func (c *Classifier) iterate(z complex128, limit int) (res Result, ok bool) {
	for iter := 0; ; iter++ {
		if limit > 0 && iter >= limit {
			return Result{Attractor: Sentinel, Convergence: clamp(iter)}, false
		}

		re, im := real(z), imag(z)
		if re*re+im*im <= epsilonSq {
			return Result{Attractor: Sentinel, Convergence: clamp(iter)}, true
		}
		if math.Abs(re) > EscapeBound || math.Abs(im) > EscapeBound {
			return Result{Attractor: Sentinel, Convergence: clamp(iter)}, true
		}
		for k, root := range c.roots {
			dre, dim := re-real(root), im-imag(root)
			if dre*dre+dim*dim <= epsilonSq {
				return Result{Attractor: uint8(k), Convergence: clamp(iter)}, true
			}
		}

		z = c.step(z)
	}
}

// step applies one Newton update z - f(z)/f'(z) with f(z) = z^d - 1.
func (c *Classifier) step(z complex128) complex128 {
	// zd1 = z^(d-1)
	zd1 := complex(1, 0)
	for i := 1; i < c.degree; i++ {
		zd1 *= z
	}
	fz := zd1*z - 1
	dfz := complex(float64(c.degree), 0) * zd1
	return z - fz/dfz
}

func clamp(iter int) uint8 {
	if iter >= MaxConvergence {
		return MaxConvergence - 1
	}
	return uint8(iter)
}

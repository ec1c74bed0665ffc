// Package newton classifies points of the complex plane by the root of
// f(z) = z^d - 1 that Newton's method converges to.
//
// It follows the same layering as the rest of the module:
//
//   - Atoms: the root table (Roots) and the grid sampler (Grid)
//   - Molecule: Classifier, which runs the iteration for one coordinate
//
// # Quick Start
//
//	cls, err := newton.NewClassifier(3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res := cls.Classify(complex(0.2, 1.1))
//	fmt.Println(res.Attractor, res.Convergence)
//
// The package holds no mutable state. The root table is built once during
// package initialisation and only read afterwards, so a Classifier may be
// shared by any number of goroutines.
package newton

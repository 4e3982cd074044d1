// Package matrix provides the dense linear algebra needed to treat a random
// walk as an absorbing Markov chain.
//
// The package offers:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set.
//   - Arithmetic: Identity, Sub, Mul, MulVec.
//   - Factorizations: Doolittle LU (no pivoting, deterministic), Solve and Inverse.
//
// Every user-triggered failure returns a sentinel error (ErrInvalidDimensions,
// ErrOutOfRange, ErrDimensionMismatch, ErrNonSquare, ErrSingular, ErrNaNInf),
// wrapped with operation context; test with errors.Is.
//
// Matrices here are small (one row per lattice site), so O(n³) factorization
// is the intended trade-off.
package matrix

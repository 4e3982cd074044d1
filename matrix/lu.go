// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// LU performs Doolittle LU decomposition on a square matrix m.
// It returns L (unit lower triangular) and U (upper triangular) with m = L·U.
//
// No pivoting is applied: the loop order is fixed and results are
// deterministic. Matrices of the form I − Q for a transient block Q of an
// absorbing walk are diagonally dominant, so no pivot is needed there.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrSingular (zero pivot in U).
// Complexity: O(n³) time, O(n²) memory.
func LU(m *Dense) (L, U *Dense, err error) {
	if m == nil {
		return nil, nil, matrixErrorf(opLU, ErrNilMatrix)
	}
	if m.r != m.c {
		return nil, nil, fmt.Errorf("%s: %dx%d: %w", opLU, m.r, m.c, ErrNonSquare)
	}
	n := m.r

	// Stage 1: prepare L (unit diagonal) and U.
	if L, err = Identity(n); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	if U, err = NewDense(n, n); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	// Stage 2: row i of U, then column i of L.
	var (
		i, j, k int
		sum     float64
		pivot   float64
	)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			sum = 0
			for k = 0; k < i; k++ {
				sum += L.data[i*n+k] * U.data[k*n+j]
			}
			U.data[i*n+j] = m.data[i*n+j] - sum
		}
		pivot = U.data[i*n+i]
		if pivot == 0 {
			return nil, nil, fmt.Errorf("%s: zero pivot at %d: %w", opLU, i, ErrSingular)
		}
		for j = i + 1; j < n; j++ {
			sum = 0
			for k = 0; k < i; k++ {
				sum += L.data[j*n+k] * U.data[k*n+i]
			}
			L.data[j*n+i] = (m.data[j*n+i] - sum) / pivot
		}
	}

	return L, U, nil
}

// substitute solves L·U·x = b given the factors; y is scratch, x receives the solution.
func substitute(L, U *Dense, b, y, x []float64) {
	n := L.r
	var i, k int
	var sum float64
	// Forward: L·y = b (unit diagonal).
	for i = 0; i < n; i++ {
		sum = 0
		for k = 0; k < i; k++ {
			sum += L.data[i*n+k] * y[k]
		}
		y[i] = b[i] - sum
	}
	// Backward: U·x = y.
	for i = n - 1; i >= 0; i-- {
		sum = 0
		for k = i + 1; k < n; k++ {
			sum += U.data[i*n+k] * x[k]
		}
		x[i] = (y[i] - sum) / U.data[i*n+i]
	}
}

// Solve returns x with a·x = b.
//
// Errors: LU errors, ErrDimensionMismatch when len(b) != a.Rows().
// Complexity: O(n³) for the factorization plus O(n²) for substitution.
func Solve(a *Dense, b []float64) ([]float64, error) {
	L, U, err := LU(a)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if len(b) != a.r {
		return nil, matrixErrorf(opSolve, ErrDimensionMismatch)
	}
	y := make([]float64, a.r)
	x := make([]float64, a.r)
	substitute(L, U, b, y, x)

	return x, nil
}

// Inverse returns a⁻¹ by solving a·x = eᵢ for every basis column.
//
// Errors: LU errors (ErrNonSquare, ErrSingular).
// Complexity: O(n³) time, O(n²) memory.
func Inverse(a *Dense) (*Dense, error) {
	L, U, err := LU(a)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := a.r
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	e := make([]float64, n)
	y := make([]float64, n)
	x := make([]float64, n)
	for col := 0; col < n; col++ {
		for i := range e {
			e[i] = 0
		}
		e[col] = 1
		substitute(L, U, e, y, x)
		for i := 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}

// SPDX-License-Identifier: MIT

package matrix

// Operation tags for error wrapping.
const (
	opIdentity = "Identity"
	opSub      = "Sub"
	opMul      = "Mul"
	opMulVec   = "MulVec"
	opLU       = "LU"
	opSolve    = "Solve"
	opInverse  = "Inverse"
)

// Identity returns the n×n identity matrix.
//
// Errors: ErrInvalidDimensions when n <= 0.
func Identity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opIdentity, err)
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// Sub returns a − b.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func Sub(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opSub, ErrNilMatrix)
	}
	if a.r != b.r || a.c != b.c {
		return nil, matrixErrorf(opSub, ErrDimensionMismatch)
	}
	out := &Dense{r: a.r, c: a.c, data: make([]float64, len(a.data))}
	for k := range a.data {
		out.data[k] = a.data[k] - b.data[k]
	}

	return out, nil
}

// Mul returns the product a·b.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch when a.Cols() != b.Rows().
// Complexity: O(r·k·c), fixed i→k→j loop order.
func Mul(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opMul, ErrNilMatrix)
	}
	if a.c != b.r {
		return nil, matrixErrorf(opMul, ErrDimensionMismatch)
	}
	out := &Dense{r: a.r, c: b.c, data: make([]float64, a.r*b.c)}
	var i, k, j int
	for i = 0; i < a.r; i++ {
		for k = 0; k < a.c; k++ {
			aik := a.data[i*a.c+k]
			if aik == 0 {
				continue
			}
			for j = 0; j < b.c; j++ {
				out.data[i*b.c+j] += aik * b.data[k*b.c+j]
			}
		}
	}

	return out, nil
}

// MulVec returns the matrix-vector product m·x.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch when len(x) != m.Cols().
func MulVec(m *Dense, x []float64) ([]float64, error) {
	if m == nil {
		return nil, matrixErrorf(opMulVec, ErrNilMatrix)
	}
	if len(x) != m.c {
		return nil, matrixErrorf(opMulVec, ErrDimensionMismatch)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		var sum float64
		row := m.data[i*m.c : (i+1)*m.c]
		for j, v := range row {
			sum += v * x[j]
		}
		out[i] = sum
	}

	return out, nil
}

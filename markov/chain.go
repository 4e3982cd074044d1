// SPDX-License-Identifier: MIT

package markov

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/cdpwalk/matrix"
)

var (
	// ErrBarrierOrder indicates Lower >= Upper.
	ErrBarrierOrder = errors.New("markov: lower barrier must be < upper barrier")

	// ErrLatticeTooWide indicates more than MaxSites sites, including widths
	// that overflow int.
	ErrLatticeTooWide = errors.New("markov: lattice too wide for a dense chain")

	// ErrProbability indicates Right outside [0, 1] or NaN.
	ErrProbability = errors.New("markov: right-step probability must be in [0, 1]")

	// ErrNoTransient indicates a chain without interior sites (Upper = Lower+1),
	// for which N and B are empty.
	ErrNoTransient = errors.New("markov: chain has no transient sites")
)

// MaxSites caps the lattice size; the solver stores dense (b−a−1)² matrices.
const MaxSites = 1 << 12

// Chain is the absorbing chain of a walker on [Lower, Upper].
type Chain struct {
	Lower int
	Upper int
	Right float64
}

// Validate checks barrier order, lattice size and the step probability.
func (c Chain) Validate() error {
	if c.Lower >= c.Upper {
		return fmt.Errorf("%w: lower=%d upper=%d", ErrBarrierOrder, c.Lower, c.Upper)
	}
	if w := c.Upper - c.Lower; w <= 0 || w >= MaxSites {
		return fmt.Errorf("%w: lower=%d upper=%d", ErrLatticeTooWide, c.Lower, c.Upper)
	}
	if math.IsNaN(c.Right) || c.Right < 0 || c.Right > 1 {
		return fmt.Errorf("%w: right=%v", ErrProbability, c.Right)
	}

	return nil
}

// Sites returns the number of lattice sites, barriers included. Only
// meaningful for a chain that passes Validate.
func (c Chain) Sites() int { return c.Upper - c.Lower + 1 }

// transient returns the number of interior states.
func (c Chain) transient() int { return c.Upper - c.Lower - 1 }

// Transition returns the full (b−a+1)² transition matrix in site order
// (row k is site Lower+k). Barrier rows are identity rows.
func (c Chain) Transition() (*matrix.Dense, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	n := c.Sites()
	p, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	_ = p.Set(0, 0, 1)
	_ = p.Set(n-1, n-1, 1)
	for k := 1; k < n-1; k++ {
		_ = p.Set(k, k+1, c.Right)
		_ = p.Set(k, k-1, 1-c.Right)
	}

	return p, nil
}

// Fundamental returns N = (I − Q)⁻¹ over the interior sites Lower+1..Upper−1.
// Entry (i, j) is the expected number of visits to site Lower+1+j starting
// from site Lower+1+i.
//
// Errors: ErrBarrierOrder, ErrLatticeTooWide, ErrProbability, and
// ErrNoTransient when Upper = Lower+1.
func (c Chain) Fundamental() (*matrix.Dense, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	m := c.transient()
	if m == 0 {
		return nil, ErrNoTransient
	}

	iq, err := c.identityMinusQ(m)
	if err != nil {
		return nil, err
	}
	n, err := matrix.Inverse(iq)
	if err != nil {
		return nil, fmt.Errorf("markov: fundamental matrix: %w", err)
	}

	return n, nil
}

// AbsorptionMatrix returns B = N·R, one row per interior site and one column
// per barrier: column 0 is absorption at Lower, column 1 at Upper.
//
// Errors: as Fundamental.
func (c Chain) AbsorptionMatrix() (*matrix.Dense, error) {
	n, err := c.Fundamental()
	if err != nil {
		return nil, err
	}
	m := n.Rows()
	rows := make([][]float64, m)
	for i := range rows {
		rows[i] = make([]float64, 2)
	}
	rows[0][0] = 1 - c.Right
	rows[m-1][1] = c.Right
	r, err := matrix.NewDenseFrom(rows)
	if err != nil {
		return nil, err
	}
	b, err := matrix.Mul(n, r)
	if err != nil {
		return nil, fmt.Errorf("markov: absorption matrix: %w", err)
	}

	return b, nil
}

// identityMinusQ assembles I − Q for m interior states.
func (c Chain) identityMinusQ(m int) (*matrix.Dense, error) {
	id, err := matrix.Identity(m)
	if err != nil {
		return nil, err
	}
	q, err := matrix.NewDense(m, m)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m; i++ {
		if i+1 < m {
			_ = q.Set(i, i+1, c.Right)
		}
		if i-1 >= 0 {
			_ = q.Set(i, i-1, 1-c.Right)
		}
	}

	return matrix.Sub(id, q)
}

// Absorption returns, for every site Lower..Upper, the probability of being
// absorbed at the lower barrier. Barrier entries are 1 and 0.
//
// Interior values are the first column of B = N·R, where R has a single
// non-zero entry per barrier: R[0][lower] = 1−r and R[m−1][upper] = r.
func (c Chain) Absorption() ([]float64, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out := make([]float64, c.Sites())
	out[0] = 1
	m := c.transient()
	if m == 0 {
		return out, nil
	}

	iq, err := c.identityMinusQ(m)
	if err != nil {
		return nil, err
	}
	// (I − Q)·x = R[:, lower]
	rhs := make([]float64, m)
	rhs[0] = 1 - c.Right
	x, err := matrix.Solve(iq, rhs)
	if err != nil {
		return nil, fmt.Errorf("markov: absorption: %w", err)
	}
	copy(out[1:], x)

	return out, nil
}

// ExpectedSteps returns, for every site Lower..Upper, the expected number of
// steps before absorption (t = N·1). Barrier entries are 0.
func (c Chain) ExpectedSteps() ([]float64, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out := make([]float64, c.Sites())
	m := c.transient()
	if m == 0 {
		return out, nil
	}

	n, err := c.Fundamental()
	if err != nil {
		return nil, err
	}
	ones := make([]float64, m)
	for i := range ones {
		ones[i] = 1
	}
	t, err := matrix.MulVec(n, ones)
	if err != nil {
		return nil, fmt.Errorf("markov: expected steps: %w", err)
	}
	copy(out[1:], t)

	return out, nil
}

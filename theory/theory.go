// SPDX-License-Identifier: MIT

package theory

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrLattice indicates a lattice with fewer than two sites (N < 2 or a >= b).
	ErrLattice = errors.New("theory: lattice needs at least two sites")

	// ErrLatticeTooWide indicates a lattice whose width overflows int or
	// exceeds MaxSites where a per-site slice is returned.
	ErrLatticeTooWide = errors.New("theory: lattice too wide")

	// ErrProbability indicates r outside [0, 1] or NaN.
	ErrProbability = errors.New("theory: right-step probability must be in [0, 1]")

	// ErrStart indicates a starting site outside [a, b].
	ErrStart = errors.New("theory: start outside [a, b]")

	// ErrSymmetric indicates that the asymmetric formula was asked for r = 1/2,
	// where s = 1 and the expression is 0/0. Use Symmetric instead.
	ErrSymmetric = errors.New("theory: asymmetric formula undefined at r = 1/2")
)

const (
	// Half is the unbiased right-step probability.
	Half = 0.5

	// MaxSites caps the length of profiles returned by Asymmetric, Symmetric
	// and Profile.
	MaxSites = 1 << 24

	// seriesLimit bounds |L·ln s| for the power-series branch of MeanDuration.
	seriesLimit = 1.0
)

func checkProbability(r float64) error {
	if math.IsNaN(r) || r < 0 || r > 1 {
		return fmt.Errorf("%w: r=%v", ErrProbability, r)
	}

	return nil
}

// span returns L = b − a, rejecting empty lattices and int overflow.
func span(a, b int) (int, error) {
	if a >= b {
		return 0, fmt.Errorf("%w: a=%d b=%d", ErrLattice, a, b)
	}
	l := b - a
	if l <= 0 {
		return 0, fmt.Errorf("%w: a=%d b=%d", ErrLatticeTooWide, a, b)
	}

	return l, nil
}

func checkSites(n int) error {
	if n < 2 {
		return fmt.Errorf("%w: N=%d", ErrLattice, n)
	}
	if n > MaxSites {
		return fmt.Errorf("%w: N=%d > %d", ErrLatticeTooWide, n, MaxSites)
	}

	return nil
}

// Asymmetric returns p_j for j = 1..N on the lattice [1, N] with r ≠ 1/2.
// Index i of the result holds p_{i+1}.
//
// Behavior highlights:
//   - r = 0 ⇒ every interior walker reaches 1: p_j = 1 for j < N, p_N = 0.
//   - r = 1 ⇒ only a walker born on 1 stays there: p_1 = 1, rest 0.
//   - Powers of s are evaluated as exp/expm1 of multiples of ln s (or ln 1/s),
//     so r close to 1/2 keeps full precision and large N does not overflow.
//
// Errors: ErrLattice, ErrLatticeTooWide, ErrProbability, ErrSymmetric.
//
// Complexity: O(N).
func Asymmetric(r float64, n int) ([]float64, error) {
	if err := checkSites(n); err != nil {
		return nil, err
	}
	if err := checkProbability(r); err != nil {
		return nil, err
	}
	if r == Half {
		return nil, ErrSymmetric
	}

	pp := make([]float64, n)
	switch r {
	case 0:
		for i := 0; i < n-1; i++ {
			pp[i] = 1
		}

		return pp, nil
	case 1:
		pp[0] = 1

		return pp, nil
	}

	for j := 1; j <= n; j++ {
		pp[j-1] = lowerHit(j-1, n-1, r)
	}

	return pp, nil
}

// lowerHit returns the probability of reaching distance 0 before distance l
// when starting at distance z from the lower barrier, for 0 < r < 1, r ≠ 1/2.
//
//	s < 1:  (s^z − s^l)/(1 − s^l) = s^z · expm1((l−z)·ln s) / expm1(l·ln s)
//	s > 1:  (1 − t^(l−z))/(1 − t^l) with t = 1/s
func lowerHit(z, l int, r float64) float64 {
	if r > Half {
		x := math.Log1p((1 - 2*r) / r) // ln s < 0

		return math.Exp(float64(z)*x) * math.Expm1(float64(l-z)*x) / math.Expm1(float64(l)*x)
	}
	y := math.Log1p((2*r - 1) / (1 - r)) // ln t < 0

	return math.Expm1(float64(l-z)*y) / math.Expm1(float64(l)*y)
}

// Symmetric returns p_j = (N − j)/(N − 1) for j = 1..N.
//
// Errors: ErrLattice, ErrLatticeTooWide.
//
// Complexity: O(N).
func Symmetric(n int) ([]float64, error) {
	if err := checkSites(n); err != nil {
		return nil, err
	}

	pp := make([]float64, n)
	for j := 1; j <= n; j++ {
		pp[j-1] = float64(n-j) / float64(n-1)
	}

	return pp, nil
}

// Profile returns the absorption probabilities at the lower barrier for
// every start in [a, b], choosing the symmetric branch when r = 1/2.
//
// Errors: ErrLattice, ErrLatticeTooWide, ErrProbability.
func Profile(a, b int, r float64) ([]float64, error) {
	l, err := span(a, b)
	if err != nil {
		return nil, err
	}
	if l >= MaxSites {
		return nil, fmt.Errorf("%w: a=%d b=%d", ErrLatticeTooWide, a, b)
	}
	if r == Half {
		return Symmetric(l + 1)
	}

	return Asymmetric(r, l+1)
}

// AbsorptionAt returns the probability that a walker starting at j is
// absorbed at a before reaching b. It allocates nothing, so any lattice
// whose width fits in an int is accepted.
//
// Errors: ErrLattice, ErrLatticeTooWide, ErrStart, ErrProbability.
func AbsorptionAt(j, a, b int, r float64) (float64, error) {
	l, err := span(a, b)
	if err != nil {
		return 0, err
	}
	if j < a || j > b {
		return 0, fmt.Errorf("%w: j=%d", ErrStart, j)
	}
	if err := checkProbability(r); err != nil {
		return 0, err
	}

	z := j - a
	switch {
	case z == 0:
		return 1, nil
	case z == l:
		return 0, nil
	case r == 0:
		return 1, nil
	case r == 1:
		return 0, nil
	case r == Half:
		return float64(l-z) / float64(l), nil
	}

	return lowerHit(z, l, r), nil
}

// MeanDuration returns the expected number of steps before a walker starting
// at j is absorbed at a or b.
//
// With z = j − a, L = b − a, p = r, q = 1 − r and s = q/p:
//
//	symmetric:  D = z·(L − z)
//	asymmetric: D = z/(q − p) − L/(q − p) · (1 − s^z)/(1 − s^L)
//	r = 0:      D = z        (straight to a)
//	r = 1:      D = L − z    (straight to b)
//
// Near r = 1/2 (|L·ln s| <= 1) the asymmetric form cancels catastrophically;
// it is evaluated there from the power series of its numerator instead.
//
// Errors: ErrLattice, ErrLatticeTooWide, ErrStart, ErrProbability.
func MeanDuration(j, a, b int, r float64) (float64, error) {
	l, err := span(a, b)
	if err != nil {
		return 0, err
	}
	if j < a || j > b {
		return 0, fmt.Errorf("%w: j=%d", ErrStart, j)
	}
	if err := checkProbability(r); err != nil {
		return 0, err
	}

	z, lf := float64(j-a), float64(l)
	switch r {
	case Half:
		return z * (lf - z), nil
	case 0:
		return z, nil
	case 1:
		return lf - z, nil
	}

	return driftDuration(z, lf, r), nil
}

// driftDuration evaluates the asymmetric duration for 0 < r < 1, r ≠ 1/2.
func driftDuration(z, l, r float64) float64 {
	d := 1 - 2*r           // q − p
	x := math.Log1p(d / r) // ln s
	lx := l * x

	if math.Abs(lx) <= seriesLimit {
		// z·expm1(Lx) − L·expm1(zx) = zL·x·Σ_{k≥2} ((Lx)^(k−1) − (zx)^(k−1))/k!
		return z * l * x * durationSeries(z*x, lx) / (math.Expm1(lx) * d)
	}

	var ratio float64 // (1 − s^z)/(1 − s^L)
	if x < 0 {
		ratio = math.Expm1(z*x) / math.Expm1(lx)
	} else {
		// divide through by s^L to keep the powers bounded
		y := -x
		ratio = math.Exp((l-z)*y) * math.Expm1(z*y) / math.Expm1(l*y)
	}

	return (z - l*ratio) / d
}

// durationSeries returns Σ_{k≥2} (lx^(k−1) − zx^(k−1))/k! for |lx| <= 1.
func durationSeries(zx, lx float64) float64 {
	var sum float64
	aL, aZ := 1.0, 1.0
	for k := 2; k < 64; k++ {
		aL *= lx / float64(k)
		aZ *= zx / float64(k)
		term := aL - aZ
		sum += term
		if math.Abs(term) <= 1e-17*math.Abs(sum) {
			break
		}
	}

	return sum
}

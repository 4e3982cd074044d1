// SPDX-License-Identifier: MIT

package walk

import "errors"

var (
	// ErrBarrierOrder indicates that the lower barrier is not strictly below the upper one.
	ErrBarrierOrder = errors.New("walk: lower barrier must be < upper barrier")

	// ErrStartOutside indicates that the starting site lies outside [Lower, Upper].
	ErrStartOutside = errors.New("walk: start must satisfy lower <= start <= upper")

	// ErrProbability indicates that Right is not a probability in [0, 1].
	ErrProbability = errors.New("walk: right-step probability must be in [0, 1]")

	// ErrStepLimit indicates that the walk was not absorbed within Options.MaxSteps.
	ErrStepLimit = errors.New("walk: step limit reached before absorption")
)

// Params describes one walker on the lattice.
//
// Fields:
//   - Start: initial site j.
//   - Lower: absorbing barrier a.
//   - Upper: absorbing barrier b.
//   - Right: probability r of a +1 step; a −1 step happens with 1−r.
type Params struct {
	Start int     `json:"start" yaml:"start"`
	Lower int     `json:"lower" yaml:"lower"`
	Upper int     `json:"upper" yaml:"upper"`
	Right float64 `json:"right" yaml:"right"`
}

// Outcome is the result of a single absorbed walk.
type Outcome struct {
	Site  int // absorbing site, always Lower or Upper
	Steps int // number of steps taken before absorption

	lower int
}

// AtLower reports whether the walker was absorbed at the lower barrier.
func (o Outcome) AtLower() bool { return o.Site == o.lower }

// AtUpper reports whether the walker was absorbed at the upper barrier.
func (o Outcome) AtUpper() bool { return o.Site != o.lower }

// Options tunes the simulation loop.
//
//   - MaxSteps: upper bound on the number of steps; 0 (or negative) means unbounded.
//     With 0 < r < 1 and finite barriers a walk terminates with probability one,
//     so the cap only matters for very wide lattices.
type Options struct {
	MaxSteps int
}

// DefaultOptions returns Options with no step cap.
func DefaultOptions() Options {
	return Options{MaxSteps: 0}
}

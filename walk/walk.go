// SPDX-License-Identifier: MIT

package walk

import (
	"fmt"
	"math"
	"math/rand"
)

// Validate checks the walker parameters.
//
// Error priority (first failing check wins):
//  1. Lower >= Upper            → ErrBarrierOrder
//  2. Start ∉ [Lower, Upper]    → ErrStartOutside
//  3. Right NaN, < 0 or > 1     → ErrProbability
//
// Complexity: O(1).
func Validate(p Params) error {
	if p.Lower >= p.Upper {
		return fmt.Errorf("%w: lower=%d upper=%d", ErrBarrierOrder, p.Lower, p.Upper)
	}
	if p.Start < p.Lower || p.Start > p.Upper {
		return fmt.Errorf("%w: start=%d in [%d,%d]", ErrStartOutside, p.Start, p.Lower, p.Upper)
	}
	if math.IsNaN(p.Right) || p.Right < 0 || p.Right > 1 {
		return fmt.Errorf("%w: right=%v", ErrProbability, p.Right)
	}

	return nil
}

// Absorb runs one walk until it hits a barrier.
//
// Algorithm:
//  1. Validate p.
//  2. pos := Start.
//  3. While Lower < pos < Upper:
//     draw u ∈ [0,1); u < Right ⇒ pos++, otherwise pos--.
//  4. Return the absorbing site and the number of steps.
//
// Behavior highlights:
//   - Start on a barrier ⇒ zero steps.
//   - Right == 1 never draws a left step, Right == 0 never draws a right step.
//   - rng == nil ⇒ NewRNG(0).
//
// Errors:
//   - Validate sentinels.
//   - ErrStepLimit when opts.MaxSteps > 0 and the walk is still alive after that many steps.
//
// Complexity: O(T) time, O(1) memory, T = absorption time.
func Absorb(p Params, rng *rand.Rand, opts Options) (Outcome, error) {
	if err := Validate(p); err != nil {
		return Outcome{}, err
	}
	if rng == nil {
		rng = NewRNG(0)
	}

	var (
		pos   = p.Start
		steps int
	)
	for pos > p.Lower && pos < p.Upper {
		if opts.MaxSteps > 0 && steps >= opts.MaxSteps {
			return Outcome{Site: pos, Steps: steps, lower: p.Lower},
				fmt.Errorf("%w: %d steps at site %d", ErrStepLimit, steps, pos)
		}
		pos += step(rng, p.Right)
		steps++
	}

	return Outcome{Site: pos, Steps: steps, lower: p.Lower}, nil
}

// Trajectory runs one walk and returns every visited site, start and
// absorbing site included. The path has Steps+1 entries.
//
// On ErrStepLimit the partial path is returned together with the error.
//
// Complexity: O(T) time and memory.
func Trajectory(p Params, rng *rand.Rand, opts Options) ([]int, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRNG(0)
	}

	pos := p.Start
	path := []int{pos}
	for pos > p.Lower && pos < p.Upper {
		if opts.MaxSteps > 0 && len(path)-1 >= opts.MaxSteps {
			return path, fmt.Errorf("%w: %d steps at site %d", ErrStepLimit, len(path)-1, pos)
		}
		pos += step(rng, p.Right)
		path = append(path, pos)
	}

	return path, nil
}

// Walk is a convenience wrapper: it seeds a fresh stream, runs an
// unbounded walk from start and returns the absorbing site.
//
// Example:
//
//	site, err := walk.Walk(3, 1, 10, 0.5, 7)
func Walk(start, lower, upper int, right float64, seed int64) (int, error) {
	out, err := Absorb(
		Params{Start: start, Lower: lower, Upper: upper, Right: right},
		NewRNG(seed),
		DefaultOptions(),
	)
	if err != nil {
		return 0, err
	}

	return out.Site, nil
}

// step draws a single ±1 increment.
func step(rng *rand.Rand, right float64) int {
	if rng.Float64() < right {
		return 1
	}

	return -1
}

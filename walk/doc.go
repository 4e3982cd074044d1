// Package walk simulates a one-dimensional discrete random walk on the
// integer lattice with two absorbing barriers.
//
// 🚶 What is an absorbing walk?
//
//	A walker starts at site j between a lower barrier a and an upper
//	barrier b (a ≤ j ≤ b). At every step it moves one site right with
//	probability r and one site left with probability 1−r. The walk ends
//	("is absorbed") the first time it reaches a or b.
//
//	   a ─── · ─── · ─── j ─── · ─── b
//	   ▲            ←1−r   r→        ▲
//	absorbing                    absorbing
//
// ✨ Key features:
//   - strict input validation with sentinel errors (ErrBarrierOrder, ErrStartOutside, ErrProbability)
//   - deterministic outcomes from a seed (NewRNG, DeriveSeed)
//   - optional step cap (Options.MaxSteps) for long walks
//   - full path recording via Trajectory
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/cdpwalk/walk"
//
//	p := walk.Params{Start: 5, Lower: 1, Upper: 10, Right: 0.6}
//	out, err := walk.Absorb(p, walk.NewRNG(42), walk.DefaultOptions())
//	// out.Site is 1 or 10, out.Steps is the absorption time
//
// Performance:
//
//   - Time:   O(T), T = absorption time (expected O((b−a)²) for r = 1/2)
//   - Memory: O(1) for Absorb, O(T) for Trajectory
package walk

// Package cdpwalk simulates one-dimensional random walks between two
// absorbing barriers and checks the simulated absorption profile against
// the exact gambler's-ruin solution.
//
// 🚀 What is cdpwalk?
//
//	A small, deterministic toolkit for the classic two-barrier walk:
//		• Walkers: single walks and full trajectories on [a, b]
//		• Monte Carlo: p_j estimates with standard errors, spread over workers
//		• Theory: closed-form p_j and expected absorption times
//		• Markov chain: fundamental matrix N = (I − Q)⁻¹, B = N·R, t = N·1
//		• Comparison: simulation vs. prediction panels for r and r = 1/2
//		• Export: CSV, JSON and SVG charts, plus a SQLite run ledger
//
// ✨ Guarantees
//
//   - Reproducible: walker i always draws from walk.DeriveSeed(seed, i),
//     so results do not depend on the number of workers.
//   - Exact edges: r = 0, r = 1 and starts on a barrier need no sampling.
//   - Overflow-safe: closed forms stay finite for wide lattices.
//
// Packages:
//
//	walk/      Params, Absorb, Trajectory, seeded RNG streams
//	absorb/    EstimatePj and Sweep over a worker pool
//	theory/    Asymmetric, Symmetric, Profile, MeanDuration
//	matrix/    dense matrices with LU, Solve and Inverse
//	markov/    absorbing-chain view of the walk
//	compare/   residual panels and the two-panel Run
//	report/    CSV, JSON and SVG writers
//	cmd/cdpwalk   the command-line front end
//
// Quick start:
//
//	prof, _ := absorb.Sweep(ctx, 1, 10, 0.6, absorb.Options{Walkers: 1000})
//	pred, _ := theory.Profile(1, 10, 0.6)
//	panel, _ := compare.NewPanel(prof.Sites, prof.Pj, pred, 0.6, 1000)
//	fmt.Println(panel.MaxAbsErr)
package cdpwalk

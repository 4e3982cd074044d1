// Package absorb estimates absorption probabilities of a biased random walk
// with two absorbing barriers by Monte Carlo simulation.
//
// For a starting site j, p_j is the probability that a walker starting at j
// is absorbed at the lower barrier a. EstimatePj releases n independent
// walkers and reports the fraction that end at a; Sweep repeats the estimate
// for every site of [a, b] and returns the absorption profile.
//
// Determinism:
//
//	Walker i always draws from walk.DeriveSeed(seed, i), so results are
//	bit-identical for any number of workers.
//
// ⚙️ Usage:
//
//	opts := absorb.DefaultOptions()
//	opts.Walkers = 10000
//	est, err := absorb.EstimatePj(ctx, walk.Params{Start: 4, Lower: 1, Upper: 10, Right: 0.55}, opts)
//	fmt.Println(est.Pj, est.StdErr)
//
// Complexity: O(n·T / W) wall time for n walkers, mean absorption time T and W workers.
package absorb

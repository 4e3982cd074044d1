// Package theory evaluates closed-form absorption probabilities and mean
// absorption times for the biased random walk with two absorbing barriers
// (the classical gambler's-ruin problem).
//
// On the lattice [1, N] with right-step probability r and s = (1−r)/r,
// the probability of absorption at site 1 starting from j is
//
//	asymmetric (r ≠ 1/2):  p_j = (s^(j−1) − s^(N−1)) / (1 − s^(N−1))
//	symmetric  (r = 1/2):  p_j = (N − j) / (N − 1)
//
// AbsorptionAt and Profile shift these formulas to arbitrary barriers [a, b];
// MeanDuration gives the expected number of steps before absorption.
//
// All functions are pure and allocation-light; errors are sentinels
// (ErrLattice, ErrProbability, ErrStart, ErrSymmetric).
package theory

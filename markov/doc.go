// Package markov computes absorption quantities of the biased walk exactly,
// by treating the lattice [a, b] as an absorbing Markov chain.
//
// 🚀 Construction:
//
//	Sites a..b are states. The barriers a and b are absorbing (P[s][s] = 1);
//	every interior site moves to its right neighbour with probability r and
//	to its left neighbour with probability 1−r.
//
//	Ordering interior (transient) states first, the canonical form is
//
//	    P = | Q  R |
//	        | 0  I |
//
//	and the fundamental matrix N = (I − Q)⁻¹ yields
//	  • B = N·R: absorption probabilities per barrier,
//	  • t = N·1: expected number of steps before absorption.
//
// These are exact (up to floating point) and serve as the reference the
// Monte Carlo estimates in package absorb converge to.
//
// Complexity: O(m³) with m = b − a − 1 transient states.
package markov

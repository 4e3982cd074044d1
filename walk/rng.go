// Package walk - RNG utilities shared by single walks and ensembles.
//
// Goals:
//   - Determinism: same seed ⇒ identical walks across runs and platforms.
//   - Independence: DeriveSeed splits one base seed into per-walker streams,
//     so an ensemble result does not depend on how walkers are scheduled.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Give every goroutine its own *rand.Rand.
package walk

import "math/rand"

// DefaultSeed is the seed used when callers pass seed==0.
const DefaultSeed int64 = 1

// NewRNG returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
//
// Complexity: O(1).
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new seed.
// A SplitMix64 finalizer gives strong bit diffusion, so neighbouring stream
// ids (walker 0, 1, 2, ...) produce uncorrelated seeds.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

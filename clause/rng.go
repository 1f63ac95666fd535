// SPDX-License-Identifier: MIT
// Package clause - RNG utilities shared by the feedback passes.
//
// Every stochastic pass takes the caller's *rand.Rand, consumes exactly one
// Uint64 from it, and derives an independent PCG stream per clause from that
// parent. The draws a clause sees therefore depend only on (parent, clause),
// never on worker count or scheduling.
//
// Concurrency:
//   - rand.Rand is NOT goroutine-safe. Callers must not share one generator
//     across concurrent passes.
//   - Workers never touch the caller's generator; each owns a reseedable PCG.
package clause

import "math/rand/v2"

// defaultRNGSeed is used when NewRNG is called with seed==0.
const defaultRNGSeed uint64 = 1

// NewRNG returns a deterministic generator.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed is used verbatim.
// Complexity: O(1).
func NewRNG(seed uint64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}
	return rand.New(rand.NewPCG(s, deriveSeed(s, 0)))
}

// deriveSeed mixes a parent seed and a stream identifier (SplitMix64 finalizer).
// Complexity: O(1).
func deriveSeed(parent uint64, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// bernoulli keeps each set bit of candidates independently with probability p.
// Draws happen in ascending bit order, one per candidate.
// Complexity: O(popcount(candidates)).
func bernoulli(rng *rand.Rand, candidates uint32, p float64) uint32 {
	if p >= 1 {
		return candidates
	}
	if p <= 0 {
		return 0
	}
	var out uint32
	for m := candidates; m != 0; m &= m - 1 {
		if rng.Float64() < p {
			out |= m & -m
		}
	}
	return out
}

// thin clears random set bits of m until at most keep remain.
func thin(rng *rand.Rand, m uint32, keep int) uint32 {
	if keep <= 0 {
		return 0
	}
	n := popcount(m)
	for ; n > keep; n-- {
		i := rng.IntN(n)
		r := m
		for ; i > 0; i-- {
			r &= r - 1
		}
		m &^= r & -r
	}
	return m
}

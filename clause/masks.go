// SPDX-License-Identifier: MIT

package clause

import (
	"fmt"
	"math/bits"
	"math/rand/v2"

	"github.com/katalvlaran/tsetlin/automata"
)

// ClauseMask flags the clauses taking part in a pass (true = active).
type ClauseMask []bool

// LiteralMask is a packed per-literal activity vector, one word per chunk.
// Bit k%32 of word k/32 set means literal k is active.
type LiteralMask []uint32

// Active reports whether literal k is active. Out-of-range k is inactive.
func (m LiteralMask) Active(k int) bool {
	if k < 0 || k/automata.ChunkBits >= len(m) {
		return false
	}
	return m[k/automata.ChunkBits]&(1<<uint(k%automata.ChunkBits)) != 0
}

// Set marks literal k active or inactive. k must be within the mask.
func (m LiteralMask) Set(k int, active bool) {
	bit := uint32(1) << uint(k%automata.ChunkBits)
	if active {
		m[k/automata.ChunkBits] |= bit
	} else {
		m[k/automata.ChunkBits] &^= bit
	}
}

// Selection is the per-example sub-sampling state shared by the feedback passes.
// UpdateP is the probability that an active clause is updated at all.
type Selection struct {
	ClauseActive  ClauseMask
	LiteralActive LiteralMask
	UpdateP       float64
}

// FullLiteralMask returns a mask with every literal of the bank active.
func (b *Bank) FullLiteralMask() LiteralMask {
	m := make(LiteralMask, b.chunks)
	for k := range m {
		m[k] = ^uint32(0)
	}
	m[b.chunks-1] = automata.Filter(b.literals)
	return m
}

// AllActive returns a selection with every clause and literal active.
func (b *Bank) AllActive(updateP float64) Selection {
	ca := make(ClauseMask, b.clauses)
	for j := range ca {
		ca[j] = true
	}
	return Selection{ClauseActive: ca, LiteralActive: b.FullLiteralMask(), UpdateP: updateP}
}

// SampleSelection draws Bernoulli keep-masks: each clause survives with
// probability 1−ClauseDropProbability, each literal with 1−LiteralDropProbability.
// Clauses are drawn first (ascending), then literals (ascending).
// Complexity: O(clauses + literals).
func (b *Bank) SampleSelection(rng *rand.Rand, p Params, updateP float64) (Selection, error) {
	if rng == nil {
		return Selection{}, bankErrorf("SampleSelection", ErrNilRNG)
	}
	if err := p.Validate(); err != nil {
		return Selection{}, bankErrorf("SampleSelection", err)
	}
	if !validProbability(updateP) {
		return Selection{}, bankErrorf("SampleSelection", fmt.Errorf("%w: updateP=%v", ErrInvalidParams, updateP))
	}

	ca := make(ClauseMask, b.clauses)
	for j := range ca {
		ca[j] = rng.Float64() >= p.ClauseDropProbability
	}
	la := make(LiteralMask, b.chunks)
	for k := 0; k < b.literals; k++ {
		if rng.Float64() >= p.LiteralDropProbability {
			la.Set(k, true)
		}
	}

	return Selection{ClauseActive: ca, LiteralActive: la, UpdateP: updateP}, nil
}

// checkSelection validates a selection against the bank shape.
func (b *Bank) checkSelection(sel Selection) error {
	if len(sel.ClauseActive) != b.clauses {
		return fmt.Errorf("%w: clause mask %d, want %d", ErrMaskLength, len(sel.ClauseActive), b.clauses)
	}
	if len(sel.LiteralActive) != b.chunks {
		return fmt.Errorf("%w: literal mask %d words, want %d", ErrMaskLength, len(sel.LiteralActive), b.chunks)
	}
	if !validProbability(sel.UpdateP) {
		return fmt.Errorf("%w: updateP=%v", ErrInvalidParams, sel.UpdateP)
	}
	return nil
}

func validProbability(p float64) bool { return p >= 0 && p <= 1 }

func popcount(m uint32) int { return bits.OnesCount32(m) }

// SPDX-License-Identifier: MIT

package clause

import (
	"fmt"
	"math/bits"

	"github.com/katalvlaran/tsetlin/automata"
)

// LiteralClauseFrequency counts, per literal, the active clauses including it.
// A nil mask counts every clause. Read-only.
// Errors: ErrMaskLength.
// Complexity: O(clauses · literals).
func (b *Bank) LiteralClauseFrequency(ca ClauseMask) ([]uint32, error) {
	if ca != nil && len(ca) != b.clauses {
		return nil, bankErrorf("LiteralClauseFrequency",
			fmt.Errorf("%w: clause mask %d, want %d", ErrMaskLength, len(ca), b.clauses))
	}

	freq := make([]uint32, b.literals)
	for j := 0; j < b.clauses; j++ {
		if ca != nil && !ca[j] {
			continue
		}
		s := b.ta.Clause(j)
		for k := 0; k < b.chunks; k++ {
			for m := s.Included(k); m != 0; m &= m - 1 {
				freq[k*automata.ChunkBits+bits.TrailingZeros32(m)]++
			}
		}
	}

	return freq, nil
}

// CountIncluded returns the number of literals clause j includes.
// Errors: ErrOutOfRange.
func (b *Bank) CountIncluded(j int) (int, error) {
	n, err := b.ta.CountIncluded(j)
	if err != nil {
		return 0, bankErrorf("CountIncluded", err)
	}
	return n, nil
}

// IncludedLiterals lists the literal indices clause j includes, ascending.
// Indices ≥ Literals()/2 are negated features.
// Errors: ErrOutOfRange.
func (b *Bank) IncludedLiterals(j int) ([]int, error) {
	if j < 0 || j >= b.clauses {
		return nil, bankErrorf("IncludedLiterals", fmt.Errorf("clause %d: %w", j, ErrOutOfRange))
	}
	s := b.ta.Clause(j)
	out := make([]int, 0, s.CountIncluded())
	for k := 0; k < b.chunks; k++ {
		for m := s.Included(k); m != 0; m &= m - 1 {
			out = append(out, k*automata.ChunkBits+bits.TrailingZeros32(m))
		}
	}
	return out, nil
}

// CooccurrenceCount returns the Type III co-occurrence counter of (j, k).
// Errors: ErrOutOfRange.
func (b *Bank) CooccurrenceCount(j, k int) (uint32, error) {
	if j < 0 || j >= b.clauses || k < 0 || k >= b.literals {
		return 0, bankErrorf("CooccurrenceCount", fmt.Errorf("(%d,%d): %w", j, k, ErrOutOfRange))
	}
	return b.cooc[j*b.literals+k], nil
}

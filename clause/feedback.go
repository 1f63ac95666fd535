// SPDX-License-Identifier: MIT

package clause

import (
	"math/rand/v2"

	"github.com/katalvlaran/tsetlin/encoder"
)

// Feedback kinds, used as the "type" metric label.
const (
	kindTypeI   = "type_i"
	kindTypeII  = "type_ii"
	kindTypeIII = "type_iii"
)

// prepare runs every precondition shared by the feedback passes and returns
// the literal rows of example e. Nothing is mutated.
func (b *Bank) prepare(op string, rng *rand.Rand, sel Selection, x *encoder.Encoded, e int) ([]uint32, error) {
	if rng == nil {
		return nil, bankErrorf(op, ErrNilRNG)
	}
	if err := b.checkSelection(sel); err != nil {
		return nil, bankErrorf(op, err)
	}
	rows, err := b.exampleRows(x, e)
	if err != nil {
		return nil, bankErrorf(op, err)
	}
	return rows, nil
}

// TypeIFeedback reinforces the pattern of example e in every selected clause
// that matches it (true positives).
//
// On the chosen matching patch x:
//   - true active literals get +1 with probability (S−1)/S, or always when
//     BoostTruePositiveFeedback is set;
//   - false active excluded literals get +1 with probability 1/S;
//   - included false literals are left alone.
//
// Increments that would flip a literal to Include are thinned so the clause
// ends the pass with at most MaxIncludedLiterals. A clause already at the cap
// takes no new inclusions, but its included true literals are still rewarded.
//
// Stage 1 (Validate): rng, params, selection, input. Stage 2 (Execute): one
// clause-range pass. Errors leave the bank untouched.
// Errors: ErrNilRNG, ErrInvalidParams, ErrMaskLength, ErrNilInput,
// ErrGeometryMismatch, ErrOutOfRange.
// Complexity: O(clauses · (patches·chunks + literals)).
func (b *Bank) TypeIFeedback(rng *rand.Rand, sel Selection, x *encoder.Encoded, e int, p Params) error {
	if err := p.Validate(); err != nil {
		return bankErrorf("TypeIFeedback", err)
	}
	rows, err := b.prepare("TypeIFeedback", rng, sel, x, e)
	if err != nil {
		return err
	}

	var (
		maxInc = p.maxIncluded(b.literals)
		pTrue  = (p.S - 1) / p.S
		pFalse = 1 / p.S
	)
	stats := b.feedbackPass(rng, sel, rows, func(w *worker, j int, x []uint32) {
		s := b.ta.Clause(j)
		budget := max(0, maxInc-s.CountIncluded())
		for k := 0; k < b.chunks; k++ {
			la := sel.LiteralActive[k]
			truth := x[k] & la

			var up uint32
			if p.BoostTruePositiveFeedback {
				up = truth
			} else {
				up = bernoulli(w.rng, truth, pTrue)
			}
			up |= bernoulli(w.rng, ^x[k]&la&^s.Included(k), pFalse)

			flip := up & s.AtThreshold(k)
			if n := popcount(flip); n > budget {
				keep := thin(w.rng, flip, budget)
				up &^= flip &^ keep
				flip = keep
			}
			budget -= popcount(flip)

			s.Increment(k, up)
		}
	})
	b.metrics.observePass(kindTypeI, stats.visited)

	return nil
}

// TypeIIFeedback suppresses spurious matches (false positives): in every
// selected clause matching example e, false active excluded literals of the
// chosen patch are decremented. Included literals are never decremented.
// Errors: ErrNilRNG, ErrMaskLength, ErrInvalidParams, ErrNilInput,
// ErrGeometryMismatch, ErrOutOfRange.
// Complexity: O(clauses · patches · chunks).
func (b *Bank) TypeIIFeedback(rng *rand.Rand, sel Selection, x *encoder.Encoded, e int) error {
	rows, err := b.prepare("TypeIIFeedback", rng, sel, x, e)
	if err != nil {
		return err
	}

	stats := b.feedbackPass(rng, sel, rows, func(_ *worker, j int, x []uint32) {
		s := b.ta.Clause(j)
		for k := 0; k < b.chunks; k++ {
			s.Decrement(k, ^x[k]&sel.LiteralActive[k]&^s.Included(k))
		}
	})
	b.metrics.observePass(kindTypeII, stats.visited)

	return nil
}

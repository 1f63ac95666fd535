// SPDX-License-Identifier: MIT

package clause

import (
	"log/slog"
	"math/bits"
	"math/rand/v2"

	"github.com/katalvlaran/tsetlin/automata"
	"github.com/katalvlaran/tsetlin/encoder"
)

// TypeIIIFeedback runs the indicator bank that keeps saturated excluded
// literals from staying stuck.
//
// For every selected clause matching example e, each true active literal of
// the chosen patch updates its co-occurrence counter and indicator:
//   - target: counter +1, indicator −1;
//   - ¬target: counter −1 (floor 0), indicator +1.
//
// A counter that climbs past p.D clears itself and resets the indicator to 0.
// Then every active literal of the clause whose indicator top bit is clear,
// that is excluded and whose primary counter is below 2^(B−1)−1 is
// reactivated: primary counter to 2^(B−1)−1, indicator back to all-ones.
// Nothing here includes a literal or lowers a primary counter.
//
// Errors: ErrNilRNG, ErrInvalidParams, ErrMaskLength, ErrNilInput,
// ErrGeometryMismatch, ErrOutOfRange.
// Complexity: O(clauses · (patches·chunks + literals)).
func (b *Bank) TypeIIIFeedback(rng *rand.Rand, sel Selection, x *encoder.Encoded, e int, target bool, p Params) error {
	if err := p.Validate(); err != nil {
		return bankErrorf("TypeIIIFeedback", err)
	}
	rows, err := b.prepare("TypeIIIFeedback", rng, sel, x, e)
	if err != nil {
		return err
	}

	stats := b.feedbackPass(rng, sel, rows, func(w *worker, j int, x []uint32) {
		ta, ind := b.ta.Clause(j), b.ind.Clause(j)
		cooc := b.cooc[j*b.literals : (j+1)*b.literals]

		for k := 0; k < b.chunks; k++ {
			la := sel.LiteralActive[k]
			truth := x[k] & la

			var reset uint32
			for m := truth; m != 0; m &= m - 1 {
				bit := m & -m
				l := k*automata.ChunkBits + bits.TrailingZeros32(bit)
				if l >= b.literals {
					break
				}
				if target {
					cooc[l]++
					if float64(cooc[l]) > p.D {
						cooc[l] = 0
						reset |= bit
					}
				} else if cooc[l] > 0 {
					cooc[l]--
				}
			}
			if target {
				ind.Decrement(k, truth)
			} else {
				ind.Increment(k, truth)
			}
			ind.Assign(k, reset, 0)

			eligible := la &^ ind.Included(k) &^ ta.Included(k) & ta.Below(k, b.taInit)
			if eligible == 0 {
				continue
			}
			ta.Assign(k, eligible, b.taInit)
			ind.Assign(k, eligible, b.ind.MaxState())
			w.reactivated += popcount(eligible)
		}
	})

	b.metrics.observePass(kindTypeIII, stats.visited)
	b.metrics.observeReactivations(stats.reactivated)
	if stats.reactivated > 0 {
		b.logger.Debug("literals reactivated",
			slog.Int("example", e),
			slog.Bool("target", target),
			slog.Int("literals", stats.reactivated),
			slog.Int("clauses", stats.visited),
		)
	}

	return nil
}

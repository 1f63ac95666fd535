// SPDX-License-Identifier: MIT

package clause

import (
	"fmt"

	"github.com/katalvlaran/tsetlin/automata"
	"github.com/katalvlaran/tsetlin/encoder"
)

// PatchOutputs is a clauses × patches matrix of clause outputs.
type PatchOutputs struct {
	clauses int
	patches int
	data    []bool // data[j*patches+p]
}

// Clauses returns the number of rows.
func (o *PatchOutputs) Clauses() int { return o.clauses }

// Patches returns the number of columns.
func (o *PatchOutputs) Patches() int { return o.patches }

// At reports whether clause j matched patch p. Indices must be in range.
func (o *PatchOutputs) At(j, p int) bool { return o.data[j*o.patches+p] }

// Clause returns the per-patch outputs of clause j (read-only view).
func (o *PatchOutputs) Clause(j int) []bool {
	return o.data[j*o.patches : (j+1)*o.patches : (j+1)*o.patches]
}

// matches reports whether s accepts the literal row x: no included, active
// literal may be false. A nil la treats every literal as active.
func matches(s automata.Slice, x []uint32, la LiteralMask) bool {
	for k := 0; k < s.Chunks(); k++ {
		inc := s.Included(k)
		if la != nil {
			inc &= la[k]
		}
		if inc&^x[k] != 0 {
			return false
		}
	}
	return true
}

// matchingPatch returns a patch of rows accepted by clause j, drawn uniformly
// from the worker stream when several match, or -1 when none does.
func (b *Bank) matchingPatch(w *worker, j int, rows []uint32, la LiteralMask) int {
	s := b.ta.Clause(j)
	w.hits = w.hits[:0]
	for p := 0; p < b.patches; p++ {
		if matches(s, rows[p*b.chunks:(p+1)*b.chunks], la) {
			w.hits = append(w.hits, p)
		}
	}
	switch len(w.hits) {
	case 0:
		return -1
	case 1:
		return w.hits[0]
	default:
		return w.hits[w.rng.IntN(len(w.hits))]
	}
}

// EvaluatePredict returns, per clause, whether it matches any patch of
// example e. Every literal counts; a clause with nothing included is true.
// Errors: ErrNilInput, ErrGeometryMismatch, ErrOutOfRange.
// Complexity: O(clauses · patches · chunks).
func (b *Bank) EvaluatePredict(x *encoder.Encoded, e int) ([]bool, error) {
	rows, err := b.exampleRows(x, e)
	if err != nil {
		return nil, bankErrorf("EvaluatePredict", err)
	}
	return b.evaluate(rows, nil), nil
}

// EvaluateUpdate is EvaluatePredict with inactive literals ignored, whatever
// their action.
// Errors: ErrNilInput, ErrGeometryMismatch, ErrOutOfRange, ErrMaskLength.
// Complexity: O(clauses · patches · chunks).
func (b *Bank) EvaluateUpdate(la LiteralMask, x *encoder.Encoded, e int) ([]bool, error) {
	if len(la) != b.chunks {
		return nil, bankErrorf("EvaluateUpdate",
			fmt.Errorf("%w: literal mask %d words, want %d", ErrMaskLength, len(la), b.chunks))
	}
	rows, err := b.exampleRows(x, e)
	if err != nil {
		return nil, bankErrorf("EvaluateUpdate", err)
	}
	return b.evaluate(rows, la), nil
}

func (b *Bank) evaluate(rows []uint32, la LiteralMask) []bool {
	out := make([]bool, b.clauses)
	b.forClauses(func(_ *worker, lo, hi int) {
		for j := lo; j < hi; j++ {
			s := b.ta.Clause(j)
			for p := 0; p < b.patches; p++ {
				if matches(s, rows[p*b.chunks:(p+1)*b.chunks], la) {
					out[j] = true
					break
				}
			}
		}
	})
	return out
}

// EvaluatePatchwise returns the full clause × patch output matrix of example e.
// Errors: ErrNilInput, ErrGeometryMismatch, ErrOutOfRange.
// Complexity: O(clauses · patches · chunks).
func (b *Bank) EvaluatePatchwise(x *encoder.Encoded, e int) (*PatchOutputs, error) {
	rows, err := b.exampleRows(x, e)
	if err != nil {
		return nil, bankErrorf("EvaluatePatchwise", err)
	}

	out := &PatchOutputs{
		clauses: b.clauses,
		patches: b.patches,
		data:    make([]bool, b.clauses*b.patches),
	}
	b.forClauses(func(_ *worker, lo, hi int) {
		for j := lo; j < hi; j++ {
			s := b.ta.Clause(j)
			row := out.Clause(j)
			for p := range row {
				row[p] = matches(s, rows[p*b.chunks:(p+1)*b.chunks], nil)
			}
		}
	})

	return out, nil
}

// SPDX-License-Identifier: MIT

package encoder

import (
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Encoder is a stateless transform bound to one Geometry. Safe for concurrent use.
type Encoder struct {
	geom    Geometry
	inner   []int // expected Shape[1:] of every tensor
	workers int
}

// New validates shape/patch and returns an Encoder for that geometry.
// Errors: ErrUnsupportedRank, ErrBadShape, ErrPatchTooLarge.
// Complexity: O(1).
func New(shape []int, patch []int, opts ...Option) (*Encoder, error) {
	geom, err := NewGeometry(shape, patch)
	if err != nil {
		return nil, err
	}
	o := gatherOptions(opts)

	return &Encoder{
		geom:    geom,
		inner:   slices.Clone(shape[1:]),
		workers: o.workers,
	}, nil
}

// Geometry returns the encoder geometry.
func (enc *Encoder) Geometry() Geometry { return enc.geom }

// Encode packs every example of t into literal rows.
// Stage 1 (Validate): shape and data length must match the geometry.
// Stage 2 (Execute): encode disjoint example ranges in parallel.
// Complexity: O(n · patches · F) time, O(n · patches · chunks) memory.
func (enc *Encoder) Encode(t Tensor) (*Encoded, error) {
	if len(t.Shape) != len(enc.inner)+1 || !slices.Equal(t.Shape[1:], enc.inner) || t.Shape[0] < 0 {
		return nil, fmt.Errorf("Encode(shape=%v, want (n,%v)): %w", t.Shape, enc.inner, ErrShapeMismatch)
	}
	n := t.Shape[0]
	size := enc.geom.ExampleSize()
	if len(t.Data) != n*size {
		return nil, fmt.Errorf("Encode(len=%d, want %d): %w", len(t.Data), n*size, ErrShapeMismatch)
	}

	g := enc.geom
	out := &Encoded{
		examples: n,
		patches:  g.Patches(),
		chunks:   g.Chunks(),
		literals: g.Literals(),
		words:    make([]uint32, n*g.Patches()*g.Chunks()),
	}
	rowWords := out.patches * out.chunks

	enc.forEachRange(n, func(lo, hi int) {
		for e := lo; e < hi; e++ {
			encodeExample(g, t.Data[e*size:(e+1)*size], out.words[e*rowWords:(e+1)*rowWords])
		}
	})

	return out, nil
}

// encodeExample writes the literal rows of one example into dst, which must
// be zeroed and hold patches·chunks words.
func encodeExample(g Geometry, x []uint8, dst []uint32) {
	var (
		features = g.Features()
		chunks   = g.Chunks()
		rowOffs  = g.RowOffsets()
		colOffs  = g.ColOffsets()
		base     = rowOffs + colOffs // first content feature
		patch    int
	)

	for r := 0; r <= rowOffs; r++ {
		for c := 0; c <= colOffs; c++ {
			row := dst[patch*chunks : (patch+1)*chunks]

			// thermometer: bit t is set iff the offset is past t
			for t := 0; t < rowOffs; t++ {
				setLiteral(row, t, r > t, features)
			}
			for t := 0; t < colOffs; t++ {
				setLiteral(row, rowOffs+t, c > t, features)
			}

			for pr := 0; pr < g.PatchRows; pr++ {
				for pc := 0; pc < g.PatchCols; pc++ {
					for ch := 0; ch < g.Channels; ch++ {
						pos := ((r+pr)*g.Cols+(c+pc))*g.Channels + ch
						feature := base + (pr*g.PatchCols+pc)*g.Channels + ch
						setLiteral(row, feature, x[pos] != 0, features)
					}
				}
			}
			patch++
		}
	}
}

// setLiteral sets the positive literal of feature when value holds,
// otherwise its negation at feature+features.
func setLiteral(row []uint32, feature int, value bool, features int) {
	k := feature
	if !value {
		k += features
	}
	row[k/ChunkBits] |= 1 << (k % ChunkBits)
}

// forEachRange splits [0,n) into at most enc.workers contiguous ranges.
func (enc *Encoder) forEachRange(n int, fn func(lo, hi int)) {
	workers := min(enc.workers, n)
	if workers <= 1 {
		fn(0, n)
		return
	}

	var g errgroup.Group
	step := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += step {
		hi := min(lo+step, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

// SPDX-License-Identifier: MIT

// Package encoder: geometry and data types shared by the encoder and its
// consumers. Errors live in errors.go, options in options.go.
package encoder

import "fmt"

// ChunkBits is the number of literals packed into one chunk word.
const ChunkBits = 32

// Geometry describes the full input grid and the sliding patch.
// It is immutable once produced by NewGeometry.
type Geometry struct {
	Rows, Cols, Channels int // full input extents
	PatchRows, PatchCols int // sliding window extents
}

// NewGeometry validates an input shape (example axis first) and an optional
// patch (patchRows, patchCols). A nil patch selects one full-input window.
// Stage 1 (Validate): rank ∈ {2,3,4}, positive extents, patch fits.
// Stage 2 (Finalize): return the geometry; nothing is allocated.
// Complexity: O(1).
func NewGeometry(shape []int, patch []int) (Geometry, error) {
	var g Geometry

	switch len(shape) {
	case 2:
		g.Rows, g.Cols, g.Channels = shape[1], 1, 1
	case 3:
		g.Rows, g.Cols, g.Channels = shape[1], shape[2], 1
	case 4:
		g.Rows, g.Cols, g.Channels = shape[1], shape[2], shape[3]
	default:
		return Geometry{}, fmt.Errorf("NewGeometry(rank=%d): %w", len(shape), ErrUnsupportedRank)
	}
	if shape[0] < 0 || g.Rows <= 0 || g.Cols <= 0 || g.Channels <= 0 {
		return Geometry{}, fmt.Errorf("NewGeometry(%v): %w", shape, ErrBadShape)
	}

	if patch == nil {
		g.PatchRows, g.PatchCols = g.Rows, g.Cols
		return g, nil
	}
	if len(patch) != 2 || patch[0] <= 0 || patch[1] <= 0 {
		return Geometry{}, fmt.Errorf("NewGeometry(patch=%v): %w", patch, ErrBadShape)
	}
	if patch[0] > g.Rows || patch[1] > g.Cols {
		return Geometry{}, fmt.Errorf("NewGeometry(patch=%v, input=%dx%d): %w", patch, g.Rows, g.Cols, ErrPatchTooLarge)
	}
	g.PatchRows, g.PatchCols = patch[0], patch[1]

	return g, nil
}

// RowOffsets is the number of row-offset thermometer features.
func (g Geometry) RowOffsets() int { return g.Rows - g.PatchRows }

// ColOffsets is the number of column-offset thermometer features.
func (g Geometry) ColOffsets() int { return g.Cols - g.PatchCols }

// Features returns F, the number of boolean features per patch.
func (g Geometry) Features() int {
	return g.PatchRows*g.PatchCols*g.Channels + g.RowOffsets() + g.ColOffsets()
}

// Literals returns 2·F.
func (g Geometry) Literals() int { return 2 * g.Features() }

// Patches returns the number of window positions.
func (g Geometry) Patches() int { return (g.RowOffsets() + 1) * (g.ColOffsets() + 1) }

// Chunks returns ceil(Literals / ChunkBits).
func (g Geometry) Chunks() int { return (g.Literals()-1)/ChunkBits + 1 }

// ExampleSize is the number of raw values per example.
func (g Geometry) ExampleSize() int { return g.Rows * g.Cols * g.Channels }

// String implements fmt.Stringer.
func (g Geometry) String() string {
	return fmt.Sprintf("%dx%dx%d/patch %dx%d (features=%d patches=%d chunks=%d)",
		g.Rows, g.Cols, g.Channels, g.PatchRows, g.PatchCols, g.Features(), g.Patches(), g.Chunks())
}

// Tensor is a row-major binary input block. Shape[0] is the number of
// examples; any non-zero Data value is read as true.
type Tensor struct {
	Shape []int
	Data  []uint8
}

// Examples returns Shape[0], or 0 for an empty shape.
func (t Tensor) Examples() int {
	if len(t.Shape) == 0 {
		return 0
	}
	return t.Shape[0]
}

// Encoded holds the literal rows of a block of examples:
// words[((e·patches)+p)·chunks + k] is chunk k of patch p of example e.
// It is never mutated after Encode returns.
type Encoded struct {
	examples int
	patches  int
	chunks   int
	literals int
	words    []uint32
}

// Examples returns the number of encoded examples.
func (x *Encoded) Examples() int { return x.examples }

// Patches returns the number of patches per example.
func (x *Encoded) Patches() int { return x.patches }

// Chunks returns the number of chunk words per patch.
func (x *Encoded) Chunks() int { return x.chunks }

// Literals returns the number of meaningful literal bits per patch.
func (x *Encoded) Literals() int { return x.literals }

// Example returns the patches·chunks words of example e.
// The slice aliases internal storage and must be treated as read-only.
// Complexity: O(1).
func (x *Encoded) Example(e int) ([]uint32, error) {
	if e < 0 || e >= x.examples {
		return nil, fmt.Errorf("Encoded.Example(%d): %w", e, ErrOutOfRange)
	}
	size := x.patches * x.chunks
	return x.words[e*size : (e+1)*size : (e+1)*size], nil
}

// Patch returns the chunk row of patch p in example e (read-only).
// Complexity: O(1).
func (x *Encoded) Patch(e, p int) ([]uint32, error) {
	row, err := x.Example(e)
	if err != nil {
		return nil, err
	}
	if p < 0 || p >= x.patches {
		return nil, fmt.Errorf("Encoded.Patch(%d,%d): %w", e, p, ErrOutOfRange)
	}
	return row[p*x.chunks : (p+1)*x.chunks : (p+1)*x.chunks], nil
}

// Literal reports the truth value of literal k in patch p of example e.
// Complexity: O(1).
func (x *Encoded) Literal(e, p, k int) (bool, error) {
	row, err := x.Patch(e, p)
	if err != nil {
		return false, err
	}
	if k < 0 || k >= x.literals {
		return false, fmt.Errorf("Encoded.Literal(%d,%d,%d): %w", e, p, k, ErrOutOfRange)
	}
	return row[k/ChunkBits]&(1<<(k%ChunkBits)) != 0, nil
}

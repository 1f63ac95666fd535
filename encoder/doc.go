// Package encoder turns raw binary feature tensors into the bit-packed
// literal rows consumed by clause evaluation.
//
// What:
//
//   - Geometry describes the input grid (rows × cols × channels) and the
//     sliding patch (patchRows × patchCols) a convolutional clause sees.
//   - Every patch becomes one row of 32-bit chunks holding 2·F literals:
//     feature k at bit k, its negation at bit F+k.
//   - Each row starts with two thermometer groups that mark the patch row and
//     column offset, so clauses can learn position-sensitive patterns.
//
// Layout of the F features of one patch:
//
//	[ row offset (rows−patchRows) | col offset (cols−patchCols) | patch content (patchRows·patchCols·channels) ]
//
// Shapes:
//
//   - rank 2 (n, F)          → rows=F, cols=1, channels=1 (a flat feature vector)
//   - rank 3 (n, R, C)       → a single-channel grid
//   - rank 4 (n, R, C, Ch)   → a multi-channel grid
//
// Complexity:
//
//   - Encode: O(n · patches · F) time, O(n · patches · chunks) memory.
//
// Errors:
//
//   - ErrUnsupportedRank: shape rank is not 2, 3 or 4.
//   - ErrBadShape: non-positive extent or malformed patch.
//   - ErrPatchTooLarge: patch exceeds the input along an axis.
//   - ErrShapeMismatch: tensor does not match the encoder geometry.
//   - ErrOutOfRange: example/patch/literal index outside the encoded block.
package encoder

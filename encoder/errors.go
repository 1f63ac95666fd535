// SPDX-License-Identifier: MIT

package encoder

import "errors"

var (
	// ErrUnsupportedRank indicates an input shape whose rank is not 2, 3 or 4.
	ErrUnsupportedRank = errors.New("encoder: unsupported input rank")

	// ErrBadShape indicates a non-positive extent or a patch that is not (rows, cols).
	ErrBadShape = errors.New("encoder: invalid shape")

	// ErrPatchTooLarge indicates a patch extent larger than the input along an axis.
	ErrPatchTooLarge = errors.New("encoder: patch exceeds input dimensions")

	// ErrShapeMismatch indicates a tensor that does not match the encoder geometry.
	ErrShapeMismatch = errors.New("encoder: tensor shape mismatch")

	// ErrOutOfRange indicates an example, patch or literal index outside bounds.
	ErrOutOfRange = errors.New("encoder: index out of range")
)

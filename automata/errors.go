// SPDX-License-Identifier: MIT

package automata

import "errors"

var (
	// ErrBadShape indicates non-positive clause or literal counts.
	ErrBadShape = errors.New("automata: clauses and literals must be > 0")

	// ErrBadBits indicates a counter width outside [1, MaxBits].
	ErrBadBits = errors.New("automata: state bits out of range")

	// ErrStateRange indicates a counter value outside [0, 2^B).
	ErrStateRange = errors.New("automata: state out of range")

	// ErrOutOfRange indicates a clause or literal index outside bounds.
	ErrOutOfRange = errors.New("automata: index out of range")
)

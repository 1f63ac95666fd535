// SPDX-License-Identifier: MIT
// Package clause: sentinel error set.
// Every operation returns one of these (possibly wrapped with operation
// context via bankErrorf) and tests match them with errors.Is. A failed
// precondition always aborts before any automaton is written.

package clause

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tsetlin/automata"
)

var (
	// ErrBadConfig indicates a non-positive clause count or state width.
	ErrBadConfig = errors.New("clause: invalid bank configuration")

	// ErrGeometryMismatch indicates encoded input produced for another layout.
	ErrGeometryMismatch = errors.New("clause: encoded input does not match bank geometry")

	// ErrMaskLength indicates a clause or literal mask of the wrong length.
	ErrMaskLength = errors.New("clause: mask length mismatch")

	// ErrInvalidParams indicates learning parameters outside their domain.
	ErrInvalidParams = errors.New("clause: invalid learning parameters")

	// ErrNilInput indicates a nil *encoder.Encoded.
	ErrNilInput = errors.New("clause: nil encoded input")

	// ErrNilRNG indicates a nil random generator passed to a stochastic operation.
	ErrNilRNG = errors.New("clause: nil random generator")
)

// Shared with the automata package so errors.Is matches either name.
var (
	// ErrOutOfRange indicates a clause, literal or example index outside bounds.
	ErrOutOfRange = automata.ErrOutOfRange

	// ErrStateRange indicates a counter value outside [0, 2^B).
	ErrStateRange = automata.ErrStateRange
)

// bankErrorf wraps err with the Bank method that produced it.
func bankErrorf(op string, err error) error {
	return fmt.Errorf("Bank.%s: %w", op, err)
}

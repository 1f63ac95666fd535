// SPDX-License-Identifier: MIT

package automata

import (
	"fmt"
	"math/bits"
)

// ChunkBits is the number of automata sharing one word.
const ChunkBits = 32

// MaxBits is the widest supported counter.
const MaxBits = 32

// Action is the decision an automaton currently reports.
type Action uint8

const (
	// Exclude leaves the literal out of the clause (counter < 2^(B-1)).
	Exclude Action = iota
	// Include puts the literal into the clause (counter ≥ 2^(B-1)).
	Include
)

// String implements fmt.Stringer.
func (a Action) String() string {
	if a == Include {
		return "Include"
	}
	return "Exclude"
}

// Chunks returns ceil(literals / ChunkBits).
func Chunks(literals int) int { return (literals-1)/ChunkBits + 1 }

// Filter returns the mask of meaningful bits in the last chunk.
func Filter(literals int) uint32 {
	if rem := literals % ChunkBits; rem != 0 {
		return ^(^uint32(0) << rem)
	}
	return ^uint32(0)
}

// Bank is a fixed arena of clauses × literals counters of width bits.
// It is sized once by New and never grows.
type Bank struct {
	clauses  int
	literals int
	chunks   int
	bits     int
	filter   uint32   // valid bits of the last chunk
	words    []uint32 // clauses·chunks·bits, bit-sliced
}

// New allocates a bank with every counter set to initial.
// Stage 1 (Validate): positive shape, bits ∈ [1, MaxBits], initial < 2^bits.
// Stage 2 (Prepare): allocate the flat arena.
// Stage 3 (Execute): broadcast initial into every bit plane.
// Complexity: O(clauses·chunks·bits) time and memory.
func New(clauses, literals, nbits int, initial uint32) (*Bank, error) {
	if clauses <= 0 || literals <= 0 {
		return nil, fmt.Errorf("New(%d,%d): %w", clauses, literals, ErrBadShape)
	}
	if nbits < 1 || nbits > MaxBits {
		return nil, fmt.Errorf("New(bits=%d): %w", nbits, ErrBadBits)
	}
	if uint64(initial) > maxState(nbits) {
		return nil, fmt.Errorf("New(initial=%d, bits=%d): %w", initial, nbits, ErrStateRange)
	}

	b := &Bank{
		clauses:  clauses,
		literals: literals,
		chunks:   Chunks(literals),
		bits:     nbits,
		filter:   Filter(literals),
	}
	b.words = make([]uint32, clauses*b.chunks*nbits)

	for j := 0; j < clauses; j++ {
		s := b.Clause(j)
		for k := 0; k < b.chunks; k++ {
			s.Assign(k, ^uint32(0), initial)
		}
	}

	return b, nil
}

func maxState(nbits int) uint64 { return 1<<uint(nbits) - 1 }

// Clauses returns the number of clauses.
func (b *Bank) Clauses() int { return b.clauses }

// Literals returns the number of literals per clause.
func (b *Bank) Literals() int { return b.literals }

// Chunks returns the number of chunk words per clause and bit plane.
func (b *Bank) Chunks() int { return b.chunks }

// Bits returns the counter width.
func (b *Bank) Bits() int { return b.bits }

// MaxState returns 2^B − 1.
func (b *Bank) MaxState() uint32 { return uint32(maxState(b.bits)) }

// Threshold returns 2^(B−1), the smallest Include state.
func (b *Bank) Threshold() uint32 { return 1 << uint(b.bits-1) }

// locate validates (clause, literal) and returns the clause slice, chunk and bit.
func (b *Bank) locate(op string, clause, literal int) (Slice, int, uint32, error) {
	if clause < 0 || clause >= b.clauses || literal < 0 || literal >= b.literals {
		return Slice{}, 0, 0, fmt.Errorf("Bank.%s(%d,%d): %w", op, clause, literal, ErrOutOfRange)
	}
	return b.Clause(clause), literal / ChunkBits, 1 << uint(literal%ChunkBits), nil
}

// State returns the counter of (clause, literal).
// Complexity: O(B).
func (b *Bank) State(clause, literal int) (uint32, error) {
	s, chunk, bit, err := b.locate("State", clause, literal)
	if err != nil {
		return 0, err
	}
	return s.state(chunk, bit), nil
}

// SetState overwrites the counter of (clause, literal).
// The value is range-checked before anything is written.
// Complexity: O(B).
func (b *Bank) SetState(clause, literal int, v uint32) error {
	s, chunk, bit, err := b.locate("SetState", clause, literal)
	if err != nil {
		return err
	}
	if uint64(v) > maxState(b.bits) {
		return fmt.Errorf("Bank.SetState(%d,%d)=%d with %d bits: %w", clause, literal, v, b.bits, ErrStateRange)
	}
	s.Assign(chunk, bit, v)

	return nil
}

// Action reports Include when the counter's top bit is set.
// Complexity: O(1).
func (b *Bank) Action(clause, literal int) (Action, error) {
	s, chunk, bit, err := b.locate("Action", clause, literal)
	if err != nil {
		return Exclude, err
	}
	if s.Included(chunk)&bit != 0 {
		return Include, nil
	}
	return Exclude, nil
}

// CountIncluded returns how many literals clause currently includes.
// Complexity: O(chunks).
func (b *Bank) CountIncluded(clause int) (int, error) {
	if clause < 0 || clause >= b.clauses {
		return 0, fmt.Errorf("Bank.CountIncluded(%d): %w", clause, ErrOutOfRange)
	}
	return b.Clause(clause).CountIncluded(), nil
}

// Clause returns the disjoint view over clause j's words.
// j must lie in [0, Clauses()); the view aliases the bank.
func (b *Bank) Clause(j int) Slice {
	size := b.chunks * b.bits
	return Slice{
		words:  b.words[j*size : (j+1)*size : (j+1)*size],
		chunks: b.chunks,
		bits:   b.bits,
		filter: b.filter,
	}
}

// Slice is one clause's automata. Slices of different clauses never overlap.
type Slice struct {
	words  []uint32
	chunks int
	bits   int
	filter uint32
}

// Chunks returns the number of chunks in the clause.
func (s Slice) Chunks() int { return s.chunks }

// clip drops padding automata from m.
func (s Slice) clip(chunk int, m uint32) uint32 {
	if chunk == s.chunks-1 {
		return m & s.filter
	}
	return m
}

func (s Slice) plane(chunk int) []uint32 {
	return s.words[chunk*s.bits : (chunk+1)*s.bits]
}

// Increment adds one to every automaton flagged in active, saturating at 2^B−1.
// Complexity: O(B).
func (s Slice) Increment(chunk int, active uint32) {
	w := s.plane(chunk)
	carry := s.clip(chunk, active)
	for b := 0; b < len(w) && carry != 0; b++ {
		next := w[b] & carry // overflow into the next plane
		w[b] ^= carry
		carry = next
	}
	// carry left over: those counters wrapped from max, pin them back
	if carry != 0 {
		for b := range w {
			w[b] |= carry
		}
	}
}

// Decrement subtracts one from every automaton flagged in active, saturating at 0.
// Complexity: O(B).
func (s Slice) Decrement(chunk int, active uint32) {
	w := s.plane(chunk)
	borrow := s.clip(chunk, active)
	for b := 0; b < len(w) && borrow != 0; b++ {
		next := ^w[b] & borrow
		w[b] ^= borrow
		borrow = next
	}
	if borrow != 0 {
		for b := range w {
			w[b] &^= borrow
		}
	}
}

// Included returns the Include action vector of chunk.
func (s Slice) Included(chunk int) uint32 {
	return s.clip(chunk, s.words[chunk*s.bits+s.bits-1])
}

// AtThreshold flags automata sitting at 2^(B−1)−1, one increment from Include.
func (s Slice) AtThreshold(chunk int) uint32 {
	w := s.plane(chunk)
	m := ^w[s.bits-1]
	for b := 0; b < s.bits-1; b++ {
		m &= w[b]
	}
	return s.clip(chunk, m)
}

// Below flags automata whose counter is strictly less than v.
// Complexity: O(B).
func (s Slice) Below(chunk int, v uint32) uint32 {
	if uint64(v) > maxState(s.bits) {
		return s.clip(chunk, ^uint32(0))
	}
	w := s.plane(chunk)
	var lt uint32
	eq := ^uint32(0)
	for b := s.bits - 1; b >= 0; b-- {
		if v&(1<<uint(b)) != 0 {
			lt |= eq &^ w[b]
			eq &= w[b]
		} else {
			eq &^= w[b]
		}
	}
	return s.clip(chunk, lt)
}

// Assign writes v into every automaton flagged in m.
// v must fit in B bits; higher bits are ignored.
func (s Slice) Assign(chunk int, m uint32, v uint32) {
	w := s.plane(chunk)
	m = s.clip(chunk, m)
	for b := range w {
		if v&(1<<uint(b)) != 0 {
			w[b] |= m
		} else {
			w[b] &^= m
		}
	}
}

// state reassembles the counter behind bit in chunk.
func (s Slice) state(chunk int, bit uint32) uint32 {
	var v uint32
	for b, word := range s.plane(chunk) {
		if word&bit != 0 {
			v |= 1 << uint(b)
		}
	}
	return v
}

// CountIncluded returns the number of Include automata in the clause.
// Complexity: O(chunks).
func (s Slice) CountIncluded() int {
	var n int
	for k := 0; k < s.chunks; k++ {
		n += bits.OnesCount32(s.Included(k))
	}
	return n
}

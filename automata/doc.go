// Package automata stores populations of Tsetlin automata as bit-sliced,
// saturating counters.
//
// A Bank holds one B-bit counter per (clause, literal). Literals are grouped
// into 32-wide chunks and each chunk is stored as B words: word b carries bit
// b of all 32 counters, so one carry chain increments or decrements up to 32
// automata at once.
//
//	words[(clause·chunks + chunk)·B + b] : bit b of the 32 automata in chunk
//
// The top word of a chunk is therefore the Include/Exclude action vector.
//
// Transitions saturate: incrementing 2^B−1 or decrementing 0 leaves the
// counter unchanged. Every clause owns a disjoint run of words; Slice exposes
// that run so callers can mutate different clauses from different goroutines
// without locks.
package automata

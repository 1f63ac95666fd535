// SPDX-License-Identifier: MIT

// Package clause implements a Tsetlin Machine clause bank: a fixed set of
// conjunctive clauses over boolean literals, each literal guarded by a
// saturating counter (its Tsetlin automaton), plus the feedback rules that
// train those counters.
//
// A Bank owns:
//   - the primary automata (automata.Bank), whose top bit decides Include;
//   - the indicator automata and co-occurrence counters used by Type III;
//   - the encoder for its input geometry (encoder.Encoder).
//
// Evaluation:
//
//	EvaluatePredict   clause j is true iff some patch satisfies every included literal
//	EvaluateUpdate    same, ignoring literals switched off in a LiteralMask
//	EvaluatePatchwise full clause × patch matrix
//
// Feedback:
//
//	TypeIFeedback     reinforce matching patterns (specificity S, optional boost, size cap)
//	TypeIIFeedback    push false excluded literals further from inclusion
//	TypeIIIFeedback   reactivate literals stuck deep in Exclude
//
// Determinism: every stochastic call takes a *rand.Rand (math/rand/v2),
// draws one parent seed from it and gives each clause its own PCG stream.
// For a fixed seed the outcome is the same for any WithWorkers value.
//
// Concurrency: one call fans out over disjoint clause ranges and returns
// after all of them finish. A Bank is not safe for concurrent feedback.
//
// Errors are sentinels (see errors.go) wrapped with the failing method name;
// every precondition is checked before any counter changes.
package clause

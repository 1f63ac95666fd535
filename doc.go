// Package tsetlin is an in-process Tsetlin Machine clause-bank engine:
// bit-packed literal encoding, bit-sliced automaton storage, clause
// evaluation and the three feedback rules, plus a small training driver.
//
// 🚀 What is in the box?
//
//	• Encoding: thermometer-coded patch positions + pixel literals and their negations
//	• Storage: saturating B-bit counters, 32 automata per word, one arena per bank
//	• Evaluation: predict / update (literal-masked) / patch-wise clause outputs
//	• Feedback: Type I (specificity S, boost, size cap), Type II, Type III reactivation
//	• Statistics: literal frequency over active clauses, clause sizes
//	• Driver: YAML config, seeded training loop, slog/otel/Prometheus telemetry
//
// ✨ Guarantees
//
//   - Deterministic: one *rand.Rand per call, per-clause derived streams,
//     identical results for any worker count
//   - Fail-fast: every precondition checked before a single counter changes
//   - Pure Go: no cgo; math/bits carry chains instead of native kernels
//
// Subpackages:
//
//	encoder/  Geometry, Tensor → Encoded literal rows
//	automata/ bit-sliced counter arena and per-clause Slice views
//	clause/   Bank: evaluation, feedback, statistics, Prometheus metrics
//	learner/  Machine: single-output training driver (Fit / Predict)
//
// Quick start:
//
//	cfg := learner.DefaultConfig()
//	m, _ := learner.New(cfg, []int{n, 28, 28})
//	_ = m.Fit(ctx, images, labels, 10)
//	pred, _ := m.Predict(images)
package tsetlin

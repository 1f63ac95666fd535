// SPDX-License-Identifier: MIT

// Package learner drives a clause.Bank as a single-output Tsetlin Machine.
//
// Clauses alternate polarity (even = for, odd = against). For every training
// example the machine samples a clause/literal selection, sums the clamped
// votes, and gives Type I feedback to the clauses whose polarity agrees with
// the label and Type II to the rest, each clause updated with probability
//
//	(T − v) / 2T  for a positive label,  (T + v) / 2T  otherwise.
//
// Optional Type III feedback keeps stuck literals reachable.
//
// Configuration is a YAML-tagged Config (LoadConfig, validated with
// go-playground/validator). Fit emits one otel span per call and per epoch,
// records epoch duration and example counts on the configured meter, and
// logs epoch summaries through log/slog.
package learner

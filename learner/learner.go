// SPDX-License-Identifier: MIT

package learner

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/katalvlaran/tsetlin/clause"
	"github.com/katalvlaran/tsetlin/encoder"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Machine is a single-output Tsetlin Machine: even clauses vote for the
// positive class, odd clauses against it. Not safe for concurrent use.
type Machine struct {
	cfg    Config
	bank   *clause.Bank
	rng    *rand.Rand
	logger *slog.Logger
	tel    *telemetry
}

// New validates cfg and allocates the clause bank for inputs of shape
// (example axis first, any example count).
// Errors: ErrInvalidConfig, or the clause/encoder construction errors.
func New(cfg Config, shape []int, opts ...Option) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := gatherOptions(opts)

	bankOpts := append([]clause.Option{clause.WithLogger(o.logger)}, o.bank...)
	bank, err := clause.New(clause.Config{
		Clauses:      cfg.Clauses,
		StateBitsTA:  cfg.StateBitsTA,
		StateBitsInd: cfg.StateBitsInd,
		Shape:        shape,
		Patch:        cfg.Patch,
	}, bankOpts...)
	if err != nil {
		return nil, err
	}

	return &Machine{
		cfg:    cfg,
		bank:   bank,
		rng:    clause.NewRNG(cfg.Seed),
		logger: o.logger,
		tel:    newTelemetry(o.tracer, o.meter),
	}, nil
}

// Bank exposes the clause bank for inspection (statistics, states).
func (m *Machine) Bank() *clause.Bank { return m.bank }

// Config returns the configuration the machine was built with.
func (m *Machine) Config() Config { return m.cfg }

// positive reports the polarity of clause j.
func positive(j int) bool { return j%2 == 0 }

// tally sums signed clause outputs over the clauses kept by active (nil = all)
// and clamps the result to [−t, t].
func tally(out []bool, active clause.ClauseMask, t int) int {
	var v int
	for j, fired := range out {
		if !fired || (active != nil && !active[j]) {
			continue
		}
		if positive(j) {
			v++
		} else {
			v--
		}
	}
	return max(-t, min(t, v))
}

// Votes returns the clamped class sum of example e in predict mode.
func (m *Machine) Votes(x *encoder.Encoded, e int) (int, error) {
	out, err := m.bank.EvaluatePredict(x, e)
	if err != nil {
		return 0, err
	}
	return tally(out, nil, m.cfg.Params.T), nil
}

// UpdateProbability is the chance a clause is updated for a vote sum v:
// (T−v)/2T when the target is positive, (T+v)/2T otherwise.
func UpdateProbability(v, t int, target bool) float64 {
	v = max(-t, min(t, v))
	if target {
		return float64(t-v) / float64(2*t)
	}
	return float64(t+v) / float64(2*t)
}

// Step trains on example e once.
// Stage 1: sample the clause/literal selection.
// Stage 2: vote in update mode and derive the update probability.
// Stage 3: Type I to clauses agreeing with target, Type II to the others.
// Stage 4: Type III when enabled (target for positive clauses, ¬target for negative).
func (m *Machine) Step(rng *rand.Rand, x *encoder.Encoded, e int, target bool) error {
	p := m.cfg.Params
	sel, err := m.bank.SampleSelection(rng, p, 1)
	if err != nil {
		return err
	}
	out, err := m.bank.EvaluateUpdate(sel.LiteralActive, x, e)
	if err != nil {
		return err
	}
	sel.UpdateP = UpdateProbability(tally(out, sel.ClauseActive, p.T), p.T, target)

	agree, oppose := m.split(sel, func(j int) bool { return positive(j) == target })
	if err := m.bank.TypeIFeedback(rng, agree, x, e, p); err != nil {
		return err
	}
	if err := m.bank.TypeIIFeedback(rng, oppose, x, e); err != nil {
		return err
	}

	if !m.cfg.TypeIII {
		return nil
	}
	pos, neg := m.split(sel, positive)
	if err := m.bank.TypeIIIFeedback(rng, pos, x, e, target, p); err != nil {
		return err
	}
	return m.bank.TypeIIIFeedback(rng, neg, x, e, !target, p)
}

// split partitions the active clauses of sel by keep.
func (m *Machine) split(sel clause.Selection, keep func(j int) bool) (in, out clause.Selection) {
	in, out = sel, sel
	in.ClauseActive = make(clause.ClauseMask, len(sel.ClauseActive))
	out.ClauseActive = make(clause.ClauseMask, len(sel.ClauseActive))
	for j, a := range sel.ClauseActive {
		if !a {
			continue
		}
		if keep(j) {
			in.ClauseActive[j] = true
		} else {
			out.ClauseActive[j] = true
		}
	}
	return in, out
}

// Fit encodes t once and runs epochs passes over it in example order.
// It stops at the next example boundary once ctx is done and returns ctx.Err().
// Errors: ErrLabelsMismatch, encoder errors, ctx.Err().
func (m *Machine) Fit(ctx context.Context, t encoder.Tensor, y []bool, epochs int) (err error) {
	x, err := m.bank.Encode(t)
	if err != nil {
		return err
	}
	if len(y) != x.Examples() {
		return fmt.Errorf("Fit(%d labels, %d examples): %w", len(y), x.Examples(), ErrLabelsMismatch)
	}

	ctx, span := m.tel.startFitSpan(ctx, x.Examples(), epochs, m.bank.Clauses())
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	for epoch := 0; epoch < epochs; epoch++ {
		if err := m.epoch(ctx, x, y, epoch); err != nil {
			return err
		}
	}

	return nil
}

func (m *Machine) epoch(ctx context.Context, x *encoder.Encoded, y []bool, epoch int) error {
	ctx, span := m.tel.startEpochSpan(ctx, epoch)
	defer span.End()

	start := time.Now()
	seen := 0
	for e := 0; e < x.Examples(); e++ {
		if err := ctx.Err(); err != nil {
			m.tel.recordEpoch(ctx, time.Since(start), seen, false)
			span.SetStatus(codes.Error, "interrupted")
			m.logger.Warn("training interrupted",
				slog.Int("epoch", epoch),
				slog.Int("examples", seen),
			)
			return err
		}
		if err := m.Step(m.rng, x, e, y[e]); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		seen++
	}
	elapsed := time.Since(start)
	m.tel.recordEpoch(ctx, elapsed, seen, true)

	acc, err := m.accuracy(x, y)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.Float64("tsetlin.accuracy", acc))
	m.logger.Info("epoch complete",
		slog.Int("epoch", epoch),
		slog.Int("examples", seen),
		slog.Float64("accuracy", acc),
		slog.Duration("elapsed", elapsed),
	)

	return nil
}

// accuracy is the fraction of examples whose prediction equals y.
func (m *Machine) accuracy(x *encoder.Encoded, y []bool) (float64, error) {
	if len(y) == 0 {
		return 0, nil
	}
	hits := 0
	for e := range y {
		v, err := m.Votes(x, e)
		if err != nil {
			return 0, err
		}
		if (v >= 0) == y[e] {
			hits++
		}
	}
	return float64(hits) / float64(len(y)), nil
}

// Predict encodes t and classifies every example: true iff votes ≥ 0.
func (m *Machine) Predict(t encoder.Tensor) ([]bool, error) {
	x, err := m.bank.Encode(t)
	if err != nil {
		return nil, err
	}
	out := make([]bool, x.Examples())
	for e := range out {
		v, err := m.Votes(x, e)
		if err != nil {
			return nil, err
		}
		out[e] = v >= 0
	}
	return out, nil
}

// SPDX-License-Identifier: MIT

package learner

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/katalvlaran/tsetlin/learner"

// telemetry holds the tracer and lazily created instruments of one Machine.
type telemetry struct {
	tracer trace.Tracer
	meter  metric.Meter

	epochDuration metric.Float64Histogram
	examples      metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
}

func newTelemetry(tp trace.TracerProvider, mp metric.MeterProvider) *telemetry {
	return &telemetry{
		tracer: tp.Tracer(instrumentationName),
		meter:  mp.Meter(instrumentationName),
	}
}

// initMetrics creates the instruments. Safe to call multiple times.
func (t *telemetry) initMetrics() error {
	t.metricsOnce.Do(func() {
		var err error

		t.epochDuration, err = t.meter.Float64Histogram(
			"tsetlin_epoch_duration_seconds",
			metric.WithDescription("Duration of one training epoch"),
			metric.WithUnit("s"),
		)
		if err != nil {
			t.metricsErr = err
			return
		}

		t.examples, err = t.meter.Int64Counter(
			"tsetlin_examples_total",
			metric.WithDescription("Total training examples processed"),
		)
		if err != nil {
			t.metricsErr = err
			return
		}
	})
	return t.metricsErr
}

// recordEpoch records one finished (or interrupted) epoch.
func (t *telemetry) recordEpoch(ctx context.Context, d time.Duration, examples int, complete bool) {
	if err := t.initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Bool("complete", complete))
	t.epochDuration.Record(ctx, d.Seconds(), attrs)
	t.examples.Add(ctx, int64(examples))
}

// startFitSpan creates the span covering a whole Fit call.
func (t *telemetry) startFitSpan(ctx context.Context, examples, epochs, clauses int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "Machine.Fit",
		trace.WithAttributes(
			attribute.Int("tsetlin.examples", examples),
			attribute.Int("tsetlin.epochs", epochs),
			attribute.Int("tsetlin.clauses", clauses),
		),
	)
}

// startEpochSpan creates the span of one epoch.
func (t *telemetry) startEpochSpan(ctx context.Context, epoch int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "Machine.Epoch",
		trace.WithAttributes(attribute.Int("tsetlin.epoch", epoch)),
	)
}

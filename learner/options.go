// SPDX-License-Identifier: MIT

package learner

import (
	"log/slog"

	"github.com/katalvlaran/tsetlin/clause"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Machine.
type Option func(*options)

type options struct {
	logger *slog.Logger
	tracer trace.TracerProvider
	meter  metric.MeterProvider
	bank   []clause.Option
}

// WithLogger routes epoch summaries to l. A nil logger keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTracerProvider overrides the global otel tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tracer = tp
		}
	}
}

// WithMeterProvider overrides the global otel meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		if mp != nil {
			o.meter = mp
		}
	}
}

// WithBankOptions forwards options to the underlying clause.Bank.
// The machine's logger is passed first, so a clause.WithLogger here wins.
func WithBankOptions(opts ...clause.Option) Option {
	return func(o *options) { o.bank = append(o.bank, opts...) }
}

func gatherOptions(opts []Option) options {
	o := options{
		logger: slog.New(slog.DiscardHandler),
		tracer: otel.GetTracerProvider(),
		meter:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

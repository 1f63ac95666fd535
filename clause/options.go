// SPDX-License-Identifier: MIT

package clause

import (
	"log/slog"
	"runtime"
)

const panicWorkersInvalid = "clause: WithWorkers: n must be >= 1"

// Option configures a Bank at construction.
type Option func(*options)

type options struct {
	workers int          // clause-range goroutines; default GOMAXPROCS
	logger  *slog.Logger // default discards
	metrics *Metrics     // nil disables metrics
}

// WithWorkers bounds the goroutines used per evaluation or feedback pass.
// Results do not depend on n. Panics when n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}
	return func(o *options) { o.workers = n }
}

// WithLogger routes bank diagnostics to l. A nil logger keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics attaches Prometheus counters built by NewMetrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func gatherOptions(opts []Option) options {
	o := options{
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

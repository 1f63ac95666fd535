// SPDX-License-Identifier: MIT

package encoder

import "runtime"

const panicWorkersInvalid = "encoder: WithWorkers: n must be >= 1"

// Option configures an Encoder.
type Option func(*options)

type options struct {
	workers int // goroutines used to encode example ranges; default GOMAXPROCS
}

// WithWorkers bounds the number of goroutines Encode fans out to.
// Panics when n < 1 (programmer error).
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}
	return func(o *options) { o.workers = n }
}

func gatherOptions(opts []Option) options {
	o := options{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

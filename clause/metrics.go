// SPDX-License-Identifier: MIT

package clause

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus counters a Bank updates after each feedback pass.
// A nil *Metrics records nothing.
type Metrics struct {
	passes        *prometheus.CounterVec
	clauses       *prometheus.CounterVec
	reactivations prometheus.Counter
}

// NewMetrics registers the bank counters on reg.
// Panics if they are already registered there (promauto semantics).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		// passes counts feedback calls by feedback type
		passes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tsetlin_feedback_passes_total",
			Help: "Total feedback passes by feedback type",
		}, []string{"type"}),

		// clauses counts clauses that received feedback, by feedback type
		clauses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tsetlin_feedback_clauses_total",
			Help: "Total clauses updated by feedback type",
		}, []string{"type"}),

		reactivations: f.NewCounter(prometheus.CounterOpts{
			Name: "tsetlin_literal_reactivations_total",
			Help: "Total literals reactivated by Type III feedback",
		}),
	}
}

func (m *Metrics) observePass(kind string, clauses int) {
	if m == nil {
		return
	}
	m.passes.WithLabelValues(kind).Inc()
	m.clauses.WithLabelValues(kind).Add(float64(clauses))
}

func (m *Metrics) observeReactivations(n int) {
	if m == nil || n == 0 {
		return
	}
	m.reactivations.Add(float64(n))
}

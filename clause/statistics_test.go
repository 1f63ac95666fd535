package clause_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/tsetlin/clause"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestLiteralClauseFrequency(t *testing.T) {
	b, err := clause.New(clause.Config{Clauses: 3, StateBitsTA: 3, StateBitsInd: 3, Shape: []int{1, 20}})
	require.NoError(t, err)
	require.Equal(t, 40, b.Literals())
	require.Equal(t, 2, b.Chunks())

	require.NoError(t, b.SetTAState(0, 1, 4))
	require.NoError(t, b.SetTAState(0, 35, 7))
	require.NoError(t, b.SetTAState(1, 1, 5))
	require.NoError(t, b.SetTAState(2, 35, 4))
	require.NoError(t, b.SetTAState(2, 39, 6))

	freq, err := b.LiteralClauseFrequency(nil)
	require.NoError(t, err)
	require.Len(t, freq, 40)
	require.Equal(t, uint32(2), freq[1])
	require.Equal(t, uint32(2), freq[35])
	require.Equal(t, uint32(1), freq[39])
	require.Equal(t, uint32(0), freq[0])

	freq, err = b.LiteralClauseFrequency(clause.ClauseMask{true, false, false})
	require.NoError(t, err)
	require.Equal(t, uint32(1), freq[1])
	require.Equal(t, uint32(1), freq[35])
	require.Equal(t, uint32(0), freq[39])

	_, err = b.LiteralClauseFrequency(clause.ClauseMask{true})
	require.ErrorIs(t, err, clause.ErrMaskLength)

	lits, err := b.IncludedLiterals(2)
	require.NoError(t, err)
	require.Equal(t, []int{35, 39}, lits)

	n, err := b.CountIncluded(0)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	_, err = b.CountIncluded(3)
	require.ErrorIs(t, err, clause.ErrOutOfRange)
	_, err = b.IncludedLiterals(-1)
	require.ErrorIs(t, err, clause.ErrOutOfRange)
	_, err = b.CooccurrenceCount(0, 40)
	require.ErrorIs(t, err, clause.ErrOutOfRange)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	b := single(t, 2, clause.WithMetrics(clause.NewMetrics(reg)), clause.WithWorkers(1))
	x := encode(t, b, []int{1, 1}, []uint8{1})
	p := clause.Params{S: 3, T: 15, D: 0}

	sel := b.AllActive(1)
	sel.ClauseActive[1] = false
	require.NoError(t, b.TypeIFeedback(clause.NewRNG(1), sel, x, 0, p))
	require.NoError(t, b.SetTAState(0, 1, 3)) // keep clause 0 matching
	require.NoError(t, b.TypeIIFeedback(clause.NewRNG(1), b.AllActive(1), x, 0))

	require.NoError(t, b.SetTAState(1, 0, 0))
	require.NoError(t, b.TypeIIIFeedback(clause.NewRNG(1), b.AllActive(1), x, 0, true, p))

	const want = `
# HELP tsetlin_feedback_clauses_total Total clauses updated by feedback type
# TYPE tsetlin_feedback_clauses_total counter
tsetlin_feedback_clauses_total{type="type_i"} 1
tsetlin_feedback_clauses_total{type="type_ii"} 2
tsetlin_feedback_clauses_total{type="type_iii"} 2
# HELP tsetlin_feedback_passes_total Total feedback passes by feedback type
# TYPE tsetlin_feedback_passes_total counter
tsetlin_feedback_passes_total{type="type_i"} 1
tsetlin_feedback_passes_total{type="type_ii"} 1
tsetlin_feedback_passes_total{type="type_iii"} 1
# HELP tsetlin_literal_reactivations_total Total literals reactivated by Type III feedback
# TYPE tsetlin_literal_reactivations_total counter
tsetlin_literal_reactivations_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want)))
}

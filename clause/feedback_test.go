package clause_test

import (
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/tsetlin/clause"
	"github.com/stretchr/testify/require"
)

func state(t *testing.T, b *clause.Bank, j, k int) uint32 {
	t.Helper()
	v, err := b.TAState(j, k)
	require.NoError(t, err)
	return v
}

//----------------------------------------------------------------------------//
// Type I
//----------------------------------------------------------------------------//

// One clause, feature true, both literals one step from Include, S = 3.
func TestTypeI_SpecificityFrequencies(t *testing.T) {
	const trials = 3000
	b := single(t, 1)
	x := encode(t, b, []int{1, 1}, []uint8{1})
	rng := clause.NewRNG(42)
	p := clause.Params{S: 3, T: 15}

	var feature, negated int
	for i := 0; i < trials; i++ {
		require.NoError(t, b.SetTAState(0, 0, 3))
		require.NoError(t, b.SetTAState(0, 1, 3))
		require.NoError(t, b.TypeIFeedback(rng, b.AllActive(1), x, 0, p))
		if state(t, b, 0, 0) == 4 {
			feature++
		}
		if state(t, b, 0, 1) == 4 {
			negated++
		}
	}

	require.InDelta(t, 2.0/3.0, float64(feature)/trials, 0.05)
	require.InDelta(t, 1.0/3.0, float64(negated)/trials, 0.05)
}

func TestTypeI_BoostRewardsEveryTrueLiteral(t *testing.T) {
	b := single(t, 1)
	x := encode(t, b, []int{1, 1}, []uint8{1})
	rng := clause.NewRNG(7)
	p := clause.Params{S: 10, T: 15, BoostTruePositiveFeedback: true}

	// ¬feature is reset too: once included it would stop the clause matching
	for i := 0; i < 2000; i++ {
		require.NoError(t, b.SetTAState(0, 0, 2))
		require.NoError(t, b.SetTAState(0, 1, 3))
		require.NoError(t, b.TypeIFeedback(rng, b.AllActive(1), x, 0, p))
		require.Equal(t, uint32(3), state(t, b, 0, 0), "trial %d", i)
	}
}

func TestTypeI_BoostWithNegationMasked(t *testing.T) {
	b := single(t, 1)
	x := encode(t, b, []int{1, 1}, []uint8{1})
	rng := clause.NewRNG(8)
	p := clause.Params{S: 10, T: 15, BoostTruePositiveFeedback: true}

	sel := b.AllActive(1)
	sel.LiteralActive.Set(1, false)
	for want := uint32(4); want <= 7; want++ {
		require.NoError(t, b.TypeIFeedback(rng, sel, x, 0, p))
		require.Equal(t, want, state(t, b, 0, 0))
		require.Equal(t, uint32(3), state(t, b, 0, 1))
	}
}

func TestTypeI_ClauseAtCapTakesNoNewInclusions(t *testing.T) {
	b := single(t, 1)
	x := encode(t, b, []int{1, 1}, []uint8{1})
	rng := clause.NewRNG(9)
	p := clause.Params{S: 1, T: 15, BoostTruePositiveFeedback: true, MaxIncludedLiterals: 1}

	require.NoError(t, b.SetTAState(0, 0, 4)) // feature included, clause at cap
	for i := 0; i < 50; i++ {
		require.NoError(t, b.TypeIFeedback(rng, b.AllActive(1), x, 0, p))
		require.Equal(t, uint32(min(5+i, 7)), state(t, b, 0, 0), "included true literal still rewarded")
		require.Equal(t, uint32(3), state(t, b, 0, 1), "no flip past the cap")
	}
}

func TestTypeI_ClauseAtCapKeepsExcludedBelowThreshold(t *testing.T) {
	b, err := clause.New(clause.Config{Clauses: 1, StateBitsTA: 3, StateBitsInd: 3, Shape: []int{1, 2}})
	require.NoError(t, err)
	x := encode(t, b, []int{1, 2}, []uint8{1, 0})
	rng := clause.NewRNG(10)
	p := clause.Params{S: 1, T: 15, MaxIncludedLiterals: 1}

	// literals: x0 x1 ¬x0 ¬x1; x0 included, ¬x0 two steps below Include
	require.NoError(t, b.SetTAState(0, 0, 4))
	require.NoError(t, b.SetTAState(0, 2, 1))
	require.NoError(t, b.TypeIFeedback(rng, b.AllActive(1), x, 0, p))

	// S = 1: false excluded literals always step, unless the step would include
	require.Equal(t, uint32(4), state(t, b, 0, 0))
	require.Equal(t, uint32(3), state(t, b, 0, 1))
	require.Equal(t, uint32(2), state(t, b, 0, 2))
	require.Equal(t, uint32(3), state(t, b, 0, 3))
}

func TestTypeI_CapBudgetsNewInclusions(t *testing.T) {
	b := single(t, 1)
	x := encode(t, b, []int{1, 1}, []uint8{1})
	rng := clause.NewRNG(11)
	// S = 1 with boost makes every eligible literal want to flip
	p := clause.Params{S: 1, T: 15, BoostTruePositiveFeedback: true, MaxIncludedLiterals: 1}

	for i := 0; i < 50; i++ {
		require.NoError(t, b.SetTAState(0, 0, 3))
		require.NoError(t, b.SetTAState(0, 1, 3))
		require.NoError(t, b.TypeIFeedback(rng, b.AllActive(1), x, 0, p))
		n, err := b.CountIncluded(0)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	}
}

func TestTypeI_SaturatesAtMax(t *testing.T) {
	b := single(t, 1)
	x := encode(t, b, []int{1, 1}, []uint8{1})
	p := clause.Params{S: 2, T: 15, BoostTruePositiveFeedback: true}

	require.NoError(t, b.SetTAState(0, 0, 7))
	require.NoError(t, b.TypeIFeedback(clause.NewRNG(1), b.AllActive(1), x, 0, p))
	require.Equal(t, uint32(7), state(t, b, 0, 0))
}

func TestFeedback_UpdatePZeroSkipsEverything(t *testing.T) {
	b := single(t, 4)
	x := encode(t, b, []int{1, 1}, []uint8{1})
	p := clause.Params{S: 1, T: 15, BoostTruePositiveFeedback: true}

	before := snapshot(t, b)
	require.NoError(t, b.TypeIFeedback(clause.NewRNG(3), b.AllActive(0), x, 0, p))
	require.NoError(t, b.TypeIIFeedback(clause.NewRNG(3), b.AllActive(0), x, 0))
	require.Equal(t, before, snapshot(t, b))
}

func TestFeedback_InactiveClauseUntouched(t *testing.T) {
	b := single(t, 2)
	x := encode(t, b, []int{1, 1}, []uint8{1})
	p := clause.Params{S: 1, T: 15, BoostTruePositiveFeedback: true}

	sel := b.AllActive(1)
	sel.ClauseActive[1] = false
	require.NoError(t, b.TypeIFeedback(clause.NewRNG(5), sel, x, 0, p))
	require.Equal(t, uint32(4), state(t, b, 0, 0))
	require.Equal(t, uint32(3), state(t, b, 1, 0))
	require.Equal(t, uint32(3), state(t, b, 1, 1))
}

//----------------------------------------------------------------------------//
// Type II
//----------------------------------------------------------------------------//

func TestTypeII_DecrementsFalseExcluded(t *testing.T) {
	b := single(t, 1)
	x := encode(t, b, []int{1, 1}, []uint8{1})
	rng := clause.NewRNG(13)

	require.NoError(t, b.TypeIIFeedback(rng, b.AllActive(1), x, 0))
	require.Equal(t, uint32(3), state(t, b, 0, 0), "true literal untouched")
	require.Equal(t, uint32(2), state(t, b, 0, 1))

	for i := 0; i < 5; i++ {
		require.NoError(t, b.TypeIIFeedback(rng, b.AllActive(1), x, 0))
	}
	require.Equal(t, uint32(0), state(t, b, 0, 1), "saturates at zero")

	// an inactive literal is left alone
	require.NoError(t, b.SetTAState(0, 1, 3))
	sel := b.AllActive(1)
	sel.LiteralActive.Set(1, false)
	require.NoError(t, b.TypeIIFeedback(rng, sel, x, 0))
	require.Equal(t, uint32(3), state(t, b, 0, 1))
}

func TestTypeII_NonMatchingClauseUntouched(t *testing.T) {
	b := single(t, 1)
	x := encode(t, b, []int{1, 1}, []uint8{0})
	require.NoError(t, b.SetTAState(0, 0, 5)) // includes the false feature

	before := snapshot(t, b)
	require.NoError(t, b.TypeIIFeedback(clause.NewRNG(1), b.AllActive(1), x, 0))
	require.Equal(t, before, snapshot(t, b))
}

//----------------------------------------------------------------------------//
// Determinism & validation
//----------------------------------------------------------------------------//

func TestFeedback_IndependentOfWorkers(t *testing.T) {
	shape := []int{6, 6, 6}
	data := randomData(rand.New(rand.NewPCG(8, 9)), 6, 36)
	p := clause.Params{S: 3.9, T: 15, MaxIncludedLiterals: 12, LiteralDropProbability: 0.1, ClauseDropProbability: 0.2, D: 3}

	run := func(workers int) []uint32 {
		b, err := clause.New(clause.Config{Clauses: 40, StateBitsTA: 6, StateBitsInd: 4, Shape: shape, Patch: []int{3, 3}},
			clause.WithWorkers(workers))
		require.NoError(t, err)
		x := encode(t, b, shape, data)
		rng := clause.NewRNG(2024)

		for epoch := 0; epoch < 4; epoch++ {
			for e := 0; e < x.Examples(); e++ {
				sel, err := b.SampleSelection(rng, p, 0.7)
				require.NoError(t, err)
				require.NoError(t, b.TypeIFeedback(rng, sel, x, e, p))
				require.NoError(t, b.TypeIIFeedback(rng, sel, x, (e+1)%x.Examples()))
				require.NoError(t, b.TypeIIIFeedback(rng, sel, x, e, e%2 == 0, p))
			}
		}
		return snapshot(t, b)
	}

	ref := run(1)
	for _, w := range []int{2, 3, 8} {
		require.Equalf(t, ref, run(w), "workers=%d", w)
	}
}

func TestFeedback_ErrorsLeaveBankUntouched(t *testing.T) {
	b := single(t, 2)
	x := encode(t, b, []int{1, 1}, []uint8{1})
	other, err := clause.New(clause.Config{Clauses: 2, StateBitsTA: 3, StateBitsInd: 3, Shape: []int{1, 3}})
	require.NoError(t, err)
	wide := encode(t, other, []int{1, 3}, []uint8{1, 0, 1})

	good := clause.Params{S: 1, T: 15, BoostTruePositiveFeedback: true}
	shortMask := b.AllActive(1)
	shortMask.ClauseActive = shortMask.ClauseActive[:1]
	badP := b.AllActive(1.5)

	cases := []struct {
		name string
		run  func() error
		err  error
	}{
		{"NilRNG", func() error { return b.TypeIFeedback(nil, b.AllActive(1), x, 0, good) }, clause.ErrNilRNG},
		{"BadS", func() error {
			return b.TypeIFeedback(clause.NewRNG(1), b.AllActive(1), x, 0, clause.Params{S: 0.5, T: 1})
		}, clause.ErrInvalidParams},
		{"BadD", func() error {
			return b.TypeIIIFeedback(clause.NewRNG(1), b.AllActive(1), x, 0, true, clause.Params{S: 2, T: 1, D: 1 << 32})
		}, clause.ErrInvalidParams},
		{"BadDrop", func() error {
			return b.TypeIIIFeedback(clause.NewRNG(1), b.AllActive(1), x, 0, true, clause.Params{S: 2, T: 1, ClauseDropProbability: 1})
		}, clause.ErrInvalidParams},
		{"ClauseMask", func() error { return b.TypeIFeedback(clause.NewRNG(1), shortMask, x, 0, good) }, clause.ErrMaskLength},
		{"UpdateP", func() error { return b.TypeIIFeedback(clause.NewRNG(1), badP, x, 0) }, clause.ErrInvalidParams},
		{"NilInput", func() error { return b.TypeIIFeedback(clause.NewRNG(1), b.AllActive(1), nil, 0) }, clause.ErrNilInput},
		{"Geometry", func() error { return b.TypeIFeedback(clause.NewRNG(1), b.AllActive(1), wide, 0, good) }, clause.ErrGeometryMismatch},
		{"Example", func() error { return b.TypeIIIFeedback(clause.NewRNG(1), b.AllActive(1), x, 1, true, good) }, clause.ErrOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := snapshot(t, b)
			require.ErrorIs(t, tc.run(), tc.err)
			require.Equal(t, before, snapshot(t, b))
		})
	}
}

func TestSampleSelection(t *testing.T) {
	b, err := clause.New(clause.Config{Clauses: 400, StateBitsTA: 8, StateBitsInd: 8, Shape: []int{1, 100}})
	require.NoError(t, err)
	rng := clause.NewRNG(17)

	sel, err := b.SampleSelection(rng, clause.Params{S: 2, T: 1, ClauseDropProbability: 0.25, LiteralDropProbability: 0.5}, 0.3)
	require.NoError(t, err)
	require.Len(t, sel.ClauseActive, 400)
	require.Len(t, sel.LiteralActive, b.Chunks())
	require.Equal(t, 0.3, sel.UpdateP)

	var clauses, literals int
	for _, a := range sel.ClauseActive {
		if a {
			clauses++
		}
	}
	for k := 0; k < b.Literals(); k++ {
		if sel.LiteralActive.Active(k) {
			literals++
		}
	}
	require.InDelta(t, 300, clauses, 40)
	require.InDelta(t, 100, literals, 30)
	require.False(t, sel.LiteralActive.Active(b.Literals()), "padding stays inactive")

	_, err = b.SampleSelection(nil, clause.DefaultParams(), 1)
	require.ErrorIs(t, err, clause.ErrNilRNG)
	_, err = b.SampleSelection(rng, clause.DefaultParams(), -0.1)
	require.ErrorIs(t, err, clause.ErrInvalidParams)
}

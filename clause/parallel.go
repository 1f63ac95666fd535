// SPDX-License-Identifier: MIT

package clause

import (
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
)

// minRangeClauses keeps tiny banks on a single goroutine.
const minRangeClauses = 8

// worker is the per-goroutine scratch of one clause range.
type worker struct {
	pcg  *rand.PCG
	rng  *rand.Rand
	hits []int // matching patch indices of the current clause

	visited     int // clauses that received feedback
	reactivated int // literals reset by Type III
}

func newWorker(patches int) *worker {
	pcg := rand.NewPCG(0, 0)
	return &worker{
		pcg:  pcg,
		rng:  rand.New(pcg),
		hits: make([]int, 0, patches),
	}
}

// seed rewinds the worker stream to clause j's stream under parent.
func (w *worker) seed(parent uint64, j int) {
	w.pcg.Seed(deriveSeed(parent, uint64(j)), uint64(j))
}

// forClauses splits [0, clauses) into contiguous ranges, one worker each,
// and blocks until every range is done. The returned workers carry the
// per-range counters.
func (b *Bank) forClauses(fn func(w *worker, lo, hi int)) []*worker {
	n := b.clauses
	ranges := min(b.workers, (n+minRangeClauses-1)/minRangeClauses)
	if ranges <= 1 {
		w := newWorker(b.patches)
		fn(w, 0, n)
		return []*worker{w}
	}

	step := (n + ranges - 1) / ranges
	workers := make([]*worker, 0, ranges)
	var g errgroup.Group
	for lo := 0; lo < n; lo += step {
		hi := min(lo+step, n)
		w := newWorker(b.patches)
		workers = append(workers, w)
		g.Go(func() error {
			fn(w, lo, hi)
			return nil
		})
	}
	_ = g.Wait()

	return workers
}

// passStats sums the worker counters of one pass.
type passStats struct {
	visited     int
	reactivated int
}

func collect(workers []*worker) passStats {
	var s passStats
	for _, w := range workers {
		s.visited += w.visited
		s.reactivated += w.reactivated
	}
	return s
}

// feedbackPass runs fn on every clause that is active, wins its UpdateP draw
// and matches at least one patch of rows under the literal mask. fn receives
// the chosen patch's chunk row.
//
// Exactly one Uint64 is taken from rng; everything else comes from the
// per-clause streams, so results do not depend on the worker count.
func (b *Bank) feedbackPass(rng *rand.Rand, sel Selection, rows []uint32, fn func(w *worker, j int, x []uint32)) passStats {
	parent := rng.Uint64()

	return collect(b.forClauses(func(w *worker, lo, hi int) {
		for j := lo; j < hi; j++ {
			if !sel.ClauseActive[j] {
				continue
			}
			w.seed(parent, j)
			if w.rng.Float64() >= sel.UpdateP {
				continue
			}
			p := b.matchingPatch(w, j, rows, sel.LiteralActive)
			if p < 0 {
				continue
			}
			w.visited++
			fn(w, j, rows[p*b.chunks:(p+1)*b.chunks])
		}
	}))
}

// SPDX-License-Identifier: MIT

package clause

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/tsetlin/automata"
	"github.com/katalvlaran/tsetlin/encoder"
)

// Width defaults.
const (
	// DefaultStateBitsTA is the default primary automaton width.
	DefaultStateBitsTA = 8

	// DefaultStateBitsInd is the default indicator automaton width.
	DefaultStateBitsInd = 8
)

// Config sizes a Bank. Shape is the full input shape with the example axis
// first (rank 2, 3 or 4); Patch is nil or (patchRows, patchCols).
type Config struct {
	Clauses      int   `yaml:"clauses"`
	StateBitsTA  int   `yaml:"state_bits_ta"`
	StateBitsInd int   `yaml:"state_bits_ind"`
	Shape        []int `yaml:"-"`
	Patch        []int `yaml:"patch,omitempty"`
}

// Bank is a clause bank: the primary and indicator automata of every clause,
// the Type III co-occurrence counters and the encoder for its input geometry.
//
// Concurrency: read-only methods (Evaluate*, statistics, state getters) may
// run concurrently with each other. Feedback passes and setters mutate the
// store and must not overlap with any other call.
type Bank struct {
	enc  *encoder.Encoder
	geom encoder.Geometry

	clauses  int
	literals int
	chunks   int
	patches  int

	ta     *automata.Bank // include/exclude automata
	ind    *automata.Bank // Type III indicator automata
	taInit uint32         // 2^(B-1)-1, one reward below Include
	cooc   []uint32       // clauses·literals co-occurrence counters

	workers int
	logger  *slog.Logger
	metrics *Metrics
}

// New builds a bank sized once for cfg.
// Stage 1 (Validate): clause count, state widths, then shape/patch via encoder.
// Stage 2 (Prepare): allocate both automaton arenas and the counters.
// Stage 3 (Finalize): primary automata start at 2^(B−1)−1, indicators at all-ones.
// Errors: ErrBadConfig, encoder.ErrUnsupportedRank, encoder.ErrBadShape,
// encoder.ErrPatchTooLarge.
// Complexity: O(clauses·chunks·(B+B_ind) + clauses·literals).
func New(cfg Config, opts ...Option) (*Bank, error) {
	if cfg.Clauses <= 0 {
		return nil, fmt.Errorf("New(clauses=%d): %w", cfg.Clauses, ErrBadConfig)
	}
	if !validBits(cfg.StateBitsTA) || !validBits(cfg.StateBitsInd) {
		return nil, fmt.Errorf("New(bits ta=%d ind=%d): %w", cfg.StateBitsTA, cfg.StateBitsInd, ErrBadConfig)
	}
	o := gatherOptions(opts)

	enc, err := encoder.New(cfg.Shape, cfg.Patch, encoder.WithWorkers(o.workers))
	if err != nil {
		return nil, err
	}
	geom := enc.Geometry()

	taInit := uint32(1)<<uint(cfg.StateBitsTA-1) - 1
	ta, err := automata.New(cfg.Clauses, geom.Literals(), cfg.StateBitsTA, taInit)
	if err != nil {
		return nil, err
	}
	indInit := ^uint32(0) >> uint(automata.MaxBits-cfg.StateBitsInd)
	ind, err := automata.New(cfg.Clauses, geom.Literals(), cfg.StateBitsInd, indInit)
	if err != nil {
		return nil, err
	}

	b := &Bank{
		enc:      enc,
		geom:     geom,
		clauses:  cfg.Clauses,
		literals: geom.Literals(),
		chunks:   geom.Chunks(),
		patches:  geom.Patches(),
		ta:       ta,
		ind:      ind,
		taInit:   taInit,
		cooc:     make([]uint32, cfg.Clauses*geom.Literals()),
		workers:  o.workers,
		logger:   o.logger,
		metrics:  o.metrics,
	}
	b.logger.Debug("clause bank allocated",
		slog.Int("clauses", b.clauses),
		slog.String("geometry", geom.String()),
		slog.Int("state_bits_ta", cfg.StateBitsTA),
		slog.Int("state_bits_ind", cfg.StateBitsInd),
		slog.Int("workers", b.workers),
	)

	return b, nil
}

func validBits(n int) bool { return n >= 1 && n <= automata.MaxBits }

// Geometry returns the input geometry the bank was built for.
func (b *Bank) Geometry() encoder.Geometry { return b.geom }

// Clauses returns the number of clauses.
func (b *Bank) Clauses() int { return b.clauses }

// Literals returns the number of literals per clause (2·features).
func (b *Bank) Literals() int { return b.literals }

// Chunks returns the number of 32-bit chunks per literal row.
func (b *Bank) Chunks() int { return b.chunks }

// Patches returns the number of patches per example.
func (b *Bank) Patches() int { return b.patches }

// Encode packs a raw tensor with the bank's geometry.
func (b *Bank) Encode(t encoder.Tensor) (*encoder.Encoded, error) {
	return b.enc.Encode(t)
}

// TAState returns the primary counter of (clause, literal).
func (b *Bank) TAState(clause, literal int) (uint32, error) { return b.ta.State(clause, literal) }

// SetTAState overwrites a primary counter; values ≥ 2^B return ErrStateRange.
func (b *Bank) SetTAState(clause, literal int, v uint32) error {
	return b.ta.SetState(clause, literal, v)
}

// TAAction reports whether literal is included in clause.
func (b *Bank) TAAction(clause, literal int) (automata.Action, error) {
	return b.ta.Action(clause, literal)
}

// IndicatorState returns the Type III indicator counter of (clause, literal).
func (b *Bank) IndicatorState(clause, literal int) (uint32, error) {
	return b.ind.State(clause, literal)
}

// SetIndicatorState overwrites an indicator counter.
func (b *Bank) SetIndicatorState(clause, literal int, v uint32) error {
	return b.ind.SetState(clause, literal, v)
}

// exampleRows validates x and e, returning the patches·chunks words of example e.
func (b *Bank) exampleRows(x *encoder.Encoded, e int) ([]uint32, error) {
	if x == nil {
		return nil, ErrNilInput
	}
	if x.Chunks() != b.chunks || x.Patches() != b.patches || x.Literals() != b.literals {
		return nil, fmt.Errorf("%w: input %d patches×%d literals, bank %d×%d",
			ErrGeometryMismatch, x.Patches(), x.Literals(), b.patches, b.literals)
	}
	if e < 0 || e >= x.Examples() {
		return nil, fmt.Errorf("example %d of %d: %w", e, x.Examples(), ErrOutOfRange)
	}
	return x.Example(e)
}

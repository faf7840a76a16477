// Package companion computes greatest fixpoints of monotone maps and the
// companion of a map, and checks coinductive proofs built with the
// coinduction, accumulation and symmetry rules.
//
// The companion t of b is computed from the final chain of b, the descending
// sequence top ≥ b(top) ≥ b²(top) ≥ … which stabilizes at gfp(b) on finite
// lattices: t(x) is the least chain element above x. Every rule reduces to
// lattice inequalities that the engine decides by evaluation.
package companion

import (
	"iter"
	"slices"

	"coinduct/internal/config"
	"coinduct/internal/errors"
	"coinduct/internal/lattice"
	"coinduct/internal/mon"

	"go.uber.org/zap"
)

const (
	DefaultMaxIterations = 4096
	DefaultSymmetryDepth = 5
)

type options struct {
	maxIterations int
	symmetryDepth int
	logger        *zap.Logger
}

// Option configures an Engine.
type Option func(*options)

// WithLogger sets the logger for chain and proof steps.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMaxIterations bounds the length of the final chain.
func WithMaxIterations(n int) Option {
	return func(o *options) { o.maxIterations = n }
}

// WithSymmetryDepth bounds alias unfolding during witness resolution.
func WithSymmetryDepth(n int) Option {
	return func(o *options) { o.symmetryDepth = n }
}

// WithConfig applies the engine section of a loaded configuration. Zero
// fields keep their defaults.
func WithConfig(cfg config.EngineConfig) Option {
	return func(o *options) {
		if cfg.MaxIterations > 0 {
			o.maxIterations = cfg.MaxIterations
		}
		if cfg.SymmetryDepth > 0 {
			o.symmetryDepth = cfg.SymmetryDepth
		}
	}
}

// Engine holds a lattice, a monotone map b on it and the final chain of b.
// Register hints before sharing an engine; nothing else mutates it.
type Engine[X any] struct {
	l     lattice.Lattice[X]
	b     mon.Mon[X]
	chain []X
	opts  options

	t  mon.Mon[X]
	bt mon.Mon[X]

	hints map[string]mon.Mon[X]
}

// New computes the final chain of b over l.
func New[X any](l lattice.Lattice[X], b mon.Mon[X], opts ...Option) (*Engine[X], error) {
	if l == nil {
		return nil, errors.Wrap(ErrUnrecognized, "nil lattice")
	}
	o := options{
		maxIterations: DefaultMaxIterations,
		symmetryDepth: DefaultSymmetryDepth,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	chain, err := finalChain(l, b, o.maxIterations)
	if err != nil {
		o.logger.Warn("Final chain did not stabilize",
			zap.String("b", b.Key()),
			zap.Int("max_iterations", o.maxIterations))
		return nil, err
	}
	o.logger.Debug("Computed final chain",
		zap.String("b", b.Key()),
		zap.Int("length", len(chain)))

	e := &Engine[X]{l: l, b: b, chain: chain, opts: o, hints: map[string]mon.Mon[X]{}}
	e.t = mon.New("t("+b.Key()+")", e.companion)
	e.bt = mon.Compose(b, e.t)
	return e, nil
}

// finalChain iterates b from top until two consecutive elements are
// equivalent. The returned chain starts at top and ends at gfp(b).
func finalChain[X any](l lattice.Lattice[X], b mon.Mon[X], limit int) ([]X, error) {
	chain := []X{l.Top()}
	for i := 0; i < limit; i++ {
		cur := chain[len(chain)-1]
		next := b.Apply(cur)
		if l.Weq(next, cur) {
			return chain, nil
		}
		if !l.Leq(next, cur) {
			return nil, errors.WithDetailf(
				errors.Wrapf(mon.ErrNotMonotone, "%s", b.Key()),
				"step %d of the chain from top is not descending", i+1)
		}
		chain = append(chain, next)
	}
	return nil, errors.Wrapf(ErrNoConvergence, "%s after %d iterations", b.Key(), limit)
}

// companion returns the least chain element above x.
func (e *Engine[X]) companion(x X) X {
	for i := len(e.chain) - 1; i > 0; i-- {
		if e.l.Leq(x, e.chain[i]) {
			return e.chain[i]
		}
	}
	return e.chain[0]
}

// Lattice returns the lattice the engine works in.
func (e *Engine[X]) Lattice() lattice.Lattice[X] { return e.l }

// B returns the map whose fixpoints the engine computes.
func (e *Engine[X]) B() mon.Mon[X] { return e.b }

// Chain returns the final chain, top first.
func (e *Engine[X]) Chain() iter.Seq[X] { return slices.Values(e.chain) }

// GFP is the greatest fixpoint of b, the last element of the final chain.
func (e *Engine[X]) GFP() X { return e.chain[len(e.chain)-1] }

// T is the companion of b.
func (e *Engine[X]) T() mon.Mon[X] { return e.t }

// BT is b ∘ t.
func (e *Engine[X]) BT() mon.Mon[X] { return e.bt }

// Hint registers s as the symmetry witness for the map with key key.
// Hints are consulted before structural resolution.
func (e *Engine[X]) Hint(key string, s mon.Mon[X]) {
	e.hints[key] = s
}

// GFP computes the greatest fixpoint of b over l.
func GFP[X any](l lattice.Lattice[X], b mon.Mon[X], opts ...Option) (X, error) {
	e, err := New(l, b, opts...)
	if err != nil {
		var zero X
		return zero, err
	}
	return e.GFP(), nil
}

// T computes the companion of b over l.
func T[X any](l lattice.Lattice[X], b mon.Mon[X], opts ...Option) (mon.Mon[X], error) {
	e, err := New(l, b, opts...)
	if err != nil {
		return mon.Mon[X]{}, err
	}
	return e.T(), nil
}

// BT computes b ∘ t(b) over l.
func BT[X any](l lattice.Lattice[X], b mon.Mon[X], opts ...Option) (mon.Mon[X], error) {
	e, err := New(l, b, opts...)
	if err != nil {
		return mon.Mon[X]{}, err
	}
	return e.BT(), nil
}

// PostFixpointGFP computes sup{x | x ≤ b(x)} by enumerating the carrier.
func PostFixpointGFP[X any](l lattice.Enumerable[X], b mon.Mon[X]) X {
	return lattice.SupOf[X, X](l, l.Elements(), func(x X) bool {
		return l.Leq(x, b.Apply(x))
	}, func(x X) X { return x })
}

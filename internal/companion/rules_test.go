package companion_test

import (
	"testing"

	"coinduct/internal/companion"
	"coinduct/internal/config"
	"coinduct/internal/errors"
	"coinduct/internal/mon"
	"coinduct/internal/rel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const universe = 8

type fixture struct {
	s    *rel.Space
	e    *companion.Engine[rel.Rel]
	skel companion.Skeleton[rel.Rel]
}

func newFixture(t *testing.T, g rel.Game, opts ...companion.Option) fixture {
	t.Helper()
	s, err := rel.NewSpace(universe, 2)
	require.NoError(t, err)
	opts = append(opts, companion.WithLogger(zaptest.NewLogger(t)))
	e, err := s.Engine(g, opts...)
	require.NoError(t, err)
	return fixture{s: s, e: e, skel: s.Skeleton("R")}
}

func (f fixture) rel(ts ...rel.Tuple) rel.Rel { return f.s.Of(ts...) }

func (f fixture) prove(t *testing.T, ts ...rel.Tuple) companion.Theorem[rel.Rel] {
	t.Helper()
	p, err := f.e.Coinduction(2, f.skel, f.rel(ts...))
	require.NoError(t, err)
	th, err := p.Qed()
	require.NoError(t, err)
	return th
}

func TestEqualityGameFiveFive(t *testing.T) {
	f := newFixture(t, rel.EqualityGame())

	p, err := f.e.Coinduction(2, f.skel, f.rel(rel.Pair(5, 5)))
	require.NoError(t, err)

	goal := p.Goal()
	assert.Equal(t, companion.RuleCoinduction, goal.Rule)
	assert.True(t, goal.Holds(f.s))

	th, err := p.Qed()
	require.NoError(t, err)
	assert.True(t, th.Closed())
	assert.True(t, th.Proved())
	assert.True(t, f.s.Leq(th.Claim(), f.e.GFP()))
	assert.True(t, rel.Has(th.Claim(), rel.Pair(5, 5)))
}

func TestEqualityGameAccumulatesReflexivityFact(t *testing.T) {
	f := newFixture(t, rel.EqualityGame())
	fact := f.prove(t, rel.Pair(4, 4))

	p, err := f.e.Coinduction(2, f.skel, f.rel(rel.Pair(5, 5)))
	require.NoError(t, err)
	p.Establish(fact)
	require.Len(t, p.Established(), 1)

	require.NoError(t, p.Accumulate(1))
	assert.Empty(t, p.Established())
	assert.True(t, rel.Has(p.Candidate(), rel.Pair(4, 4)))
	// b unfolds (5, 5) to (4, 4), which the candidate already holds
	assert.True(t, rel.Has(f.e.B().Apply(p.Candidate()), rel.Pair(5, 5)))

	th, err := p.Qed()
	require.NoError(t, err)
	assert.True(t, th.Closed())

	// the same through the one-shot entry point
	p, err = f.e.Accumulate(2, []companion.Theorem[rel.Rel]{fact}, f.skel, f.rel(rel.Pair(5, 5)))
	require.NoError(t, err)
	_, err = p.Qed()
	require.NoError(t, err)
}

func TestGFPRelatesExactlyEqualNaturals(t *testing.T) {
	f := newFixture(t, rel.EqualityGame())
	for _, p := range f.s.Tuples() {
		assert.Equal(t, p.At(0) == p.At(1), rel.Has(f.e.GFP(), p), p.String())
	}
}

func TestCoinductionRejectsFalseClaim(t *testing.T) {
	f := newFixture(t, rel.EqualityGame())
	p, err := f.e.Coinduction(2, f.skel, f.rel(rel.Pair(5, 5)), f.rel(rel.Pair(1, 2)))
	require.NoError(t, err)

	_, err = p.Qed()
	require.Error(t, err)
	assert.True(t, errors.Is(err, companion.ErrObligationFailed))
}

func TestCoinductionRejectsUnrecognizedShapes(t *testing.T) {
	f := newFixture(t, rel.EqualityGame())
	r := f.rel(rel.Pair(1, 1))

	tests := []struct {
		name  string
		arity int
		skel  companion.Skeleton[rel.Rel]
		elems []rel.Rel
	}{
		{"zero arity", 0, f.skel, []rel.Rel{r}},
		{"arity mismatch", 3, f.skel, []rel.Rel{r}},
		{"no lattice", 2, companion.Skeleton[rel.Rel]{Relation: "R", Arity: 2}, []rel.Rel{r}},
		{"no elements", 2, f.skel, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.e.Coinduction(tt.arity, tt.skel, tt.elems...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, companion.ErrUnrecognized))
		})
	}
}

func TestAccumulateCountMismatch(t *testing.T) {
	f := newFixture(t, rel.EqualityGame())
	p, err := f.e.Coinduction(2, f.skel, f.rel(rel.Pair(5, 5)))
	require.NoError(t, err)
	p.Establish(f.prove(t, rel.Pair(4, 4)))

	for _, n := range []int{2, -1} {
		err := p.Accumulate(n)
		require.Error(t, err)
		assert.True(t, errors.Is(err, companion.ErrCountMismatch), "n=%d", n)
	}
	// nothing was consumed
	assert.Len(t, p.Established(), 1)

	_, err = f.e.Accumulate(2, nil, f.skel, f.rel(rel.Pair(5, 5)))
	assert.NoError(t, err, "accumulating zero facts is a plain coinduction")
}

func TestAccumulateRelationMismatch(t *testing.T) {
	f := newFixture(t, rel.EqualityGame())

	// another relation name in the same engine
	other := f.s.Skeleton("S")
	p, err := f.e.Coinduction(2, other, f.rel(rel.Pair(2, 2)))
	require.NoError(t, err)
	foreign, err := p.Qed()
	require.NoError(t, err)

	p, err = f.e.Coinduction(2, f.skel, f.rel(rel.Pair(5, 5)))
	require.NoError(t, err)
	p.Establish(foreign)
	err = p.Accumulate(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, companion.ErrRelationMismatch))
	assert.Contains(t, err.Error(), "only one coinductive relation is allowed")

	// the same relation name under another map
	sim := newFixture(t, rel.SimulationGame())
	p, err = f.e.Coinduction(2, f.skel, f.rel(rel.Pair(5, 5)))
	require.NoError(t, err)
	p.Establish(sim.prove(t, rel.Pair(1, 3)))
	assert.True(t, errors.Is(p.Accumulate(1), companion.ErrRelationMismatch))
}

func TestAccumulateUnprovedFact(t *testing.T) {
	f := newFixture(t, rel.EqualityGame())
	p, err := f.e.Coinduction(2, f.skel, f.rel(rel.Pair(5, 5)))
	require.NoError(t, err)

	bogus := f.e.Hypothesis("R", f.rel(rel.Pair(4, 3)))
	assert.False(t, bogus.Proved())
	p.Establish(bogus)
	err = p.Accumulate(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, companion.ErrUnprovedFact))

	// a hypothesis that holds is accepted
	p, err = f.e.Coinduction(2, f.skel, f.rel(rel.Pair(5, 5)))
	require.NoError(t, err)
	p.Establish(f.e.Hypothesis("R", f.rel(rel.Pair(4, 4))))
	require.NoError(t, p.Accumulate(1))
	_, err = p.Qed()
	assert.NoError(t, err)
}

func TestAccumulatedDependencyIsCarried(t *testing.T) {
	f := newFixture(t, rel.EqualityGame())
	assumed := f.rel(rel.Pair(2, 3))

	// (3, 4) ≤ t({(2, 3)}) holds although neither pair is in the gfp
	p, err := f.e.CoinductionUnder(2, f.skel, assumed, f.rel(rel.Pair(3, 4)))
	require.NoError(t, err)
	inner, err := p.Qed()
	require.NoError(t, err)
	assert.False(t, inner.Closed())
	assert.True(t, f.s.Weq(assumed, inner.Under()))

	outer, err := f.e.Accumulate(2, []companion.Theorem[rel.Rel]{inner}, f.skel, f.rel(rel.Pair(4, 5)))
	require.NoError(t, err)
	assert.True(t, f.s.Weq(assumed, outer.Under()))

	th, err := outer.Qed()
	require.NoError(t, err)
	assert.False(t, th.Closed(), "the dependency on (2, 3) is carried")
	assert.True(t, f.s.Leq(th.Claim(), f.e.T().Apply(th.Under())))
	assert.False(t, f.s.Leq(th.Claim(), f.e.GFP()))
}

func symmetricElements(f fixture) []rel.Rel {
	var out []rel.Rel
	for n := 0; n < universe; n++ {
		for m := 0; n+m < universe; m++ {
			out = append(out, f.rel(rel.Pair(n+m, m+n)))
		}
	}
	return out
}

func TestBySymmetry(t *testing.T) {
	s, err := rel.NewSpace(universe, 2)
	require.NoError(t, err)
	b, err := s.Symmetric(rel.SimulationGame())
	require.NoError(t, err)
	e, err := companion.New[rel.Rel](s, b, companion.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	f := fixture{s: s, e: e, skel: s.Skeleton("R")}

	sym, err := f.e.BySymmetry(2, f.skel, symmetricElements(f)...)
	require.NoError(t, err)

	w, ok := sym.Witness()
	require.True(t, ok)
	assert.Equal(t, "sim", w.Key())

	obligations := sym.Obligations()
	require.Len(t, obligations, 3)
	assert.Equal(t, companion.RuleWitness, obligations[0].Rule)
	assert.Equal(t, companion.RuleSymmetric, obligations[1].Rule)
	assert.Equal(t, companion.RuleStep, obligations[2].Rule)
	for _, o := range obligations {
		assert.False(t, o.Open, o.String())
		assert.True(t, o.Holds(f.s), o.String())
	}

	th, err := sym.Qed()
	require.NoError(t, err)
	assert.True(t, th.Closed())
	for n := 0; n < universe; n++ {
		for m := 0; n+m < universe; m++ {
			assert.True(t, rel.Has(f.e.GFP(), rel.Pair(n+m, m+n)))
		}
	}
	assert.True(t, f.s.Leq(th.Claim(), f.e.GFP()))
}

func TestBySymmetryRejectsAsymmetricCandidate(t *testing.T) {
	s, err := rel.NewSpace(universe, 2)
	require.NoError(t, err)
	b, err := s.Symmetric(rel.SimulationGame())
	require.NoError(t, err)
	e, err := companion.New[rel.Rel](s, b)
	require.NoError(t, err)

	sym, err := e.BySymmetry(2, s.Skeleton("R"), s.Of(rel.Pair(1, 2)))
	require.NoError(t, err)
	assert.False(t, sym.Obligations()[1].Holds(s))

	_, err = sym.Qed()
	assert.True(t, errors.Is(err, companion.ErrObligationFailed))
}

func TestBySymmetryUnderSymmetricHypothesis(t *testing.T) {
	s, err := rel.NewSpace(universe, 2)
	require.NoError(t, err)
	b, err := s.Symmetric(rel.SimulationGame())
	require.NoError(t, err)
	e, err := companion.New[rel.Rel](s, b, companion.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	skel := s.Skeleton("R")

	assumed := s.Of(rel.Pair(2, 3), rel.Pair(3, 2))
	claim := s.Of(rel.Pair(3, 4), rel.Pair(4, 3))

	p, err := e.CoinductionUnder(2, skel, assumed, claim)
	require.NoError(t, err)
	_, err = p.Qed()
	require.NoError(t, err)

	// the same candidate goes through by symmetry
	sym, err := p.BySymmetry()
	require.NoError(t, err)
	for _, o := range sym.Obligations() {
		assert.True(t, o.Holds(s), o.String())
	}
	assert.True(t, s.Weq(claim, sym.Obligations()[2].Claim))

	th, err := sym.Qed()
	require.NoError(t, err)
	assert.False(t, th.Closed())
	assert.True(t, s.Weq(assumed, th.Under()))
	assert.True(t, s.Leq(th.Claim(), e.T().Apply(th.Under())))

	// an asymmetric hypothesis makes the candidate asymmetric
	p, err = e.CoinductionUnder(2, skel, s.Of(rel.Pair(2, 3)), claim)
	require.NoError(t, err)
	sym, err = p.BySymmetry()
	require.NoError(t, err)
	assert.False(t, sym.Obligations()[1].Holds(s))
	_, err = sym.Qed()
	assert.True(t, errors.Is(err, companion.ErrObligationFailed))
}

func TestPartialEngineConfigKeepsWitnessSearch(t *testing.T) {
	s, err := rel.NewSpace(universe, 2)
	require.NoError(t, err)
	b, err := s.Symmetric(rel.SimulationGame())
	require.NoError(t, err)
	e, err := companion.New[rel.Rel](s, b, companion.WithConfig(config.EngineConfig{MaxIterations: 100}))
	require.NoError(t, err)

	sym, err := e.BySymmetry(2, s.Skeleton("R"), s.Of(rel.Pair(3, 3)))
	require.NoError(t, err)
	w, ok := sym.Witness()
	require.True(t, ok)
	assert.Equal(t, "sim", w.Key())
}

func TestBySymmetryNeedsBinaryRelation(t *testing.T) {
	s, err := rel.NewSpace(4, 1)
	require.NoError(t, err)
	down := rel.Game{
		Name: "down",
		Base: func(p rel.Tuple) bool { return p.At(0) == 0 },
		Moves: func(p rel.Tuple) []rel.Tuple {
			return []rel.Tuple{rel.Of(p.At(0) - 1)}
		},
	}
	e, err := s.Engine(down)
	require.NoError(t, err)

	_, err = e.BySymmetry(1, s.Skeleton("P"), s.Of(rel.Of(2)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, companion.ErrNotBinary))

	// a proof that is already open reports the same
	p, err := e.Coinduction(1, s.Skeleton("P"), s.Of(rel.Of(2)))
	require.NoError(t, err)
	_, err = p.BySymmetry()
	assert.True(t, errors.Is(err, companion.ErrNotBinary))
}

func TestBySymmetryNeedsConverse(t *testing.T) {
	f := newFixture(t, rel.EqualityGame())
	skel := f.skel
	skel.Converse = nil
	_, err := f.e.BySymmetry(2, skel, f.rel(rel.Pair(1, 1)))
	assert.True(t, errors.Is(err, companion.ErrUnrecognized))
}

func TestUnresolvedWitnessStaysOpen(t *testing.T) {
	f := newFixture(t, rel.EqualityGame())
	sym, err := f.e.BySymmetry(2, f.skel, symmetricElements(f)...)
	require.NoError(t, err)

	_, ok := sym.Witness()
	assert.False(t, ok)
	obligations := sym.Obligations()
	assert.True(t, obligations[0].Open)
	assert.True(t, obligations[2].Open)
	assert.False(t, obligations[0].Holds(f.s))

	_, err = sym.Qed()
	require.Error(t, err)
	assert.True(t, errors.Is(err, companion.ErrWitnessNotFound))

	// a map that is not a witness is refused
	err = sym.Provide(mon.Const(f.s.Top()))
	assert.True(t, errors.Is(err, companion.ErrWitnessNotFound))

	// the simulation game symmetrizes to the equality game
	require.NoError(t, sym.Provide(f.s.Functional(rel.SimulationGame())))
	th, err := sym.Qed()
	require.NoError(t, err)
	assert.True(t, th.Closed())
}

func TestWitnessHint(t *testing.T) {
	f := newFixture(t, rel.EqualityGame())
	f.e.Hint("eq", f.s.Functional(rel.EqualityGame()))

	sym, err := f.e.BySymmetry(2, f.skel, f.rel(rel.Pair(3, 3)))
	require.NoError(t, err)
	w, ok := sym.Witness()
	require.True(t, ok)
	assert.Equal(t, "eq", w.Key())
	_, err = sym.Qed()
	assert.NoError(t, err)
}

func TestWitnessSearchIsDepthLimited(t *testing.T) {
	s, err := rel.NewSpace(universe, 2)
	require.NoError(t, err)
	b, err := s.Symmetric(rel.SimulationGame())
	require.NoError(t, err)
	aliased := mon.Define("bisim", b)

	for _, tt := range []struct {
		depth    int
		resolved bool
	}{{1, false}, {2, true}} {
		e, err := companion.New[rel.Rel](s, aliased, companion.WithSymmetryDepth(tt.depth))
		require.NoError(t, err)
		sym, err := e.BySymmetry(2, s.Skeleton("R"), s.Of(rel.Pair(2, 2)))
		require.NoError(t, err)
		_, ok := sym.Witness()
		assert.Equal(t, tt.resolved, ok, "depth %d", tt.depth)
	}
}

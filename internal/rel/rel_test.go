package rel

import (
	"context"
	"testing"
	"time"

	"coinduct/internal/companion"
	"coinduct/internal/errors"
	"coinduct/internal/lattice"
	"coinduct/internal/mangle"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var tupleEq = cmp.Comparer(func(a, b Tuple) bool { return a == b })

func space(t *testing.T, n, arity int) *Space {
	t.Helper()
	s, err := NewSpace(n, arity)
	require.NoError(t, err)
	return s
}

func TestTuple(t *testing.T) {
	p := Pair(3, 5)
	assert.Equal(t, 2, p.Arity())
	assert.Equal(t, Pair(5, 3), p.Swap())
	assert.Equal(t, "(3, 5)", p.String())
	assert.Equal(t, []int{3, 5}, p.Coords())
	assert.NotEqual(t, Of(1), Of(1, 0), "arity is part of identity")
	assert.Panics(t, func() { Of(1, 2, 3, 4, 5) })
}

func TestNewSpace(t *testing.T) {
	s := space(t, 3, 2)
	assert.Len(t, s.Tuples(), 9)
	assert.Equal(t, Pair(0, 0), s.Tuples()[0])
	assert.Equal(t, Pair(0, 1), s.Tuples()[1])
	assert.True(t, s.Contains(Pair(2, 2)))
	assert.False(t, s.Contains(Pair(3, 0)))
	assert.False(t, s.Contains(Of(1)))

	_, err := NewSpace(3, 0)
	assert.True(t, errors.IsIllFormed(err))
	_, err = NewSpace(3, MaxArity+1)
	assert.True(t, errors.IsIllFormed(err))
	_, err = NewSpace(0, 2)
	assert.True(t, errors.IsIllFormed(err))
}

func TestSpaceIsALattice(t *testing.T) {
	require.NoError(t, lattice.Certify[Rel](space(t, 2, 2)))
	require.NoError(t, lattice.Certify[Rel](space(t, 3, 1)))
}

func TestRelations(t *testing.T) {
	s := space(t, 3, 2)
	r := s.Of(Pair(0, 1), Pair(2, 2), Pair(7, 7))

	assert.True(t, Has(r, Pair(0, 1)))
	assert.False(t, Has(r, Pair(1, 0)))
	if diff := cmp.Diff([]Tuple{Pair(0, 1), Pair(2, 2)}, s.Members(r), tupleEq); diff != "" {
		t.Errorf("Members() mismatch (-want +got):\n%s", diff)
	}

	conv, err := s.Converse()
	require.NoError(t, err)
	assert.True(t, s.Weq(conv.Apply(r), s.Of(Pair(1, 0), Pair(2, 2))))
	assert.True(t, s.Weq(conv.Apply(conv.Apply(r)), r))

	diag := s.Where(func(t Tuple) bool { return t.At(0) == t.At(1) })
	assert.True(t, s.Leq(s.Of(Pair(2, 2)), diag))
	assert.Len(t, s.Members(diag), 3)
}

func TestConverseNeedsBinary(t *testing.T) {
	s := space(t, 3, 1)
	_, err := s.Converse()
	assert.True(t, errors.Is(err, companion.ErrNotBinary))
	assert.Nil(t, s.Skeleton("R").Converse)
	assert.NotNil(t, space(t, 3, 2).Skeleton("R").Converse)
}

func TestGameFixpoints(t *testing.T) {
	s := space(t, 6, 2)

	tests := []struct {
		game Game
		want func(Tuple) bool
	}{
		{EqualityGame(), func(p Tuple) bool { return p.At(0) == p.At(1) }},
		{SimulationGame(), func(p Tuple) bool { return p.At(0) <= p.At(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.game.Name, func(t *testing.T) {
			gfp, err := companion.GFP[Rel](s, s.Functional(tt.game))
			require.NoError(t, err)
			want := s.Members(s.Where(tt.want))
			if diff := cmp.Diff(want, s.Members(gfp), tupleEq); diff != "" {
				t.Errorf("gfp mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSymmetrizedSimulationIsEquality(t *testing.T) {
	s := space(t, 6, 2)
	b, err := s.Symmetric(SimulationGame())
	require.NoError(t, err)
	assert.Equal(t, "cap(sim, converse ° sim ° converse)", b.Key())

	gfp, err := companion.GFP[Rel](s, b)
	require.NoError(t, err)
	eq, err := companion.GFP[Rel](s, s.Functional(EqualityGame()))
	require.NoError(t, err)
	assert.True(t, s.Weq(gfp, eq))
}

func TestPostFixpointAgreesWithChain(t *testing.T) {
	s := space(t, 2, 2)
	for _, g := range []Game{EqualityGame(), SimulationGame()} {
		b := s.Functional(g)
		chain, err := companion.GFP[Rel](s, b)
		require.NoError(t, err)
		assert.True(t, s.Weq(chain, companion.PostFixpointGFP[Rel](s, b)), g.Name)
	}
}

func TestOracleAgreesWithChain(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cycle := Game{
		Name: "cycle",
		Moves: func(p Tuple) []Tuple {
			// (x, y) → (y, x) loops forever unless x is 0
			if p.At(0) == 0 {
				return nil
			}
			return []Tuple{p.Swap()}
		},
	}

	s := space(t, 5, 2)
	for _, g := range []Game{EqualityGame(), SimulationGame(), cycle} {
		t.Run(g.Name, func(t *testing.T) {
			chain, err := companion.GFP[Rel](s, s.Functional(g))
			require.NoError(t, err)
			oracle, err := s.OracleGFP(ctx, mangle.DefaultConfig(), zaptest.NewLogger(t), g)
			require.NoError(t, err)
			if diff := cmp.Diff(s.Members(chain), s.Members(oracle), tupleEq); diff != "" {
				t.Errorf("oracle disagrees with chain (-chain +oracle):\n%s", diff)
			}
		})
	}
}

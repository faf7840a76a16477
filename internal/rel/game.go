package rel

import (
	"context"

	"coinduct/internal/companion"
	"coinduct/internal/mangle"
	"coinduct/internal/mon"

	"go.uber.org/zap"
)

// Game is an existential game on tuples. A tuple wins when it is a base
// tuple or has a move to a winning tuple; moves leaving the universe are
// ignored.
type Game struct {
	Name  string
	Base  func(Tuple) bool
	Moves func(Tuple) []Tuple
}

// EqualityGame relates equal naturals: (0, 0) is base, and (x+1, y+1)
// moves to (x, y).
func EqualityGame() Game {
	return Game{
		Name: "eq",
		Base: func(t Tuple) bool { return t.At(0) == 0 && t.At(1) == 0 },
		Moves: func(t Tuple) []Tuple {
			if t.At(0) > 0 && t.At(1) > 0 {
				return []Tuple{Pair(t.At(0)-1, t.At(1)-1)}
			}
			return nil
		},
	}
}

// SimulationGame relates x to y when x ≤ y: (0, y) is base, with the moves
// of EqualityGame.
func SimulationGame() Game {
	eq := EqualityGame()
	return Game{
		Name:  "sim",
		Base:  func(t Tuple) bool { return t.At(0) == 0 },
		Moves: eq.Moves,
	}
}

// Functional is the monotone map of g:
// b(R)(p) = base(p) ∨ ∃ q ∈ moves(p). R(q).
func (s *Space) Functional(g Game) mon.Mon[Rel] {
	return mon.New(g.Name, func(r Rel) Rel {
		return s.Make(func(p Tuple) bool {
			if g.Base != nil && g.Base(p) {
				return true
			}
			if g.Moves == nil {
				return false
			}
			for _, q := range g.Moves(p) {
				if s.Contains(q) && r.At(q) {
					return true
				}
			}
			return false
		})
	})
}

// Symmetric is cap(b, converse ∘ b ∘ converse) for the functional of g.
func (s *Space) Symmetric(g Game) (mon.Mon[Rel], error) {
	conv, err := s.Converse()
	if err != nil {
		return mon.Mon[Rel]{}, err
	}
	return companion.Symmetrize[Rel](s, conv, s.Functional(g)), nil
}

// Engine builds a companion engine for the functional of g.
func (s *Space) Engine(g Game, opts ...companion.Option) (*companion.Engine[Rel], error) {
	return companion.New[Rel](s, s.Functional(g), opts...)
}

// OracleGFP computes the greatest fixpoint of g's functional with the
// Mangle oracle instead of the final chain.
func (s *Space) OracleGFP(ctx context.Context, cfg mangle.Config, logger *zap.Logger, g Game) (Rel, error) {
	mg := mangle.Game{Arity: s.arity}
	for _, p := range s.tuples {
		if g.Base != nil && g.Base(p) {
			mg.Base = append(mg.Base, position(p))
		}
		if g.Moves == nil {
			continue
		}
		for _, q := range g.Moves(p) {
			if s.Contains(q) {
				mg.Moves = append(mg.Moves, mangle.Move{From: position(p), To: position(q)})
			}
		}
	}

	winning, err := mangle.SolveGame(ctx, cfg, logger, mg)
	if err != nil {
		return Rel{}, err
	}
	won := make(map[Tuple]bool, len(winning))
	for _, w := range winning {
		coords := make([]int, len(w))
		for i, v := range w {
			coords[i] = int(v)
		}
		won[Of(coords...)] = true
	}
	return s.Where(func(t Tuple) bool { return won[t] }), nil
}

func position(t Tuple) mangle.Position {
	p := make(mangle.Position, t.Arity())
	for i := range p {
		p[i] = int64(t.At(i))
	}
	return p
}

package mangle

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"coinduct/internal/errors"

	"go.uber.org/zap"
)

// Position is a point of a finite game, one coordinate per argument.
type Position []int64

// Move is an edge from one position to another.
type Move struct {
	From, To Position
}

// Game is a finite existential game: a position wins when it is a base
// position or has a move to a winning position, and plays may go on forever.
// The winning positions are the greatest fixpoint of
// W ↦ base ∪ {p | ∃ p → q. q ∈ W}.
type Game struct {
	Arity int
	Base  []Position
	Moves []Move
}

// SolveGame computes the winning positions of g with a positive Datalog
// program: a position wins iff it reaches a base position or a cycle. The
// result is sorted lexicographically.
func SolveGame(ctx context.Context, cfg Config, logger *zap.Logger, g Game) ([]Position, error) {
	if g.Arity < 1 {
		return nil, errors.Wrapf(errors.ErrIllFormed, "game arity %d", g.Arity)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := NewEngine(cfg, logger)
	defer e.Close()

	if err := e.LoadSchemaString(gameProgram(g.Arity)); err != nil {
		return nil, err
	}

	facts := make([]Fact, 0, len(g.Base)+len(g.Moves))
	for _, p := range g.Base {
		if len(p) != g.Arity {
			return nil, errors.Wrapf(errors.ErrIllFormed, "base position %v has arity %d", p, len(p))
		}
		facts = append(facts, Fact{Predicate: "base", Args: args(p)})
	}
	for _, m := range g.Moves {
		if len(m.From) != g.Arity || len(m.To) != g.Arity {
			return nil, errors.Wrapf(errors.ErrIllFormed, "move %v → %v does not have arity %d", m.From, m.To, g.Arity)
		}
		facts = append(facts, Fact{Predicate: "move", Args: append(args(m.From), args(m.To)...)})
	}
	if err := e.AddFacts(facts); err != nil {
		return nil, err
	}
	if err := e.Evaluate(ctx); err != nil {
		return nil, err
	}

	good, err := e.GetFacts("good")
	if err != nil {
		return nil, err
	}
	out := make([]Position, 0, len(good))
	for _, f := range good {
		p := make(Position, len(f.Args))
		for i, a := range f.Args {
			n, ok := a.(int64)
			if !ok {
				return nil, errors.AssertionFailedf("good/%d argument %d is %T", g.Arity, i, a)
			}
			p[i] = n
		}
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Position) int { return slices.Compare(a, b) })

	logger.Debug("Solved game",
		zap.Int("arity", g.Arity),
		zap.Int("moves", len(g.Moves)),
		zap.Int("winning", len(out)))
	return out, nil
}

func args(p Position) []interface{} {
	out := make([]interface{}, len(p))
	for i, v := range p {
		out[i] = v
	}
	return out
}

// gameProgram renders the solver for positions of the given arity.
//
//	reach(X, Y) :- move(X, Y).
//	reach(X, Y) :- move(X, M), reach(M, Y).
//	good(X) :- base(X).
//	good(X) :- reach(X, X).
//	good(X) :- move(X, Y), good(Y).
func gameProgram(arity int) string {
	vars := func(prefix string) string {
		vs := make([]string, arity)
		for i := range vs {
			vs[i] = fmt.Sprintf("%s%d", prefix, i)
		}
		return strings.Join(vs, ", ")
	}
	x, y, m := vars("X"), vars("Y"), vars("M")

	var b strings.Builder
	fmt.Fprintf(&b, "Decl base(%s).\n", x)
	fmt.Fprintf(&b, "Decl move(%s, %s).\n", x, y)
	fmt.Fprintf(&b, "Decl reach(%s, %s).\n", x, y)
	fmt.Fprintf(&b, "Decl good(%s).\n", x)
	fmt.Fprintf(&b, "reach(%s, %s) :- move(%s, %s).\n", x, y, x, y)
	fmt.Fprintf(&b, "reach(%s, %s) :- move(%s, %s), reach(%s, %s).\n", x, y, x, m, m, y)
	fmt.Fprintf(&b, "good(%s) :- base(%s).\n", x, x)
	fmt.Fprintf(&b, "good(%s) :- reach(%s, %s).\n", x, x, x)
	fmt.Fprintf(&b, "good(%s) :- move(%s, %s), good(%s).\n", x, x, y, y)
	return b.String()
}

package rel

import (
	"slices"

	"coinduct/internal/companion"
	"coinduct/internal/errors"
	"coinduct/internal/lattice"
	"coinduct/internal/mon"
)

// Rel is a relation: a function from tuples to propositions.
type Rel = lattice.Fn[Tuple, bool]

// Space is the lattice of relations of one arity over [0, N).
type Space struct {
	*lattice.FinitePointwise[Tuple, bool]
	n      int
	arity  int
	tuples []Tuple
}

// NewSpace builds the relation lattice over [0, n)^arity.
func NewSpace(n, arity int) (*Space, error) {
	if arity < 1 || arity > MaxArity {
		return nil, errors.Wrapf(errors.ErrIllFormed, "arity %d outside [1, %d]", arity, MaxArity)
	}
	if n < 1 {
		return nil, errors.Wrapf(errors.ErrIllFormed, "universe size %d", n)
	}
	var tuples []Tuple
	coords := make([]int, arity)
	for {
		tuples = append(tuples, Of(coords...))
		i := arity - 1
		for ; i >= 0; i-- {
			coords[i]++
			if coords[i] < n {
				break
			}
			coords[i] = 0
		}
		if i < 0 {
			break
		}
	}
	return &Space{
		FinitePointwise: lattice.NewFinitePointwise[Tuple, bool](tuples, lattice.Bool{}),
		n:               n,
		arity:           arity,
		tuples:          tuples,
	}, nil
}

// N is the size of the universe.
func (s *Space) N() int { return s.n }

// Arity is the arity of every relation in the space.
func (s *Space) Arity() int { return s.arity }

// Tuples lists the universe in lexicographic order.
func (s *Space) Tuples() []Tuple { return slices.Clone(s.tuples) }

// Contains reports whether t lies in the universe.
func (s *Space) Contains(t Tuple) bool {
	if t.Arity() != s.arity {
		return false
	}
	for i := 0; i < s.arity; i++ {
		if t.At(i) < 0 || t.At(i) >= s.n {
			return false
		}
	}
	return true
}

// Of is the relation holding exactly at ts. Tuples outside the universe are
// dropped.
func (s *Space) Of(ts ...Tuple) Rel {
	return s.Make(func(t Tuple) bool { return slices.Contains(ts, t) })
}

// Where is the relation {t | p(t)}.
func (s *Space) Where(p func(Tuple) bool) Rel { return s.Make(p) }

// Has reports whether r holds at t.
func Has(r Rel, t Tuple) bool { return r.At(t) }

// Members lists the tuples of r in lexicographic order.
func (s *Space) Members(r Rel) []Tuple {
	var out []Tuple
	for _, t := range s.tuples {
		if r.At(t) {
			out = append(out, t)
		}
	}
	return out
}

// Converse swaps the coordinates of a binary relation.
func (s *Space) Converse() (mon.Mon[Rel], error) {
	if s.arity != 2 {
		return mon.Mon[Rel]{}, errors.Wrapf(companion.ErrNotBinary, "converse of arity %d", s.arity)
	}
	return mon.New("converse", func(r Rel) Rel {
		return s.Make(func(t Tuple) bool { return r.At(t.Swap()) })
	}), nil
}

// Skeleton describes goals about the relation name in this space. Binary
// spaces carry their converse.
func (s *Space) Skeleton(name string) companion.Skeleton[Rel] {
	sk := companion.Skeleton[Rel]{Relation: name, Arity: s.arity, Lattice: s}
	if conv, err := s.Converse(); err == nil {
		sk.Converse = &conv
	}
	return sk
}

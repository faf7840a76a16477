package lattice

import (
	"fmt"
	"iter"
)

// dual re-exposes a lattice with the order reversed: Sup and Inf, Cup and
// Cap, Bot and Top swap places. Every meet-side lemma in this package is the
// join-side lemma evaluated at a dual.
type dual[X any] struct {
	base Lattice[X]
}

type finiteDual[X any] struct {
	dual[X]
	elements func() iter.Seq[X]
}

// Dual returns the dual of l. Dual(Dual(l)) is l itself, and the dual of an
// Enumerable lattice is Enumerable.
func Dual[X any](l Lattice[X]) Lattice[X] {
	switch d := l.(type) {
	case dual[X]:
		return d.base
	case finiteDual[X]:
		return d.base
	}
	if e, ok := l.(Enumerable[X]); ok {
		return finiteDual[X]{dual: dual[X]{base: l}, elements: e.Elements}
	}
	return dual[X]{base: l}
}

// DualFinite is Dual for lattices known to be finite.
func DualFinite[X any](l Enumerable[X]) Enumerable[X] {
	return Dual[X](l).(Enumerable[X])
}

func (d dual[X]) Weq(x, y X) bool      { return d.base.Weq(x, y) }
func (d dual[X]) Leq(x, y X) bool      { return d.base.Leq(y, x) }
func (d dual[X]) Sup(xs iter.Seq[X]) X { return d.base.Inf(xs) }
func (d dual[X]) Inf(xs iter.Seq[X]) X { return d.base.Sup(xs) }
func (d dual[X]) Cup(x, y X) X         { return d.base.Cap(x, y) }
func (d dual[X]) Cap(x, y X) X         { return d.base.Cup(x, y) }
func (d dual[X]) Bot() X               { return d.base.Top() }
func (d dual[X]) Top() X               { return d.base.Bot() }
func (d dual[X]) String() string       { return fmt.Sprintf("Dual(%v)", d.base) }

func (d finiteDual[X]) Elements() iter.Seq[X] { return d.elements() }

package lattice

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Fn is a total function from a finite domain into a lattice carrier,
// the element type of a pointwise lifted lattice. Values are immutable.
type Fn[A comparable, X any] struct {
	m map[A]X
}

// At evaluates f at a.
func (f Fn[A, X]) At(a A) X { return f.m[a] }

// Map returns a copy of the graph of f.
func (f Fn[A, X]) Map() map[A]X { return maps.Clone(f.m) }

func (f Fn[A, X]) String() string { return fmt.Sprint(f.m) }

// Pointwise lifts a lattice over X to functions dom → X ordered coordinate
// by coordinate. This is the non-dependent function space: every coordinate
// uses the same base lattice.
type Pointwise[A comparable, X any] struct {
	dom  []A
	base Lattice[X]
}

var _ Lattice[Fn[string, bool]] = (*Pointwise[string, bool])(nil)

// NewPointwise lifts base over the coordinates in dom.
func NewPointwise[A comparable, X any](dom []A, base Lattice[X]) *Pointwise[A, X] {
	return &Pointwise[A, X]{dom: slices.Clone(dom), base: base}
}

// Domain returns the coordinates.
func (p *Pointwise[A, X]) Domain() []A { return slices.Clone(p.dom) }

// Base returns the coordinate lattice.
func (p *Pointwise[A, X]) Base() Lattice[X] { return p.base }

// Make tabulates f over the domain.
func (p *Pointwise[A, X]) Make(f func(A) X) Fn[A, X] {
	m := make(map[A]X, len(p.dom))
	for _, a := range p.dom {
		m[a] = f(a)
	}
	return Fn[A, X]{m: m}
}

func (p *Pointwise[A, X]) Weq(f, g Fn[A, X]) bool {
	for _, a := range p.dom {
		if !p.base.Weq(f.At(a), g.At(a)) {
			return false
		}
	}
	return true
}

func (p *Pointwise[A, X]) Leq(f, g Fn[A, X]) bool {
	for _, a := range p.dom {
		if !p.base.Leq(f.At(a), g.At(a)) {
			return false
		}
	}
	return true
}

func (p *Pointwise[A, X]) Sup(fs iter.Seq[Fn[A, X]]) Fn[A, X] {
	family := slices.Collect(fs)
	return p.Make(func(a A) X {
		return p.base.Sup(Image(slices.Values(family), nil, func(f Fn[A, X]) X { return f.At(a) }))
	})
}

func (p *Pointwise[A, X]) Inf(fs iter.Seq[Fn[A, X]]) Fn[A, X] {
	family := slices.Collect(fs)
	return p.Make(func(a A) X {
		return p.base.Inf(Image(slices.Values(family), nil, func(f Fn[A, X]) X { return f.At(a) }))
	})
}

func (p *Pointwise[A, X]) Cup(f, g Fn[A, X]) Fn[A, X] {
	return p.Make(func(a A) X { return p.base.Cup(f.At(a), g.At(a)) })
}

func (p *Pointwise[A, X]) Cap(f, g Fn[A, X]) Fn[A, X] {
	return p.Make(func(a A) X { return p.base.Cap(f.At(a), g.At(a)) })
}

func (p *Pointwise[A, X]) Bot() Fn[A, X] {
	return p.Make(func(A) X { return p.base.Bot() })
}

func (p *Pointwise[A, X]) Top() Fn[A, X] {
	return p.Make(func(A) X { return p.base.Top() })
}

// FinitePointwise is a pointwise lattice over a finite base; its carrier is
// the product of |dom| copies of the base carrier.
type FinitePointwise[A comparable, X any] struct {
	*Pointwise[A, X]
	elems func() iter.Seq[X]
}

// NewFinitePointwise lifts a finite base over dom.
func NewFinitePointwise[A comparable, X any](dom []A, base Enumerable[X]) *FinitePointwise[A, X] {
	return &FinitePointwise[A, X]{Pointwise: NewPointwise(dom, Lattice[X](base)), elems: base.Elements}
}

// Elements enumerates every function dom → X.
func (p *FinitePointwise[A, X]) Elements() iter.Seq[Fn[A, X]] {
	values := slices.Collect(p.elems())
	return func(yield func(Fn[A, X]) bool) {
		choice := make([]int, len(p.dom))
		for {
			m := make(map[A]X, len(p.dom))
			for i, a := range p.dom {
				m[a] = values[choice[i]]
			}
			if !yield(Fn[A, X]{m: m}) {
				return
			}
			i := 0
			for ; i < len(choice); i++ {
				choice[i]++
				if choice[i] < len(values) {
					break
				}
				choice[i] = 0
			}
			if i == len(choice) {
				return
			}
		}
	}
}

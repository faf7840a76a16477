package mon

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"coinduct/internal/lattice"
)

// Lattice is the complete lattice of monotone maps on a finite base lattice,
// ordered pointwise. Sup, Inf, Cup and Cap apply the base operation
// pointwise; Bot and Top are the constant maps.
type Lattice[X any] struct {
	base  lattice.Enumerable[X]
	elems []X

	// dual reverses the order; stages are still keyed by the base operation
	// they compute
	dual bool
}

var _ lattice.Enumerable[Mon[bool]] = (*Lattice[bool])(nil)

// NewLattice builds the lattice of monotone maps on base.
func NewLattice[X any](base lattice.Enumerable[X]) *Lattice[X] {
	return &Lattice[X]{base: base, elems: slices.Collect(base.Elements())}
}

// Base returns the lattice the maps are ordered by.
func (m *Lattice[X]) Base() lattice.Enumerable[X] {
	if m.dual {
		return lattice.DualFinite(m.base)
	}
	return m.base
}

// Dual is the lattice of the same maps over the dual base. A map is monotone
// for an order iff it is monotone for the reversed order, so the carriers
// coincide. The dual's Sup is the base Inf and is keyed as an inf.
func (m *Lattice[X]) Dual() *Lattice[X] {
	return &Lattice[X]{base: m.base, elems: m.elems, dual: !m.dual}
}

func (m *Lattice[X]) Weq(f, g Mon[X]) bool {
	for _, x := range m.elems {
		if !m.base.Weq(f.Apply(x), g.Apply(x)) {
			return false
		}
	}
	return true
}

func (m *Lattice[X]) Leq(f, g Mon[X]) bool {
	if m.dual {
		f, g = g, f
	}
	for _, x := range m.elems {
		if !m.base.Leq(f.Apply(x), g.Apply(x)) {
			return false
		}
	}
	return true
}

func (m *Lattice[X]) Sup(fs iter.Seq[Mon[X]]) Mon[X] {
	if m.dual {
		return Inf[X](m.base, fs)
	}
	return Sup[X](m.base, fs)
}

func (m *Lattice[X]) Inf(fs iter.Seq[Mon[X]]) Mon[X] {
	if m.dual {
		return Sup[X](m.base, fs)
	}
	return Inf[X](m.base, fs)
}

func (m *Lattice[X]) Cup(f, g Mon[X]) Mon[X] {
	if m.dual {
		return Cap[X](m.base, f, g)
	}
	return Cup[X](m.base, f, g)
}

func (m *Lattice[X]) Cap(f, g Mon[X]) Mon[X] {
	if m.dual {
		return Cup[X](m.base, f, g)
	}
	return Cap[X](m.base, f, g)
}

func (m *Lattice[X]) Bot() Mon[X] {
	if m.dual {
		return Const(m.base.Top())
	}
	return Const(m.base.Bot())
}

func (m *Lattice[X]) Top() Mon[X] {
	if m.dual {
		return Const(m.base.Bot())
	}
	return Const(m.base.Top())
}

// Elements enumerates every monotone map as a lookup table over the base
// carrier. The count grows as |X|^|X|, so this is for very small bases.
func (m *Lattice[X]) Elements() iter.Seq[Mon[X]] {
	return func(yield func(Mon[X]) bool) {
		n := len(m.elems)
		choice := make([]int, n)
		for {
			if f, ok := m.table(choice); ok {
				if !yield(f) {
					return
				}
			}
			i := 0
			for ; i < n; i++ {
				choice[i]++
				if choice[i] < n {
					break
				}
				choice[i] = 0
			}
			if i == n {
				return
			}
		}
	}
}

// table builds the map elems[i] ↦ elems[choice[i]] if it is monotone.
func (m *Lattice[X]) table(choice []int) (Mon[X], bool) {
	image := make([]X, len(choice))
	names := make([]string, len(choice))
	for i, c := range choice {
		image[i] = m.elems[c]
		names[i] = fmt.Sprint(m.elems[c])
	}
	lookup := func(x X) X {
		for i, e := range m.elems {
			if m.base.Weq(x, e) {
				return image[i]
			}
		}
		return x
	}
	for i, x := range m.elems {
		for j, y := range m.elems {
			if m.base.Leq(x, y) && !m.base.Leq(image[i], image[j]) {
				return Mon[X]{}, false
			}
		}
	}
	return New("table["+strings.Join(names, " ")+"]", lookup), true
}

// Sup is the pointwise sup of fs over l. It needs no enumeration of the
// carrier, so it serves infinite lattices too.
func Sup[X any](l lattice.Lattice[X], fs iter.Seq[Mon[X]]) Mon[X] {
	family := slices.Collect(fs)
	return combine(KindSup, func(x X) X {
		return l.Sup(applied(family, x))
	}, family)
}

// Inf is the pointwise inf of fs over l.
func Inf[X any](l lattice.Lattice[X], fs iter.Seq[Mon[X]]) Mon[X] {
	family := slices.Collect(fs)
	return combine(KindInf, func(x X) X {
		return l.Inf(applied(family, x))
	}, family)
}

// Cup is the pointwise join of f and g over l.
func Cup[X any](l lattice.Lattice[X], f, g Mon[X]) Mon[X] {
	return combine(KindCup, func(x X) X {
		return l.Cup(f.Apply(x), g.Apply(x))
	}, []Mon[X]{f, g})
}

// Cap is the pointwise meet of f and g over l.
func Cap[X any](l lattice.Lattice[X], f, g Mon[X]) Mon[X] {
	return combine(KindCap, func(x X) X {
		return l.Cap(f.Apply(x), g.Apply(x))
	}, []Mon[X]{f, g})
}

func applied[X any](fs []Mon[X], x X) iter.Seq[X] {
	return func(yield func(X) bool) {
		for _, f := range fs {
			if !yield(f.Apply(x)) {
				return
			}
		}
	}
}

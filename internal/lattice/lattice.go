// Package lattice defines complete lattices as capability bundles over a
// carrier type, together with the derived instances (duality, pointwise
// lifting) and the generic lemmas every instance inherits.
//
// All eight operations are supplied by the instance rather than derived from
// one primitive, so each carrier can use its natural implementation. The only
// obligation is that the seven laws checked by Certify hold.
package lattice

import (
	"iter"
	"slices"
)

// Lattice is a complete lattice over the carrier X.
//
// Leq is a preorder and Weq is the equivalence it induces:
// Weq(x, y) iff Leq(x, y) and Leq(y, x). Sup and Inf take an arbitrary
// family of elements; they are characterised only by their universal
// properties.
type Lattice[X any] interface {
	Weq(x, y X) bool
	Leq(x, y X) bool
	Sup(xs iter.Seq[X]) X
	Inf(xs iter.Seq[X]) X
	Cup(x, y X) X
	Cap(x, y X) X
	Bot() X
	Top() X
}

// Enumerable is a lattice whose carrier is finite and can be listed.
// Exhaustive law checks and the pointwise order on monotone maps need it.
type Enumerable[X any] interface {
	Lattice[X]
	Elements() iter.Seq[X]
}

// Family returns the elements of xs as a sequence.
func Family[X any](xs ...X) iter.Seq[X] {
	return slices.Values(xs)
}

// Image returns the family {f(i) | i ∈ index, p(i)}. A nil predicate admits
// every index.
func Image[I, X any](index iter.Seq[I], p func(I) bool, f func(I) X) iter.Seq[X] {
	return func(yield func(X) bool) {
		for i := range index {
			if p != nil && !p(i) {
				continue
			}
			if !yield(f(i)) {
				return
			}
		}
	}
}

// SupOf is sup P f: the least upper bound of f(i) over the indices
// satisfying p.
func SupOf[I, X any](l Lattice[X], index iter.Seq[I], p func(I) bool, f func(I) X) X {
	return l.Sup(Image(index, p, f))
}

// InfOf is inf P f, computed as SupOf at the dual lattice.
func InfOf[I, X any](l Lattice[X], index iter.Seq[I], p func(I) bool, f func(I) X) X {
	return SupOf(Dual(l), index, p, f)
}

// Count returns the number of elements of a finite lattice.
func Count[X any](l Enumerable[X]) int {
	n := 0
	for range l.Elements() {
		n++
	}
	return n
}

// Contains reports whether some element of xs is Weq to x.
func Contains[X any](l Lattice[X], xs iter.Seq[X], x X) bool {
	for y := range xs {
		if l.Weq(x, y) {
			return true
		}
	}
	return false
}

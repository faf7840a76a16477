package lattice

import (
	"iter"
	"slices"
)

// The lemmas below hold in every lattice. Each one evaluates its statement
// on concrete arguments and reports whether it holds, so an instance can be
// tested against them. Meet-side lemmas are never written out: they are the
// join-side lemma evaluated at Dual(l).

// Antisym: x ≤ y and y ≤ x imply x == y.
func Antisym[X any](l Lattice[X], x, y X) bool {
	return !(l.Leq(x, y) && l.Leq(y, x)) || l.Weq(x, y)
}

// FromAbove: x == y iff x and y have the same upper bounds. x and y are
// always probed, so extra probes only sharpen the failure witness.
func FromAbove[X any](l Lattice[X], x, y X, probes iter.Seq[X]) bool {
	same := l.Leq(x, y) == l.Leq(y, y) && l.Leq(x, x) == l.Leq(y, x)
	for z := range probes {
		if !same {
			break
		}
		same = l.Leq(x, z) == l.Leq(y, z)
	}
	return same == l.Weq(x, y)
}

// FromBelow: x == y iff x and y have the same lower bounds among probes.
func FromBelow[X any](l Lattice[X], x, y X, probes iter.Seq[X]) bool {
	return FromAbove(Dual(l), x, y, probes)
}

// SupUpper: every member of a family is below its sup.
func SupUpper[X any](l Lattice[X], xs iter.Seq[X]) bool {
	family := slices.Collect(xs)
	s := l.Sup(slices.Values(family))
	for _, x := range family {
		if !l.Leq(x, s) {
			return false
		}
	}
	return true
}

// InfLower: the inf of a family is below every member.
func InfLower[X any](l Lattice[X], xs iter.Seq[X]) bool {
	return SupUpper(Dual(l), xs)
}

// SupMono: if f(i) ≤ g(i) for every i then sup f ≤ sup g.
func SupMono[X any](l Lattice[X], f, g []X) bool {
	if len(f) != len(g) {
		return false
	}
	for i := range f {
		if !l.Leq(f[i], g[i]) {
			return true
		}
	}
	return l.Leq(l.Sup(slices.Values(f)), l.Sup(slices.Values(g)))
}

// InfMono: if f(i) ≤ g(i) for every i then inf f ≤ inf g.
func InfMono[X any](l Lattice[X], f, g []X) bool {
	return SupMono(Dual(l), g, f)
}

// CupMono: cup is monotone in both arguments.
func CupMono[X any](l Lattice[X], x, x2, y, y2 X) bool {
	if !l.Leq(x, x2) || !l.Leq(y, y2) {
		return true
	}
	return l.Leq(l.Cup(x, y), l.Cup(x2, y2))
}

// CapMono: cap is monotone in both arguments.
func CapMono[X any](l Lattice[X], x, x2, y, y2 X) bool {
	return CupMono(Dual(l), x2, x, y2, y)
}

// LeqXCup: x ≤ cup(x, y).
func LeqXCup[X any](l Lattice[X], x, y X) bool {
	return l.Leq(x, l.Cup(x, y))
}

// LeqCapX: cap(x, y) ≤ x.
func LeqCapX[X any](l Lattice[X], x, y X) bool {
	return LeqXCup(Dual(l), x, y)
}

// CupComm: cup(x, y) == cup(y, x).
func CupComm[X any](l Lattice[X], x, y X) bool {
	return l.Weq(l.Cup(x, y), l.Cup(y, x))
}

// CapComm: cap(x, y) == cap(y, x).
func CapComm[X any](l Lattice[X], x, y X) bool {
	return CupComm(Dual(l), x, y)
}

// CupAssoc: cup(x, cup(y, z)) == cup(cup(x, y), z).
func CupAssoc[X any](l Lattice[X], x, y, z X) bool {
	return l.Weq(l.Cup(x, l.Cup(y, z)), l.Cup(l.Cup(x, y), z))
}

// CapAssoc: cap(x, cap(y, z)) == cap(cap(x, y), z).
func CapAssoc[X any](l Lattice[X], x, y, z X) bool {
	return CupAssoc(Dual(l), x, y, z)
}

// CupIdem: cup(x, x) == x.
func CupIdem[X any](l Lattice[X], x X) bool {
	return l.Weq(l.Cup(x, x), x)
}

// CapIdem: cap(x, x) == x.
func CapIdem[X any](l Lattice[X], x X) bool {
	return CupIdem(Dual(l), x)
}

// CupBot: cup(x, bot) == x.
func CupBot[X any](l Lattice[X], x X) bool {
	return l.Weq(l.Cup(x, l.Bot()), x)
}

// CapTop: cap(x, top) == x.
func CapTop[X any](l Lattice[X], x X) bool {
	return CupBot(Dual(l), x)
}

// CupTop: cup(x, top) == top.
func CupTop[X any](l Lattice[X], x X) bool {
	return l.Weq(l.Cup(x, l.Top()), l.Top())
}

// CapBot: cap(x, bot) == bot.
func CapBot[X any](l Lattice[X], x X) bool {
	return CupTop(Dual(l), x)
}

// CupAbsorb: cup(x, cap(x, y)) == x.
func CupAbsorb[X any](l Lattice[X], x, y X) bool {
	return l.Weq(l.Cup(x, l.Cap(x, y)), x)
}

// CapAbsorb: cap(x, cup(x, y)) == x.
func CapAbsorb[X any](l Lattice[X], x, y X) bool {
	return CupAbsorb(Dual(l), x, y)
}

// CupSup: cup(x, y) == sup {x, y}.
func CupSup[X any](l Lattice[X], x, y X) bool {
	return l.Weq(l.Cup(x, y), l.Sup(Family(x, y)))
}

// CapInf: cap(x, y) == inf {x, y}.
func CapInf[X any](l Lattice[X], x, y X) bool {
	return CupSup(Dual(l), x, y)
}

// MonoWeq: a monotone f maps equivalent arguments to equivalent results.
// f is assumed monotone; the lemma returns true when x and y differ.
func MonoWeq[X any](l Lattice[X], f func(X) X, x, y X) bool {
	return !l.Weq(x, y) || l.Weq(f(x), f(y))
}

// Monotone reports whether f respects the order on every pair of elements of
// a finite lattice.
func Monotone[X any](l Enumerable[X], f func(X) X) bool {
	elems := slices.Collect(l.Elements())
	for _, x := range elems {
		fx := f(x)
		for _, y := range elems {
			if l.Leq(x, y) && !l.Leq(fx, f(y)) {
				return false
			}
		}
	}
	return true
}

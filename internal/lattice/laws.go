package lattice

import (
	"fmt"
	"iter"
	"slices"

	"coinduct/internal/errors"
)

// Law names one of the seven lattice laws.
type Law string

const (
	LawPreorder     Law = "preorder"
	LawWeqAntisym   Law = "weq-antisym"
	LawSupUniversal Law = "sup-universal"
	LawInfUniversal Law = "inf-universal"
	LawCupUniversal Law = "cup-universal"
	LawCapUniversal Law = "cap-universal"
	LawBounds       Law = "bounds"
)

// Laws lists every law in the order Certify checks them.
var Laws = []Law{
	LawPreorder, LawWeqAntisym,
	LawSupUniversal, LawInfUniversal,
	LawCupUniversal, LawCapUniversal,
	LawBounds,
}

// ErrLawViolated is returned when an instance breaks one of its laws.
var ErrLawViolated = errors.New("lattice law violated")

// subsetLimit bounds the carrier size for which every subset is used as a
// family when checking Sup and Inf.
const subsetLimit = 8

// Certify checks all seven laws by exhaustion over the carrier of l.
func Certify[X any](l Enumerable[X]) error {
	for _, law := range Laws {
		if err := CheckLaw(l, law); err != nil {
			return err
		}
	}
	return nil
}

// CheckLaw checks a single law by exhaustion.
func CheckLaw[X any](l Enumerable[X], law Law) error {
	elems := slices.Collect(l.Elements())
	switch law {
	case LawPreorder:
		return checkPreorder[X](l, elems)
	case LawWeqAntisym:
		return checkWeq[X](l, elems)
	case LawSupUniversal:
		return checkSup[X](l, elems, law)
	case LawInfUniversal:
		return checkSup[X](Dual[X](l), elems, law)
	case LawCupUniversal:
		return checkCup[X](l, elems, law)
	case LawCapUniversal:
		return checkCup[X](Dual[X](l), elems, law)
	case LawBounds:
		if err := checkBot[X](l, elems, law); err != nil {
			return err
		}
		return checkBot[X](Dual[X](l), elems, law)
	}
	return errors.Wrapf(errors.ErrIllFormed, "unknown law %q", law)
}

func violation(law Law, format string, args ...any) error {
	return errors.WithDetail(errors.Wrapf(ErrLawViolated, "%s", law), fmt.Sprintf(format, args...))
}

func checkPreorder[X any](l Lattice[X], elems []X) error {
	for _, x := range elems {
		if !l.Leq(x, x) {
			return violation(LawPreorder, "not reflexive at %v", x)
		}
	}
	for _, x := range elems {
		for _, y := range elems {
			if !l.Leq(x, y) {
				continue
			}
			for _, z := range elems {
				if l.Leq(y, z) && !l.Leq(x, z) {
					return violation(LawPreorder, "not transitive: %v ≤ %v ≤ %v", x, y, z)
				}
			}
		}
	}
	return nil
}

func checkWeq[X any](l Lattice[X], elems []X) error {
	for _, x := range elems {
		for _, y := range elems {
			if l.Weq(x, y) != (l.Leq(x, y) && l.Leq(y, x)) {
				return violation(LawWeqAntisym, "weq(%v, %v) disagrees with leq both ways", x, y)
			}
		}
	}
	return nil
}

// checkSup verifies sup F ≤ z ⇔ ∀x∈F. x ≤ z. At a dual lattice this is the
// universal property of Inf.
func checkSup[X any](l Lattice[X], elems []X, law Law) error {
	for family := range families(elems) {
		s := l.Sup(slices.Values(family))
		for _, z := range elems {
			all := true
			for _, x := range family {
				if !l.Leq(x, z) {
					all = false
					break
				}
			}
			if l.Leq(s, z) != all {
				return violation(law, "family %v, bound %v", family, z)
			}
		}
	}
	return nil
}

// checkCup verifies cup(x, y) ≤ z ⇔ x ≤ z ∧ y ≤ z.
func checkCup[X any](l Lattice[X], elems []X, law Law) error {
	for _, x := range elems {
		for _, y := range elems {
			c := l.Cup(x, y)
			for _, z := range elems {
				if l.Leq(c, z) != (l.Leq(x, z) && l.Leq(y, z)) {
					return violation(law, "operands %v, %v, bound %v", x, y, z)
				}
			}
		}
	}
	return nil
}

func checkBot[X any](l Lattice[X], elems []X, law Law) error {
	b := l.Bot()
	for _, x := range elems {
		if !l.Leq(b, x) {
			return violation(law, "%v is not above the bottom", x)
		}
	}
	return nil
}

// families yields every subset of elems for small carriers and otherwise the
// empty family, all singletons, all pairs and the whole carrier.
func families[X any](elems []X) iter.Seq[[]X] {
	return func(yield func([]X) bool) {
		if len(elems) <= subsetLimit {
			for mask := 0; mask < 1<<len(elems); mask++ {
				var f []X
				for i, x := range elems {
					if mask&(1<<i) != 0 {
						f = append(f, x)
					}
				}
				if !yield(f) {
					return
				}
			}
			return
		}
		if !yield(nil) {
			return
		}
		for i := range elems {
			if !yield([]X{elems[i]}) {
				return
			}
			for j := i + 1; j < len(elems); j++ {
				if !yield([]X{elems[i], elems[j]}) {
					return
				}
			}
		}
		yield(elems)
	}
}

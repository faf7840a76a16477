package lattice

import "iter"

// Bool is the lattice of propositions ordered by implication:
// false ≤ true, Sup is "exists", Inf is "forall".
type Bool struct{}

var _ Enumerable[bool] = Bool{}

func (Bool) Weq(x, y bool) bool { return x == y }
func (Bool) Leq(x, y bool) bool { return !x || y }
func (Bool) Cup(x, y bool) bool { return x || y }
func (Bool) Cap(x, y bool) bool { return x && y }
func (Bool) Bot() bool          { return false }
func (Bool) Top() bool          { return true }

// Sup stops at the first true member.
func (Bool) Sup(xs iter.Seq[bool]) bool {
	for x := range xs {
		if x {
			return true
		}
	}
	return false
}

// Inf stops at the first false member.
func (Bool) Inf(xs iter.Seq[bool]) bool {
	for x := range xs {
		if !x {
			return false
		}
	}
	return true
}

func (Bool) Elements() iter.Seq[bool] { return Family(false, true) }

func (Bool) String() string { return "Prop" }

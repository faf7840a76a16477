package lattice

import (
	"iter"

	"coinduct/internal/errors"
)

// Ops bundles the eight raw operations of a lattice instance.
type Ops[X any] struct {
	Name string
	Weq  func(x, y X) bool
	Leq  func(x, y X) bool
	Sup  func(xs iter.Seq[X]) X
	Inf  func(xs iter.Seq[X]) X
	Cup  func(x, y X) X
	Cap  func(x, y X) X
	Bot  func() X
	Top  func() X
}

// Instance is a lattice assembled from raw operations.
type Instance[X any] struct {
	ops Ops[X]
}

// New builds a lattice from ops. Every operation must be supplied; the laws
// are the caller's obligation and can be discharged with Certify when the
// carrier is finite.
func New[X any](ops Ops[X]) (*Instance[X], error) {
	missing := ops.missing()
	if len(missing) > 0 {
		return nil, errors.WithDetailf(
			errors.Wrapf(errors.ErrIllFormed, "lattice %q", ops.Name),
			"missing operations: %v", missing)
	}
	return &Instance[X]{ops: ops}, nil
}

func (o Ops[X]) missing() []string {
	var out []string
	if o.Weq == nil {
		out = append(out, "weq")
	}
	if o.Leq == nil {
		out = append(out, "leq")
	}
	if o.Sup == nil {
		out = append(out, "sup")
	}
	if o.Inf == nil {
		out = append(out, "inf")
	}
	if o.Cup == nil {
		out = append(out, "cup")
	}
	if o.Cap == nil {
		out = append(out, "cap")
	}
	if o.Bot == nil {
		out = append(out, "bot")
	}
	if o.Top == nil {
		out = append(out, "top")
	}
	return out
}

func (i *Instance[X]) Weq(x, y X) bool      { return i.ops.Weq(x, y) }
func (i *Instance[X]) Leq(x, y X) bool      { return i.ops.Leq(x, y) }
func (i *Instance[X]) Sup(xs iter.Seq[X]) X { return i.ops.Sup(xs) }
func (i *Instance[X]) Inf(xs iter.Seq[X]) X { return i.ops.Inf(xs) }
func (i *Instance[X]) Cup(x, y X) X         { return i.ops.Cup(x, y) }
func (i *Instance[X]) Cap(x, y X) X         { return i.ops.Cap(x, y) }
func (i *Instance[X]) Bot() X               { return i.ops.Bot() }
func (i *Instance[X]) Top() X               { return i.ops.Top() }
func (i *Instance[X]) String() string       { return i.ops.Name }

// FiniteInstance is an Instance whose carrier can be listed.
type FiniteInstance[X any] struct {
	*Instance[X]
	elements []X
}

// NewFinite builds a finite lattice from ops and the full list of carrier
// elements.
func NewFinite[X any](ops Ops[X], elements []X) (*FiniteInstance[X], error) {
	inst, err := New(ops)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, errors.Wrapf(errors.ErrIllFormed, "lattice %q has an empty carrier", ops.Name)
	}
	return &FiniteInstance[X]{Instance: inst, elements: append([]X(nil), elements...)}, nil
}

// Elements lists the carrier.
func (f *FiniteInstance[X]) Elements() iter.Seq[X] {
	return Family(f.elements...)
}

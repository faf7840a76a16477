// Package mon implements monotone endofunctions on a complete lattice and
// the complete lattice they form under the pointwise order.
//
// A Mon is a pipeline of stages. Composition concatenates pipelines, so the
// unit and associativity laws of composition hold structurally (Identical),
// not merely up to pointwise equivalence.
package mon

import (
	"fmt"
	"strings"

	"coinduct/internal/errors"
	"coinduct/internal/lattice"
)

// ErrNotMonotone is returned by Checked for a map that does not respect the
// order.
var ErrNotMonotone = errors.New("function is not monotone")

// Kind classifies a single stage.
type Kind int

const (
	KindPrim Kind = iota
	KindConst
	KindSup
	KindInf
	KindCup
	KindCap
	KindAlias
)

func (k Kind) String() string {
	switch k {
	case KindPrim:
		return "prim"
	case KindConst:
		return "const"
	case KindSup:
		return "sup"
	case KindInf:
		return "inf"
	case KindCup:
		return "cup"
	case KindCap:
		return "cap"
	case KindAlias:
		return "alias"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type stage[X any] struct {
	key  string
	kind Kind
	fn   func(X) X
	args []Mon[X]
}

// Mon is a monotone map X → X. The zero value is the identity.
//
// Monotonicity is a construction contract: New trusts its caller, Checked
// verifies the map over a finite carrier, and every other constructor
// preserves it.
type Mon[X any] struct {
	// outermost stage first; Apply runs them from the end
	stages []stage[X]
}

// Node describes a Mon made of a single stage.
type Node[X any] struct {
	Kind Kind
	Key  string
	Args []Mon[X]
}

// New wraps body as a primitive monotone map named name. The name is the
// map's identity for Identical and witness search.
func New[X any](name string, body func(X) X) Mon[X] {
	return single(stage[X]{key: name, kind: KindPrim, fn: body})
}

// Checked is New for finite carriers, verifying monotonicity first.
func Checked[X any](l lattice.Enumerable[X], name string, body func(X) X) (Mon[X], error) {
	if !lattice.Monotone(l, body) {
		return Mon[X]{}, errors.Wrapf(ErrNotMonotone, "%s", name)
	}
	return New(name, body), nil
}

// Id is the identity map.
func Id[X any]() Mon[X] { return Mon[X]{} }

// Const maps everything to x.
func Const[X any](x X) Mon[X] {
	return single(stage[X]{
		key:  fmt.Sprintf("const(%v)", x),
		kind: KindConst,
		fn:   func(X) X { return x },
	})
}

// Define names body. The alias is applied like body but keeps its own
// identity; witness search unfolds it.
func Define[X any](name string, body Mon[X]) Mon[X] {
	return single(stage[X]{key: name, kind: KindAlias, fn: body.Apply, args: []Mon[X]{body}})
}

func single[X any](s stage[X]) Mon[X] {
	return Mon[X]{stages: []stage[X]{s}}
}

// combine builds a sup/inf/cup/cap stage over operands.
func combine[X any](kind Kind, fn func(X) X, operands []Mon[X]) Mon[X] {
	keys := make([]string, len(operands))
	for i, f := range operands {
		keys[i] = f.Key()
	}
	return single(stage[X]{
		key:  fmt.Sprintf("%s(%s)", kind, strings.Join(keys, ", ")),
		kind: kind,
		fn:   fn,
		args: operands,
	})
}

// Compose returns f ∘ g, the map x ↦ f(g(x)), for any number of operands.
// Stages after a constant are dropped: a constant on the left absorbs
// whatever is composed on its right.
func Compose[X any](fs ...Mon[X]) Mon[X] {
	var out []stage[X]
	for _, f := range fs {
		out = append(out, f.stages...)
	}
	for i, s := range out {
		if s.kind == KindConst {
			out = out[:i+1]
			break
		}
	}
	if len(out) == 0 {
		return Mon[X]{}
	}
	return Mon[X]{stages: out}
}

// Apply evaluates f at x.
func (f Mon[X]) Apply(x X) X {
	for i := len(f.stages) - 1; i >= 0; i-- {
		x = f.stages[i].fn(x)
	}
	return x
}

// Key is the structural name of f.
func (f Mon[X]) Key() string {
	if len(f.stages) == 0 {
		return "id"
	}
	keys := make([]string, len(f.stages))
	for i, s := range f.stages {
		keys[i] = s.key
	}
	return strings.Join(keys, " ° ")
}

func (f Mon[X]) String() string { return f.Key() }

// IsId reports whether f is structurally the identity.
func (f Mon[X]) IsId() bool { return len(f.stages) == 0 }

// Len is the number of stages in f.
func (f Mon[X]) Len() int { return len(f.stages) }

// Single returns the node of a one-stage map.
func (f Mon[X]) Single() (Node[X], bool) {
	if len(f.stages) != 1 {
		return Node[X]{}, false
	}
	s := f.stages[0]
	return Node[X]{Kind: s.kind, Key: s.key, Args: s.args}, true
}

// Identical reports structural equality: same stages in the same order.
func Identical[X any](f, g Mon[X]) bool {
	if len(f.stages) != len(g.stages) {
		return false
	}
	for i := range f.stages {
		if f.stages[i].key != g.stages[i].key || f.stages[i].kind != g.stages[i].kind {
			return false
		}
	}
	return true
}

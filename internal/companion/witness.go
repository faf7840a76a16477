package companion

import "coinduct/internal/mon"

// Resolver finds a symmetry witness for b: a map s with
// b = cap(s, converse ∘ s ∘ converse).
type Resolver[X any] struct {
	Converse mon.Mon[X]
	Hints    map[string]mon.Mon[X]
	Depth    int
}

// Resolve searches for a witness of b. Hints are keyed by Mon.Key and win
// over structure. Structural search matches a cap whose operands are
// converse-conjugates of each other and unfolds aliases, spending one unit
// of depth per alias.
func (r Resolver[X]) Resolve(b mon.Mon[X]) (mon.Mon[X], bool) {
	return r.resolve(b, r.Depth)
}

func (r Resolver[X]) resolve(f mon.Mon[X], depth int) (mon.Mon[X], bool) {
	if depth <= 0 {
		return mon.Mon[X]{}, false
	}
	if s, ok := r.Hints[f.Key()]; ok {
		return s, true
	}
	node, ok := f.Single()
	if !ok {
		return mon.Mon[X]{}, false
	}
	switch node.Kind {
	case mon.KindCap:
		if len(node.Args) != 2 {
			return mon.Mon[X]{}, false
		}
		left, right := node.Args[0], node.Args[1]
		if mon.Identical(right, r.conjugate(left)) {
			return left, true
		}
		if mon.Identical(left, r.conjugate(right)) {
			return right, true
		}
	case mon.KindAlias:
		return r.resolve(node.Args[0], depth-1)
	}
	return mon.Mon[X]{}, false
}

func (r Resolver[X]) conjugate(s mon.Mon[X]) mon.Mon[X] {
	return mon.Compose(r.Converse, s, r.Converse)
}

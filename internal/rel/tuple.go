// Package rel is the lattice of n-ary relations over a bounded universe of
// naturals, ordered by inclusion, with the games whose greatest fixpoints
// are the relations of interest.
package rel

import (
	"fmt"
	"strings"
)

// MaxArity is the largest supported relation arity.
const MaxArity = 4

// Tuple is a point of [0, N)^arity. Tuples are comparable and serve as map
// keys.
type Tuple struct {
	n uint8
	v [MaxArity]int
}

// Of builds a tuple. It panics on more than MaxArity coordinates.
func Of(xs ...int) Tuple {
	if len(xs) > MaxArity {
		panic(fmt.Sprintf("rel: tuple of arity %d exceeds %d", len(xs), MaxArity))
	}
	var t Tuple
	t.n = uint8(len(xs))
	copy(t.v[:], xs)
	return t
}

// Pair builds a binary tuple.
func Pair(x, y int) Tuple { return Of(x, y) }

// Arity is the number of coordinates.
func (t Tuple) Arity() int { return int(t.n) }

// At returns coordinate i.
func (t Tuple) At(i int) int { return t.v[i] }

// Coords returns the coordinates as a slice.
func (t Tuple) Coords() []int { return append([]int(nil), t.v[:t.n]...) }

// Swap exchanges the coordinates of a pair.
func (t Tuple) Swap() Tuple {
	t.v[0], t.v[1] = t.v[1], t.v[0]
	return t
}

func (t Tuple) String() string {
	parts := make([]string, t.n)
	for i := range parts {
		parts[i] = fmt.Sprint(t.v[i])
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

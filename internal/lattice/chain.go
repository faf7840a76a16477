package lattice

import (
	"fmt"
	"iter"
)

// Chain is the finite total order 0 < 1 < … < n-1.
type Chain struct {
	n int
}

var _ Enumerable[int] = Chain{}

// NewChain returns the chain with n elements. n must be positive.
func NewChain(n int) Chain {
	if n < 1 {
		n = 1
	}
	return Chain{n: n}
}

// Len is the number of elements.
func (c Chain) Len() int { return c.n }

func (c Chain) Weq(x, y int) bool { return c.clamp(x) == c.clamp(y) }
func (c Chain) Leq(x, y int) bool { return c.clamp(x) <= c.clamp(y) }
func (c Chain) Cup(x, y int) int  { return max(c.clamp(x), c.clamp(y)) }
func (c Chain) Cap(x, y int) int  { return min(c.clamp(x), c.clamp(y)) }
func (c Chain) Bot() int          { return 0 }
func (c Chain) Top() int          { return c.n - 1 }

func (c Chain) Sup(xs iter.Seq[int]) int {
	out := c.Bot()
	for x := range xs {
		out = c.Cup(out, x)
	}
	return out
}

func (c Chain) Inf(xs iter.Seq[int]) int {
	out := c.Top()
	for x := range xs {
		out = c.Cap(out, x)
	}
	return out
}

func (c Chain) Elements() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.n; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

func (c Chain) String() string { return fmt.Sprintf("Chain(%d)", c.n) }

// clamp maps out-of-range integers onto the nearest end of the chain.
func (c Chain) clamp(x int) int {
	return min(max(x, 0), c.n-1)
}

package lattice

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

// checkLemmas runs every binary and ternary lemma over the whole carrier.
func checkLemmas[X any](t *testing.T, l Enumerable[X]) {
	t.Helper()
	var lat Lattice[X] = l
	elems := slices.Collect(l.Elements())
	for _, x := range elems {
		assert.True(t, CupIdem(lat, x), "CupIdem(%v)", x)
		assert.True(t, CapIdem(lat, x), "CapIdem(%v)", x)
		assert.True(t, CupBot(lat, x), "CupBot(%v)", x)
		assert.True(t, CapTop(lat, x), "CapTop(%v)", x)
		assert.True(t, CupTop(lat, x), "CupTop(%v)", x)
		assert.True(t, CapBot(lat, x), "CapBot(%v)", x)
		for _, y := range elems {
			assert.True(t, Antisym(lat, x, y), "Antisym(%v, %v)", x, y)
			assert.True(t, FromAbove(lat, x, y, l.Elements()), "FromAbove(%v, %v)", x, y)
			assert.True(t, FromBelow(lat, x, y, l.Elements()), "FromBelow(%v, %v)", x, y)
			assert.True(t, LeqXCup(lat, x, y), "LeqXCup(%v, %v)", x, y)
			assert.True(t, LeqCapX(lat, x, y), "LeqCapX(%v, %v)", x, y)
			assert.True(t, CupComm(lat, x, y), "CupComm(%v, %v)", x, y)
			assert.True(t, CapComm(lat, x, y), "CapComm(%v, %v)", x, y)
			assert.True(t, CupAbsorb(lat, x, y), "CupAbsorb(%v, %v)", x, y)
			assert.True(t, CapAbsorb(lat, x, y), "CapAbsorb(%v, %v)", x, y)
			assert.True(t, CupSup(lat, x, y), "CupSup(%v, %v)", x, y)
			assert.True(t, CapInf(lat, x, y), "CapInf(%v, %v)", x, y)
			assert.True(t, SupUpper(lat, Family(x, y)), "SupUpper(%v, %v)", x, y)
			assert.True(t, InfLower(lat, Family(x, y)), "InfLower(%v, %v)", x, y)
			for _, z := range elems {
				assert.True(t, CupAssoc(lat, x, y, z), "CupAssoc(%v, %v, %v)", x, y, z)
				assert.True(t, CapAssoc(lat, x, y, z), "CapAssoc(%v, %v, %v)", x, y, z)
			}
		}
	}
}

func TestLemmasHoldEverywhere(t *testing.T) {
	t.Run("bool", func(t *testing.T) { checkLemmas[bool](t, Bool{}) })
	t.Run("chain", func(t *testing.T) { checkLemmas[int](t, NewChain(4)) })
	t.Run("square", func(t *testing.T) { checkLemmas[Fn[int, bool]](t, square()) })
}

func TestMonotonicityLemmas(t *testing.T) {
	c := NewChain(4)
	assert.True(t, SupMono[int](c, []int{0, 1, 2}, []int{1, 1, 3}))
	assert.True(t, InfMono[int](c, []int{0, 1, 2}, []int{1, 1, 3}))
	assert.True(t, CupMono[int](c, 0, 2, 1, 3))
	assert.True(t, CapMono[int](c, 0, 2, 1, 3))
	assert.False(t, SupMono[int](c, []int{0}, []int{0, 1}))
	assert.True(t, MonoWeq[int](c, func(x int) int { return x / 2 }, 3, 3))
}

// The join-side lemma evaluated at the dual is exactly the meet-side lemma.
func TestDualityTransportsLemmas(t *testing.T) {
	l := square()
	d := DualFinite[Fn[int, bool]](l)
	for x := range l.Elements() {
		for y := range l.Elements() {
			assert.Equal(t, LeqCapX[Fn[int, bool]](l, x, y), LeqXCup[Fn[int, bool]](d, x, y))
			assert.Equal(t, LeqXCup[Fn[int, bool]](l, x, y), LeqCapX[Fn[int, bool]](d, x, y))
			assert.Equal(t, l.Leq(l.Cap(x, y), x), d.Leq(x, d.Cup(x, y)))
			assert.True(t, l.Weq(l.Cap(x, y), d.Cup(x, y)))
		}
	}
}

func TestMonotone(t *testing.T) {
	c := NewChain(4)
	assert.True(t, Monotone[int](c, func(x int) int { return min(x+1, 3) }))
	assert.False(t, Monotone[int](c, func(x int) int { return 3 - x }))
	assert.True(t, Monotone[bool](Bool{}, func(bool) bool { return true }))
	assert.False(t, Monotone[bool](Bool{}, func(x bool) bool { return !x }))
}

package mon

import "slices"

// Composition laws. Right composition distributes over every lattice
// operation; left composition only gives an inequality, since h need not
// preserve sups. Inf and cap forms are the sup and cup forms over the dual
// base lattice.

// SupCompRight: (sup_i f_i) ∘ g == sup_i (f_i ∘ g).
func SupCompRight[X any](m *Lattice[X], fs []Mon[X], g Mon[X]) bool {
	right := make([]Mon[X], len(fs))
	for i, f := range fs {
		right[i] = Compose(f, g)
	}
	return m.Weq(Compose(m.Sup(slices.Values(fs)), g), m.Sup(slices.Values(right)))
}

// InfCompRight: (inf_i f_i) ∘ g == inf_i (f_i ∘ g).
func InfCompRight[X any](m *Lattice[X], fs []Mon[X], g Mon[X]) bool {
	return SupCompRight(m.Dual(), fs, g)
}

// CupCompRight: cup(f1, f2) ∘ g == cup(f1 ∘ g, f2 ∘ g).
func CupCompRight[X any](m *Lattice[X], f1, f2, g Mon[X]) bool {
	return m.Weq(Compose(m.Cup(f1, f2), g), m.Cup(Compose(f1, g), Compose(f2, g)))
}

// CapCompRight: cap(f1, f2) ∘ g == cap(f1 ∘ g, f2 ∘ g).
func CapCompRight[X any](m *Lattice[X], f1, f2, g Mon[X]) bool {
	return CupCompRight(m.Dual(), f1, f2, g)
}

// BotCompRight: bot ∘ g == bot.
func BotCompRight[X any](m *Lattice[X], g Mon[X]) bool {
	return m.Weq(Compose(m.Bot(), g), m.Bot())
}

// TopCompRight: top ∘ g == top.
func TopCompRight[X any](m *Lattice[X], g Mon[X]) bool {
	return BotCompRight(m.Dual(), g)
}

// SupCompLeft: sup_i (h ∘ f_i) ≤ h ∘ sup_i f_i.
func SupCompLeft[X any](m *Lattice[X], h Mon[X], fs []Mon[X]) bool {
	left := make([]Mon[X], len(fs))
	for i, f := range fs {
		left[i] = Compose(h, f)
	}
	return m.Leq(m.Sup(slices.Values(left)), Compose(h, m.Sup(slices.Values(fs))))
}

// InfCompLeft: h ∘ inf_i f_i ≤ inf_i (h ∘ f_i).
func InfCompLeft[X any](m *Lattice[X], h Mon[X], fs []Mon[X]) bool {
	return SupCompLeft(m.Dual(), h, fs)
}

// CupCompLeft: cup(h ∘ f1, h ∘ f2) ≤ h ∘ cup(f1, f2).
func CupCompLeft[X any](m *Lattice[X], h, f1, f2 Mon[X]) bool {
	return m.Leq(m.Cup(Compose(h, f1), Compose(h, f2)), Compose(h, m.Cup(f1, f2)))
}

// CapCompLeft: h ∘ cap(f1, f2) ≤ cap(h ∘ f1, h ∘ f2).
func CapCompLeft[X any](m *Lattice[X], h, f1, f2 Mon[X]) bool {
	return CupCompLeft(m.Dual(), h, f1, f2)
}

// CompMono: f ≤ f2 and g ≤ g2 imply f ∘ g ≤ f2 ∘ g2.
func CompMono[X any](m *Lattice[X], f, f2, g, g2 Mon[X]) bool {
	if !m.Leq(f, f2) || !m.Leq(g, g2) {
		return true
	}
	return m.Leq(Compose(f, g), Compose(f2, g2))
}

// CompId: id is a two-sided unit for composition, structurally.
func CompId[X any](f Mon[X]) bool {
	return Identical(Compose(Id[X](), f), f) && Identical(Compose(f, Id[X]()), f)
}

// CompAssoc: composition is associative, structurally.
func CompAssoc[X any](f, g, h Mon[X]) bool {
	return Identical(Compose(f, Compose(g, h)), Compose(Compose(f, g), h))
}

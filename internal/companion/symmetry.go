package companion

import (
	"coinduct/internal/errors"
	"coinduct/internal/lattice"
	"coinduct/internal/mon"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Symmetrize returns cap(s, converse ∘ s ∘ converse), the map whose
// witness is s.
func Symmetrize[X any](l lattice.Lattice[X], converse, s mon.Mon[X]) mon.Mon[X] {
	return mon.Cap(l, s, mon.Compose(converse, s, converse))
}

// Symmetry is a proof by symmetry. With z = Candidate ∪ Claim, b's witness
// s, and z symmetric, t(z) is symmetric and Claim ≤ s(t(z)) gives the
// one-sided half of Claim ≤ b(t(z)). The three obligations are the witness,
// the symmetry of z and that one-sided step.
type Symmetry[X any] struct {
	id       uuid.UUID
	p        *Proof[X]
	converse mon.Mon[X]
	z        X
	witness  mon.Mon[X]
	resolved bool
}

// BySymmetry opens a candidate and starts a symmetry argument on it.
func (e *Engine[X]) BySymmetry(arity int, skel Skeleton[X], elements ...X) (*Symmetry[X], error) {
	p, err := e.Coinduction(arity, skel, elements...)
	if err != nil {
		return nil, err
	}
	return p.BySymmetry()
}

// BySymmetry starts a symmetry argument on the current candidate. The
// witness is searched for automatically; when the search fails the witness
// obligation stays open and can be met with Provide.
func (p *Proof[X]) BySymmetry() (*Symmetry[X], error) {
	if p.skel.Arity != 2 {
		return nil, errors.Wrapf(ErrNotBinary, "relation %s has arity %d", p.skel.Relation, p.skel.Arity)
	}
	if p.skel.Converse == nil {
		return nil, errors.WithHint(
			errors.Wrapf(ErrUnrecognized, "relation %s has no converse", p.skel.Relation),
			"set Skeleton.Converse for binary relations")
	}
	s := &Symmetry[X]{
		id:       uuid.New(),
		p:        p,
		converse: *p.skel.Converse,
		z:        p.e.l.Cup(p.x, p.claim),
	}
	r := Resolver[X]{Converse: s.converse, Hints: p.e.hints, Depth: p.e.opts.symmetryDepth}
	s.witness, s.resolved = r.Resolve(p.e.b)
	p.logger.Debug("Started symmetry argument",
		zap.String("symmetry", s.id.String()),
		zap.Bool("witness_resolved", s.resolved))
	return s, nil
}

// Witness returns the resolved or provided witness.
func (s *Symmetry[X]) Witness() (mon.Mon[X], bool) { return s.witness, s.resolved }

// Provide supplies a witness by hand. It is checked against b at bot, top,
// z and t(z).
func (s *Symmetry[X]) Provide(w mon.Mon[X]) error {
	e := s.p.e
	sym := Symmetrize(e.l, s.converse, w)
	for _, v := range []X{e.l.Bot(), e.l.Top(), s.z, e.t.Apply(s.z)} {
		if !e.l.Weq(sym.Apply(v), e.b.Apply(v)) {
			return errors.WithDetailf(
				errors.Wrapf(ErrWitnessNotFound, "%s is not a witness for %s", w.Key(), e.b.Key()),
				"differs at %v", v)
		}
	}
	s.witness, s.resolved = w, true
	s.p.logger.Debug("Witness provided", zap.String("symmetry", s.id.String()), zap.String("witness", w.Key()))
	return nil
}

// Obligations returns the witness, symmetric and step obligations in that
// order. The witness obligation is open until a witness is known, and the
// step obligation has no bound before that.
func (s *Symmetry[X]) Obligations() []Obligation[X] {
	e := s.p.e
	l := e.l
	base := Obligation[X]{Relation: s.p.skel.Relation, Arity: s.p.skel.Arity}

	tz := e.t.Apply(s.z)

	witness := base
	witness.ID, witness.Rule = uuid.New(), RuleWitness
	witness.Claim, witness.Bound = e.b.Apply(tz), l.Top()
	if s.resolved {
		witness.Bound = Symmetrize(l, s.converse, s.witness).Apply(tz)
	} else {
		witness.Open = true
	}

	symmetric := base
	symmetric.ID, symmetric.Rule = uuid.New(), RuleSymmetric
	symmetric.Claim, symmetric.Bound = s.converse.Apply(s.z), s.z

	step := base
	step.ID, step.Rule = uuid.New(), RuleStep
	step.Claim, step.Bound = s.p.claim, l.Top()
	if s.resolved {
		step.Bound = s.witness.Apply(tz)
	} else {
		step.Open = true
	}
	return []Obligation[X]{witness, symmetric, step}
}

// Qed discharges the three obligations and concludes Claim ≤ t(Under).
func (s *Symmetry[X]) Qed() (Theorem[X], error) {
	if !s.resolved {
		return Theorem[X]{}, errors.WithHint(
			errors.Wrapf(ErrWitnessNotFound, "%s", s.p.e.b.Key()),
			"register a hint on the engine or call Provide")
	}
	for _, o := range s.Obligations() {
		if !o.Holds(s.p.e.l) {
			s.p.logger.Debug("Symmetry obligation failed", zap.Stringer("obligation", o))
			return Theorem[X]{}, errors.WithDetailf(
				errors.Wrapf(ErrObligationFailed, "%s", o.Rule),
				"%v is not below %v", o.Claim, o.Bound)
		}
	}
	// a provided witness is only checked at a few points
	if e := s.p.e; !e.l.Leq(s.p.claim, e.bt.Apply(s.z)) {
		return Theorem[X]{}, errors.WithDetailf(
			errors.Wrapf(ErrWitnessNotFound, "%s disagrees with %s", s.witness.Key(), e.b.Key()),
			"%v is not below b(t(%v))", s.p.claim, s.z)
	}
	return s.p.conclude(RuleStep), nil
}

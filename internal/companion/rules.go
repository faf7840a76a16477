package companion

import (
	"fmt"
	"slices"

	"coinduct/internal/errors"
	"coinduct/internal/lattice"
	"coinduct/internal/mon"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Rule names the proof rule that produced an obligation.
type Rule string

const (
	RuleCoinduction Rule = "coinduction"
	RuleAccumulate  Rule = "accumulate"
	RuleWitness     Rule = "symmetry/witness"
	RuleSymmetric   Rule = "symmetry/symmetric"
	RuleStep        Rule = "symmetry/step"
)

// Skeleton is the reified shape of a goal: which relation it talks about,
// at which arity, in which lattice. Converse is required by the symmetry
// rule only.
type Skeleton[X any] struct {
	Relation string
	Arity    int
	Lattice  lattice.Lattice[X]
	Converse *mon.Mon[X]
}

// Obligation is a goal produced by a rule: Claim ≤ Bound.
type Obligation[X any] struct {
	ID       uuid.UUID
	Rule     Rule
	Relation string
	Arity    int
	Claim    X
	Bound    X

	// Open marks an obligation the engine could not discharge itself.
	Open bool
}

// Holds reports whether the obligation's inequality is true in l.
func (o Obligation[X]) Holds(l lattice.Lattice[X]) bool {
	return !o.Open && l.Leq(o.Claim, o.Bound)
}

func (o Obligation[X]) String() string {
	state := "closed"
	if o.Open {
		state = "open"
	}
	return fmt.Sprintf("%s[%s/%d] %v ≤ %v (%s)", o.Rule, o.Relation, o.Arity, o.Claim, o.Bound, state)
}

// Theorem records Claim ≤ t(Under) for the engine's map. Only the engine
// builds theorems.
type Theorem[X any] struct {
	id       uuid.UUID
	relation string
	fn       string
	claim    X
	under    X
	closed   bool
	proved   bool
}

func (th Theorem[X]) ID() uuid.UUID    { return th.id }
func (th Theorem[X]) Relation() string { return th.relation }
func (th Theorem[X]) Claim() X         { return th.claim }
func (th Theorem[X]) Under() X         { return th.under }

// Proved reports whether a proof produced the theorem, as opposed to a
// hypothesis that still has to be checked when accumulated.
func (th Theorem[X]) Proved() bool { return th.proved }

// Closed reports whether the theorem depends on nothing, in which case its
// claim is below t(bot) = gfp(b).
func (th Theorem[X]) Closed() bool { return th.closed }

// Proof is an open coinductive candidate. To show Claim ≤ t(Under) it is
// enough that Claim ≤ b(t(Candidate ∪ Claim)), given the invariant
// Candidate ≤ t(Under) that every rule maintains.
type Proof[X any] struct {
	id     uuid.UUID
	e      *Engine[X]
	skel   Skeleton[X]
	claim  X
	x      X
	under  X
	facts  []Theorem[X]
	logger *zap.Logger
}

// Coinduction opens a candidate for the claim sup(elements) with an empty
// accumulator. The conclusion is Claim ≤ t(bot) = gfp(b).
func (e *Engine[X]) Coinduction(arity int, skel Skeleton[X], elements ...X) (*Proof[X], error) {
	return e.CoinductionUnder(arity, skel, e.l.Bot(), elements...)
}

// CoinductionUnder opens a candidate whose conclusion is
// Claim ≤ t(under). The accumulator starts at under.
func (e *Engine[X]) CoinductionUnder(arity int, skel Skeleton[X], under X, elements ...X) (*Proof[X], error) {
	if err := e.recognize(arity, skel, elements); err != nil {
		return nil, err
	}
	p := &Proof[X]{
		id:    uuid.New(),
		e:     e,
		skel:  skel,
		claim: e.l.Sup(slices.Values(elements)),
		x:     under,
		under: under,
	}
	p.logger = e.opts.logger.With(zap.String("proof", p.id.String()), zap.String("relation", skel.Relation))
	p.logger.Debug("Opened candidate", zap.Int("arity", arity), zap.Int("elements", len(elements)))
	return p, nil
}

// Accumulate opens a candidate and folds facts into it.
func (e *Engine[X]) Accumulate(arity int, facts []Theorem[X], skel Skeleton[X], elements ...X) (*Proof[X], error) {
	p, err := e.Coinduction(arity, skel, elements...)
	if err != nil {
		return nil, err
	}
	for _, th := range facts {
		p.Establish(th)
	}
	if err := p.Accumulate(len(facts)); err != nil {
		return nil, err
	}
	return p, nil
}

// Hypothesis states claim ≤ gfp(b) for relation without proving it. It is
// checked when accumulated.
func (e *Engine[X]) Hypothesis(relation string, claim X) Theorem[X] {
	return Theorem[X]{
		id:       uuid.New(),
		relation: relation,
		fn:       e.b.Key(),
		claim:    claim,
		under:    e.l.Bot(),
		closed:   true,
	}
}

func (e *Engine[X]) recognize(arity int, skel Skeleton[X], elements []X) error {
	switch {
	case skel.Lattice == nil:
		return errors.Wrap(ErrUnrecognized, "skeleton has no lattice")
	case arity <= 0:
		return errors.Wrapf(ErrUnrecognized, "arity %d", arity)
	case arity != skel.Arity:
		return errors.Wrapf(ErrUnrecognized, "arity %d does not match relation %s of arity %d", arity, skel.Relation, skel.Arity)
	case len(elements) == 0:
		return errors.WithHint(errors.Wrap(ErrUnrecognized, "no elements"),
			"a candidate needs at least one element to relate")
	}
	return nil
}

// ID identifies the proof in logs.
func (p *Proof[X]) ID() uuid.UUID { return p.id }

// Claim is sup of the proof's elements.
func (p *Proof[X]) Claim() X { return p.claim }

// Candidate is the accumulator: facts the proof may use.
func (p *Proof[X]) Candidate() X { return p.x }

// Under is the parameter of the conclusion Claim ≤ t(Under).
func (p *Proof[X]) Under() X { return p.under }

// Established returns the facts not yet accumulated, oldest first.
func (p *Proof[X]) Established() []Theorem[X] { return slices.Clone(p.facts) }

// Goal is the current obligation Claim ≤ b(t(Candidate ∪ Claim)).
func (p *Proof[X]) Goal() Obligation[X] {
	l := p.e.l
	return Obligation[X]{
		ID:       uuid.New(),
		Rule:     RuleCoinduction,
		Relation: p.skel.Relation,
		Arity:    p.skel.Arity,
		Claim:    p.claim,
		Bound:    p.e.bt.Apply(l.Cup(p.x, p.claim)),
	}
}

// Establish makes th available to a later Accumulate.
func (p *Proof[X]) Establish(th Theorem[X]) {
	p.facts = append(p.facts, th)
	p.logger.Debug("Established fact", zap.String("fact", th.id.String()), zap.Bool("proved", th.proved))
}

// Accumulate folds the n most recently established facts into the
// candidate. A fact Claim ≤ t(Under) adds both Claim and Under to the
// candidate and Under to the conclusion's parameter.
func (p *Proof[X]) Accumulate(n int) error {
	if n < 0 || n > len(p.facts) {
		return errors.Wrapf(ErrCountMismatch, "accumulate %d facts, %d established", n, len(p.facts))
	}
	l, t := p.e.l, p.e.t
	folded := p.facts[len(p.facts)-n:]
	for _, th := range folded {
		if th.relation != p.skel.Relation || th.fn != p.e.b.Key() {
			return errors.WithDetailf(
				errors.Wrapf(ErrRelationMismatch, "fact about %s under %s", th.relation, th.fn),
				"proof is about %s under %s", p.skel.Relation, p.e.b.Key())
		}
		if !l.Leq(th.claim, t.Apply(th.under)) {
			return errors.Wrapf(ErrUnprovedFact, "fact %s: %v is not below %v", th.id, th.claim, t.Apply(th.under))
		}
	}
	for _, th := range folded {
		p.x = l.Cup(p.x, l.Cup(th.under, th.claim))
		p.under = l.Cup(p.under, th.under)
	}
	p.facts = p.facts[:len(p.facts)-n]
	p.logger.Debug("Accumulated facts", zap.Int("count", n), zap.Int("remaining", len(p.facts)))
	return nil
}

// Qed discharges the goal and returns Claim ≤ t(Under).
func (p *Proof[X]) Qed() (Theorem[X], error) {
	goal := p.Goal()
	if !goal.Holds(p.e.l) {
		p.logger.Debug("Goal failed", zap.Stringer("goal", goal))
		return Theorem[X]{}, errors.WithDetailf(
			errors.Wrapf(ErrObligationFailed, "%s", goal.Rule),
			"%v is not below %v", goal.Claim, goal.Bound)
	}
	return p.conclude(RuleCoinduction), nil
}

func (p *Proof[X]) conclude(rule Rule) Theorem[X] {
	th := Theorem[X]{
		id:       uuid.New(),
		relation: p.skel.Relation,
		fn:       p.e.b.Key(),
		claim:    p.claim,
		under:    p.under,
		closed:   p.e.l.Weq(p.under, p.e.l.Bot()),
		proved:   true,
	}
	p.logger.Debug("Proved", zap.String("rule", string(rule)), zap.String("theorem", th.id.String()), zap.Bool("closed", th.closed))
	return th
}

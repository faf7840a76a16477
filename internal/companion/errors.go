package companion

import "coinduct/internal/errors"

// Failures of a single proof step. None of them affect the engine, which
// stays usable for further steps.
var (
	// ErrUnrecognized: the inputs do not match any known goal shape.
	ErrUnrecognized = errors.New("unrecognized situation")

	// ErrCountMismatch: more facts requested than were established.
	ErrCountMismatch = errors.New("fact count mismatch")

	// ErrRelationMismatch: a fact is about a different relation.
	ErrRelationMismatch = errors.New("only one coinductive relation is allowed")

	// ErrNotBinary: symmetry requested for a relation of arity other than 2.
	ErrNotBinary = errors.New("binary relation expected")

	// ErrWitnessNotFound: no symmetry witness was resolved or provided.
	ErrWitnessNotFound = errors.New("symmetry witness not found")

	// ErrUnprovedFact: an accumulated fact does not hold.
	ErrUnprovedFact = errors.New("fact is not established")

	// ErrObligationFailed: the claim is not below its bound.
	ErrObligationFailed = errors.New("proof obligation does not hold")

	// ErrNoConvergence: the descending chain from top did not stabilize.
	ErrNoConvergence = errors.New("fixpoint iteration did not converge")
)

package r1cs

import (
	"github.com/webb-tools/bulletproofs/generators"
	"github.com/webb-tools/bulletproofs/ristretto"
	"github.com/webb-tools/bulletproofs/transcript"
)

// VerifierCS is the PRE-commitment ConstraintSystem implementation: a
// gadget may allocate multipliers and add constraints, but cannot yet draw a
// challenge, since not every commitment (specifically the proof's A_I, A_O,
// S) has been bound into the transcript yet.
type VerifierCS struct {
	bpGens      generators.BulletproofGens
	pcGens      generators.PedersenGens
	transcript  *transcript.Transcript
	constraints []Constraint
	numVars     int
	v           []ristretto.Point
	callbacks   []func(CommittedConstraintSystem) error
}

// CommittedVerifierCS is the POST-commitment state: the same multiplier and
// constraint operations, plus ChallengeScalar.
type CommittedVerifierCS struct {
	cs *VerifierCS
}

// NewVerifierCS constructs an empty constraint system bound to the given
// external (Pedersen-committed) inputs. It domain-separates the transcript
// and absorbs every commitment, then returns opaque Variables the caller
// passes into the shared gadget code.
func NewVerifierCS(
	bpGens generators.BulletproofGens,
	pcGens generators.PedersenGens,
	tr *transcript.Transcript,
	commitments []ristretto.Point,
) (*VerifierCS, []Variable) {
	m := len(commitments)
	tr.R1CSDomainSep(uint64(m))

	vars := make([]Variable, m)
	for i, c := range commitments {
		tr.CommitPoint("V", c)
		vars[i] = Variable{Index: Committed(i), Assignment: Missing()}
	}

	cs := &VerifierCS{
		bpGens:     bpGens,
		pcGens:     pcGens,
		transcript: tr,
		v:          append([]ristretto.Point(nil), commitments...),
	}
	return cs, vars
}

// AssignMultiplier implements ConstraintSystem.
func (cs *VerifierCS) AssignMultiplier(left, right, out Assignment) (Variable, Variable, Variable, error) {
	k := cs.numVars
	cs.numVars++
	return Variable{Index: MultiplierLeft(k), Assignment: left},
		Variable{Index: MultiplierRight(k), Assignment: right},
		Variable{Index: MultiplierOutput(k), Assignment: out},
		nil
}

// AddConstraint implements ConstraintSystem.
func (cs *VerifierCS) AddConstraint(c Constraint) {
	cs.constraints = append(cs.constraints, c)
}

// AfterCommitment implements ConstraintSystem: in the PRE state the callback
// is only queued, never invoked.
func (cs *VerifierCS) AfterCommitment(f func(CommittedConstraintSystem) error) error {
	cs.callbacks = append(cs.callbacks, f)
	return nil
}

// commit drains every registered callback in order against a fresh
// CommittedVerifierCS, consuming cs. A callback may itself call
// AssignMultiplier/AddConstraint, extending numVars and the constraint list;
// that is expected of randomized gadgets. If any callback fails, the
// transition aborts and the error is surfaced as a GadgetError.
func (cs *VerifierCS) commit() (*CommittedVerifierCS, error) {
	committed := &CommittedVerifierCS{cs: cs}

	callbacks := cs.callbacks
	cs.callbacks = nil
	for _, f := range callbacks {
		if err := f(committed); err != nil {
			return nil, &GadgetError{Err: err}
		}
	}
	return committed, nil
}

// AssignMultiplier implements ConstraintSystem by delegating to the
// underlying VerifierCS.
func (c *CommittedVerifierCS) AssignMultiplier(left, right, out Assignment) (Variable, Variable, Variable, error) {
	return c.cs.AssignMultiplier(left, right, out)
}

// AddConstraint implements ConstraintSystem by delegating.
func (c *CommittedVerifierCS) AddConstraint(constraint Constraint) {
	c.cs.AddConstraint(constraint)
}

// AfterCommitment implements ConstraintSystem: in the POST state the
// callback executes synchronously.
func (c *CommittedVerifierCS) AfterCommitment(f func(CommittedConstraintSystem) error) error {
	return f(c)
}

// ChallengeScalar implements CommittedConstraintSystem.
func (c *CommittedVerifierCS) ChallengeScalar(label string) OpaqueScalar {
	return NewOpaqueScalar(c.cs.transcript.ChallengeScalar(label))
}

package r1cs

import (
	"crypto/rand"

	"github.com/webb-tools/bulletproofs/generators"
	"github.com/webb-tools/bulletproofs/ristretto"
	"github.com/webb-tools/bulletproofs/transcript"
)

// ProverCS is the prover-side twin of VerifierCS: the same gadget code runs
// against it, but AssignMultiplier's assignments are concrete and Commit
// additionally produces the Pedersen commitment for an external input. The
// constraint-system API is shared between prover and verifier so gadget
// code is written once and is oblivious to which side it runs on.
type ProverCS struct {
	bpGens      generators.BulletproofGens
	pcGens      generators.PedersenGens
	transcript  *transcript.Transcript
	constraints []Constraint
	callbacks   []func(CommittedConstraintSystem) error

	aL []ristretto.Scalar
	aR []ristretto.Scalar
	aO []ristretto.Scalar

	v         []ristretto.Point
	vBlinding []ristretto.Scalar
}

// CommittedProverCS is the prover's POST-commitment state.
type CommittedProverCS struct {
	cs *ProverCS
}

// NewProverCS starts an empty prover-side constraint system.
func NewProverCS(bpGens generators.BulletproofGens, pcGens generators.PedersenGens, tr *transcript.Transcript) *ProverCS {
	return &ProverCS{bpGens: bpGens, pcGens: pcGens, transcript: tr}
}

// Commit allocates a new external input, returning its Pedersen commitment
// and a Variable carrying the concrete value.
//
// Unlike VerifierCS, which receives every commitment up front and
// can domain-separate and absorb them all in one step (NewVerifierCS),
// Commit is called incrementally as the caller allocates external inputs.
// The commitments are absorbed into the transcript once their final count
// is known, at the start of Prove, so the two sides drive the transcript
// through the identical domain-sep-then-absorb-V sequence despite the
// prover's API exposing it incrementally.
func (cs *ProverCS) Commit(value, blinding ristretto.Scalar) (ristretto.Point, Variable) {
	i := len(cs.v)
	v := cs.pcGens.Commit(value, blinding)
	cs.v = append(cs.v, v)
	cs.vBlinding = append(cs.vBlinding, blinding)

	return v, Variable{Index: Committed(i), Assignment: Known(value)}
}

// Commitments returns the external commitments allocated so far, for
// handing to the verifier out of band.
func (cs *ProverCS) Commitments() []ristretto.Point {
	return append([]ristretto.Point(nil), cs.v...)
}

// AssignMultiplier implements ConstraintSystem.
func (cs *ProverCS) AssignMultiplier(left, right, out Assignment) (Variable, Variable, Variable, error) {
	k := len(cs.aL)
	lv, _ := left.Get()
	rv, _ := right.Get()
	ov, _ := out.Get()
	cs.aL = append(cs.aL, lv)
	cs.aR = append(cs.aR, rv)
	cs.aO = append(cs.aO, ov)
	return Variable{Index: MultiplierLeft(k), Assignment: left},
		Variable{Index: MultiplierRight(k), Assignment: right},
		Variable{Index: MultiplierOutput(k), Assignment: out},
		nil
}

// AddConstraint implements ConstraintSystem.
func (cs *ProverCS) AddConstraint(c Constraint) {
	cs.constraints = append(cs.constraints, c)
}

// AfterCommitment implements ConstraintSystem.
func (cs *ProverCS) AfterCommitment(f func(CommittedConstraintSystem) error) error {
	cs.callbacks = append(cs.callbacks, f)
	return nil
}

func (cs *ProverCS) commit() (*CommittedProverCS, error) {
	committed := &CommittedProverCS{cs: cs}
	callbacks := cs.callbacks
	cs.callbacks = nil
	for _, f := range callbacks {
		if err := f(committed); err != nil {
			return nil, &GadgetError{Err: err}
		}
	}
	return committed, nil
}

// AssignMultiplier implements ConstraintSystem by delegating.
func (c *CommittedProverCS) AssignMultiplier(left, right, out Assignment) (Variable, Variable, Variable, error) {
	return c.cs.AssignMultiplier(left, right, out)
}

// AddConstraint implements ConstraintSystem by delegating.
func (c *CommittedProverCS) AddConstraint(constraint Constraint) {
	c.cs.AddConstraint(constraint)
}

// AfterCommitment implements ConstraintSystem: runs synchronously in POST.
func (c *CommittedProverCS) AfterCommitment(f func(CommittedConstraintSystem) error) error {
	return f(c)
}

// ChallengeScalar implements CommittedConstraintSystem.
func (c *CommittedProverCS) ChallengeScalar(label string) OpaqueScalar {
	return NewOpaqueScalar(c.cs.transcript.ChallengeScalar(label))
}

func (c *CommittedProverCS) flattenedConstraints(z ristretto.Scalar) (wL, wR, wO, wV []ristretto.Scalar, wc ristretto.Scalar) {
	n := len(c.cs.aL)
	m := len(c.cs.v)

	wL = zeroVector(n)
	wR = zeroVector(n)
	wO = zeroVector(n)
	wV = zeroVector(m)
	wc = ristretto.Zero()

	expZ := z
	for _, constraint := range c.cs.constraints {
		for _, t := range constraint.LC.terms {
			weighted := expZ.Mul(t.Coeff.internal())
			switch t.Index.Kind {
			case KindMultiplierLeft:
				wL[t.Index.Index] = wL[t.Index.Index].Add(weighted)
			case KindMultiplierRight:
				wR[t.Index.Index] = wR[t.Index.Index].Add(weighted)
			case KindMultiplierOutput:
				wO[t.Index.Index] = wO[t.Index.Index].Add(weighted)
			case KindCommitted:
				wV[t.Index.Index] = wV[t.Index.Index].Sub(weighted)
			case KindOne:
				wc = wc.Sub(weighted)
			}
		}
		expZ = expZ.Mul(z)
	}
	return wL, wR, wO, wV, wc
}

func randomScalar() ristretto.Scalar {
	return ristretto.RandomScalarFrom(rand.Reader)
}

func randomScalarVector(n int) []ristretto.Scalar {
	out := make([]ristretto.Scalar, n)
	for i := range out {
		out[i] = randomScalar()
	}
	return out
}

package r1cs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/webb-tools/bulletproofs/generators"
	"github.com/webb-tools/bulletproofs/ristretto"
	"github.com/webb-tools/bulletproofs/transcript"
)

const testGensCapacity = 64

// multiplicationStatement proves a*b=c for three externally committed
// values, the minimal exercise of AssignMultiplier/AddConstraint that does
// not depend on the gadgets package.
func multiplicationStatement(cs ConstraintSystem, a, b, c Variable) error {
	l, r, out, err := cs.AssignMultiplier(a.Assignment, b.Assignment, c.Assignment)
	if err != nil {
		return err
	}
	cs.AddConstraint(Constrain(FromVariable(l).Sub(FromVariable(a))))
	cs.AddConstraint(Constrain(FromVariable(r).Sub(FromVariable(b))))
	cs.AddConstraint(Constrain(FromVariable(out).Sub(FromVariable(c))))
	return nil
}

func proveAndVerify(t *testing.T, a, b, c uint64) error {
	t.Helper()
	bpGens := generators.NewBulletproofGens(testGensCapacity)
	pcGens := generators.NewPedersenGens()

	proverTr := transcript.New("r1cs-test-multiplication")
	prover := NewProverCS(bpGens, pcGens, proverTr)
	_, aVar := prover.Commit(ristretto.FromUint64(a), ristretto.RandomScalar())
	_, bVar := prover.Commit(ristretto.FromUint64(b), ristretto.RandomScalar())
	_, cVar := prover.Commit(ristretto.FromUint64(c), ristretto.RandomScalar())
	require.NoError(t, multiplicationStatement(prover, aVar, bVar, cVar))

	proof, err := Prove(prover)
	require.NoError(t, err)

	verifierTr := transcript.New("r1cs-test-multiplication")
	verifier, vars := NewVerifierCS(bpGens, pcGens, verifierTr, prover.Commitments())
	require.NoError(t, multiplicationStatement(verifier, vars[0], vars[1], vars[2]))

	return verifier.Verify(proof)
}

func TestMultiplicationGateAccepts(t *testing.T) {
	require.NoError(t, proveAndVerify(t, 6, 7, 42))
}

func TestMultiplicationGateRejectsWrongProduct(t *testing.T) {
	err := proveAndVerify(t, 6, 7, 43)
	require.ErrorIs(t, err, ErrVerificationFailed)
}

// n=1: a single multiplier, no padding.
func TestSingleMultiplierBoundary(t *testing.T) {
	require.NoError(t, proveAndVerify(t, 1, 1, 1))
}

// n=4: already a power of two, pad=0.
func TestPowerOfTwoBoundary(t *testing.T) {
	bpGens := generators.NewBulletproofGens(testGensCapacity)
	pcGens := generators.NewPedersenGens()

	proverTr := transcript.New("r1cs-test-power-of-two")
	prover := NewProverCS(bpGens, pcGens, proverTr)

	var aVars, bVars, cVars []Variable
	for i := 0; i < 4; i++ {
		_, av := prover.Commit(ristretto.FromUint64(uint64(i+1)), ristretto.RandomScalar())
		_, bv := prover.Commit(ristretto.FromUint64(2), ristretto.RandomScalar())
		_, cv := prover.Commit(ristretto.FromUint64(uint64(2*(i+1))), ristretto.RandomScalar())
		aVars, bVars, cVars = append(aVars, av), append(bVars, bv), append(cVars, cv)
	}
	for i := range aVars {
		require.NoError(t, multiplicationStatement(prover, aVars[i], bVars[i], cVars[i]))
	}
	proof, err := Prove(prover)
	require.NoError(t, err)
	require.Len(t, proof.IPP.LVec, 2, "4 multipliers pad to n'=4, lg(4)=2 IPP rounds")

	verifierTr := transcript.New("r1cs-test-power-of-two")
	verifier, vars := NewVerifierCS(bpGens, pcGens, verifierTr, prover.Commitments())
	for i := 0; i < 4; i++ {
		require.NoError(t, multiplicationStatement(verifier, vars[3*i], vars[3*i+1], vars[3*i+2]))
	}
	require.NoError(t, verifier.Verify(proof))
}

// AfterCommitment must run exactly once, after the PRE/POST transition, and
// its ChallengeScalar draws must be consistent between prover and verifier
// since both derive them from the same transcript history.
func TestAfterCommitmentRunsOnceAfterTransition(t *testing.T) {
	bpGens := generators.NewBulletproofGens(testGensCapacity)
	pcGens := generators.NewPedersenGens()

	build := func(cs ConstraintSystem, x Variable) *int {
		calls := new(int)
		err := cs.AfterCommitment(func(committed CommittedConstraintSystem) error {
			*calls++
			challenge := Known(committed.ChallengeScalar("randomizer").internal())
			_, _, _, err := committed.AssignMultiplier(x.Assignment, challenge, x.Assignment.Mul(challenge))
			return err
		})
		require.NoError(t, err)
		return calls
	}

	proverTr := transcript.New("r1cs-test-after-commitment")
	prover := NewProverCS(bpGens, pcGens, proverTr)
	_, xVar := prover.Commit(ristretto.FromUint64(5), ristretto.RandomScalar())
	calls := build(prover, xVar)
	require.Equal(t, 0, *calls, "callback must not run before the commitment transition")

	proof, err := Prove(prover)
	require.NoError(t, err)
	require.Equal(t, 1, *calls, "callback must run exactly once, during Prove's commit step")

	verifierTr := transcript.New("r1cs-test-after-commitment")
	verifier, vars := NewVerifierCS(bpGens, pcGens, verifierTr, prover.Commitments())
	vCalls := build(verifier, vars[0])
	require.NoError(t, verifier.Verify(proof))
	require.Equal(t, 1, *vCalls)
}

func TestProofBinaryRoundTrip(t *testing.T) {
	bpGens := generators.NewBulletproofGens(testGensCapacity)
	pcGens := generators.NewPedersenGens()

	proverTr := transcript.New("r1cs-test-marshal")
	prover := NewProverCS(bpGens, pcGens, proverTr)
	_, aVar := prover.Commit(ristretto.FromUint64(3), ristretto.RandomScalar())
	_, bVar := prover.Commit(ristretto.FromUint64(4), ristretto.RandomScalar())
	_, cVar := prover.Commit(ristretto.FromUint64(12), ristretto.RandomScalar())
	require.NoError(t, multiplicationStatement(prover, aVar, bVar, cVar))

	proof, err := Prove(prover)
	require.NoError(t, err)

	decoded, err := ProofFromBytes(proof.Bytes())
	require.NoError(t, err)
	require.Equal(t, proof.Bytes(), decoded.Bytes())

	verifierTr := transcript.New("r1cs-test-marshal")
	verifier, vars := NewVerifierCS(bpGens, pcGens, verifierTr, prover.Commitments())
	require.NoError(t, multiplicationStatement(verifier, vars[0], vars[1], vars[2]))
	require.NoError(t, verifier.Verify(decoded))
}

func TestProofJSONRoundTrip(t *testing.T) {
	bpGens := generators.NewBulletproofGens(testGensCapacity)
	pcGens := generators.NewPedersenGens()

	proverTr := transcript.New("r1cs-test-marshal-json")
	prover := NewProverCS(bpGens, pcGens, proverTr)
	_, aVar := prover.Commit(ristretto.FromUint64(3), ristretto.RandomScalar())
	_, bVar := prover.Commit(ristretto.FromUint64(4), ristretto.RandomScalar())
	_, cVar := prover.Commit(ristretto.FromUint64(12), ristretto.RandomScalar())
	require.NoError(t, multiplicationStatement(prover, aVar, bVar, cVar))

	proof, err := Prove(prover)
	require.NoError(t, err)

	encoded, err := proof.MarshalJSON()
	require.NoError(t, err)

	var decoded R1CSProof
	require.NoError(t, decoded.UnmarshalJSON(encoded))
	require.True(t, proof.AI.Equal(decoded.AI))
	require.True(t, proof.Tx.Equal(decoded.Tx))
	require.Equal(t, len(proof.IPP.LVec), len(decoded.IPP.LVec))
}

func TestProofFromBytesRejectsTruncation(t *testing.T) {
	_, err := ProofFromBytes([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrFormatError)
}

func TestEmptyConstraintSystemTrivialAccept(t *testing.T) {
	bpGens := generators.NewBulletproofGens(testGensCapacity)
	pcGens := generators.NewPedersenGens()

	proverTr := transcript.New("r1cs-test-empty")
	prover := NewProverCS(bpGens, pcGens, proverTr)
	prover.Commit(ristretto.Zero(), ristretto.RandomScalar())

	proof, err := Prove(prover)
	require.NoError(t, err)
	require.Empty(t, proof.IPP.LVec)

	verifierTr := transcript.New("r1cs-test-empty")
	verifier, _ := NewVerifierCS(bpGens, pcGens, verifierTr, prover.Commitments())
	require.NoError(t, verifier.Verify(proof))
}

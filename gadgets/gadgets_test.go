package gadgets

import (
	"errors"
	"testing"

	"github.com/webb-tools/bulletproofs/generators"
	"github.com/webb-tools/bulletproofs/r1cs"
	"github.com/webb-tools/bulletproofs/ristretto"
	"github.com/webb-tools/bulletproofs/transcript"
)

const testGensCapacity = 128

func proveVerifySetMembership(t *testing.T, gensCapacity int, value uint64, set []uint64) error {
	t.Helper()
	bpGens := generators.NewBulletproofGens(gensCapacity)
	pcGens := generators.NewPedersenGens()
	v := ristretto.FromUint64(value)

	proverTr := transcript.New("gadgets-test-set-membership")
	prover := r1cs.NewProverCS(bpGens, pcGens, proverTr)

	_, vVar := prover.Commit(v, ristretto.RandomScalar())
	diffVars := make([]r1cs.Variable, len(set))
	for i, elem := range set {
		diff := ristretto.FromUint64(elem).Sub(v)
		_, diffVars[i] = prover.Commit(diff, ristretto.RandomScalar())
	}
	if err := SetMembership(prover, vVar, diffVars, set); err != nil {
		t.Fatalf("SetMembership (prover side): %v", err)
	}
	proof, err := r1cs.Prove(prover)
	if err != nil {
		return err
	}

	verifierTr := transcript.New("gadgets-test-set-membership")
	verifier, vars := r1cs.NewVerifierCS(bpGens, pcGens, verifierTr, prover.Commitments())
	if err := SetMembership(verifier, vars[0], vars[1:], set); err != nil {
		t.Fatalf("SetMembership (verifier side): %v", err)
	}
	return verifier.Verify(proof)
}

// E1: v=20 is a genuine member of the set; the proof must verify.
func TestSetMembershipAccepts(t *testing.T) {
	set := []uint64{2, 3, 5, 6, 8, 20, 25}
	if err := proveVerifySetMembership(t, testGensCapacity, 20, set); err != nil {
		t.Errorf("TestSetMembershipAccepts | expected acceptance, got %v", err)
	}
}

// E2: v=21 is not in the set, so no witness makes the difference product
// zero; the constraint system is unsatisfiable and verification must fail.
func TestSetMembershipRejectsNonMember(t *testing.T) {
	set := []uint64{2, 3, 5, 6, 8, 20, 25}
	err := proveVerifySetMembership(t, testGensCapacity, 21, set)
	if err == nil {
		t.Fatal("TestSetMembershipRejectsNonMember | expected rejection, got acceptance")
	}
	if !errors.Is(err, r1cs.ErrVerificationFailed) {
		t.Errorf("TestSetMembershipRejectsNonMember | expected ErrVerificationFailed, got %v", err)
	}
}

// E6: the generator set is smaller than the padded multiplier count; the
// failure must be InvalidGeneratorsLength, surfaced before any transcript
// challenge is drawn.
func TestSetMembershipInvalidGeneratorsLength(t *testing.T) {
	set := []uint64{2, 3, 5, 6, 8, 20, 25}
	err := proveVerifySetMembership(t, 4, 20, set)
	if !errors.Is(err, r1cs.ErrInvalidGeneratorsLength) {
		t.Errorf("TestSetMembershipInvalidGeneratorsLength | expected ErrInvalidGeneratorsLength, got %v", err)
	}
}

func proveVerifySetNonMembership(
	t *testing.T,
	value uint64,
	set []uint64,
	corruptInverseIndex int,
) error {
	t.Helper()
	bpGens := generators.NewBulletproofGens(testGensCapacity)
	pcGens := generators.NewPedersenGens()
	v := ristretto.FromUint64(value)

	proverTr := transcript.New("gadgets-test-set-non-membership")
	prover := r1cs.NewProverCS(bpGens, pcGens, proverTr)

	_, vVar := prover.Commit(v, ristretto.RandomScalar())
	diffVars := make([]r1cs.Variable, len(set))
	diffInvVars := make([]r1cs.Variable, len(set))
	for i, elem := range set {
		diff := ristretto.FromUint64(elem).Sub(v)
		_, diffVars[i] = prover.Commit(diff, ristretto.RandomScalar())

		diffInv := diff.Inverse()
		if i == corruptInverseIndex {
			diffInv = ristretto.RandomScalar()
		}
		_, diffInvVars[i] = prover.Commit(diffInv, ristretto.RandomScalar())
	}
	if err := SetNonMembership(prover, vVar, diffVars, diffInvVars, set); err != nil {
		t.Fatalf("SetNonMembership (prover side): %v", err)
	}
	proof, err := r1cs.Prove(prover)
	if err != nil {
		return err
	}

	verifierTr := transcript.New("gadgets-test-set-non-membership")
	verifier, vars := r1cs.NewVerifierCS(bpGens, pcGens, verifierTr, prover.Commitments())
	vVerifier := vars[0]
	diffVarsVerifier := make([]r1cs.Variable, len(set))
	diffInvVarsVerifier := make([]r1cs.Variable, len(set))
	for i := range set {
		diffVarsVerifier[i] = vars[1+2*i]
		diffInvVarsVerifier[i] = vars[2+2*i]
	}
	if err := SetNonMembership(verifier, vVerifier, diffVarsVerifier, diffInvVarsVerifier, set); err != nil {
		t.Fatalf("SetNonMembership (verifier side): %v", err)
	}
	return verifier.Verify(proof)
}

// E3: v=19 is absent from the set and every difference is genuinely
// invertible; the proof must verify.
func TestSetNonMembershipAccepts(t *testing.T) {
	set := []uint64{5, 9, 32, 1, 85, 2, 7, 11, 14, 26}
	if err := proveVerifySetNonMembership(t, 19, set, -1); err != nil {
		t.Errorf("TestSetNonMembershipAccepts | expected acceptance, got %v", err)
	}
}

// E4: one committed "inverse" is actually an unrelated random scalar, so
// that difference's nonzero-ness is not established; verification must fail.
func TestSetNonMembershipRejectsForgedInverse(t *testing.T) {
	set := []uint64{5, 9, 32, 1, 85, 2, 7, 11, 14, 26}
	err := proveVerifySetNonMembership(t, 19, set, 3)
	if err == nil {
		t.Fatal("TestSetNonMembershipRejectsForgedInverse | expected rejection, got acceptance")
	}
	if !errors.Is(err, r1cs.ErrVerificationFailed) {
		t.Errorf("TestSetNonMembershipRejectsForgedInverse | expected ErrVerificationFailed, got %v", err)
	}
}

// E5: an empty constraint system with a single external Com(0) commitment
// verifies trivially; n=0 so the mega-check carries no G/H terms.
func TestEmptyConstraintSystemWithSingleCommitment(t *testing.T) {
	bpGens := generators.NewBulletproofGens(testGensCapacity)
	pcGens := generators.NewPedersenGens()

	proverTr := transcript.New("gadgets-test-empty-cs")
	prover := r1cs.NewProverCS(bpGens, pcGens, proverTr)
	prover.Commit(ristretto.Zero(), ristretto.RandomScalar())

	proof, err := r1cs.Prove(prover)
	if err != nil {
		t.Fatalf("TestEmptyConstraintSystemWithSingleCommitment | Prove: %v", err)
	}

	verifierTr := transcript.New("gadgets-test-empty-cs")
	verifier, _ := r1cs.NewVerifierCS(bpGens, pcGens, verifierTr, prover.Commitments())
	if err := verifier.Verify(proof); err != nil {
		t.Errorf("TestEmptyConstraintSystemWithSingleCommitment | expected acceptance, got %v", err)
	}
}

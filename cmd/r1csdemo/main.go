// Command r1csdemo proves and verifies a single set-membership statement
// end to end: that a committed value is one of a small fixed public set,
// without revealing which element it equals.
package main

import (
	"fmt"
	"os"

	"github.com/webb-tools/bulletproofs/gadgets"
	"github.com/webb-tools/bulletproofs/generators"
	"github.com/webb-tools/bulletproofs/r1cs"
	"github.com/webb-tools/bulletproofs/ristretto"
	"github.com/webb-tools/bulletproofs/transcript"
)

// gensCapacity must cover the padded-to-a-power-of-two multiplier count the
// statement allocates. The set-membership gadget over a 7-element set
// allocates 7 multiplier gates, padding to 8.
const gensCapacity = 128

// set is the fixed public statement: the committed value must equal one of
// these candidates.
var set = []uint64{2, 3, 5, 6, 8, 20, 25}

func main() {
	bpGens := generators.NewBulletproofGens(gensCapacity)
	pcGens := generators.NewPedersenGens()

	value := ristretto.FromUint64(20)

	proof, commitments, err := prove(bpGens, pcGens, value, set)
	if err != nil {
		fmt.Fprintf(os.Stderr, "proving failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("proof generated: %d bytes, %d IPP rounds\n", len(proof.Bytes()), len(proof.IPP.LVec))

	if err := verify(bpGens, pcGens, commitments, proof, set); err != nil {
		fmt.Fprintf(os.Stderr, "verification failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("verification succeeded: committed value is a member of the set")
}

func prove(
	bpGens generators.BulletproofGens,
	pcGens generators.PedersenGens,
	value ristretto.Scalar,
	set []uint64,
) (*r1cs.R1CSProof, []ristretto.Point, error) {
	tr := transcript.New("r1csdemo-set-membership")
	cs := r1cs.NewProverCS(bpGens, pcGens, tr)

	_, vVar := cs.Commit(value, ristretto.RandomScalar())

	diffVars := make([]r1cs.Variable, len(set))
	for i, elem := range set {
		diff := ristretto.FromUint64(elem).Sub(value)
		_, diffVars[i] = cs.Commit(diff, ristretto.RandomScalar())
	}

	if err := gadgets.SetMembership(cs, vVar, diffVars, set); err != nil {
		return nil, nil, err
	}

	proof, err := r1cs.Prove(cs)
	if err != nil {
		return nil, nil, err
	}
	return proof, cs.Commitments(), nil
}

func verify(
	bpGens generators.BulletproofGens,
	pcGens generators.PedersenGens,
	commitments []ristretto.Point,
	proof *r1cs.R1CSProof,
	set []uint64,
) error {
	tr := transcript.New("r1csdemo-set-membership")
	cs, vars := r1cs.NewVerifierCS(bpGens, pcGens, tr, commitments)

	vVar := vars[0]
	diffVars := vars[1:]

	if err := gadgets.SetMembership(cs, vVar, diffVars, set); err != nil {
		return err
	}

	return cs.Verify(proof)
}

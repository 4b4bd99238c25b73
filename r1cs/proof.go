package r1cs

import (
	"github.com/webb-tools/bulletproofs/ipp"
	"github.com/webb-tools/bulletproofs/ristretto"
)

// R1CSProof is the fixed record of commitments and scalars a prover
// produces and a verifier consumes. T_2 is deliberately absent: its
// contribution is reconstructed by the verifier from already-public
// quantities during the mega-check, so the prover never needs to commit to
// it.
type R1CSProof struct {
	AI ristretto.Point
	AO ristretto.Point
	S  ristretto.Point

	T1 ristretto.Point
	T3 ristretto.Point
	T4 ristretto.Point
	T5 ristretto.Point
	T6 ristretto.Point

	Tx         ristretto.Scalar
	TxBlinding ristretto.Scalar
	EBlinding  ristretto.Scalar

	IPP ipp.Proof
}

// checkStructure catches proof malformation before any cryptographic check
// runs, per the error taxonomy's FormatError.
func (p *R1CSProof) checkStructure() error {
	if len(p.IPP.LVec) != len(p.IPP.RVec) {
		return ErrFormatError
	}
	return nil
}

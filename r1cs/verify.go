package r1cs

import (
	"github.com/webb-tools/bulletproofs/ipp"
	"github.com/webb-tools/bulletproofs/ristretto"
)

// Verify consumes the VerifierCS and decides whether proof certifies that
// the committed witness satisfies every constraint assembled into cs. The
// transcript must be driven in exactly this order for the result to be
// meaningful: absorb A_I/A_O/S, draw y and z, absorb the T commitments,
// draw x, absorb the polynomial-evaluation scalars, draw w, flatten under
// z, consult the inner-product subverifier, then form and check the single
// mega-check multiscalar equation.
func (cs *VerifierCS) Verify(proof *R1CSProof) error {
	if err := proof.checkStructure(); err != nil {
		return err
	}

	cs.transcript.CommitPoint("A_I", proof.AI)
	cs.transcript.CommitPoint("A_O", proof.AO)
	cs.transcript.CommitPoint("S", proof.S)

	committed, err := cs.commit()
	if err != nil {
		return err
	}

	n := committed.cs.numVars
	m := len(committed.cs.v)
	nPrime := nextPowerOfTwo(n)

	if committed.cs.bpGens.Capacity() < nPrime {
		return ErrInvalidGeneratorsLength
	}

	y := cs.transcript.ChallengeScalar("y")
	z := cs.transcript.ChallengeScalar("z")

	cs.transcript.CommitPoint("T_1", proof.T1)
	cs.transcript.CommitPoint("T_3", proof.T3)
	cs.transcript.CommitPoint("T_4", proof.T4)
	cs.transcript.CommitPoint("T_5", proof.T5)
	cs.transcript.CommitPoint("T_6", proof.T6)

	x := cs.transcript.ChallengeScalar("x")

	cs.transcript.CommitScalar("t_x", proof.Tx)
	cs.transcript.CommitScalar("t_x_blinding", proof.TxBlinding)
	cs.transcript.CommitScalar("e_blinding", proof.EBlinding)

	w := cs.transcript.ChallengeScalar("w")

	wL, wR, wO, wV, wc := committed.flattenedConstraints(z)

	uSq, uInvSq, s, err := ipp.VerificationScalars(nPrime, cs.transcript, proof.IPP)
	if err != nil {
		return ErrVerificationFailed
	}

	rng := cs.transcript.BuildRng().Finalize()
	r := ristretto.RandomScalarFrom(rng)

	a := proof.IPP.A
	b := proof.IPP.B

	yInv := y.Inverse()
	yInvPow := powers(yInv, nPrime)

	// yneg_wR[i] = wR[i]*yInv[i] for i<n, 0 for the padded tail.
	ynegWR := make([]ristretto.Scalar, nPrime)
	for i := 0; i < n; i++ {
		ynegWR[i] = wR[i].Mul(yInvPow[i])
	}
	for i := n; i < nPrime; i++ {
		ynegWR[i] = ristretto.Zero()
	}

	delta := innerProduct(ynegWR[:n], wL)

	// g_scalar[i] = x*yneg_wR[i] - a*s[i]
	gScalars := make([]ristretto.Scalar, nPrime)
	for i := 0; i < nPrime; i++ {
		gScalars[i] = x.Mul(ynegWR[i]).Sub(a.Mul(s[i]))
	}

	// h_scalar[i] = yInv[i]*(x*wL'[i] + wO'[i] - b*s[n'-1-i]) - 1
	hScalars := make([]ristretto.Scalar, nPrime)
	one := ristretto.One()
	for i := 0; i < nPrime; i++ {
		var wLi, wOi ristretto.Scalar
		if i < n {
			wLi, wOi = wL[i], wO[i]
		} else {
			wLi, wOi = ristretto.Zero(), ristretto.Zero()
		}
		sInv := s[nPrime-1-i]
		hScalars[i] = yInvPow[i].Mul(x.Mul(wLi).Add(wOi).Sub(b.Mul(sInv))).Sub(one)
	}

	xx := x.Mul(x)
	xxx := xx.Mul(x)
	rxx := r.Mul(xx)

	tScalars := [5]ristretto.Scalar{
		r.Mul(x),
		rxx.Mul(x),
		rxx.Mul(xx),
		rxx.Mul(xxx),
		rxx.Mul(xx).Mul(xx),
	}
	tPoints := [5]ristretto.Point{proof.T1, proof.T3, proof.T4, proof.T5, proof.T6}

	bScalar := w.Mul(proof.Tx.Sub(a.Mul(b))).Add(r.Mul(xx.Mul(wc.Add(delta)).Sub(proof.Tx)))
	bBlindingScalar := proof.EBlinding.Negate().Sub(r.Mul(proof.TxBlinding))

	scalars := make([]ristretto.Scalar, 0, 3+m+5+2+2*nPrime+2*len(uSq))
	points := make([]ristretto.Point, 0, cap(scalars))

	scalars = append(scalars, x, xx, xxx)
	points = append(points, proof.AI, proof.AO, proof.S)

	for i := 0; i < m; i++ {
		scalars = append(scalars, rxx.Mul(wV[i]))
		points = append(points, committed.cs.v[i])
	}

	scalars = append(scalars, tScalars[:]...)
	points = append(points, tPoints[:]...)

	scalars = append(scalars, bScalar, bBlindingScalar)
	points = append(points, committed.cs.pcGens.B, committed.cs.pcGens.BBlinding)

	gens := committed.cs.bpGens
	scalars = append(scalars, gScalars...)
	points = append(points, gens.G(nPrime)...)
	scalars = append(scalars, hScalars...)
	points = append(points, gens.H(nPrime)...)

	scalars = append(scalars, uSq...)
	points = append(points, proof.IPP.LVec...)
	scalars = append(scalars, uInvSq...)
	points = append(points, proof.IPP.RVec...)

	megaCheck, err := ristretto.MultiScalarMul(scalars, points)
	if err != nil {
		return ErrVerificationFailed
	}

	if !megaCheck.IsIdentity() {
		return ErrVerificationFailed
	}
	return nil
}

func powers(base ristretto.Scalar, n int) []ristretto.Scalar {
	out := make([]ristretto.Scalar, n)
	if n == 0 {
		return out
	}
	out[0] = ristretto.One()
	for i := 1; i < n; i++ {
		out[i] = out[i-1].Mul(base)
	}
	return out
}

func innerProduct(a, b []ristretto.Scalar) ristretto.Scalar {
	acc := ristretto.Zero()
	for i := range a {
		acc = acc.Add(a[i].Mul(b[i]))
	}
	return acc
}

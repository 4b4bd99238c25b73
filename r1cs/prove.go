package r1cs

import (
	"github.com/webb-tools/bulletproofs/ipp"
	"github.com/webb-tools/bulletproofs/ristretto"
)

// Prove drains cs's registered callbacks, derives the same Fiat-Shamir
// challenges a verifier would, and constructs an R1CSProof certifying that
// the assignments fed into cs's multipliers satisfy every constraint
// assembled against it. The construction follows directly from the
// mega-check equation Verify checks: it builds the blinded l(x)/r(x)
// polynomial vectors, commits their coefficients, and opens the resulting
// inner product.
func Prove(cs *ProverCS) (*R1CSProof, error) {
	n := len(cs.aL)
	nPrime := nextPowerOfTwo(n)
	if cs.bpGens.Capacity() < nPrime {
		return nil, ErrInvalidGeneratorsLength
	}

	cs.transcript.R1CSDomainSep(uint64(len(cs.v)))
	for _, v := range cs.v {
		cs.transcript.CommitPoint("V", v)
	}

	iBlinding := randomScalar()
	oBlinding := randomScalar()
	sBlinding := randomScalar()
	sL := randomScalarVector(n)
	sR := randomScalarVector(n)

	gN := cs.bpGens.G(n)
	hN := cs.bpGens.H(n)

	AI := vectorCommit(cs.aL, gN).Add(vectorCommit(cs.aR, hN)).Add(cs.pcGens.BBlinding.Mul(iBlinding))
	AO := vectorCommit(cs.aO, gN).Add(cs.pcGens.BBlinding.Mul(oBlinding))
	S := vectorCommit(sL, gN).Add(vectorCommit(sR, hN)).Add(cs.pcGens.BBlinding.Mul(sBlinding))

	cs.transcript.CommitPoint("A_I", AI)
	cs.transcript.CommitPoint("A_O", AO)
	cs.transcript.CommitPoint("S", S)

	committed, err := cs.commit()
	if err != nil {
		return nil, err
	}

	y := cs.transcript.ChallengeScalar("y")
	z := cs.transcript.ChallengeScalar("z")

	wL, wR, wO, wV, _ := committed.flattenedConstraints(z)

	yInv := y.Inverse()
	yPow := powers(y, n)
	yInvPow := powers(yInv, n)

	// l1[i] = aL_i + yInv^i * wR_i, l2 = aO, l3 = sL (l0 is implicitly zero).
	l1 := make([]ristretto.Scalar, n)
	// r0[i] = wO_i - y^i, r1[i] = y^i*aR_i + wL_i, r3[i] = y^i*sR_i (r2 is zero).
	r0 := make([]ristretto.Scalar, n)
	r1 := make([]ristretto.Scalar, n)
	r3 := make([]ristretto.Scalar, n)
	for i := 0; i < n; i++ {
		l1[i] = cs.aL[i].Add(yInvPow[i].Mul(wR[i]))
		r0[i] = wO[i].Sub(yPow[i])
		r1[i] = yPow[i].Mul(cs.aR[i]).Add(wL[i])
		r3[i] = yPow[i].Mul(sR[i])
	}
	l2 := cs.aO
	l3 := sL

	lPoly := [4][]ristretto.Scalar{zeroVector(n), l1, l2, l3}
	rPoly := [4][]ristretto.Scalar{r0, r1, zeroVector(n), r3}

	var t [7]ristretto.Scalar
	for k := range t {
		t[k] = ristretto.Zero()
	}
	for p := 0; p < 4; p++ {
		for q := 0; q < 4; q++ {
			t[p+q] = t[p+q].Add(innerProduct(lPoly[p], rPoly[q]))
		}
	}

	tau1, tau3, tau4, tau5, tau6 := randomScalar(), randomScalar(), randomScalar(), randomScalar(), randomScalar()
	T1 := cs.pcGens.Commit(t[1], tau1)
	T3 := cs.pcGens.Commit(t[3], tau3)
	T4 := cs.pcGens.Commit(t[4], tau4)
	T5 := cs.pcGens.Commit(t[5], tau5)
	T6 := cs.pcGens.Commit(t[6], tau6)

	cs.transcript.CommitPoint("T_1", T1)
	cs.transcript.CommitPoint("T_3", T3)
	cs.transcript.CommitPoint("T_4", T4)
	cs.transcript.CommitPoint("T_5", T5)
	cs.transcript.CommitPoint("T_6", T6)

	x := cs.transcript.ChallengeScalar("x")
	xPow := powers(x, 7)
	xx := xPow[2]

	tx := ristretto.Zero()
	for k := 0; k < 7; k++ {
		tx = tx.Add(t[k].Mul(xPow[k]))
	}

	txBlinding := tau1.Mul(xPow[1]).
		Add(tau3.Mul(xPow[3])).
		Add(tau4.Mul(xPow[4])).
		Add(tau5.Mul(xPow[5])).
		Add(tau6.Mul(xPow[6])).
		Add(xx.Mul(innerProduct(wV, cs.vBlinding)))

	eBlinding := iBlinding.Mul(x).Add(oBlinding.Mul(xx)).Add(sBlinding.Mul(xPow[3]))

	cs.transcript.CommitScalar("t_x", tx)
	cs.transcript.CommitScalar("t_x_blinding", txBlinding)
	cs.transcript.CommitScalar("e_blinding", eBlinding)

	// The "w" challenge is only consumed by the verifier's mega-check, but
	// must still be drawn here so the transcript stays in lock-step for the
	// inner-product argument's own challenges that follow.
	_ = cs.transcript.ChallengeScalar("w")

	lx := make([]ristretto.Scalar, nPrime)
	rx := make([]ristretto.Scalar, nPrime)
	yPowFull := powers(y, nPrime)
	for i := 0; i < n; i++ {
		lx[i] = l1[i].Mul(x).Add(l2[i].Mul(xx)).Add(l3[i].Mul(xPow[3]))
		rx[i] = r0[i].Add(r1[i].Mul(x)).Add(r3[i].Mul(xPow[3]))
	}
	for i := n; i < nPrime; i++ {
		lx[i] = ristretto.Zero()
		rx[i] = yPowFull[i].Negate()
	}

	gPrime := cs.bpGens.G(nPrime)
	hRaw := cs.bpGens.H(nPrime)
	yInvPowFull := powers(yInv, nPrime)
	hPrime := make([]ristretto.Point, nPrime)
	for i := 0; i < nPrime; i++ {
		hPrime[i] = hRaw[i].Mul(yInvPowFull[i])
	}

	ipProof := ipp.Prove(cs.transcript, gPrime, hPrime, lx, rx)

	return &R1CSProof{
		AI: AI, AO: AO, S: S,
		T1: T1, T3: T3, T4: T4, T5: T5, T6: T6,
		Tx: tx, TxBlinding: txBlinding, EBlinding: eBlinding,
		IPP: ipProof,
	}, nil
}

func vectorCommit(scalars []ristretto.Scalar, points []ristretto.Point) ristretto.Point {
	p, _ := ristretto.MultiScalarMul(scalars, points)
	return p
}

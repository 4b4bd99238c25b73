// Package ipp implements the inner-product argument the R1CS verifier's
// mega-check consumes as a black box: a logarithmic-size proof that folds
// two vectors (a, b) against generator bases (G, H) down to two closing
// scalars a, b, producing the recursive L/R commitments from which a
// verifier re-derives folding challenges (u^2, u^-2) and a per-index scaling
// vector s.
//
// This argument only opens commitments over G and H; it has no extra
// product-binding generator, since the R1CS mega-check folds the a*b
// consistency check into its own w-weighted term instead of binding a
// product scalar to a third generator.
package ipp

import (
	"errors"

	"github.com/webb-tools/bulletproofs/ristretto"
	"github.com/webb-tools/bulletproofs/transcript"
)

// ErrMismatchedLength reports an inner-product proof whose L_vec and R_vec
// disagree in length, or whose round count does not match the claimed
// vector length n.
var ErrMismatchedLength = errors.New("ipp: L_vec/R_vec length mismatch")

// Proof is the closing state of the inner-product argument.
type Proof struct {
	LVec []ristretto.Point
	RVec []ristretto.Point
	A    ristretto.Scalar
	B    ristretto.Scalar
}

// Prove runs the recursive halving argument over a, b against bases g, h,
// committing each round's L/R pair to the transcript under labels "L"/"R"
// and drawing a folding challenge "u". len(a), len(b), len(g), len(h) must
// all be equal and a power of two (or zero).
func Prove(tr *transcript.Transcript, g, h []ristretto.Point, a, b []ristretto.Scalar) Proof {
	n := len(a)
	if n == 0 {
		return Proof{A: ristretto.Zero(), B: ristretto.Zero()}
	}
	if n == 1 {
		return Proof{A: a[0], B: b[0]}
	}

	nPrime := n / 2

	L, _ := ristretto.MultiScalarMul(
		concatScalars(a[:nPrime], b[nPrime:]),
		concatPoints(g[nPrime:], h[:nPrime]),
	)
	R, _ := ristretto.MultiScalarMul(
		concatScalars(a[nPrime:], b[:nPrime]),
		concatPoints(g[:nPrime], h[nPrime:]),
	)

	tr.CommitPoint("L", L)
	tr.CommitPoint("R", R)
	u := tr.ChallengeScalar("u")
	uInv := u.Inverse()

	gPrime := make([]ristretto.Point, nPrime)
	hPrime := make([]ristretto.Point, nPrime)
	aPrime := make([]ristretto.Scalar, nPrime)
	bPrime := make([]ristretto.Scalar, nPrime)
	for i := 0; i < nPrime; i++ {
		gPrime[i] = g[i].Mul(uInv).Add(g[nPrime+i].Mul(u))
		hPrime[i] = h[i].Mul(u).Add(h[nPrime+i].Mul(uInv))
		aPrime[i] = a[i].Mul(u).Add(a[nPrime+i].Mul(uInv))
		bPrime[i] = b[i].Mul(uInv).Add(b[nPrime+i].Mul(u))
	}

	rest := Prove(tr, gPrime, hPrime, aPrime, bPrime)
	return Proof{
		LVec: append([]ristretto.Point{L}, rest.LVec...),
		RVec: append([]ristretto.Point{R}, rest.RVec...),
		A:    rest.A,
		B:    rest.B,
	}
}

// VerificationScalars replays the transcript's folding challenges from the
// proof's L/R commitments and returns (u^2, u^-2, s): the squared
// challenges, their inverses, and the per-generator-index scaling vector s
// the mega-check's g_scalar/h_scalar terms consume. n is the claimed padded
// vector length; it must equal 2^len(proof.LVec), or be zero for a proof
// with no rounds.
func VerificationScalars(n int, tr *transcript.Transcript, proof Proof) (uSq, uInvSq, s []ristretto.Scalar, err error) {
	if len(proof.LVec) != len(proof.RVec) {
		return nil, nil, nil, ErrMismatchedLength
	}
	if n == 0 {
		if len(proof.LVec) != 0 {
			return nil, nil, nil, ErrMismatchedLength
		}
		return nil, nil, nil, nil
	}

	lgN := len(proof.LVec)
	if (1 << uint(lgN)) != n {
		return nil, nil, nil, ErrMismatchedLength
	}

	challenges := make([]ristretto.Scalar, lgN)
	for i := 0; i < lgN; i++ {
		tr.CommitPoint("L", proof.LVec[i])
		tr.CommitPoint("R", proof.RVec[i])
		challenges[i] = tr.ChallengeScalar("u")
	}

	challengesInv := make([]ristretto.Scalar, lgN)
	allInv := ristretto.One()
	for i, ch := range challenges {
		challengesInv[i] = ch.Inverse()
		allInv = allInv.Mul(challengesInv[i])
	}

	uSq = make([]ristretto.Scalar, lgN)
	uInvSq = make([]ristretto.Scalar, lgN)
	for i := 0; i < lgN; i++ {
		uSq[i] = challenges[i].Mul(challenges[i])
		uInvSq[i] = challengesInv[i].Mul(challengesInv[i])
	}

	s = make([]ristretto.Scalar, n)
	s[0] = allInv
	for i := 1; i < n; i++ {
		lgI := bitLength(i) - 1
		k := 1 << uint(lgI)
		uLgISq := uSq[(lgN-1)-lgI]
		s[i] = s[i-k].Mul(uLgISq)
	}

	return uSq, uInvSq, s, nil
}

func bitLength(x int) int {
	n := 0
	for x > 0 {
		n++
		x >>= 1
	}
	return n
}

func concatScalars(a, b []ristretto.Scalar) []ristretto.Scalar {
	out := make([]ristretto.Scalar, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

func concatPoints(a, b []ristretto.Point) []ristretto.Point {
	out := make([]ristretto.Point, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

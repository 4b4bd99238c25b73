package r1cs

import "github.com/webb-tools/bulletproofs/ristretto"

// flattenedConstraints folds the constraint list into weight vectors under
// challenge z, exactly per spec: walking constraints in insertion order,
// maintaining exp_z = z and multiplying it by z after each constraint, each
// term contributes expZ*coeff to the weight vector selected by its variable
// kind.
func (c *CommittedVerifierCS) flattenedConstraints(z ristretto.Scalar) (wL, wR, wO, wV []ristretto.Scalar, wc ristretto.Scalar) {
	n := c.cs.numVars
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

func zeroVector(n int) []ristretto.Scalar {
	v := make([]ristretto.Scalar, n)
	for i := range v {
		v[i] = ristretto.Zero()
	}
	return v
}

// nextPowerOfTwo returns the smallest power of two >= n, with the
// convention that nextPowerOfTwo(0) == 0 (an empty constraint system pads to
// nothing).
func nextPowerOfTwo(n int) int {
	if n == 0 {
		return 0
	}
	k := 1
	for k < n {
		k <<= 1
	}
	return k
}

package ristretto

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/cloudflare/circl/group"
)

// Point is a Ristretto255 group element.
type Point struct {
	val group.Element
}

func newPoint() Point {
	return Point{val: group.Ristretto255.NewElement()}
}

// Identity returns the group identity element.
func Identity() Point {
	return Point{val: group.Ristretto255.Identity()}
}

// Generator returns the canonical base point (dalek's RISTRETTO_BASEPOINT).
func Generator() Point {
	return Point{val: group.Ristretto255.Generator()}
}

// RandomPoint samples a uniform group element using crypto/rand.
func RandomPoint() Point {
	return Point{val: group.Ristretto255.RandomElement(rand.Reader)}
}

// HashToPoint maps an arbitrary label to a group element deterministically,
// letting generators.BulletproofGens derive its G_i/H_i basis from labels
// instead of from randomness, so no basis ever needs to be exchanged out of
// band.
func HashToPoint(label string) Point {
	return Point{val: group.Ristretto255.HashToElement([]byte(label), []byte("bulletproofs-r1cs-generator"))}
}

// Add returns a+b.
func (a Point) Add(b Point) Point {
	p := newPoint()
	p.val.Add(a.val, b.val)
	return p
}

// Sub returns a-b.
func (a Point) Sub(b Point) Point {
	p := newPoint()
	neg := newPoint()
	neg.val.Neg(b.val)
	p.val.Add(a.val, neg.val)
	return p
}

// Negate returns -a.
func (a Point) Negate() Point {
	p := newPoint()
	p.val.Neg(a.val)
	return p
}

// Mul returns s*a.
func (a Point) Mul(s Scalar) Point {
	p := newPoint()
	p.val.Mul(a.val, s.val)
	return p
}

// MulGen returns s*Generator(), computed via the base-point optimized path.
func MulGen(s Scalar) Point {
	p := newPoint()
	p.val.MulGen(s.val)
	return p
}

// Equal reports whether a and b encode the same group element.
func (a Point) Equal(b Point) bool {
	return a.val.IsEqual(b.val)
}

// IsIdentity reports whether a is the group identity.
func (a Point) IsIdentity() bool {
	return a.val.IsIdentity()
}

// Bytes returns the canonical compressed encoding of the point.
func (a Point) Bytes() []byte {
	b, _ := a.val.MarshalBinary()
	return b
}

// PointFromBytes decodes a compressed point, reporting a FormatError-worthy
// failure (the caller in r1cs wraps this into the error taxonomy) on
// malformed or non-canonical encodings.
func PointFromBytes(b []byte) (Point, error) {
	p := newPoint()
	if err := p.val.UnmarshalBinary(b); err != nil {
		return Point{}, fmt.Errorf("ristretto: invalid point encoding: %w", err)
	}
	return p, nil
}

// MarshalJSON encodes the point as its canonical compressed bytes, base64'd
// by the standard []byte encoding: every group element gets its own JSON
// encoding rather than one derived structurally from the curve library.
func (a Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Bytes())
}

// UnmarshalJSON decodes a point previously encoded by MarshalJSON.
func (a *Point) UnmarshalJSON(b []byte) error {
	var raw []byte
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	p, err := PointFromBytes(raw)
	if err != nil {
		return err
	}
	*a = p
	return nil
}

// MultiScalarMul computes sum(scalars[i]*points[i]). circl's public Group
// interface does not expose a batched multi-scalar-multiplication helper (only
// per-point Mul), so this is a plain accumulation loop rather than a
// Pippenger-style optimization; the mega-check in r1cs.Verify is the only
// variable-time caller and is not on a hot path for this verifier core.
func MultiScalarMul(scalars []Scalar, points []Point) (Point, error) {
	if len(scalars) != len(points) {
		return Point{}, fmt.Errorf("ristretto: mismatched operand lengths %d vs %d", len(scalars), len(points))
	}
	acc := Identity()
	for i := range scalars {
		acc = acc.Add(points[i].Mul(scalars[i]))
	}
	return acc, nil
}

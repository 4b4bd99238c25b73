// Package ristretto wraps the Ristretto255 group (github.com/cloudflare/circl/group)
// into the two concrete types the R1CS verifier core needs: Scalar and Point.
//
// The field-element side and the curve-point side are kept as separate
// types rather than a single Element interface, since the verifier core
// treats scalars and points as distinct data with distinct operations.
package ristretto

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/cloudflare/circl/group"
)

// Scalar is an element of the Ristretto255 scalar field.
type Scalar struct {
	val group.Scalar
}

func newScalar() Scalar {
	return Scalar{val: group.Ristretto255.NewScalar()}
}

// Zero returns the additive identity.
func Zero() Scalar { return newScalar() }

// One returns the multiplicative identity.
func One() Scalar {
	s := newScalar()
	s.val.SetUint64(1)
	return s
}

// FromUint64 builds a scalar from a small unsigned integer.
func FromUint64(v uint64) Scalar {
	s := newScalar()
	s.val.SetUint64(v)
	return s
}

// RandomScalar samples a uniform scalar using crypto/rand.
func RandomScalar() Scalar {
	return RandomScalarFrom(rand.Reader)
}

// RandomScalarFrom samples a uniform scalar from the given entropy source,
// used with the reader a transcript.RngBuilder finalizes into to draw
// transcript-bound randomizers.
func RandomScalarFrom(r io.Reader) Scalar {
	s := newScalar()
	s.val.Random(r)
	return s
}

// Add returns a+b.
func (a Scalar) Add(b Scalar) Scalar {
	s := newScalar()
	s.val.Add(a.val, b.val)
	return s
}

// Sub returns a-b.
func (a Scalar) Sub(b Scalar) Scalar {
	s := newScalar()
	s.val.Sub(a.val, b.val)
	return s
}

// Mul returns a*b.
func (a Scalar) Mul(b Scalar) Scalar {
	s := newScalar()
	s.val.Mul(a.val, b.val)
	return s
}

// Negate returns -a.
func (a Scalar) Negate() Scalar {
	s := newScalar()
	s.val.Neg(a.val)
	return s
}

// Inverse returns a^-1. Panics if a is zero, matching the invariant that
// callers (the IPP challenge combinatorics) never invert a zero challenge.
func (a Scalar) Inverse() Scalar {
	s := newScalar()
	s.val.Inv(a.val)
	return s
}

// Pow returns a^n for a non-negative exponent, computed by
// square-and-multiply.
func (a Scalar) Pow(n uint) Scalar {
	result := One()
	base := a
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return result
}

// IsZero reports whether the scalar is the additive identity.
func (a Scalar) IsZero() bool {
	return a.val.IsZero()
}

// Equal reports whether a and b represent the same field element.
func (a Scalar) Equal(b Scalar) bool {
	return a.val.IsEqual(b.val)
}

// Bytes returns the canonical little-endian encoding of the scalar.
func (a Scalar) Bytes() []byte {
	b, _ := a.val.MarshalBinary()
	return b
}

// ScalarFromBytes decodes a canonical scalar encoding, matching r255Point.SetBytes'
// pattern of delegating straight to the circl UnmarshalBinary.
func ScalarFromBytes(b []byte) (Scalar, error) {
	s := newScalar()
	if err := s.val.UnmarshalBinary(b); err != nil {
		return Scalar{}, fmt.Errorf("ristretto: invalid scalar encoding: %w", err)
	}
	return s, nil
}

// ScalarFromBigInt reduces an arbitrary-precision integer modulo the scalar
// field order, used by the transcript package to turn wide hash output into
// a challenge scalar (the same r255Point.Scale/BaseScale pattern of feeding a
// *big.Int straight into group.Scalar.SetBigInt).
func ScalarFromBigInt(x *big.Int) Scalar {
	s := newScalar()
	s.val.SetBigInt(x)
	return s
}

// MarshalJSON encodes the scalar as its canonical little-endian bytes,
// base64'd by the standard []byte encoding.
func (a Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Bytes())
}

// UnmarshalJSON decodes a scalar previously encoded by MarshalJSON.
func (a *Scalar) UnmarshalJSON(b []byte) error {
	var raw []byte
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	s, err := ScalarFromBytes(raw)
	if err != nil {
		return err
	}
	*a = s
	return nil
}

// GroupOrder returns the order of the Ristretto255 scalar field.
func GroupOrder() *big.Int {
	return group.Ristretto255.Order()
}

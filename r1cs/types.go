// Package r1cs implements the verifier (and, for round-trip testing, the
// prover) side of an R1CS Bulletproofs constraint system over Ristretto255:
// the constraint accumulator, the two-phase commitment protocol, constraint
// flattening under a verifier challenge, and the single mega-check
// multiscalar equation that decides acceptance.
package r1cs

import "github.com/webb-tools/bulletproofs/ristretto"

// VariableKind distinguishes the five wire kinds a VariableIndex can name.
type VariableKind int

const (
	// KindOne is the constant-one wire.
	KindOne VariableKind = iota
	// KindCommitted is an external, Pedersen-committed input.
	KindCommitted
	// KindMultiplierLeft is the L wire of a multiplication gate.
	KindMultiplierLeft
	// KindMultiplierRight is the R wire of a multiplication gate.
	KindMultiplierRight
	// KindMultiplierOutput is the O wire of a multiplication gate.
	KindMultiplierOutput
)

// VariableIndex tags a wire in the constraint system. Index is meaningless
// for KindOne.
type VariableIndex struct {
	Kind  VariableKind
	Index int
}

// One is the constant-one wire shared by every constraint system.
var One = VariableIndex{Kind: KindOne}

// Committed names the i-th external input.
func Committed(i int) VariableIndex { return VariableIndex{Kind: KindCommitted, Index: i} }

// MultiplierLeft names the L wire of the i-th multiplication gate.
func MultiplierLeft(i int) VariableIndex { return VariableIndex{Kind: KindMultiplierLeft, Index: i} }

// MultiplierRight names the R wire of the i-th multiplication gate.
func MultiplierRight(i int) VariableIndex { return VariableIndex{Kind: KindMultiplierRight, Index: i} }

// MultiplierOutput names the O wire of the i-th multiplication gate.
func MultiplierOutput(i int) VariableIndex {
	return VariableIndex{Kind: KindMultiplierOutput, Index: i}
}

// Assignment is either a concrete scalar (prover side) or missing (verifier
// side). Gadget code is written once against Assignment and is oblivious to
// which side it runs on.
type Assignment struct {
	value   ristretto.Scalar
	present bool
}

// Known wraps a concrete value, as the prover side supplies.
func Known(v ristretto.Scalar) Assignment { return Assignment{value: v, present: true} }

// Missing is the verifier side's constant assignment: every wire value is
// unknown to the verifier.
func Missing() Assignment { return Assignment{} }

// Get reports the concrete value and whether one is present.
func (a Assignment) Get() (ristretto.Scalar, bool) { return a.value, a.present }

// Add lifts scalar addition through missingness: missing + anything = missing.
func (a Assignment) Add(b Assignment) Assignment {
	if !a.present || !b.present {
		return Missing()
	}
	return Known(a.value.Add(b.value))
}

// Mul lifts scalar multiplication through missingness.
func (a Assignment) Mul(b Assignment) Assignment {
	if !a.present || !b.present {
		return Missing()
	}
	return Known(a.value.Mul(b.value))
}

// Variable pairs a wire index with its (possibly missing) assignment,
// exactly as the CS-assembly API returns to gadget code.
type Variable struct {
	Index      VariableIndex
	Assignment Assignment
}

// OpaqueScalar wraps a Scalar with no equality, ordering, or extraction
// exposed to gadget code, so a gadget cannot branch on a Fiat-Shamir
// challenge (which would break zero-knowledge). Arithmetic is still
// available; only this package's internal code (flattening, the prover's
// polynomial construction) ever reaches into the wrapped value.
type OpaqueScalar struct {
	inner ristretto.Scalar
}

// NewOpaqueScalar wraps a concrete scalar, used by the CS engine to hand a
// Fiat-Shamir challenge to a gadget and by gadgets to turn a public constant
// into a coefficient.
func NewOpaqueScalar(s ristretto.Scalar) OpaqueScalar { return OpaqueScalar{inner: s} }

// OpaqueFromUint64 wraps a small public constant as an opaque coefficient.
func OpaqueFromUint64(v uint64) OpaqueScalar { return OpaqueScalar{inner: ristretto.FromUint64(v)} }

func (o OpaqueScalar) internal() ristretto.Scalar { return o.inner }

// Add returns o+b.
func (o OpaqueScalar) Add(b OpaqueScalar) OpaqueScalar { return OpaqueScalar{o.inner.Add(b.inner)} }

// Sub returns o-b.
func (o OpaqueScalar) Sub(b OpaqueScalar) OpaqueScalar { return OpaqueScalar{o.inner.Sub(b.inner)} }

// Mul returns o*b.
func (o OpaqueScalar) Mul(b OpaqueScalar) OpaqueScalar { return OpaqueScalar{o.inner.Mul(b.inner)} }

// Negate returns -o.
func (o OpaqueScalar) Negate() OpaqueScalar { return OpaqueScalar{o.inner.Negate()} }

// term is one (index, coefficient) pair of a LinearCombination.
type term struct {
	Index VariableIndex
	Coeff OpaqueScalar
}

// LinearCombination is an ordered sequence of (VariableIndex, OpaqueScalar)
// terms. Duplicates with identical indices are allowed and only accumulate
// additively at flattening time.
type LinearCombination struct {
	terms []term
}

// Term builds a single-term linear combination idx*coeff.
func Term(idx VariableIndex, coeff OpaqueScalar) LinearCombination {
	return LinearCombination{terms: []term{{idx, coeff}}}
}

// FromVariable builds the linear combination that is just the variable
// itself (coefficient one).
func FromVariable(v Variable) LinearCombination {
	return Term(v.Index, OpaqueFromUint64(1))
}

// FromConstant builds the linear combination equal to the public constant c
// (c times the One wire).
func FromConstant(c OpaqueScalar) LinearCombination {
	return Term(One, c)
}

// Add concatenates the terms of two linear combinations.
func (lc LinearCombination) Add(other LinearCombination) LinearCombination {
	out := make([]term, 0, len(lc.terms)+len(other.terms))
	out = append(out, lc.terms...)
	out = append(out, other.terms...)
	return LinearCombination{terms: out}
}

// Sub appends other's terms with negated coefficients.
func (lc LinearCombination) Sub(other LinearCombination) LinearCombination {
	out := make([]term, 0, len(lc.terms)+len(other.terms))
	out = append(out, lc.terms...)
	for _, t := range other.terms {
		out = append(out, term{Index: t.Index, Coeff: t.Coeff.Negate()})
	}
	return LinearCombination{terms: out}
}

// Scale distributes scalar multiplication over every term.
func (lc LinearCombination) Scale(s OpaqueScalar) LinearCombination {
	out := make([]term, len(lc.terms))
	for i, t := range lc.terms {
		out[i] = term{Index: t.Index, Coeff: t.Coeff.Mul(s)}
	}
	return LinearCombination{terms: out}
}

// Constraint asserts a LinearCombination equals zero.
type Constraint struct {
	LC LinearCombination
}

// Constrain builds the constraint lc == 0.
func Constrain(lc LinearCombination) Constraint { return Constraint{LC: lc} }

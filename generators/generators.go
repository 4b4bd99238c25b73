// Package generators builds the two generator families the verifier core
// treats as a pure collaborator: PedersenGens, the single pair of base
// points backing all blinded value commitments, and BulletproofGens, the
// per-index G/H basis the mega-check multiplies against. Both are derived
// once via hash-to-curve over fixed seed strings so prover and verifier
// always agree on the same basis without ever exchanging it.
package generators

import (
	"fmt"

	"github.com/webb-tools/bulletproofs/ristretto"
)

// PedersenGens holds the two base points used for every value/blinding
// commitment in the protocol.
type PedersenGens struct {
	B         ristretto.Point
	BBlinding ristretto.Point
}

// NewPedersenGens derives the canonical Pedersen base points deterministically
// from fixed domain-separated labels, which avoids ever needing to transmit
// the generators out of band.
func NewPedersenGens() PedersenGens {
	return PedersenGens{
		B:         ristretto.HashToPoint("bulletproofs/pedersen/B"),
		BBlinding: ristretto.HashToPoint("bulletproofs/pedersen/B_blinding"),
	}
}

// Commit returns value*B + blinding*B_blinding.
func (g PedersenGens) Commit(value, blinding ristretto.Scalar) ristretto.Point {
	return g.B.Mul(value).Add(g.BBlinding.Mul(blinding))
}

// BulletproofGens is the ordered G_0..G_{cap-1}, H_0..H_{cap-1} basis the
// mega-check and the inner-product argument multiply against. Only a single
// party's share is modeled; no party-aggregation bookkeeping is needed.
type BulletproofGens struct {
	gensCapacity int
	g            []ristretto.Point
	h            []ristretto.Point
}

// NewBulletproofGens derives `capacity` G/H generator pairs, deterministically,
// via hash-to-curve over indexed labels.
func NewBulletproofGens(capacity int) BulletproofGens {
	bg := BulletproofGens{
		gensCapacity: capacity,
		g:            make([]ristretto.Point, capacity),
		h:            make([]ristretto.Point, capacity),
	}
	for i := 0; i < capacity; i++ {
		bg.g[i] = ristretto.HashToPoint(fmt.Sprintf("bulletproofs/gens/G/%d", i))
		bg.h[i] = ristretto.HashToPoint(fmt.Sprintf("bulletproofs/gens/H/%d", i))
	}
	return bg
}

// Capacity reports how many generator pairs are available.
func (bg BulletproofGens) Capacity() int {
	return bg.gensCapacity
}

// G returns the first n left-hand generators.
func (bg BulletproofGens) G(n int) []ristretto.Point {
	return bg.g[:n]
}

// H returns the first n right-hand generators.
func (bg BulletproofGens) H(n int) []ristretto.Point {
	return bg.h[:n]
}

// Package transcript implements the Fiat-Shamir transcript adapter the R1CS
// verifier drives: domain separation, labeled point/scalar commitments, and
// labeled challenge scalars, plus a transcript-bound randomness source from
// which the verifier draws the mega-check's randomization scalar r.
//
// A multi-round, multi-component protocol like R1CS needs several distinct
// challenges (y, z, x, w, per-round inner-product challenges) each bound to
// everything committed so far under its own domain label, so a single
// unlabeled digest of the public points is not strong enough. This is
// implemented with golang.org/x/crypto/sha3's SHAKE256 as an append-only
// sponge, playing the role a STROBE-based transcript plays in Bulletproofs
// implementations generally.
package transcript

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"math/big"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/sha3"

	"github.com/webb-tools/bulletproofs/ristretto"
)

// Transcript accumulates a Fiat-Shamir transcript.
type Transcript struct {
	state sha3.ShakeHash
}

// New starts a fresh transcript under a top-level protocol label, playing
// the role merlin::Transcript::new(label) plays in other Bulletproofs
// implementations.
func New(label string) *Transcript {
	t := &Transcript{state: sha3.NewShake256()}
	t.appendMessage("dom-sep", []byte(label))
	return t
}

func (t *Transcript) appendMessage(label string, data []byte) {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(label)))
	_, _ = t.state.Write(lenBuf[:])
	_, _ = t.state.Write([]byte(label))
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(data)))
	_, _ = t.state.Write(lenBuf[:])
	_, _ = t.state.Write(data)
}

// R1CSDomainSep commits the number of external (Pedersen-committed) inputs
// bound into the constraint system.
func (t *Transcript) R1CSDomainSep(numCommitments uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], numCommitments)
	t.appendMessage("dom-sep", buf[:])
}

// CommitPoint absorbs a labeled group element.
func (t *Transcript) CommitPoint(label string, p ristretto.Point) {
	t.appendMessage(label, p.Bytes())
}

// CommitScalar absorbs a labeled field element.
func (t *Transcript) CommitScalar(label string, s ristretto.Scalar) {
	t.appendMessage(label, s.Bytes())
}

// ChallengeScalar squeezes a labeled challenge out of the transcript. Per
// merlin/strobe discipline, squeezing does not disturb subsequent commits:
// the challenge is derived from a clone of the running sponge so the
// original continues accumulating untouched.
func (t *Transcript) ChallengeScalar(label string) ristretto.Scalar {
	t.appendMessage(label, nil)

	clone := t.state.Clone()
	wide := make([]byte, 64)
	if _, err := io.ReadFull(clone, wide); err != nil {
		panic("transcript: shake squeeze failed: " + err.Error())
	}

	x := new(big.Int).SetBytes(wide)
	x.Mod(x, ristretto.GroupOrder())
	return ristretto.ScalarFromBigInt(x)
}

// RngBuilder accumulates witness-derived entropy before finalizing into a
// transcript-bound random source: the transcript binds the RNG to
// everything proven so far, while the caller still blends in fresh OS
// entropy so a deterministic transcript alone can never force a
// predictable randomizer.
type RngBuilder struct {
	state sha3.ShakeHash
}

// BuildRng starts an RngBuilder seeded from the transcript's current state.
func (t *Transcript) BuildRng() *RngBuilder {
	return &RngBuilder{state: t.state.Clone()}
}

// RekeyWithWitnessBytes folds in prover-only secret material (e.g. blinding
// factors) so the derived RNG also depends on secrets the verifier never
// sees.
func (b *RngBuilder) RekeyWithWitnessBytes(label string, data []byte) *RngBuilder {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(label)))
	_, _ = b.state.Write(lenBuf[:])
	_, _ = b.state.Write([]byte(label))
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(data)))
	_, _ = b.state.Write(lenBuf[:])
	_, _ = b.state.Write(data)
	return b
}

// Finalize mixes in fresh OS randomness and keys a ChaCha20 stream cipher
// from the result, returning its keystream as an io.Reader suitable for
// ristretto.RandomScalarFrom. The sponge state itself stays internal (its
// width doesn't match ristretto's sampling granularity cleanly); ChaCha20 is
// the ecosystem's standard building block for exactly this
// "key once, stream indefinitely" RNG shape. The nonce is fixed at zero:
// every Finalize call derives a fresh, effectively-unique 32-byte key from
// the transcript history plus fresh OS entropy, so key reuse across two
// Finalize calls is not a practical concern.
func (b *RngBuilder) Finalize() io.Reader {
	var osEntropy [32]byte
	if _, err := rand.Read(osEntropy[:]); err != nil {
		panic("transcript: reading OS entropy failed: " + err.Error())
	}
	_, _ = b.state.Write(osEntropy[:])

	var key [chacha20.KeySize]byte
	if _, err := io.ReadFull(b.state, key[:]); err != nil {
		panic("transcript: shake squeeze failed: " + err.Error())
	}

	var nonce [chacha20.NonceSize]byte
	cipher, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		panic("transcript: chacha20 keying failed: " + err.Error())
	}
	return &chachaKeystream{cipher: cipher}
}

// chachaKeystream adapts a keyed ChaCha20 cipher into an io.Reader that
// yields raw keystream bytes, by encrypting an all-zero plaintext.
type chachaKeystream struct {
	cipher *chacha20.Cipher
}

func (r *chachaKeystream) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}

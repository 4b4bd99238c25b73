package r1cs

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/webb-tools/bulletproofs/ipp"
	"github.com/webb-tools/bulletproofs/ristretto"
)

// ipProofJSON stages ipp.Proof's fields as json.RawMessage: every group
// element or scalar gets its own encoding instead of one derived
// structurally, so a malformed sub-field fails independently of its
// neighbours.
type ipProofJSON struct {
	LVec []json.RawMessage
	RVec []json.RawMessage
	A    json.RawMessage
	B    json.RawMessage
}

// r1csProofJSON stages R1CSProof the same way, field by field.
type r1csProofJSON struct {
	AI json.RawMessage
	AO json.RawMessage
	S  json.RawMessage

	T1 json.RawMessage
	T3 json.RawMessage
	T4 json.RawMessage
	T5 json.RawMessage
	T6 json.RawMessage

	Tx         json.RawMessage
	TxBlinding json.RawMessage
	EBlinding  json.RawMessage

	IPP ipProofJSON
}

// MarshalJSON encodes the proof with every Point/Scalar field using its own
// canonical encoding (see ristretto.Point.MarshalJSON / Scalar.MarshalJSON).
func (p *R1CSProof) MarshalJSON() ([]byte, error) {
	lVec := make([]json.RawMessage, len(p.IPP.LVec))
	rVec := make([]json.RawMessage, len(p.IPP.RVec))
	for i := range p.IPP.LVec {
		b, err := p.IPP.LVec[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		lVec[i] = b
	}
	for i := range p.IPP.RVec {
		b, err := p.IPP.RVec[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		rVec[i] = b
	}

	marshal := func(m json.Marshaler) json.RawMessage {
		b, _ := m.MarshalJSON()
		return b
	}

	return json.Marshal(r1csProofJSON{
		AI: marshal(p.AI), AO: marshal(p.AO), S: marshal(p.S),
		T1: marshal(p.T1), T3: marshal(p.T3), T4: marshal(p.T4), T5: marshal(p.T5), T6: marshal(p.T6),
		Tx: marshal(p.Tx), TxBlinding: marshal(p.TxBlinding), EBlinding: marshal(p.EBlinding),
		IPP: ipProofJSON{LVec: lVec, RVec: rVec, A: marshal(p.IPP.A), B: marshal(p.IPP.B)},
	})
}

// UnmarshalJSON decodes a proof previously encoded by MarshalJSON. A
// malformed field is reported as ErrFormatError, per the error taxonomy:
// structural decoding problems never masquerade as VerificationError.
func (p *R1CSProof) UnmarshalJSON(b []byte) error {
	var tmp r1csProofJSON
	if err := json.Unmarshal(b, &tmp); err != nil {
		return fmt.Errorf("%w: %v", ErrFormatError, err)
	}

	points := []struct {
		dst *ristretto.Point
		src json.RawMessage
	}{
		{&p.AI, tmp.AI}, {&p.AO, tmp.AO}, {&p.S, tmp.S},
		{&p.T1, tmp.T1}, {&p.T3, tmp.T3}, {&p.T4, tmp.T4}, {&p.T5, tmp.T5}, {&p.T6, tmp.T6},
	}
	for _, pt := range points {
		if err := pt.dst.UnmarshalJSON(pt.src); err != nil {
			return fmt.Errorf("%w: %v", ErrFormatError, err)
		}
	}

	scalars := []struct {
		dst *ristretto.Scalar
		src json.RawMessage
	}{
		{&p.Tx, tmp.Tx}, {&p.TxBlinding, tmp.TxBlinding}, {&p.EBlinding, tmp.EBlinding},
	}
	for _, sc := range scalars {
		if err := sc.dst.UnmarshalJSON(sc.src); err != nil {
			return fmt.Errorf("%w: %v", ErrFormatError, err)
		}
	}

	if len(tmp.IPP.LVec) != len(tmp.IPP.RVec) {
		return ErrFormatError
	}
	lVec := make([]ristretto.Point, len(tmp.IPP.LVec))
	rVec := make([]ristretto.Point, len(tmp.IPP.RVec))
	for i := range tmp.IPP.LVec {
		if err := lVec[i].UnmarshalJSON(tmp.IPP.LVec[i]); err != nil {
			return fmt.Errorf("%w: %v", ErrFormatError, err)
		}
		if err := rVec[i].UnmarshalJSON(tmp.IPP.RVec[i]); err != nil {
			return fmt.Errorf("%w: %v", ErrFormatError, err)
		}
	}
	var a, bS ristretto.Scalar
	if err := a.UnmarshalJSON(tmp.IPP.A); err != nil {
		return fmt.Errorf("%w: %v", ErrFormatError, err)
	}
	if err := bS.UnmarshalJSON(tmp.IPP.B); err != nil {
		return fmt.Errorf("%w: %v", ErrFormatError, err)
	}
	p.IPP = ipp.Proof{LVec: lVec, RVec: rVec, A: a, B: bS}

	return nil
}

// Bytes encodes the proof using a canonical layout: field order preserved,
// 32-byte little-endian scalars, 32-byte compressed points. The
// variable-length L/R vectors follow a single little-endian uint32 round
// count and are written as interleaved L_i, R_i pairs, one pair per round,
// before the closing scalars a and b.
func (p *R1CSProof) Bytes() []byte {
	out := make([]byte, 0, 11*32+8+len(p.IPP.LVec)*64)
	points := []ristretto.Point{p.AI, p.AO, p.S, p.T1, p.T3, p.T4, p.T5, p.T6}
	for _, pt := range points {
		out = append(out, pt.Bytes()...)
	}
	scalars := []ristretto.Scalar{p.Tx, p.TxBlinding, p.EBlinding}
	for _, s := range scalars {
		out = append(out, s.Bytes()...)
	}

	var roundCount [4]byte
	binary.LittleEndian.PutUint32(roundCount[:], uint32(len(p.IPP.LVec)))
	out = append(out, roundCount[:]...)
	for i := range p.IPP.LVec {
		out = append(out, p.IPP.LVec[i].Bytes()...)
		out = append(out, p.IPP.RVec[i].Bytes()...)
	}
	out = append(out, p.IPP.A.Bytes()...)
	out = append(out, p.IPP.B.Bytes()...)
	return out
}

// ProofFromBytes decodes a proof encoded by Bytes, reporting ErrFormatError
// on truncation or a malformed field.
func ProofFromBytes(b []byte) (*R1CSProof, error) {
	const headerLen = 11 * 32
	if len(b) < headerLen+4 {
		return nil, ErrFormatError
	}

	readPoint := func(b []byte) (ristretto.Point, error) {
		p, err := ristretto.PointFromBytes(b[:32])
		if err != nil {
			return ristretto.Point{}, ErrFormatError
		}
		return p, nil
	}
	readScalar := func(b []byte) (ristretto.Scalar, error) {
		s, err := ristretto.ScalarFromBytes(b[:32])
		if err != nil {
			return ristretto.Scalar{}, ErrFormatError
		}
		return s, nil
	}

	proof := &R1CSProof{}
	off := 0
	pointFields := []*ristretto.Point{
		&proof.AI, &proof.AO, &proof.S,
		&proof.T1, &proof.T3, &proof.T4, &proof.T5, &proof.T6,
	}
	for _, dst := range pointFields {
		p, err := readPoint(b[off:])
		if err != nil {
			return nil, err
		}
		*dst = p
		off += 32
	}
	scalarFields := []*ristretto.Scalar{&proof.Tx, &proof.TxBlinding, &proof.EBlinding}
	for _, dst := range scalarFields {
		s, err := readScalar(b[off:])
		if err != nil {
			return nil, err
		}
		*dst = s
		off += 32
	}

	rounds := int(binary.LittleEndian.Uint32(b[off : off+4]))
	off += 4
	if len(b) < off+rounds*64+64 {
		return nil, ErrFormatError
	}

	lVec := make([]ristretto.Point, rounds)
	rVec := make([]ristretto.Point, rounds)
	for i := 0; i < rounds; i++ {
		l, err := readPoint(b[off:])
		if err != nil {
			return nil, err
		}
		off += 32
		r, err := readPoint(b[off:])
		if err != nil {
			return nil, err
		}
		off += 32
		lVec[i] = l
		rVec[i] = r
	}
	a, err := readScalar(b[off:])
	if err != nil {
		return nil, err
	}
	off += 32
	bS, err := readScalar(b[off:])
	if err != nil {
		return nil, err
	}
	proof.IPP = ipp.Proof{LVec: lVec, RVec: rVec, A: a, B: bS}
	return proof, nil
}

package fecdna

import (
	"fmt"

	"github.com/Observe-l/dnastore/dna"
	"github.com/Observe-l/dnastore/dnawire"
	"github.com/Observe-l/dnastore/fec"
)

// Packet layout:
//
//	MARKER  1 symbol  A = default length, T = explicit length
//	ESI     packed
//	LENGTH  packed, only after a T marker
//	DATA    one packed value per byte
const (
	markerDefault = dna.A
	markerCustom  = dna.T
)

// EncodePacket writes p. The length field is only emitted when len(p.Data)
// differs from symbolSize.
func EncodePacket(pk *dnawire.Packer, p fec.Packet, symbolSize int) dna.Sequence {
	out := make(dna.Sequence, 1, 1+5+len(p.Data)*3)
	out[0] = markerDefault
	out = pk.Pack(out, p.ID)
	if len(p.Data) != symbolSize {
		out[0] = markerCustom
		out = pk.Pack(out, uint32(len(p.Data)))
	}
	for _, b := range p.Data {
		out = pk.Pack(out, uint32(b))
	}
	return out
}

// DecodePacket reads one packet from the start of seq and returns it with
// the number of symbols consumed.
func DecodePacket(pk *dnawire.Packer, seq dna.Sequence, symbolSize int) (fec.Packet, int, error) {
	if len(seq) == 0 {
		return fec.Packet{}, 0, fmt.Errorf("fecdna: empty packet: %w", dna.ErrMalformed)
	}
	fields := 1
	switch seq[0] {
	case markerDefault:
	case markerCustom:
		fields = 2
	default:
		return fec.Packet{}, 0, fmt.Errorf("fecdna: packet marker %s: %w", seq[0], dna.ErrMalformed)
	}
	hdr, n, err := pk.UnpackN(seq[1:], fields)
	if err != nil {
		return fec.Packet{}, 0, fmt.Errorf("fecdna: packet header: %w", err)
	}
	length := symbolSize
	if fields == 2 {
		length = int(hdr[1])
		if length > symbolSize {
			return fec.Packet{}, 0, fmt.Errorf("fecdna: packet length %d over symbol size %d: %w", length, symbolSize, dna.ErrMalformed)
		}
	}
	vals, m, err := pk.UnpackN(seq[1+n:], length)
	if err != nil {
		return fec.Packet{}, 0, fmt.Errorf("fecdna: packet %d data: %w", hdr[0], err)
	}
	data := make([]byte, length)
	for i, v := range vals {
		if v > 0xff {
			return fec.Packet{}, 0, fmt.Errorf("fecdna: packet %d byte %d is %d: %w", hdr[0], i, v, dna.ErrMalformed)
		}
		data[i] = byte(v)
	}
	return fec.Packet{ID: hdr[0], Data: data}, 1 + n + m, nil
}

// SplitPackets cuts a strand into its header and packet sequences. The
// packet sequences are windows into seq.
func SplitPackets(pk *dnawire.Packer, seq dna.Sequence) (StrandHeader, []dna.Sequence, error) {
	var h StrandHeader
	off, err := h.UnmarshalDNA(pk, seq)
	if err != nil {
		return h, nil, err
	}
	var out []dna.Sequence
	for off < len(seq) {
		_, n, err := DecodePacket(pk, seq[off:], int(h.SymbolSize))
		if err != nil {
			return h, nil, fmt.Errorf("fecdna: packet %d: %w", len(out), err)
		}
		out = append(out, seq.Window(off, off+n))
		off += n
	}
	return h, out, nil
}

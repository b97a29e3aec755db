package fec

import (
	"errors"

	rqq "github.com/xssnick/raptorq"
)

// RaptorQ is the systematic RaptorQ code. Every symbol is symbolSize bytes;
// the last source symbol is zero padded by the library.
type RaptorQ struct{}

var _ Erasure = RaptorQ{}

type RaptorQEncoder struct {
	L int
	e *rqq.Encoder
}

type RaptorQDecoder struct {
	K int
	L int
	d *rqq.Decoder
}

// NewEncoder creates an encoder for one block holding all of data.
func (RaptorQ) NewEncoder(data []byte, symbolSize int) (Encoder, error) {
	if symbolSize <= 0 {
		return nil, errors.New("fec: bad symbol size")
	}
	if len(data) == 0 {
		return nil, errors.New("fec: empty block")
	}
	enc, err := rqq.NewRaptorQ(uint32(symbolSize)).CreateEncoder(data)
	if err != nil {
		return nil, err
	}
	return &RaptorQEncoder{L: symbolSize, e: enc}, nil
}

// Symbol returns the symbol bytes for id.
func (e *RaptorQEncoder) Symbol(id uint32) []byte { return e.e.GenSymbol(id) }

// SourceSymbols returns K as reported by the library.
func (e *RaptorQEncoder) SourceSymbols() int { return int(e.e.BaseSymbolsNum()) }

// NewDecoder creates a decoder for a block of dataSize bytes.
func (RaptorQ) NewDecoder(dataSize, symbolSize int) (Decoder, error) {
	if dataSize <= 0 || symbolSize <= 0 {
		return nil, errors.New("fec: bad data size or symbol size")
	}
	dec, err := rqq.NewRaptorQ(uint32(symbolSize)).CreateDecoder(uint32(dataSize))
	if err != nil {
		return nil, err
	}
	return &RaptorQDecoder{K: int(dec.FastSymbolsNumRequired()), L: symbolSize, d: dec}, nil
}

func (d *RaptorQDecoder) AddSymbol(id uint32, data []byte) (bool, error) {
	return d.d.AddSymbol(id, data)
}

// Decode attempts to reconstruct the block, trimmed to its original size.
func (d *RaptorQDecoder) Decode() (bool, []byte, error) { return d.d.Decode() }

func (d *RaptorQDecoder) Required() int { return d.K }

// EncodeBlock generates symbols 0..n-1 of data.
func EncodeBlock(er Erasure, data []byte, n, symbolSize int) ([]Packet, error) {
	if n <= 0 {
		return nil, errors.New("fec: bad symbol count")
	}
	enc, err := er.NewEncoder(data, symbolSize)
	if err != nil {
		return nil, err
	}
	out := make([]Packet, n)
	for i := range out {
		out[i] = Packet{ID: uint32(i), Data: enc.Symbol(uint32(i))}
	}
	return out, nil
}

// DecodeBlock feeds recv to a fresh decoder and returns the block, or false
// if the symbols do not suffice. Symbols the decoder refuses are skipped.
func DecodeBlock(er Erasure, recv []Packet, dataSize, symbolSize int) ([]byte, bool) {
	dec, err := er.NewDecoder(dataSize, symbolSize)
	if err != nil {
		return nil, false
	}
	for _, p := range recv {
		_, _ = dec.AddSymbol(p.ID, p.Data)
	}
	ok, b, err := dec.Decode()
	if err != nil || !ok {
		return nil, false
	}
	return b, true
}

// Package fec is the erasure-coding boundary used by the fountain transport.
// An Erasure builds one-block encoders that emit an unbounded stream of
// identified symbols, and decoders that accept those symbols in any order.
package fec

//go:generate mockgen -package mocks -destination ../internal/mocks/fec.go github.com/Observe-l/dnastore/fec Erasure,Encoder,Decoder

// Erasure creates encoder and decoder state for a single source block.
type Erasure interface {
	NewEncoder(data []byte, symbolSize int) (Encoder, error)
	NewDecoder(dataSize, symbolSize int) (Decoder, error)
}

// Encoder generates symbols by id. Ids below SourceSymbols are the
// systematic source symbols, later ids are repair symbols.
type Encoder interface {
	Symbol(id uint32) []byte
	SourceSymbols() int
}

// Decoder accumulates symbols until the block can be reconstructed.
type Decoder interface {
	// AddSymbol feeds one symbol and reports whether decoding may be tried.
	AddSymbol(id uint32, data []byte) (bool, error)
	// Decode returns the original bytes once enough symbols arrived.
	Decode() (bool, []byte, error)
	// Required is the number of symbols needed in the best case.
	Required() int
}

// Packet is one symbol with its id.
type Packet struct {
	ID   uint32
	Data []byte
}

package fecdna

import (
	"fmt"

	"github.com/Observe-l/dnastore/dna"
	"github.com/Observe-l/dnastore/dnawire"
)

// StrandHeader leads every assembled strand.
// Layout:
//
//	SIZE        packed  exact payload byte length
//	SYMBOLSIZE  packed  bytes per fountain symbol
type StrandHeader struct {
	Size       uint32
	SymbolSize uint32
}

func (h StrandHeader) MarshalDNA(p *dnawire.Packer, dst dna.Sequence) dna.Sequence {
	dst = p.Pack(dst, h.Size)
	return p.Pack(dst, h.SymbolSize)
}

// UnmarshalDNA reads the header from the start of seq and returns the
// number of symbols it occupies.
func (h *StrandHeader) UnmarshalDNA(p *dnawire.Packer, seq dna.Sequence) (int, error) {
	vals, n, err := p.UnpackN(seq, 2)
	if err != nil {
		return 0, fmt.Errorf("fecdna: strand header: %w", err)
	}
	if vals[0] == 0 || vals[1] == 0 {
		return 0, fmt.Errorf("fecdna: strand header size=%d symbol=%d: %w", vals[0], vals[1], dna.ErrMalformed)
	}
	h.Size, h.SymbolSize = vals[0], vals[1]
	return n, nil
}

// sourceSymbols is the number of symbols holding payload bytes.
func (h StrandHeader) sourceSymbols() uint32 {
	return (h.Size + h.SymbolSize - 1) / h.SymbolSize
}

// symbolLen is the number of meaningful bytes in symbol id. Only the last
// source symbol may be short.
func (h StrandHeader) symbolLen(id uint32) int {
	last := h.sourceSymbols() - 1
	if id == last {
		return int(h.Size - last*h.SymbolSize)
	}
	return int(h.SymbolSize)
}

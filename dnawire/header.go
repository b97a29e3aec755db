// Package dnawire packs unsigned integers into self-describing nucleotide
// headers.
//
// Layout:
//
//	SELECTOR  1 symbol   A=4 bits, C=8 bits, T=16 bits, G=32 bits
//	VALUE     bits/2 symbols, the value MSB first through a dna.Converter
package dnawire

import (
	"fmt"

	"github.com/Observe-l/dnastore/dna"
	"github.com/Observe-l/dnastore/internal/bitbuf"
)

// Width is a bit-width class.
type Width uint8

const (
	Width4  Width = 4
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
)

// Bits returns the payload bit count.
func (w Width) Bits() int { return int(w) }

// Symbols returns the packed length including the selector.
func (w Width) Symbols() int { return 1 + int(w)/2 }

// Max is the largest value the class holds.
func (w Width) Max() uint64 { return 1<<uint(w) - 1 }

// Selector returns the leading symbol naming the class.
func (w Width) Selector() dna.Symbol {
	switch w {
	case Width4:
		return dna.A
	case Width8:
		return dna.C
	case Width16:
		return dna.T
	}
	return dna.G
}

func (w Width) valid() bool {
	return w == Width4 || w == Width8 || w == Width16 || w == Width32
}

func (w Width) String() string { return fmt.Sprintf("%d-bit", int(w)) }

// WidthFor returns the smallest class that holds v.
func WidthFor(v uint32) Width {
	switch {
	case v < 1<<4:
		return Width4
	case v < 1<<8:
		return Width8
	case v < 1<<16:
		return Width16
	}
	return Width32
}

// WidthFromSymbol maps a selector symbol back to its class.
func WidthFromSymbol(s dna.Symbol) (Width, error) {
	switch s {
	case dna.A:
		return Width4, nil
	case dna.C:
		return Width8, nil
	case dna.T:
		return Width16, nil
	case dna.G:
		return Width32, nil
	}
	return 0, fmt.Errorf("dnawire: unknown width selector %d: %w", s, dna.ErrMalformed)
}

// Packer packs integers using an explicit converter for the value symbols.
type Packer struct {
	conv dna.Converter
}

func NewPacker(conv dna.Converter) *Packer {
	if conv == nil {
		conv = dna.Rotating{}
	}
	return &Packer{conv: conv}
}

// Default returns a packer over the rotating converter.
func Default() *Packer { return NewPacker(dna.Rotating{}) }

func (p *Packer) Converter() dna.Converter { return p.conv }

// Pack appends v in its smallest width class to dst.
func (p *Packer) Pack(dst dna.Sequence, v uint32) dna.Sequence {
	out, _ := p.PackWidth(dst, v, WidthFor(v))
	return out
}

// PackWidth appends v in class w to dst. A class too narrow for v is a
// configuration error.
func (p *Packer) PackWidth(dst dna.Sequence, v uint32, w Width) (dna.Sequence, error) {
	if !w.valid() {
		return dst, fmt.Errorf("dnawire: width %d: %w", w, dna.ErrInvalidConfig)
	}
	if uint64(v) > w.Max() {
		return dst, fmt.Errorf("dnawire: %d does not fit %s: %w", v, w, dna.ErrInvalidConfig)
	}
	var buf bitbuf.Buffer
	buf.AppendBits(uint64(v), w.Bits())
	dst = append(dst, w.Selector())
	return append(dst, p.conv.Encode(buf.Digits())...), nil
}

// Unpack reads one packed value from the start of seq and returns it with
// its class and the number of symbols consumed.
func (p *Packer) Unpack(seq dna.Sequence) (uint32, Width, int, error) {
	if len(seq) == 0 {
		return 0, 0, 0, fmt.Errorf("dnawire: empty header: %w", dna.ErrMalformed)
	}
	w, err := WidthFromSymbol(seq[0])
	if err != nil {
		return 0, 0, 0, err
	}
	n := w.Symbols()
	if len(seq) < n {
		return 0, 0, 0, fmt.Errorf("dnawire: %s header truncated at %d symbols: %w", w, len(seq), dna.ErrMalformed)
	}
	buf := bitbuf.FromDigits(p.conv.Decode(seq[1:n]))
	v, err := buf.Uint(0, w.Bits())
	if err != nil {
		return 0, 0, 0, fmt.Errorf("dnawire: %v: %w", err, dna.ErrMalformed)
	}
	return uint32(v), w, n, nil
}

// UnpackN reads count consecutive values and returns the symbols consumed.
func (p *Packer) UnpackN(seq dna.Sequence, count int) ([]uint32, int, error) {
	out := make([]uint32, 0, count)
	off := 0
	for i := 0; i < count; i++ {
		v, _, n, err := p.Unpack(seq[off:])
		if err != nil {
			return nil, 0, fmt.Errorf("dnawire: value %d: %w", i, err)
		}
		out = append(out, v)
		off += n
	}
	return out, off, nil
}

// PackedLen is the number of symbols Pack emits for v.
func PackedLen(v uint32) int { return WidthFor(v).Symbols() }

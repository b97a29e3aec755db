package dna

import (
	"fmt"
	"sort"
	"strings"
)

// Converter maps a stream of base-4 digits (values 0..3) onto nucleotides and
// back. Implementations are stateless and safe for concurrent use.
type Converter interface {
	Name() string
	Encode(digits []byte) Sequence
	Decode(seq Sequence) []byte
}

// Naive writes each digit as the symbol with the same value.
type Naive struct{}

func (Naive) Name() string { return "naive" }

func (Naive) Encode(digits []byte) Sequence {
	seq := make(Sequence, len(digits))
	for i, d := range digits {
		seq[i] = Symbol(d & 3)
	}
	return seq
}

func (Naive) Decode(seq Sequence) []byte {
	out := make([]byte, len(seq))
	for i, s := range seq {
		out[i] = byte(s)
	}
	return out
}

// Rotating offsets every digit by the previous symbol plus one, so that a run
// of equal digits never produces a run of equal symbols. The first digit is
// taken relative to A.
type Rotating struct{}

func (Rotating) Name() string { return "rotating" }

func (Rotating) Encode(digits []byte) Sequence {
	seq := make(Sequence, len(digits))
	prev := byte(0)
	for i, d := range digits {
		prev = (d + prev + 1) & 3
		seq[i] = Symbol(prev)
	}
	return seq
}

func (Rotating) Decode(seq Sequence) []byte {
	out := make([]byte, len(seq))
	prev := byte(0)
	for i, s := range seq {
		out[i] = (byte(s) - prev - 1) & 3
		prev = byte(s)
	}
	return out
}

var converters = map[string]Converter{
	"naive":    Naive{},
	"rotating": Rotating{},
}

// LookupConverter resolves a converter by case-insensitive name.
func LookupConverter(name string) (Converter, error) {
	c, ok := converters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("dna: unknown converter %q (have %s): %w", name, strings.Join(ConverterNames(), ", "), ErrInvalidConfig)
	}
	return c, nil
}

// ConverterNames lists the registered converter names in sorted order.
func ConverterNames() []string {
	names := make([]string, 0, len(converters))
	for n := range converters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// EncodeBytes writes every byte as four digits, most significant first.
func EncodeBytes(c Converter, b []byte) Sequence {
	digits := make([]byte, 0, len(b)*4)
	for _, v := range b {
		digits = append(digits, v>>6&3, v>>4&3, v>>2&3, v&3)
	}
	return c.Encode(digits)
}

// DecodeBytes inverts EncodeBytes. The sequence length must be a multiple
// of four.
func DecodeBytes(c Converter, seq Sequence) ([]byte, error) {
	if len(seq)%4 != 0 {
		return nil, fmt.Errorf("dna: %d symbols do not form whole bytes: %w", len(seq), ErrMalformed)
	}
	digits := c.Decode(seq)
	out := make([]byte, len(seq)/4)
	for i := range out {
		d := digits[i*4 : i*4+4]
		out[i] = d[0]<<6 | d[1]<<4 | d[2]<<2 | d[3]
	}
	return out, nil
}

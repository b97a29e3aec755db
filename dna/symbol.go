package dna

import "fmt"

// Symbol is one nucleotide. Its numeric value is the base-4 digit used by
// projections and converters: A=0, T=1, C=2, G=3. Complementary pairs differ
// only in the lowest bit.
type Symbol uint8

const (
	A Symbol = 0
	T Symbol = 1
	C Symbol = 2
	G Symbol = 3
)

// Symbols lists every symbol in digit order.
var Symbols = [4]Symbol{A, T, C, G}

const symbolChars = "ATCG"

// Complement returns the Watson-Crick partner (A<->T, C<->G).
func (s Symbol) Complement() Symbol { return s ^ 1 }

// IsGC reports whether s is C or G.
func (s Symbol) IsGC() bool { return s >= C }

// Valid reports whether s is one of the four nucleotides.
func (s Symbol) Valid() bool { return s <= G }

func (s Symbol) Byte() byte {
	if !s.Valid() {
		return '?'
	}
	return symbolChars[s]
}

func (s Symbol) String() string { return string(s.Byte()) }

// ParseSymbol maps an upper- or lower-case nucleotide letter to its Symbol.
func ParseSymbol(c byte) (Symbol, error) {
	switch c {
	case 'A', 'a':
		return A, nil
	case 'T', 't':
		return T, nil
	case 'C', 'c':
		return C, nil
	case 'G', 'g':
		return G, nil
	}
	return 0, fmt.Errorf("dna: invalid nucleotide %q: %w", c, ErrMalformed)
}

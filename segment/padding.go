package segment

import (
	"fmt"

	"github.com/Observe-l/dnastore/dna"
	"github.com/Observe-l/dnastore/permute"
)

// Delim separates a payload from its filler. Filler never contains it, so
// the last occurrence in a padded unit marks the end of the payload.
var Delim = dna.MustParse("AC")

// Padder extends sequences to a fixed length as
//
//	PAYLOAD | AC | FILLER
//
// with filler composed to pull the unit's GC content toward one half.
type Padder struct {
	Length int
}

// Pad returns seq padded to p.Length. At least one filler symbol is always
// written.
func (p Padder) Pad(seq dna.Sequence) (dna.Sequence, error) {
	rem := p.Length - len(seq) - len(Delim)
	if rem < 1 {
		return nil, fmt.Errorf("segment: %d symbols do not fit a padded unit of %d: %w", len(seq), p.Length, dna.ErrInvalidConfig)
	}
	out := make(dna.Sequence, 0, p.Length)
	out = append(out, seq...)
	out = append(out, Delim...)
	gc := (float64(p.Length)*0.5 - float64(out.GCCount())) / float64(rem)
	gc = min(max(gc, 0), 1)

	filler := dna.Random(rem, gc, permute.NewRand(out.Hash()))
	for i := 1; i < len(filler); i++ {
		if filler[i-1] == dna.A && filler[i] == dna.C {
			filler[i] = dna.G
		}
	}
	return append(out, filler...), nil
}

// Unpad returns the payload window of a padded unit.
func (p Padder) Unpad(seq dna.Sequence) (dna.Sequence, error) {
	i := seq.LastIndexOf(Delim)
	if i < 0 {
		return nil, fmt.Errorf("segment: no delimiter in %d symbols: %w", len(seq), dna.ErrMalformed)
	}
	return seq.Window(0, i), nil
}

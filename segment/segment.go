// Package segment cuts long sequences into fixed-length padded units led by
// a header unit that records how many payload units follow.
package segment

import (
	"fmt"

	"github.com/Observe-l/dnastore/dna"
	"github.com/Observe-l/dnastore/dnawire"
	"github.com/Observe-l/dnastore/internal/metrics"
)

// Segmenter turns one sequence into units and back.
type Segmenter interface {
	Encode(seq dna.Sequence) ([]dna.Sequence, error)
	Decode(units []dna.Sequence) (dna.Sequence, error)
}

// Transform is applied to every padded unit after padding, and undone before
// unpadding. Overhead is the number of symbols it adds.
type Transform interface {
	Encode(seq dna.Sequence) (dna.Sequence, error)
	Decode(seq dna.Sequence) (dna.Sequence, error)
	Overhead() int
}

// Options configures a Coder.
type Options struct {
	TargetLength  int             // length of every emitted unit
	GCCorrections int             // filler symbols reserved beyond the minimum
	Packer        *dnawire.Packer // header packer (default dnawire.Default)
	Transform     Transform       // optional per-unit transform
}

// Coder is the fixed-length segmentation scheme.
type Coder struct {
	opts     Options
	padder   Padder
	splitLen int
	maxUnits uint64
}

// New validates opts. The split length left after delimiter, minimum
// filler, GC corrections, and transform overhead must be positive, and the
// header unit must hold at least a 4-bit unit count. The widest count class
// that fits bounds the number of payload units Encode accepts.
func New(opts Options) (*Coder, error) {
	if opts.Packer == nil {
		opts.Packer = dnawire.Default()
	}
	if opts.GCCorrections < 0 {
		return nil, fmt.Errorf("segment: negative gc corrections: %w", dna.ErrInvalidConfig)
	}
	padded := opts.TargetLength
	if opts.Transform != nil {
		padded -= opts.Transform.Overhead()
	}
	split := padded - len(Delim) - 1 - opts.GCCorrections
	if split <= 0 {
		return nil, fmt.Errorf("segment: target length %d leaves split length %d: %w", opts.TargetLength, split, dna.ErrInvalidConfig)
	}
	room := padded - len(Delim) - 1
	var maxUnits uint64
	for _, w := range []dnawire.Width{dnawire.Width4, dnawire.Width8, dnawire.Width16, dnawire.Width32} {
		if w.Symbols() <= room {
			maxUnits = w.Max()
		}
	}
	if maxUnits == 0 {
		return nil, fmt.Errorf("segment: target length %d leaves %d symbols for a header of at least %d: %w",
			opts.TargetLength, room, dnawire.Width4.Symbols(), dna.ErrInvalidConfig)
	}
	return &Coder{opts: opts, padder: Padder{Length: padded}, splitLen: split, maxUnits: maxUnits}, nil
}

// MaxUnits is the largest payload unit count the header unit can record.
func (c *Coder) MaxUnits() uint64 { return c.maxUnits }

// SplitLen is the payload symbols carried per unit.
func (c *Coder) SplitLen() int { return c.splitLen }

// NumSegments is the number of payload units for a payload of n symbols.
func (c *Coder) NumSegments(n int) int {
	return (n + c.splitLen - 1) / c.splitLen
}

func (c *Coder) unit(seq dna.Sequence) (dna.Sequence, error) {
	u, err := c.padder.Pad(seq)
	if err != nil {
		return nil, err
	}
	if c.opts.Transform != nil {
		return c.opts.Transform.Encode(u)
	}
	return u, nil
}

func (c *Coder) payload(u dna.Sequence) (dna.Sequence, error) {
	if c.opts.Transform != nil {
		var err error
		if u, err = c.opts.Transform.Decode(u); err != nil {
			return nil, err
		}
	}
	return c.padder.Unpad(u)
}

// Encode returns the header unit followed by one unit per chunk of SplitLen
// symbols. Every unit is exactly TargetLength long.
func (c *Coder) Encode(seq dna.Sequence) ([]dna.Sequence, error) {
	n := c.NumSegments(len(seq))
	if uint64(n) > c.maxUnits {
		return nil, fmt.Errorf("segment: %d symbols need %d units, header holds at most %d: %w", len(seq), n, c.maxUnits, dna.ErrInvalidConfig)
	}
	hdr, err := c.unit(c.opts.Packer.Pack(nil, uint32(n)))
	if err != nil {
		return nil, fmt.Errorf("segment: header: %w", err)
	}
	out := make([]dna.Sequence, 0, n+1)
	out = append(out, hdr)
	for off := 0; off < len(seq); off += c.splitLen {
		u, err := c.unit(seq.Window(off, min(off+c.splitLen, len(seq))))
		if err != nil {
			return nil, fmt.Errorf("segment: unit %d: %w", len(out)-1, err)
		}
		out = append(out, u)
	}
	metrics.SegmentsEmitted.Add(float64(len(out)))
	return out, nil
}

// Decode checks the header count against the units given and concatenates
// their payloads.
func (c *Coder) Decode(units []dna.Sequence) (dna.Sequence, error) {
	if len(units) == 0 {
		return nil, fmt.Errorf("segment: no header unit: %w", dna.ErrMalformed)
	}
	hdr, err := c.payload(units[0])
	if err != nil {
		return nil, fmt.Errorf("segment: header: %w", err)
	}
	n, _, _, err := c.opts.Packer.Unpack(hdr)
	if err != nil {
		return nil, fmt.Errorf("segment: header: %w", err)
	}
	if int(n) != len(units)-1 {
		return nil, fmt.Errorf("segment: header records %d units, got %d: %w", n, len(units)-1, dna.ErrMalformed)
	}
	var out dna.Sequence
	for i, u := range units[1:] {
		p, err := c.payload(u)
		if err != nil {
			return nil, fmt.Errorf("segment: unit %d: %w", i, err)
		}
		out = append(out, p...)
	}
	return out, nil
}

// Identity passes sequences through as a single unit.
type Identity struct{}

func (Identity) Encode(seq dna.Sequence) ([]dna.Sequence, error) {
	return []dna.Sequence{seq.Clone()}, nil
}

func (Identity) Decode(units []dna.Sequence) (dna.Sequence, error) {
	return dna.Concat(units...), nil
}

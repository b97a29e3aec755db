// Package permcoder picks, among a bounded set of seeded permutations of a
// sequence, the one that maximizes a score, and prefixes it with the index
// of the permutation so that the choice can be undone.
//
// Layout of an encoded sequence:
//
//	INDEX    packed integer, fixed width class for the candidate count
//	PAYLOAD  the permuted input
package permcoder

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Observe-l/dnastore/dna"
	"github.com/Observe-l/dnastore/dnawire"
	"github.com/Observe-l/dnastore/internal/metrics"
	"github.com/Observe-l/dnastore/permute"
)

// ScoreFunc scores a header-prefixed candidate. Higher is better.
type ScoreFunc func(seq dna.Sequence) float64

// Options configures a Coder.
type Options struct {
	Candidates int             // permutations tried per encode, at least 1
	Workers    int             // scoring goroutines, 1 for sequential (default numCPU)
	Packer     *dnawire.Packer // header packer (default dnawire.Default)
}

func (o *Options) setDefaults() {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Packer == nil {
		o.Packer = dnawire.Default()
	}
}

// Scored is an encoded candidate with its score. The score is never stored
// on the sequence.
type Scored struct {
	Seq   dna.Sequence
	Index int
	Score float64
}

// Coder is the permutation search. It is safe for concurrent use as long as
// its ScoreFunc is.
type Coder struct {
	opts  Options
	score ScoreFunc
	width dnawire.Width
	after func(dna.Sequence) error
}

// New builds a coder. Fewer than one candidate leaves nothing to score and
// is rejected as both a configuration and an exhaustion error.
func New(opts Options, score ScoreFunc) (*Coder, error) {
	if opts.Candidates < 1 {
		return nil, fmt.Errorf("permcoder: no candidates to score: %w: %w", dna.ErrInvalidConfig, dna.ErrExhausted)
	}
	if int64(opts.Candidates) > math.MaxUint32 {
		return nil, fmt.Errorf("permcoder: %d candidates: %w", opts.Candidates, dna.ErrInvalidConfig)
	}
	opts.setDefaults()
	if score == nil {
		return nil, fmt.Errorf("permcoder: nil score function: %w", dna.ErrInvalidConfig)
	}
	return &Coder{
		opts:  opts,
		score: score,
		width: dnawire.WidthFor(uint32(opts.Candidates)),
	}, nil
}

// Overhead is the header length in symbols.
func (c *Coder) Overhead() int { return c.width.Symbols() }

func (c *Coder) Candidates() int { return c.opts.Candidates }

// candidate builds header(i) + permute(seq, seed+i).
func (c *Coder) candidate(seq dna.Sequence, seed uint64, i int) dna.Sequence {
	out := make(dna.Sequence, 0, c.width.Symbols()+len(seq))
	out, _ = c.opts.Packer.PackWidth(out, uint32(i), c.width)
	body := seq.Clone()
	permute.Apply(permute.Uniform(seed+uint64(i), len(seq)), body)
	return append(out, body...)
}

// EncodeScored returns the best candidate with its score. Ties go to the
// lowest candidate index regardless of which worker finished first.
func (c *Coder) EncodeScored(seq dna.Sequence) (Scored, error) {
	n := c.opts.Candidates
	seed := seq.Seed()
	results := make([]Scored, n)
	var g errgroup.Group
	g.SetLimit(c.opts.Workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			cand := c.candidate(seq, seed, i)
			results[i] = Scored{Seq: cand, Index: i, Score: c.score(cand)}
			return nil
		})
	}
	_ = g.Wait()
	metrics.CandidatesScored.Add(float64(n))

	best := 0
	for i := 1; i < n; i++ {
		if results[i].Score > results[best].Score {
			best = i
		}
	}
	if c.after != nil {
		if err := c.after(results[best].Seq); err != nil {
			return Scored{}, err
		}
	}
	return results[best], nil
}

// Encode returns the best header-prefixed permutation of seq.
func (c *Coder) Encode(seq dna.Sequence) (dna.Sequence, error) {
	s, err := c.EncodeScored(seq)
	if err != nil {
		return nil, err
	}
	return s.Seq, nil
}

// Decode strips the header and undoes the permutation.
func (c *Coder) Decode(seq dna.Sequence) (dna.Sequence, error) {
	return Decode(c.opts.Packer, seq)
}

// DecodeHeader returns the candidate index and the payload window.
func DecodeHeader(p *dnawire.Packer, seq dna.Sequence) (int, dna.Sequence, error) {
	i, _, n, err := p.Unpack(seq)
	if err != nil {
		return 0, nil, fmt.Errorf("permcoder: %w", err)
	}
	return int(i), seq.Window(n, len(seq)), nil
}

// Decode inverts any Coder's Encode given the packer it used. The seed is
// recomputed from the payload's composition, which permutation preserves.
func Decode(p *dnawire.Packer, seq dna.Sequence) (dna.Sequence, error) {
	i, payload, err := DecodeHeader(p, seq)
	if err != nil {
		return nil, err
	}
	perm := permute.Uniform(payload.Seed()+uint64(i), len(payload))
	return permute.Invert(payload, perm), nil
}

package permcoder

import (
	"fmt"

	"github.com/Observe-l/dnastore/dna"
	"github.com/Observe-l/dnastore/lsh"
	"github.com/Observe-l/dnastore/rules"
)

// NewDistanceCoder scores candidates by
//
//	errW * -rule(c) + distW * min(dist(c), dist(complement(c)))
//
// where dist is the index distance to previously emitted sequences. The
// winner of every Encode is inserted into idx, so the result of a run
// depends on the order of its encodes.
func NewDistanceCoder(opts Options, idx *lsh.Index, rule rules.Rule, errW, distW float64) (*Coder, error) {
	if idx == nil {
		return nil, fmt.Errorf("permcoder: nil index: %w", dna.ErrInvalidConfig)
	}
	if rule == nil {
		rule = rules.Zero
	}
	score := func(seq dna.Sequence) float64 {
		return errW*-rule(seq) + distW*min(distance(idx, seq), distance(idx, seq.Complement()))
	}
	c, err := New(opts, score)
	if err != nil {
		return nil, err
	}
	c.after = idx.InsertSafe
	return c, nil
}

// NewRuleCoder scores candidates by -rule(c) only.
func NewRuleCoder(opts Options, rule rules.Rule) (*Coder, error) {
	if rule == nil {
		return nil, fmt.Errorf("permcoder: nil rule: %w", dna.ErrInvalidConfig)
	}
	return New(opts, func(seq dna.Sequence) float64 { return -rule(seq) })
}

// distance treats sequences too short to index as maximally distant.
func distance(idx *lsh.Index, seq dna.Sequence) float64 {
	d, err := idx.Distance(seq, true)
	if err != nil {
		return 1
	}
	return d
}

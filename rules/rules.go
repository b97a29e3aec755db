// Package rules holds sequence validity rules. A Rule scores a sequence with
// an error probability in [0, 1]; a Predicate is the accept/reject form used
// by the fountain coder.
package rules

import "github.com/Observe-l/dnastore/dna"

// Rule returns an error probability for seq.
type Rule func(seq dna.Sequence) float64

// Predicate accepts or rejects seq.
type Predicate func(seq dna.Sequence) bool

// Zero scores every sequence as error free.
func Zero(dna.Sequence) float64 { return 0 }

// Always accepts every sequence.
func Always(dna.Sequence) bool { return true }

// Threshold accepts sequences whose error probability is at most maxErr.
func Threshold(r Rule, maxErr float64) Predicate {
	if r == nil {
		return Always
	}
	return func(seq dna.Sequence) bool { return r(seq) <= maxErr }
}

// Sum adds the scores of rs, capped at 1.
func Sum(rs ...Rule) Rule {
	return func(seq dna.Sequence) float64 {
		var e float64
		for _, r := range rs {
			e += r(seq)
		}
		return min(e, 1)
	}
}

// GCHomopolymer penalizes GC content outside [MinGC, MaxGC] and runs longer
// than MaxRun. Both terms are averaged over the sequence, so the score of a
// strand with uniform composition does not grow with its length.
type GCHomopolymer struct {
	MinGC, MaxGC float64
	Window       int     // GC window length, 0 for the whole sequence
	MaxRun       int     // longest tolerated homopolymer
	GCPenalty    float64 // weight of the mean GC deviation per window
	RunPenalty   float64 // weight of the fraction of symbols beyond MaxRun
}

// DefaultGCHomopolymer is a 40-60% GC window of 50 with runs up to 3.
func DefaultGCHomopolymer() GCHomopolymer {
	return GCHomopolymer{MinGC: 0.4, MaxGC: 0.6, Window: 50, MaxRun: 3, GCPenalty: 2, RunPenalty: 2}
}

// Rule returns g as a Rule.
func (g GCHomopolymer) Rule() Rule { return g.Eval }

func (g GCHomopolymer) Eval(seq dna.Sequence) float64 {
	if len(seq) == 0 {
		return 0
	}
	w := g.Window
	if w <= 0 || w > len(seq) {
		w = len(seq)
	}
	// windows are weighted by length so a short tail counts less
	var dev float64
	for i := 0; i < len(seq); i += w {
		j := min(i+w, len(seq))
		gc := seq.GCWindow(i, j)
		switch {
		case gc < g.MinGC:
			dev += (g.MinGC - gc) * float64(j-i)
		case gc > g.MaxGC:
			dev += (gc - g.MaxGC) * float64(j-i)
		}
	}
	excess := 0
	for _, i := range seq.HomopolymersAbove(g.MaxRun) {
		excess += seq.HomopolymerAt(i) - g.MaxRun
	}
	n := float64(len(seq))
	return min(dev/n*g.GCPenalty+float64(excess)/n*g.RunPenalty, 1)
}

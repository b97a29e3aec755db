package permute

import "github.com/Observe-l/dnastore/dna"

// Pair is one swap of a Fisher-Yates pass.
type Pair struct {
	I, J int
}

// Permutation is a swap trace. Applying the pairs in order permutes;
// applying Reversed undoes it.
type Permutation []Pair

// Uniform builds the Fisher-Yates trace for a sequence of length n. The same
// (seed, n) always yields the same trace.
func Uniform(seed uint64, n int) Permutation {
	if n < 2 {
		return nil
	}
	r := NewRand(seed)
	p := make(Permutation, 0, n-1)
	for i := n - 1; i > 0; i-- {
		p = append(p, Pair{I: i, J: r.Choose(0, i)})
	}
	return p
}

// Reversed returns the trace with pair order reversed.
func (p Permutation) Reversed() Permutation {
	out := make(Permutation, len(p))
	for i, pr := range p {
		out[len(p)-1-i] = pr
	}
	return out
}

// Apply swaps xs in place following p.
func Apply[T any](p Permutation, xs []T) {
	for _, pr := range p {
		xs[pr.I], xs[pr.J] = xs[pr.J], xs[pr.I]
	}
}

// Permute returns a permuted copy of seq.
func Permute(seq dna.Sequence, p Permutation) dna.Sequence {
	out := seq.Clone()
	Apply(p, out)
	return out
}

// Invert returns the copy of seq that p maps onto seq.
func Invert(seq dna.Sequence, p Permutation) dna.Sequence {
	return Permute(seq, p.Reversed())
}

// Shuffle permutes xs in place using r.
func Shuffle[T any](r *Rand, xs []T) {
	for i := len(xs) - 1; i > 0; i-- {
		j := r.Choose(0, i)
		xs[i], xs[j] = xs[j], xs[i]
	}
}

package lsh

import (
	"math/bits"

	"github.com/Observe-l/dnastore/dna"
)

// LargeK is the k from which k-mer sets are maps keyed by the base-4
// projection instead of bitsets over all 4^k k-mers.
const LargeK = 9

// Distance returns the smallest Jaccard distance between seq's k-mer set and
// that of any sequence the index returns for it, or 1 when there are none.
func (idx *Index) Distance(seq dna.Sequence, safe bool) (float64, error) {
	return idx.distance(seq, safe, nil)
}

// DistanceExclusive is Distance ignoring candidates equal to seq.
func (idx *Index) DistanceExclusive(seq dna.Sequence, safe bool) (float64, error) {
	return idx.distance(seq, safe, func(c dna.Sequence) bool { return !c.Equal(seq) })
}

func (idx *Index) distance(seq dna.Sequence, safe bool, keep func(dna.Sequence) bool) (float64, error) {
	hits, err := idx.similar(seq, 0, safe)
	if err != nil {
		return 0, err
	}
	if len(hits) == 0 {
		return 1, nil
	}
	set := idx.kmerSet(seq)
	best := 1.0
	for _, c := range hits {
		if keep != nil && !keep(c) {
			continue
		}
		if len(c) < idx.k {
			continue
		}
		best = min(best, set.distance(idx.kmerSet(c)))
	}
	return best, nil
}

// kmerSet is either a bitset over 4^k values or a set of projections. Both
// are exact since k <= dna.MaxBase4Len.
type kmerSet struct {
	bits []uint64
	set  map[uint64]struct{}
}

func (idx *Index) kmerSet(seq dna.Sequence) kmerSet {
	kmers, _ := seq.Kmers(idx.k)
	if idx.k < LargeK {
		bs := make([]uint64, (1<<(2*idx.k)+63)/64)
		for _, km := range kmers {
			v := km.Base4()
			bs[v/64] |= 1 << (v % 64)
		}
		return kmerSet{bits: bs}
	}
	set := make(map[uint64]struct{}, len(kmers))
	for _, km := range kmers {
		set[km.Base4()] = struct{}{}
	}
	return kmerSet{set: set}
}

// distance is 1 - |a∩b|/|a∪b|.
func (a kmerSet) distance(b kmerSet) float64 {
	var inter, union int
	if a.bits != nil {
		for i := range a.bits {
			inter += bits.OnesCount64(a.bits[i] & b.bits[i])
			union += bits.OnesCount64(a.bits[i] | b.bits[i])
		}
	} else {
		for v := range a.set {
			if _, ok := b.set[v]; ok {
				inter++
			}
		}
		union = len(a.set) + len(b.set) - inter
	}
	if union == 0 {
		return 1
	}
	return 1 - float64(inter)/float64(union)
}

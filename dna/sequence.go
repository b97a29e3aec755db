package dna

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// MaxBase4Len is the longest sequence whose base-4 projection fits a uint64.
const MaxBase4Len = 32

// Sequence is an ordered list of nucleotides. Equality is structural over the
// symbols; use Equal or the String key, never ==.
//
// Window returns a view that shares storage with the parent and must be
// treated as read-only. Sub and Clone return independent copies.
type Sequence []Symbol

// Parse reads a nucleotide string such as "ACGT".
func Parse(s string) (Sequence, error) {
	seq := make(Sequence, len(s))
	for i := 0; i < len(s); i++ {
		sym, err := ParseSymbol(s[i])
		if err != nil {
			return nil, fmt.Errorf("dna: parse at %d: %w", i, err)
		}
		seq[i] = sym
	}
	return seq, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Sequence {
	seq, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return seq
}

// Concat joins sequences into a new one.
func Concat(seqs ...Sequence) Sequence {
	n := 0
	for _, s := range seqs {
		n += len(s)
	}
	out := make(Sequence, 0, n)
	for _, s := range seqs {
		out = append(out, s...)
	}
	return out
}

func (s Sequence) Len() int { return len(s) }

func (s Sequence) String() string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, b := range s {
		sb.WriteByte(b.Byte())
	}
	return sb.String()
}

func (s Sequence) Equal(o Sequence) bool { return slices.Equal(s, o) }

// Hash is a structural hash usable for sequences of any length.
func (s Sequence) Hash() uint64 {
	d := xxhash.New()
	var buf [256]byte
	for off := 0; off < len(s); off += len(buf) {
		end := min(off+len(buf), len(s))
		for i, b := range s[off:end] {
			buf[i] = byte(b)
		}
		_, _ = d.Write(buf[:end-off])
	}
	return d.Sum64()
}

// Base4 projects the sequence onto an integer, symbol i contributing
// digit*4^i. It panics for sequences longer than MaxBase4Len; use Hash there.
func (s Sequence) Base4() uint64 {
	if len(s) > MaxBase4Len {
		panic(fmt.Sprintf("dna: base-4 projection of %d symbols overflows", len(s)))
	}
	var v uint64
	for i := len(s) - 1; i >= 0; i-- {
		v = v<<2 | uint64(s[i])
	}
	return v
}

func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}

// Window returns s[i:j] sharing storage. Appending to the window never
// writes into the parent.
func (s Sequence) Window(i, j int) Sequence { return s[i:j:j] }

// Sub returns a copy of s[i:j].
func (s Sequence) Sub(i, j int) Sequence { return slices.Clone(s[i:j]) }

func (s *Sequence) Append(syms ...Symbol) { *s = append(*s, syms...) }

func (s *Sequence) Insert(i int, o Sequence) { *s = slices.Insert(*s, i, o...) }

// Remove deletes s[i:j].
func (s *Sequence) Remove(i, j int) { *s = slices.Delete(*s, i, j) }

func (s Sequence) Set(i int, b Symbol) { s[i] = b }

func (s Sequence) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// Reverse returns a reversed copy.
func (s Sequence) Reverse() Sequence {
	out := s.Clone()
	out.ReverseInPlace()
	return out
}

func (s Sequence) ReverseInPlace() { slices.Reverse(s) }

// Complement returns a new sequence with every symbol complemented.
func (s Sequence) Complement() Sequence {
	out := make(Sequence, len(s))
	for i, b := range s {
		out[i] = b.Complement()
	}
	return out
}

// Kmers returns the len(s)-k+1 overlapping windows of length k. The windows
// share storage with s.
func (s Sequence) Kmers(k int) ([]Sequence, error) {
	if k <= 0 || k > len(s) {
		return nil, fmt.Errorf("dna: %d-mers of a sequence of length %d: %w", k, len(s), ErrMalformed)
	}
	out := make([]Sequence, len(s)-k+1)
	for i := range out {
		out[i] = s.Window(i, i+k)
	}
	return out, nil
}

// HomopolymerAt returns the length of the run of identical symbols starting
// at index i.
func (s Sequence) HomopolymerAt(i int) int {
	b := s[i]
	n := 1
	for i+n < len(s) && s[i+n] == b {
		n++
	}
	return n
}

// HomopolymersAbove returns the start index of every run strictly longer
// than threshold.
func (s Sequence) HomopolymersAbove(threshold int) []int {
	var idx []int
	limit := len(s) - max(threshold, 0)
	for i := 0; i < limit; {
		n := s.HomopolymerAt(i)
		if n > threshold {
			idx = append(idx, i)
		}
		i += n
	}
	return idx
}

func (s Sequence) GCCount() int {
	n := 0
	for _, b := range s {
		if b.IsGC() {
			n++
		}
	}
	return n
}

// GCContent is GCCount/Len, or 0 for an empty sequence.
func (s Sequence) GCContent() float64 {
	if len(s) == 0 {
		return 0
	}
	return float64(s.GCCount()) / float64(len(s))
}

// GCWindow is the GC content of s[i:j]. Both bounds are clamped to
// [0, len(s)], and an empty or inverted window has GC content 0.
func (s Sequence) GCWindow(i, j int) float64 {
	j = min(max(j, 0), len(s))
	i = min(max(i, 0), j)
	return s[i:j].GCContent()
}

// Histogram counts each symbol, indexed by digit.
func (s Sequence) Histogram() [4]int {
	var h [4]int
	for _, b := range s {
		h[b]++
	}
	return h
}

// Seed is the product of the counts of the symbols present in s. It only
// depends on composition, so any permutation of s has the same seed.
func (s Sequence) Seed() uint64 {
	seed := uint64(1)
	for _, c := range s.Histogram() {
		if c > 0 {
			seed *= uint64(c)
		}
	}
	return seed
}

// IndexOf returns the first index of sub in s, or -1.
func (s Sequence) IndexOf(sub Sequence) int {
	if len(sub) == 0 {
		return 0
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if slices.Equal(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

// LastIndexOf returns the last index of sub in s, or -1.
func (s Sequence) LastIndexOf(sub Sequence) int {
	if len(sub) == 0 {
		return len(s)
	}
	for i := len(s) - len(sub); i >= 0; i-- {
		if slices.Equal(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

func (s Sequence) Contains(sub Sequence) bool { return s.IndexOf(sub) >= 0 }

// Replace returns a copy of s with the first occurrence of from replaced by to.
func (s Sequence) Replace(from, to Sequence) Sequence {
	i := s.IndexOf(from)
	if i < 0 {
		return s.Clone()
	}
	return Concat(s[:i], to, s[i+len(from):])
}

// SplitEvery cuts s into pieces of n symbols; the last piece may be shorter.
// The pieces are copies.
func (s Sequence) SplitEvery(n int) []Sequence {
	if n >= len(s) {
		return []Sequence{s.Clone()}
	}
	out := make([]Sequence, 0, (len(s)+n-1)/n)
	for off := 0; off < len(s); off += n {
		out = append(out, s.Sub(off, min(off+n, len(s))))
	}
	return out
}

// CountMatches counts non-overlapping occurrences of slice. With consecutive
// set it returns the longest run of back-to-back occurrences instead.
func (s Sequence) CountMatches(slice Sequence, consecutive bool) int {
	n := len(slice)
	if n == 0 || len(s) < n {
		return 0
	}
	count, run, best := 0, 0, 0
	for i := 0; i+n <= len(s); {
		if slices.Equal(s[i:i+n], slice) {
			count++
			run++
			i += n
		} else {
			run = 0
			i++
		}
		best = max(best, run)
	}
	if consecutive {
		return best
	}
	return count
}

package dna

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func genSequence(minLen, maxLen int) *rapid.Generator[Sequence] {
	return rapid.Custom(func(t *rapid.T) Sequence {
		digits := rapid.SliceOfN(rapid.IntRange(0, 3), minLen, maxLen).Draw(t, "digits")
		seq := make(Sequence, len(digits))
		for i, d := range digits {
			seq[i] = Symbol(d)
		}
		return seq
	})
}

func TestParseAndString(t *testing.T) {
	seq, err := Parse("acgtAC")
	require.NoError(t, err)
	require.Equal(t, "ACGTAC", seq.String())

	_, err = Parse("ACXT")
	require.True(t, errors.Is(err, ErrMalformed))
}

func TestComplementInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := genSequence(0, 64).Draw(t, "s")
		if !s.Complement().Complement().Equal(s) {
			t.Fatalf("complement not an involution for %s", s)
		}
		if len(s) > 0 && s.GCContent() != float64(s.GCCount())/float64(len(s)) {
			t.Fatalf("gc content mismatch")
		}
	})
	require.Equal(t, "TAGC", MustParse("ATCG").Complement().String())
}

func TestHomopolymerScan(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := genSequence(1, 80).Draw(t, "s")
		th := rapid.IntRange(0, 6).Draw(t, "threshold")
		found := map[int]bool{}
		for _, i := range s.HomopolymersAbove(th) {
			if s.HomopolymerAt(i) <= th {
				t.Fatalf("index %d has run %d <= %d", i, s.HomopolymerAt(i), th)
			}
			found[i] = true
		}
		// every maximal run longer than th starting in range is reported
		for i := 0; i < len(s)-th; i++ {
			if i > 0 && s[i-1] == s[i] {
				continue
			}
			if s.HomopolymerAt(i) > th && !found[i] {
				t.Fatalf("run at %d of length %d missing", i, s.HomopolymerAt(i))
			}
		}
	})
	require.Equal(t, []int{2}, MustParse("ACGGGGTA").HomopolymersAbove(3))
}

func TestKmers(t *testing.T) {
	s := MustParse("ACGTA")
	km, err := s.Kmers(3)
	require.NoError(t, err)
	require.Len(t, km, 3)
	require.Equal(t, "CGT", km[1].String())

	_, err = s.Kmers(6)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestWindowDoesNotLeakAppends(t *testing.T) {
	s := MustParse("ACGTACGT")
	w := s.Window(0, 4)
	w.Append(G)
	require.Equal(t, "ACGTACGT", s.String())
	require.Equal(t, "ACGTG", w.String())
}

func TestMutation(t *testing.T) {
	s := MustParse("AAAA")
	s.Insert(2, MustParse("CG"))
	require.Equal(t, "AACGAA", s.String())
	s.Remove(0, 2)
	require.Equal(t, "CGAA", s.String())
	s.Swap(0, 3)
	s.Set(1, T)
	require.Equal(t, "ATAC", s.String())
	require.Equal(t, "CATA", s.Reverse().String())
	require.Equal(t, "ATAC", s.String())
}

func TestSeedIsPermutationInvariant(t *testing.T) {
	s := MustParse("AACGGGT")
	require.EqualValues(t, 2*1*3*1, s.Seed())
	require.Equal(t, s.Seed(), s.Reverse().Seed())
	require.EqualValues(t, 1, Sequence{}.Seed())
}

func TestGCWindow(t *testing.T) {
	s := MustParse("GGCCAATT")
	for _, tc := range []struct {
		i, j int
		want float64
	}{
		{0, 4, 1},
		{2, 6, 0.5},
		{4, 8, 0},
		{0, 8, 0.5},
		{6, 100, 0},
		{-3, 2, 1},
		{5, 3, 0},
		{9, 12, 0},
		{3, 3, 0},
	} {
		require.Equal(t, tc.want, s.GCWindow(tc.i, tc.j), "window [%d,%d)", tc.i, tc.j)
	}
	require.Zero(t, Sequence(nil).GCWindow(0, 5))
}

func TestBase4(t *testing.T) {
	require.EqualValues(t, 0, MustParse("AAAA").Base4())
	// digits little-endian: G=3 at position 1
	require.EqualValues(t, 3*4, MustParse("AG").Base4())
	require.Panics(t, func() { make(Sequence, MaxBase4Len+1).Base4() })
	require.NotEqual(t, MustParse("AG").Hash(), MustParse("GA").Hash())
}

func TestSearchHelpers(t *testing.T) {
	s := MustParse("ACGTACGTAC")
	require.Equal(t, 0, s.IndexOf(MustParse("AC")))
	require.Equal(t, 8, s.LastIndexOf(MustParse("AC")))
	require.Equal(t, -1, s.IndexOf(MustParse("GG")))
	require.True(t, s.Contains(MustParse("TACG")))
	require.Equal(t, "TTGTACGTAC", s.Replace(MustParse("AC"), MustParse("TT")).String())
	require.Equal(t, 3, s.CountMatches(MustParse("AC"), false))
	require.Equal(t, 2, MustParse("ACACGAC").CountMatches(MustParse("AC"), true))

	parts := s.SplitEvery(4)
	require.Len(t, parts, 3)
	require.Equal(t, "AC", parts[2].String())
}

func TestRandomComposition(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	s := Random(4000, 0.7, r)
	require.Len(t, s, 4000)
	require.InDelta(t, 0.7, s.GCContent(), 0.05)
}

package segment

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Observe-l/dnastore/dna"
	"github.com/Observe-l/dnastore/lsh"
	"github.com/Observe-l/dnastore/permcoder"
	"github.com/Observe-l/dnastore/rules"
)

func TestSplitLengthValidation(t *testing.T) {
	_, err := New(Options{TargetLength: 3})
	require.ErrorIs(t, err, dna.ErrInvalidConfig)
	_, err = New(Options{TargetLength: 10, GCCorrections: 7})
	require.ErrorIs(t, err, dna.ErrInvalidConfig)

	c, err := New(Options{TargetLength: 10, GCCorrections: 6})
	require.NoError(t, err)
	require.Equal(t, 1, c.SplitLen())
	require.Equal(t, uint64(255), c.MaxUnits())

	// split length 1, but no room for the header count
	_, err = New(Options{TargetLength: 4})
	require.ErrorIs(t, err, dna.ErrInvalidConfig)
	_, err = New(Options{TargetLength: 5})
	require.ErrorIs(t, err, dna.ErrInvalidConfig)
}

func TestSmallestTargetEncodes(t *testing.T) {
	c, err := New(Options{TargetLength: 6})
	require.NoError(t, err)
	require.Equal(t, 3, c.SplitLen())
	require.Equal(t, uint64(15), c.MaxUnits())

	seq := dna.MustParse("ACGTACGTACGT")
	units, err := c.Encode(seq)
	require.NoError(t, err)
	for _, u := range units {
		require.Len(t, u, 6)
	}
	got, err := c.Decode(units)
	require.NoError(t, err)
	require.True(t, got.Equal(seq))

	_, err = c.Encode(dna.Random(16*3, 0.5, rand.New(rand.NewSource(2))))
	require.ErrorIs(t, err, dna.ErrInvalidConfig)
}

func TestTwoHundredFiftyIntoThree(t *testing.T) {
	c, err := New(Options{TargetLength: 103})
	require.NoError(t, err)
	require.Equal(t, 100, c.SplitLen())
	require.Equal(t, 3, c.NumSegments(250))

	seq := dna.Random(250, 0.5, rand.New(rand.NewSource(1)))
	units, err := c.Encode(seq)
	require.NoError(t, err)
	require.Len(t, units, 4)
	for _, u := range units {
		require.Len(t, u, 103)
	}
	for i, want := range []int{100, 100, 50} {
		p, err := c.padder.Unpad(units[i+1])
		require.NoError(t, err)
		require.Len(t, p, want)
	}

	got, err := c.Decode(units)
	require.NoError(t, err)
	require.True(t, got.Equal(seq))
}

func TestRoundtripAroundChunkBoundary(t *testing.T) {
	c, err := New(Options{TargetLength: 40, GCCorrections: 4})
	require.NoError(t, err)
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.SampledFrom([]int{0, 1, c.SplitLen() - 1, c.SplitLen(), c.SplitLen() + 1, 3 * c.SplitLen(), 500}).Draw(t, "n")
		digits := rapid.SliceOfN(rapid.IntRange(0, 3), n, n).Draw(t, "digits")
		seq := make(dna.Sequence, n)
		for i, d := range digits {
			seq[i] = dna.Symbol(d)
		}
		units, err := c.Encode(seq)
		if err != nil {
			t.Fatal(err)
		}
		if len(units) != c.NumSegments(n)+1 {
			t.Fatalf("%d units for %d symbols", len(units), n)
		}
		got, err := c.Decode(units)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(seq) {
			t.Fatalf("roundtrip mismatch for n=%d", n)
		}
	})
}

func TestPaddingBalancesGC(t *testing.T) {
	p := Padder{Length: 200}
	u, err := p.Pad(dna.MustParse("AAAAAAAAAAAAAAAAAAAATTTTTTTTTTTTTTTTTTTT"))
	require.NoError(t, err)
	require.Len(t, u, 200)
	require.InDelta(t, 0.5, u.GCContent(), 0.12)
	require.Equal(t, 40, u.LastIndexOf(Delim))

	again, err := p.Pad(dna.MustParse("AAAAAAAAAAAAAAAAAAAATTTTTTTTTTTTTTTTTTTT"))
	require.NoError(t, err)
	require.True(t, u.Equal(again))

	_, err = p.Unpad(dna.MustParse("GGGG"))
	require.ErrorIs(t, err, dna.ErrMalformed)
}

func TestHeaderCountMismatch(t *testing.T) {
	c, err := New(Options{TargetLength: 30})
	require.NoError(t, err)
	units, err := c.Encode(dna.Random(100, 0.5, rand.New(rand.NewSource(2))))
	require.NoError(t, err)
	_, err = c.Decode(units[:len(units)-1])
	require.ErrorIs(t, err, dna.ErrMalformed)
	_, err = c.Decode(nil)
	require.ErrorIs(t, err, dna.ErrMalformed)
}

func TestWithDistanceTransform(t *testing.T) {
	idx, err := lsh.New(lsh.Config{K: 4, R: 20, B: 5})
	require.NoError(t, err)
	dc, err := permcoder.NewDistanceCoder(permcoder.Options{Candidates: 4, Workers: 2}, idx, rules.DefaultGCHomopolymer().Rule(), 1, 1)
	require.NoError(t, err)
	c, err := New(Options{TargetLength: 60, GCCorrections: 2, Transform: dc})
	require.NoError(t, err)
	require.Equal(t, 60-dc.Overhead()-2-1-2, c.SplitLen())

	seq := dna.Random(300, 0.5, rand.New(rand.NewSource(3)))
	units, err := c.Encode(seq)
	require.NoError(t, err)
	for _, u := range units {
		require.Len(t, u, 60)
	}
	got, err := c.Decode(units)
	require.NoError(t, err)
	require.True(t, got.Equal(seq))
}

func TestIdentity(t *testing.T) {
	seq := dna.MustParse("ACGT")
	units, err := Identity{}.Encode(seq)
	require.NoError(t, err)
	require.Len(t, units, 1)
	got, err := Identity{}.Decode(units)
	require.NoError(t, err)
	require.True(t, got.Equal(seq))
}

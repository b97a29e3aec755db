package rules

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Observe-l/dnastore/dna"
)

func TestGCHomopolymer(t *testing.T) {
	g := DefaultGCHomopolymer()
	require.Zero(t, g.Eval(dna.MustParse("ACGTACGTAC")))
	require.Greater(t, g.Eval(dna.MustParse("AAAAAAAATT")), 0.0)
	require.Greater(t, g.Eval(dna.MustParse("GGGGGGGGGG")), g.Eval(dna.MustParse("GCGCGCGCGC")))
	require.LessOrEqual(t, g.Eval(dna.MustParse("GGGGGGGGGGGGGGGGGGGGGGGGGGGGG")), 1.0)
	require.Zero(t, g.Eval(nil))
}

func TestGCHomopolymerIndependentOfLength(t *testing.T) {
	g := DefaultGCHomopolymer()
	rng := rand.New(rand.NewSource(11))
	mean := func(n int) float64 {
		var sum float64
		for i := 0; i < 20; i++ {
			sum += g.Eval(dna.Random(n, 0.5, rng))
		}
		return sum / 20
	}
	short, long := mean(200), mean(5000)
	require.Less(t, long, 0.5)
	require.InDelta(t, short, long, 0.05)
	require.True(t, Threshold(g.Rule(), 0.6)(dna.Random(5000, 0.5, rng)))

	// one long run in a balanced strand is diluted, not saturated
	seq := dna.Random(1000, 0.5, rng)
	for i := 100; i < 110; i++ {
		seq[i] = dna.A
	}
	require.Less(t, g.Eval(seq), 0.5)
}

func TestThreshold(t *testing.T) {
	p := Threshold(DefaultGCHomopolymer().Rule(), 0.05)
	require.True(t, p(dna.MustParse("ACGTACGT")))
	require.False(t, p(dna.MustParse("AAAAAAAAAAAA")))
	require.True(t, Threshold(nil, 0)(dna.MustParse("AAAAAAAA")))
}

func TestSum(t *testing.T) {
	half := func(dna.Sequence) float64 { return 0.6 }
	require.Equal(t, 1.0, Sum(half, half)(nil))
	require.Equal(t, 0.6, Sum(half, Zero)(nil))
}

package codec

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Observe-l/dnastore/dna"
	"github.com/Observe-l/dnastore/fecdna"
	"github.com/Observe-l/dnastore/internal/bitbuf"
	"github.com/Observe-l/dnastore/internal/config"
)

func TestIdentityPipelineRoundtrip(t *testing.T) {
	p, err := New(Options{Fountain: fecdna.Options{SymbolSize: 8}})
	require.NoError(t, err)
	defer p.Close()

	data := []byte("the quick brown fox jumps over the lazy dog")
	units, err := p.Encode(data)
	require.NoError(t, err)
	require.Len(t, units, 1)
	got, err := p.Decode(units)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestCompressedSegmentedRoundtrip(t *testing.T) {
	cfg := config.Default()
	cfg.Compress = true
	cfg.Segmentation.Enabled = true
	cfg.Segmentation.Permute = true
	cfg.Segmentation.TargetLength = 80
	cfg.LSH.K, cfg.LSH.R, cfg.LSH.B = 4, 20, 5
	cfg.Permutation.Candidates = 4
	cfg.Fountain.SymbolSize = 16
	require.NoError(t, cfg.Validate())

	p, err := NewFromConfig(cfg, nil)
	require.NoError(t, err)
	defer p.Close()

	data := bytes.Repeat([]byte("ACGT storage "), 40)
	units, err := p.Encode(data)
	require.NoError(t, err)
	require.Greater(t, len(units), 1)
	for _, u := range units {
		require.Len(t, u, 80)
	}
	got, err := p.Decode(units)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestStrandRuleBelowOneRoundtrips(t *testing.T) {
	cfg := config.Default()
	cfg.Segmentation.Enabled = true
	cfg.Segmentation.Permute = true
	cfg.Rules.MaxStrandError = 0.6
	require.NoError(t, cfg.Validate())

	p, err := NewFromConfig(cfg, nil)
	require.NoError(t, err)
	defer p.Close()

	data := make([]byte, 500)
	rand.New(rand.NewSource(4)).Read(data)
	units, err := p.Encode(data)
	require.NoError(t, err)
	got, err := p.Decode(units)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestIncompressibleStoredRaw(t *testing.T) {
	p, err := New(Options{Compress: true})
	require.NoError(t, err)
	defer p.Close()

	data := make([]byte, 64)
	rand.New(rand.NewSource(1)).Read(data)
	w := p.wrap(data)
	require.Len(t, w, len(data)+2)
	require.Zero(t, w[1]&0x80, "compressed bit set on raw frame")
	back, err := p.unwrap(w)
	require.NoError(t, err)
	require.Equal(t, data, back)

	_, err = p.unwrap([]byte{9, 1})
	require.ErrorIs(t, err, dna.ErrMalformed)
	_, err = p.unwrap(nil)
	require.ErrorIs(t, err, dna.ErrMalformed)
}

func TestCompressedFrame(t *testing.T) {
	p, err := New(Options{Compress: true})
	require.NoError(t, err)
	defer p.Close()

	data := bytes.Repeat([]byte("ACGT storage "), 40)
	w := p.wrap(data)
	require.Less(t, len(w), len(data))
	require.NotZero(t, w[1]&0x80)
	back, err := p.unwrap(w)
	require.NoError(t, err)
	require.Equal(t, data, back)

	var buf bitbuf.Buffer
	buf.AppendBit(true)
	require.NoError(t, buf.AppendString("lz4"))
	buf.AppendBytes([]byte{1, 2, 3})
	_, err = p.unwrap(buf.WithBytePadding().Bytes())
	require.ErrorIs(t, err, errUnknownMethod)
	require.ErrorIs(t, err, dna.ErrMalformed)
}

func TestEncodeAll(t *testing.T) {
	p, err := New(Options{Workers: 3, Fountain: fecdna.Options{SymbolSize: 4}})
	require.NoError(t, err)
	defer p.Close()

	payloads := make([][]byte, 10)
	r := rand.New(rand.NewSource(2))
	for i := range payloads {
		payloads[i] = make([]byte, 8+i*3)
		r.Read(payloads[i])
	}
	seen := make(map[int]bool)
	for res := range p.EncodeAll(context.Background(), payloads) {
		require.NoError(t, res.Err)
		got, err := p.Decode(res.Units)
		require.NoError(t, err)
		require.Equal(t, payloads[res.Index], got)
		seen[res.Index] = true
	}
	require.Len(t, seen, len(payloads))
}

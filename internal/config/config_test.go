package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Observe-l/dnastore/dna"
)

func TestDefaults(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	require.Equal(t, "rotating", c.Converter)
	require.Equal(t, 200, c.LSH.R)
	require.Equal(t, 64, c.Fountain.MaxOrderings)
	require.Equal(t, 0.4, c.Rules.MinGC)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dnastore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
converter: naive
compress: true
lsh:
  k: 4
  r: 20
  b: 5
segmentation:
  enabled: true
  target_length: 120
  permute: true
fountain:
  symbol_size: 16
  overhead: 2
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "naive", c.Converter)
	require.True(t, c.Compress)
	require.Equal(t, 4, c.LSH.K)
	require.Equal(t, 120, c.Segmentation.TargetLength)
	require.True(t, c.Segmentation.Permute)
	require.Equal(t, 16, c.Fountain.SymbolSize)
	require.Equal(t, 8, c.Permutation.Candidates)
}

func TestInvalid(t *testing.T) {
	_, err := Parse([]byte("lsh: {r: 21, b: 5}"))
	require.ErrorIs(t, err, dna.ErrInvalidConfig)
	_, err = Parse([]byte("converter: huffman"))
	require.ErrorIs(t, err, dna.ErrInvalidConfig)
	_, err = Parse([]byte("rules: {min_gc: 0.7, max_gc: 0.3}"))
	require.ErrorIs(t, err, dna.ErrInvalidConfig)
	_, err = Parse([]byte("lsh: [1, 2]"))
	require.ErrorIs(t, err, dna.ErrInvalidConfig)
	_, err = Parse([]byte("fountain: {symbols: 3}"))
	require.ErrorIs(t, err, dna.ErrInvalidConfig)

	c, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default().LSH, c.LSH)
}

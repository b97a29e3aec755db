// Package lsh is a banded min-hash index over the k-mers of DNA sequences.
//
// The index is append-only. Insert and Similar are unsynchronized; the Safe
// variants take one reader/writer lock per band. A multi-band InsertSafe
// locks and releases each band in turn, so a concurrent reader may see a
// sequence in some bands and not yet in others.
package lsh

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Observe-l/dnastore/dna"
	"github.com/Observe-l/dnastore/internal/metrics"
	"github.com/Observe-l/dnastore/permute"
)

// MaxK is the longest k-mer the index can project.
const MaxK = dna.MaxBase4Len

// Config sizes an index. R must be a multiple of B.
type Config struct {
	K    int    // k-mer length
	R    int    // number of hash functions
	B    int    // number of bands
	Seed uint64 // seed for the hash function parameters
}

func (c *Config) setDefaults() {
	if c.K == 0 {
		c.K = 6
	}
	if c.R == 0 {
		c.R = 200
	}
	if c.B == 0 {
		c.B = 20
	}
}

func (c Config) validate() error {
	switch {
	case c.K < 1 || c.K > MaxK:
		return fmt.Errorf("lsh: k=%d outside [1,%d]: %w", c.K, MaxK, dna.ErrInvalidConfig)
	case c.R < 1 || c.B < 1:
		return fmt.Errorf("lsh: r=%d b=%d must be positive: %w", c.R, c.B, dna.ErrInvalidConfig)
	case c.R%c.B != 0:
		return fmt.Errorf("lsh: r=%d is not a multiple of b=%d: %w", c.R, c.B, dna.ErrInvalidConfig)
	}
	return nil
}

// bucket keeps insertion order and drops structural duplicates.
type bucket struct {
	keys map[string]struct{}
	seqs []dna.Sequence
}

func (b *bucket) add(key string, seq dna.Sequence) {
	if _, ok := b.keys[key]; ok {
		return
	}
	b.keys[key] = struct{}{}
	b.seqs = append(b.seqs, seq)
}

type band struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
}

// Index is a min-hash LSH index.
type Index struct {
	k        int
	bandSize int
	perms    []hashPerm
	bands    []*band
}

// New builds an index. Zero fields in cfg take defaults (k=6, r=200, b=20).
func New(cfg Config) (*Index, error) {
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	r := permute.NewRand(cfg.Seed)
	idx := &Index{
		k:        cfg.K,
		bandSize: cfg.R / cfg.B,
		perms:    make([]hashPerm, cfg.R),
		bands:    make([]*band, cfg.B),
	}
	for i := range idx.perms {
		idx.perms[i] = newHashPerm(2*cfg.K, r)
	}
	for i := range idx.bands {
		idx.bands[i] = &band{buckets: make(map[string]*bucket)}
	}
	return idx, nil
}

func (idx *Index) K() int { return idx.k }
func (idx *Index) R() int { return len(idx.perms) }
func (idx *Index) B() int { return len(idx.bands) }

// MinHashes returns the r min-hash values of seq's k-mers.
func (idx *Index) MinHashes(seq dna.Sequence) ([]uint64, error) {
	kmers, err := seq.Kmers(idx.k)
	if err != nil {
		return nil, fmt.Errorf("lsh: %w", err)
	}
	shingles := make([]uint64, len(kmers))
	for i, km := range kmers {
		shingles[i] = km.Base4()
	}
	out := make([]uint64, len(idx.perms))
	for i, p := range idx.perms {
		m := ^uint64(0)
		for _, s := range shingles {
			h := p.apply(s)
			if h == 0 {
				m = 0
				break
			}
			m = min(m, h)
		}
		out[i] = m
	}
	return out, nil
}

// Signatures returns one signature string per band.
func (idx *Index) Signatures(seq dna.Sequence) ([]string, error) {
	mh, err := idx.MinHashes(seq)
	if err != nil {
		return nil, err
	}
	sigs := make([]string, len(idx.bands))
	var sb strings.Builder
	for b := range sigs {
		sb.Reset()
		for i, v := range mh[b*idx.bandSize : (b+1)*idx.bandSize] {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.FormatUint(v, 10))
		}
		sigs[b] = sb.String()
	}
	return sigs, nil
}

func (b *band) add(sig, key string, seq dna.Sequence) {
	bk := b.buckets[sig]
	if bk == nil {
		bk = &bucket{keys: make(map[string]struct{})}
		b.buckets[sig] = bk
	}
	bk.add(key, seq)
}

// Insert files seq under every band. Not safe for concurrent use.
func (idx *Index) Insert(seq dna.Sequence) error {
	sigs, err := idx.Signatures(seq)
	if err != nil {
		return err
	}
	key := seq.String()
	for i, b := range idx.bands {
		b.add(sigs[i], key, seq)
	}
	metrics.LSHInserts.Inc()
	return nil
}

// InsertSafe is Insert under per-band write locks.
func (idx *Index) InsertSafe(seq dna.Sequence) error {
	sigs, err := idx.Signatures(seq)
	if err != nil {
		return err
	}
	key := seq.String()
	for i, b := range idx.bands {
		b.mu.Lock()
		b.add(sigs[i], key, seq)
		b.mu.Unlock()
	}
	metrics.LSHInserts.Inc()
	return nil
}

// InsertAll inserts seqs concurrently with at most workers goroutines
// (workers <= 0 means unbounded). It stops at the first error.
func (idx *Index) InsertAll(ctx context.Context, seqs []dna.Sequence, workers int) error {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, seq := range seqs {
		if ctx.Err() != nil {
			break
		}
		seq := seq
		g.Go(func() error { return idx.InsertSafe(seq) })
	}
	return g.Wait()
}

// Similar returns the union of the buckets seq maps to, stopping once maxCount
// distinct sequences are collected (maxCount <= 0 means no cap). Not safe for
// concurrent use with inserts.
func (idx *Index) Similar(seq dna.Sequence, maxCount int) ([]dna.Sequence, error) {
	return idx.similar(seq, maxCount, false)
}

// SimilarSafe is Similar under per-band read locks.
func (idx *Index) SimilarSafe(seq dna.Sequence, maxCount int) ([]dna.Sequence, error) {
	return idx.similar(seq, maxCount, true)
}

func (idx *Index) similar(seq dna.Sequence, maxCount int, safe bool) ([]dna.Sequence, error) {
	sigs, err := idx.Signatures(seq)
	if err != nil {
		return nil, err
	}
	metrics.LSHQueries.Inc()
	seen := make(map[string]struct{})
	var out []dna.Sequence
	for i, b := range idx.bands {
		if safe {
			b.mu.RLock()
		}
		if bk := b.buckets[sigs[i]]; bk != nil {
			for _, s := range bk.seqs {
				key := s.String()
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				out = append(out, s)
			}
		}
		if safe {
			b.mu.RUnlock()
		}
		if maxCount > 0 && len(out) >= maxCount {
			break
		}
	}
	return out, nil
}

// Package permute generates reproducible Fisher-Yates permutations from a
// 64-bit seed.
package permute

import (
	"encoding/binary"
	"math"
	"math/bits"

	"github.com/zeebo/blake3"
)

// Rand is a deterministic generator over the BLAKE3 extendable output of a
// seed. The stream for a given seed is fixed across runs and platforms.
// It is not safe for concurrent use.
type Rand struct {
	xof *blake3.Digest
	buf [64]byte
	off int
}

// NewRand seeds a generator.
func NewRand(seed uint64) *Rand {
	h := blake3.New()
	var key [8]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	_, _ = h.Write(key[:])
	r := &Rand{xof: h.Digest()}
	r.off = len(r.buf)
	return r
}

func (r *Rand) Uint64() uint64 {
	if r.off+8 > len(r.buf) {
		_, _ = r.xof.Read(r.buf[:])
		r.off = 0
	}
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Intn returns a value in [0, n). It panics if n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		panic("permute: Intn with n <= 0")
	}
	bound := uint64(n)
	// Lemire multiply-and-reject.
	hi, lo := bits.Mul64(r.Uint64(), bound)
	if lo < bound {
		thresh := -bound % bound
		for lo < thresh {
			hi, lo = bits.Mul64(r.Uint64(), bound)
		}
	}
	return int(hi)
}

// Choose returns a value in [lo, hi] inclusive.
func (r *Rand) Choose(lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}

// Odd returns a random odd value below 2^bits (bits in 1..64).
func (r *Rand) Odd(nbits int) uint64 {
	v := r.Uint64() | 1
	if nbits < 64 {
		v &= math.MaxUint64 >> (64 - nbits)
	}
	return v
}

package lsh

import (
	"math"

	"github.com/Observe-l/dnastore/permute"
)

// hashPerm is a bijection on [0, 2^bits): an odd multiply-add, a
// xor-shift, and a second odd multiply, all modulo 2^bits.
type hashPerm struct {
	a1, a2, c uint64
	shift     uint
	mask      uint64
}

func newHashPerm(bits int, r *permute.Rand) hashPerm {
	return hashPerm{
		a1:    r.Odd(bits),
		a2:    r.Odd(bits),
		c:     r.Uint64() & maskFor(bits),
		shift: uint(max(1, bits/2)),
		mask:  maskFor(bits),
	}
}

func maskFor(bits int) uint64 {
	if bits >= 64 {
		return math.MaxUint64
	}
	return 1<<uint(bits) - 1
}

func (p hashPerm) apply(x uint64) uint64 {
	x = (x*p.a1 + p.c) & p.mask
	x ^= x >> p.shift
	return (x * p.a2) & p.mask
}

// Package bitbuf is an append-only bit buffer with typed appends and
// sub-range extraction. Bits are stored most significant first.
package bitbuf

import (
	"errors"
	"fmt"
)

var (
	errRange     = errors.New("bitbuf: range out of bounds")
	errStringLen = errors.New("bitbuf: string longer than 65535 bytes")
	errPadding   = errors.New("bitbuf: bad padding")
)

// Buffer holds n bits in b. The zero value is an empty buffer.
type Buffer struct {
	b []byte
	n int
}

// FromBytes wraps a copy of p as a buffer of 8*len(p) bits.
func FromBytes(p []byte) *Buffer {
	return &Buffer{b: append([]byte(nil), p...), n: len(p) * 8}
}

// Len returns the number of bits held.
func (buf *Buffer) Len() int { return buf.n }

// Bytes returns the backing bytes; trailing bits of the last byte are zero.
func (buf *Buffer) Bytes() []byte { return buf.b[:(buf.n+7)/8] }

func (buf *Buffer) AppendBit(v bool) {
	if buf.n%8 == 0 {
		buf.b = append(buf.b, 0)
	}
	if v {
		buf.b[buf.n/8] |= 0x80 >> (buf.n % 8)
	}
	buf.n++
}

// AppendBits appends the low n bits of v, most significant first.
func (buf *Buffer) AppendBits(v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		buf.AppendBit(v>>i&1 == 1)
	}
}

func (buf *Buffer) AppendUint8(v uint8)   { buf.AppendBits(uint64(v), 8) }
func (buf *Buffer) AppendUint16(v uint16) { buf.AppendBits(uint64(v), 16) }

func (buf *Buffer) AppendBytes(p []byte) {
	if buf.n%8 == 0 {
		buf.b = append(buf.b[:buf.n/8], p...)
		buf.n += len(p) * 8
		return
	}
	for _, v := range p {
		buf.AppendUint8(v)
	}
}

// AppendString writes a 16-bit length prefix followed by the bytes of s.
func (buf *Buffer) AppendString(s string) error {
	if len(s) > 0xffff {
		return errStringLen
	}
	buf.AppendUint16(uint16(len(s)))
	buf.AppendBytes([]byte(s))
	return nil
}

func (buf *Buffer) AppendBuffer(o *Buffer) {
	for i := 0; i < o.n; i++ {
		buf.AppendBit(o.bit(i))
	}
}

func (buf *Buffer) bit(i int) bool { return buf.b[i/8]&(0x80>>(i%8)) != 0 }

// Bit returns bit i.
func (buf *Buffer) Bit(i int) (bool, error) {
	if i < 0 || i >= buf.n {
		return false, errRange
	}
	return buf.bit(i), nil
}

// Uint reads bits [from, to) as an unsigned integer. At most 64 bits.
func (buf *Buffer) Uint(from, to int) (uint64, error) {
	if from < 0 || to > buf.n || from > to || to-from > 64 {
		return 0, fmt.Errorf("%w: [%d,%d) of %d", errRange, from, to, buf.n)
	}
	var v uint64
	for i := from; i < to; i++ {
		v <<= 1
		if buf.bit(i) {
			v |= 1
		}
	}
	return v, nil
}

// Sub copies bits [from, to) into a new buffer.
func (buf *Buffer) Sub(from, to int) (*Buffer, error) {
	if from < 0 || to > buf.n || from > to {
		return nil, fmt.Errorf("%w: [%d,%d) of %d", errRange, from, to, buf.n)
	}
	out := &Buffer{b: make([]byte, 0, (to-from+7)/8)}
	for i := from; i < to; i++ {
		out.AppendBit(buf.bit(i))
	}
	return out, nil
}

// ReadBytes reads whole bytes from bit offset from; (to-from) must be a
// multiple of 8.
func (buf *Buffer) ReadBytes(from, to int) ([]byte, error) {
	if (to-from)%8 != 0 {
		return nil, fmt.Errorf("%w: %d bits are not whole bytes", errRange, to-from)
	}
	sub, err := buf.Sub(from, to)
	if err != nil {
		return nil, err
	}
	return sub.Bytes(), nil
}

// ReadString reads a string written by AppendString at bit offset from and
// returns it with the offset following it.
func (buf *Buffer) ReadString(from int) (string, int, error) {
	n, err := buf.Uint(from, from+16)
	if err != nil {
		return "", 0, err
	}
	end := from + 16 + int(n)*8
	p, err := buf.ReadBytes(from+16, end)
	if err != nil {
		return "", 0, err
	}
	return string(p), end, nil
}

// Digits splits the buffer into base-4 digits, two bits each. An odd
// trailing bit is padded with zero.
func (buf *Buffer) Digits() []byte {
	out := make([]byte, 0, (buf.n+1)/2)
	for i := 0; i < buf.n; i += 2 {
		d := byte(0)
		if buf.bit(i) {
			d = 2
		}
		if i+1 < buf.n && buf.bit(i+1) {
			d |= 1
		}
		out = append(out, d)
	}
	return out
}

// FromDigits rebuilds a buffer of 2*len(digits) bits.
func FromDigits(digits []byte) *Buffer {
	buf := &Buffer{b: make([]byte, 0, (len(digits)+3)/4)}
	for _, d := range digits {
		buf.AppendBits(uint64(d&3), 2)
	}
	return buf
}

// WithBytePadding returns a byte-aligned copy laid out as
// [pad:8][bits][zeros:pad] where pad is in 1..8, so the original bit length
// can always be recovered by WithoutBytePadding.
func (buf *Buffer) WithBytePadding() *Buffer {
	pad := 8 - buf.n%8
	out := &Buffer{b: make([]byte, 0, buf.n/8+3)}
	out.AppendUint8(uint8(pad))
	out.AppendBuffer(buf)
	out.AppendBits(0, pad)
	return out
}

// WithoutBytePadding inverts WithBytePadding.
func (buf *Buffer) WithoutBytePadding() (*Buffer, error) {
	pad, err := buf.Uint(0, 8)
	if err != nil {
		return nil, err
	}
	if pad < 1 || pad > 8 || buf.n < 8+int(pad) {
		return nil, fmt.Errorf("%w: %d", errPadding, pad)
	}
	return buf.Sub(8, buf.n-int(pad))
}

package bitbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestAppendsAndReads(t *testing.T) {
	var b Buffer
	b.AppendBit(true)
	b.AppendBits(0xa5, 8)
	b.AppendBits(0xbeef, 16)
	b.AppendBits(0xdeadbeef, 32)
	require.Equal(t, 1+8+16+32, b.Len())

	v, err := b.Uint(0, 1)
	require.NoError(t, err)
	require.EqualValues(t, 1, v)
	v, err = b.Uint(1, 9)
	require.NoError(t, err)
	require.EqualValues(t, 0xa5, v)
	v, err = b.Uint(9, 25)
	require.NoError(t, err)
	require.EqualValues(t, 0xbeef, v)
	v, err = b.Uint(25, 57)
	require.NoError(t, err)
	require.EqualValues(t, uint32(0xdeadbeef), v)

	_, err = b.Uint(0, b.Len()+1)
	require.Error(t, err)
	_, err = b.Uint(5, 4)
	require.Error(t, err)
}

func TestStringsAndBytes(t *testing.T) {
	var b Buffer
	b.AppendBit(true)
	require.NoError(t, b.AppendString("dna"))
	b.AppendBytes([]byte{1, 2, 3})
	require.Equal(t, 1+16+24+24, b.Len())

	bit, err := b.Bit(0)
	require.NoError(t, err)
	require.True(t, bit)
	_, err = b.Bit(b.Len())
	require.Error(t, err)

	s, off, err := b.ReadString(1)
	require.NoError(t, err)
	require.Equal(t, "dna", s)
	p, err := b.ReadBytes(off, off+24)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, p)
	_, err = b.ReadBytes(off, off+7)
	require.Error(t, err)

	var long Buffer
	require.Error(t, long.AppendString(string(make([]byte, 1<<16))))
	require.Zero(t, long.Len())
}

func TestBytePaddingRecoversLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 200).Draw(t, "bits")
		var b Buffer
		for i := 0; i < n; i++ {
			b.AppendBit(rapid.Bool().Draw(t, "bit"))
		}
		padded := b.WithBytePadding()
		if padded.Len()%8 != 0 {
			t.Fatalf("padded length %d not byte aligned", padded.Len())
		}
		back, err := FromBytes(padded.Bytes()).WithoutBytePadding()
		if err != nil {
			t.Fatal(err)
		}
		if back.Len() != n {
			t.Fatalf("len=%d want %d", back.Len(), n)
		}
		for i := 0; i < n; i++ {
			if back.bit(i) != b.bit(i) {
				t.Fatalf("bit %d differs", i)
			}
		}
	})
}

func TestBadPaddingRejected(t *testing.T) {
	_, err := FromBytes([]byte{0, 0xff}).WithoutBytePadding()
	require.Error(t, err)
	_, err = FromBytes([]byte{9, 0xff}).WithoutBytePadding()
	require.Error(t, err)
	_, err = FromBytes(nil).WithoutBytePadding()
	require.Error(t, err)
}

func TestDigitsRoundtrip(t *testing.T) {
	var b Buffer
	b.AppendBits(0x1be4, 16)
	d := b.Digits()
	require.Equal(t, []byte{0, 1, 2, 3, 3, 2, 1, 0}, d)
	require.Equal(t, b.Bytes(), FromDigits(d).Bytes())
}

func TestOddBitsPadDigit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 64).Draw(t, "bits")
		v := rapid.Uint64().Draw(t, "v")
		if n < 64 {
			v &= 1<<uint(n) - 1
		}
		var b Buffer
		b.AppendBits(v, n)
		d := b.Digits()
		if len(d) != (n+1)/2 {
			t.Fatalf("%d digits for %d bits", len(d), n)
		}
		back := FromDigits(d)
		got, err := back.Uint(0, n)
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Fatalf("got %x want %x", got, v)
		}
	})
}

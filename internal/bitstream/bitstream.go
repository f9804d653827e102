// Package bitstream converts between byte slices, bit sequences and
// fixed-width unsigned integers. Bits are always ordered MSB first.
package bitstream

import (
	"fmt"
	"strings"
)

// Bits is an ordered sequence of bits, one per element, each 0 or 1.
type Bits []uint8

// FromBytes expands data into its bits, most significant bit of each byte first.
func FromBytes(data []byte) Bits {
	bits := make(Bits, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>uint(i))&1)
		}
	}
	return bits
}

// Bytes packs the bits into bytes. A final partial byte is zero-padded
// on the right.
func (b Bits) Bytes() []byte {
	out := make([]byte, (len(b)+7)/8)
	for i, bit := range b {
		if bit != 0 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

// FromUint renders the low width bits of n, most significant first.
// Higher bits of n are discarded.
func FromUint(n uint64, width int) Bits {
	bits := make(Bits, width)
	for i := 0; i < width; i++ {
		shift := uint(width - 1 - i)
		if shift < 64 {
			bits[i] = uint8((n >> shift) & 1)
		}
	}
	return bits
}

// Uint interprets the bits as an unsigned binary number, most significant first.
// Only the last 64 bits contribute to the result.
func (b Bits) Uint() uint64 {
	var n uint64
	for _, bit := range b {
		n = n<<1 | uint64(bit&1)
	}
	return n
}

// Fits reports whether n can be represented in width bits.
func Fits(n uint64, width int) bool {
	if width >= 64 {
		return true
	}
	return n < 1<<uint(width)
}

// Concat returns a new sequence holding a followed by rest.
func Concat(a Bits, rest ...Bits) Bits {
	size := len(a)
	for _, r := range rest {
		size += len(r)
	}
	out := make(Bits, 0, size)
	out = append(out, a...)
	for _, r := range rest {
		out = append(out, r...)
	}
	return out
}

// String renders the bits as a string of '0' and '1' characters.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, bit := range b {
		sb.WriteByte('0' + bit&1)
	}
	return sb.String()
}

// Parse reads a string of '0' and '1' characters.
func Parse(s string) (Bits, error) {
	bits := make(Bits, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			bits[i] = 1
		default:
			return nil, fmt.Errorf("invalid bit %q at offset %d", s[i], i)
		}
	}
	return bits, nil
}

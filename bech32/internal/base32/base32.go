// Package base32 regroups 8-bit bytes into the 5-bit groups bech32 encodes
// its data part with. It is not RFC 4648 base32.
package base32

import "github.com/iotaledger/hive.go/ierrors"

// CorruptInputError is returned by Decode when src contains a non-zero
// padding bit that should have been zero.
type CorruptInputError struct {
	Offset int
}

func (e *CorruptInputError) Error() string {
	return "base32: illegal padding bit"
}

func (e *CorruptInputError) Unwrap() error {
	return ierrors.Errorf("illegal padding bit at byte offset %d", e.Offset)
}

// EncodedLen returns the number of 5-bit groups needed to hold n bytes.
func EncodedLen(n int) int {
	return (n*8 + 4) / 5
}

// DecodedLen returns the maximum number of bytes n 5-bit groups decode to.
func DecodedLen(n int) int {
	return n * 5 / 8
}

// Encode regroups src (8-bit groups) into 5-bit groups and writes them,
// one group per byte, into dst. len(dst) must be >= EncodedLen(len(src)).
func Encode(dst, src []byte) {
	var acc uint32
	var bits uint
	pos := 0

	for _, b := range src {
		acc = acc<<8 | uint32(b)
		bits += 8

		for bits >= 5 {
			bits -= 5
			dst[pos] = byte(acc>>bits) & 31
			pos++
		}
	}

	if bits > 0 {
		dst[pos] = byte(acc<<(5-bits)) & 31
		pos++
	}
}

// Decode regroups src (5-bit groups, one per byte) back into 8-bit bytes,
// written into dst. Returns the number of bytes written.
func Decode(dst, src []byte) (int, error) {
	var acc uint32
	var bits uint
	pos := 0

	for _, v := range src {
		acc = acc<<5 | uint32(v)
		bits += 5

		for bits >= 8 {
			bits -= 8
			dst[pos] = byte(acc >> bits)
			pos++
		}
	}

	if bits >= 5 || byte(acc<<(8-bits))&0xff != 0 {
		return pos, &CorruptInputError{Offset: len(src) - 1}
	}

	return pos, nil
}

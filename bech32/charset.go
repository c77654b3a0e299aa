package bech32

import "github.com/iotaledger/hive.go/ierrors"

// encoding maps 5-bit values (0-31) to and from the bech32 alphabet.
type encoding struct {
	encodeTable [32]byte
	decodeTable [256]int8
}

func newEncoding(chars string) *encoding {
	if len(chars) != 32 {
		panic("bech32: charset must be exactly 32 characters")
	}

	enc := &encoding{}
	for i := range enc.decodeTable {
		enc.decodeTable[i] = -1
	}
	for i := 0; i < 32; i++ {
		enc.encodeTable[i] = chars[i]
		enc.decodeTable[chars[i]] = int8(i)
	}

	return enc
}

// encode maps every 5-bit value (0-31) in data to its alphabet character.
func (enc *encoding) encode(data []byte) string {
	out := make([]byte, len(data))
	for i, v := range data {
		out[i] = enc.encodeTable[v]
	}

	return string(out)
}

// decode maps every character of s back to its 5-bit value.
func (enc *encoding) decode(s string) ([]byte, error) {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		v := enc.decodeTable[s[i]]
		if v == -1 {
			return out[:i], ierrors.Errorf("invalid charset character %q at index %d", s[i], i)
		}
		out[i] = byte(v)
	}

	return out, nil
}

package bech32

import "github.com/iotaledger/hive.go/ierrors"

var (
	// ErrInvalidLength gets returned when a bech32 string has an invalid length.
	ErrInvalidLength = ierrors.New("invalid bech32 string length")
	// ErrInvalidCharacter gets returned when a bech32 string contains a character outside its alphabet.
	ErrInvalidCharacter = ierrors.New("invalid character")
	// ErrMissingSeparator gets returned when a bech32 string is missing its "1" separator.
	ErrMissingSeparator = ierrors.New("missing separator character")
	// ErrInvalidSeparator gets returned when the separator is at an invalid position.
	ErrInvalidSeparator = ierrors.New("invalid separator position")
	// ErrInvalidChecksum gets returned when the checksum of a bech32 string does not verify.
	ErrInvalidChecksum = ierrors.New("invalid checksum")
	// ErrMixedCase gets returned when a bech32 string mixes upper and lower case characters.
	ErrMixedCase = ierrors.New("string not all same case")
)

// SyntaxError reports an error and the position it occurred on.
type SyntaxError struct {
	error
	Offset int
}

func (e *SyntaxError) Unwrap() error {
	return e.error
}

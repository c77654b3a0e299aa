package iotago

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/iotaledger/hive.go/ierrors"
)

// AliasIDLength is the byte length of an AliasID.
const AliasIDLength = blake2b.Size256

// EmptyAliasID denotes an AliasID that has not been created on-chain yet,
// i.e. an Alias output in genesis form (spec.md §3 invariant).
var EmptyAliasID = AliasID{}

// ErrInvalidAliasIDLength gets returned when a byte slice does not have AliasIDLength bytes.
var ErrInvalidAliasIDLength = ierrors.New("invalid AliasID length")

// AliasID is the 32 byte identifier of an AliasOutput, derived by hashing the
// OutputID of the output that created it.
type AliasID [AliasIDLength]byte

// AliasIDFromOutputID derives the AliasID that an Alias created by the given
// OutputID will carry on its first transition.
func AliasIDFromOutputID(outputID OutputID) AliasID {
	return blake2b.Sum256(outputID[:])
}

// Empty reports whether this is the zeroed, not-yet-created AliasID.
func (id AliasID) Empty() bool {
	return id == EmptyAliasID
}

// ToAddress returns the AliasAddress belonging to this AliasID.
func (id AliasID) ToAddress() *AliasAddress {
	return &AliasAddress{id: id}
}

func (id AliasID) String() string {
	return hexutil.Encode(id[:])
}

func (id AliasID) MarshalText() ([]byte, error) {
	dst := make([]byte, hex.EncodedLen(len(id)))
	hex.Encode(dst, id[:])

	return dst, nil
}

func (id *AliasID) UnmarshalText(text []byte) error {
	_, err := hex.Decode(id[:], text)

	return err
}

// AliasIDFromBytes reads an AliasID from the given byte slice.
func AliasIDFromBytes(b []byte) (AliasID, int, error) {
	var id AliasID
	if len(b) < AliasIDLength {
		return id, 0, ErrInvalidAliasIDLength
	}
	copy(id[:], b)

	return id, AliasIDLength, nil
}

// NFTIDLength is the byte length of an NFTID.
const NFTIDLength = blake2b.Size256

// EmptyNFTID denotes an NFTID that has not been created on-chain yet.
var EmptyNFTID = NFTID{}

// ErrInvalidNFTIDLength gets returned when a byte slice does not have NFTIDLength bytes.
var ErrInvalidNFTIDLength = ierrors.New("invalid NFTID length")

// NFTID is the 32 byte identifier of an NFTOutput, derived the same way as AliasID.
type NFTID [NFTIDLength]byte

// NFTIDFromOutputID derives the NFTID that an NFT created by the given OutputID will carry.
func NFTIDFromOutputID(outputID OutputID) NFTID {
	return blake2b.Sum256(outputID[:])
}

// Empty reports whether this is the zeroed, not-yet-created NFTID.
func (id NFTID) Empty() bool {
	return id == EmptyNFTID
}

// ToAddress returns the NFTAddress belonging to this NFTID.
func (id NFTID) ToAddress() *NFTAddress {
	return &NFTAddress{id: id}
}

func (id NFTID) String() string {
	return hexutil.Encode(id[:])
}

// NFTIDFromBytes reads an NFTID from the given byte slice.
func NFTIDFromBytes(b []byte) (NFTID, int, error) {
	var id NFTID
	if len(b) < NFTIDLength {
		return id, 0, ErrInvalidNFTIDLength
	}
	copy(id[:], b)

	return id, NFTIDLength, nil
}

// FoundryID uniquely identifies a Foundry by the AliasID controlling it, its
// serial number, and its token scheme type, all of which are immutable
// across the Foundry's lifetime (spec.md §3).
type FoundryID struct {
	Alias        AliasID
	SerialNumber uint32
	TokenScheme  TokenSchemeType
}

func (id FoundryID) String() string {
	return hexutil.Encode(id.Alias[:]) + "/" + hex.EncodeToString([]byte{byte(id.SerialNumber >> 24), byte(id.SerialNumber >> 16), byte(id.SerialNumber >> 8), byte(id.SerialNumber)})
}

// TokenID is the 38 byte identifier of a native token, scoped to the Foundry that minted it.
const TokenIDLength = 38

// TokenID identifies a native token (spec.md §3: 38-byte TokenId).
type TokenID [TokenIDLength]byte

func (id TokenID) String() string {
	return hexutil.Encode(id[:])
}

// TokenIDFromFoundryID derives the TokenID of the native tokens a Foundry controls.
func TokenIDFromFoundryID(id FoundryID) TokenID {
	var tokenID TokenID
	copy(tokenID[:], id.Alias[:])
	tokenID[AliasIDLength] = byte(id.TokenScheme)
	copy(tokenID[AliasIDLength+1:], []byte{
		byte(id.SerialNumber >> 24), byte(id.SerialNumber >> 16), byte(id.SerialNumber >> 8), byte(id.SerialNumber),
	})

	return tokenID
}

// OutputIDLength is the byte length of an OutputID (32 byte transaction ID + 2 byte index).
const OutputIDLength = 34

// OutputID references a specific output produced by a transaction.
type OutputID [OutputIDLength]byte

func (id OutputID) String() string {
	return hexutil.Encode(id[:])
}

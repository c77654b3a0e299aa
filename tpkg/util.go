// Package tpkg provides randomized test fixtures for the inputselection and
// vm/stardust packages.
package tpkg

import (
	"math/big"
	"math/rand"

	iotago "github.com/sl00k/iota-input-selection"

	"github.com/sl00k/iota-input-selection/builder"
)

// Must panics if the given error is not nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// RandBytes returns length amount random bytes.
func RandBytes(length int) []byte {
	b := make([]byte, length)
	_, err := rand.Read(b)
	Must(err)

	return b
}

// RandEd25519Address returns a random Ed25519Address.
func RandEd25519Address() *iotago.Ed25519Address {
	addr := &iotago.Ed25519Address{}
	copy(addr[:], RandBytes(32))

	return addr
}

// RandAliasID returns a random AliasID.
func RandAliasID() iotago.AliasID {
	var id iotago.AliasID
	copy(id[:], RandBytes(iotago.AliasIDLength))

	return id
}

// RandAliasAddress returns a random AliasAddress.
func RandAliasAddress() *iotago.AliasAddress {
	return iotago.NewAliasAddress(RandAliasID())
}

// RandNFTID returns a random NFTID.
func RandNFTID() iotago.NFTID {
	var id iotago.NFTID
	copy(id[:], RandBytes(iotago.NFTIDLength))

	return id
}

// RandNFTAddress returns a random NFTAddress.
func RandNFTAddress() *iotago.NFTAddress {
	return iotago.NewNFTAddress(RandNFTID())
}

// RandOutputID returns a random OutputID.
func RandOutputID() iotago.OutputID {
	var id iotago.OutputID
	copy(id[:], RandBytes(iotago.OutputIDLength))

	return id
}

// RandTokenID returns a random TokenID.
func RandTokenID() iotago.TokenID {
	var id iotago.TokenID
	copy(id[:], RandBytes(iotago.TokenIDLength))

	return id
}

// RandNativeToken returns a random NativeToken with an amount below max.
func RandNativeToken() *iotago.NativeToken {
	return &iotago.NativeToken{
		ID:     RandTokenID(),
		Amount: big.NewInt(int64(rand.Intn(10000) + 1)),
	}
}

// RandBasicOutput returns a random BasicOutput unlocked by an Ed25519Address.
func RandBasicOutput(amount iotago.BaseToken) *iotago.BasicOutput {
	return builder.NewBasicOutputBuilder(RandEd25519Address(), amount).MustBuild()
}

// RandAliasOutput returns a random, freshly-created (genesis) AliasOutput
// controlled by two random Ed25519 addresses.
func RandAliasOutput(amount iotago.BaseToken) *iotago.AliasOutput {
	return builder.NewAliasOutputBuilder(RandEd25519Address(), RandEd25519Address(), amount).MustBuild()
}

// RandNFTOutput returns a random, freshly-created NFTOutput owned by a random
// Ed25519Address.
func RandNFTOutput(amount iotago.BaseToken) *iotago.NFTOutput {
	return builder.NewNFTOutputBuilder(RandEd25519Address(), amount).MustBuild()
}

// RandFoundryOutput returns a random FoundryOutput controlled by the given
// AliasAddress, with a SimpleTokenScheme that has plenty of headroom left to mint.
func RandFoundryOutput(alias *iotago.AliasAddress, amount iotago.BaseToken, serialNumber uint32) *iotago.FoundryOutput {
	return builder.NewFoundryOutputBuilder(alias, amount, serialNumber, big.NewInt(1_000_000)).MustBuild()
}

// ProtocolParameters returns a test V3ProtocolParameters with TestVByteCost
// rent weighting, small enough that hand-computed expected deposits in tests
// stay readable.
func ProtocolParameters() *iotago.V3ProtocolParameters {
	return iotago.NewV3ProtocolParameters(
		iotago.WithSupplyOptions(TestTokenSupply, TestVByteCost, 1, 10),
	)
}

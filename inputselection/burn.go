package inputselection

import (
	"math/big"

	iotago "github.com/sl00k/iota-input-selection"
)

// Burn declares the chain outputs and native tokens a transaction destroys
// rather than carries forward, so the selector knows not to require a
// continuation output for them (spec.md §4: Burn set).
type Burn struct {
	Aliases      map[iotago.AliasID]struct{}
	NFTs         map[iotago.NFTID]struct{}
	Foundries    map[iotago.FoundryID]struct{}
	NativeTokens map[iotago.TokenID]*big.Int
}

// NewBurn creates an empty Burn.
func NewBurn() *Burn {
	return &Burn{
		Aliases:      make(map[iotago.AliasID]struct{}),
		NFTs:         make(map[iotago.NFTID]struct{}),
		Foundries:    make(map[iotago.FoundryID]struct{}),
		NativeTokens: make(map[iotago.TokenID]*big.Int),
	}
}

// Alias marks the given AliasID for destruction.
func (b *Burn) Alias(id iotago.AliasID) *Burn {
	b.Aliases[id] = struct{}{}

	return b
}

// NFT marks the given NFTID for destruction.
func (b *Burn) NFT(id iotago.NFTID) *Burn {
	b.NFTs[id] = struct{}{}

	return b
}

// Foundry marks the given FoundryID for destruction.
func (b *Burn) Foundry(id iotago.FoundryID) *Burn {
	b.Foundries[id] = struct{}{}

	return b
}

// NativeToken marks amount of the given native token for melting.
func (b *Burn) NativeToken(id iotago.TokenID, amount *big.Int) *Burn {
	if existing, has := b.NativeTokens[id]; has {
		existing.Add(existing, amount)

		return b
	}
	b.NativeTokens[id] = new(big.Int).Set(amount)

	return b
}

// HasAlias reports whether id is marked for destruction.
func (b *Burn) HasAlias(id iotago.AliasID) bool {
	if b == nil {
		return false
	}
	_, has := b.Aliases[id]

	return has
}

// HasNFT reports whether id is marked for destruction.
func (b *Burn) HasNFT(id iotago.NFTID) bool {
	if b == nil {
		return false
	}
	_, has := b.NFTs[id]

	return has
}

// HasFoundry reports whether id is marked for destruction.
func (b *Burn) HasFoundry(id iotago.FoundryID) bool {
	if b == nil {
		return false
	}
	_, has := b.Foundries[id]

	return has
}

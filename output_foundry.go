package iotago

import (
	"math/big"

	"github.com/iotaledger/hive.go/ierrors"
)

// TokenSchemeType defines the type of TokenScheme.
type TokenSchemeType byte

const (
	// TokenSchemeSimple denotes a SimpleTokenScheme.
	TokenSchemeSimple TokenSchemeType = iota
)

func (t TokenSchemeType) String() string {
	switch t {
	case TokenSchemeSimple:
		return "SimpleTokenScheme"
	default:
		return "unknown token scheme type"
	}
}

// ErrInvalidMintedTokensCounter gets returned when a SimpleTokenScheme's
// MintedTokens would drop below zero or exceed MaximumSupply.
var ErrInvalidMintedTokensCounter = ierrors.New("invalid minted tokens counter")

// TokenScheme defines the minting/melting accounting rules a Foundry enforces.
type TokenScheme interface {
	Type() TokenSchemeType
	Clone() TokenScheme
	Equal(other TokenScheme) bool
}

// SimpleTokenScheme is a TokenScheme that tracks minted and melted supply
// against an immutable MaximumSupply (spec.md §4.6).
type SimpleTokenScheme struct {
	// MintedTokens is the cumulative number of tokens minted so far.
	MintedTokens *big.Int
	// MeltedTokens is the cumulative number of tokens melted so far.
	MeltedTokens *big.Int
	// MaximumSupply is the maximum number of tokens this Foundry may ever mint.
	MaximumSupply *big.Int
}

func (s *SimpleTokenScheme) Type() TokenSchemeType { return TokenSchemeSimple }

func (s *SimpleTokenScheme) Clone() TokenScheme {
	return &SimpleTokenScheme{
		MintedTokens:  new(big.Int).Set(s.MintedTokens),
		MeltedTokens:  new(big.Int).Set(s.MeltedTokens),
		MaximumSupply: new(big.Int).Set(s.MaximumSupply),
	}
}

func (s *SimpleTokenScheme) Equal(other TokenScheme) bool {
	o, is := other.(*SimpleTokenScheme)

	return is && s.MintedTokens.Cmp(o.MintedTokens) == 0 &&
		s.MeltedTokens.Cmp(o.MeltedTokens) == 0 &&
		s.MaximumSupply.Cmp(o.MaximumSupply) == 0
}

// CirculatingSupply returns MintedTokens minus MeltedTokens.
func (s *SimpleTokenScheme) CirculatingSupply() *big.Int {
	return new(big.Int).Sub(s.MintedTokens, s.MeltedTokens)
}

type (
	foundryOutputUnlockCondition  interface{ UnlockCondition }
	foundryOutputFeature          interface{ Feature }
	FoundryOutputUnlockConditions = UnlockConditions[foundryOutputUnlockCondition]
	FoundryOutputFeatures         = Features[foundryOutputFeature]
)

// FoundryOutputs is a slice of FoundryOutput(s).
type FoundryOutputs []*FoundryOutput

// FoundryOutput is a chain-constrained output controlling the minting and
// melting of a single native token class on behalf of an Alias
// (spec.md §2, §4.6). Its identity, SerialNumber and TokenScheme are
// immutable for its entire lifetime.
type FoundryOutput struct {
	// Amount is the number of IOTA base tokens held by the output.
	Amount BaseToken
	// NativeTokens are the native tokens held by the output (typically the
	// Foundry's own native token, before it is transferred out).
	NativeTokens NativeTokens
	// SerialNumber, together with the controlling Alias and TokenScheme
	// type, forms this Foundry's FoundryID.
	SerialNumber uint32
	// TokenScheme enforces the minting/melting accounting rules.
	TokenScheme TokenScheme
	// Conditions carries the ImmutableAliasAddressUnlockCondition binding
	// this Foundry to its controlling Alias.
	Conditions FoundryOutputUnlockConditions
	// Features are the mutable features of the output.
	Features FoundryOutputFeatures
	// ImmutableFeatures are set at genesis and never change afterwards.
	ImmutableFeatures FoundryOutputFeatures
}

func (f *FoundryOutput) Clone() Output {
	return &FoundryOutput{
		Amount:            f.Amount,
		NativeTokens:      f.NativeTokens.Clone(),
		SerialNumber:      f.SerialNumber,
		TokenScheme:       f.TokenScheme.Clone(),
		Conditions:        f.Conditions.Clone(),
		Features:          f.Features.Clone(),
		ImmutableFeatures: f.ImmutableFeatures.Clone(),
	}
}

func (f *FoundryOutput) NativeTokenList() NativeTokens {
	return f.NativeTokens
}

func (f *FoundryOutput) FeatureSet() FeatureSet {
	return f.Features.MustSet()
}

func (f *FoundryOutput) UnlockConditionSet() UnlockConditionSet {
	return f.Conditions.Set()
}

func (f *FoundryOutput) ImmutableFeatureSet() FeatureSet {
	return f.ImmutableFeatures.MustSet()
}

func (f *FoundryOutput) Deposit() BaseToken {
	return f.Amount
}

func (f *FoundryOutput) Type() OutputType {
	return OutputFoundry
}

// Alias returns the AliasID that controls this Foundry.
func (f *FoundryOutput) Alias() AliasID {
	return f.Conditions.Set().ImmutableAliasAddress().Address.AliasID()
}

// ID computes the FoundryID identifying this Foundry.
func (f *FoundryOutput) ID() FoundryID {
	return FoundryID{
		Alias:        f.Alias(),
		SerialNumber: f.SerialNumber,
		TokenScheme:  f.TokenScheme.Type(),
	}
}

// TokenID returns the TokenID of the native tokens this Foundry controls.
func (f *FoundryOutput) TokenID() TokenID {
	return TokenIDFromFoundryID(f.ID())
}

// Chain returns this Foundry's FoundryID as an opaque ChainID.
// FoundryID never changes, so genesis/non-genesis distinction does not apply.
func (f *FoundryOutput) Chain() ChainID {
	return foundryChainID{id: f.ID()}
}

// foundryChainID adapts a FoundryID to the ChainID interface. Foundries have
// no genesis placeholder form: the ID is fully determined before creation.
type foundryChainID struct {
	id FoundryID
}

func (f foundryChainID) Matches(other ChainID) bool {
	o, is := other.(foundryChainID)

	return is && f.id == o.id
}

func (f foundryChainID) Empty() bool { return false }

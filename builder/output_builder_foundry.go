package builder

import (
	"math/big"

	iotago "github.com/sl00k/iota-input-selection"
)

// NewFoundryOutputBuilder creates a new FoundryOutputBuilder controlled by
// the given Alias address, with the given serial number and maximum supply.
func NewFoundryOutputBuilder(aliasAddr *iotago.AliasAddress, amount iotago.BaseToken, serialNumber uint32, maximumSupply *big.Int) *FoundryOutputBuilder {
	return &FoundryOutputBuilder{output: &iotago.FoundryOutput{
		Amount:       amount,
		SerialNumber: serialNumber,
		TokenScheme: &iotago.SimpleTokenScheme{
			MintedTokens:  new(big.Int),
			MeltedTokens:  new(big.Int),
			MaximumSupply: maximumSupply,
		},
		Conditions: iotago.FoundryOutputUnlockConditions{
			&iotago.ImmutableAliasAddressUnlockCondition{Address: aliasAddr},
		},
		Features:          iotago.FoundryOutputFeatures{},
		ImmutableFeatures: iotago.FoundryOutputFeatures{},
	}}
}

// NewFoundryOutputBuilderFromPrevious creates a new FoundryOutputBuilder
// starting from a copy of the previous iotago.FoundryOutput.
func NewFoundryOutputBuilderFromPrevious(previous *iotago.FoundryOutput) *FoundryOutputBuilder {
	return &FoundryOutputBuilder{
		prev: previous,
		//nolint:forcetypeassert // we can safely assume that this is a FoundryOutput
		output: previous.Clone().(*iotago.FoundryOutput),
	}
}

// FoundryOutputBuilder builds an iotago.FoundryOutput.
type FoundryOutputBuilder struct {
	prev   *iotago.FoundryOutput
	output *iotago.FoundryOutput
}

// Amount sets the base token amount of the output.
func (builder *FoundryOutputBuilder) Amount(amount iotago.BaseToken) *FoundryOutputBuilder {
	builder.output.Amount = amount

	return builder
}

// NativeToken adds a native token to the output.
func (builder *FoundryOutputBuilder) NativeToken(nt *iotago.NativeToken) *FoundryOutputBuilder {
	builder.output.NativeTokens = append(builder.output.NativeTokens, nt)

	return builder
}

// Mint increases MintedTokens by delta. The output's NativeTokens are left
// unchanged.
func (builder *FoundryOutputBuilder) Mint(delta *big.Int) *FoundryOutputBuilder {
	//nolint:forcetypeassert // only SimpleTokenScheme is ever constructed by this builder
	scheme := builder.output.TokenScheme.(*iotago.SimpleTokenScheme)
	scheme.MintedTokens.Add(scheme.MintedTokens, delta)

	return builder
}

// Melt increases MeltedTokens by delta.
func (builder *FoundryOutputBuilder) Melt(delta *big.Int) *FoundryOutputBuilder {
	//nolint:forcetypeassert // only SimpleTokenScheme is ever constructed by this builder
	scheme := builder.output.TokenScheme.(*iotago.SimpleTokenScheme)
	scheme.MeltedTokens.Add(scheme.MeltedTokens, delta)

	return builder
}

// ImmutableMetadata sets/modifies a MetadataFeature as an immutable feature on the output.
// Only call this function on a new iotago.FoundryOutput.
func (builder *FoundryOutputBuilder) ImmutableMetadata(data []byte) *FoundryOutputBuilder {
	builder.output.ImmutableFeatures.Upsert(&iotago.MetadataFeature{Data: data})

	return builder
}

// Build builds the iotago.FoundryOutput.
func (builder *FoundryOutputBuilder) Build() (*iotago.FoundryOutput, error) {
	builder.output.Conditions.Sort()
	builder.output.Features.Sort()
	builder.output.ImmutableFeatures.Sort()

	return builder.output, nil
}

// MustBuild works like Build() but panics if an error is encountered.
func (builder *FoundryOutputBuilder) MustBuild() *iotago.FoundryOutput {
	output, err := builder.Build()
	if err != nil {
		panic(err)
	}

	return output
}

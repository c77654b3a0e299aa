package builder

import (
	"github.com/iotaledger/hive.go/ierrors"

	iotago "github.com/sl00k/iota-input-selection"
)

// NewAliasOutputBuilder creates a new AliasOutputBuilder with the state
// controller address and base token amount.
func NewAliasOutputBuilder(stateCtrl iotago.Address, govAddr iotago.Address, amount iotago.BaseToken) *AliasOutputBuilder {
	return &AliasOutputBuilder{output: &iotago.AliasOutput{
		Amount:         amount,
		AliasID:        iotago.EmptyAliasID,
		FoundryCounter: 0,
		Conditions: iotago.AliasOutputUnlockConditions{
			&iotago.StateControllerAddressUnlockCondition{Address: stateCtrl},
			&iotago.GovernorAddressUnlockCondition{Address: govAddr},
		},
		Features:          iotago.AliasOutputFeatures{},
		ImmutableFeatures: iotago.AliasOutputFeatures{},
	}}
}

// NewAliasOutputBuilderFromPrevious creates a new AliasOutputBuilder starting
// from a copy of the previous iotago.AliasOutput.
func NewAliasOutputBuilderFromPrevious(previous *iotago.AliasOutput) *AliasOutputBuilder {
	return &AliasOutputBuilder{
		prev: previous,
		//nolint:forcetypeassert // we can safely assume that this is an AliasOutput
		output: previous.Clone().(*iotago.AliasOutput),
	}
}

// AliasOutputBuilder builds an iotago.AliasOutput.
type AliasOutputBuilder struct {
	prev            *iotago.AliasOutput
	output          *iotago.AliasOutput
	stateTransition bool
}

// Amount sets the base token amount of the output.
func (builder *AliasOutputBuilder) Amount(amount iotago.BaseToken) *AliasOutputBuilder {
	builder.output.Amount = amount

	return builder
}

// AliasID sets the iotago.AliasID of this output.
// Do not call this function if the underlying iotago.AliasOutput is not new.
func (builder *AliasOutputBuilder) AliasID(aliasID iotago.AliasID) *AliasOutputBuilder {
	builder.output.AliasID = aliasID

	return builder
}

// FoundriesToGenerate bumps the output's foundry counter by the amount of foundries to generate.
func (builder *AliasOutputBuilder) FoundriesToGenerate(count uint32) *AliasOutputBuilder {
	builder.output.FoundryCounter += count

	return builder
}

// StateController sets/modifies the StateControllerAddressUnlockCondition on the output.
func (builder *AliasOutputBuilder) StateController(addr iotago.Address) *AliasOutputBuilder {
	builder.output.Conditions.Upsert(&iotago.StateControllerAddressUnlockCondition{Address: addr})

	return builder
}

// Governor sets/modifies the GovernorAddressUnlockCondition on the output.
func (builder *AliasOutputBuilder) Governor(addr iotago.Address) *AliasOutputBuilder {
	builder.output.Conditions.Upsert(&iotago.GovernorAddressUnlockCondition{Address: addr})

	return builder
}

// Sender sets/modifies an iotago.SenderFeature as a mutable feature on the output.
func (builder *AliasOutputBuilder) Sender(senderAddr iotago.Address) *AliasOutputBuilder {
	builder.output.Features.Upsert(&iotago.SenderFeature{Address: senderAddr})

	return builder
}

// Metadata sets/modifies an iotago.MetadataFeature on the output.
func (builder *AliasOutputBuilder) Metadata(data []byte) *AliasOutputBuilder {
	builder.output.Features.Upsert(&iotago.MetadataFeature{Data: data})

	return builder
}

// StateMetadata sets/modifies an iotago.StateMetadataFeature on the output.
// Only valid as part of a state transition.
func (builder *AliasOutputBuilder) StateMetadata(data []byte) *AliasOutputBuilder {
	builder.output.Features.Upsert(&iotago.StateMetadataFeature{Data: data})
	builder.stateTransition = true

	return builder
}

// StateTransition marks this builder's output as the result of a state
// transition, incrementing StateIndex on Build().
func (builder *AliasOutputBuilder) StateTransition() *AliasOutputBuilder {
	builder.stateTransition = true

	return builder
}

// ImmutableIssuer sets/modifies an iotago.IssuerFeature as an immutable feature on the output.
// Only call this function on a new iotago.AliasOutput.
func (builder *AliasOutputBuilder) ImmutableIssuer(issuer iotago.Address) *AliasOutputBuilder {
	builder.output.ImmutableFeatures.Upsert(&iotago.IssuerFeature{Address: issuer})

	return builder
}

// ImmutableMetadata sets/modifies an iotago.MetadataFeature as an immutable feature on the output.
// Only call this function on a new iotago.AliasOutput.
func (builder *AliasOutputBuilder) ImmutableMetadata(data []byte) *AliasOutputBuilder {
	builder.output.ImmutableFeatures.Upsert(&iotago.MetadataFeature{Data: data})

	return builder
}

// RemoveFeature removes a feature from the output.
func (builder *AliasOutputBuilder) RemoveFeature(featureType iotago.FeatureType) *AliasOutputBuilder {
	builder.output.Features.Remove(featureType)

	return builder
}

// Build builds the iotago.AliasOutput.
func (builder *AliasOutputBuilder) Build() (*iotago.AliasOutput, error) {
	if builder.prev != nil {
		if !builder.prev.ImmutableFeatures.Equal(builder.output.ImmutableFeatures) {
			return nil, ierrors.New("immutable features are not allowed to be changed")
		}
		if builder.stateTransition {
			builder.output.StateIndex = builder.prev.StateIndex + 1
		}
	}

	builder.output.Conditions.Sort()
	builder.output.Features.Sort()
	builder.output.ImmutableFeatures.Sort()

	return builder.output, nil
}

// MustBuild works like Build() but panics if an error is encountered.
func (builder *AliasOutputBuilder) MustBuild() *iotago.AliasOutput {
	output, err := builder.Build()
	if err != nil {
		panic(err)
	}

	return output
}

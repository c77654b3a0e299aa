package iotago

type (
	aliasOutputUnlockCondition  interface{ UnlockCondition }
	aliasOutputFeature          interface{ Feature }
	AliasOutputUnlockConditions = UnlockConditions[aliasOutputUnlockCondition]
	AliasOutputFeatures         = Features[aliasOutputFeature]
)

// AliasOutputs is a slice of AliasOutput(s).
type AliasOutputs []*AliasOutput

// AliasOutput is a chain-constrained output representing an on-ledger
// account, dual-controlled by a state controller and a governor
// (spec.md §2, §4.3).
type AliasOutput struct {
	// Amount is the number of IOTA base tokens held by the output.
	Amount BaseToken
	// NativeTokens are the native tokens held by the output.
	NativeTokens NativeTokens
	// AliasID is the identity of this Alias. It is the zero value in the
	// output that creates the Alias (genesis transition).
	AliasID AliasID
	// StateIndex counts the number of state transitions this Alias has gone
	// through. It is incremented by the state controller on every state
	// transition and left unchanged by governance transitions.
	StateIndex uint32
	// FoundryCounter is the number of Foundries controlled by this Alias.
	// It only ever increases.
	FoundryCounter uint32
	// Conditions are the unlock conditions on this output. An AliasOutput
	// always carries both a StateControllerAddressUnlockCondition and a
	// GovernorAddressUnlockCondition.
	Conditions AliasOutputUnlockConditions
	// Features are the mutable features of the output, settable by the
	// state controller on a state transition.
	Features AliasOutputFeatures
	// ImmutableFeatures are set at genesis and never change afterwards.
	ImmutableFeatures AliasOutputFeatures
}

func (a *AliasOutput) Clone() Output {
	return &AliasOutput{
		Amount:            a.Amount,
		NativeTokens:      a.NativeTokens.Clone(),
		AliasID:           a.AliasID,
		StateIndex:        a.StateIndex,
		FoundryCounter:    a.FoundryCounter,
		Conditions:        a.Conditions.Clone(),
		Features:          a.Features.Clone(),
		ImmutableFeatures: a.ImmutableFeatures.Clone(),
	}
}

func (a *AliasOutput) NativeTokenList() NativeTokens {
	return a.NativeTokens
}

func (a *AliasOutput) FeatureSet() FeatureSet {
	return a.Features.MustSet()
}

func (a *AliasOutput) UnlockConditionSet() UnlockConditionSet {
	return a.Conditions.Set()
}

func (a *AliasOutput) ImmutableFeatureSet() FeatureSet {
	return a.ImmutableFeatures.MustSet()
}

func (a *AliasOutput) Deposit() BaseToken {
	return a.Amount
}

func (a *AliasOutput) Type() OutputType {
	return OutputAlias
}

// Chain returns the AliasID as a ChainID, allowing this output to satisfy ChainConstrainedOutput.
func (a *AliasOutput) Chain() ChainID {
	return a.AliasID
}

// IsGenesis reports whether this AliasOutput has not yet been created on-chain.
func (a *AliasOutput) IsGenesis() bool {
	return a.AliasID.Empty()
}

// ChainID returns the actual, non-empty AliasID this output will have on
// the ledger after inclusion, resolving the genesis placeholder against the
// output's OutputID when necessary (spec.md §4.3: identity derivation).
func (a *AliasOutput) ChainID(outputID OutputID) AliasID {
	if !a.AliasID.Empty() {
		return a.AliasID
	}

	return AliasIDFromOutputID(outputID)
}

// StateController returns the address unlocking this Alias for state transitions.
func (a *AliasOutput) StateController() Address {
	return a.Conditions.Set().StateControllerAddress().Address
}

// Governor returns the address unlocking this Alias for governance transitions.
func (a *AliasOutput) Governor() Address {
	return a.Conditions.Set().GovernorAddress().Address
}

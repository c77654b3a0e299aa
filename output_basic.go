package iotago

type (
	basicOutputUnlockCondition  interface{ UnlockCondition }
	basicOutputFeature          interface{ Feature }
	BasicOutputUnlockConditions = UnlockConditions[basicOutputUnlockCondition]
	BasicOutputFeatures         = Features[basicOutputFeature]
)

// BasicOutputs is a slice of BasicOutput(s).
type BasicOutputs []*BasicOutput

// BasicOutput is an output type which can hold native tokens and features,
// the workhorse output for plain value transfers (spec.md §2).
type BasicOutput struct {
	// Amount is the number of IOTA base tokens held by the output.
	Amount BaseToken
	// NativeTokens are the native tokens held by the output.
	NativeTokens NativeTokens
	// Conditions are the unlock conditions on this output.
	Conditions BasicOutputUnlockConditions
	// Features are the features on the output.
	Features BasicOutputFeatures
}

// IsSimpleTransfer tells whether this BasicOutput fulfills the criteria of
// being a simple transfer: no features, a single address unlock condition,
// and no native tokens.
func (e *BasicOutput) IsSimpleTransfer() bool {
	return len(e.FeatureSet()) == 0 && len(e.UnlockConditionSet()) == 1 && len(e.NativeTokens) == 0
}

func (e *BasicOutput) Clone() Output {
	return &BasicOutput{
		Amount:       e.Amount,
		NativeTokens: e.NativeTokens.Clone(),
		Conditions:   e.Conditions.Clone(),
		Features:     e.Features.Clone(),
	}
}

func (e *BasicOutput) NativeTokenList() NativeTokens {
	return e.NativeTokens
}

func (e *BasicOutput) FeatureSet() FeatureSet {
	return e.Features.MustSet()
}

func (e *BasicOutput) UnlockConditionSet() UnlockConditionSet {
	return e.Conditions.Set()
}

func (e *BasicOutput) Deposit() BaseToken {
	return e.Amount
}

// Ident returns the address that must unlock this output, ignoring any
// expiration/timelock adjustments.
func (e *BasicOutput) Ident() Address {
	return e.Conditions.Set().Address().Address
}

func (e *BasicOutput) Type() OutputType {
	return OutputBasic
}

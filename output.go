package iotago

import (
	"github.com/iotaledger/hive.go/ierrors"
)

// OutputType defines the type of an Output.
type OutputType byte

const (
	OutputBasic OutputType = iota
	OutputAlias
	OutputFoundry
	OutputNFT
)

func (t OutputType) String() string {
	switch t {
	case OutputBasic:
		return "BasicOutput"
	case OutputAlias:
		return "AliasOutput"
	case OutputFoundry:
		return "FoundryOutput"
	case OutputNFT:
		return "NFTOutput"
	default:
		return "unknown output type"
	}
}

// ErrUnknownOutputType gets returned when an Output's Type() does not match any known OutputType.
var ErrUnknownOutputType = ierrors.New("unknown output type")

// Output is a generic functional interface over a ledger entry that carries
// an amount and is spent as a whole (spec.md §2).
type Output interface {
	// Type returns the type of the output.
	Type() OutputType
	// Clone clones the Output into a deep copy.
	Clone() Output
	// Deposit returns the amount of base tokens held by the output.
	Deposit() BaseToken
	// NativeTokenList returns the NativeTokens held by the output.
	NativeTokenList() NativeTokens
	// UnlockConditionSet returns the UnlockConditions of the output as a set.
	UnlockConditionSet() UnlockConditionSet
	// FeatureSet returns the Features of the output as a set.
	FeatureSet() FeatureSet
}

// ChainConstrainedOutput is an Output whose identity persists across transitions.
type ChainConstrainedOutput interface {
	Output
	// Chain returns the ChainID of this output. It returns an empty ChainID
	// if the output has not been created on-chain yet (genesis form).
	Chain() ChainID
}

// OutputSet is a map of OutputID to Output.
type OutputSet map[OutputID]Output

// Outputs is a slice of Output(s).
type Outputs[T Output] []T

// ToOutputSet converts the given list into an OutputSet, keyed by the given IDs.
func ToOutputSet(ids []OutputID, outputs []Output) (OutputSet, error) {
	if len(ids) != len(outputs) {
		return nil, ierrors.New("ids and outputs must have the same length")
	}

	set := make(OutputSet, len(outputs))
	for i, o := range outputs {
		set[ids[i]] = o
	}

	return set, nil
}

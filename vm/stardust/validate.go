// Package stardust implements the post-selection state transition validation
// function (STVF) for chain-constrained outputs (Alias, NFT, Foundry),
// mirroring the rules an input selection result must satisfy before it can
// be considered a valid transaction (spec.md §4.3-§4.6).
package stardust

import (
	"math/big"

	"github.com/iotaledger/hive.go/ierrors"

	iotago "github.com/sl00k/iota-input-selection"
)

// ChainTransitionType classifies how a chain-constrained output moves
// between a transaction's inputs and outputs.
type ChainTransitionType byte

const (
	// ChainTransitionTypeGenesis is a chain output created for the first time.
	ChainTransitionTypeGenesis ChainTransitionType = iota
	// ChainTransitionTypeStateChange is a chain output carried over with an
	// identical ChainID, consumed on one side and recreated on the other.
	ChainTransitionTypeStateChange
	// ChainTransitionTypeDestroy is a chain output consumed without a
	// corresponding output of the same ChainID.
	ChainTransitionTypeDestroy
)

var (
	ErrInvalidAliasStateTransition      = ierrors.New("invalid alias state transition")
	ErrInvalidAliasGovernanceTransition = ierrors.New("invalid alias governance transition")
	ErrInvalidFoundryStateTransition    = ierrors.New("invalid foundry state transition")
	ErrInvalidNFTStateTransition        = ierrors.New("invalid NFT state transition")
)

// WorkingSet is the minimal view of a candidate transaction the STVF needs:
// the resolved inputs, the proposed outputs, and the set of addresses the
// transaction successfully unlocked.
type WorkingSet struct {
	InputSet        iotago.OutputSet
	Outputs         []iotago.Output
	UnlockedIdents  map[string]struct{}
	InNativeTokens  iotago.NativeTokenSet
	OutNativeTokens iotago.NativeTokenSet
}

// Unlocked reports whether addr is among the identities the transaction unlocked.
func (w *WorkingSet) Unlocked(addr iotago.Address) bool {
	_, ok := w.UnlockedIdents[addr.Key()]

	return ok
}

// AliasSTVF validates the transition of an AliasOutput. input is nil for a genesis transition.
func AliasSTVF(input *iotago.AliasOutput, transType ChainTransitionType, next *iotago.AliasOutput, ws *WorkingSet) error {
	switch transType {
	case ChainTransitionTypeGenesis:
		return aliasGenesisValid(next, ws)
	case ChainTransitionTypeStateChange:
		if input.StateIndex == next.StateIndex {
			return aliasGovernanceSTVF(input, next)
		}

		return aliasStateSTVF(input, next, ws)
	case ChainTransitionTypeDestroy:
		return nil
	default:
		panic("unknown chain transition type for AliasOutput")
	}
}

func aliasGenesisValid(current *iotago.AliasOutput, ws *WorkingSet) error {
	if !current.AliasID.Empty() {
		return ierrors.Wrap(ErrInvalidAliasStateTransition, "alias output's ID is not zeroed even though it is new")
	}

	return issuerUnlocked(current, ws)
}

func aliasGovernanceSTVF(current *iotago.AliasOutput, next *iotago.AliasOutput) error {
	switch {
	case current.Amount != next.Amount:
		return ierrors.Wrapf(ErrInvalidAliasGovernanceTransition, "amount changed, in %d / out %d", current.Amount, next.Amount)
	case !current.NativeTokens.Equal(next.NativeTokens):
		return ierrors.Wrap(ErrInvalidAliasGovernanceTransition, "native tokens changed")
	case current.FoundryCounter != next.FoundryCounter:
		return ierrors.Wrapf(ErrInvalidAliasGovernanceTransition, "foundry counter changed, in %d / out %d", current.FoundryCounter, next.FoundryCounter)
	}

	if err := iotago.FeatureUnchanged(iotago.FeatureStateMetadata, current.Features.MustSet(), next.Features.MustSet()); err != nil {
		return ierrors.Wrap(ErrInvalidAliasGovernanceTransition, err.Error())
	}

	return nil
}

func aliasStateSTVF(current *iotago.AliasOutput, next *iotago.AliasOutput, ws *WorkingSet) error {
	switch {
	case !current.StateController().Equal(next.StateController()):
		return ierrors.Wrap(ErrInvalidAliasStateTransition, "state controller changed")
	case !current.Governor().Equal(next.Governor()):
		return ierrors.Wrap(ErrInvalidAliasStateTransition, "governor changed")
	case current.FoundryCounter > next.FoundryCounter:
		return ierrors.Wrap(ErrInvalidAliasStateTransition, "foundry counter of next state is less than previous")
	case current.StateIndex+1 != next.StateIndex:
		return ierrors.Wrapf(ErrInvalidAliasStateTransition, "state index %d on input side but %d on output side", current.StateIndex, next.StateIndex)
	}

	if err := iotago.FeatureUnchanged(iotago.FeatureMetadata, current.Features.MustSet(), next.Features.MustSet()); err != nil {
		return ierrors.Wrap(ErrInvalidAliasStateTransition, err.Error())
	}

	if current.FoundryCounter == next.FoundryCounter {
		return nil
	}

	var seenNewFoundriesOfAlias uint32
	for _, output := range ws.Outputs {
		foundryOutput, is := output.(*iotago.FoundryOutput)
		if !is {
			continue
		}
		if foundryOutput.Alias().Matches(next.AliasID) {
			seenNewFoundriesOfAlias++
		}
	}

	expectedNewFoundriesCount := next.FoundryCounter - current.FoundryCounter
	if expectedNewFoundriesCount != seenNewFoundriesOfAlias {
		return ierrors.Wrapf(ErrInvalidAliasStateTransition, "%d new foundries seen but foundry counter changed by %d", seenNewFoundriesOfAlias, expectedNewFoundriesCount)
	}

	return nil
}

// NFTSTVF validates the transition of an NFTOutput. input is nil for a genesis transition.
func NFTSTVF(input *iotago.NFTOutput, transType ChainTransitionType, next *iotago.NFTOutput, ws *WorkingSet) error {
	switch transType {
	case ChainTransitionTypeGenesis:
		return nftGenesisValid(next, ws)
	case ChainTransitionTypeStateChange:
		return nftStateChangeValid(input, next)
	case ChainTransitionTypeDestroy:
		return nil
	default:
		panic("unknown chain transition type for NFTOutput")
	}
}

func nftGenesisValid(current *iotago.NFTOutput, ws *WorkingSet) error {
	if !current.NFTID.Empty() {
		return ierrors.Wrap(ErrInvalidNFTStateTransition, "NFT output's ID is not zeroed even though it is new")
	}

	return issuerUnlocked(current, ws)
}

func nftStateChangeValid(current *iotago.NFTOutput, next *iotago.NFTOutput) error {
	if !current.ImmutableFeatures.Equal(next.ImmutableFeatures) {
		return ierrors.Wrap(ErrInvalidNFTStateTransition, "immutable features changed")
	}

	return nil
}

// FoundrySTVF validates the transition of a FoundryOutput against the
// native token sums the candidate transaction moves. input is nil for a
// genesis transition.
func FoundrySTVF(input *iotago.FoundryOutput, transType ChainTransitionType, next *iotago.FoundryOutput, ws *WorkingSet) error {
	switch transType {
	case ChainTransitionTypeGenesis:
		return foundryGenesisValid(next, ws)
	case ChainTransitionTypeStateChange:
		return foundryStateChangeValid(input, next, ws)
	case ChainTransitionTypeDestroy:
		return foundryDestructionValid(input, ws)
	default:
		panic("unknown chain transition type for FoundryOutput")
	}
}

func foundryGenesisValid(current *iotago.FoundryOutput, ws *WorkingSet) error {
	scheme, is := current.TokenScheme.(*iotago.SimpleTokenScheme)
	if !is {
		return ierrors.Wrap(ErrInvalidFoundryStateTransition, "unsupported token scheme")
	}

	if scheme.MeltedTokens.Sign() != 0 {
		return ierrors.Wrap(ErrInvalidFoundryStateTransition, "melted tokens must be zero at genesis")
	}

	minted := ws.OutNativeTokens.ValueOrZero(current.TokenID())
	if minted.Cmp(scheme.MintedTokens) != 0 {
		return ierrors.Wrap(ErrInvalidFoundryStateTransition, "minted tokens do not match output sum")
	}
	if minted.Cmp(scheme.MaximumSupply) > 0 {
		return iotago.ErrNativeTokensSumExceedsSupply
	}

	return nil
}

func foundryStateChangeValid(current *iotago.FoundryOutput, next *iotago.FoundryOutput, ws *WorkingSet) error {
	if !current.ImmutableFeatures.Equal(next.ImmutableFeatures) {
		return ierrors.Wrap(ErrInvalidFoundryStateTransition, "immutable features changed")
	}

	curScheme, is := current.TokenScheme.(*iotago.SimpleTokenScheme)
	if !is {
		return ierrors.Wrap(ErrInvalidFoundryStateTransition, "unsupported token scheme")
	}
	nextScheme, is := next.TokenScheme.(*iotago.SimpleTokenScheme)
	if !is {
		return ierrors.Wrap(ErrInvalidFoundryStateTransition, "unsupported token scheme")
	}

	if curScheme.MaximumSupply.Cmp(nextScheme.MaximumSupply) != 0 {
		return ierrors.Wrap(ErrInvalidFoundryStateTransition, "maximum supply changed")
	}
	if nextScheme.MeltedTokens.Cmp(curScheme.MeltedTokens) < 0 {
		return ierrors.Wrap(ErrInvalidFoundryStateTransition, "melted tokens decreased")
	}
	if nextScheme.MintedTokens.Cmp(curScheme.MintedTokens) < 0 {
		return ierrors.Wrap(ErrInvalidFoundryStateTransition, "minted tokens decreased")
	}
	if nextScheme.CirculatingSupply().Cmp(nextScheme.MaximumSupply) > 0 {
		return iotago.ErrNativeTokensSumExceedsSupply
	}

	tokenID := current.TokenID()
	in := ws.InNativeTokens.ValueOrZero(tokenID)
	out := ws.OutNativeTokens.ValueOrZero(tokenID)

	mintedDelta := new(big.Int).Sub(nextScheme.MintedTokens, curScheme.MintedTokens)
	meltedDelta := new(big.Int).Sub(nextScheme.MeltedTokens, curScheme.MeltedTokens)

	// out - in must equal what was freshly minted minus what was melted.
	balance := new(big.Int).Sub(out, in)
	expected := new(big.Int).Sub(mintedDelta, meltedDelta)
	if balance.Cmp(expected) != 0 {
		return ierrors.Wrap(ErrInvalidFoundryStateTransition, "native token balance does not match minted/melted delta")
	}

	return nil
}

func foundryDestructionValid(current *iotago.FoundryOutput, ws *WorkingSet) error {
	scheme, is := current.TokenScheme.(*iotago.SimpleTokenScheme)
	if !is {
		return ierrors.Wrap(ErrInvalidFoundryStateTransition, "unsupported token scheme")
	}

	if scheme.CirculatingSupply().Sign() != 0 {
		return ierrors.Wrap(ErrInvalidFoundryStateTransition, "cannot destroy foundry with tokens still in circulation")
	}

	return nil
}

func issuerUnlocked(output iotago.ChainConstrainedOutput, ws *WorkingSet) error {
	issuerFeat := output.FeatureSet()[iotago.FeatureIssuer]
	if issuerFeat == nil {
		return nil
	}

	//nolint:forcetypeassert // Features.MustSet guarantees the concrete type here
	issuer := issuerFeat.(*iotago.IssuerFeature)
	if !ws.Unlocked(issuer.Address) {
		return ierrors.New("issuer feature's address is not unlocked")
	}

	return nil
}

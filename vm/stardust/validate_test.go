package stardust_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	iotago "github.com/sl00k/iota-input-selection"
	"github.com/sl00k/iota-input-selection/builder"
	"github.com/sl00k/iota-input-selection/tpkg"
	"github.com/sl00k/iota-input-selection/vm/stardust"
)

func emptyWorkingSet() *stardust.WorkingSet {
	return &stardust.WorkingSet{
		UnlockedIdents:  make(map[string]struct{}),
		InNativeTokens:  make(iotago.NativeTokenSet),
		OutNativeTokens: make(iotago.NativeTokenSet),
	}
}

func TestAliasSTVFGenesisRejectsNonEmptyID(t *testing.T) {
	genesis := builder.NewAliasOutputBuilder(tpkg.RandEd25519Address(), tpkg.RandEd25519Address(), 1000).
		AliasID(tpkg.RandAliasID()).
		MustBuild()

	err := stardust.AliasSTVF(nil, stardust.ChainTransitionTypeGenesis, genesis, emptyWorkingSet())
	require.ErrorIs(t, err, stardust.ErrInvalidAliasStateTransition)
}

func TestAliasSTVFGenesisAcceptsZeroedID(t *testing.T) {
	genesis := builder.NewAliasOutputBuilder(tpkg.RandEd25519Address(), tpkg.RandEd25519Address(), 1000).MustBuild()

	err := stardust.AliasSTVF(nil, stardust.ChainTransitionTypeGenesis, genesis, emptyWorkingSet())
	require.NoError(t, err)
}

func TestAliasSTVFGovernanceTransitionRejectsAmountChange(t *testing.T) {
	stateCtrl := tpkg.RandEd25519Address()
	gov := tpkg.RandEd25519Address()
	aliasID := tpkg.RandAliasID()

	current := builder.NewAliasOutputBuilder(stateCtrl, gov, 1000).AliasID(aliasID).MustBuild()
	next := builder.NewAliasOutputBuilderFromPrevious(current).Amount(2000).MustBuild()

	err := stardust.AliasSTVF(current, stardust.ChainTransitionTypeStateChange, next, emptyWorkingSet())
	require.ErrorIs(t, err, stardust.ErrInvalidAliasGovernanceTransition)
}

func TestAliasSTVFGovernanceTransitionAcceptsStateMetadataUnchanged(t *testing.T) {
	stateCtrl := tpkg.RandEd25519Address()
	gov := tpkg.RandEd25519Address()
	aliasID := tpkg.RandAliasID()

	current := builder.NewAliasOutputBuilder(stateCtrl, gov, 1000).AliasID(aliasID).MustBuild()
	next := builder.NewAliasOutputBuilderFromPrevious(current).MustBuild()

	require.Equal(t, current.StateIndex, next.StateIndex, "governance transition leaves StateIndex untouched")

	err := stardust.AliasSTVF(current, stardust.ChainTransitionTypeStateChange, next, emptyWorkingSet())
	require.NoError(t, err)
}

func TestAliasSTVFStateTransitionRequiresIncrementedIndex(t *testing.T) {
	stateCtrl := tpkg.RandEd25519Address()
	gov := tpkg.RandEd25519Address()
	aliasID := tpkg.RandAliasID()

	current := builder.NewAliasOutputBuilder(stateCtrl, gov, 1000).AliasID(aliasID).MustBuild()
	next := builder.NewAliasOutputBuilderFromPrevious(current).StateTransition().MustBuild()
	// Force an inconsistent StateIndex to exercise the rejection path.
	next.StateIndex = current.StateIndex + 2

	err := stardust.AliasSTVF(current, stardust.ChainTransitionTypeStateChange, next, emptyWorkingSet())
	require.ErrorIs(t, err, stardust.ErrInvalidAliasStateTransition)
}

func TestAliasSTVFStateTransitionAcceptsValidIncrement(t *testing.T) {
	stateCtrl := tpkg.RandEd25519Address()
	gov := tpkg.RandEd25519Address()
	aliasID := tpkg.RandAliasID()

	current := builder.NewAliasOutputBuilder(stateCtrl, gov, 1000).AliasID(aliasID).MustBuild()
	next := builder.NewAliasOutputBuilderFromPrevious(current).StateTransition().MustBuild()

	require.Equal(t, current.StateIndex+1, next.StateIndex)

	err := stardust.AliasSTVF(current, stardust.ChainTransitionTypeStateChange, next, emptyWorkingSet())
	require.NoError(t, err)
}

func TestAliasSTVFStateTransitionRequiresMatchingNewFoundryCount(t *testing.T) {
	stateCtrl := tpkg.RandEd25519Address()
	gov := tpkg.RandEd25519Address()
	aliasID := tpkg.RandAliasID()

	current := builder.NewAliasOutputBuilder(stateCtrl, gov, 1000).AliasID(aliasID).MustBuild()
	current.FoundryCounter = 1
	next := builder.NewAliasOutputBuilderFromPrevious(current).StateTransition().MustBuild()
	next.FoundryCounter = 2

	ws := emptyWorkingSet()
	// No new FoundryOutput is present in ws.Outputs, yet the counter claims one was created.
	err := stardust.AliasSTVF(current, stardust.ChainTransitionTypeStateChange, next, ws)
	require.ErrorIs(t, err, stardust.ErrInvalidAliasStateTransition)

	aliasAddr := iotago.NewAliasAddress(aliasID)
	ws.Outputs = []iotago.Output{
		builder.NewFoundryOutputBuilder(aliasAddr, 1000, 1, big.NewInt(100)).MustBuild(),
	}
	require.NoError(t, stardust.AliasSTVF(current, stardust.ChainTransitionTypeStateChange, next, ws))
}

func TestNFTSTVFGenesisRejectsNonEmptyID(t *testing.T) {
	genesis := builder.NewNFTOutputBuilder(tpkg.RandEd25519Address(), 1000).NFTID(tpkg.RandNFTID()).MustBuild()

	err := stardust.NFTSTVF(nil, stardust.ChainTransitionTypeGenesis, genesis, emptyWorkingSet())
	require.ErrorIs(t, err, stardust.ErrInvalidNFTStateTransition)
}

func TestNFTSTVFStateChangeRejectsImmutableFeatureChange(t *testing.T) {
	addr := tpkg.RandEd25519Address()
	current := builder.NewNFTOutputBuilder(addr, 1000).NFTID(tpkg.RandNFTID()).ImmutableMetadata([]byte("a")).MustBuild()
	next := builder.NewNFTOutputBuilderFromPrevious(current).MustBuild()
	next.ImmutableFeatures = iotago.NFTOutputFeatures{&iotago.MetadataFeature{Data: []byte("b")}}

	err := stardust.NFTSTVF(current, stardust.ChainTransitionTypeStateChange, next, emptyWorkingSet())
	require.ErrorIs(t, err, stardust.ErrInvalidNFTStateTransition)
}

func TestNFTSTVFStateChangeAcceptsUnchangedImmutableFeatures(t *testing.T) {
	addr := tpkg.RandEd25519Address()
	current := builder.NewNFTOutputBuilder(addr, 1000).NFTID(tpkg.RandNFTID()).ImmutableMetadata([]byte("a")).MustBuild()
	next := builder.NewNFTOutputBuilderFromPrevious(current).Amount(2000).MustBuild()

	err := stardust.NFTSTVF(current, stardust.ChainTransitionTypeStateChange, next, emptyWorkingSet())
	require.NoError(t, err)
}

func TestFoundrySTVFGenesisRequiresMintedMatchOutputSum(t *testing.T) {
	aliasAddr := iotago.NewAliasAddress(tpkg.RandAliasID())
	genesis := builder.NewFoundryOutputBuilder(aliasAddr, 1000, 1, big.NewInt(1000)).
		Mint(big.NewInt(100)).
		MustBuild()

	ws := emptyWorkingSet()
	err := stardust.FoundrySTVF(nil, stardust.ChainTransitionTypeGenesis, genesis, ws)
	require.ErrorIs(t, err, stardust.ErrInvalidFoundryStateTransition)

	ws.OutNativeTokens[genesis.TokenID()] = big.NewInt(100)
	require.NoError(t, stardust.FoundrySTVF(nil, stardust.ChainTransitionTypeGenesis, genesis, ws))
}

func TestFoundrySTVFGenesisRejectsExceedingMaximumSupply(t *testing.T) {
	aliasAddr := iotago.NewAliasAddress(tpkg.RandAliasID())
	genesis := builder.NewFoundryOutputBuilder(aliasAddr, 1000, 1, big.NewInt(100)).
		Mint(big.NewInt(200)).
		MustBuild()

	ws := emptyWorkingSet()
	ws.OutNativeTokens[genesis.TokenID()] = big.NewInt(200)

	err := stardust.FoundrySTVF(nil, stardust.ChainTransitionTypeGenesis, genesis, ws)
	require.ErrorIs(t, err, iotago.ErrNativeTokensSumExceedsSupply)
}

func TestFoundrySTVFStateChangeBalancesMintDelta(t *testing.T) {
	aliasAddr := iotago.NewAliasAddress(tpkg.RandAliasID())
	current := builder.NewFoundryOutputBuilder(aliasAddr, 1000, 1, big.NewInt(1000)).
		Mint(big.NewInt(100)).
		MustBuild()
	next := builder.NewFoundryOutputBuilderFromPrevious(current).Mint(big.NewInt(50)).MustBuild()

	tokenID := current.TokenID()
	ws := emptyWorkingSet()
	ws.OutNativeTokens[tokenID] = big.NewInt(50)

	err := stardust.FoundrySTVF(current, stardust.ChainTransitionTypeStateChange, next, ws)
	require.NoError(t, err)
}

func TestFoundrySTVFStateChangeRejectsUnbalancedMintDelta(t *testing.T) {
	aliasAddr := iotago.NewAliasAddress(tpkg.RandAliasID())
	current := builder.NewFoundryOutputBuilder(aliasAddr, 1000, 1, big.NewInt(1000)).
		Mint(big.NewInt(100)).
		MustBuild()
	next := builder.NewFoundryOutputBuilderFromPrevious(current).Mint(big.NewInt(50)).MustBuild()

	ws := emptyWorkingSet()
	// Missing the freshly minted 50 tokens on the output side.

	err := stardust.FoundrySTVF(current, stardust.ChainTransitionTypeStateChange, next, ws)
	require.ErrorIs(t, err, stardust.ErrInvalidFoundryStateTransition)
}

func TestFoundrySTVFStateChangeRejectsMaximumSupplyChange(t *testing.T) {
	aliasAddr := iotago.NewAliasAddress(tpkg.RandAliasID())
	current := builder.NewFoundryOutputBuilder(aliasAddr, 1000, 1, big.NewInt(1000)).MustBuild()
	next := builder.NewFoundryOutputBuilderFromPrevious(current).MustBuild()
	//nolint:forcetypeassert // test constructs only SimpleTokenScheme foundries
	next.TokenScheme.(*iotago.SimpleTokenScheme).MaximumSupply = big.NewInt(2000)

	err := stardust.FoundrySTVF(current, stardust.ChainTransitionTypeStateChange, next, emptyWorkingSet())
	require.ErrorIs(t, err, stardust.ErrInvalidFoundryStateTransition)
}

func TestFoundrySTVFDestructionRequiresZeroCirculatingSupply(t *testing.T) {
	aliasAddr := iotago.NewAliasAddress(tpkg.RandAliasID())
	withSupply := builder.NewFoundryOutputBuilder(aliasAddr, 1000, 1, big.NewInt(1000)).
		Mint(big.NewInt(100)).
		MustBuild()

	err := stardust.FoundrySTVF(withSupply, stardust.ChainTransitionTypeDestroy, nil, emptyWorkingSet())
	require.ErrorIs(t, err, stardust.ErrInvalidFoundryStateTransition)

	melted := builder.NewFoundryOutputBuilderFromPrevious(withSupply).Melt(big.NewInt(100)).MustBuild()
	require.NoError(t, stardust.FoundrySTVF(melted, stardust.ChainTransitionTypeDestroy, nil, emptyWorkingSet()))
}

func TestIssuerUnlockedViaAliasGenesis(t *testing.T) {
	issuer := tpkg.RandEd25519Address()

	// issuerUnlocked reads the output's mutable FeatureSet, so the issuer
	// feature is set there directly rather than through ImmutableIssuer.
	genesis := &iotago.AliasOutput{
		Amount:     1000,
		Conditions: iotago.AliasOutputUnlockConditions{},
		Features:   iotago.AliasOutputFeatures{&iotago.IssuerFeature{Address: issuer}},
	}

	ws := emptyWorkingSet()
	err := stardust.AliasSTVF(nil, stardust.ChainTransitionTypeGenesis, genesis, ws)
	require.Error(t, err)

	ws.UnlockedIdents[issuer.Key()] = struct{}{}
	require.NoError(t, stardust.AliasSTVF(nil, stardust.ChainTransitionTypeGenesis, genesis, ws))
}

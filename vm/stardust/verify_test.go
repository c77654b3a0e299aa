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

func TestVerifyRejectsUnbalancedAmounts(t *testing.T) {
	addr := tpkg.RandEd25519Address()
	in := stardust.Input{OutputID: tpkg.RandOutputID(), Output: builder.NewBasicOutputBuilder(addr, 1000).MustBuild()}
	out := builder.NewBasicOutputBuilder(addr, 500).MustBuild()

	err := stardust.Verify([]stardust.Input{in}, []iotago.Output{out}, nil)
	require.ErrorIs(t, err, stardust.ErrInputOutputSumMismatch)
}

func TestVerifyAcceptsBalancedPlainTransfer(t *testing.T) {
	addr := tpkg.RandEd25519Address()
	in := stardust.Input{OutputID: tpkg.RandOutputID(), Output: builder.NewBasicOutputBuilder(addr, 1000).MustBuild()}
	out := builder.NewBasicOutputBuilder(tpkg.RandEd25519Address(), 1000).MustBuild()

	require.NoError(t, stardust.Verify([]stardust.Input{in}, []iotago.Output{out}, nil))
}

func TestVerifyAcceptsAliasGenesis(t *testing.T) {
	genesis := builder.NewAliasOutputBuilder(tpkg.RandEd25519Address(), tpkg.RandEd25519Address(), 1000).MustBuild()
	funding := stardust.Input{
		OutputID: tpkg.RandOutputID(),
		Output:   builder.NewBasicOutputBuilder(tpkg.RandEd25519Address(), 1000).MustBuild(),
	}

	require.NoError(t, stardust.Verify([]stardust.Input{funding}, []iotago.Output{genesis}, nil))
}

func TestVerifyAcceptsAliasStateTransition(t *testing.T) {
	stateCtrl := tpkg.RandEd25519Address()
	gov := tpkg.RandEd25519Address()
	aliasID := tpkg.RandAliasID()

	current := builder.NewAliasOutputBuilder(stateCtrl, gov, 1000).AliasID(aliasID).MustBuild()
	next := builder.NewAliasOutputBuilderFromPrevious(current).StateTransition().MustBuild()

	in := stardust.Input{OutputID: tpkg.RandOutputID(), Output: current}

	require.NoError(t, stardust.Verify([]stardust.Input{in}, []iotago.Output{next}, nil))
}

func TestVerifyRejectsAliasContinuationWithoutOrigin(t *testing.T) {
	next := builder.NewAliasOutputBuilder(tpkg.RandEd25519Address(), tpkg.RandEd25519Address(), 1000).
		AliasID(tpkg.RandAliasID()).
		MustBuild()

	err := stardust.Verify(nil, []iotago.Output{next}, nil)
	require.ErrorIs(t, err, stardust.ErrChainOutputWithoutOrigin)
}

func TestVerifyAllowsAliasDestructionWithNoContinuationOutput(t *testing.T) {
	stateCtrl := tpkg.RandEd25519Address()
	gov := tpkg.RandEd25519Address()
	aliasID := tpkg.RandAliasID()

	aliasInput := builder.NewAliasOutputBuilder(stateCtrl, gov, 1000).AliasID(aliasID).MustBuild()
	in := stardust.Input{OutputID: tpkg.RandOutputID(), Output: aliasInput}
	// The alias's funds are redirected to a plain recipient; the alias itself is destroyed.
	out := builder.NewBasicOutputBuilder(tpkg.RandEd25519Address(), 1000).MustBuild()

	require.NoError(t, stardust.Verify([]stardust.Input{in}, []iotago.Output{out}, nil))
}

func TestVerifyFoundryGenesisRequiresMintedMatchOutputSum(t *testing.T) {
	aliasAddr := iotago.NewAliasAddress(tpkg.RandAliasID())
	genesis := builder.NewFoundryOutputBuilder(aliasAddr, 1000, 1, big.NewInt(1000)).
		Mint(big.NewInt(50)).
		MustBuild()
	// The foundry must itself carry its freshly minted supply as a native
	// token for the output-side sum genesis validation checks against.
	genesis.NativeTokens = iotago.NativeTokens{{ID: genesis.TokenID(), Amount: big.NewInt(50)}}

	funding := stardust.Input{
		OutputID: tpkg.RandOutputID(),
		Output:   builder.NewBasicOutputBuilder(tpkg.RandEd25519Address(), 1000).MustBuild(),
	}

	require.NoError(t, stardust.Verify([]stardust.Input{funding}, []iotago.Output{genesis}, nil))
}

func TestVerifyFoundryGenesisRejectsMintedOutputMismatch(t *testing.T) {
	aliasAddr := iotago.NewAliasAddress(tpkg.RandAliasID())
	genesis := builder.NewFoundryOutputBuilder(aliasAddr, 1000, 1, big.NewInt(1000)).
		Mint(big.NewInt(50)).
		MustBuild()
	// NativeTokens left empty: the foundry claims 50 minted but carries none.

	funding := stardust.Input{
		OutputID: tpkg.RandOutputID(),
		Output:   builder.NewBasicOutputBuilder(tpkg.RandEd25519Address(), 1000).MustBuild(),
	}

	err := stardust.Verify([]stardust.Input{funding}, []iotago.Output{genesis}, nil)
	require.ErrorIs(t, err, stardust.ErrInvalidFoundryStateTransition)
}

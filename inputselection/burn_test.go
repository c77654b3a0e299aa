package inputselection_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	iotago "github.com/sl00k/iota-input-selection"
	"github.com/sl00k/iota-input-selection/inputselection"
	"github.com/sl00k/iota-input-selection/tpkg"
)

func TestBurnTracksMarkedIdentities(t *testing.T) {
	aliasID := tpkg.RandAliasID()
	burn := inputselection.NewBurn().Alias(aliasID)

	require.True(t, burn.HasAlias(aliasID))
	require.False(t, burn.HasAlias(tpkg.RandAliasID()))
	require.False(t, burn.HasNFT(iotago.NFTID{}))
}

func TestBurnNativeTokenAccumulatesAcrossCalls(t *testing.T) {
	tokenID := tpkg.RandTokenID()
	burn := inputselection.NewBurn().
		NativeToken(tokenID, big.NewInt(10)).
		NativeToken(tokenID, big.NewInt(5))

	require.Equal(t, 0, burn.NativeTokens[tokenID].Cmp(big.NewInt(15)))
}

func TestNilBurnReportsNothingMarked(t *testing.T) {
	var burn *inputselection.Burn

	require.False(t, burn.HasAlias(iotago.AliasID{}))
	require.False(t, burn.HasNFT(iotago.NFTID{}))
	require.False(t, burn.HasFoundry(iotago.FoundryID{}))
}

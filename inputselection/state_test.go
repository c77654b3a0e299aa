package inputselection_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	iotago "github.com/sl00k/iota-input-selection"
	"github.com/sl00k/iota-input-selection/builder"
	"github.com/sl00k/iota-input-selection/inputselection"
	"github.com/sl00k/iota-input-selection/tpkg"
)

func newState(inputs []inputselection.InputWithID, outputs []inputselection.OutputInfo) *inputselection.SelectionState {
	return &inputselection.SelectionState{
		AvailableInputs: inputs,
		Outputs:         outputs,
		Protocol:        tpkg.ProtocolParameters(),
	}
}

func TestAmountSumsTotalsSelectedInputsAndOutputs(t *testing.T) {
	addr := tpkg.RandEd25519Address()
	state := newState(nil, []inputselection.OutputInfo{
		{Output: builder.NewBasicOutputBuilder(addr, 100_000).MustBuild(), Provided: true},
	})
	in := inputselection.InputWithID{
		OutputID: tpkg.RandOutputID(),
		Output:   builder.NewBasicOutputBuilder(addr, 150_000).MustBuild(),
	}
	state.AvailableInputs = []inputselection.InputWithID{in}
	state.SelectedInputs = []inputselection.InputWithID{in}

	inSum, outSum, inSDR, outSDR, err := inputselection.AmountSums(state)
	require.NoError(t, err)
	require.Equal(t, iotago.BaseToken(150_000), inSum)
	require.Equal(t, iotago.BaseToken(100_000), outSum)
	require.Empty(t, inSDR)
	// The plain output is a simple transfer, so it registers its own
	// address as an SDR-satisfying deposit even though no SDR is in play.
	require.Len(t, outSDR, 1)
}

func TestAmountSumsInflatesForUnmatchedStorageDepositReturn(t *testing.T) {
	returnAddr := tpkg.RandEd25519Address()
	recipient := tpkg.RandEd25519Address()

	in := inputselection.InputWithID{
		OutputID: tpkg.RandOutputID(),
		Output: builder.NewBasicOutputBuilder(tpkg.RandEd25519Address(), 200_000).
			StorageDepositReturn(returnAddr, 50_000).
			MustBuild(),
	}
	state := newState(nil, []inputselection.OutputInfo{
		{Output: builder.NewBasicOutputBuilder(recipient, 68_000).MustBuild(), Provided: true},
	})
	state.SelectedInputs = []inputselection.InputWithID{in}

	_, outSum, _, _, err := inputselection.AmountSums(state)
	require.NoError(t, err)
	// The caller never provided a matching return output to returnAddr, so
	// the SDR obligation inflates outputsSum by the full 50_000.
	require.Equal(t, iotago.BaseToken(68_000+50_000), outSum)
}

func TestAmountSumsRecognizesProvidedStorageDepositReturnOutput(t *testing.T) {
	returnAddr := tpkg.RandEd25519Address()
	recipient := tpkg.RandEd25519Address()

	in := inputselection.InputWithID{
		OutputID: tpkg.RandOutputID(),
		Output: builder.NewBasicOutputBuilder(tpkg.RandEd25519Address(), 200_000).
			StorageDepositReturn(returnAddr, 50_000).
			MustBuild(),
	}
	state := newState(nil, []inputselection.OutputInfo{
		{Output: builder.NewBasicOutputBuilder(recipient, 68_000).MustBuild(), Provided: true},
		{Output: builder.NewBasicOutputBuilder(returnAddr, 50_000).MustBuild(), Provided: true},
	})
	state.SelectedInputs = []inputselection.InputWithID{in}

	_, outSum, _, _, err := inputselection.AmountSums(state)
	require.NoError(t, err)
	// The caller's own return output already covers the SDR due, so no
	// additional inflation is needed.
	require.Equal(t, iotago.BaseToken(68_000+50_000), outSum)
}

func TestNativeTokenSumsAppliesBurnToOutputSide(t *testing.T) {
	tokenID := tpkg.RandTokenID()
	addr := tpkg.RandEd25519Address()

	in := inputselection.InputWithID{
		OutputID: tpkg.RandOutputID(),
		Output: builder.NewBasicOutputBuilder(addr, 500_000).
			NativeToken(&iotago.NativeToken{ID: tokenID, Amount: big.NewInt(30)}).
			MustBuild(),
	}
	state := newState(nil, nil)
	state.SelectedInputs = []inputselection.InputWithID{in}
	state.Burn = inputselection.NewBurn().NativeToken(tokenID, big.NewInt(30))

	inSums, outSums := inputselection.NativeTokenSums(state)
	require.Equal(t, 0, inSums[tokenID].Cmp(big.NewInt(30)))
	require.Equal(t, 0, outSums[tokenID].Cmp(big.NewInt(-30)))
}

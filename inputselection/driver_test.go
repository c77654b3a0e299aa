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

func basicInput(addr iotago.Address, amount iotago.BaseToken) inputselection.InputWithID {
	return inputselection.InputWithID{
		OutputID: tpkg.RandOutputID(),
		Output:   builder.NewBasicOutputBuilder(addr, amount).MustBuild(),
	}
}

func TestSelectExactAmountNoRemainder(t *testing.T) {
	params := tpkg.ProtocolParameters()
	addr := tpkg.RandEd25519Address()
	recipient := tpkg.RandEd25519Address()

	target := builder.NewBasicOutputBuilder(recipient, 0).MustBuild()
	targetAmount := iotago.MinStorageDeposit(*params.RentStructure(), target)
	target.Amount = targetAmount

	in := basicInput(addr, targetAmount)

	selected, err := inputselection.New(
		[]inputselection.InputWithID{in},
		[]iotago.Output{target},
		params,
	).Select()

	require.NoError(t, err)
	require.Len(t, selected.Inputs, 1)
	require.Equal(t, in.OutputID, selected.Inputs[0].OutputID)
	require.Len(t, selected.Outputs, 1)
	require.Equal(t, targetAmount, selected.Outputs[0].Deposit())
}

func TestSelectInsufficientAmount(t *testing.T) {
	params := tpkg.ProtocolParameters()
	addr := tpkg.RandEd25519Address()
	recipient := tpkg.RandEd25519Address()

	target := builder.NewBasicOutputBuilder(recipient, 200_000).MustBuild()
	in := basicInput(addr, 50_000)

	_, err := inputselection.New(
		[]inputselection.InputWithID{in},
		[]iotago.Output{target},
		params,
	).Select()

	require.Error(t, err)
	var insufficient *inputselection.InsufficientAmountError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, iotago.BaseToken(50_000), insufficient.Found)
	require.Equal(t, iotago.BaseToken(200_000), insufficient.Required)
}

func TestSelectSynthesizesRemainder(t *testing.T) {
	params := tpkg.ProtocolParameters()
	addr := tpkg.RandEd25519Address()
	recipient := tpkg.RandEd25519Address()
	remainderAddr := tpkg.RandEd25519Address()

	target := builder.NewBasicOutputBuilder(recipient, 100_000).MustBuild()
	in := basicInput(addr, 200_000)

	selected, err := inputselection.New(
		[]inputselection.InputWithID{in},
		[]iotago.Output{target},
		params,
	).RemainderAddress(remainderAddr).Select()

	require.NoError(t, err)
	require.Len(t, selected.Inputs, 1)
	require.Len(t, selected.Outputs, 2)

	var inSum, outSum iotago.BaseToken
	inSum += in.Output.Deposit()
	for _, o := range selected.Outputs {
		outSum += o.Deposit()
	}
	require.Equal(t, inSum, outSum)

	var foundRemainder bool
	for _, o := range selected.Outputs {
		if o == target {
			continue
		}
		foundRemainder = true
		require.Equal(t, iotago.BaseToken(100_000), o.Deposit())
		require.Equal(t, remainderAddr, o.(*iotago.BasicOutput).Ident())
	}
	require.True(t, foundRemainder)
}

func TestSelectSenderRequirementFundsOutputDirectly(t *testing.T) {
	params := tpkg.ProtocolParameters()
	senderAddr := tpkg.RandEd25519Address()
	recipient := tpkg.RandEd25519Address()
	remainderAddr := tpkg.RandEd25519Address()

	target := builder.NewBasicOutputBuilder(recipient, 0).MustBuild()
	targetAmount := iotago.MinStorageDeposit(*params.RentStructure(), target)

	target = builder.NewBasicOutputBuilder(recipient, targetAmount).
		Sender(senderAddr).
		MustBuild()

	senderInput := basicInput(senderAddr, targetAmount)

	selected, err := inputselection.New(
		[]inputselection.InputWithID{senderInput},
		[]iotago.Output{target},
		params,
	).RemainderAddress(remainderAddr).Select()

	require.NoError(t, err)
	require.Len(t, selected.Inputs, 1)
	require.Equal(t, senderInput.OutputID, selected.Inputs[0].OutputID)
	require.Len(t, selected.Outputs, 1, "amounts tie exactly, no remainder should be synthesized")
}

func TestSelectIssuerRequirementUnfulfillable(t *testing.T) {
	params := tpkg.ProtocolParameters()
	issuer := tpkg.RandEd25519Address()

	aliasGenesis := builder.NewAliasOutputBuilder(tpkg.RandEd25519Address(), tpkg.RandEd25519Address(), 1_000_000).
		ImmutableIssuer(issuer).
		MustBuild()

	_, err := inputselection.New(
		nil,
		[]iotago.Output{aliasGenesis},
		params,
	).Select()

	require.Error(t, err)
	var unfulfillable *inputselection.UnfulfillableRequirementError
	require.ErrorAs(t, err, &unfulfillable)
	require.Equal(t, inputselection.RequirementIssuer, unfulfillable.Requirement.Kind)
}

func TestSelectRequiredInputsAreAlwaysSelected(t *testing.T) {
	params := tpkg.ProtocolParameters()
	addr := tpkg.RandEd25519Address()
	recipient := tpkg.RandEd25519Address()
	remainderAddr := tpkg.RandEd25519Address()

	target := builder.NewBasicOutputBuilder(recipient, 10_000).MustBuild()
	required := basicInput(addr, 500_000)

	selected, err := inputselection.New(
		[]inputselection.InputWithID{required},
		[]iotago.Output{target},
		params,
	).RequiredInputs(map[iotago.OutputID]struct{}{required.OutputID: {}}).
		RemainderAddress(remainderAddr).
		Select()

	require.NoError(t, err)
	require.Len(t, selected.Inputs, 1)
	require.Equal(t, required.OutputID, selected.Inputs[0].OutputID)
}

func TestSelectNativeTokenBurnExcludedFromRemainder(t *testing.T) {
	params := tpkg.ProtocolParameters()
	addr := tpkg.RandEd25519Address()
	recipient := tpkg.RandEd25519Address()
	remainderAddr := tpkg.RandEd25519Address()
	tokenID := tpkg.RandTokenID()

	target := builder.NewBasicOutputBuilder(recipient, 100_000).MustBuild()

	in := inputselection.InputWithID{
		OutputID: tpkg.RandOutputID(),
		Output: builder.NewBasicOutputBuilder(addr, 500_000).
			NativeToken(&iotago.NativeToken{ID: tokenID, Amount: big.NewInt(30)}).
			MustBuild(),
	}

	burn := inputselection.NewBurn().NativeToken(tokenID, big.NewInt(30))

	selected, err := inputselection.New(
		[]inputselection.InputWithID{in},
		[]iotago.Output{target},
		params,
	).Burn(burn).RemainderAddress(remainderAddr).Select()

	require.NoError(t, err)
	require.Len(t, selected.Inputs, 1)
	require.Len(t, selected.Outputs, 2)

	for _, o := range selected.Outputs {
		require.Empty(t, o.NativeTokenList(), "the melted token must never reappear in an output")
	}

	var outSum iotago.BaseToken
	for _, o := range selected.Outputs {
		outSum += o.Deposit()
	}
	require.Equal(t, in.Output.Deposit(), outSum)
}

func TestSelectNativeTokensPicksLargestHolderPerTokenID(t *testing.T) {
	params := tpkg.ProtocolParameters()
	tokenA := tpkg.RandTokenID()
	tokenB := tpkg.RandTokenID()
	tokenC := tpkg.RandTokenID()
	addrX := tpkg.RandEd25519Address()
	addrY := tpkg.RandEd25519Address()
	recipient := tpkg.RandEd25519Address()

	target := builder.NewBasicOutputBuilder(recipient, 0).
		NativeToken(&iotago.NativeToken{ID: tokenA, Amount: big.NewInt(100)}).
		MustBuild()
	targetAmount := iotago.MinStorageDeposit(*params.RentStructure(), target)
	target.Amount = targetAmount

	// inputX holds three distinct token ids but barely any of the one
	// actually needed; a sort keyed on distinct-token count would try it
	// first. inputY holds only tokenA, but enough of it alone.
	inputX := inputselection.InputWithID{
		OutputID: tpkg.RandOutputID(),
		Output: builder.NewBasicOutputBuilder(addrX, targetAmount).
			NativeToken(&iotago.NativeToken{ID: tokenA, Amount: big.NewInt(1)}).
			NativeToken(&iotago.NativeToken{ID: tokenB, Amount: big.NewInt(1)}).
			NativeToken(&iotago.NativeToken{ID: tokenC, Amount: big.NewInt(1)}).
			MustBuild(),
	}
	inputY := inputselection.InputWithID{
		OutputID: tpkg.RandOutputID(),
		Output: builder.NewBasicOutputBuilder(addrY, targetAmount).
			NativeToken(&iotago.NativeToken{ID: tokenA, Amount: big.NewInt(100)}).
			MustBuild(),
	}

	selected, err := inputselection.New(
		[]inputselection.InputWithID{inputX, inputY},
		[]iotago.Output{target},
		params,
	).Select()

	require.NoError(t, err)
	require.Len(t, selected.Inputs, 1, "the single largest holder of tokenA must cover the deficit alone")
	require.Equal(t, inputY.OutputID, selected.Inputs[0].OutputID)
}

func TestSelectStorageDepositReturnRecognizesProvidedReturnOutput(t *testing.T) {
	params := tpkg.ProtocolParameters()
	addr := tpkg.RandEd25519Address()
	recipient := tpkg.RandEd25519Address()
	returnAddr := tpkg.RandEd25519Address()
	remainderAddr := tpkg.RandEd25519Address()

	const recipientAmount iotago.BaseToken = 68_000
	const sdrAmount iotago.BaseToken = 68_000
	const inputAmount iotago.BaseToken = 300_000

	target := builder.NewBasicOutputBuilder(recipient, recipientAmount).MustBuild()
	sdrReturn := builder.NewBasicOutputBuilder(returnAddr, sdrAmount).MustBuild()

	in := inputselection.InputWithID{
		OutputID: tpkg.RandOutputID(),
		Output: builder.NewBasicOutputBuilder(addr, inputAmount).
			StorageDepositReturn(returnAddr, sdrAmount).
			MustBuild(),
	}

	selected, err := inputselection.New(
		[]inputselection.InputWithID{in},
		[]iotago.Output{target, sdrReturn},
		params,
	).RemainderAddress(remainderAddr).Select()

	require.NoError(t, err)
	require.Len(t, selected.Inputs, 1)
	require.Len(t, selected.Outputs, 3, "target, SDR return and leftover remainder")

	var outSum iotago.BaseToken
	for _, o := range selected.Outputs {
		outSum += o.Deposit()
	}
	require.Equal(t, inputAmount, outSum)
}

func TestSelectSenderRequirementSatisfiedByAliasChainIdentity(t *testing.T) {
	params := tpkg.ProtocolParameters()
	aliasID := tpkg.RandAliasID()
	aliasAddr := iotago.NewAliasAddress(aliasID)
	stateCtrl := tpkg.RandEd25519Address()
	gov := tpkg.RandEd25519Address()
	fundingAddr := tpkg.RandEd25519Address()
	recipient := tpkg.RandEd25519Address()

	const aliasAmount iotago.BaseToken = 68_000

	currentAlias := inputselection.InputWithID{
		OutputID: tpkg.RandOutputID(),
		Output:   builder.NewAliasOutputBuilder(stateCtrl, gov, aliasAmount).AliasID(aliasID).MustBuild(),
	}

	targetBasic := builder.NewBasicOutputBuilder(recipient, 0).Sender(aliasAddr).MustBuild()
	targetAmount := iotago.MinStorageDeposit(*params.RentStructure(), targetBasic)
	targetBasic = builder.NewBasicOutputBuilder(recipient, targetAmount).Sender(aliasAddr).MustBuild()

	aliasContinuation := builder.NewAliasOutputBuilderFromPrevious(currentAlias.Output.(*iotago.AliasOutput)).
		StateTransition().
		MustBuild()

	fundingInput := basicInput(fundingAddr, targetAmount)

	selected, err := inputselection.New(
		[]inputselection.InputWithID{currentAlias, fundingInput},
		[]iotago.Output{aliasContinuation, targetBasic},
		params,
	).Select()

	require.NoError(t, err)
	require.Len(t, selected.Inputs, 2)
	require.Len(t, selected.Outputs, 2, "amounts tie exactly, no remainder should be synthesized")

	var sawAliasInput bool
	for _, in := range selected.Inputs {
		if in.OutputID == currentAlias.OutputID {
			sawAliasInput = true
		}
	}
	require.True(t, sawAliasInput, "the alias named as Sender must be pulled in as an input via its own chain identity, not its state controller")
}

func TestSelectChainAddressUnlockPullsInControllingAlias(t *testing.T) {
	params := tpkg.ProtocolParameters()
	aliasID := tpkg.RandAliasID()
	aliasAddr := iotago.NewAliasAddress(aliasID)
	stateCtrl := tpkg.RandEd25519Address()
	gov := tpkg.RandEd25519Address()
	recipient := tpkg.RandEd25519Address()

	basicOwnedByAlias := inputselection.InputWithID{
		OutputID: tpkg.RandOutputID(),
		Output:   builder.NewBasicOutputBuilder(aliasAddr, 500_000).MustBuild(),
	}
	aliasInput := inputselection.InputWithID{
		OutputID: tpkg.RandOutputID(),
		Output:   builder.NewAliasOutputBuilder(stateCtrl, gov, 68_000).AliasID(aliasID).MustBuild(),
	}

	target := builder.NewBasicOutputBuilder(recipient, 500_000).MustBuild()

	selected, err := inputselection.New(
		[]inputselection.InputWithID{basicOwnedByAlias, aliasInput},
		[]iotago.Output{target},
		params,
	).Select()

	require.NoError(t, err)
	require.Len(t, selected.Inputs, 2)
	require.Len(t, selected.Outputs, 2)

	var continuation *iotago.AliasOutput
	for _, o := range selected.Outputs {
		if alias, is := o.(*iotago.AliasOutput); is {
			continuation = alias
		}
	}
	require.NotNil(t, continuation, "the controlling alias must be auto-continued")
	require.Equal(t, aliasID, continuation.AliasID)
	require.Equal(t, uint32(1), continuation.StateIndex)
	require.Equal(t, iotago.BaseToken(68_000), continuation.Amount)
}

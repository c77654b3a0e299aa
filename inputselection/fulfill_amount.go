package inputselection

import (
	"math/big"
	"sort"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/lo"

	iotago "github.com/sl00k/iota-input-selection"

	"github.com/sl00k/iota-input-selection/builder"
)

// missingAmount computes how many more base tokens selected inputs must
// still contribute to cover outputsSum plus any pending remainder, mirroring
// the original's missing_amount (spec.md §4.2).
func missingAmount(inputsSum, outputsSum, remainderAmount iotago.BaseToken, nativeTokensRemainder bool) iotago.BaseToken {
	switch {
	case inputsSum > outputsSum:
		diff := inputsSum - outputsSum
		if remainderAmount > diff {
			return remainderAmount - diff
		}

		return 0
	case inputsSum < outputsSum:
		return outputsSum - inputsSum
	case nativeTokensRemainder:
		return remainderAmount
	default:
		return 0
	}
}

// remainderAmount reports the minimum storage deposit a synthesized
// Basic remainder output to state.RemainderAddress would need to carry
// (spec.md §4.2's "remainder_cost"), and whether any leftover native
// tokens force such a remainder to exist regardless of amount (spec.md
// §4.3: a native-token difference always needs an output to carry it).
// Rent depends only on an output's shape, not its Amount value, so the
// reported cost is stable even though the actual leftover is not known
// until the driver's final reconciliation pass.
func remainderAmount(state *SelectionState) (iotago.BaseToken, bool) {
	inSums, outSums := NativeTokenSums(state)

	forceRemainder := false
	var tokens iotago.NativeTokens
	for id, inAmount := range inSums {
		outAmount := outSums[id]
		if outAmount == nil || inAmount.Cmp(outAmount) != 0 {
			forceRemainder = true

			diff := new(big.Int).Sub(inAmount, outSums.ValueOrZero(id))
			if diff.Sign() > 0 {
				tokens = append(tokens, &iotago.NativeToken{ID: id, Amount: diff})
			}
		}
	}

	if state.RemainderAddress == nil {
		return 0, forceRemainder
	}

	b := builder.NewBasicOutputBuilder(state.RemainderAddress, 0)
	for _, nt := range tokens {
		b = b.NativeToken(nt)
	}

	candidate, err := b.Build()
	if err != nil {
		return 0, forceRemainder
	}

	return iotago.MinStorageDeposit(*state.Protocol.RentStructure(), candidate), forceRemainder
}

// fulfillAmount attempts to cover the Amount requirement by selecting more
// inputs from state.AvailableInputs, following the four-tier preference
// order of the original implementation: Ed25519-without-SDR first (cheapest
// to spend), then Ed25519-with-SDR, then non-Ed25519 Basic outputs, and
// finally any chain-constrained output. Tier 4 stops once the amount is
// covered, synthesizes a continuation output for each chain input it
// selects, and requeues the Amount requirement for a further pass.
func fulfillAmount(state *SelectionState) (*Requirement, error) {
	inputsSum, outputsSum, inputsSDR, outputsSDR, err := AmountSums(state)
	if err != nil {
		return nil, err
	}
	remainder, nativeTokensRemainder := remainderAmount(state)

	if missingAmount(inputsSum, outputsSum, remainder, nativeTokensRemainder) == 0 {
		return nil, nil
	}

	sort.Slice(state.AvailableInputs, func(i, j int) bool {
		return state.AvailableInputs[i].Output.Deposit() < state.AvailableInputs[j].Output.Deposit()
	})

	done := func() bool {
		return missingAmount(inputsSum, outputsSum, remainder, nativeTokensRemainder) == 0
	}

	// Tier 1: Basic outputs with an Ed25519 address and no SDR.
	for _, in := range candidatesByTier(state, tierEd25519NoSDR) {
		in, ok := state.selectInput(in.OutputID)
		if !ok {
			continue
		}
		if inputsSum, err = inputsSum.Add(in.Output.Deposit()); err != nil {
			return nil, ierrors.Wrap(err, "failed to sum selected input deposits")
		}

		if done() && state.Policy == PolicyMinInputs {
			return nil, nil
		}
	}
	if done() {
		return nil, nil
	}

	// Tier 2: Basic outputs with an Ed25519 address and an SDR that does
	// not return the output's entire amount.
	for _, in := range candidatesByTier(state, tierEd25519WithSDR) {
		in, ok := state.selectInput(in.OutputID)
		if !ok {
			continue
		}
		//nolint:forcetypeassert // tierEd25519WithSDR only yields BasicOutput candidates
		basic := in.Output.(*iotago.BasicOutput)
		sdr := basic.Conditions.Set().StorageDepositReturn()

		if inputsSum, err = inputsSum.Add(in.Output.Deposit()); err != nil {
			return nil, ierrors.Wrap(err, "failed to sum selected input deposits")
		}

		inputSDR := inputsSDR[sdr.ReturnAddress.Key()] + sdr.Amount
		outputSDR := outputsSDR[sdr.ReturnAddress.Key()]
		if inputSDR > outputSDR {
			if outputsSum, err = outputsSum.Add(inputSDR - outputSDR); err != nil {
				return nil, ierrors.Wrap(err, "failed to inflate storage deposit return obligation")
			}
			outputsSDR[sdr.ReturnAddress.Key()] += sdr.Amount
		}
		inputsSDR[sdr.ReturnAddress.Key()] += sdr.Amount

		if done() && state.Policy == PolicyMinInputs {
			return nil, nil
		}
	}
	if done() {
		return nil, nil
	}

	// Tier 3: Basic outputs with a non-Ed25519 single address unlock condition.
	for _, candidate := range candidatesByTier(state, tierOtherBasic) {
		//nolint:forcetypeassert // tierOtherBasic only yields BasicOutput candidates
		ident := candidate.Output.(*iotago.BasicOutput).Ident()

		in, ok := state.selectInput(candidate.OutputID)
		if !ok {
			continue
		}
		if inputsSum, err = inputsSum.Add(in.Output.Deposit()); err != nil {
			return nil, ierrors.Wrap(err, "failed to sum selected input deposits")
		}

		// Unlocking via an Alias/NFT address requires that chain output
		// itself be present as an input (spec.md §8 S7); surface it as a
		// fresh requirement rather than silently leaving it unselected.
		if req := identityRequirementFor(ident); req != nil {
			return req, nil
		}

		if inputsSum >= outputsSum+remainder && state.Policy == PolicyMinInputs {
			return nil, nil
		}
	}
	if inputsSum >= outputsSum+remainder {
		return nil, nil
	}

	// Tier 4: any remaining, non-Basic (chain-constrained) output. Select
	// until the amount is covered, adding a continuation output for each
	// selected chain input, then requeue the Amount requirement.
	tier4 := candidatesByTier(state, tierNonBasic)
	if len(tier4) > 0 {
		for _, candidate := range tier4 {
			in, ok := state.selectInput(candidate.OutputID)
			if !ok {
				continue
			}
			if inputsSum, err = inputsSum.Add(in.Output.Deposit()); err != nil {
				return nil, ierrors.Wrap(err, "failed to sum selected input deposits")
			}

			added, err := ensureChainContinuation(state, in.Output, in.OutputID)
			if err != nil {
				return nil, err
			}
			if outputsSum, err = outputsSum.Add(added); err != nil {
				return nil, ierrors.Wrap(err, "failed to sum target output deposits")
			}

			if inputsSum >= outputsSum+remainder {
				break
			}
		}

		req := AmountRequirement()

		return &req, nil
	}

	if missingAmount(inputsSum, outputsSum, remainder, nativeTokensRemainder) == 0 {
		return nil, nil
	}

	return nil, shrinkChainOutputsOrFail(state, inputsSum, outputsSum, remainder, nativeTokensRemainder)
}

type amountTier byte

const (
	tierEd25519NoSDR amountTier = iota
	tierEd25519WithSDR
	tierOtherBasic
	tierNonBasic
)

func candidatesByTier(state *SelectionState, tier amountTier) []InputWithID {
	return lo.Filter(state.AvailableInputs, func(in InputWithID, _ int) bool {
		basic, isBasic := in.Output.(*iotago.BasicOutput)

		switch tier {
		case tierEd25519NoSDR:
			return isBasic && isEd25519(basic.Ident()) && basic.Conditions.Set().StorageDepositReturn() == nil
		case tierEd25519WithSDR:
			if !isBasic || !isEd25519(basic.Ident()) {
				return false
			}
			sdr := basic.Conditions.Set().StorageDepositReturn()

			return sdr != nil && sdr.Amount != basic.Amount
		case tierOtherBasic:
			return isBasic && len(basic.Conditions) == 1 && !isEd25519(basic.Ident())
		case tierNonBasic:
			return !isBasic
		default:
			return false
		}
	})
}

func isEd25519(addr iotago.Address) bool {
	_, is := addr.(*iotago.Ed25519Address)

	return is
}

// shrinkChainOutputsOrFail attempts to free up the remaining missing amount
// by shrinking the Amount of not-yet-provided chain outputs down to their
// own rent floor, exactly as the original does as a last resort before
// giving up (spec.md §4.2).
func shrinkChainOutputsOrFail(state *SelectionState, inputsSum, outputsSum, remainder iotago.BaseToken, nativeTokensRemainder bool) error {
	rent := state.Protocol.RentStructure()

	for i := range state.Outputs {
		out := &state.Outputs[i]
		if out.Provided {
			continue
		}

		diff := missingAmount(inputsSum, outputsSum, remainder, nativeTokensRemainder)
		if diff == 0 {
			return nil
		}

		amount := out.Output.Deposit()
		minRent := iotago.MinStorageDeposit(*rent, out.Output)

		newAmount := minRent
		if amount >= diff+minRent {
			newAmount = amount - diff
		}

		shrunk, err := shrinkChainOutputAmount(out.Output, newAmount)
		if err != nil {
			return err
		}

		outputsSum -= amount - newAmount
		out.Output = shrunk

		if missingAmount(inputsSum, outputsSum, remainder, nativeTokensRemainder) == 0 {
			return nil
		}
	}

	return &InsufficientAmountError{
		Found:    inputsSum,
		Required: inputsSum + missingAmount(inputsSum, outputsSum, remainder, nativeTokensRemainder),
	}
}

func shrinkChainOutputAmount(output iotago.Output, newAmount iotago.BaseToken) (iotago.Output, error) {
	switch o := output.(type) {
	case *iotago.AliasOutput:
		b := builder.NewAliasOutputBuilderFromPrevious(o)

		return b.Amount(newAmount).Build()
	case *iotago.NFTOutput:
		b := builder.NewNFTOutputBuilderFromPrevious(o)

		return b.Amount(newAmount).Build()
	case *iotago.FoundryOutput:
		b := builder.NewFoundryOutputBuilderFromPrevious(o)

		return b.Amount(newAmount).Build()
	default:
		panic("only alias, nft and foundry outputs can be automatically shrunk")
	}
}

// ensureChainContinuation synthesizes a passthrough transition output for a
// chain-constrained input selected without a pre-existing Alias/NFT/Foundry
// requirement driving it (e.g. tier 4 here, rather than fulfillAlias et
// al.), and reports the deposit it added to outputsSum. If a continuation
// already exists in state.Outputs, nothing is added (spec.md §4.4).
func ensureChainContinuation(state *SelectionState, output iotago.Output, outputID iotago.OutputID) (iotago.BaseToken, error) {
	switch o := output.(type) {
	case *iotago.AliasOutput:
		id := o.ChainID(outputID)
		for _, out := range state.Outputs {
			if alias, is := out.Output.(*iotago.AliasOutput); is && alias.AliasID == id {
				return 0, nil
			}
		}

		next, err := builder.NewAliasOutputBuilderFromPrevious(o).AliasID(id).StateTransition().Build()
		if err != nil {
			return 0, &InvalidOutputBuildingError{Err: err}
		}
		state.Outputs = append(state.Outputs, OutputInfo{Output: next, Provided: false})

		return next.Deposit(), nil

	case *iotago.NFTOutput:
		id := o.ChainID(outputID)
		for _, out := range state.Outputs {
			if nft, is := out.Output.(*iotago.NFTOutput); is && nft.NFTID == id {
				return 0, nil
			}
		}

		next, err := builder.NewNFTOutputBuilderFromPrevious(o).NFTID(id).Build()
		if err != nil {
			return 0, &InvalidOutputBuildingError{Err: err}
		}
		state.Outputs = append(state.Outputs, OutputInfo{Output: next, Provided: false})

		return next.Deposit(), nil

	case *iotago.FoundryOutput:
		id := o.ID()
		for _, out := range state.Outputs {
			if foundry, is := out.Output.(*iotago.FoundryOutput); is && foundry.ID() == id {
				return 0, nil
			}
		}

		next, err := builder.NewFoundryOutputBuilderFromPrevious(o).Build()
		if err != nil {
			return 0, &InvalidOutputBuildingError{Err: err}
		}
		state.Outputs = append(state.Outputs, OutputInfo{Output: next, Provided: false})

		return next.Deposit(), nil

	default:
		return 0, nil
	}
}

package inputselection

import (
	"math/big"
	"sort"

	iotago "github.com/sl00k/iota-input-selection"
)

// fulfillNativeTokens satisfies every native token deficit the outputs (and
// Burn set) carry, one token id at a time: for each id still short, it sorts
// the available inputs by how much of that specific id they hold and selects
// greedy-largest-first until the id's deficit is covered (spec.md §4.3).
func fulfillNativeTokens(state *SelectionState) (*Requirement, error) {
	inSums, outSums := NativeTokenSums(state)
	if nativeTokensSatisfied(inSums, outSums) {
		return nil, nil
	}

	for id, outAmount := range outSums {
		if deficit(inSums, id, outAmount) <= 0 {
			continue
		}

		candidates := make([]InputWithID, len(state.AvailableInputs))
		copy(candidates, state.AvailableInputs)
		sort.Slice(candidates, func(i, j int) bool {
			return tokenAmount(candidates[i].Output, id).Cmp(tokenAmount(candidates[j].Output, id)) > 0
		})

		for _, in := range candidates {
			if deficit(inSums, id, outAmount) <= 0 {
				break
			}
			if tokenAmount(in.Output, id).Sign() == 0 {
				continue
			}

			selected, ok := state.selectInput(in.OutputID)
			if !ok {
				continue
			}
			for tid, amount := range selected.Output.NativeTokenList().Set() {
				addToSet(inSums, tid, amount)
			}
		}
	}

	if !nativeTokensSatisfied(inSums, outSums) {
		req := NativeTokensRequirement()

		return nil, &UnfulfillableRequirementError{Requirement: req}
	}

	return nil, nil
}

// tokenAmount returns the amount of native token id output holds, or zero
// if it holds none.
func tokenAmount(output iotago.Output, id iotago.TokenID) *big.Int {
	for _, nt := range output.NativeTokenList() {
		if nt.ID == id {
			return nt.Amount
		}
	}

	return big.NewInt(0)
}

// deficit reports whether inSums still falls short of outAmount for id:
// positive when short, zero or negative once covered.
func deficit(inSums iotago.NativeTokenSet, id iotago.TokenID, outAmount *big.Int) int {
	inAmount := inSums[id]
	if inAmount == nil {
		return outAmount.Sign()
	}
	if inAmount.Cmp(outAmount) < 0 {
		return 1
	}

	return -1
}

func nativeTokensSatisfied(inSums, outSums iotago.NativeTokenSet) bool {
	for id, outAmount := range outSums {
		inAmount := inSums[id]
		if inAmount == nil || inAmount.Cmp(outAmount) < 0 {
			return false
		}
	}

	return true
}

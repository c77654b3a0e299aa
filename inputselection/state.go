package inputselection

import (
	"math/big"

	"github.com/iotaledger/hive.go/ierrors"

	iotago "github.com/sl00k/iota-input-selection"
)

// InputWithID pairs an Output with the OutputID it is referenced by,
// mirroring the teacher's InputSigningData shape without the signing
// metadata this engine never needs (spec.md's Non-goals exclude signing).
type InputWithID struct {
	OutputID iotago.OutputID
	Output   iotago.Output
}

// OutputInfo wraps a target Output together with whether the caller
// supplied it directly (Provided) or the engine synthesized/adjusted it
// (e.g. a remainder, or an Alias/NFT/Foundry output whose Amount the
// amount fulfiller shrank to free up funds).
type OutputInfo struct {
	Output   iotago.Output
	Provided bool
}

// SelectionState is the mutable working state threaded through every
// requirement fulfiller (spec.md §3).
type SelectionState struct {
	SelectedInputs  []InputWithID
	AvailableInputs []InputWithID
	Outputs         []OutputInfo
	Burn            *Burn
	Protocol        iotago.ProtocolParameters
	Policy          SelectionPolicy
	// RemainderAddress is the address any synthesized remainder output
	// pays to. It is read by the amount fulfiller to size the minimum
	// remainder deposit it must leave room for (spec.md §4.1, §4.2).
	RemainderAddress iotago.Address
}

// IsSelected reports whether id is already part of SelectedInputs.
func (s *SelectionState) IsSelected(id iotago.OutputID) bool {
	for _, in := range s.SelectedInputs {
		if in.OutputID == id {
			return true
		}
	}

	return false
}

// selectInput moves the input with the given OutputID from AvailableInputs
// to SelectedInputs. It is a no-op if the input is not available or is
// already selected.
func (s *SelectionState) selectInput(id iotago.OutputID) (InputWithID, bool) {
	for i, in := range s.AvailableInputs {
		if in.OutputID == id {
			s.AvailableInputs = append(s.AvailableInputs[:i], s.AvailableInputs[i+1:]...)
			s.SelectedInputs = append(s.SelectedInputs, in)

			return in, true
		}
	}

	return InputWithID{}, false
}

// AmountSums mirrors the original's amount_sums: it totals the selected
// inputs' and target outputs' deposits, and separately tracks the
// storage-deposit-return obligations each side carries per return address
// (spec.md §4.2). Deposits come from caller-supplied outputs, so the running
// totals are accumulated with overflow-checked BaseToken.Add.
func AmountSums(state *SelectionState) (inputsSum, outputsSum iotago.BaseToken, inputsSDR, outputsSDR map[string]iotago.BaseToken, err error) {
	inputsSDR = make(map[string]iotago.BaseToken)
	outputsSDR = make(map[string]iotago.BaseToken)

	for _, in := range state.SelectedInputs {
		if inputsSum, err = inputsSum.Add(in.Output.Deposit()); err != nil {
			return 0, 0, nil, nil, ierrors.Wrap(err, "failed to sum selected input deposits")
		}

		if sdr := in.Output.UnlockConditionSet().StorageDepositReturn(); sdr != nil {
			inputsSDR[sdr.ReturnAddress.Key()] += sdr.Amount
		}
	}

	for _, out := range state.Outputs {
		if outputsSum, err = outputsSum.Add(out.Output.Deposit()); err != nil {
			return 0, 0, nil, nil, ierrors.Wrap(err, "failed to sum target output deposits")
		}

		if basic, is := out.Output.(*iotago.BasicOutput); is {
			if addr := simpleDepositAddress(basic); addr != nil {
				outputsSDR[addr.Key()] += basic.Amount
			}
		}
	}

	for addr, inAmount := range inputsSDR {
		outAmount := outputsSDR[addr]
		if inAmount > outAmount {
			if outputsSum, err = outputsSum.Add(inAmount - outAmount); err != nil {
				return 0, 0, nil, nil, ierrors.Wrap(err, "failed to inflate storage deposit return obligation")
			}
		}
	}

	return inputsSum, outputsSum, inputsSDR, outputsSDR, nil
}

// simpleDepositAddress returns the address a BasicOutput would return its
// full deposit to if it is nothing more than an SDR remainder: a single
// address unlock condition output with no features and no native tokens
// carrying a matching SDR return amount is not itself a requirement, but an
// output whose sole unlock condition is the address the SDR is returning
// to. This mirrors the original's Output::Basic::simple_deposit_address.
func simpleDepositAddress(output *iotago.BasicOutput) iotago.Address {
	if !output.IsSimpleTransfer() {
		return nil
	}

	return output.Ident()
}

// NativeTokenSums totals the native tokens held by the selected inputs and
// by the target outputs, plus whatever the caller marked to be melted via Burn.
func NativeTokenSums(state *SelectionState) (inSums, outSums iotago.NativeTokenSet) {
	inSums = make(iotago.NativeTokenSet)
	outSums = make(iotago.NativeTokenSet)

	for _, in := range state.SelectedInputs {
		for id, amount := range in.Output.NativeTokenList().Set() {
			addToSet(inSums, id, amount)
		}
	}

	for _, out := range state.Outputs {
		for id, amount := range out.Output.NativeTokenList().Set() {
			addToSet(outSums, id, amount)
		}
	}

	if state.Burn != nil {
		for id, amount := range state.Burn.NativeTokens {
			addToSet(outSums, id, new(big.Int).Neg(amount))
		}
	}

	return inSums, outSums
}

func addToSet(set iotago.NativeTokenSet, id iotago.TokenID, amount *big.Int) {
	if existing, has := set[id]; has {
		existing.Add(existing, amount)

		return
	}
	set[id] = new(big.Int).Set(amount)
}

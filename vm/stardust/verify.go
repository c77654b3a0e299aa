package stardust

import (
	"math/big"

	"github.com/iotaledger/hive.go/ierrors"

	iotago "github.com/sl00k/iota-input-selection"
)

// ErrInputOutputSumMismatch is returned when the selected inputs' combined
// deposit does not equal the outputs' combined deposit.
var ErrInputOutputSumMismatch = ierrors.New("inputs and outputs do not balance")

// ErrChainOutputWithoutOrigin is returned when an output's ChainID does not
// resolve to either a genesis (zeroed ID) or a matching input of the same ID.
var ErrChainOutputWithoutOrigin = ierrors.New("chain output has neither a genesis ID nor a matching input")

// Input pairs an Output with the OutputID it is consumed by, the minimal
// shape Verify needs to resolve Alias/NFT/Foundry genesis vs. continuation
// without depending on the inputselection package: this validator re-checks
// a candidate transaction's invariants independently of however its inputs
// were chosen.
type Input struct {
	OutputID iotago.OutputID
	Output   iotago.Output
}

// Verify re-checks the universal invariants a candidate transaction must
// satisfy regardless of how its inputs were selected: conservation of base
// token value, and every chain-constrained output's state transition rules,
// including destruction of any chain input no output carries forward.
// unlockedIdents is the set of addresses (by Address.Key()) the transaction
// successfully unlocked, used to validate Issuer features at genesis.
func Verify(inputs []Input, outputs []iotago.Output, unlockedIdents map[string]struct{}) error {
	ws := &WorkingSet{
		Outputs:         outputs,
		UnlockedIdents:  unlockedIdents,
		InNativeTokens:  make(iotago.NativeTokenSet),
		OutNativeTokens: make(iotago.NativeTokenSet),
	}

	var inputsSum, outputsSum iotago.BaseToken
	aliasesIn := make(map[iotago.AliasID]*iotago.AliasOutput)
	nftsIn := make(map[iotago.NFTID]*iotago.NFTOutput)
	foundriesIn := make(map[iotago.FoundryID]*iotago.FoundryOutput)

	for _, in := range inputs {
		inputsSum += in.Output.Deposit()
		for id, amount := range in.Output.NativeTokenList().Set() {
			addToNativeSet(ws.InNativeTokens, id, amount)
		}

		switch o := in.Output.(type) {
		case *iotago.AliasOutput:
			aliasesIn[o.ChainID(in.OutputID)] = o
		case *iotago.NFTOutput:
			nftsIn[o.ChainID(in.OutputID)] = o
		case *iotago.FoundryOutput:
			foundriesIn[o.ID()] = o
		}
	}

	seenAlias := make(map[iotago.AliasID]struct{})
	seenNFT := make(map[iotago.NFTID]struct{})
	seenFoundry := make(map[iotago.FoundryID]struct{})

	for _, out := range outputs {
		outputsSum += out.Deposit()
		for id, amount := range out.NativeTokenList().Set() {
			addToNativeSet(ws.OutNativeTokens, id, amount)
		}

		switch o := out.(type) {
		case *iotago.AliasOutput:
			if err := verifyAlias(o, aliasesIn, ws); err != nil {
				return err
			}
			seenAlias[o.AliasID] = struct{}{}
		case *iotago.NFTOutput:
			if err := verifyNFT(o, nftsIn, ws); err != nil {
				return err
			}
			seenNFT[o.NFTID] = struct{}{}
		case *iotago.FoundryOutput:
			if err := verifyFoundry(o, foundriesIn, ws); err != nil {
				return err
			}
			seenFoundry[o.ID()] = struct{}{}
		}
	}

	for id, alias := range aliasesIn {
		if _, carriedForward := seenAlias[id]; carriedForward {
			continue
		}
		if err := AliasSTVF(alias, ChainTransitionTypeDestroy, nil, ws); err != nil {
			return err
		}
	}
	for id, nft := range nftsIn {
		if _, carriedForward := seenNFT[id]; carriedForward {
			continue
		}
		if err := NFTSTVF(nft, ChainTransitionTypeDestroy, nil, ws); err != nil {
			return err
		}
	}
	for id, foundry := range foundriesIn {
		if _, carriedForward := seenFoundry[id]; carriedForward {
			continue
		}
		if err := FoundrySTVF(foundry, ChainTransitionTypeDestroy, nil, ws); err != nil {
			return err
		}
	}

	if inputsSum != outputsSum {
		return ierrors.Wrapf(ErrInputOutputSumMismatch, "inputs %d, outputs %d", inputsSum, outputsSum)
	}

	return nil
}

func verifyAlias(next *iotago.AliasOutput, aliasesIn map[iotago.AliasID]*iotago.AliasOutput, ws *WorkingSet) error {
	if next.AliasID.Empty() {
		return AliasSTVF(nil, ChainTransitionTypeGenesis, next, ws)
	}

	current, has := aliasesIn[next.AliasID]
	if !has {
		return ierrors.Wrapf(ErrChainOutputWithoutOrigin, "alias %s", next.AliasID)
	}

	return AliasSTVF(current, ChainTransitionTypeStateChange, next, ws)
}

func verifyNFT(next *iotago.NFTOutput, nftsIn map[iotago.NFTID]*iotago.NFTOutput, ws *WorkingSet) error {
	if next.NFTID.Empty() {
		return NFTSTVF(nil, ChainTransitionTypeGenesis, next, ws)
	}

	current, has := nftsIn[next.NFTID]
	if !has {
		return ierrors.Wrapf(ErrChainOutputWithoutOrigin, "nft %s", next.NFTID)
	}

	return NFTSTVF(current, ChainTransitionTypeStateChange, next, ws)
}

func verifyFoundry(next *iotago.FoundryOutput, foundriesIn map[iotago.FoundryID]*iotago.FoundryOutput, ws *WorkingSet) error {
	current, has := foundriesIn[next.ID()]
	if !has {
		return FoundrySTVF(nil, ChainTransitionTypeGenesis, next, ws)
	}

	return FoundrySTVF(current, ChainTransitionTypeStateChange, next, ws)
}

func addToNativeSet(set iotago.NativeTokenSet, id iotago.TokenID, amount *big.Int) {
	if existing, has := set[id]; has {
		existing.Add(existing, amount)

		return
	}
	set[id] = new(big.Int).Set(amount)
}

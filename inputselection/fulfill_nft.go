package inputselection

import (
	iotago "github.com/sl00k/iota-input-selection"

	"github.com/sl00k/iota-input-selection/builder"
)

// fulfillNFT satisfies an NFT requirement: the NFTOutput resolving to id
// must be among the selected inputs (spec.md §4.4).
func fulfillNFT(state *SelectionState, id iotago.NFTID) (*Requirement, error) {
	for _, in := range state.SelectedInputs {
		nft, is := in.Output.(*iotago.NFTOutput)
		if is && nft.ChainID(in.OutputID) == id {
			return nil, ensureNFTContinuation(state, nft, id)
		}
	}

	for _, in := range state.AvailableInputs {
		nft, is := in.Output.(*iotago.NFTOutput)
		if !is || nft.ChainID(in.OutputID) != id {
			continue
		}

		if _, ok := state.selectInput(in.OutputID); !ok {
			continue
		}

		return nil, ensureNFTContinuation(state, nft, id)
	}

	req := NFTRequirement(id)

	return nil, &UnfulfillableRequirementError{Requirement: req}
}

// ensureNFTContinuation mirrors ensureAliasContinuation for NFTs: NFTs have
// no governor/state-controller split, so the auto-continuation is a plain
// passthrough of the previous output under the resolved id.
func ensureNFTContinuation(state *SelectionState, prev *iotago.NFTOutput, id iotago.NFTID) error {
	for _, out := range state.Outputs {
		nft, is := out.Output.(*iotago.NFTOutput)
		if is && nft.NFTID == id {
			return nil
		}
	}

	next, err := builder.NewNFTOutputBuilderFromPrevious(prev).NFTID(id).Build()
	if err != nil {
		return &InvalidOutputBuildingError{Err: err}
	}

	state.Outputs = append(state.Outputs, OutputInfo{Output: next, Provided: false})

	return nil
}

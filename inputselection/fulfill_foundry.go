package inputselection

import (
	iotago "github.com/sl00k/iota-input-selection"

	"github.com/sl00k/iota-input-selection/builder"
)

// fulfillFoundry satisfies a Foundry requirement: the FoundryOutput
// identified by id must be among the selected inputs. A Foundry's identity
// (controlling AliasID, serial number, TokenScheme type) never changes
// across its lifetime, so there is no genesis-vs-transition distinction
// here the way there is for Alias/NFT (spec.md §3, §4.4).
func fulfillFoundry(state *SelectionState, id iotago.FoundryID) (*Requirement, error) {
	for _, in := range state.SelectedInputs {
		foundry, is := in.Output.(*iotago.FoundryOutput)
		if is && foundry.ID() == id {
			return nil, ensureFoundryContinuation(state, foundry, id)
		}
	}

	for _, in := range state.AvailableInputs {
		foundry, is := in.Output.(*iotago.FoundryOutput)
		if !is || foundry.ID() != id {
			continue
		}

		if _, ok := state.selectInput(in.OutputID); !ok {
			continue
		}

		return nil, ensureFoundryContinuation(state, foundry, id)
	}

	req := FoundryRequirement(id)

	return nil, &UnfulfillableRequirementError{Requirement: req}
}

// ensureFoundryContinuation mirrors ensureAliasContinuation for Foundries:
// a plain passthrough (same Conditions, TokenScheme, NativeTokens) under
// the unchanged FoundryID.
func ensureFoundryContinuation(state *SelectionState, prev *iotago.FoundryOutput, id iotago.FoundryID) error {
	for _, out := range state.Outputs {
		foundry, is := out.Output.(*iotago.FoundryOutput)
		if is && foundry.ID() == id {
			return nil
		}
	}

	next, err := builder.NewFoundryOutputBuilderFromPrevious(prev).Build()
	if err != nil {
		return &InvalidOutputBuildingError{Err: err}
	}

	state.Outputs = append(state.Outputs, OutputInfo{Output: next, Provided: false})

	return nil
}

package inputselection

import (
	iotago "github.com/sl00k/iota-input-selection"

	"github.com/sl00k/iota-input-selection/builder"
)

// fulfillAlias satisfies an Alias requirement: the AliasOutput resolving to
// id must be among the selected inputs, with its identity continuity and
// governor/state-controller preserved across the transition (spec.md §4.4).
func fulfillAlias(state *SelectionState, id iotago.AliasID, governanceTransition bool) (*Requirement, error) {
	for _, in := range state.SelectedInputs {
		alias, is := in.Output.(*iotago.AliasOutput)
		if is && alias.ChainID(in.OutputID) == id {
			return nil, ensureAliasContinuation(state, alias, id, governanceTransition)
		}
	}

	for _, in := range state.AvailableInputs {
		alias, is := in.Output.(*iotago.AliasOutput)
		if !is || alias.ChainID(in.OutputID) != id {
			continue
		}

		if state.Burn.HasAlias(id) && !governanceTransition {
			// Burning an identity while something still needs it unlocked
			// as a going concern is a contradiction: a burn destroys the
			// identity, a non-governance transition keeps it alive.
			req := AliasRequirement(id, true)

			return nil, &UnfulfillableRequirementError{Requirement: req}
		}

		if _, ok := state.selectInput(in.OutputID); !ok {
			continue
		}

		return nil, ensureAliasContinuation(state, alias, id, governanceTransition)
	}

	req := AliasRequirement(id, governanceTransition)

	return nil, &UnfulfillableRequirementError{Requirement: req}
}

// ensureAliasContinuation guarantees state.Outputs carries exactly one
// AliasOutput continuing id. If the caller already provided one (the common
// case: every non-zero Alias identity in the outputs seeded this
// requirement in the first place, spec.md §4.1 rule 1) nothing changes;
// otherwise an auto-continuation passthrough is synthesized, preserving
// governor/state-controller and bumping StateIndex for state transitions
// (spec.md §4.4, §4.2's redistribution fallback only ever touches these
// synthesized entries).
func ensureAliasContinuation(state *SelectionState, prev *iotago.AliasOutput, id iotago.AliasID, governanceTransition bool) error {
	for _, out := range state.Outputs {
		alias, is := out.Output.(*iotago.AliasOutput)
		if is && alias.AliasID == id {
			return nil
		}
	}

	b := builder.NewAliasOutputBuilderFromPrevious(prev).AliasID(id)
	if !governanceTransition {
		b = b.StateTransition()
	}

	next, err := b.Build()
	if err != nil {
		return &InvalidOutputBuildingError{Err: err}
	}

	state.Outputs = append(state.Outputs, OutputInfo{Output: next, Provided: false})

	return nil
}

// identityRequirementFor returns the Alias/NFT requirement implied by
// selecting an input unlockable only via a chain address, so the chain
// output behind that address is itself pulled into the selected set
// (spec.md §8 S7: using an Alias's address to unlock another output still
// requires that Alias be present as an input).
func identityRequirementFor(addr iotago.Address) *Requirement {
	switch a := addr.(type) {
	case *iotago.AliasAddress:
		req := AliasRequirement(a.AliasID(), false)

		return &req
	case *iotago.NFTAddress:
		req := NFTRequirement(a.NFTID())

		return &req
	default:
		return nil
	}
}

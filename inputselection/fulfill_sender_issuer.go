package inputselection

import (
	iotago "github.com/sl00k/iota-input-selection"
)

// fulfillSender satisfies a Sender requirement by finding and selecting an
// available input unlockable by addr, or by confirming addr is already
// unlocked by a previously selected input (spec.md §4.4).
func fulfillSender(state *SelectionState, addr iotago.Address) (*Requirement, error) {
	if unlockedByAny(state.SelectedInputs, addr) {
		return nil, nil
	}

	for _, in := range state.AvailableInputs {
		if !unlockedBy(in, addr) {
			continue
		}

		if _, ok := state.selectInput(in.OutputID); ok {
			return nil, nil
		}
	}

	req := SenderRequirement(addr)

	return nil, &UnfulfillableRequirementError{Requirement: req}
}

// fulfillIssuer fulfills an Issuer requirement by fulfilling the equivalent
// Sender requirement, translating the error to report Issuer instead
// (mirrors the original's fulfill_issuer_requirement delegating to
// fulfill_sender_requirement).
func fulfillIssuer(state *SelectionState, addr iotago.Address) (*Requirement, error) {
	next, err := fulfillSender(state, addr)
	if err == nil {
		return next, nil
	}

	var unfulfillable *UnfulfillableRequirementError
	if isUnfulfillableSender(err, &unfulfillable) {
		req := IssuerRequirement(addr)

		return nil, &UnfulfillableRequirementError{Requirement: req}
	}

	return nil, err
}

func isUnfulfillableSender(err error, target **UnfulfillableRequirementError) bool {
	e, ok := err.(*UnfulfillableRequirementError)
	if !ok || e.Requirement.Kind != RequirementSender {
		return false
	}
	*target = e

	return true
}

// unlockedByAny reports whether addr unlocks any of the given inputs.
func unlockedByAny(inputs []InputWithID, addr iotago.Address) bool {
	for _, in := range inputs {
		if unlockedBy(in, addr) {
			return true
		}
	}

	return false
}

// unlockedBy reports whether addr is the address that would unlock in,
// accounting for chain-constrained outputs unlockable via their derived
// address (an AliasOutput is unlocked by its StateController, for instance)
// as well as a Sender/Issuer feature naming the chain output's own identity
// directly (an AliasAddress/NFTAddress for the Alias/NFT itself).
func unlockedBy(in InputWithID, addr iotago.Address) bool {
	switch o := in.Output.(type) {
	case *iotago.AliasOutput:
		if aliasAddr, ok := addr.(*iotago.AliasAddress); ok {
			return o.ChainID(in.OutputID) == aliasAddr.AliasID()
		}

		return o.StateController().Equal(addr)
	case *iotago.NFTOutput:
		if nftAddr, ok := addr.(*iotago.NFTAddress); ok {
			return o.ChainID(in.OutputID) == nftAddr.NFTID()
		}

		return o.Ident().Equal(addr)
	case *iotago.BasicOutput:
		return o.Ident().Equal(addr)
	case *iotago.FoundryOutput:
		return o.UnlockConditionSet().ImmutableAliasAddress().Address.Equal(addr)
	default:
		return false
	}
}

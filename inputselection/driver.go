package inputselection

import (
	"math/big"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/lo"

	iotago "github.com/sl00k/iota-input-selection"

	"github.com/sl00k/iota-input-selection/builder"
)

// Selected is the final, balanced result of a successful Select() call
// (spec.md §6).
type Selected struct {
	Inputs  []InputWithID
	Outputs []iotago.Output
}

// InputSelection is the fluent entry point the caller builds up before
// invoking Select() (spec.md §6):
//
//	selected, err := inputselection.New(inputs, outputs, params).
//		Burn(burn).
//		RequiredInputs(ids).
//		RemainderAddress(addr).
//		Select()
type InputSelection struct {
	state          *SelectionState
	requiredInputs map[iotago.OutputID]struct{}
	remainderAddr  iotago.Address
}

// New creates an InputSelection over the given candidate inputs, target
// outputs, and protocol parameters. Every output is recorded as
// caller-provided (OutputInfo.Provided = true); the engine only ever
// synthesizes further outputs with Provided = false (spec.md §3).
func New(inputs []InputWithID, outputs []iotago.Output, params iotago.ProtocolParameters) *InputSelection {
	outputInfos := make([]OutputInfo, len(outputs))
	for i, o := range outputs {
		outputInfos[i] = OutputInfo{Output: o, Provided: true}
	}

	return &InputSelection{
		state: &SelectionState{
			AvailableInputs: inputs,
			Outputs:         outputInfos,
			Burn:            NewBurn(),
			Protocol:        params,
			Policy:          PolicyMinInputs,
		},
		requiredInputs: make(map[iotago.OutputID]struct{}),
	}
}

// Burn declares identities and native tokens the resulting transaction
// destroys rather than carries forward.
func (is *InputSelection) Burn(burn *Burn) *InputSelection {
	if burn != nil {
		is.state.Burn = burn
	}

	return is
}

// RequiredInputs marks OutputIDs that must end up in the selected set,
// regardless of whether any requirement would otherwise have pulled them in.
func (is *InputSelection) RequiredInputs(ids map[iotago.OutputID]struct{}) *InputSelection {
	for id := range ids {
		is.requiredInputs[id] = struct{}{}
	}

	return is
}

// RemainderAddress sets the address leftover amount/native tokens are
// returned to. Required whenever the selection could produce a remainder.
func (is *InputSelection) RemainderAddress(addr iotago.Address) *InputSelection {
	is.remainderAddr = addr
	is.state.RemainderAddress = addr

	return is
}

// Policy overrides the amount fulfiller's default candidate-consumption
// policy (spec.md §9's open question on a consolidate strategy).
func (is *InputSelection) Policy(policy SelectionPolicy) *InputSelection {
	is.state.Policy = policy

	return is
}

// Select runs the fulfillment fixpoint to completion and returns the
// balanced (inputs, outputs) pair, or the first Unfulfillable/Insufficient
// error encountered (spec.md §4.1).
func (is *InputSelection) Select() (*Selected, error) {
	if err := is.selectRequiredInputs(); err != nil {
		return nil, err
	}

	queue := is.seedRequirements()

	for len(queue) > 0 {
		req := queue[0]
		queue = queue[1:]

		next, err := dispatch(is.state, req)
		if err != nil {
			return nil, err
		}
		if next != nil {
			queue = append(queue, *next)
		}
	}

	if err := is.reconcileRemainder(); err != nil {
		return nil, err
	}

	outputs := make([]iotago.Output, len(is.state.Outputs))
	for i, o := range is.state.Outputs {
		outputs[i] = o.Output
	}

	return &Selected{Inputs: is.state.SelectedInputs, Outputs: outputs}, nil
}

// selectRequiredInputs moves every caller-mandated OutputID from
// AvailableInputs into SelectedInputs before requirement seeding begins, so
// their contribution is already reflected in the initial sums.
func (is *InputSelection) selectRequiredInputs() error {
	for id := range is.requiredInputs {
		if is.state.IsSelected(id) {
			continue
		}
		if _, ok := is.state.selectInput(id); !ok {
			return ierrors.Wrapf(ErrInvalidSelection, "required input %s is not among the available inputs", id)
		}
	}

	return nil
}

// seedRequirements derives the initial requirement queue from the target
// outputs and burn set, in the exact order spec.md §4.1 specifies: identity
// continuity first, then sender, then issuer, then native tokens, and
// finally the terminal Amount requirement.
func (is *InputSelection) seedRequirements() []Requirement {
	var queue []Requirement

	for _, out := range is.state.Outputs {
		switch o := out.Output.(type) {
		case *iotago.AliasOutput:
			if !o.AliasID.Empty() {
				queue = append(queue, AliasRequirement(o.AliasID, false))
			}
		case *iotago.NFTOutput:
			if !o.NFTID.Empty() {
				queue = append(queue, NFTRequirement(o.NFTID))
			}
		case *iotago.FoundryOutput:
			if !o.Alias().Empty() {
				queue = append(queue, FoundryRequirement(o.ID()))
			}
		}
	}

	for _, out := range is.state.Outputs {
		if sender := out.Output.FeatureSet().SenderFeature(); sender != nil {
			queue = append(queue, SenderRequirement(sender.Address))
		}
	}

	for _, out := range is.state.Outputs {
		if addr, isNew := newIssuerOf(out.Output); isNew {
			queue = append(queue, IssuerRequirement(addr))
		}
	}

	if nativeTokensRequired(is.state) {
		queue = append(queue, NativeTokensRequirement())
	}

	queue = append(queue, AmountRequirement())

	return queue
}

// newIssuerOf reports the IssuerFeature address of output, but only when
// output is itself being created from a zero identity: an IssuerFeature on
// a transitioning (already-existing) Alias/NFT was discharged at that
// identity's genesis and is not re-required on every later transition
// (spec.md §4.1 rule 3).
func newIssuerOf(output iotago.Output) (iotago.Address, bool) {
	switch o := output.(type) {
	case *iotago.AliasOutput:
		if !o.AliasID.Empty() {
			return nil, false
		}
		if issuer := o.ImmutableFeatureSet().Issuer(); issuer != nil {
			return issuer.Address, true
		}
	case *iotago.NFTOutput:
		if !o.NFTID.Empty() {
			return nil, false
		}
		if issuer := o.ImmutableFeatureSet().Issuer(); issuer != nil {
			return issuer.Address, true
		}
	}

	return nil, false
}

// nativeTokensRequired reports whether any target output, or the burn set,
// carries native tokens, meaning the NativeTokens requirement must be
// seeded so its fulfiller can reconcile the per-token balance (spec.md
// §4.1 rule 4, §4.3).
func nativeTokensRequired(state *SelectionState) bool {
	for _, out := range state.Outputs {
		if len(out.Output.NativeTokenList()) > 0 {
			return true
		}
	}

	return state.Burn != nil && len(state.Burn.NativeTokens) > 0
}

// dispatch routes a Requirement to its fulfiller (spec.md §4).
func dispatch(state *SelectionState, req Requirement) (*Requirement, error) {
	switch req.Kind {
	case RequirementAmount:
		return fulfillAmount(state)
	case RequirementNativeTokens:
		return fulfillNativeTokens(state)
	case RequirementSender:
		return fulfillSender(state, req.Address)
	case RequirementIssuer:
		return fulfillIssuer(state, req.Address)
	case RequirementAlias:
		return fulfillAlias(state, req.AliasID, req.GovernanceTransition)
	case RequirementNFT:
		return fulfillNFT(state, req.NFTID)
	case RequirementFoundry:
		return fulfillFoundry(state, req.FoundryID)
	default:
		return nil, ierrors.Errorf("%w: unknown requirement kind %s", ErrInvalidSelection, req.Kind)
	}
}

// reconcileRemainder performs the driver's final reconciliation pass
// (spec.md §4.1): once the requirement queue has drained, any leftover
// amount or native tokens is captured in a single synthesized Basic
// remainder output. The amount fulfiller reserves room for this
// remainder's own rent via remainderAmount's cost estimate (spec.md §4.2).
// No further inputs are selected here: if the leftover is positive but
// below the remainder's minimum storage deposit, an InsufficientAmountError
// is returned.
func (is *InputSelection) reconcileRemainder() error {
	state := is.state

	inputsSum, outputsSum, _, _, err := AmountSums(state)
	if err != nil {
		return err
	}
	if inputsSum < outputsSum {
		return &InsufficientAmountError{Found: inputsSum, Required: outputsSum}
	}

	leftover := inputsSum - outputsSum
	inSums, outSums := NativeTokenSums(state)
	remainderTokens := leftoverNativeTokens(state, inSums, outSums)

	if leftover == 0 && len(remainderTokens) == 0 {
		return nil
	}

	if is.remainderAddr == nil {
		return ierrors.Wrap(ErrInvalidSelection, "a remainder output is required but no remainder address was configured")
	}

	b := builder.NewBasicOutputBuilder(is.remainderAddr, leftover)
	for id, amount := range remainderTokens {
		b = b.NativeToken(&iotago.NativeToken{ID: id, Amount: amount})
	}

	remainder, err := b.Build()
	if err != nil {
		return &InvalidOutputBuildingError{Err: err}
	}

	if minDeposit := iotago.MinStorageDeposit(*state.Protocol.RentStructure(), remainder); leftover < minDeposit {
		return &InsufficientAmountError{Found: inputsSum, Required: outputsSum + minDeposit}
	}

	state.Outputs = append(state.Outputs, OutputInfo{Output: remainder, Provided: false})

	return nil
}

// leftoverNativeTokens computes, per token id, the surplus the selected
// inputs carry beyond what the target outputs consume, skipping ids marked
// for burning (those are destroyed, not returned; spec.md §4.3, §8
// invariant 2).
func leftoverNativeTokens(state *SelectionState, inSums, outSums iotago.NativeTokenSet) iotago.NativeTokenSet {
	notBurned := lo.PickBy(inSums, func(id iotago.TokenID, _ *big.Int) bool {
		if state.Burn == nil {
			return true
		}
		_, burned := state.Burn.NativeTokens[id]

		return !burned
	})

	leftover := make(iotago.NativeTokenSet)
	for id, inAmount := range notBurned {
		outAmount := outSums.ValueOrZero(id)
		if inAmount.Cmp(outAmount) > 0 {
			leftover[id] = new(big.Int).Sub(inAmount, outAmount)
		}
	}

	return leftover
}

// Package inputselection implements a requirement-queue-driven greedy input
// selector for a Stardust-style UTXO ledger: given a set of available
// inputs and a set of desired outputs, it finds a minimal, amount-balanced,
// native-token-balanced set of inputs that can fund the outputs and satisfy
// every chain-continuity and feature-unlock constraint they imply.
package inputselection

import (
	"github.com/iotaledger/hive.go/ierrors"

	iotago "github.com/sl00k/iota-input-selection"
)

// ErrUnfulfillableRequirement is returned when no combination of the
// available inputs can satisfy a queued Requirement.
var ErrUnfulfillableRequirement = ierrors.New("unfulfillable requirement")

// ErrInsufficientAmount is returned when the available inputs, once fully
// selected, still cannot cover the outputs' combined deposit plus rent.
var ErrInsufficientAmount = ierrors.New("insufficient amount")

// ErrInvalidSelection is returned when the caller's inputs describe an
// impossible instruction, e.g. a required input that does not exist among
// the available inputs.
var ErrInvalidSelection = ierrors.New("invalid selection request")

// UnfulfillableRequirementError carries the specific Requirement that could
// not be satisfied, so callers can react to e.g. a missing Sender address
// differently from a missing Alias.
type UnfulfillableRequirementError struct {
	Requirement Requirement
}

func (e *UnfulfillableRequirementError) Error() string {
	return ierrors.Wrapf(ErrUnfulfillableRequirement, "%s", e.Requirement).Error()
}

func (e *UnfulfillableRequirementError) Unwrap() error {
	return ErrUnfulfillableRequirement
}

// InsufficientAmountError carries the shortfall so callers can report it
// to a user (spec.md §7).
type InsufficientAmountError struct {
	Found    iotago.BaseToken
	Required iotago.BaseToken
}

func (e *InsufficientAmountError) Error() string {
	return ierrors.Wrapf(ErrInsufficientAmount, "found %d, required %d", e.Found, e.Required).Error()
}

func (e *InsufficientAmountError) Unwrap() error {
	return ErrInsufficientAmount
}

// ErrInvalidOutputBuilding is returned when an auto-transition would
// violate an output-shape invariant, e.g. building an amount below rent.
var ErrInvalidOutputBuilding = ierrors.New("invalid output building")

// InvalidOutputBuildingError wraps the underlying builder error encountered
// while synthesizing a remainder or auto-continuation output (spec.md §7).
type InvalidOutputBuildingError struct {
	Err error
}

func (e *InvalidOutputBuildingError) Error() string {
	return ierrors.Wrapf(ErrInvalidOutputBuilding, "%s", e.Err).Error()
}

func (e *InvalidOutputBuildingError) Unwrap() error {
	return ErrInvalidOutputBuilding
}

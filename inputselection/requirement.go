package inputselection

import (
	"fmt"

	iotago "github.com/sl00k/iota-input-selection"
)

// RequirementKind identifies the category of a Requirement.
type RequirementKind byte

const (
	RequirementAmount RequirementKind = iota
	RequirementNativeTokens
	RequirementSender
	RequirementIssuer
	RequirementAlias
	RequirementNFT
	RequirementFoundry
)

func (k RequirementKind) String() string {
	switch k {
	case RequirementAmount:
		return "Amount"
	case RequirementNativeTokens:
		return "NativeTokens"
	case RequirementSender:
		return "Sender"
	case RequirementIssuer:
		return "Issuer"
	case RequirementAlias:
		return "Alias"
	case RequirementNFT:
		return "NFT"
	case RequirementFoundry:
		return "Foundry"
	default:
		return "unknown requirement kind"
	}
}

// Requirement is a closed tagged-struct sum type describing one condition
// the selected inputs (plus the fixed outputs) must satisfy before the
// transaction is considered funded (spec.md §4, §9). Only the fields
// relevant to Kind are meaningful.
type Requirement struct {
	Kind RequirementKind

	// Address is set for RequirementSender and RequirementIssuer.
	Address iotago.Address
	// AliasID is set for RequirementAlias.
	AliasID iotago.AliasID
	// GovernanceTransition is set for RequirementAlias: true if the
	// transition is a governance transition (does not require an
	// incremented StateIndex), false for a state transition.
	GovernanceTransition bool
	// NFTID is set for RequirementNFT.
	NFTID iotago.NFTID
	// FoundryID is set for RequirementFoundry.
	FoundryID iotago.FoundryID
}

func (r Requirement) String() string {
	switch r.Kind {
	case RequirementSender, RequirementIssuer:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Address)
	case RequirementAlias:
		return fmt.Sprintf("Alias(%s, governance=%t)", r.AliasID, r.GovernanceTransition)
	case RequirementNFT:
		return fmt.Sprintf("NFT(%s)", r.NFTID)
	case RequirementFoundry:
		return fmt.Sprintf("Foundry(%s)", r.FoundryID)
	default:
		return r.Kind.String()
	}
}

// AmountRequirement is the singleton Requirement demanding the selected
// inputs cover the outputs' combined deposit (and any remainder/SDR).
func AmountRequirement() Requirement { return Requirement{Kind: RequirementAmount} }

// NativeTokensRequirement is the singleton Requirement demanding the
// selected inputs cover every native token the outputs carry.
func NativeTokensRequirement() Requirement { return Requirement{Kind: RequirementNativeTokens} }

// SenderRequirement demands an input or unlock be found that unlocks addr,
// because some output carries a SenderFeature referencing it.
func SenderRequirement(addr iotago.Address) Requirement {
	return Requirement{Kind: RequirementSender, Address: addr}
}

// IssuerRequirement demands an input or unlock be found that unlocks addr,
// because a newly minted chain output carries an IssuerFeature referencing it.
func IssuerRequirement(addr iotago.Address) Requirement {
	return Requirement{Kind: RequirementIssuer, Address: addr}
}

// AliasRequirement demands the current AliasOutput with the given AliasID
// be among the selected inputs.
func AliasRequirement(id iotago.AliasID, governanceTransition bool) Requirement {
	return Requirement{Kind: RequirementAlias, AliasID: id, GovernanceTransition: governanceTransition}
}

// NFTRequirement demands the current NFTOutput with the given NFTID be
// among the selected inputs.
func NFTRequirement(id iotago.NFTID) Requirement {
	return Requirement{Kind: RequirementNFT, NFTID: id}
}

// FoundryRequirement demands the current FoundryOutput with the given
// FoundryID be among the selected inputs.
func FoundryRequirement(id iotago.FoundryID) Requirement {
	return Requirement{Kind: RequirementFoundry, FoundryID: id}
}

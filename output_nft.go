package iotago

type (
	nftOutputUnlockCondition  interface{ UnlockCondition }
	nftOutputFeature          interface{ Feature }
	NFTOutputUnlockConditions = UnlockConditions[nftOutputUnlockCondition]
	NFTOutputFeatures         = Features[nftOutputFeature]
)

// NFTOutputs is a slice of NFTOutput(s).
type NFTOutputs []*NFTOutput

// NFTOutput is a chain-constrained output representing a unique,
// non-fungible asset (spec.md §2, §4.4).
type NFTOutput struct {
	// Amount is the number of IOTA base tokens held by the output.
	Amount BaseToken
	// NativeTokens are the native tokens held by the output.
	NativeTokens NativeTokens
	// NFTID is the identity of this NFT. It is the zero value in the output
	// that creates the NFT (genesis transition).
	NFTID NFTID
	// Conditions are the unlock conditions on this output.
	Conditions NFTOutputUnlockConditions
	// Features are the mutable features of the output.
	Features NFTOutputFeatures
	// ImmutableFeatures are set at genesis and never change afterwards,
	// typically carrying the IssuerFeature and immutable metadata.
	ImmutableFeatures NFTOutputFeatures
}

func (n *NFTOutput) Clone() Output {
	return &NFTOutput{
		Amount:            n.Amount,
		NativeTokens:      n.NativeTokens.Clone(),
		NFTID:             n.NFTID,
		Conditions:        n.Conditions.Clone(),
		Features:          n.Features.Clone(),
		ImmutableFeatures: n.ImmutableFeatures.Clone(),
	}
}

func (n *NFTOutput) NativeTokenList() NativeTokens {
	return n.NativeTokens
}

func (n *NFTOutput) FeatureSet() FeatureSet {
	return n.Features.MustSet()
}

func (n *NFTOutput) UnlockConditionSet() UnlockConditionSet {
	return n.Conditions.Set()
}

func (n *NFTOutput) ImmutableFeatureSet() FeatureSet {
	return n.ImmutableFeatures.MustSet()
}

func (n *NFTOutput) Deposit() BaseToken {
	return n.Amount
}

func (n *NFTOutput) Type() OutputType {
	return OutputNFT
}

// Chain returns the NFTID as a ChainID, allowing this output to satisfy ChainConstrainedOutput.
func (n *NFTOutput) Chain() ChainID {
	return n.NFTID
}

// IsGenesis reports whether this NFTOutput has not yet been created on-chain.
func (n *NFTOutput) IsGenesis() bool {
	return n.NFTID.Empty()
}

// ChainID returns the actual, non-empty NFTID this output will have on the
// ledger after inclusion.
func (n *NFTOutput) ChainID(outputID OutputID) NFTID {
	if !n.NFTID.Empty() {
		return n.NFTID
	}

	return NFTIDFromOutputID(outputID)
}

// Ident returns the address that must unlock this output.
func (n *NFTOutput) Ident() Address {
	return n.Conditions.Set().Address().Address
}

package iotago

// VByteCostFactor denotes the scaling factor applied to a category of bytes
// when computing an output's rent cost.
type VByteCostFactor uint8

// Multiply multiplies in with this factor.
func (f VByteCostFactor) Multiply(in uint64) uint64 {
	return uint64(f) * in
}

// RentStructure defines the parameters of rent cost calculations on outputs,
// i.e. the storage deposit an output must carry in proportion to the ledger
// space it occupies (spec.md §4.2).
type RentStructure struct {
	// VByteCost is the cost, in base tokens, of a single virtual byte.
	VByteCost uint32
	// VBFactorData is the multiplier for bytes stored as plain data (amount,
	// identifiers, native tokens, features, unlock conditions, ...).
	VBFactorData VByteCostFactor
	// VBFactorKey is the multiplier for bytes that constitute a lookup key,
	// i.e. an output's unlock address. Keys are typically weighted higher
	// than data since nodes must index them.
	VBFactorKey VByteCostFactor
}

func (r RentStructure) Equals(other RentStructure) bool {
	return r.VByteCost == other.VByteCost &&
		r.VBFactorData == other.VBFactorData &&
		r.VBFactorKey == other.VBFactorKey
}

// outputOffsetVByteCost is the fixed rent overhead every output incurs for
// the fields common to all output types: the output type byte, the
// 34-byte OutputID it will occupy as a lookup key, and its inclusion in a
// transaction.
func (r RentStructure) outputOffsetVByteCost() uint64 {
	return r.VBFactorData.Multiply(1) + r.VBFactorKey.Multiply(OutputIDLength)
}

// MinDeposit computes the minimum BaseToken amount an output must carry
// given its virtual byte cost, i.e. its storage deposit (spec.md §4.2).
func (r RentStructure) MinDeposit(vByteCost uint64) BaseToken {
	return BaseToken(uint64(r.VByteCost) * vByteCost)
}

// MinStorageDeposit computes the minimum storage deposit required for the
// given Output under this RentStructure.
func MinStorageDeposit(r RentStructure, output Output) BaseToken {
	return r.MinDeposit(vBytes(r, output))
}

// vBytes computes the virtual byte size of an Output: the common overhead
// plus type-specific key and data bytes. Addresses (in unlock conditions and
// in Sender/Issuer features), the OutputID and an Alias/NFT ID are weighted
// by VBFactorKey since nodes must index them; everything else is weighted by
// VBFactorData.
func vBytes(r RentStructure, output Output) uint64 {
	total := r.outputOffsetVByteCost()

	// amount field, common to all output types.
	total += r.VBFactorData.Multiply(8)

	total += nativeTokensVBytes(r, output.NativeTokenList())

	for _, cond := range unlockConditionsOf(output) {
		total += unlockConditionVBytes(r, cond)
	}

	for _, feat := range featuresOf(output) {
		total += featureVBytes(r, feat)
	}

	for _, feat := range immutableFeaturesOf(output) {
		total += featureVBytes(r, feat)
	}

	switch output.(type) {
	case *AliasOutput:
		// AliasID + StateIndex + FoundryCounter.
		total += r.VBFactorKey.Multiply(AliasIDLength) + r.VBFactorData.Multiply(4+4)
	case *NFTOutput:
		total += r.VBFactorKey.Multiply(NFTIDLength)
	case *FoundryOutput:
		// SerialNumber + TokenScheme type byte + Minted/Melted/Maximum big.Int fields.
		total += r.VBFactorData.Multiply(4 + 1 + 32 + 32 + 32)
	}

	return total
}

func nativeTokensVBytes(r RentStructure, tokens NativeTokens) uint64 {
	var total uint64
	for range tokens {
		// TokenID (38 bytes) + amount (32 byte uint256).
		total += r.VBFactorData.Multiply(TokenIDLength + 32)
	}

	return total
}

func unlockConditionVBytes(r RentStructure, cond UnlockCondition) uint64 {
	const typeByte = 1
	switch c := cond.(type) {
	case *AddressUnlockCondition:
		return r.VBFactorData.Multiply(typeByte) + addressVBytes(r, c.Address)
	case *StorageDepositReturnUnlockCondition:
		return r.VBFactorData.Multiply(typeByte+8) + addressVBytes(r, c.ReturnAddress)
	case *TimelockUnlockCondition:
		return r.VBFactorData.Multiply(typeByte + 4)
	case *ExpirationUnlockCondition:
		return r.VBFactorData.Multiply(typeByte+4) + addressVBytes(r, c.ReturnAddress)
	case *StateControllerAddressUnlockCondition:
		return r.VBFactorData.Multiply(typeByte) + addressVBytes(r, c.Address)
	case *GovernorAddressUnlockCondition:
		return r.VBFactorData.Multiply(typeByte) + addressVBytes(r, c.Address)
	case *ImmutableAliasAddressUnlockCondition:
		return r.VBFactorData.Multiply(typeByte) + addressVBytes(r, c.Address)
	default:
		return r.VBFactorData.Multiply(typeByte)
	}
}

func addressVBytes(r RentStructure, addr Address) uint64 {
	const typeByte = 1
	switch addr.(type) {
	case *Ed25519Address:
		return r.VBFactorKey.Multiply(typeByte + 32)
	case *AliasAddress:
		return r.VBFactorKey.Multiply(typeByte + AliasIDLength)
	case *NFTAddress:
		return r.VBFactorKey.Multiply(typeByte + NFTIDLength)
	default:
		return r.VBFactorKey.Multiply(typeByte)
	}
}

func featureVBytes(r RentStructure, feat Feature) uint64 {
	const typeByte = 1
	switch f := feat.(type) {
	case *SenderFeature:
		return r.VBFactorData.Multiply(typeByte) + addressVBytes(r, f.Address)
	case *IssuerFeature:
		return r.VBFactorData.Multiply(typeByte) + addressVBytes(r, f.Address)
	case *MetadataFeature:
		return r.VBFactorData.Multiply(typeByte + 2 + len(f.Data))
	case *StateMetadataFeature:
		return r.VBFactorData.Multiply(typeByte + 2 + len(f.Data))
	case *TagFeature:
		return r.VBFactorData.Multiply(typeByte + 1 + len(f.Tag))
	default:
		return r.VBFactorData.Multiply(typeByte)
	}
}

func unlockConditionsOf(output Output) []UnlockCondition {
	set := output.UnlockConditionSet()
	conds := make([]UnlockCondition, 0, len(set))
	for _, c := range set {
		conds = append(conds, c)
	}

	return conds
}

func featuresOf(output Output) []Feature {
	set := output.FeatureSet()
	feats := make([]Feature, 0, len(set))
	for _, f := range set {
		feats = append(feats, f)
	}

	return feats
}

type immutableFeatureSetter interface {
	ImmutableFeatureSet() FeatureSet
}

func immutableFeaturesOf(output Output) []Feature {
	im, has := output.(immutableFeatureSetter)
	if !has {
		return nil
	}
	set := im.ImmutableFeatureSet()
	feats := make([]Feature, 0, len(set))
	for _, f := range set {
		feats = append(feats, f)
	}

	return feats
}

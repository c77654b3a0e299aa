package iotago

import (
	"math/big"
	"sort"

	"github.com/iotaledger/hive.go/ierrors"
)

// ErrNativeTokenSumExceedsUint256 gets returned when summing up native token
// amounts results in an overflow beyond what a uint256 can hold.
var ErrNativeTokenSumExceedsUint256 = ierrors.New("native token sum exceeds max value of a uint256")

// ErrNativeTokensSumExceedsSupply gets returned when a Foundry's minted native
// tokens exceed its MaximumSupply.
var ErrNativeTokensSumExceedsSupply = ierrors.New("native token sum exceeds maximum supply")

// NativeTokenMaxCount is the maximum number of distinct NativeToken entries a
// transaction's combined inputs/outputs may carry (spec.md §3).
const NativeTokenMaxCount = 64

// nativeTokenMax is the upper bound for a native token's amount: 2^256 - 1.
var nativeTokenMax = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// NativeToken represents a non-IOTA token tracked by a Foundry, identified by a TokenID.
type NativeToken struct {
	ID     TokenID
	Amount *big.Int
}

// Clone clones the NativeToken.
func (n *NativeToken) Clone() *NativeToken {
	return &NativeToken{ID: n.ID, Amount: new(big.Int).Set(n.Amount)}
}

// Equal reports whether this NativeToken equals other.
func (n *NativeToken) Equal(other *NativeToken) bool {
	if other == nil {
		return false
	}

	return n.ID == other.ID && n.Amount.Cmp(other.Amount) == 0
}

// NativeTokens is a slice of NativeToken(s).
type NativeTokens []*NativeToken

// Clone clones the NativeTokens.
func (n NativeTokens) Clone() NativeTokens {
	cpy := make(NativeTokens, len(n))
	for i, nt := range n {
		cpy[i] = nt.Clone()
	}

	return cpy
}

// Equal reports whether this NativeTokens slice holds the same token
// amounts as other, regardless of order.
func (n NativeTokens) Equal(other NativeTokens) bool {
	return n.Set().equalSet(other.Set())
}

func (n NativeTokenSet) equalSet(other NativeTokenSet) bool {
	if len(n) != len(other) {
		return false
	}
	for id, amount := range n {
		o, has := other[id]
		if !has || amount.Cmp(o) != 0 {
			return false
		}
	}

	return true
}

// Sort sorts the NativeTokens in place lexicographically by TokenID.
func (n NativeTokens) Sort() {
	sort.Slice(n, func(i, j int) bool {
		return bytesLess(n[i].ID[:], n[j].ID[:])
	})
}

// Set converts the slice into a NativeTokenSet, summing duplicate TokenID entries.
func (n NativeTokens) Set() NativeTokenSet {
	set := make(NativeTokenSet)
	for _, nt := range n {
		if existing, has := set[nt.ID]; has {
			existing.Add(existing, nt.Amount)

			continue
		}
		set[nt.ID] = new(big.Int).Set(nt.Amount)
	}

	return set
}

// NativeTokenSet is an aggregated view of NativeTokens, keyed by TokenID, with
// duplicate entries summed together.
type NativeTokenSet map[TokenID]*big.Int

// Clone clones the NativeTokenSet.
func (n NativeTokenSet) Clone() NativeTokenSet {
	cpy := make(NativeTokenSet, len(n))
	for id, amount := range n {
		cpy[id] = new(big.Int).Set(amount)
	}

	return cpy
}

// ValueOrZero returns the set's amount for id, or a fresh zero if absent.
func (n NativeTokenSet) ValueOrZero(id TokenID) *big.Int {
	if v, has := n[id]; has {
		return new(big.Int).Set(v)
	}

	return new(big.Int)
}

func bytesLess(a, b []byte) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return len(a) < len(b)
}

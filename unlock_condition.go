package iotago

import (
	"fmt"
	"sort"

	"github.com/iotaledger/hive.go/ierrors"
)

// UnlockCondition is an abstract building block defining the unlock
// requirements of an Output.
type UnlockCondition interface {
	// Type returns the type of the UnlockCondition.
	Type() UnlockConditionType
	// Clone clones the UnlockCondition.
	Clone() UnlockCondition
	// Equal reports whether this UnlockCondition equals other.
	Equal(other UnlockCondition) bool
}

// UnlockConditionType defines the type of UnlockCondition.
type UnlockConditionType byte

const (
	UnlockConditionAddress UnlockConditionType = iota
	UnlockConditionStorageDepositReturn
	UnlockConditionTimelock
	UnlockConditionExpiration
	UnlockConditionStateControllerAddress
	UnlockConditionGovernorAddress
	UnlockConditionImmutableAliasAddress
)

var unlockConditionNames = [UnlockConditionImmutableAliasAddress + 1]string{
	"AddressUnlockCondition",
	"StorageDepositReturnUnlockCondition",
	"TimelockUnlockCondition",
	"ExpirationUnlockCondition",
	"StateControllerAddressUnlockCondition",
	"GovernorAddressUnlockCondition",
	"ImmutableAliasAddressUnlockCondition",
}

func (t UnlockConditionType) String() string {
	if int(t) >= len(unlockConditionNames) {
		return fmt.Sprintf("unknown unlock condition type: %d", t)
	}

	return unlockConditionNames[t]
}

// UnlockConditions is a slice of UnlockCondition(s).
type UnlockConditions[T UnlockCondition] []T

// Clone clones the UnlockConditions.
func (u UnlockConditions[T]) Clone() UnlockConditions[T] {
	cpy := make(UnlockConditions[T], len(u))
	for i, v := range u {
		//nolint:forcetypeassert // we can safely assume that this is of type T
		cpy[i] = v.Clone().(T)
	}

	return cpy
}

// Set converts the slice into an UnlockConditionSet.
func (u UnlockConditions[T]) Set() UnlockConditionSet {
	set := make(UnlockConditionSet)
	for _, cond := range u {
		set[cond.Type()] = cond
	}

	return set
}

// Equal checks whether this slice is equal to other.
func (u UnlockConditions[T]) Equal(other UnlockConditions[T]) bool {
	if len(u) != len(other) {
		return false
	}

	for idx, cond := range u {
		if !cond.Equal(other[idx]) {
			return false
		}
	}

	return true
}

// Upsert adds the given unlock condition or updates the previous one if already present.
func (u *UnlockConditions[T]) Upsert(cond T) {
	for i, ele := range *u {
		if ele.Type() == cond.Type() {
			(*u)[i] = cond

			return
		}
	}
	*u = append(*u, cond)
}

// Sort sorts the UnlockConditions in place by type.
func (u UnlockConditions[T]) Sort() {
	sort.Slice(u, func(i, j int) bool { return u[i].Type() < u[j].Type() })
}

// UnlockConditionSet is a set of UnlockCondition(s) keyed by their type.
type UnlockConditionSet map[UnlockConditionType]UnlockCondition

func (u UnlockConditionSet) Address() *AddressUnlockCondition {
	b, has := u[UnlockConditionAddress]
	if !has {
		return nil
	}

	//nolint:forcetypeassert
	return b.(*AddressUnlockCondition)
}

func (u UnlockConditionSet) StorageDepositReturn() *StorageDepositReturnUnlockCondition {
	b, has := u[UnlockConditionStorageDepositReturn]
	if !has {
		return nil
	}

	//nolint:forcetypeassert
	return b.(*StorageDepositReturnUnlockCondition)
}

func (u UnlockConditionSet) Timelock() *TimelockUnlockCondition {
	b, has := u[UnlockConditionTimelock]
	if !has {
		return nil
	}

	//nolint:forcetypeassert
	return b.(*TimelockUnlockCondition)
}

func (u UnlockConditionSet) Expiration() *ExpirationUnlockCondition {
	b, has := u[UnlockConditionExpiration]
	if !has {
		return nil
	}

	//nolint:forcetypeassert
	return b.(*ExpirationUnlockCondition)
}

func (u UnlockConditionSet) StateControllerAddress() *StateControllerAddressUnlockCondition {
	b, has := u[UnlockConditionStateControllerAddress]
	if !has {
		return nil
	}

	//nolint:forcetypeassert
	return b.(*StateControllerAddressUnlockCondition)
}

func (u UnlockConditionSet) GovernorAddress() *GovernorAddressUnlockCondition {
	b, has := u[UnlockConditionGovernorAddress]
	if !has {
		return nil
	}

	//nolint:forcetypeassert
	return b.(*GovernorAddressUnlockCondition)
}

func (u UnlockConditionSet) ImmutableAliasAddress() *ImmutableAliasAddressUnlockCondition {
	b, has := u[UnlockConditionImmutableAliasAddress]
	if !has {
		return nil
	}

	//nolint:forcetypeassert
	return b.(*ImmutableAliasAddressUnlockCondition)
}

// ErrAddressCannotReturnFunds gets returned when a StorageDepositReturnUnlockCondition's
// return address is the same party that unlocks the output (spec.md §3 invariant).
var ErrAddressCannotReturnFunds = ierrors.New("SDR return address must not equal the output's unlocking address")

// AddressUnlockCondition requires the output to be unlocked by the given address.
type AddressUnlockCondition struct {
	Address Address
}

func (u *AddressUnlockCondition) Type() UnlockConditionType { return UnlockConditionAddress }

func (u *AddressUnlockCondition) Clone() UnlockCondition {
	return &AddressUnlockCondition{Address: u.Address}
}

func (u *AddressUnlockCondition) Equal(other UnlockCondition) bool {
	o, is := other.(*AddressUnlockCondition)

	return is && u.Address.Equal(o.Address)
}

// StorageDepositReturnUnlockCondition forces a portion of an output's amount
// to be returned to ReturnAddress when the output is spent.
type StorageDepositReturnUnlockCondition struct {
	ReturnAddress Address
	Amount        BaseToken
}

func (u *StorageDepositReturnUnlockCondition) Type() UnlockConditionType {
	return UnlockConditionStorageDepositReturn
}

func (u *StorageDepositReturnUnlockCondition) Clone() UnlockCondition {
	return &StorageDepositReturnUnlockCondition{ReturnAddress: u.ReturnAddress, Amount: u.Amount}
}

func (u *StorageDepositReturnUnlockCondition) Equal(other UnlockCondition) bool {
	o, is := other.(*StorageDepositReturnUnlockCondition)

	return is && u.ReturnAddress.Equal(o.ReturnAddress) && u.Amount == o.Amount
}

// TimelockUnlockCondition makes an output unlockable only after UnixTime.
type TimelockUnlockCondition struct {
	UnixTime uint32
}

func (u *TimelockUnlockCondition) Type() UnlockConditionType { return UnlockConditionTimelock }

func (u *TimelockUnlockCondition) Clone() UnlockCondition {
	return &TimelockUnlockCondition{UnixTime: u.UnixTime}
}

func (u *TimelockUnlockCondition) Equal(other UnlockCondition) bool {
	o, is := other.(*TimelockUnlockCondition)

	return is && u.UnixTime == o.UnixTime
}

// ExpirationUnlockCondition redirects unlock rights to ReturnAddress after UnixTime.
type ExpirationUnlockCondition struct {
	ReturnAddress Address
	UnixTime      uint32
}

func (u *ExpirationUnlockCondition) Type() UnlockConditionType { return UnlockConditionExpiration }

func (u *ExpirationUnlockCondition) Clone() UnlockCondition {
	return &ExpirationUnlockCondition{ReturnAddress: u.ReturnAddress, UnixTime: u.UnixTime}
}

func (u *ExpirationUnlockCondition) Equal(other UnlockCondition) bool {
	o, is := other.(*ExpirationUnlockCondition)

	return is && u.ReturnAddress.Equal(o.ReturnAddress) && u.UnixTime == o.UnixTime
}

// StateControllerAddressUnlockCondition is the address allowed to perform state transitions on an Alias.
type StateControllerAddressUnlockCondition struct {
	Address Address
}

func (u *StateControllerAddressUnlockCondition) Type() UnlockConditionType {
	return UnlockConditionStateControllerAddress
}

func (u *StateControllerAddressUnlockCondition) Clone() UnlockCondition {
	return &StateControllerAddressUnlockCondition{Address: u.Address}
}

func (u *StateControllerAddressUnlockCondition) Equal(other UnlockCondition) bool {
	o, is := other.(*StateControllerAddressUnlockCondition)

	return is && u.Address.Equal(o.Address)
}

// GovernorAddressUnlockCondition is the address allowed to perform governance transitions on an Alias.
type GovernorAddressUnlockCondition struct {
	Address Address
}

func (u *GovernorAddressUnlockCondition) Type() UnlockConditionType {
	return UnlockConditionGovernorAddress
}

func (u *GovernorAddressUnlockCondition) Clone() UnlockCondition {
	return &GovernorAddressUnlockCondition{Address: u.Address}
}

func (u *GovernorAddressUnlockCondition) Equal(other UnlockCondition) bool {
	o, is := other.(*GovernorAddressUnlockCondition)

	return is && u.Address.Equal(o.Address)
}

// ImmutableAliasAddressUnlockCondition binds a Foundry to the Alias that controls it for its entire lifetime.
type ImmutableAliasAddressUnlockCondition struct {
	Address *AliasAddress
}

func (u *ImmutableAliasAddressUnlockCondition) Type() UnlockConditionType {
	return UnlockConditionImmutableAliasAddress
}

func (u *ImmutableAliasAddressUnlockCondition) Clone() UnlockCondition {
	return &ImmutableAliasAddressUnlockCondition{Address: u.Address}
}

func (u *ImmutableAliasAddressUnlockCondition) Equal(other UnlockCondition) bool {
	o, is := other.(*ImmutableAliasAddressUnlockCondition)

	return is && u.Address.Equal(o.Address)
}

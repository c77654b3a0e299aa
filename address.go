package iotago

import (
	"github.com/iotaledger/hive.go/ierrors"

	"github.com/sl00k/iota-input-selection/bech32"
)

// NetworkPrefix is the bech32 human-readable part used by a network.
type NetworkPrefix string

const (
	PrefixMainnet NetworkPrefix = "iota"
	PrefixDevnet  NetworkPrefix = "atoi"
	PrefixTestnet NetworkPrefix = "rms"
)

// AddressType denotes the type of an Address.
type AddressType byte

const (
	AddressEd25519 AddressType = iota
	AddressAlias
	AddressNFT
)

func (t AddressType) String() string {
	switch t {
	case AddressEd25519:
		return "Ed25519Address"
	case AddressAlias:
		return "AliasAddress"
	case AddressNFT:
		return "NFTAddress"
	default:
		return "unknown address type"
	}
}

// Address is an owner of an output, or the party that must unlock an
// unlock condition referencing it.
type Address interface {
	// Type returns the type of the address.
	Type() AddressType
	// Bech32 encodes the address as a bech32 string using the given hrp.
	Bech32(hrp NetworkPrefix) string
	// Equal reports whether this address equals other.
	Equal(other Address) bool
	// Key returns a value suitable for using the address as a map key.
	Key() string
	String() string
}

// ChainAddress is an Address derived from the identity of a chain output
// (Alias or NFT) rather than from a key pair.
type ChainAddress interface {
	Address
	Chain() ChainID
}

var ErrInvalidAddressType = ierrors.New("invalid address type")

// Ed25519Address is an address belonging to an Ed25519 key pair.
type Ed25519Address [32]byte

func (addr *Ed25519Address) Type() AddressType { return AddressEd25519 }

func (addr *Ed25519Address) Bech32(hrp NetworkPrefix) string {
	return bech32String(hrp, addr)
}

func (addr *Ed25519Address) Equal(other Address) bool {
	otherAddr, is := other.(*Ed25519Address)

	return is && *addr == *otherAddr
}

func (addr *Ed25519Address) Key() string {
	return string(AddressEd25519) + string(addr[:])
}

func (addr *Ed25519Address) String() string {
	return addr.Bech32(PrefixMainnet)
}

// AliasAddress is the address of an Alias, used to unlock outputs owned by
// that Alias's governor/state-controller and as the owning identity of a
// Foundry.
type AliasAddress struct {
	id AliasID
}

// NewAliasAddress creates a new AliasAddress from the given AliasID.
func NewAliasAddress(id AliasID) *AliasAddress {
	return &AliasAddress{id: id}
}

func (addr *AliasAddress) AliasID() AliasID { return addr.id }

func (addr *AliasAddress) Chain() ChainID { return addr.id }

func (addr *AliasAddress) Type() AddressType { return AddressAlias }

func (addr *AliasAddress) Bech32(hrp NetworkPrefix) string {
	return bech32String(hrp, addr)
}

func (addr *AliasAddress) Equal(other Address) bool {
	otherAddr, is := other.(*AliasAddress)

	return is && addr.id == otherAddr.id
}

func (addr *AliasAddress) Key() string {
	return string(AddressAlias) + string(addr.id[:])
}

func (addr *AliasAddress) String() string {
	return addr.Bech32(PrefixMainnet)
}

// NFTAddress is the address of an NFT, used to unlock outputs owned by that NFT.
type NFTAddress struct {
	id NFTID
}

// NewNFTAddress creates a new NFTAddress from the given NFTID.
func NewNFTAddress(id NFTID) *NFTAddress {
	return &NFTAddress{id: id}
}

func (addr *NFTAddress) NFTID() NFTID { return addr.id }

func (addr *NFTAddress) Chain() ChainID { return addr.id }

func (addr *NFTAddress) Type() AddressType { return AddressNFT }

func (addr *NFTAddress) Bech32(hrp NetworkPrefix) string {
	return bech32String(hrp, addr)
}

func (addr *NFTAddress) Equal(other Address) bool {
	otherAddr, is := other.(*NFTAddress)

	return is && addr.id == otherAddr.id
}

func (addr *NFTAddress) Key() string {
	return string(AddressNFT) + string(addr.id[:])
}

func (addr *NFTAddress) String() string {
	return addr.Bech32(PrefixMainnet)
}

// ChainID is the identifier of a chain-constrained output (Alias or NFT).
type ChainID interface {
	Matches(other ChainID) bool
	Empty() bool
}

// Matches reports whether other is the same AliasID, satisfying ChainID.
func (id AliasID) Matches(other ChainID) bool {
	o, is := other.(AliasID)

	return is && id == o
}

// Matches reports whether other is the same NFTID, satisfying ChainID.
func (id NFTID) Matches(other ChainID) bool {
	o, is := other.(NFTID)

	return is && id == o
}

func bech32String(hrp NetworkPrefix, addr Address) string {
	addrBytes := addressBytes(addr)

	s, err := bech32.Encode(string(hrp), append([]byte{byte(addr.Type())}, addrBytes...))
	if err != nil {
		panic(err)
	}

	return s
}

func addressBytes(addr Address) []byte {
	switch a := addr.(type) {
	case *Ed25519Address:
		return a[:]
	case *AliasAddress:
		return a.id[:]
	case *NFTAddress:
		return a.id[:]
	default:
		panic(ierrors.Errorf("%w: %T", ErrInvalidAddressType, addr))
	}
}

// ParseBech32 decodes a bech32 string into its network prefix and address.
func ParseBech32(s string) (NetworkPrefix, Address, error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return "", nil, err
	}
	if len(data) < 1 {
		return "", nil, ierrors.New("empty bech32 data part")
	}

	addr, err := addressFromTypeAndBytes(AddressType(data[0]), data[1:])
	if err != nil {
		return "", nil, err
	}

	return NetworkPrefix(hrp), addr, nil
}

func addressFromTypeAndBytes(t AddressType, data []byte) (Address, error) {
	switch t {
	case AddressEd25519:
		addr := &Ed25519Address{}
		copy(addr[:], data)

		return addr, nil
	case AddressAlias:
		id, _, err := AliasIDFromBytes(data)
		if err != nil {
			return nil, err
		}

		return &AliasAddress{id: id}, nil
	case AddressNFT:
		id, _, err := NFTIDFromBytes(data)
		if err != nil {
			return nil, err
		}

		return &NFTAddress{id: id}, nil
	default:
		return nil, ierrors.Wrapf(ErrInvalidAddressType, "type %d", t)
	}
}

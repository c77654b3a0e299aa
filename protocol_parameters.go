package iotago

import (
	"github.com/iotaledger/hive.go/runtime/options"
)

// ProtocolParameters defines the parameters of the network a selection
// engine operates against.
type ProtocolParameters interface {
	Bech32HRP() NetworkPrefix
	NetworkName() string
	RentStructure() *RentStructure
	TokenSupply() BaseToken
}

// V3ProtocolParameters is the concrete ProtocolParameters implementation,
// configured through functional options (spec.md's "Non-goals" excludes a
// full protocol-parameters surface, but a selection engine still needs rent
// and network identity to size and validate candidate outputs).
type V3ProtocolParameters struct {
	v3ProtocolParameters
}

type v3ProtocolParameters struct {
	NetworkNameValue string
	Bech32HRPValue   NetworkPrefix
	Rent             RentStructure
	TokenSupplyValue BaseToken
}

var _ ProtocolParameters = &V3ProtocolParameters{}

// NewV3ProtocolParameters creates a new V3ProtocolParameters, applying
// sensible testnet defaults before the given options.
func NewV3ProtocolParameters(opts ...options.Option[V3ProtocolParameters]) *V3ProtocolParameters {
	return options.Apply(
		new(V3ProtocolParameters),
		append([]options.Option[V3ProtocolParameters]{
			WithNetworkOptions("testnet", PrefixTestnet),
			WithSupplyOptions(1813620509061365, 500, 1, 10),
		},
			opts...,
		),
	)
}

func (p *V3ProtocolParameters) Bech32HRP() NetworkPrefix {
	return p.v3ProtocolParameters.Bech32HRPValue
}

func (p *V3ProtocolParameters) NetworkName() string {
	return p.v3ProtocolParameters.NetworkNameValue
}

func (p *V3ProtocolParameters) RentStructure() *RentStructure {
	return &p.v3ProtocolParameters.Rent
}

func (p *V3ProtocolParameters) TokenSupply() BaseToken {
	return p.v3ProtocolParameters.TokenSupplyValue
}

// WithNetworkOptions sets the network name and bech32 human-readable part.
func WithNetworkOptions(networkName string, bech32HRP NetworkPrefix) options.Option[V3ProtocolParameters] {
	return func(p *V3ProtocolParameters) {
		p.v3ProtocolParameters.NetworkNameValue = networkName
		p.v3ProtocolParameters.Bech32HRPValue = bech32HRP
	}
}

// WithSupplyOptions sets the token supply and rent structure.
func WithSupplyOptions(totalSupply BaseToken, vByteCost uint32, vBFactorData VByteCostFactor, vBFactorKey VByteCostFactor) options.Option[V3ProtocolParameters] {
	return func(p *V3ProtocolParameters) {
		p.v3ProtocolParameters.TokenSupplyValue = totalSupply
		p.v3ProtocolParameters.Rent = RentStructure{
			VByteCost:    vByteCost,
			VBFactorData: vBFactorData,
			VBFactorKey:  vBFactorKey,
		}
	}
}

package entity

import (
	"fmt"
	"math/big"
	"strconv"
)

// NetworkKind tells how a host reaches a network.
type NetworkKind string

const (
	// LocalNetwork is reached directly through protocol://host:port, keys live in the node.
	LocalNetwork NetworkKind = "local"
	// RemoteNetwork is reached through a provider factory that signs with a derived key.
	RemoteNetwork NetworkKind = "remote"
)

// AnyNetworkID is the wildcard network identifier accepting whatever chain the node reports.
const AnyNetworkID = "*"

// ProviderFactory builds a fresh connection handle each time it is called.
type ProviderFactory func() (Provider, error)

// NetworkDescriptor holds the connection parameters of a deployment target.
// Local descriptors fill Protocol, Host and Port; remote descriptors carry a Provider factory instead.
type NetworkDescriptor struct {
	Name      string          `json:"name" yaml:"name"`
	Kind      NetworkKind     `json:"kind" yaml:"kind"`
	Protocol  string          `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	Host      string          `json:"host,omitempty" yaml:"host,omitempty"`
	Port      int             `json:"port,omitempty" yaml:"port,omitempty"`
	Gas       uint64          `json:"gas,omitempty" yaml:"gas,omitempty"` // 0 lets the host estimate
	GasPrice  uint64          `json:"gasPrice" yaml:"gasPrice"`           // wei
	NetworkID string          `json:"networkId" yaml:"networkId"`
	Provider  ProviderFactory `json:"-" yaml:"-"`
}

// IsLocal reports whether the descriptor points at a node by host and port.
func (d NetworkDescriptor) IsLocal() bool {
	return d.Kind == LocalNetwork
}

// URL returns protocol://host:port for local descriptors and "" otherwise.
func (d NetworkDescriptor) URL() string {
	if !d.IsLocal() || d.Host == "" {
		return ""
	}
	protocol := d.Protocol
	if protocol == "" {
		protocol = "http"
	}
	return fmt.Sprintf("%s://%s:%d", protocol, d.Host, d.Port)
}

// MatchesChainID reports whether a chain id reported by a node is acceptable for this descriptor.
func (d NetworkDescriptor) MatchesChainID(chainID *big.Int) bool {
	if d.NetworkID == AnyNetworkID {
		return true
	}
	id, ok := d.ChainID()
	if !ok || chainID == nil || !chainID.IsUint64() {
		return false
	}
	return chainID.Uint64() == id
}

// ChainID returns the numeric network identifier, or false for the wildcard and malformed values.
func (d NetworkDescriptor) ChainID() (uint64, bool) {
	if d.NetworkID == AnyNetworkID {
		return 0, false
	}
	id, err := strconv.ParseUint(d.NetworkID, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// GasPriceWei returns the gas price as a big integer, nil when unset.
func (d NetworkDescriptor) GasPriceWei() *big.Int {
	if d.GasPrice == 0 {
		return nil
	}
	return new(big.Int).SetUint64(d.GasPrice)
}

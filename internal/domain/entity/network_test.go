package entity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetworkDescriptorURL(t *testing.T) {
	local := NetworkDescriptor{Kind: LocalNetwork, Protocol: "http", Host: "localhost", Port: 7545}
	assert.Equal(t, "http://localhost:7545", local.URL())

	noProtocol := NetworkDescriptor{Kind: LocalNetwork, Host: "127.0.0.1", Port: 8545}
	assert.Equal(t, "http://127.0.0.1:8545", noProtocol.URL())

	remote := NetworkDescriptor{Kind: RemoteNetwork, NetworkID: "3"}
	assert.Empty(t, remote.URL())
}

func TestNetworkDescriptorMatchesChainID(t *testing.T) {
	wildcard := NetworkDescriptor{NetworkID: AnyNetworkID}
	assert.True(t, wildcard.MatchesChainID(big.NewInt(1337)))
	assert.True(t, wildcard.MatchesChainID(nil))

	ropsten := NetworkDescriptor{NetworkID: "3"}
	assert.True(t, ropsten.MatchesChainID(big.NewInt(3)))
	assert.False(t, ropsten.MatchesChainID(big.NewInt(4)))
	assert.False(t, ropsten.MatchesChainID(nil))
	assert.False(t, ropsten.MatchesChainID(new(big.Int).Lsh(big.NewInt(1), 70)))

	assert.False(t, NetworkDescriptor{NetworkID: "rinkeby"}.MatchesChainID(big.NewInt(4)))
}

func TestNetworkDescriptorChainID(t *testing.T) {
	id, ok := NetworkDescriptor{NetworkID: "4"}.ChainID()
	assert.True(t, ok)
	assert.Equal(t, uint64(4), id)

	_, ok = NetworkDescriptor{NetworkID: AnyNetworkID}.ChainID()
	assert.False(t, ok)

	_, ok = NetworkDescriptor{NetworkID: "rinkeby"}.ChainID()
	assert.False(t, ok)
}

func TestNetworkDescriptorGasPriceWei(t *testing.T) {
	assert.Nil(t, NetworkDescriptor{}.GasPriceWei())
	assert.Equal(t, big.NewInt(10_000_000_000), NetworkDescriptor{GasPrice: 10e9}.GasPriceWei())
}

func TestSecretsComplete(t *testing.T) {
	assert.True(t, Secrets{ProjectID: "abc", Mnemonic: "word word"}.Complete())
	assert.False(t, Secrets{ProjectID: "abc"}.Complete())
	assert.False(t, Secrets{ProjectID: " ", Mnemonic: "word"}.Complete())
	assert.False(t, Secrets{}.Complete())
}

package hdwallet

import (
	"context"
	"math/big"
	"testing"
	"time"

	"deploy_networks/internal/domain/entity"
	"deploy_networks/internal/infrastructure/network/client"
	"deploy_networks/internal/pkg/testutil"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well known development mnemonic and the first two addresses it derives on m/44'/60'/0'/0.
const (
	testMnemonic = "test test test test test test test test test test test junk"
	account0     = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	account1     = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

var (
	_ entity.Provider = (*Provider)(nil)
	_ entity.Signer   = (*Provider)(nil)
)

func TestDeriveKnownAddresses(t *testing.T) {
	d := NewDeriver(time.Minute)
	srv := testutil.NewRPCServer(t)

	p, err := NewProvider(context.Background(), d, testMnemonic, srv.URL, Options{NumberOfAddresses: 2})
	require.NoError(t, err)
	defer p.Close()

	accounts, err := p.Accounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, common.HexToAddress(account0), accounts[0])
	assert.Equal(t, common.HexToAddress(account1), accounts[1])
}

func TestDeriveAddressIndex(t *testing.T) {
	keys, err := NewDeriver(time.Minute).Derive(testMnemonic, "m/44'/60'/0'/0", 1, 1)
	require.NoError(t, err)
	require.Len(t, keys, 1)

	srv := testutil.NewRPCServer(t)
	p, err := NewProvider(context.Background(), NewDeriver(time.Minute), testMnemonic, srv.URL, Options{AddressIndex: 1})
	require.NoError(t, err)
	defer p.Close()
	accounts, _ := p.Accounts(context.Background())
	assert.Equal(t, []common.Address{common.HexToAddress(account1)}, accounts)
}

func TestDeriveCachesKeySets(t *testing.T) {
	d := NewDeriver(time.Minute)
	first, err := d.Derive(testMnemonic, "m/44'/60'/0'/0", 0, 1)
	require.NoError(t, err)
	second, err := d.Derive("  test test test test test test test test test test test junk ", "m/44'/60'/0'/0", 0, 1)
	require.NoError(t, err)
	assert.Same(t, first[0], second[0])

	d.Flush()
	third, err := d.Derive(testMnemonic, "m/44'/60'/0'/0", 0, 1)
	require.NoError(t, err)
	assert.NotSame(t, first[0], third[0])
	assert.Equal(t, first[0].D, third[0].D)
}

func TestDeriveRejectsBadInput(t *testing.T) {
	d := NewDeriver(time.Minute)

	_, err := d.Derive("", "m/44'/60'/0'/0", 0, 1)
	assert.ErrorIs(t, err, ErrInvalidMnemonic)

	_, err = d.Derive("not a real mnemonic at all", "m/44'/60'/0'/0", 0, 1)
	assert.ErrorIs(t, err, ErrInvalidMnemonic)

	_, err = d.Derive(testMnemonic, "m/44'/sixty", 0, 1)
	assert.ErrorContains(t, err, "parse derivation path")

	_, err = d.Derive(testMnemonic, "m/44'/60'/0'/0", -1, 1)
	assert.ErrorContains(t, err, "invalid address range")
}

func TestProviderDoesNotDialOnInvalidMnemonic(t *testing.T) {
	srv := testutil.NewRPCServer(t)
	_, err := NewProvider(context.Background(), NewDeriver(time.Minute), "", srv.URL, Options{})
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
	assert.Zero(t, srv.Calls("eth_chainId"))
}

func TestProviderSignsForChain(t *testing.T) {
	srv := testutil.NewRPCServer(t)
	srv.Set("eth_chainId", "0x4")

	p, err := NewProvider(context.Background(), NewDeriver(time.Minute), testMnemonic, srv.URL, Options{
		Client: client.Options{CallTimeout: time.Second},
	})
	require.NoError(t, err)
	defer p.Close()

	ctx := context.Background()
	to := common.HexToAddress(account1)
	tx := types.NewTx(&types.LegacyTx{Nonce: 0, To: &to, Value: big.NewInt(1), Gas: 21000, GasPrice: big.NewInt(10e9)})

	signed, err := p.SignTx(ctx, common.HexToAddress(account0), tx)
	require.NoError(t, err)

	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(4)), signed)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(account0), sender)

	_, err = p.SignTx(ctx, common.HexToAddress(account1), tx)
	assert.ErrorIs(t, err, ErrUnknownAccount)

	require.NoError(t, p.SendTransaction(ctx, signed))
	assert.Len(t, srv.RawTransactions(), 1)

	// chain id is asked once per provider
	_, err = p.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Calls("eth_chainId"))
}

func TestProviderTransactOpts(t *testing.T) {
	srv := testutil.NewRPCServer(t)
	p, err := NewProvider(context.Background(), NewDeriver(time.Minute), testMnemonic, srv.URL, Options{})
	require.NoError(t, err)
	defer p.Close()

	opts, err := p.TransactOpts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(account0), opts.From)
	assert.NotNil(t, opts.Signer)

	accounts, err := p.Accounts(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, DefaultNumberOfAddresses)
	assert.Equal(t, 10, DefaultNumberOfAddresses)
}

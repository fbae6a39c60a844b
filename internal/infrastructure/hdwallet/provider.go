package hdwallet

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"sync"

	"deploy_networks/internal/infrastructure/network/client"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// DefaultNumberOfAddresses is how many accounts a provider derives unless told otherwise.
const DefaultNumberOfAddresses = 10

// Options configure the derived accounts and the RPC connection.
type Options struct {
	DerivationPath    string
	AddressIndex      int
	NumberOfAddresses int
	Client            client.Options
}

// Provider signs with keys derived from a mnemonic and submits through an RPC endpoint.
// It implements entity.Provider and entity.Signer.
type Provider struct {
	*client.EVMClient

	accounts []common.Address
	keys     map[common.Address]*ecdsa.PrivateKey

	mu      sync.Mutex
	chainID *big.Int
}

// NewProvider derives the configured accounts and dials endpoint.
func NewProvider(ctx context.Context, deriver *Deriver, mnemonic, endpoint string, opts Options) (*Provider, error) {
	if opts.DerivationPath == "" {
		opts.DerivationPath = "m/44'/60'/0'/0"
	}
	if opts.NumberOfAddresses < 1 {
		opts.NumberOfAddresses = DefaultNumberOfAddresses
	}

	keys, err := deriver.Derive(mnemonic, opts.DerivationPath, opts.AddressIndex, opts.NumberOfAddresses)
	if err != nil {
		return nil, err
	}

	evm, err := client.NewEVMClient(ctx, endpoint, opts.Client)
	if err != nil {
		return nil, errors.Wrap(err, "dial provider endpoint")
	}

	p := &Provider{
		EVMClient: evm,
		accounts:  make([]common.Address, 0, len(keys)),
		keys:      make(map[common.Address]*ecdsa.PrivateKey, len(keys)),
	}
	for _, key := range keys {
		addr := crypto.PubkeyToAddress(key.PublicKey)
		p.accounts = append(p.accounts, addr)
		p.keys[addr] = key
	}
	return p, nil
}

// Accounts returns the derived addresses, first one is the default sender.
func (p *Provider) Accounts(context.Context) ([]common.Address, error) {
	return append([]common.Address(nil), p.accounts...), nil
}

// ChainID asks the node once per provider and remembers the answer.
func (p *Provider) ChainID(ctx context.Context) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.chainID != nil {
		return new(big.Int).Set(p.chainID), nil
	}
	id, err := p.EVMClient.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	p.chainID = id
	return new(big.Int).Set(id), nil
}

// TransactOpts returns transaction options signing with the default account.
func (p *Provider) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if len(p.accounts) == 0 {
		return nil, ErrUnknownAccount
	}
	chainID, err := p.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := bind.NewKeyedTransactorWithChainID(p.keys[p.accounts[0]], chainID)
	if err != nil {
		return nil, errors.Wrap(err, "build transactor")
	}
	opts.Context = ctx
	return opts, nil
}

// SignTx signs tx with the key of from.
func (p *Provider) SignTx(ctx context.Context, from common.Address, tx *types.Transaction) (*types.Transaction, error) {
	key, ok := p.keys[from]
	if !ok {
		return nil, errors.Wrap(ErrUnknownAccount, from.Hex())
	}
	chainID, err := p.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
	if err != nil {
		return nil, errors.Wrapf(err, "sign tx for %s", from.Hex())
	}
	return signed, nil
}

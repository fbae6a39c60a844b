package entity

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Provider is a live connection to a network.
type Provider interface {
	// Endpoint returns the RPC URL the provider talks to.
	Endpoint() string
	// Accounts lists the addresses the provider can act for.
	Accounts(ctx context.Context) ([]common.Address, error)
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	Close()
}

// Signer is implemented by providers holding private keys.
type Signer interface {
	TransactOpts(ctx context.Context) (*bind.TransactOpts, error)
	SignTx(ctx context.Context, from common.Address, tx *types.Transaction) (*types.Transaction, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

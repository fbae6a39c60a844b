package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/time/rate"
)

const (
	defaultDialTimeout = 10 * time.Second
	defaultCallTimeout = 10 * time.Second
)

// Options tune how an EVMClient dials and paces its calls.
type Options struct {
	DialTimeout       time.Duration
	CallTimeout       time.Duration
	RequestsPerSecond float64 // <= 0 disables rate limiting
	Burst             int
}

// EVMClient is a rate limited JSON-RPC connection to an EVM node.
// It implements entity.Provider with node-managed accounts.
type EVMClient struct {
	endpoint       string
	rpcClient      *rpc.Client
	ethClient      *ethclient.Client
	limiter        *rate.Limiter
	rpcCallTimeout time.Duration
}

// NewEVMClient dials endpoint. For HTTP endpoints no request is sent until the first call.
func NewEVMClient(ctx context.Context, endpoint string, opts Options) (*EVMClient, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("rpc endpoint is empty")
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = defaultDialTimeout
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = defaultCallTimeout
	}

	dialCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	rpcClient, err := rpc.DialContext(dialCtx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC %s: %w", endpoint, err)
	}

	return &EVMClient{
		endpoint:       endpoint,
		rpcClient:      rpcClient,
		ethClient:      ethclient.NewClient(rpcClient),
		limiter:        newLimiter(opts.RequestsPerSecond, opts.Burst),
		rpcCallTimeout: opts.CallTimeout,
	}, nil
}

func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// call waits for the limiter and bounds the request by the call timeout.
func (c *EVMClient) call(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limiter for %s: %w", c.endpoint, err)
	}
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	return callCtx, cancel, nil
}

// Endpoint returns the RPC URL.
func (c *EVMClient) Endpoint() string {
	return c.endpoint
}

// Accounts returns the accounts unlocked in the node (eth_accounts).
func (c *EVMClient) Accounts(ctx context.Context) ([]common.Address, error) {
	callCtx, cancel, err := c.call(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	var accounts []common.Address
	if err := c.rpcClient.CallContext(callCtx, &accounts, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("eth_accounts on %s: %w", c.endpoint, err)
	}
	return accounts, nil
}

// ChainID returns the chain id reported by the node.
func (c *EVMClient) ChainID(ctx context.Context) (*big.Int, error) {
	callCtx, cancel, err := c.call(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	id, err := c.ethClient.ChainID(callCtx)
	if err != nil {
		return nil, fmt.Errorf("eth_chainId on %s: %w", c.endpoint, err)
	}
	return id, nil
}

// BlockNumber returns the latest block height.
func (c *EVMClient) BlockNumber(ctx context.Context) (uint64, error) {
	callCtx, cancel, err := c.call(ctx)
	if err != nil {
		return 0, err
	}
	defer cancel()

	n, err := c.ethClient.BlockNumber(callCtx)
	if err != nil {
		return 0, fmt.Errorf("eth_blockNumber on %s: %w", c.endpoint, err)
	}
	return n, nil
}

// BalanceAt returns the latest balance of account in wei.
func (c *EVMClient) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	callCtx, cancel, err := c.call(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	balance, err := c.ethClient.BalanceAt(callCtx, account, nil)
	if err != nil {
		return nil, fmt.Errorf("eth_getBalance for %s on %s: %w", account.Hex(), c.endpoint, err)
	}
	return balance, nil
}

// SuggestGasPrice returns the node's gas price suggestion in wei.
func (c *EVMClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	callCtx, cancel, err := c.call(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	price, err := c.ethClient.SuggestGasPrice(callCtx)
	if err != nil {
		return nil, fmt.Errorf("eth_gasPrice on %s: %w", c.endpoint, err)
	}
	return price, nil
}

// SendTransaction submits a signed transaction.
func (c *EVMClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	callCtx, cancel, err := c.call(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	if err := c.ethClient.SendTransaction(callCtx, tx); err != nil {
		return fmt.Errorf("eth_sendRawTransaction on %s: %w", c.endpoint, err)
	}
	return nil
}

// Close releases the underlying connection.
func (c *EVMClient) Close() {
	if c.ethClient != nil {
		c.ethClient.Close()
	}
}

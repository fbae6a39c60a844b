package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deploy_networks/internal/app/port"
	"deploy_networks/internal/domain/entity"
	"deploy_networks/internal/pkg/metrics"
	"deploy_networks/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrUnknownNetwork is returned for names missing from the descriptor table.
	ErrUnknownNetwork = errors.New("unknown network")
	// ErrNetworkIDMismatch is returned when the node reports a chain the descriptor does not accept.
	ErrNetworkIDMismatch = errors.New("chain id does not match network id")
	// ErrNoSigner is returned when the network's provider holds no keys.
	ErrNoSigner = errors.New("provider cannot sign transactions")
)

const defaultMaxConcurrentChecks = 4

// NetworkService is the host side of the descriptor table: it selects a network by name and
// opens its provider on demand.
type NetworkService struct {
	networks      port.NetworkDefinitionProvider
	connector     port.ProviderConnector
	logger        port.Logger
	metrics       *metrics.Metrics
	maxConcurrent int
}

// NewNetworkService creates a NetworkService. m may be nil.
func NewNetworkService(
	networks port.NetworkDefinitionProvider,
	connector port.ProviderConnector,
	logger port.Logger,
	m *metrics.Metrics,
	maxConcurrent int,
) *NetworkService {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentChecks
	}
	return &NetworkService{
		networks:      networks,
		connector:     connector,
		logger:        logger,
		metrics:       m,
		maxConcurrent: maxConcurrent,
	}
}

// List returns every descriptor ordered by name.
func (s *NetworkService) List() []entity.NetworkDescriptor {
	return s.networks.GetAllNetworkDefinitions()
}

// Describe returns the descriptor for name.
func (s *NetworkService) Describe(name string) (entity.NetworkDescriptor, error) {
	desc, ok := s.networks.GetNetworkDefinitionByName(name)
	if !ok {
		return entity.NetworkDescriptor{}, fmt.Errorf("%q: %w", name, ErrUnknownNetwork)
	}
	return desc, nil
}

// Session is a targeted network with its live provider.
type Session struct {
	Descriptor entity.NetworkDescriptor
	Provider   entity.Provider
}

// Close releases the provider.
func (s *Session) Close() {
	if s != nil && s.Provider != nil {
		s.Provider.Close()
	}
}

// TransactOpts returns signer backed options with the descriptor's gas settings applied.
func (s *Session) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	signer, ok := s.Provider.(entity.Signer)
	if !ok {
		return nil, fmt.Errorf("%s: %w", s.Descriptor.Name, ErrNoSigner)
	}
	opts, err := signer.TransactOpts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Descriptor.Name, err)
	}
	if s.Descriptor.Gas > 0 {
		opts.GasLimit = s.Descriptor.Gas
	}
	if price := s.Descriptor.GasPriceWei(); price != nil {
		opts.GasPrice = price
	}
	return opts, nil
}

// Open selects name and opens its provider. The provider factory runs once per call.
func (s *NetworkService) Open(ctx context.Context, name string) (*Session, error) {
	desc, err := s.Describe(name)
	if err != nil {
		return nil, err
	}

	provider, err := s.connector.Connect(ctx, desc)
	if s.metrics != nil {
		s.metrics.ProviderInvocations.WithLabelValues(name, metrics.Result(err)).Inc()
	}
	if err != nil {
		s.logger.Error("Failed to open provider", "network", name, "error", err)
		return nil, err
	}
	s.logger.Debug("Provider opened", "network", name, "kind", desc.Kind)
	return &Session{Descriptor: desc, Provider: provider}, nil
}

// Check opens the network, verifies the chain id and reads block height, default account
// balance and gas price. The returned status is filled as far as the check got.
func (s *NetworkService) Check(ctx context.Context, name string) (entity.NetworkStatus, error) {
	started := time.Now()
	status := entity.NetworkStatus{Network: name}

	if _, err := s.Describe(name); err != nil {
		status.Error = err.Error()
		return status, err
	}

	err := s.check(ctx, name, &status)
	if err != nil {
		status.Error = err.Error()
	}
	status.Healthy = err == nil

	// Only table names reach the labels.
	if s.metrics != nil {
		s.metrics.NetworkChecks.WithLabelValues(name, metrics.Result(err)).Inc()
		s.metrics.CheckDuration.WithLabelValues(name).Observe(time.Since(started).Seconds())
	}
	return status, err
}

func (s *NetworkService) check(ctx context.Context, name string, status *entity.NetworkStatus) error {
	session, err := s.Open(ctx, name)
	if err != nil {
		if desc, ok := s.networks.GetNetworkDefinitionByName(name); ok {
			status.Kind = desc.Kind
			status.NetworkID = desc.NetworkID
			status.ConfiguredGasGwei = utils.FormatGweiUint(desc.GasPrice)
		}
		return err
	}
	defer session.Close()

	desc := session.Descriptor
	status.Kind = desc.Kind
	status.NetworkID = desc.NetworkID
	status.ConfiguredGasGwei = utils.FormatGweiUint(desc.GasPrice)
	if desc.IsLocal() {
		// Remote endpoints embed the project id.
		status.Endpoint = session.Provider.Endpoint()
	}

	chainID, err := session.Provider.ChainID(ctx)
	if err != nil {
		return err
	}
	status.ChainID = chainID.Uint64()
	status.NetworkIDMatch = desc.MatchesChainID(chainID)
	if !status.NetworkIDMatch {
		return fmt.Errorf("%s reports chain %s, expected %s: %w", name, chainID, desc.NetworkID, ErrNetworkIDMismatch)
	}

	if status.BlockNumber, err = session.Provider.BlockNumber(ctx); err != nil {
		return err
	}

	accounts, err := session.Provider.Accounts(ctx)
	if err != nil {
		return err
	}
	if len(accounts) > 0 {
		status.Account = accounts[0].Hex()
		balance, err := session.Provider.BalanceAt(ctx, accounts[0])
		if err != nil {
			return err
		}
		status.BalanceEther = utils.FormatEther(balance)
	}

	price, err := session.Provider.SuggestGasPrice(ctx)
	if err != nil {
		return err
	}
	status.SuggestedGasGwei = utils.FormatGwei(price)

	s.logger.With("network", name).Info("Network check passed", "chain_id", status.ChainID, "block", status.BlockNumber)
	return nil
}

// CheckAll checks every network concurrently and returns statuses ordered by name.
// Individual failures are reported in the statuses.
func (s *NetworkService) CheckAll(ctx context.Context) []entity.NetworkStatus {
	return s.CheckMany(ctx, s.networkNames())
}

// CheckMany checks the named networks concurrently, keeping the order of names.
func (s *NetworkService) CheckMany(ctx context.Context, names []string) []entity.NetworkStatus {
	statuses := make([]entity.NetworkStatus, len(names))

	var g errgroup.Group
	g.SetLimit(s.maxConcurrent)
	for i, name := range names {
		g.Go(func() error {
			status, err := s.Check(ctx, name)
			if err != nil {
				s.logger.Warn("Network check failed", "network", name, "error", err)
			}
			statuses[i] = status
			return nil
		})
	}
	_ = g.Wait()
	return statuses
}

func (s *NetworkService) networkNames() []string {
	defs := s.networks.GetAllNetworkDefinitions()
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	return names
}

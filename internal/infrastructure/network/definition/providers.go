package networkdefinition

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"deploy_networks/internal/app/port"
	"deploy_networks/internal/domain/entity"
	"deploy_networks/internal/infrastructure/hdwallet"
)

// ErrMissingSecrets is returned by a remote provider factory invoked without mnemonic or project id.
var ErrMissingSecrets = errors.New("mnemonic and project id are required")

// DefaultEndpointTemplate is used when Options leave the template empty.
const DefaultEndpointTemplate = "https://{network}.infura.io/v3/{projectId}"

// NetworkDefinitionProvider holds the read-only descriptor table.
type NetworkDefinitionProvider struct {
	logger         port.Logger
	allNetworkDefs map[string]entity.NetworkDescriptor
}

// Options control how remote provider factories connect.
type Options struct {
	EndpointTemplate string
	DialTimeout      time.Duration
	Wallet           hdwallet.Options
	Deriver          *hdwallet.Deriver
}

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Development = entity.NetworkDescriptor{
		Name:      "development",
		Kind:      entity.LocalNetwork,
		Protocol:  "http",
		Host:      "localhost",
		Port:      7545,
		Gas:       6721975,
		GasPrice:  2e10,
		NetworkID: entity.AnyNetworkID,
	}
	Ropsten = entity.NetworkDescriptor{
		Name:      "ropsten",
		Kind:      entity.RemoteNetwork,
		GasPrice:  10e9,
		NetworkID: "3",
	}
	Rinkeby = entity.NetworkDescriptor{
		Name:      "rinkeby",
		Kind:      entity.RemoteNetwork,
		GasPrice:  10e9,
		NetworkID: "4",
	}
)

// allKnownDefinitions lists the predefined descriptors before factories are bound.
var allKnownDefinitions = []entity.NetworkDescriptor{Development, Ropsten, Rinkeby}

// NewNetworkDefinitionProvider builds the table once. Remote descriptors get a factory bound to
// secrets; nothing is dialed and secrets are not checked until a factory is invoked.
func NewNetworkDefinitionProvider(log port.Logger, secrets entity.Secrets, opts Options) *NetworkDefinitionProvider {
	if opts.EndpointTemplate == "" {
		opts.EndpointTemplate = DefaultEndpointTemplate
	}
	if opts.Deriver == nil {
		opts.Deriver = hdwallet.NewDeriver(0)
	}

	p := &NetworkDefinitionProvider{
		logger:         log,
		allNetworkDefs: make(map[string]entity.NetworkDescriptor, len(allKnownDefinitions)),
	}

	for _, def := range allKnownDefinitions {
		if def.Kind == entity.RemoteNetwork {
			def.Provider = remoteProviderFactory(log, def.Name, secrets, opts)
		}
		p.allNetworkDefs[def.Name] = def
	}

	if !secrets.Complete() {
		p.logger.Warn("Secrets incomplete, remote networks will fail when targeted", "has_mnemonic", secrets.Mnemonic != "", "has_project_id", secrets.ProjectID != "")
	}
	p.logger.Debug("NetworkDefinitionProvider initialized", "networks", p.Names())
	return p
}

// EndpointFor renders the RPC URL of a remote network from template.
func EndpointFor(template, network, projectID string) string {
	return strings.NewReplacer("{network}", network, "{projectId}", projectID).Replace(template)
}

// remoteProviderFactory returns a zero-argument factory. Each call derives (or reuses cached) keys
// and opens a new connection.
func remoteProviderFactory(log port.Logger, network string, secrets entity.Secrets, opts Options) entity.ProviderFactory {
	log = log.With("network", network)
	return func() (entity.Provider, error) {
		if !secrets.Complete() {
			return nil, fmt.Errorf("%s: %w", network, ErrMissingSecrets)
		}
		endpoint := EndpointFor(opts.EndpointTemplate, network, secrets.ProjectID)

		ctx := context.Background()
		if opts.DialTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.DialTimeout)
			defer cancel()
		}

		provider, err := hdwallet.NewProvider(ctx, opts.Deriver, secrets.Mnemonic, endpoint, opts.Wallet)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", network, err)
		}
		accounts, err := provider.Accounts(ctx)
		if err != nil {
			provider.Close()
			return nil, fmt.Errorf("%s: %w", network, err)
		}
		log.Info("Provider created", "accounts", len(accounts))
		return provider, nil
	}
}

// GetAllNetworkDefinitions returns every descriptor ordered by name.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDescriptor {
	if p == nil {
		return []entity.NetworkDescriptor{}
	}
	defs := make([]entity.NetworkDescriptor, 0, len(p.allNetworkDefs))
	for _, name := range p.Names() {
		defs = append(defs, p.allNetworkDefs[name])
	}
	return defs
}

// GetNetworkDefinitionByName returns the descriptor registered under name, exact match only.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(name string) (entity.NetworkDescriptor, bool) {
	if p == nil {
		return entity.NetworkDescriptor{}, false
	}
	def, ok := p.allNetworkDefs[name]
	return def, ok
}

// Names returns the sorted network names.
func (p *NetworkDefinitionProvider) Names() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.allNetworkDefs))
	for name := range p.allNetworkDefs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Networks returns a copy of the name to descriptor mapping.
func (p *NetworkDefinitionProvider) Networks() map[string]entity.NetworkDescriptor {
	if p == nil {
		return map[string]entity.NetworkDescriptor{}
	}
	out := make(map[string]entity.NetworkDescriptor, len(p.allNetworkDefs))
	for name, def := range p.allNetworkDefs {
		out[name] = def
	}
	return out
}

package client

import (
	"context"
	"errors"
	"fmt"

	"deploy_networks/internal/app/port"
	"deploy_networks/internal/domain/entity"
)

// ErrNoProviderFactory is returned for remote descriptors without a factory.
var ErrNoProviderFactory = errors.New("remote network has no provider factory")

// Connector implements port.ProviderConnector.
// Every Connect call opens a new handle; the caller closes it.
type Connector struct {
	logger port.Logger
	opts   Options
}

// NewConnector creates a Connector dialing local nodes with opts.
func NewConnector(logger port.Logger, opts Options) *Connector {
	return &Connector{logger: logger, opts: opts}
}

// Connect opens a provider for desc.
func (c *Connector) Connect(ctx context.Context, desc entity.NetworkDescriptor) (entity.Provider, error) {
	switch desc.Kind {
	case entity.LocalNetwork:
		c.logger.Debug("Dialing local node", "network", desc.Name, "url", desc.URL())
		evm, err := NewEVMClient(ctx, desc.URL(), c.opts)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", desc.Name, err)
		}
		return evm, nil
	case entity.RemoteNetwork:
		if desc.Provider == nil {
			return nil, fmt.Errorf("%s: %w", desc.Name, ErrNoProviderFactory)
		}
		c.logger.Debug("Invoking provider factory", "network", desc.Name)
		p, err := desc.Provider()
		if err != nil {
			return nil, fmt.Errorf("failed to create provider for %s: %w", desc.Name, err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("network %s has unsupported kind %q", desc.Name, desc.Kind)
	}
}

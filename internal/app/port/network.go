package port

import (
	"context"

	"deploy_networks/internal/domain/entity"
)

// NetworkDefinitionProvider exposes the read-only table of deployment targets.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns every descriptor ordered by name.
	GetAllNetworkDefinitions() []entity.NetworkDescriptor

	// GetNetworkDefinitionByName returns the descriptor registered under name.
	// The second result is false for unknown names.
	GetNetworkDefinitionByName(name string) (entity.NetworkDescriptor, bool)
}

// ProviderConnector opens a live provider for a descriptor.
type ProviderConnector interface {
	Connect(ctx context.Context, desc entity.NetworkDescriptor) (entity.Provider, error)
}

// NetworkService selects networks by name and checks them.
type NetworkService interface {
	List() []entity.NetworkDescriptor
	Describe(name string) (entity.NetworkDescriptor, error)
	Check(ctx context.Context, name string) (entity.NetworkStatus, error)
	CheckMany(ctx context.Context, names []string) []entity.NetworkStatus
	CheckAll(ctx context.Context) []entity.NetworkStatus
}

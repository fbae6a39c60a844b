package client

import (
	"net/url"
	"strconv"
	"testing"

	"deploy_networks/internal/domain/entity"

	"github.com/stretchr/testify/require"
)

func localDescriptorFor(t *testing.T, rawURL string) entity.NetworkDescriptor {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return entity.NetworkDescriptor{
		Name:      "development",
		Kind:      entity.LocalNetwork,
		Protocol:  u.Scheme,
		Host:      u.Hostname(),
		Port:      port,
		NetworkID: entity.AnyNetworkID,
	}
}

package configloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "secrets.json", cfg.Secrets.Path)
	assert.Equal(t, DefaultEndpointTemplate, cfg.RPC.EndpointTemplate)
	assert.Equal(t, DefaultDerivationPath, cfg.Wallet.DerivationPath)
	assert.Equal(t, 10, cfg.Wallet.NumberOfAddresses)
	assert.Equal(t, 10*time.Second, cfg.DialTimeout())
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL())
	assert.Equal(t, ":8080", cfg.Server.Port)
}

func TestLoadOverridesAndKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
secrets:
  path: /etc/deploy/secrets.json
rpc:
  endpointTemplate: "http://127.0.0.1:9999/{network}/{projectId}"
  callTimeoutSeconds: 3
wallet:
  addressIndex: 2
  numberOfAddresses: 1
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/etc/deploy/secrets.json", cfg.Secrets.Path)
	assert.Equal(t, "http://127.0.0.1:9999/{network}/{projectId}", cfg.RPC.EndpointTemplate)
	assert.Equal(t, 3*time.Second, cfg.CallTimeout())
	assert.Equal(t, 10*time.Second, cfg.DialTimeout())
	assert.Equal(t, 2, cfg.Wallet.AddressIndex)
	assert.Equal(t, 1, cfg.Wallet.NumberOfAddresses)
	assert.Equal(t, 4, cfg.Performance.MaxConcurrentChecks)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = Load(writeConfig(t, "logging: [unterminated"))
	assert.ErrorContains(t, err, "failed to unmarshal config data")

	_, err = Load(writeConfig(t, "rpc:\n  endpointTemplate: \"https://example.org/{projectId}\"\n"))
	assert.ErrorContains(t, err, "{network}")

	_, err = Load(writeConfig(t, "wallet:\n  derivationPath: \"44'/60'\"\n"))
	assert.ErrorContains(t, err, "derivationPath")
}

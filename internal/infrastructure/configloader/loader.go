package configloader

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultEndpointTemplate is the remote RPC endpoint, {network} and {projectId} are substituted.
const DefaultEndpointTemplate = "https://{network}.infura.io/v3/{projectId}"

// DefaultDerivationPath is the BIP-44 Ethereum path without the address index.
const DefaultDerivationPath = "m/44'/60'/0'/0"

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SecretsConfig tells where the mnemonic and project identifier live.
type SecretsConfig struct {
	Path string `yaml:"path"`
}

// RPCConfig holds provider connection settings.
type RPCConfig struct {
	EndpointTemplate   string  `yaml:"endpointTemplate"`
	DialTimeoutSeconds int     `yaml:"dialTimeoutSeconds"`
	CallTimeoutSeconds int     `yaml:"callTimeoutSeconds"`
	RequestsPerSecond  float64 `yaml:"requestsPerSecond"`
	Burst              int     `yaml:"burst"`
}

// WalletConfig holds HD wallet derivation settings.
type WalletConfig struct {
	DerivationPath    string `yaml:"derivationPath"`
	AddressIndex      int    `yaml:"addressIndex"`
	NumberOfAddresses int    `yaml:"numberOfAddresses"`
	CacheTTLMinutes   int    `yaml:"cacheTTLMinutes"`
}

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	MaxConcurrentChecks int `yaml:"maxConcurrentChecks"`
}

// Config is the top-level configuration structure.
type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	Secrets     SecretsConfig     `yaml:"secrets"`
	RPC         RPCConfig         `yaml:"rpc"`
	Wallet      WalletConfig      `yaml:"wallet"`
	Server      ServerConfig      `yaml:"server"`
	Performance PerformanceConfig `yaml:"performance"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the YAML configuration file from the given path and unmarshals it.
// An empty path returns Default().
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Secrets.Path == "" {
		c.Secrets.Path = "secrets.json"
	}

	if c.RPC.EndpointTemplate == "" {
		c.RPC.EndpointTemplate = DefaultEndpointTemplate
	}
	if c.RPC.DialTimeoutSeconds <= 0 {
		c.RPC.DialTimeoutSeconds = 10
	}
	if c.RPC.CallTimeoutSeconds <= 0 {
		c.RPC.CallTimeoutSeconds = 10
	}
	if c.RPC.RequestsPerSecond <= 0 {
		c.RPC.RequestsPerSecond = 10
	}
	if c.RPC.Burst <= 0 {
		c.RPC.Burst = 5
	}

	if c.Wallet.DerivationPath == "" {
		c.Wallet.DerivationPath = DefaultDerivationPath
	}
	// The wallet provider derives ten addresses unless told otherwise.
	if c.Wallet.NumberOfAddresses <= 0 {
		c.Wallet.NumberOfAddresses = 10
	}
	if c.Wallet.CacheTTLMinutes <= 0 {
		c.Wallet.CacheTTLMinutes = 10
	}

	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout <= 0 {
		c.Server.IdleTimeout = 60
	}

	if c.Performance.MaxConcurrentChecks <= 0 {
		c.Performance.MaxConcurrentChecks = 4
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if !strings.Contains(c.RPC.EndpointTemplate, "{network}") {
		return errors.New("required placeholder {network} missing from rpc.endpointTemplate")
	}
	if c.Wallet.AddressIndex < 0 {
		return fmt.Errorf("wallet.addressIndex must not be negative, got %d", c.Wallet.AddressIndex)
	}
	if !strings.HasPrefix(c.Wallet.DerivationPath, "m/") {
		return fmt.Errorf("wallet.derivationPath must start with m/, got %q", c.Wallet.DerivationPath)
	}
	return nil
}

// DialTimeout returns the provider dial timeout.
func (c *Config) DialTimeout() time.Duration {
	return time.Duration(c.RPC.DialTimeoutSeconds) * time.Second
}

// CallTimeout returns the per-call RPC timeout.
func (c *Config) CallTimeout() time.Duration {
	return time.Duration(c.RPC.CallTimeoutSeconds) * time.Second
}

// CacheTTL returns how long derived keys stay cached.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Wallet.CacheTTLMinutes) * time.Minute
}

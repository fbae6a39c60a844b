package secretsloader

import (
	"fmt"
	"os"
	"strings"

	"deploy_networks/internal/app/port"
	"deploy_networks/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
)

const (
	defaultSecretsFilePath = "secrets.json"

	// MnemonicEnv overrides the mnemonic read from the file.
	MnemonicEnv = "DEPLOY_MNEMONIC"
	// ProjectIDEnv overrides the project identifier read from the file.
	ProjectIDEnv = "DEPLOY_PROJECT_ID"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var _ port.SecretsProvider = (*SecretsFileLoader)(nil)

// SecretsFileLoader implements port.SecretsProvider by reading a JSON file.
type SecretsFileLoader struct {
	filePath string
	lookup   func(string) (string, bool)
	logger   port.Logger
}

// NewSecretsFileLoader creates a loader for filePath; an empty path means secrets.json.
func NewSecretsFileLoader(filePath string, logger port.Logger) *SecretsFileLoader {
	if filePath == "" {
		filePath = defaultSecretsFilePath
	}
	return &SecretsFileLoader{
		filePath: filePath,
		lookup:   os.LookupEnv,
		logger:   logger,
	}
}

// Path returns the file the loader reads.
func (l *SecretsFileLoader) Path() string {
	return l.filePath
}

// GetSecrets reads the file and applies environment overrides.
// When the file is absent but both environment variables are set, no error is returned.
func (l *SecretsFileLoader) GetSecrets() (entity.Secrets, error) {
	var secrets entity.Secrets

	data, err := os.ReadFile(l.filePath)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &secrets); err != nil {
			return entity.Secrets{}, fmt.Errorf("failed to unmarshal secrets file %s: %w", l.filePath, err)
		}
	case os.IsNotExist(err):
		secrets = l.applyEnv(secrets)
		if secrets.Complete() {
			l.logger.Debug("Secrets file absent, using environment", "path", l.filePath)
			return secrets, nil
		}
		return secrets, fmt.Errorf("failed to read secrets file %s: %w", l.filePath, err)
	default:
		return entity.Secrets{}, fmt.Errorf("failed to read secrets file %s: %w", l.filePath, err)
	}

	secrets = l.applyEnv(secrets)
	l.logger.Debug("Secrets loaded", "path", l.filePath, "has_mnemonic", secrets.Mnemonic != "", "has_project_id", secrets.ProjectID != "")
	return secrets, nil
}

func (l *SecretsFileLoader) applyEnv(secrets entity.Secrets) entity.Secrets {
	if v, ok := l.lookup(MnemonicEnv); ok && strings.TrimSpace(v) != "" {
		secrets.Mnemonic = v
	}
	if v, ok := l.lookup(ProjectIDEnv); ok && strings.TrimSpace(v) != "" {
		secrets.ProjectID = v
	}
	secrets.Mnemonic = strings.Join(strings.Fields(secrets.Mnemonic), " ")
	secrets.ProjectID = strings.TrimSpace(secrets.ProjectID)
	return secrets
}

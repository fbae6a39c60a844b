package port

import "deploy_networks/internal/domain/entity"

// SecretsProvider supplies the mnemonic and project identifier.
type SecretsProvider interface {
	GetSecrets() (entity.Secrets, error)
}

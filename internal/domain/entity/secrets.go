package entity

import "strings"

// Secrets are the two values remote descriptors need to build a provider.
type Secrets struct {
	ProjectID string `json:"projectId" yaml:"projectId"`
	Mnemonic  string `json:"mnemonic" yaml:"mnemonic"`
}

// Complete reports whether both values are present.
func (s Secrets) Complete() bool {
	return strings.TrimSpace(s.ProjectID) != "" && strings.TrimSpace(s.Mnemonic) != ""
}

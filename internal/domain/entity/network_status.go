package entity

// NetworkStatus is the outcome of a connectivity check against a network.
type NetworkStatus struct {
	Network           string      `json:"network"`
	Kind              NetworkKind `json:"kind"`
	NetworkID         string      `json:"networkId"`
	Endpoint          string      `json:"endpoint,omitempty"`
	ChainID           uint64      `json:"chainId,omitempty"`
	NetworkIDMatch    bool        `json:"networkIdMatch"`
	BlockNumber       uint64      `json:"blockNumber,omitempty"`
	Account           string      `json:"account,omitempty"`
	BalanceEther      string      `json:"balanceEther,omitempty"`
	SuggestedGasGwei  string      `json:"suggestedGasPriceGwei,omitempty"`
	ConfiguredGasGwei string      `json:"configuredGasPriceGwei"`
	Healthy           bool        `json:"healthy"`
	Error             string      `json:"error,omitempty"`
}

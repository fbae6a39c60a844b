package restapi

import (
	"errors"
	"net/http"

	"deploy_networks/internal/app/port"
	"deploy_networks/internal/app/service"
	"deploy_networks/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// APINetwork is the public view of a descriptor. Secrets never appear in it.
type APINetwork struct {
	Name      string             `json:"name"`
	Kind      entity.NetworkKind `json:"kind"`
	Protocol  string             `json:"protocol,omitempty"`
	Host      string             `json:"host,omitempty"`
	Port      int                `json:"port,omitempty"`
	URL       string             `json:"url,omitempty"`
	Gas       uint64             `json:"gas,omitempty"`
	GasPrice  uint64             `json:"gasPrice"`
	NetworkID string             `json:"networkId"`
	Provider  bool               `json:"provider"`
}

// APIError is returned with non-2xx responses.
type APIError struct {
	Error string `json:"error"`
}

// NewAPINetwork converts a descriptor to its public view.
func NewAPINetwork(desc entity.NetworkDescriptor) APINetwork {
	return APINetwork{
		Name:      desc.Name,
		Kind:      desc.Kind,
		Protocol:  desc.Protocol,
		Host:      desc.Host,
		Port:      desc.Port,
		URL:       desc.URL(),
		Gas:       desc.Gas,
		GasPrice:  desc.GasPrice,
		NetworkID: desc.NetworkID,
		Provider:  desc.Provider != nil,
	}
}

// NetworkHandler serves the descriptor table over HTTP.
type NetworkHandler struct {
	networkService port.NetworkService
	logger         port.Logger
}

// NewNetworkHandler creates a new NetworkHandler.
func NewNetworkHandler(ns port.NetworkService, logger port.Logger) *NetworkHandler {
	return &NetworkHandler{networkService: ns, logger: logger}
}

// ListNetworks handles GET /networks.
func (h *NetworkHandler) ListNetworks(c *gin.Context) {
	defs := h.networkService.List()
	out := make([]APINetwork, 0, len(defs))
	for _, def := range defs {
		out = append(out, NewAPINetwork(def))
	}
	c.JSON(http.StatusOK, gin.H{"networks": out})
}

// GetNetwork handles GET /networks/:name.
func (h *NetworkHandler) GetNetwork(c *gin.Context) {
	desc, err := h.networkService.Describe(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, APIError{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, NewAPINetwork(desc))
}

// GetNetworkStatus handles GET /networks/:name/status. It opens a provider for the network.
func (h *NetworkHandler) GetNetworkStatus(c *gin.Context) {
	name := c.Param("name")
	status, err := h.networkService.Check(c.Request.Context(), name)
	switch {
	case errors.Is(err, service.ErrUnknownNetwork):
		c.JSON(http.StatusNotFound, APIError{Error: err.Error()})
	case err != nil:
		h.logger.Warn("Status check failed", "network", name, "error", err)
		c.JSON(http.StatusServiceUnavailable, status)
	default:
		c.JSON(http.StatusOK, status)
	}
}

// GetAllStatuses handles GET /status.
func (h *NetworkHandler) GetAllStatuses(c *gin.Context) {
	statuses := h.networkService.CheckAll(c.Request.Context())
	code := http.StatusOK
	for _, st := range statuses {
		if !st.Healthy {
			code = http.StatusMultiStatus
			break
		}
	}
	c.JSON(code, gin.H{"statuses": statuses})
}

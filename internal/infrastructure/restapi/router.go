package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter wires the network routes and the metrics endpoint.
func SetupRouter(networkHandler *NetworkHandler, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/networks", networkHandler.ListNetworks)
		v1.GET("/networks/:name", networkHandler.GetNetwork)
		v1.GET("/networks/:name/status", networkHandler.GetNetworkStatus)
		v1.GET("/status", networkHandler.GetAllStatuses)
	}

	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	return router
}

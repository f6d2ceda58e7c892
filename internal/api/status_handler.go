package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ajharbinger/football-connector/internal/upstream"
	"github.com/ajharbinger/football-connector/pkg/config"
	"github.com/gin-gonic/gin"
)

// StatusHandler serves liveness, health and route listing
type StatusHandler struct {
	health *upstream.HealthMonitor
	cfg    *config.Config
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(health *upstream.HealthMonitor, cfg *config.Config) *StatusHandler {
	return &StatusHandler{health: health, cfg: cfg}
}

// Home reports that the connector is running
func (h *StatusHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "running",
		"message": "Football connector live ✅",
	})
}

// GetHealth returns upstream health status
func (h *StatusHandler) GetHealth(c *gin.Context) {
	status := h.health.GetHealthStatus()

	response := gin.H{
		"healthy":            status.IsHealthy,
		"timestamp":          time.Now(),
		"api_key_configured": h.cfg.HasAPIKey(),
		"upstream_health":    status,
	}

	if !status.IsHealthy {
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ResetUpstreamHealth clears recorded upstream outcomes
func (h *StatusHandler) ResetUpstreamHealth(c *gin.Context) {
	h.health.Reset()

	c.JSON(http.StatusOK, gin.H{
		"message":   "Upstream health monitoring data reset",
		"timestamp": time.Now(),
	})
}

// ListRoutes lists every route registered on r
func ListRoutes(r *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		routes := r.Routes()
		output := make([]string, 0, len(routes))
		for _, route := range routes {
			output = append(output, fmt.Sprintf("%s: %s %s", handlerName(route.Handler), route.Method, route.Path))
		}

		c.JSON(http.StatusOK, gin.H{"available_routes": output})
	}
}

// handlerName shortens "pkg/path/api.(*FixturesHandler).GetToday-fm" to "GetToday" and
// "pkg/path/api.ListRoutes.func1" to "ListRoutes"
func handlerName(full string) string {
	parts := strings.Split(strings.TrimSuffix(full, "-fm"), ".")
	name := parts[len(parts)-1]
	if strings.HasPrefix(name, "func") && len(parts) > 1 {
		name = parts[len(parts)-2]
	}
	return name
}

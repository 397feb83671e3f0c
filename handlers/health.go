package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ytmp3/config"
)

// HealthHandler handles health check endpoints
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HealthCheck returns the health status of the service
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"service":     "ytmp3",
		"scratch_dir": config.GetScratchDir(),
		"timestamp":   time.Now().Unix(),
	})
}

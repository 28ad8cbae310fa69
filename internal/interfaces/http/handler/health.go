package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// UpstreamProber reports whether the accounting system answers.
type UpstreamProber interface {
	Health(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	BaseHandler
	prober UpstreamProber
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(prober UpstreamProber) *HealthHandler {
	return &HealthHandler{prober: prober}
}

// Live answers as long as the process runs.
func (h *HealthHandler) Live(c *gin.Context) {
	h.Success(c, gin.H{"status": "ok"})
}

// Ready probes the accounting system with a short deadline. A down upstream
// makes the instance not ready without killing it.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.prober.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "degraded",
			"upstream": "unreachable",
		})
		return
	}
	h.Success(c, gin.H{"status": "ok", "upstream": "ok"})
}

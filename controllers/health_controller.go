package controllers

import (
	"context"
	"net/http"
	"time"

	"storefront-service/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LivenessMessage is the plaintext body of GET /.
const LivenessMessage = "SuJu Botanica server is running"

// Pinger checks a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	store Pinger
}

func NewHealthController(store Pinger) *HealthController {
	return &HealthController{store: store}
}

// Root handles GET /.
func (hc *HealthController) Root(c *gin.Context) {
	c.String(http.StatusOK, LivenessMessage)
}

// Health handles GET /health and fails with 503 when the store is unreachable.
func (hc *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := hc.store.Ping(ctx); err != nil {
		logger.Warn(c, "Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

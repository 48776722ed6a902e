package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const apiVersion = "1.0.0"

// Pinger reports whether the backing store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type SystemController struct {
	store Pinger
	now   func() time.Time
}

func NewSystemController(store Pinger) *SystemController {
	return &SystemController{store: store, now: time.Now}
}

// Root handles GET / with a directory of the API.
func (sc *SystemController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "3D Product Customizer API",
		"version": apiVersion,
		"endpoints": gin.H{
			"health":         "/health",
			"products":       "/api/products",
			"customizations": "/api/customizations",
			"customizer":     "/customizer/:id",
		},
	})
}

// Health handles GET /health. It answers 200 even when the store is down so
// the process stays in rotation while degraded.
func (sc *SystemController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	database := "connected"
	if err := sc.store.Ping(ctx); err != nil {
		database = "disconnected"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "3D Product Customizer API is running",
		"timestamp": sc.now().UTC().Format(time.RFC3339),
		"database":  database,
	})
}

// NotFound answers unmatched routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Endpoint not found"})
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Version string
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/health", h.health)
}

func (h *HealthHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "InvestAI Core",
		"version":   h.Version,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

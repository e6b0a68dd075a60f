package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mockuniversity/mocku-backend/internal/http/response"
)

var startedAt = time.Now()

// Health reports liveness. GET /api/health
func Health(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"status":    "ok",
		"service":   "mocku-backend",
		"uptime":    time.Since(startedAt).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

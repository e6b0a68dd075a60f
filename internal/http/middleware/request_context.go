package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
)

// AttachRequestContext tags each request with an id and logs its
// outcome.
func AttachRequestContext(log *logger.Logger) gin.HandlerFunc {
	reqLog := log.With("middleware", "RequestContext")
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		reqLog.Info("Request handled",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

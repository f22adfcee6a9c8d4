package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the gin context key and response header carrying the request id
const RequestIDKey = "X-Request-ID"

// Logging returns middleware that logs requests. onRequest, if set, is called once per request.
func Logging(logger logrus.FieldLogger, onRequest func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Generate request ID
		requestID := uuid.New().String()
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDKey, requestID)

		if onRequest != nil {
			onRequest()
		}

		// Call next handler
		c.Next()

		// Log request
		logger.WithFields(logrus.Fields{
			"request_id":  requestID,
			"method":      c.Request.Method,
			"endpoint":    c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_addr": c.ClientIP(),
		}).Info("Request completed")
	}
}

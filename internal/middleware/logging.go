package middleware

import (
	"time"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logging writes one structured access-log line per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.FromCtx(c.Request.Context()).Info("HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("duration", time.Since(start).String()),
			zap.String("remote_ip", c.ClientIP()),
		)
	}
}

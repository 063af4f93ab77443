package api

import (
	"net/http"
	"strconv"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// serverError hides internal failure detail from clients; the cause goes to
// the log with the request id.
func serverError(c *gin.Context, err error) {
	logger.FromCtx(c.Request.Context()).Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": "invalid_request_body",
		"msg":   err.Error(),
	})
}

func queryInt32(c *gin.Context, name string) (int32, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}

	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(v), true
}

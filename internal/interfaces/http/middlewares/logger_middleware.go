package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/moura95/account-auth/pkg/ginx"
)

// RequestLogger logs one line per request. Bodies are never logged since
// they carry passwords and image payloads.
func RequestLogger(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Errorw("request failed", fields...)
		case status >= http.StatusBadRequest:
			logger.Warnw("request rejected", fields...)
		default:
			logger.Infow("request handled", fields...)
		}
	}
}

func Recovery(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorw("panic recovered", "path", c.Request.URL.Path, "panic", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ginx.ErrorResponse("internal server error"))
			}
		}()
		c.Next()
	}
}

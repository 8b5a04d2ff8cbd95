package web

import (
	"time"

	"github.com/gin-gonic/gin"
	"pkt.systems/pslog"
)

// requestLogging logs every request with the logger of the request context.
func requestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}
		logger := pslog.Ctx(c.Request.Context()).With("remote", c.ClientIP())
		logger.Info("http request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		if len(c.Errors) > 0 {
			logger.Error("http request failed", "err", c.Errors.String())
		}
		logger.Debug("http request details", "ua", c.Request.UserAgent())
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"writemaster-api/pkg/logger"
)

// AccessLog 记录请求摘要。请求体携带 API Key，任何情况下都不写入日志。
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

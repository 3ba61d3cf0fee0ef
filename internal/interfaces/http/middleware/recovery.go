package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"writemaster-api/internal/interfaces/http/dto"
	apperrors "writemaster-api/pkg/errors"
	"writemaster-api/pkg/logger"
)

// Recovery 捕获 handler 中的 panic，记录堆栈后按网关错误格式返回 500
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			logger.Error(c.Request.Context(), "gateway handler panicked", fmt.Errorf("panic: %v", rec),
				"route", c.FullPath(),
				"method", c.Request.Method,
				"stack", string(debug.Stack()),
			)
			dto.Error(c, apperrors.ErrInternalError)
		}()

		c.Next()
	}
}

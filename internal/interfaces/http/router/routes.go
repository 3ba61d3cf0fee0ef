// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"

	"writemaster-api/internal/interfaces/http/handler"
)

// RegisterAPIRoutes 注册 /api 路由
func RegisterAPIRoutes(
	api *gin.RouterGroup,
	generateHandler *handler.GenerateHandler,
	usageHandler *handler.UsageHandler,
) {
	// 生成代理
	api.POST("/generate", generateHandler.Generate)
	api.OPTIONS("/generate", generateHandler.Options)

	// 用量流水
	if usageHandler != nil {
		api.GET("/usage", usageHandler.ListUsage)
	}
}

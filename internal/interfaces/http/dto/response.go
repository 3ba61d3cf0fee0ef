// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "writemaster-api/pkg/errors"
)

// Response 统一响应结构（用于网关的辅助查询接口）
type Response[T any] struct {
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Data    T         `json:"data,omitempty"`
	Meta    *PageMeta `json:"meta,omitempty"`
	TraceID string    `json:"trace_id,omitempty"`
}

// PageMeta 分页元数据
type PageMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`

	// TotalTokens 全部流水的 token 合计
	TotalTokens int64 `json:"total_tokens"`
}

// GatewayError /api/generate 的错误响应体
type GatewayError struct {
	Error string `json:"error"`
}

// SuccessWithPage 返回带分页的成功响应
func SuccessWithPage[T any](c *gin.Context, data T, meta *PageMeta) {
	c.JSON(http.StatusOK, Response[T]{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
		Meta:    meta,
		TraceID: c.GetString("trace_id"),
	})
}

// Fail 以 {"error": message} 返回错误
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, GatewayError{Error: message})
}

// Error 按 AppError 的状态码输出 {"error": 用户文本}；非 AppError 一律 500
func Error(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	Fail(c, appErr.HTTPStatus, appErr.Message)
}

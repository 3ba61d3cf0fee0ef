// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"writemaster-api/internal/infrastructure/upstream"
	"writemaster-api/internal/interfaces/http/dto"
	apperrors "writemaster-api/pkg/errors"
	"writemaster-api/pkg/logger"
)

var (
	errAPIKeyRequired   = apperrors.New(apperrors.CodeInvalidParam, "API key required")
	errMessagesRequired = apperrors.New(apperrors.CodeInvalidParam, "Messages required")
)

// Forwarder 上游转发端口
type Forwarder interface {
	Forward(ctx context.Context, req *upstream.Request) (*upstream.Result, error)
}

// GenerateHandler /api/generate 代理处理器，无状态
type GenerateHandler struct {
	forwarder Forwarder
}

// NewGenerateHandler 创建代理处理器
func NewGenerateHandler(forwarder Forwarder) *GenerateHandler {
	return &GenerateHandler{forwarder: forwarder}
}

// Generate 转发一次 Messages 调用
// @Summary 生成代理
// @Description 校验请求后转发到上游 Messages API，成功时原样返回上游 JSON
// @Tags Gateway
// @Accept json
// @Produce json
// @Success 200 {object} object "上游原始响应"
// @Failure 400 {object} dto.GatewayError
// @Failure 500 {object} dto.GatewayError
// @Router /api/generate [post]
func (h *GenerateHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	raw, err := c.GetRawData()
	if err != nil {
		dto.Error(c, err)
		return
	}

	var req dto.GenerateRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		logger.Warn(ctx, "invalid generate request body", "error", err.Error())
		dto.Error(c, err)
		return
	}

	if req.APIKey == "" {
		dto.Error(c, errAPIKeyRequired)
		return
	}
	if !req.MessagesIsArray() {
		dto.Error(c, errMessagesRequired)
		return
	}

	result, err := h.forwarder.Forward(ctx, &upstream.Request{
		APIKey:   req.APIKey,
		Messages: req.Messages,
		System:   req.System,
		Tools:    req.ToolList(),
	})
	if err != nil {
		logger.Error(ctx, "upstream forward failed", err)
		dto.Error(c, err)
		return
	}

	if !result.OK() {
		msg := upstream.ErrorMessage(result.Status, result.Body)
		dto.Error(c, apperrors.New(apperrors.CodeLLMProviderError, msg).WithStatus(result.Status))
		return
	}

	c.Data(http.StatusOK, "application/json", result.Body)
}

// Options 预检请求，返回 200 空响应
func (h *GenerateHandler) Options(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.Status(http.StatusOK)
}

// MethodNotAllowed 非 POST 请求
func MethodNotAllowed(c *gin.Context) {
	c.String(apperrors.ErrMethodNotAllowed.HTTPStatus, apperrors.ErrMethodNotAllowed.Message)
}

// NotFound 未注册的路径
func NotFound(c *gin.Context) {
	dto.Error(c, apperrors.ErrNotFound)
}

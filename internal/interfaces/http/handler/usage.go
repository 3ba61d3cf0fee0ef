package handler

import (
	"github.com/gin-gonic/gin"

	"writemaster-api/internal/application/usage"
	"writemaster-api/internal/interfaces/http/dto"
	apperrors "writemaster-api/pkg/errors"
	"writemaster-api/pkg/logger"
)

var errUsageDisabled = apperrors.New(apperrors.CodeServiceUnavailable, "usage recording disabled")

// UsageHandler 用量流水查询
type UsageHandler struct {
	query *usage.Query
}

// NewUsageHandler 创建用量处理器；query 为 nil 时接口返回 503
func NewUsageHandler(query *usage.Query) *UsageHandler {
	return &UsageHandler{query: query}
}

// ListUsage 分页列出用量流水（按时间倒序）
// @Summary 用量流水
// @Tags Usage
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.Response[[]dto.UsageEventResponse]
// @Failure 503 {object} dto.GatewayError
// @Router /api/usage [get]
func (h *UsageHandler) ListUsage(c *gin.Context) {
	if h == nil || h.query == nil {
		dto.Error(c, errUsageDisabled)
		return
	}
	ctx := c.Request.Context()

	req := dto.BindPage(c)
	page, err := h.query.List(ctx, req.Page, req.PageSize)
	if err != nil {
		logger.Error(ctx, "failed to list usage events", err)
		dto.Error(c, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list usage events"))
		return
	}
	result := page.Events

	items := make([]*dto.UsageEventResponse, 0, len(result.Items))
	for _, e := range result.Items {
		items = append(items, dto.ToUsageEventResponse(e))
	}
	dto.SuccessWithPage(c, items, &dto.PageMeta{
		Page:       result.Page,
		PageSize:   result.PageSize,
		Total:      result.Total,
		TotalPages: result.TotalPages,
		HasNext:    result.HasNext(),

		TotalTokens: page.TotalTokens,
	})
}

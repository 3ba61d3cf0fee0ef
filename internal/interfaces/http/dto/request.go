// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"writemaster-api/internal/domain/repository"
)

// PageRequest 用量查询的分页参数
type PageRequest struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

// BindPage 从查询串读取 page 与 page_size，缺省或无法解析时取默认值
func BindPage(c *gin.Context) PageRequest {
	return PageRequest{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", repository.DefaultPageSize),
	}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}

// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"time"

	"writemaster-api/internal/domain/entity"
)

type LLMUsageEventRepository interface {
	Create(ctx context.Context, event *entity.LLMUsageEvent) error
	List(ctx context.Context, pagination Pagination) (*PagedResult[*entity.LLMUsageEvent], error)
	GetTokenUsage(ctx context.Context, startInclusive, endExclusive time.Time) (int64, error)
}

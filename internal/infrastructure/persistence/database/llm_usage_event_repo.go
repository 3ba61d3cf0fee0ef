package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"writemaster-api/internal/domain/entity"
	"writemaster-api/internal/domain/repository"
)

type LLMUsageEventRepository struct {
	client *Client
}

func NewLLMUsageEventRepository(client *Client) *LLMUsageEventRepository {
	return &LLMUsageEventRepository{client: client}
}

func (r *LLMUsageEventRepository) Create(ctx context.Context, event *entity.LLMUsageEvent) error {
	ctx, span := tracer.Start(ctx, "database.LLMUsageEventRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client.db).Create(event).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create llm usage event: %w", err)
	}
	return nil
}

func (r *LLMUsageEventRepository) List(ctx context.Context, pagination repository.Pagination) (*repository.PagedResult[*entity.LLMUsageEvent], error) {
	ctx, span := tracer.Start(ctx, "database.LLMUsageEventRepository.List")
	defer span.End()

	query := func() *gorm.DB {
		return getDB(ctx, r.client.db).Model(&entity.LLMUsageEvent{})
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count llm usage events: %w", err)
	}

	var events []*entity.LLMUsageEvent
	if err := query().Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&events).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list llm usage events: %w", err)
	}

	return repository.NewPagedResult(events, total, pagination), nil
}

func (r *LLMUsageEventRepository) GetTokenUsage(ctx context.Context, startInclusive, endExclusive time.Time) (int64, error) {
	ctx, span := tracer.Start(ctx, "database.LLMUsageEventRepository.GetTokenUsage")
	defer span.End()

	var total int64
	if err := getDB(ctx, r.client.db).Model(&entity.LLMUsageEvent{}).
		Where("created_at >= ? AND created_at < ?", startInclusive, endExclusive).
		Select("COALESCE(SUM(tokens_prompt + tokens_completion),0)").
		Scan(&total).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to get llm usage: %w", err)
	}
	return total, nil
}

// Package usage 记录网关上游调用的 token 用量流水
package usage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"writemaster-api/internal/domain/entity"
	"writemaster-api/internal/domain/repository"
	"writemaster-api/internal/domain/service"
)

var _ service.LLMUsageRecorder = (*Recorder)(nil)

type Recorder struct {
	usageRepo repository.LLMUsageEventRepository
}

func NewRecorder(usageRepo repository.LLMUsageEventRepository) *Recorder {
	return &Recorder{usageRepo: usageRepo}
}

// Record 写入一条用量流水；未配置仓储时直接返回
func (r *Recorder) Record(ctx context.Context, in service.LLMUsageInput) error {
	if r == nil || r.usageRepo == nil {
		return nil
	}
	if in.PromptTokens < 0 || in.CompletionTokens < 0 {
		return fmt.Errorf("invalid token usage")
	}

	evt := &entity.LLMUsageEvent{
		Provider:         strings.TrimSpace(in.Provider),
		Model:            strings.TrimSpace(in.Model),
		Workflow:         strings.TrimSpace(in.Workflow),
		Status:           in.Status,
		TokensPrompt:     in.PromptTokens,
		TokensCompletion: in.CompletionTokens,
		DurationMs:       in.DurationMs,
	}
	if err := r.usageRepo.Create(ctx, evt); err != nil {
		return fmt.Errorf("record llm usage: %w", err)
	}
	return nil
}

// Query 用量流水查询
type Query struct {
	repo repository.LLMUsageEventRepository
	now  func() time.Time
}

func NewQuery(repo repository.LLMUsageEventRepository) *Query {
	return &Query{repo: repo, now: time.Now}
}

// Page 一页用量流水及累计 token 数
type Page struct {
	Events      *repository.PagedResult[*entity.LLMUsageEvent]
	TotalTokens int64
}

// List 按时间倒序分页列出流水；page 与 pageSize 越界时收敛到合法范围
func (q *Query) List(ctx context.Context, page, pageSize int) (*Page, error) {
	events, err := q.repo.List(ctx, repository.NewPagination(page, pageSize))
	if err != nil {
		return nil, err
	}
	tokens, err := q.repo.GetTokenUsage(ctx, time.Unix(0, 0), q.now())
	if err != nil {
		return nil, err
	}
	return &Page{Events: events, TotalTokens: tokens}, nil
}

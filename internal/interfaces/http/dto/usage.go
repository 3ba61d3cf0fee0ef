package dto

import (
	"time"

	"writemaster-api/internal/domain/entity"
)

// UsageEventResponse 用量流水
type UsageEventResponse struct {
	ID               string    `json:"id"`
	Provider         string    `json:"provider"`
	Model            string    `json:"model"`
	Workflow         string    `json:"workflow"`
	Status           int       `json:"status"`
	TokensPrompt     int       `json:"tokens_prompt"`
	TokensCompletion int       `json:"tokens_completion"`
	TokensTotal      int       `json:"tokens_total"`
	DurationMs       int       `json:"duration_ms"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToUsageEventResponse 实体转响应
func ToUsageEventResponse(e *entity.LLMUsageEvent) *UsageEventResponse {
	if e == nil {
		return nil
	}
	return &UsageEventResponse{
		ID:               e.ID,
		Provider:         e.Provider,
		Model:            e.Model,
		Workflow:         e.Workflow,
		Status:           e.Status,
		TokensPrompt:     e.TokensPrompt,
		TokensCompletion: e.TokensCompletion,
		TokensTotal:      e.TotalTokens(),
		DurationMs:       e.DurationMs,
		CreatedAt:        e.CreatedAt,
	}
}

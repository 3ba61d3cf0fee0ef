// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LLMUsageEvent 一次上游调用的用量流水，不包含任何凭据
type LLMUsageEvent struct {
	ID               string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Provider         string    `json:"provider" gorm:"type:varchar(32);not null"`
	Model            string    `json:"model" gorm:"type:varchar(64);not null"`
	Workflow         string    `json:"workflow" gorm:"type:varchar(32);index;not null"`
	Status           int       `json:"status" gorm:"not null;default:0"`
	TokensPrompt     int       `json:"tokens_prompt" gorm:"not null;default:0"`
	TokensCompletion int       `json:"tokens_completion" gorm:"not null;default:0"`
	DurationMs       int       `json:"duration_ms" gorm:"not null;default:0"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (LLMUsageEvent) TableName() string {
	return "llm_usage_events"
}

// BeforeCreate 生成主键（sqlite 没有 gen_random_uuid）
func (e *LLMUsageEvent) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// TotalTokens 输入输出 token 之和
func (e *LLMUsageEvent) TotalTokens() int {
	return e.TokensPrompt + e.TokensCompletion
}

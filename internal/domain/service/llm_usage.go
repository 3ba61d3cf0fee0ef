package service

import "context"

// LLMUsageInput 表示一次上游调用的可观测数据。
// 说明：该结构位于 domain/service，作为跨层的稳定契约（port），避免接口层依赖应用层实现。
type LLMUsageInput struct {
	Workflow string
	Provider string
	Model    string
	Status   int

	PromptTokens     int
	CompletionTokens int
	DurationMs       int
}

// LLMUsageRecorder 负责记录上游用量流水。
// 约定：该接口的实现应尽量“best-effort”，不应阻塞主业务流程。
type LLMUsageRecorder interface {
	Record(ctx context.Context, in LLMUsageInput) error
}

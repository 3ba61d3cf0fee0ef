package port

import (
	"context"

	"writemaster-api/internal/workflow/model"
)

// Completer 定义工作流层对网关的最小依赖（port）：发出一次补全调用。
type Completer interface {
	Complete(ctx context.Context, req model.CompletionRequest) (*model.CompletionResponse, error)
}

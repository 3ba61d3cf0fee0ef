//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"writemaster-api/internal/application/workspace"
	"writemaster-api/internal/config"
	"writemaster-api/internal/interfaces/http/router"
)

// InitializeGateway 初始化网关服务（带路由器）
func InitializeGateway(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(GatewaySet)
	return nil, nil, nil
}

// InitializeWorkspace 初始化 CLI / TUI 使用的工作区
func InitializeWorkspace(ctx context.Context, cfg *config.Config, opts []workspace.Option) (*Workspace, func(), error) {
	wire.Build(WorkspaceSet)
	return nil, nil, nil
}

// Package wire 提供依赖注入配置
package wire

import (
	"context"
	"strings"

	"github.com/google/wire"

	"writemaster-api/internal/application/usage"
	"writemaster-api/internal/application/workspace"
	"writemaster-api/internal/application/writer"
	"writemaster-api/internal/config"
	"writemaster-api/internal/domain/repository"
	"writemaster-api/internal/domain/service"
	"writemaster-api/internal/infrastructure/clipboard"
	"writemaster-api/internal/infrastructure/gateway"
	"writemaster-api/internal/infrastructure/persistence/database"
	"writemaster-api/internal/infrastructure/persistence/keyring"
	"writemaster-api/internal/infrastructure/persistence/memory"
	"writemaster-api/internal/infrastructure/persistence/redis"
	"writemaster-api/internal/infrastructure/upstream"
	"writemaster-api/internal/interfaces/http/handler"
	"writemaster-api/internal/interfaces/http/router"
	"writemaster-api/internal/workflow/port"
	"writemaster-api/internal/workflow/prompt"
	"writemaster-api/pkg/logger"
)

// 偏好存储后端
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendDatabase = "database"
)

// Workspace 客户端侧依赖容器（CLI / TUI）
type Workspace struct {
	Controller  *workspace.Controller
	Refiner     *writer.Refiner
	Preferences workspace.PreferenceStore
}

// GatewaySet 网关服务提供者集合
var GatewaySet = wire.NewSet(
	ProvideUsageDatabase,
	ProvideRedisClient,
	ProvideUsageRepository,
	ProvideUsageRecorder,
	ProvideUsageQuery,
	ProvideUpstreamClient,
	ProvideHealthHandler,
	ProvideUsageHandler,
	handler.NewGenerateHandler,
	wire.Bind(new(handler.Forwarder), new(*upstream.Client)),
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// WorkspaceSet 客户端提供者集合
var WorkspaceSet = wire.NewSet(
	ProvidePreferenceDatabase,
	ProvideRedisClient,
	ProvidePreferenceStore,
	ProvideGatewayClient,
	prompt.NewRegistry,
	prompt.NewAssembler,
	writer.NewGenerator,
	writer.NewRefiner,
	ProvideController,
	wire.Bind(new(port.Completer), new(*gateway.Client)),
	wire.Bind(new(workspace.Generator), new(*writer.Generator)),
	wire.Bind(new(workspace.Refiner), new(*writer.Refiner)),
	wire.Struct(new(Workspace), "*"),
)

func openDatabase(cfg *config.Config) (*database.Client, func(), error) {
	client, err := database.NewClient(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

func databaseEnabled(cfg *config.Config) bool {
	driver := strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	return driver != "" && driver != database.DriverNone
}

// ProvideUsageDatabase 网关侧数据库，仅在开启用量记录时打开
func ProvideUsageDatabase(ctx context.Context, cfg *config.Config) (*database.Client, func(), error) {
	if !cfg.Features.UsageRecording.Enabled || !databaseEnabled(cfg) {
		return nil, func() {}, nil
	}
	return openDatabase(cfg)
}

// ProvidePreferenceDatabase 客户端侧数据库，仅在偏好后端为 database 时打开
func ProvidePreferenceDatabase(ctx context.Context, cfg *config.Config) (*database.Client, func(), error) {
	if cfg.Preferences.Backend != BackendDatabase {
		return nil, func() {}, nil
	}
	if !databaseEnabled(cfg) {
		logger.Warn(ctx, "preferences backend is database but no driver configured, falling back to memory")
		return nil, func() {}, nil
	}
	return openDatabase(cfg)
}

// ProvideRedisClient 提供 Redis 客户端；未启用时返回 nil
func ProvideRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

func ProvideUsageRepository(db *database.Client) repository.LLMUsageEventRepository {
	if db == nil {
		return nil
	}
	return database.NewLLMUsageEventRepository(db)
}

func ProvideUsageRecorder(repo repository.LLMUsageEventRepository) service.LLMUsageRecorder {
	if repo == nil {
		return nil
	}
	return usage.NewRecorder(repo)
}

func ProvideUsageQuery(repo repository.LLMUsageEventRepository) *usage.Query {
	if repo == nil {
		return nil
	}
	return usage.NewQuery(repo)
}

func ProvideUpstreamClient(cfg *config.Config, recorder service.LLMUsageRecorder) *upstream.Client {
	return upstream.NewClient(&cfg.Upstream, recorder)
}

// ProvideHealthHandler 只把已配置的依赖纳入就绪检查
func ProvideHealthHandler(cfg *config.Config, db *database.Client, rdb *redis.Client) *handler.HealthHandler {
	deps := make(map[string]handler.HealthChecker)
	if db != nil {
		deps["database"] = db
	}
	if rdb != nil {
		deps["redis"] = rdb
	}
	return handler.NewHealthHandler(cfg.App.Version, deps)
}

func ProvideUsageHandler(q *usage.Query) *handler.UsageHandler {
	if q == nil {
		return nil
	}
	return handler.NewUsageHandler(q)
}

// ProvidePreferenceStore 按配置选择偏好后端，可选把 API Key 存入系统钥匙串
func ProvidePreferenceStore(ctx context.Context, cfg *config.Config, db *database.Client, rdb *redis.Client) workspace.PreferenceStore {
	var store workspace.PreferenceStore
	switch {
	case cfg.Preferences.Backend == BackendRedis && rdb != nil:
		store = redis.NewPreferenceStore(rdb)
	case cfg.Preferences.Backend == BackendDatabase && db != nil:
		store = workspace.NewRepositoryStore(database.NewPreferenceRepository(db))
	default:
		if cfg.Preferences.Backend != BackendMemory {
			logger.Warn(ctx, "preferences backend unavailable, using memory", "backend", cfg.Preferences.Backend)
		}
		store = memory.NewPreferenceStore()
	}

	if cfg.Preferences.Keyring {
		store = keyring.NewStore(cfg.Preferences.KeyringService, workspace.KeyAPIKey, store)
	}
	return store
}

func ProvideGatewayClient(cfg *config.Config) *gateway.Client {
	return gateway.NewClient(&cfg.Gateway)
}

// ProvideController 创建工作区控制器，系统剪贴板可用时自动接入
func ProvideController(ctx context.Context, prefs workspace.PreferenceStore, gen workspace.Generator, ref workspace.Refiner, opts []workspace.Option) (*workspace.Controller, error) {
	if cb := clipboard.New(); cb.Available() {
		opts = append([]workspace.Option{workspace.WithClipboard(cb)}, opts...)
	}
	return workspace.NewController(ctx, prefs, gen, ref, opts...)
}

// Package database 提供基于 GORM 的关系型存储（PostgreSQL / SQLite）
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"writemaster-api/internal/config"
	"writemaster-api/internal/domain/entity"
	"writemaster-api/pkg/logger"
)

var tracer = otel.Tracer("database")

// 支持的驱动
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverNone     = "none"
)

// Client 数据库客户端（GORM 版本）
type Client struct {
	db     *gorm.DB
	driver string
}

// NewClient 按配置打开数据库并执行迁移
func NewClient(cfg *config.DatabaseConfig) (*Client, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.New(
			log.New(loggerWriter{}, "", 0),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case DriverPostgres:
		db, err = gorm.Open(postgres.Open(cfg.Postgres.DSN()), gormConfig)
	case DriverSQLite:
		dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", cfg.SQLite.Path)
		db, err = gorm.Open(sqlite.Open(dsn), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite 单写者，避免 database is locked
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	c := &Client{db: db, driver: driver}
	if err := c.migrate(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// NewClientFromDB 包装已打开的 GORM 连接（测试使用）
func NewClientFromDB(db *gorm.DB, driver string) (*Client, error) {
	c := &Client{db: db, driver: driver}
	if err := c.migrate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) migrate() error {
	if err := c.db.AutoMigrate(
		&entity.Preference{},
		&entity.LLMUsageEvent{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// DB 获取 GORM DB 实例
func (c *Client) DB() *gorm.DB {
	return c.db
}

// Driver 返回驱动名
func (c *Client) Driver() string {
	return c.driver
}

// SqlDB 获取底层 sql.DB（用于健康检查等）
func (c *Client) SqlDB() (*sql.DB, error) {
	return c.db.DB()
}

// Close 关闭数据库连接
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck 健康检查
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "database.HealthCheck")
	defer span.End()

	var result int
	if err := c.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx)
}

// loggerWriter 把 GORM 日志转发到 slog
type loggerWriter struct{}

func (loggerWriter) Write(p []byte) (int, error) {
	logger.Warn(context.Background(), "gorm", "detail", strings.TrimSpace(string(p)))
	return len(p), nil
}

// Package redis 提供基于 Redis 的共享偏好存储，多台机器上的 writer 可以共用同一份设置
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"writemaster-api/internal/config"
	"writemaster-api/pkg/tracer"
)

var otelTracer = otel.Tracer("redis")

// Client 带键前缀和追踪的 Redis 连接
type Client struct {
	rdb    *redis.Client
	prefix string
}

// NewClient 建立连接并 Ping 一次，失败时关闭连接
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr(), err)
	}
	return NewClientFromRedis(rdb, cfg.KeyPrefix), nil
}

func NewClientFromRedis(rdb *redis.Client, prefix string) *Client {
	return &Client{rdb: rdb, prefix: prefix}
}

// Key 用冒号连接前缀与各段，空段被跳过
func (c *Client) Key(parts ...string) string {
	segs := make([]string, 0, len(parts)+1)
	for _, p := range append([]string{c.prefix}, parts...) {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return strings.Join(segs, ":")
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.traced(ctx, "redis.Ping", "", func(ctx context.Context) error {
		return c.rdb.Ping(ctx).Err()
	})
}

// HGet 读取哈希字段，字段不存在时返回 redis.Nil
func (c *Client) HGet(ctx context.Context, key, field string) (string, error) {
	var val string
	err := c.traced(ctx, "redis.HGet", key, func(ctx context.Context) error {
		var err error
		val, err = c.rdb.HGet(ctx, key, field).Result()
		return err
	})
	return val, err
}

func (c *Client) HSet(ctx context.Context, key, field, value string) error {
	return c.traced(ctx, "redis.HSet", key, func(ctx context.Context) error {
		return c.rdb.HSet(ctx, key, field, value).Err()
	})
}

func (c *Client) HDel(ctx context.Context, key string, fields ...string) error {
	return c.traced(ctx, "redis.HDel", key, func(ctx context.Context) error {
		return c.rdb.HDel(ctx, key, fields...).Err()
	})
}

// traced 在 span 中执行一次命令；redis.Nil 不记为错误
func (c *Client) traced(ctx context.Context, name, key string, fn func(context.Context) error) error {
	opts := []trace.SpanStartOption{trace.WithSpanKind(trace.SpanKindClient)}
	if key != "" {
		opts = append(opts, trace.WithAttributes(attribute.String("redis.key", key)))
	}
	ctx, span := otelTracer.Start(ctx, name, opts...)
	defer span.End()

	err := fn(ctx)
	if !IsNil(err) {
		tracer.RecordError(span, err)
	}
	return err
}

// IsNil 是否为键或字段不存在
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

// Package cache 提供 Redis 客户端封装，命令经过熔断器保护，支持 pipeline 批量读取
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"github.com/wyfcoding/storefront/pkg/logger"
)

// Cache 键值存储能力
type Cache interface {
	// Get 读取 key，不存在时 ok 为 false
	Get(ctx context.Context, key string) (val string, ok bool, err error)
	// GetMulti 在一次 pipeline 中读取多个 key，结果只包含存在的 key
	GetMulti(ctx context.Context, keys ...string) (map[string]string, error)
	// Set 写入 key 并设置过期时间
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Delete 删除 key
	Delete(ctx context.Context, keys ...string) error
	// Flush 清空当前库
	Flush(ctx context.Context) error
}

// Config Redis 配置
type Config struct {
	Host         string
	Port         int
	Password     string
	DB           int
	MaxPoolSize  int
	ConnTimeout  int
	ReadTimeout  int
	WriteTimeout int
}

// BreakerConfig 熔断配置，Enabled 为 false 时直接调用 Redis
type BreakerConfig struct {
	Enabled          bool
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// RedisCache Redis 缓存实现
type RedisCache struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker
}

var _ Cache = (*RedisCache)(nil)

// New 创建 Redis 缓存实例并检查连通性
func New(ctx context.Context, cfg Config, bc BreakerConfig) (*RedisCache, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.MaxPoolSize,
		DialTimeout:  time.Duration(cfg.ConnTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info(ctx, "Redis connected successfully", "addr", addr)

	return NewWithClient(client, bc), nil
}

// NewWithClient 使用已有客户端创建缓存实例
func NewWithClient(client *redis.Client, bc BreakerConfig) *RedisCache {
	rc := &RedisCache{client: client}
	if bc.Enabled {
		threshold := bc.FailureThreshold
		if threshold == 0 {
			threshold = 5
		}
		rc.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "redis",
			MaxRequests: bc.MaxRequests,
			Interval:    bc.Interval,
			Timeout:     bc.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			// 键不存在不计为失败
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, redis.Nil)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn(context.Background(), "circuit breaker state changed",
					"name", name, "from", from.String(), "to", to.String())
			},
		})
	}
	return rc
}

func (rc *RedisCache) execute(fn func() (any, error)) (any, error) {
	if rc.breaker == nil {
		return fn()
	}
	return rc.breaker.Execute(fn)
}

// Get 获取缓存值
func (rc *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	res, err := rc.execute(func() (any, error) {
		return rc.client.Get(ctx, key).Result()
	})
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		logger.Error(ctx, "Redis Get failed", "key", key, "error", err)
		return "", false, err
	}
	return res.(string), true, nil
}

// GetMulti 通过 pipeline 批量读取
func (rc *RedisCache) GetMulti(ctx context.Context, keys ...string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}

	res, err := rc.execute(func() (any, error) {
		pipe := rc.client.Pipeline()
		cmds := make([]*redis.StringCmd, len(keys))
		for i, key := range keys {
			cmds[i] = pipe.Get(ctx, key)
		}
		if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
			return nil, err
		}

		vals := make(map[string]string, len(keys))
		for i, cmd := range cmds {
			val, err := cmd.Result()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				return nil, err
			}
			vals[keys[i]] = val
		}
		return vals, nil
	})
	if err != nil {
		logger.Error(ctx, "Redis pipeline get failed", "keys", keys, "error", err)
		return nil, err
	}
	return res.(map[string]string), nil
}

// Set 设置缓存值
func (rc *RedisCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	_, err := rc.execute(func() (any, error) {
		return nil, rc.client.Set(ctx, key, value, expiration).Err()
	})
	if err != nil {
		logger.Error(ctx, "Redis Set failed", "key", key, "error", err)
		return err
	}
	return nil
}

// Delete 删除缓存
func (rc *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := rc.execute(func() (any, error) {
		return nil, rc.client.Del(ctx, keys...).Err()
	})
	if err != nil {
		logger.Error(ctx, "Redis Delete failed", "keys", keys, "error", err)
		return err
	}
	return nil
}

// Flush 清空当前库
func (rc *RedisCache) Flush(ctx context.Context) error {
	_, err := rc.execute(func() (any, error) {
		return nil, rc.client.FlushDB(ctx).Err()
	})
	if err != nil {
		logger.Error(ctx, "Redis FlushDB failed", "error", err)
		return err
	}
	return nil
}

// Close 关闭 Redis 连接
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// GetClient 获取底层 Redis 客户端
func (rc *RedisCache) GetClient() *redis.Client {
	return rc.client
}

package cache

import (
	"aetherium-service/internal/domain/interfaces"
	"aetherium-service/internal/infrastructure/logging"
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/redis/go-redis/v9"
)

// CacheType represents the type of cache implementation
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// Config holds cache configuration options
type Config struct {
	Type           CacheType
	RedisAddr      string
	RedisDB        int
	Password       string
	ConnectRetries uint
	RetryDelay     time.Duration
	PingTimeout    time.Duration
}

// Backend is a cache that can also report liveness
type Backend interface {
	interfaces.Cache
	interfaces.HealthChecker
}

// Factory provides methods to create cache instances
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// CreateCache creates a cache instance based on configuration
func (f *Factory) CreateCache(ctx context.Context, config Config) (Backend, error) {
	switch config.Type {
	case CacheTypeMemory, "":
		logging.Info(ctx, "Creating memory cache", logging.Fields{
			"type": "memory",
		})
		return NewMemoryCache(), nil

	case CacheTypeRedis:
		logging.Info(ctx, "Creating Redis cache", logging.Fields{
			"type":     "redis",
			"addr":     config.RedisAddr,
			"database": config.RedisDB,
		})
		return f.createRedisCache(ctx, config)

	default:
		return nil, fmt.Errorf("unsupported cache type: %s", config.Type)
	}
}

// createRedisCache pings Redis until it answers or the attempts run out
func (f *Factory) createRedisCache(ctx context.Context, config Config) (Backend, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.Password,
		DB:       config.RedisDB,
	})

	attempts := config.ConnectRetries
	if attempts == 0 {
		attempts = 1
	}
	delay := config.RetryDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	pingTimeout := config.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}

	err := retry.Do(
		func() error {
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			defer cancel()
			return rdb.Ping(pingCtx).Err()
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logging.WarnWithError(ctx, "Redis not reachable yet, retrying", err, logging.Fields{
				"addr":    config.RedisAddr,
				"attempt": n + 1,
			})
		}),
	)
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", config.RedisAddr, err)
	}

	logging.Info(ctx, "Redis connection established successfully", logging.Fields{
		"addr":     config.RedisAddr,
		"database": config.RedisDB,
	})
	return NewRedisCacheWithClient(rdb), nil
}

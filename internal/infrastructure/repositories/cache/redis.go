package cache

import (
	"aetherium-service/internal/domain/interfaces"
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisClient is the subset of *redis.Client the cache uses
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	DBSize(ctx context.Context) *redis.IntCmd
	Close() error
}

// RedisCache implements interfaces.Cache using Redis
type RedisCache struct {
	client redisClient
}

var (
	_ interfaces.Cache         = (*RedisCache)(nil)
	_ interfaces.HealthChecker = (*RedisCache)(nil)
)

func NewRedisCache(addr, password string, db int) *RedisCache {
	return NewRedisCacheWithClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}))
}

func NewRedisCacheWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores value; ttl <= 0 stores it without expiration (Redis KEEPTTL is not used)
func (r *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

// Size returns the number of keys in the selected Redis DB
func (r *RedisCache) Size(ctx context.Context) (int64, error) {
	return r.client.DBSize(ctx).Result()
}

package cache

import (
	"aetherium-service/internal/domain/interfaces"
	"aetherium-service/internal/infrastructure/logging"
	"aetherium-service/internal/infrastructure/metrics"
	"context"
	"encoding/json"
	"time"
)

// ResponseCacheAdapter guarda cuerpos de respuesta de los proveedores en cualquier
// interfaces.Cache con un TTL fijo
type ResponseCacheAdapter struct {
	backend interfaces.Cache
	ttl     time.Duration
}

var _ interfaces.ResponseCache = (*ResponseCacheAdapter)(nil)

// NewResponseCache returns a nil interface when ttl <= 0, which disables response caching
func NewResponseCache(backend interfaces.Cache, ttl time.Duration) interfaces.ResponseCache {
	if backend == nil || ttl <= 0 {
		return nil
	}
	return &ResponseCacheAdapter{
		backend: backend,
		ttl:     ttl,
	}
}

// Get devuelve el cuerpo si existe; un JSON corrupto cuenta como miss
func (a *ResponseCacheAdapter) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	value, err := a.backend.Get(ctx, key)
	if err != nil {
		if !IsMiss(err) {
			metrics.RecordCacheOperation("get", "error")
			logging.Cache().CacheError(ctx, logging.CacheOpGet, key, err)
			return nil, false
		}
		metrics.RecordCacheOperation("get", "miss")
		logging.Cache().Miss(ctx, key)
		return nil, false
	}

	if !json.Valid([]byte(value)) {
		metrics.RecordCacheOperation("get", "error")
		_ = a.backend.Delete(ctx, key)
		return nil, false
	}

	metrics.RecordCacheOperation("get", "hit")
	logging.Cache().Hit(ctx, key)
	return json.RawMessage(value), true
}

func (a *ResponseCacheAdapter) Set(ctx context.Context, key string, body json.RawMessage) {
	if err := a.backend.Set(ctx, key, string(body), a.ttl); err != nil {
		metrics.RecordCacheOperation("set", "error")
		logging.Cache().CacheError(ctx, logging.CacheOpSet, key, err)
		return
	}
	metrics.RecordCacheOperation("set", "success")
	logging.Cache().Set(ctx, key, a.ttl)
}

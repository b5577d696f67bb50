package interfaces

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is a string key/value store with per-key TTL. A zero TTL means the
// entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// HealthChecker is implemented by cache backends that can report liveness.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// ResponseCache keeps upstream response bodies for a short TTL. Misses and
// backend errors both report ok=false.
type ResponseCache interface {
	Get(ctx context.Context, key string) (body json.RawMessage, ok bool)
	Set(ctx context.Context, key string, body json.RawMessage)
}

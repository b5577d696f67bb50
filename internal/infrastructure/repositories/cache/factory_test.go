package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_CreateCache(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		wantType    interface{}
		expectedErr string
	}{
		{
			name:     "memory cache type",
			config:   Config{Type: CacheTypeMemory},
			wantType: &MemoryCache{},
		},
		{
			name:     "empty type defaults to memory",
			config:   Config{},
			wantType: &MemoryCache{},
		},
		{
			name:        "unsupported type",
			config:      Config{Type: "memcached"},
			wantErr:     true,
			expectedErr: "unsupported cache type: memcached",
		},
		{
			name: "redis unreachable fails after retries",
			config: Config{
				Type:           CacheTypeRedis,
				RedisAddr:      "127.0.0.1:1",
				ConnectRetries: 2,
				RetryDelay:     time.Millisecond,
				PingTimeout:    200 * time.Millisecond,
			},
			wantErr:     true,
			expectedErr: "failed to connect to Redis at 127.0.0.1:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, err := NewFactory().CreateCache(context.Background(), tt.config)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				assert.Nil(t, backend)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, backend)
			assert.NoError(t, backend.Ping(context.Background()))
		})
	}
}

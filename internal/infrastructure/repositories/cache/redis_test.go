package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRedisClient es un mock del cliente Redis
type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	cmd := redis.NewStringCmd(ctx, "get", key)
	if args.Error(1) != nil {
		cmd.SetErr(args.Error(1))
	} else {
		cmd.SetVal(args.String(0))
	}
	return cmd
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	if args.Error(0) != nil {
		cmd.SetErr(args.Error(0))
	} else {
		cmd.SetVal("OK")
	}
	return cmd
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	cmd := redis.NewIntCmd(ctx, "del")
	if args.Error(1) != nil {
		cmd.SetErr(args.Error(1))
	} else {
		cmd.SetVal(int64(args.Int(0)))
	}
	return cmd
}

func (m *MockRedisClient) Ping(ctx context.Context) *redis.StatusCmd {
	args := m.Called(ctx)
	cmd := redis.NewStatusCmd(ctx, "ping")
	if args.Error(0) != nil {
		cmd.SetErr(args.Error(0))
	} else {
		cmd.SetVal("PONG")
	}
	return cmd
}

func (m *MockRedisClient) DBSize(ctx context.Context) *redis.IntCmd {
	args := m.Called(ctx)
	cmd := redis.NewIntCmd(ctx, "dbsize")
	cmd.SetVal(args.Get(0).(int64))
	return cmd
}

func (m *MockRedisClient) Close() error {
	return m.Called().Error(0)
}

func TestRedisCache_Get(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		err     error
		want    string
		wantErr error
	}{
		{name: "hit", value: `{"id":"bitcoin"}`, want: `{"id":"bitcoin"}`},
		{name: "miss maps to ErrKeyNotFound", err: redis.Nil, wantErr: ErrKeyNotFound},
		{name: "connection error passes through", err: errors.New("dial tcp: refused"), wantErr: errors.New("dial tcp: refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockRedisClient{}
			client.On("Get", mock.Anything, "k").Return(tt.value, tt.err)
			c := &RedisCache{client: client}

			got, err := c.Get(context.Background(), "k")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRedisCache_SetClampsNegativeTTL(t *testing.T) {
	client := &MockRedisClient{}
	client.On("Set", mock.Anything, "k", "v", time.Duration(0)).Return(nil).Once()
	client.On("Set", mock.Anything, "k", "v", time.Minute).Return(nil).Once()
	c := &RedisCache{client: client}

	require.NoError(t, c.Set(context.Background(), "k", "v", -time.Second))
	require.NoError(t, c.Set(context.Background(), "k", "v", time.Minute))
	client.AssertExpectations(t)
}

func TestRedisCache_DeletePingSizeClose(t *testing.T) {
	client := &MockRedisClient{}
	client.On("Del", mock.Anything, []string{"k"}).Return(1, nil)
	client.On("Ping", mock.Anything).Return(nil)
	client.On("DBSize", mock.Anything).Return(int64(3))
	client.On("Close").Return(nil)
	c := &RedisCache{client: client}
	ctx := context.Background()

	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Ping(ctx))
	size, err := c.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), size)
	assert.NoError(t, c.Close())
	client.AssertExpectations(t)
}

func TestNewRedisCache_DoesNotConnect(t *testing.T) {
	c := NewRedisCache("localhost:6379", "", 1)
	require.NotNil(t, c)
	assert.NotNil(t, c.client)
	_ = c.Close()
}

package testutil

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient answers as an empty redis unless a func is set.
type MockRedisClient struct {
	ExistFunc               func(ctx context.Context, key string) (bool, error)
	DelFunc                 func(ctx context.Context, key string) error
	ZAddWithTTLFunc         func(ctx context.Context, key string, ttl time.Duration, z ...redis.Z) error
	ZIncrByFunc             func(ctx context.Context, key string, incr int64, member string) error
	ZRevRangeWithScoresFunc func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error)
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc == nil {
		return false, nil
	}
	return m.ExistFunc(ctx, key)
}

func (m *MockRedisClient) Del(ctx context.Context, key string) error {
	if m.DelFunc == nil {
		return nil
	}
	return m.DelFunc(ctx, key)
}

func (m *MockRedisClient) ZAddWithTTL(ctx context.Context, key string, ttl time.Duration, z ...redis.Z) error {
	if m.ZAddWithTTLFunc == nil {
		return nil
	}
	return m.ZAddWithTTLFunc(ctx, key, ttl, z...)
}

func (m *MockRedisClient) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	if m.ZIncrByFunc == nil {
		return nil
	}
	return m.ZIncrByFunc(ctx, key, incr, member)
}

func (m *MockRedisClient) ZRevRangeWithScores(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
	if m.ZRevRangeWithScoresFunc == nil {
		return nil, nil
	}
	return m.ZRevRangeWithScoresFunc(ctx, key, offset, limit)
}

func (m *MockRedisClient) Close() error {
	return nil
}

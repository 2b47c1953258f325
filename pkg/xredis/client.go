package xredis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the subset of redis the leaderboards need.
type Client interface {
	Exist(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, key string) error
	ZAddWithTTL(ctx context.Context, key string, ttl time.Duration, z ...redis.Z) error
	ZIncrBy(ctx context.Context, key string, incr int64, member string) error
	ZRevRangeWithScores(ctx context.Context, key string, offset, limit int) ([]redis.Z, error)
	Close() error
}

type client struct {
	rdb *redis.Client
}

func NewClient(ctx context.Context, addr string) (*client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            addr,
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     3 * time.Second,
		ReadTimeout:     2 * time.Second,
		WriteTimeout:    2 * time.Second,
		PoolSize:        10,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return &client{rdb: rdb}, nil
}

func (c *client) Exist(ctx context.Context, key string) (bool, error) {
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}

	return n == 1, nil
}

func (c *client) Del(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// ZAddWithTTL adds the members and sets the ttl in one MULTI, so a rebuilt key
// never lives without expiration.
func (c *client) ZAddWithTTL(ctx context.Context, key string, ttl time.Duration, z ...redis.Z) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, key, z...)
		pipe.Expire(ctx, key, ttl)
		return nil
	})

	return err
}

func (c *client) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	return c.rdb.ZIncrBy(ctx, key, float64(incr), member).Err()
}

// ZRevRangeWithScores returns at most limit members starting at offset, highest
// score first.
func (c *client) ZRevRangeWithScores(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
	return c.rdb.ZRevRangeWithScores(ctx, key, int64(offset), int64(offset+limit-1)).Result()
}

func (c *client) Close() error {
	return c.rdb.Close()
}

package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/adfharrison1/go-kvgate/pkg/domain"
)

// RedisStore maps the store operations onto GET, SET, SADD and SMEMBERS.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects lazily; call Ping to verify the server is reachable.
func NewRedisStore(opts *redis.Options) *RedisStore {
	return &RedisStore{client: redis.NewClient(opts)}
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisStore) AddToSet(ctx context.Context, setKey, member string) error {
	return r.client.SAdd(ctx, setKey, member).Err()
}

func (r *RedisStore) Members(ctx context.Context, setKey string) ([]string, error) {
	members, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []string{}
	}
	return members, nil
}

// SetWithIndex sends SET and SADD inside MULTI/EXEC.
func (r *RedisStore) SetWithIndex(ctx context.Context, key string, value []byte, setKey, member string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, value, 0)
		pipe.SAdd(ctx, setKey, member)
		return nil
	})
	return err
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

// Stats reports connection pool figures.
func (r *RedisStore) Stats() map[string]interface{} {
	ps := r.client.PoolStats()
	return map[string]interface{}{
		"hits":        ps.Hits,
		"misses":      ps.Misses,
		"timeouts":    ps.Timeouts,
		"total_conns": ps.TotalConns,
		"idle_conns":  ps.IdleConns,
		"stale_conns": ps.StaleConns,
	}
}

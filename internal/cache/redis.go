package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by a Redis server. Keys are sanitized
// sentence strings, values are raw synthesized audio bytes, stored with no
// expiry. Redis gives us per-key atomic read/replace, which is all the
// consistency the orchestrator needs.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store connected to the given host:port address.
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Get returns the cached audio bytes for key, or (nil, false, nil) on a miss.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &StoreError{Op: "get", Err: err}
	}
	return val, true, nil
}

// Set stores the audio bytes for key with no TTL.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return &StoreError{Op: "set", Err: err}
	}
	return nil
}

// Ping probes the Redis server, for readiness checks.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

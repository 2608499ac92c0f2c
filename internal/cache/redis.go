package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps cache entries in Redis. Keys never expire — entries are
// permanent until externally cleared, matching the file-backed contract.
type RedisStore struct {
	rdb *redis.Client
}

// OpenRedis connects and pings the Redis instance at redisURL.
func OpenRedis(redisURL string) (*RedisStore, error) {
	if redisURL == "" {
		return nil, errors.New("no redis URL configured")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	data, err := s.rdb.Get(ctx, entryKey(namespace, key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisStore) Put(ctx context.Context, namespace, key string, value []byte) error {
	// TTL 0 = no expiry.
	return s.rdb.Set(ctx, entryKey(namespace, key), value, 0).Err()
}

// Client returns the underlying Redis client (for health checks).
func (s *RedisStore) Client() *redis.Client {
	return s.rdb
}

// Close shuts down the Redis connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func entryKey(namespace, key string) string {
	return fmt.Sprintf("%s:%s", namespace, key)
}

package correlation

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultHashKey = "purchase_req:correlation"

// RedisStore persists the line-ID to UUID mapping in a Redis hash so every
// API instance resolves the same entries. No TTL is applied; the hash is
// dropped by Clear when a session ends.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore wraps a Redis client. An empty key selects the default hash.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = defaultHashKey
	}
	return &RedisStore{client: client, key: key}
}

// Put records the UUID for a line identifier.
func (s *RedisStore) Put(ctx context.Context, lineID, correlationID string) error {
	if err := s.client.HSet(ctx, s.key, lineID, correlationID).Err(); err != nil {
		return fmt.Errorf("store correlation entry: %w", err)
	}
	return nil
}

// Get returns the recorded UUID, or the empty string when none exists.
func (s *RedisStore) Get(ctx context.Context, lineID string) (string, error) {
	value, err := s.client.HGet(ctx, s.key, lineID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("load correlation entry: %w", err)
	}
	return value, nil
}

// Clear removes the whole mapping.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear correlation entries: %w", err)
	}
	return nil
}

package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/you/learnsphere/domain"
)

// RedisStore implements domain.Store on a Redis instance. Records are JSON
// strings under a common prefix; no TTLs are set because expiry of the
// contained entries is evaluated lazily by the services.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "learnsphere:",
	}
}

// Load implements domain.Store.
func (s *RedisStore) Load(ctx context.Context, key string, v interface{}) error {
	data, err := s.client.Get(ctx, s.prefix+key).Result()
	if err == redis.Nil {
		return domain.ErrRecordNotFound
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	return json.Unmarshal([]byte(data), v)
}

// Save implements domain.Store.
func (s *RedisStore) Save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.client.Set(ctx, s.prefix+key, data, 0).Err()
}

// Delete implements domain.Store.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

var _ domain.Store = (*RedisStore)(nil)

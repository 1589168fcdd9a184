package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists blobs in Redis with no expiry; the profile/log
// partition keys map directly to Redis keys.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(key string) (string, error) {
	val, err := s.client.Get(context.Background(), key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Set(key, value string) error {
	return s.client.Set(context.Background(), key, value, 0).Err()
}

func (s *RedisStore) Delete(key string) error {
	return s.client.Del(context.Background(), key).Err()
}

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis with a sliding idle timeout. The key
// TTL is the idle expiry; Redis evicts stale sessions on its own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sid string) (string, error) {
	// GETEX refreshes the idle timeout atomically with the read.
	token, err := s.client.GetEx(ctx, keyPrefix+sid, s.ttl).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("session get: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Set(ctx context.Context, sid, token string) error {
	if err := s.client.Set(ctx, keyPrefix+sid, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, keyPrefix+sid).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

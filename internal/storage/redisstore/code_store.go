// Package redisstore backs the verification CodeStore with Redis, for
// deployments that prefer TTL-managed code storage over the Postgres default.
package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type CodeStore struct {
	client *redis.Client
}

func NewCodeStore(client *redis.Client) *CodeStore {
	return &CodeStore{client: client}
}

func (s *CodeStore) Save(ctx context.Context, key, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, code, ttl).Err(); err != nil {
		return fmt.Errorf("save code: %w", err)
	}
	return nil
}

func (s *CodeStore) Get(ctx context.Context, key string) (string, bool, error) {
	code, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get code: %w", err)
	}
	return code, true, nil
}

func (s *CodeStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete code: %w", err)
	}
	return nil
}

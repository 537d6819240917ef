package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores JSON-encoded entries so several API instances share one cache.
type Redis[T any] struct {
	client *redis.Client
}

func NewRedis[T any](client *redis.Client) *Redis[T] {
	return &Redis[T]{client: client}
}

func (r *Redis[T]) Get(ctx context.Context, key string) (Entry[T], error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry[T]{}, ErrMiss
	}
	if err != nil {
		return Entry[T]{}, fmt.Errorf("redis get %s: %w", key, err)
	}

	var entry Entry[T]
	if err := json.Unmarshal(raw, &entry); err != nil {
		return Entry[T]{}, fmt.Errorf("redis decode %s: %w", key, err)
	}
	return entry, nil
}

func (r *Redis[T]) Set(ctx context.Context, key string, entry Entry[T], retention time.Duration) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("redis encode %s: %w", key, err)
	}

	if retention < 0 {
		retention = 0
	}
	return r.client.Set(ctx, key, raw, retention).Err()
}

func (r *Redis[T]) Kind() string {
	return "redis"
}

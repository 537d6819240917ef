package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type Memory[T any] struct {
	cache *gocache.Cache
}

func NewMemory[T any](cleanupInterval time.Duration) *Memory[T] {
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &Memory[T]{cache: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

func (m *Memory[T]) Get(ctx context.Context, key string) (Entry[T], error) {
	value, found := m.cache.Get(key)
	if !found {
		return Entry[T]{}, ErrMiss
	}

	entry, ok := value.(Entry[T])
	if !ok {
		return Entry[T]{}, ErrMiss
	}
	return entry, nil
}

func (m *Memory[T]) Set(ctx context.Context, key string, entry Entry[T], retention time.Duration) error {
	if retention <= 0 {
		retention = gocache.NoExpiration
	}
	m.cache.Set(key, entry, retention)
	return nil
}

func (m *Memory[T]) Kind() string {
	return "memory"
}

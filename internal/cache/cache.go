// Package cache keeps the last computed value together with the time it was
// fetched. Freshness is decided by the caller's TTL.
package cache

import (
	"context"
	"errors"
	"time"
)

var ErrMiss = errors.New("cache miss")

type Entry[T any] struct {
	Value     T         `json:"value"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Fresh reports whether the entry is younger than ttl. A non-positive ttl
// is never fresh.
func (e Entry[T]) Fresh(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 || e.FetchedAt.IsZero() {
		return false
	}
	return now.Sub(e.FetchedAt) < ttl
}

type Store[T any] interface {
	Get(ctx context.Context, key string) (Entry[T], error)
	// Set stores entry and drops it after retention.
	Set(ctx context.Context, key string, entry Entry[T], retention time.Duration) error
	Kind() string
}

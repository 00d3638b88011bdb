// Package cache holds the read-through cache used for hot list endpoints.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value cache. Misses and backend failures both
// report ok=false; callers fall back to the database.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Close() error
}

// Noop is used when caching is disabled.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (Noop) Set(context.Context, string, []byte, time.Duration) {}
func (Noop) Delete(context.Context, string)                     {}
func (Noop) Close() error                                       { return nil }

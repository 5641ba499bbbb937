package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotConfigured is returned by stores used before Open succeeded.
var ErrNotConfigured = errors.New("storage is not configured")

// CacheEntry stores one response cache payload and its freshness metadata.
//
// Cache data is always derived and can be discarded and rebuilt from backend
// reads.
type CacheEntry struct {
	CacheKey     string
	Scope        string
	PayloadBytes []byte
	CheckedAt    time.Time
	ExpiresAt    time.Time
}

// Expired reports whether the entry is past its expiry at now.
func (e CacheEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// Store is the contract shared by every response cache backend.
type Store interface {
	Close() error
	GetCacheEntry(ctx context.Context, cacheKey string) (CacheEntry, bool, error)
	PutCacheEntry(ctx context.Context, entry CacheEntry) error
	DeleteCacheEntry(ctx context.Context, cacheKey string) error
}

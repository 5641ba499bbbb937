// Package redis implements the response cache on a shared Redis server.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	webstorage "github.com/eighthwonder/eighthwonder/internal/services/web/storage"
)

const (
	keyPrefix = "eighthwonder:cache:"

	fieldScope     = "scope"
	fieldPayload   = "payload"
	fieldCheckedAt = "checked_at"
	fieldExpiresAt = "expires_at"
)

// Store keeps each cache entry in one Redis hash. Expiry is delegated to the
// server so stale keys disappear without a sweeper.
type Store struct {
	client *goredis.Client
	owned  bool
	now    func() time.Time
}

// Open dials addr and verifies the connection.
func Open(ctx context.Context, addr string) (*Store, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	log.WithFields(log.Fields{"addr": addr}).Info("response cache connected to redis")
	return &Store{client: client, owned: true, now: time.Now}, nil
}

// New wraps an existing client. Close leaves the client open.
func New(client *goredis.Client) *Store {
	return &Store{client: client, now: time.Now}
}

// Close releases the client when the store dialed it.
func (s *Store) Close() error {
	if s == nil || s.client == nil || !s.owned {
		return nil
	}
	return s.client.Close()
}

// GetCacheEntry loads a cache payload and metadata by key.
func (s *Store) GetCacheEntry(ctx context.Context, cacheKey string) (webstorage.CacheEntry, bool, error) {
	if s == nil || s.client == nil {
		return webstorage.CacheEntry{}, false, webstorage.ErrNotConfigured
	}
	cacheKey = strings.TrimSpace(cacheKey)
	if cacheKey == "" {
		return webstorage.CacheEntry{}, false, fmt.Errorf("cache key is required")
	}

	data, err := s.client.HGetAll(ctx, keyPrefix+cacheKey).Result()
	if err != nil {
		return webstorage.CacheEntry{}, false, fmt.Errorf("get cache entry: %w", err)
	}
	if len(data) == 0 {
		return webstorage.CacheEntry{}, false, nil
	}

	entry := webstorage.CacheEntry{
		CacheKey:     cacheKey,
		Scope:        data[fieldScope],
		PayloadBytes: []byte(data[fieldPayload]),
		CheckedAt:    parseMillis(data[fieldCheckedAt]),
		ExpiresAt:    parseMillis(data[fieldExpiresAt]),
	}
	return entry, true, nil
}

// PutCacheEntry replaces a cache payload and sets the key expiry.
func (s *Store) PutCacheEntry(ctx context.Context, entry webstorage.CacheEntry) error {
	if s == nil || s.client == nil {
		return webstorage.ErrNotConfigured
	}
	entry.CacheKey = strings.TrimSpace(entry.CacheKey)
	if entry.CacheKey == "" {
		return fmt.Errorf("cache key is required")
	}
	entry.Scope = strings.TrimSpace(entry.Scope)
	if entry.Scope == "" {
		return fmt.Errorf("cache scope is required")
	}
	if len(entry.PayloadBytes) == 0 {
		return fmt.Errorf("cache payload is required")
	}
	if entry.CheckedAt.IsZero() {
		entry.CheckedAt = s.now().UTC()
	}

	key := keyPrefix + entry.CacheKey
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			fieldScope, entry.Scope,
			fieldPayload, entry.PayloadBytes,
			fieldCheckedAt, formatMillis(entry.CheckedAt),
			fieldExpiresAt, formatMillis(entry.ExpiresAt),
		)
		if !entry.ExpiresAt.IsZero() {
			pipe.PExpireAt(ctx, key, entry.ExpiresAt)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("put cache entry: %w", err)
	}
	return nil
}

// DeleteCacheEntry removes a cache entry by key.
func (s *Store) DeleteCacheEntry(ctx context.Context, cacheKey string) error {
	if s == nil || s.client == nil {
		return webstorage.ErrNotConfigured
	}
	cacheKey = strings.TrimSpace(cacheKey)
	if cacheKey == "" {
		return fmt.Errorf("cache key is required")
	}
	if err := s.client.Del(ctx, keyPrefix+cacheKey).Err(); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

func formatMillis(value time.Time) string {
	if value.IsZero() {
		return "0"
	}
	return strconv.FormatInt(value.UTC().UnixMilli(), 10)
}

func parseMillis(raw string) time.Time {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

var _ webstorage.Store = (*Store)(nil)

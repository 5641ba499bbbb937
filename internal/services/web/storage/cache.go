package storage

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// WriteRequest describes one value to cache.
type WriteRequest struct {
	CacheKey string
	Scope    string
	TTL      time.Duration
	Value    any
}

// Cache reads and writes JSON payloads through a Store. A Cache without a
// store misses every read and drops every write.
type Cache struct {
	store Store
	now   func() time.Time
}

// NewCache wraps store. A nil store is allowed.
func NewCache(store Store) *Cache {
	return &Cache{store: store, now: time.Now}
}

func normalizeCacheContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// Load decodes the fresh payload under cacheKey into dst. Expired or
// undecodable entries are deleted and reported as misses.
func (c *Cache) Load(ctx context.Context, cacheKey string, dst any) bool {
	if c == nil || c.store == nil || strings.TrimSpace(cacheKey) == "" {
		return false
	}
	ctx = normalizeCacheContext(ctx)

	entry, ok, err := c.store.GetCacheEntry(ctx, cacheKey)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"cache_key": cacheKey}).Warn("response cache read failed")
		return false
	}
	if !ok || len(entry.PayloadBytes) == 0 {
		return false
	}
	if entry.Expired(c.now()) {
		c.Delete(ctx, cacheKey)
		return false
	}
	if err := json.Unmarshal(entry.PayloadBytes, dst); err != nil {
		log.WithError(err).WithFields(log.Fields{"cache_key": cacheKey}).Warn("response cache payload discarded")
		c.Delete(ctx, cacheKey)
		return false
	}
	return true
}

// Save stores request.Value as JSON for request.TTL.
func (c *Cache) Save(ctx context.Context, request WriteRequest) {
	if c == nil || c.store == nil || request.Value == nil {
		return
	}
	payload, err := json.Marshal(request.Value)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"cache_key": request.CacheKey}).Warn("response cache encode failed")
		return
	}
	now := c.now().UTC()
	entry := CacheEntry{
		CacheKey:     request.CacheKey,
		Scope:        request.Scope,
		PayloadBytes: payload,
		CheckedAt:    now,
	}
	if request.TTL > 0 {
		entry.ExpiresAt = now.Add(request.TTL)
	}
	if err := c.store.PutCacheEntry(normalizeCacheContext(ctx), entry); err != nil {
		log.WithError(err).WithFields(log.Fields{"cache_key": request.CacheKey}).Warn("response cache write failed")
	}
}

// Delete drops the entry under cacheKey.
func (c *Cache) Delete(ctx context.Context, cacheKey string) {
	if c == nil || c.store == nil {
		return
	}
	if err := c.store.DeleteCacheEntry(normalizeCacheContext(ctx), cacheKey); err != nil {
		log.WithError(err).WithFields(log.Fields{"cache_key": cacheKey}).Debug("response cache delete failed")
	}
}

// Package cache provides an in-memory TTL cache for analysis results.
// Entries key on configuration fingerprints; the short TTL keeps results
// fresh against catalog refreshes by the external collaborator.
package cache

import (
	"sync"
	"time"

	"github.com/rigmate/rigmate/internal/domain/model"
)

// Default cache configuration constants.
const (
	defaultTTL             = 5 * time.Minute
	defaultCleanupInterval = time.Minute
)

// Option applies a configuration option to the ResultCache.
type Option func(*ResultCache)

// WithTTL sets the entry time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(c *ResultCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCleanupInterval sets how often expired entries are swept.
func WithCleanupInterval(interval time.Duration) Option {
	return func(c *ResultCache) {
		if interval > 0 {
			c.cleanupInterval = interval
		}
	}
}

type entry struct {
	result    *model.AnalysisResult
	expiresAt time.Time
}

// ResultCache is a concurrency-safe fingerprint -> result cache with
// TTL-based expiry and a background sweeper.
type ResultCache struct {
	store           sync.Map
	ttl             time.Duration
	cleanupInterval time.Duration
	stopCh          chan struct{}
	stopOnce        sync.Once
}

// New creates a ResultCache and starts its cleanup goroutine.
func New(opts ...Option) *ResultCache {
	c := &ResultCache{
		ttl:             defaultTTL,
		cleanupInterval: defaultCleanupInterval,
		stopCh:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.sweep()
	return c
}

// Get returns the cached result for a fingerprint, or false when absent or
// expired.
func (c *ResultCache) Get(fingerprint string) (*model.AnalysisResult, bool) {
	v, ok := c.store.Load(fingerprint)
	if !ok {
		return nil, false
	}
	e := v.(entry)
	if time.Now().After(e.expiresAt) {
		c.store.Delete(fingerprint)
		return nil, false
	}
	return e.result, true
}

// Set stores a result under its fingerprint with the configured TTL.
func (c *ResultCache) Set(fingerprint string, result *model.AnalysisResult) {
	c.store.Store(fingerprint, entry{
		result:    result,
		expiresAt: time.Now().Add(c.ttl),
	})
}

// Invalidate drops one fingerprint.
func (c *ResultCache) Invalidate(fingerprint string) {
	c.store.Delete(fingerprint)
}

// Len counts live (unexpired) entries.
func (c *ResultCache) Len() int {
	now := time.Now()
	n := 0
	c.store.Range(func(_, v any) bool {
		if now.Before(v.(entry).expiresAt) {
			n++
		}
		return true
	})
	return n
}

// Close stops the cleanup goroutine.
func (c *ResultCache) Close() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *ResultCache) sweep() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			now := time.Now()
			c.store.Range(func(k, v any) bool {
				if now.After(v.(entry).expiresAt) {
					c.store.Delete(k)
				}
				return true
			})
		}
	}
}

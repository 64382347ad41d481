// Package cache stores rendered estimate reports keyed by their normalized
// input.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/iwvelando/inflation-estimator/pkg/constants"
)

// Cache is the storage used for estimate reports.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is an in-process Cache with an optional TTL. It holds at most
// maxEntries reports, evicting the least recently used one when full, and
// drops expired entries at most once per TTL on Set.
type MemoryCache struct {
	mu        sync.Mutex
	ttl       time.Duration
	entries   *simplelru.LRU[string, memoryEntry]
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryCache returns a MemoryCache bounded to
// constants.DefaultCacheMaxEntries. A ttl of zero keeps entries until they
// are evicted for space.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return NewMemoryCacheWithSize(ttl, constants.DefaultCacheMaxEntries)
}

// NewMemoryCacheWithSize is NewMemoryCache with an explicit entry bound.
// A non-positive maxEntries selects the default.
func NewMemoryCacheWithSize(ttl time.Duration, maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = constants.DefaultCacheMaxEntries
	}
	// NewLRU only fails for a non-positive size.
	entries, _ := simplelru.NewLRU[string, memoryEntry](maxEntries, nil)
	return &MemoryCache{
		ttl:     ttl,
		entries: entries,
		now:     time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries.Get(key)
	if !ok {
		return "", false
	}
	if m.expired(entry, m.now()) {
		m.entries.Remove(key)
		return "", false
	}
	return entry.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)

	entry := memoryEntry{value: value}
	if m.ttl > 0 {
		entry.expiresAt = now.Add(m.ttl)
	}
	m.entries.Add(key, entry)
	return nil
}

// Len returns the number of stored entries. Expired entries count until the
// next sweep or read removes them.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries.Len()
}

func (m *MemoryCache) expired(entry memoryEntry, now time.Time) bool {
	return !entry.expiresAt.IsZero() && now.After(entry.expiresAt)
}

// sweep must be called with mu held.
func (m *MemoryCache) sweep(now time.Time) {
	if m.ttl <= 0 || now.Sub(m.lastSweep) < m.ttl {
		return
	}
	m.lastSweep = now
	for _, key := range m.entries.Keys() {
		if entry, ok := m.entries.Peek(key); ok && m.expired(entry, now) {
			m.entries.Remove(key)
		}
	}
}

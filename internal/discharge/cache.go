package discharge

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// CacheEntry is one stored run.
type CacheEntry struct {
	ID        string
	Result    *Result
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ResultCache keeps recent runs in memory for the local viewer.
// Entries expire after ttl; nothing is written to disk.
type ResultCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewResultCache returns an empty cache. A ttl <= 0 keeps entries until Clear.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		store: make(map[string]*CacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Put stores res under a new random ID and returns the entry.
func (c *ResultCache) Put(res *Result) *CacheEntry {
	now := c.now()
	entry := &CacheEntry{
		ID:        uuid.NewString(),
		Result:    res,
		CreatedAt: now,
	}
	if c.ttl > 0 {
		entry.ExpiresAt = now.Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictExpiredLocked(now)
	c.store[entry.ID] = entry
	return entry
}

// Get retrieves a stored run if present and not expired.
func (c *ResultCache) Get(id string) (*CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[id]
	if !exists {
		return nil, false
	}
	if c.expired(entry, c.now()) {
		return nil, false
	}
	return entry, true
}

// Len counts live entries.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	now := c.now()
	n := 0
	for _, e := range c.store {
		if !c.expired(e, now) {
			n++
		}
	}
	return n
}

// Clear removes all entries from the cache.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*CacheEntry)
}

func (c *ResultCache) expired(e *CacheEntry, now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// evictExpiredLocked drops expired entries; callers hold mu.
func (c *ResultCache) evictExpiredLocked(now time.Time) {
	for id, e := range c.store {
		if c.expired(e, now) {
			delete(c.store, id)
		}
	}
}

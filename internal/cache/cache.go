package cache

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/intelligrit/attraction-scout/internal/model"
)

// DefaultTTL is how long a lookup result stays fresh.
const DefaultTTL = 24 * time.Hour

// Entry is one cached lookup result.
type Entry struct {
	Timestamp   time.Time
	Attractions []model.Attraction
}

// Cache memoizes lookup results per city key. Expired entries are never
// returned; they are only replaced by a later Set.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]Entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithMaxEntries bounds the number of keys; the oldest entry is evicted
// first. Zero means unbounded.
func WithMaxEntries(n int) Option {
	return func(c *Cache) { c.maxEntries = n }
}

// New creates a cache whose entries expire after ttl.
func New(ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key normalizes a city name into a cache key.
func Key(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// Get returns the stored attractions for key if they are younger than
// the TTL.
func (c *Cache) Get(key string) ([]model.Attraction, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.Timestamp) >= c.ttl {
		return nil, false
	}
	return slices.Clone(e.Attractions), true
}

// Set stores attractions under key, stamped with the current time.
func (c *Cache) Set(key string, attractions []model.Attraction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}
	c.entries[key] = Entry{Timestamp: c.now(), Attractions: slices.Clone(attractions)}
}

// Len returns the number of stored keys, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	first := true
	for k, e := range c.entries {
		if first || e.Timestamp.Before(oldest) {
			oldestKey, oldest, first = k, e.Timestamp, false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}

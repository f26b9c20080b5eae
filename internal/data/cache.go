package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync"
	"time"

	"il-surface/internal/model"
)

// CacheEntry represents a cached quote
type CacheEntry struct {
	Quote     *model.Quote
	ExpiresAt time.Time
}

// QuoteCache is an in-memory TTL cache for on-chain quotes.
//
// It is off by default: a spot price that is minutes old is a different analysis.
// Enable with ENABLE_QUOTE_CACHE=true when re-rendering the same pool repeatedly.
type QuoteCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
	now   func() time.Time
}

var globalCache *QuoteCache
var cacheOnce sync.Once

// NewQuoteCache creates a cache without the background cleanup loop.
func NewQuoteCache(ttl time.Duration) *QuoteCache {
	return &QuoteCache{
		store: make(map[string]*CacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// GetCache returns the global cache instance if caching is enabled.
// Returns nil if caching is disabled.
func GetCache() *QuoteCache {
	if os.Getenv("ENABLE_QUOTE_CACHE") != "true" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 15 * time.Second // roughly one block
		if ttlStr := os.Getenv("QUOTE_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}
		globalCache = NewQuoteCache(ttl)
		go globalCache.cleanup()
	})

	return globalCache
}

// Get retrieves a cached quote if available and not expired
func (c *QuoteCache) Get(key string) (*model.Quote, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if c.now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Quote, true
}

// Set stores a quote in the cache
func (c *QuoteCache) Set(key string, q *model.Quote) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Quote:     q,
		ExpiresAt: c.now().Add(c.ttl),
	}
}

// Clear removes all entries from the cache
func (c *QuoteCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

// Len reports the number of stored entries, expired ones included.
func (c *QuoteCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

func (c *QuoteCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, entry := range c.store {
		if now.After(entry.ExpiresAt) {
			delete(c.store, key)
		}
	}
}

// cleanup periodically removes expired entries
func (c *QuoteCache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.evictExpired()
	}
}

// GenerateCacheKey creates a cache key from the quote request
func GenerateCacheKey(version int, feeTier uint32, tokenIn, tokenOut string, amountIn *big.Int) string {
	amount := "0"
	if amountIn != nil {
		amount = amountIn.String()
	}
	keyStr := fmt.Sprintf("v%d:%d:%s:%s:%s",
		version,
		feeTier,
		strings.ToLower(tokenIn),
		strings.ToLower(tokenOut),
		amount,
	)

	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}

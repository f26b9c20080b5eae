package data

import (
	"math/big"
	"testing"
	"time"

	"il-surface/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestQuoteCacheExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewQuoteCache(10 * time.Second)
	c.now = func() time.Time { return now }

	c.Set("k", &model.Quote{Price: 2000})
	q, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 2000.0, q.Price)

	now = now.Add(11 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)

	c.evictExpired()
	assert.Equal(t, 0, c.Len())
}

func TestQuoteCacheNilIsDisabled(t *testing.T) {
	var c *QuoteCache
	c.Set("k", &model.Quote{Price: 1})
	_, ok := c.Get("k")
	assert.False(t, ok)
	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestGetCacheDisabledByDefault(t *testing.T) {
	t.Setenv("ENABLE_QUOTE_CACHE", "")
	assert.Nil(t, GetCache())
}

func TestGenerateCacheKey(t *testing.T) {
	a := GenerateCacheKey(3, 3000, "0xAbC", "0xdef", big.NewInt(10))
	b := GenerateCacheKey(3, 3000, "0xabc", "0xDEF", big.NewInt(10))
	assert.Equal(t, a, b, "addresses are case-insensitive")
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, GenerateCacheKey(3, 500, "0xabc", "0xdef", big.NewInt(10)))
	assert.NotEqual(t, a, GenerateCacheKey(2, 3000, "0xabc", "0xdef", big.NewInt(10)))
}

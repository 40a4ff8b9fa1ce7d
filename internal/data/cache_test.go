package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spot-lcoe/internal/model"
)

func TestResponseCache_SetGet(t *testing.T) {
	c := &ResponseCache{store: map[string]*CacheEntry{}, ttl: time.Minute}
	obs := []model.PriceObservation{{Price: 12.5}}

	_, found := c.Get("k")
	assert.False(t, found)

	c.Set("k", obs)
	got, found := c.Get("k")
	require.True(t, found)
	assert.Equal(t, obs, got)

	c.Clear()
	_, found = c.Get("k")
	assert.False(t, found)
}

func TestResponseCache_Expiry(t *testing.T) {
	c := &ResponseCache{store: map[string]*CacheEntry{}, ttl: -time.Second}
	c.Set("k", []model.PriceObservation{{Price: 1}})
	_, found := c.Get("k")
	assert.False(t, found)
}

func TestResponseCache_NilSafe(t *testing.T) {
	var c *ResponseCache
	c.Set("k", nil)
	_, found := c.Get("k")
	assert.False(t, found)
	c.Clear()
}

func TestGenerateCacheKey(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)

	a := GenerateCacheKey(DomainFrance, start, end)
	b := GenerateCacheKey(DomainFrance, start, end)
	assert.Equal(t, a, b)

	c := GenerateCacheKey(DomainFrance, start, end.AddDate(0, 0, 1))
	assert.NotEqual(t, a, c)
}

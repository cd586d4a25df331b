package cache

import (
	"testing"

	"github.com/hupe1980/henkan/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_Eviction(t *testing.T) {
	c := NewLRU(10, nil)

	c.Set("a", []byte("aaaa"))
	c.Set("b", []byte("bbbb"))
	_, ok := c.Get("a")
	require.True(t, ok)

	// "b" is least recently used.
	c.Set("c", []byte("cccc"))
	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, int64(8), c.Size())
	assert.Equal(t, 2, c.Len())

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestLRU_ReplaceAndRemove(t *testing.T) {
	c := NewLRU(100, nil)
	c.Set("a", []byte("one"))
	c.Set("a", []byte("three"))

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "three", string(got))
	assert.Equal(t, int64(5), c.Size())

	c.Remove("a")
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), c.Size())
}

func TestLRU_TooLarge(t *testing.T) {
	c := NewLRU(2, nil)
	c.Set("a", []byte("abc"))
	assert.Equal(t, 0, c.Len())
}

func TestLRU_ResourceController(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 6})
	c := NewLRU(100, rc)

	c.Set("a", []byte("aaaa"))
	assert.Equal(t, int64(4), rc.MemoryUsage())

	// Denied by the controller, not cached.
	c.Set("b", []byte("bbbb"))
	_, ok := c.Get("b")
	assert.False(t, ok)

	c.Remove("a")
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

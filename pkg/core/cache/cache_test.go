package cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	c := New[string, int](Config{})
	assert.Equal(t, 256, c.maxItems)
	assert.Zero(t, c.ttl)
}

func TestCache_SetGet(t *testing.T) {
	c := New[string, int](DefaultConfig())

	c.Set("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.Set("a", 2)
	v, _ = c.Get("a")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](Config{MaxItems: 2})

	c.Set("a", 1)
	c.Set("b", 2)
	_, _ = c.Get("a") // b is now least recently used
	c.Set("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestCache_Expiry(t *testing.T) {
	now := time.Date(2025, 2, 22, 12, 0, 0, 0, time.UTC)
	c := New[string, string](Config{TTL: time.Minute})
	c.now = func() time.Time { return now }

	c.Set("k", "v")
	c.SetWithTTL("forever", "v", 0)

	now = now.Add(30 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)
	_, ok = c.Get("forever")
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestCache_Clear(t *testing.T) {
	c := New[int, int](DefaultConfig())
	for i := 0; i < 5; i++ {
		c.Set(i, i*i)
	}
	assert.Equal(t, 5, c.Len())

	c.Clear()
	assert.Zero(t, c.Len())
}

func TestCache_GetOrSet(t *testing.T) {
	c := New[string, int](DefaultConfig())
	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := c.GetOrSet("x", compute)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = c.GetOrSet("x", compute)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)

	_, err = c.GetOrSet("fail", func() (int, error) { return 0, errors.New("boom") })
	assert.Error(t, err)
	_, ok := c.Get("fail")
	assert.False(t, ok)
}

func TestCache_Concurrent(t *testing.T) {
	c := New[int, int](Config{MaxItems: 50})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				c.Set(i%100, g)
				c.Get(i % 100)
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}

package discharge

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCachePutGet(t *testing.T) {
	c := NewResultCache(time.Hour)
	res := &Result{CutoffVoltage: 5.5}

	entry := c.Put(res)
	require.NotEmpty(t, entry.ID)
	assert.Equal(t, entry.CreatedAt.Add(time.Hour), entry.ExpiresAt)

	got, ok := c.Get(entry.ID)
	require.True(t, ok)
	assert.Same(t, res, got.Result)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	other := c.Put(&Result{})
	assert.NotEqual(t, entry.ID, other.ID)
	assert.Equal(t, 2, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestResultCacheExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewResultCache(time.Minute)
	c.now = func() time.Time { return now }

	old := c.Put(&Result{})

	now = now.Add(30 * time.Second)
	_, ok := c.Get(old.ID)
	assert.True(t, ok)

	now = now.Add(31 * time.Second)
	_, ok = c.Get(old.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	// Put evicts expired entries.
	c.Put(&Result{})
	c.mu.RLock()
	assert.Len(t, c.store, 1)
	c.mu.RUnlock()
}

func TestResultCacheNoTTL(t *testing.T) {
	now := time.Now()
	c := NewResultCache(0)
	c.now = func() time.Time { return now }

	e := c.Put(&Result{})
	assert.True(t, e.ExpiresAt.IsZero())

	now = now.Add(1000 * time.Hour)
	_, ok := c.Get(e.ID)
	assert.True(t, ok)
}

func TestResultCacheConcurrent(t *testing.T) {
	c := NewResultCache(time.Hour)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e := c.Put(&Result{})
			_, ok := c.Get(e.ID)
			assert.True(t, ok)
		}()
	}
	wg.Wait()
	assert.Equal(t, 16, c.Len())
}

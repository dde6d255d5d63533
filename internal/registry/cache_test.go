package registry

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafters-ui/rafters/internal/types"
)

func testComponent(name string) *types.RegistryComponent {
	return &types.RegistryComponent{
		Name: name,
		Type: types.ItemTypeComponent,
		Files: []types.ComponentFile{
			{Path: name + ".tsx", Content: "export default () => null", Type: types.ItemTypeComponent},
		},
	}
}

func TestCacheGetSet(t *testing.T) {
	cache := newComponentCache(10, time.Minute)

	_, ok := cache.Get("button")
	assert.False(t, ok)

	cache.Set("button", testComponent("button"))

	got, ok := cache.Get("button")
	require.True(t, ok)
	assert.Equal(t, "button", got.Name)

	stats := cache.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestCacheTTLExpiry(t *testing.T) {
	cache := newComponentCache(10, 10*time.Millisecond)
	cache.Set("button", testComponent("button"))

	_, ok := cache.Get("button")
	require.True(t, ok)

	time.Sleep(25 * time.Millisecond)

	_, ok = cache.Get("button")
	assert.False(t, ok, "entry past its TTL must not be served")
	assert.Equal(t, 0, cache.Stats().Entries, "expired entry should be swept")
}

func TestCacheEvictsOldestAtCapacity(t *testing.T) {
	cache := newComponentCache(3, time.Minute)
	for _, name := range []string{"alpha", "beta", "gamma"} {
		cache.Set(name, testComponent(name))
	}

	cache.Set("delta", testComponent("delta"))

	_, ok := cache.Get("alpha")
	assert.False(t, ok, "oldest entry should be evicted")
	for _, name := range []string{"beta", "gamma", "delta"} {
		_, ok := cache.Get(name)
		assert.True(t, ok, "%s should survive eviction", name)
	}
	assert.Equal(t, 3, cache.Stats().Entries)
}

func TestCacheSetExistingRefreshesOrder(t *testing.T) {
	cache := newComponentCache(2, time.Minute)
	cache.Set("alpha", testComponent("alpha"))
	cache.Set("beta", testComponent("beta"))

	// Re-inserting alpha moves it to the back of the eviction order.
	cache.Set("alpha", testComponent("alpha"))
	cache.Set("gamma", testComponent("gamma"))

	_, ok := cache.Get("beta")
	assert.False(t, ok)
	_, ok = cache.Get("alpha")
	assert.True(t, ok)
	_, ok = cache.Get("gamma")
	assert.True(t, ok)
}

func TestCacheClear(t *testing.T) {
	cache := newComponentCache(10, time.Minute)
	for i := 0; i < 4; i++ {
		name := fmt.Sprintf("component-%d", i)
		cache.Set(name, testComponent(name))
	}

	cache.Clear("component-1", "component-3")
	assert.Equal(t, 2, cache.Stats().Entries)
	_, ok := cache.Get("component-0")
	assert.True(t, ok)
	_, ok = cache.Get("component-1")
	assert.False(t, ok)

	cache.Clear()
	assert.Equal(t, 0, cache.Stats().Entries)
}

func TestCacheConcurrentAccess(t *testing.T) {
	cache := newComponentCache(50, time.Minute)
	done := make(chan struct{})

	for g := 0; g < 8; g++ {
		go func(g int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 100; i++ {
				name := fmt.Sprintf("component-%d", (g*100+i)%60)
				cache.Set(name, testComponent(name))
				cache.Get(name)
			}
		}(g)
	}
	for g := 0; g < 8; g++ {
		<-done
	}

	stats := cache.Stats()
	assert.LessOrEqual(t, stats.Entries, 50)
}

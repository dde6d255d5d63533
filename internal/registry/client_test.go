package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafters-ui/rafters/internal/errors"
	"github.com/rafters-ui/rafters/internal/types"
)

// newTestRegistry serves components from the given map and counts requests.
func newTestRegistry(t *testing.T, components map[string]*types.RegistryComponent, requests *int64) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			atomic.AddInt64(requests, 1)
		}
		const prefix = "/registry/components/"
		name := r.URL.Path[len(prefix):]
		component, ok := components[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(component)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchComponent(t *testing.T) {
	var requests int64
	server := newTestRegistry(t, map[string]*types.RegistryComponent{
		"button": testComponent("button"),
	}, &requests)
	client := NewClient(server.URL)

	result, err := client.FetchComponent(context.Background(), "button")
	require.NoError(t, err)
	assert.Equal(t, "button", result.Component.Name)
	assert.False(t, result.FromCache)
	assert.Equal(t, server.URL+"/registry/components/button", result.RegistryURL)
	assert.Equal(t, int64(1), atomic.LoadInt64(&requests))
}

func TestFetchComponentCacheHit(t *testing.T) {
	var requests int64
	server := newTestRegistry(t, map[string]*types.RegistryComponent{
		"button": testComponent("button"),
	}, &requests)
	client := NewClient(server.URL)

	first, err := client.FetchComponent(context.Background(), "button")
	require.NoError(t, err)
	require.False(t, first.FromCache)

	second, err := client.FetchComponent(context.Background(), "button")
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Component, second.Component)
	assert.Equal(t, int64(1), atomic.LoadInt64(&requests), "cache hit must not reach the network")
}

func TestFetchComponentInvalidNameSkipsNetwork(t *testing.T) {
	var requests int64
	server := newTestRegistry(t, nil, &requests)
	client := NewClient(server.URL)

	_, err := client.FetchComponent(context.Background(), "../escape")
	require.Error(t, err)
	var ve *errors.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, int64(0), atomic.LoadInt64(&requests), "invalid names must be rejected before any request")
}

func TestFetchComponentNotFound(t *testing.T) {
	server := newTestRegistry(t, nil, nil)
	client := NewClient(server.URL)

	_, err := client.FetchComponent(context.Background(), "missing")
	require.Error(t, err)
	var fe *errors.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)
	assert.False(t, fe.Timeout)
}

func TestFetchComponentTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)
	client := NewClient(server.URL, WithTimeout(20*time.Millisecond))

	_, err := client.FetchComponent(context.Background(), "slow")
	require.Error(t, err)
	var fe *errors.FetchError
	require.ErrorAs(t, err, &fe)
	assert.True(t, fe.Timeout, "deadline overruns must be flagged as timeouts, not generic failures")
	assert.True(t, errors.IsTimeout(err))
}

func TestFetchComponentMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	t.Cleanup(server.Close)
	client := NewClient(server.URL)

	_, err := client.FetchComponent(context.Background(), "button")
	require.Error(t, err)
	var rve *errors.RegistryValidationError
	assert.ErrorAs(t, err, &rve)
}

func TestFetchComponentOversizedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"button","type":"registry:component","files":[{"path":"button.tsx","type":"registry:component","content":"`))
		filler := strings.Repeat("a", 1<<16)
		for written := 0; written <= maxResponseBytes; written += len(filler) {
			_, _ = w.Write([]byte(filler))
		}
		_, _ = w.Write([]byte(`"}]}`))
	}))
	t.Cleanup(server.Close)
	client := NewClient(server.URL)

	_, err := client.FetchComponent(context.Background(), "button")
	require.Error(t, err)
	var rve *errors.RegistryValidationError
	require.ErrorAs(t, err, &rve)
	assert.Contains(t, err.Error(), "exceeds size limit")
	assert.NotContains(t, err.Error(), "not valid JSON")
}

func TestFetchComponentBadShapeNotCached(t *testing.T) {
	broken := &types.RegistryComponent{Name: "button", Type: "registry:component"}
	var requests int64
	server := newTestRegistry(t, map[string]*types.RegistryComponent{"button": broken}, &requests)
	client := NewClient(server.URL)

	_, err := client.FetchComponent(context.Background(), "button")
	require.Error(t, err)
	var rve *errors.RegistryValidationError
	assert.ErrorAs(t, err, &rve)

	// A rejected payload must not poison the cache.
	_, err = client.FetchComponent(context.Background(), "button")
	require.Error(t, err)
	assert.Equal(t, int64(2), atomic.LoadInt64(&requests))
}

func TestFetchMultipleComponentsPartialFailure(t *testing.T) {
	server := newTestRegistry(t, map[string]*types.RegistryComponent{
		"button": testComponent("button"),
		"card":   testComponent("card"),
	}, nil)
	client := NewClient(server.URL)

	results := client.FetchMultipleComponents(context.Background(),
		[]string{"button", "missing", "card", "Bad Name"})

	require.Len(t, results, 2)
	assert.Contains(t, results, "button")
	assert.Contains(t, results, "card")
	assert.NotContains(t, results, "missing")
	assert.NotContains(t, results, "Bad Name")
}

func TestClearCache(t *testing.T) {
	var requests int64
	server := newTestRegistry(t, map[string]*types.RegistryComponent{
		"button": testComponent("button"),
		"card":   testComponent("card"),
	}, &requests)
	client := NewClient(server.URL)

	ctx := context.Background()
	_, err := client.FetchComponent(ctx, "button")
	require.NoError(t, err)
	_, err = client.FetchComponent(ctx, "card")
	require.NoError(t, err)

	client.ClearCache("button")
	result, err := client.FetchComponent(ctx, "card")
	require.NoError(t, err)
	assert.True(t, result.FromCache)
	result, err = client.FetchComponent(ctx, "button")
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, int64(3), atomic.LoadInt64(&requests))

	client.ClearCache()
	assert.Equal(t, 0, client.CacheStats().Entries)
}

func TestCacheStatsDefaults(t *testing.T) {
	client := NewClient("https://registry.rafters.design")
	stats := client.CacheStats()
	assert.Equal(t, DefaultCacheSize, stats.MaxSize)
	assert.Equal(t, DefaultCacheTTL, stats.TTL)
}

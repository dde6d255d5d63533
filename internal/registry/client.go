// Package registry provides the HTTP client for the Rafters component
// registry service. It resolves component names to source files while
// minimizing redundant network calls through a bounded, TTL-based cache.
package registry

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rafters-ui/rafters/internal/errors"
	"github.com/rafters-ui/rafters/internal/logging"
	"github.com/rafters-ui/rafters/internal/types"
)

const (
	// DefaultTimeout bounds each registry request client-side.
	DefaultTimeout = 10 * time.Second
	// DefaultCacheTTL is how long a fetched component stays fresh.
	DefaultCacheTTL = 5 * time.Minute
	// DefaultCacheSize caps the number of cached components.
	DefaultCacheSize = 100

	userAgent = "rafters-registry-client/1.0"

	maxResponseBytes = 4 << 20
)

// FetchResult is the outcome of resolving one component name.
type FetchResult struct {
	Component   *types.RegistryComponent
	FromCache   bool
	FetchTime   time.Duration
	RegistryURL string
}

// Client fetches components from the registry service. It owns the fetch
// cache; no other component touches it directly.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	cache      *componentCache
	logger     logging.Logger

	cacheTTL  time.Duration
	cacheSize int
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.timeout = timeout }
}

// WithCacheTTL overrides how long cached components stay fresh.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cacheTTL = ttl }
}

// WithCacheSize overrides the cache entry cap.
func WithCacheSize(size int) Option {
	return func(c *Client) { c.cacheSize = size }
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithLogger attaches a logger for batch-fetch diagnostics.
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a registry client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		timeout:   DefaultTimeout,
		cacheTTL:  DefaultCacheTTL,
		cacheSize: DefaultCacheSize,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{}
	}
	client.cache = newComponentCache(client.cacheSize, client.cacheTTL)
	return client
}

// FetchComponent resolves a component name to its registry entry. The name
// is validated before any cache or network access; cache hits return without
// a network call.
func (c *Client) FetchComponent(ctx context.Context, name string) (*FetchResult, error) {
	start := time.Now()

	if err := ValidateComponentName(name); err != nil {
		return nil, err
	}

	requestURL := c.componentURL(name)

	if component, ok := c.cache.Get(name); ok {
		return &FetchResult{
			Component:   component,
			FromCache:   true,
			FetchTime:   time.Since(start),
			RegistryURL: requestURL,
		}, nil
	}

	component, err := c.fetchRemote(ctx, name, requestURL)
	if err != nil {
		return nil, err
	}

	c.cache.Set(name, component)

	return &FetchResult{
		Component:   component,
		FromCache:   false,
		FetchTime:   time.Since(start),
		RegistryURL: requestURL,
	}, nil
}

// FetchMultipleComponents fetches all names concurrently. A failure for one
// name is logged and excluded from the result map; it never aborts sibling
// fetches. Partial success is the expected outcome.
func (c *Client) FetchMultipleComponents(ctx context.Context, names []string) map[string]*FetchResult {
	results := make(map[string]*FetchResult, len(names))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			result, err := c.FetchComponent(ctx, name)
			if err != nil {
				c.logger.Warn(ctx, err, "component fetch failed, excluding from batch",
					"component", name)
				return
			}

			mu.Lock()
			results[name] = result
			mu.Unlock()
		}(name)
	}
	wg.Wait()

	return results
}

// ClearCache removes the named entries from the fetch cache, or everything
// when called without arguments.
func (c *Client) ClearCache(names ...string) {
	c.cache.Clear(names...)
}

// CacheStats returns a snapshot of fetch cache counters.
func (c *Client) CacheStats() CacheStats {
	return c.cache.Stats()
}

func (c *Client) componentURL(name string) string {
	return c.baseURL + "/registry/components/" + url.PathEscape(name)
}

func (c *Client) fetchRemote(ctx context.Context, name, requestURL string) (*types.RegistryComponent, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &errors.FetchError{Component: name, URL: requestURL, Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeoutError(reqCtx, err) {
			return nil, &errors.FetchError{Component: name, URL: requestURL, Timeout: true, Cause: err}
		}
		return nil, &errors.FetchError{Component: name, URL: requestURL, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &errors.FetchError{Component: name, URL: requestURL, StatusCode: resp.StatusCode}
	}

	// Read one byte past the limit so truncation is detected rather than
	// surfacing later as a confusing JSON parse error.
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		if isTimeoutError(reqCtx, err) {
			return nil, &errors.FetchError{Component: name, URL: requestURL, Timeout: true, Cause: err}
		}
		return nil, &errors.FetchError{Component: name, URL: requestURL, Cause: err}
	}
	if len(body) > maxResponseBytes {
		return nil, &errors.RegistryValidationError{
			Component: name,
			Message:   fmt.Sprintf("response exceeds size limit of %d bytes", maxResponseBytes),
		}
	}

	var component types.RegistryComponent
	if err := json.Unmarshal(body, &component); err != nil {
		return nil, &errors.RegistryValidationError{
			Component: name,
			Message:   fmt.Sprintf("response is not valid JSON: %v", err),
		}
	}

	if err := validateComponent(name, &component); err != nil {
		return nil, err
	}

	return &component, nil
}

func isTimeoutError(ctx context.Context, err error) bool {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	return false
}

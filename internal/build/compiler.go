// Package build provides TypeScript/JSX compilation with content-hash
// caching, and the pipeline that drives component previews from registry
// fetch through compilation to execution.
package build

import (
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"sort"
	"sync"
	"time"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/rafters-ui/rafters/internal/errors"
)

// JSXImportSource is the module prefix the automatic JSX runtime imports
// from. The execution sandbox resolves "<source>/jsx-runtime" to the host
// rendering bindings.
const JSXImportSource = "rafters"

// CompilationResult is the outcome of compiling one source string.
type CompilationResult struct {
	// Code is directly executable JavaScript; it never contains the
	// original TypeScript syntax
	Code string
	// CacheHit reports whether Code was served from the compile cache
	CacheHit bool
	// CompilationTime is the wall-clock compile duration
	CompilationTime time.Duration
	// SourceHash is the hex sha256 of the exact source string
	SourceHash string
}

// CompileOptions carries per-call compiler options.
type CompileOptions struct {
	// Filename labels diagnostics; optional
	Filename string
	// CacheKey overrides the content-hash cache key; optional
	CacheKey string
}

// Compiler turns TypeScript/JSX source into executable JavaScript,
// deterministically and cheaply on repeat. It owns the compile cache.
type Compiler struct {
	mutex sync.RWMutex
	cache map[string]string
	// limit caps cache entries as a hardening measure; 0 means unbounded.
	// Entries are keyed by content hash, so the working set stays small in
	// practice.
	limit int
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithCompileCacheLimit caps the number of cached compilations.
func WithCompileCacheLimit(limit int) CompilerOption {
	return func(c *Compiler) { c.limit = limit }
}

// NewCompiler creates a compiler with an empty cache.
func NewCompiler(opts ...CompilerOption) *Compiler {
	compiler := &Compiler{cache: make(map[string]string)}
	for _, opt := range opts {
		opt(compiler)
	}
	return compiler
}

// HashSource returns the hex sha256 digest of source. The same source string
// always produces the same hash; compilation has no hidden time- or
// environment-dependent inputs.
func HashSource(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Compile transforms one TypeScript/JSX source string. Identical source is
// compiled once: the result is cached under the content hash (or the
// caller-supplied cache key) and served from cache afterwards.
func (c *Compiler) Compile(source string, opts CompileOptions) (*CompilationResult, error) {
	start := time.Now()

	sourceHash := HashSource(source)
	cacheKey := opts.CacheKey
	if cacheKey == "" {
		cacheKey = sourceHash
	}

	c.mutex.RLock()
	code, ok := c.cache[cacheKey]
	c.mutex.RUnlock()
	if ok {
		return &CompilationResult{
			Code:            code,
			CacheHit:        true,
			CompilationTime: time.Since(start),
			SourceHash:      sourceHash,
		}, nil
	}

	code, err := transform(source, opts.Filename)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	if c.limit <= 0 || len(c.cache) < c.limit {
		c.cache[cacheKey] = code
	}
	c.mutex.Unlock()

	return &CompilationResult{
		Code:            code,
		CacheHit:        false,
		CompilationTime: time.Since(start),
		SourceHash:      sourceHash,
	}, nil
}

// ClearCache removes the given cache keys, or the whole cache when called
// without arguments.
func (c *Compiler) ClearCache(keys ...string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if len(keys) == 0 {
		c.cache = make(map[string]string)
		return
	}
	for _, key := range keys {
		delete(c.cache, key)
	}
}

// CacheSize returns the number of cached compilations.
func (c *Compiler) CacheSize() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.cache)
}

// CacheKeys returns the sorted cache keys, for introspection.
func (c *Compiler) CacheKeys() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	keys := make([]string, 0, len(c.cache))
	for key := range c.cache {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// transform invokes the external TS/JSX transform: JSX with the automatic
// runtime, a fixed modern target, and CommonJS output the execution engine
// can load synchronously.
func transform(source, filename string) (string, error) {
	sourcefile := filename
	if sourcefile == "" {
		sourcefile = "component.tsx"
	}

	result := api.Transform(source, api.TransformOptions{
		Loader:          api.LoaderTSX,
		JSX:             api.JSXAutomatic,
		JSXImportSource: JSXImportSource,
		Format:          api.FormatCommonJS,
		Target:          api.ES2020,
		Sourcefile:      sourcefile,
	})

	if len(result.Errors) > 0 {
		msg := result.Errors[0]
		compileErr := &errors.CompileError{
			Filename: filename,
			Message:  msg.Text,
			Cause:    stderrors.New(msg.Text),
		}
		if msg.Location != nil {
			compileErr.Line = msg.Location.Line
			compileErr.Column = msg.Location.Column
		} else if line, column, ok := errors.ExtractLocation(msg.Text); ok {
			compileErr.Line = line
			compileErr.Column = column
		}
		return "", compileErr
	}

	return string(result.Code), nil
}

package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://registry.rafters.design", cfg.Registry.URL)
	assert.Equal(t, 10*time.Second, cfg.Registry.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Registry.CacheTTL)
	assert.Equal(t, 100, cfg.Registry.CacheSize)
	assert.True(t, cfg.Build.Minify)
	assert.Equal(t, 0, cfg.Build.CompileCacheLimit)
	assert.Equal(t, "docs", cfg.Docs.Dir)
	assert.Equal(t, "dist", cfg.Docs.Output)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadOverrides(t *testing.T) {
	resetViper(t)
	viper.Set("registry.url", "http://localhost:9000")
	viper.Set("registry.timeout", "3s")
	viper.Set("docs.output", "public")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", cfg.Registry.URL)
	assert.Equal(t, 3*time.Second, cfg.Registry.Timeout)
	assert.Equal(t, "public", cfg.Docs.Output)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value interface{}
		want  string
	}{
		{"empty registry url", "registry.url", "", "url must not be empty"},
		{"bad url scheme", "registry.url", "ftp://registry", "must use http or https"},
		{"zero timeout", "registry.timeout", "0s", "timeout must be positive"},
		{"negative cache ttl", "registry.cache_ttl", "-1m", "cache_ttl must be positive"},
		{"zero cache size", "registry.cache_size", 0, "cache_size must be positive"},
		{"empty docs dir", "docs.dir", "", "dir must not be empty"},
		{"docs dir traversal", "docs.dir", "../outside", "path traversal"},
		{"docs output traversal", "docs.output", "dist/../../etc", "path traversal"},
		{"port out of range", "server.port", 70000, "not in valid range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			viper.Set(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateDocsConfigCleanPaths(t *testing.T) {
	// Paths that merely contain dots but clean to something safe are fine.
	err := validateDocsConfig(&DocsConfig{Dir: "./docs", Output: "dist/site"})
	assert.NoError(t, err)
}

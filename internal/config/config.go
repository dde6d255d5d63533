// Package config provides configuration management for the Rafters CLI using
// Viper for flexible configuration loading from files, environment variables,
// and command-line flags.
//
// The configuration system supports YAML files (.rafters.yml), environment
// variable overrides with a RAFTERS_ prefix, and validation. It manages the
// registry client settings (URL, timeout, cache tuning), build options, the
// docs-site layout, and development server settings.
package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Registry RegistryConfig `yaml:"registry" mapstructure:"registry"`
	Build    BuildConfig    `yaml:"build" mapstructure:"build"`
	Docs     DocsConfig     `yaml:"docs" mapstructure:"docs"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// RegistryConfig tunes the registry client. Timeout, cache TTL and cache
// size ship with the historical defaults (10s / 5m / 100) but are not
// load-tested optima; they exist precisely so deployments can tune them.
type RegistryConfig struct {
	URL       string        `yaml:"url" mapstructure:"url"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	CacheTTL  time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	CacheSize int           `yaml:"cache_size" mapstructure:"cache_size"`
}

type BuildConfig struct {
	// Minify controls CSS minification in the static site output
	Minify bool `yaml:"minify" mapstructure:"minify"`
	// CompileCacheLimit caps the compile cache entry count; 0 means unbounded
	CompileCacheLimit int `yaml:"compile_cache_limit" mapstructure:"compile_cache_limit"`
}

type DocsConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Output  string `yaml:"output" mapstructure:"output"`
	Title   string `yaml:"title" mapstructure:"title"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

type ServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// SetDefaults registers every configuration default with viper. Called once
// from the root command before flags are bound.
func SetDefaults() {
	viper.SetDefault("registry.url", "https://registry.rafters.design")
	viper.SetDefault("registry.timeout", 10*time.Second)
	viper.SetDefault("registry.cache_ttl", 5*time.Minute)
	viper.SetDefault("registry.cache_size", 100)

	viper.SetDefault("build.minify", true)
	viper.SetDefault("build.compile_cache_limit", 0)

	viper.SetDefault("docs.dir", "docs")
	viper.SetDefault("docs.output", "dist")
	viper.SetDefault("docs.title", "Rafters Documentation")
	viper.SetDefault("docs.base_url", "/")

	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8090)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

// Load unmarshals the active viper state into a validated Config.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	if err := validateRegistryConfig(&config.Registry); err != nil {
		return fmt.Errorf("registry config: %w", err)
	}
	if err := validateDocsConfig(&config.Docs); err != nil {
		return fmt.Errorf("docs config: %w", err)
	}
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	return nil
}

func validateRegistryConfig(config *RegistryConfig) error {
	if config.URL == "" {
		return fmt.Errorf("url must not be empty")
	}
	parsed, err := url.Parse(config.URL)
	if err != nil {
		return fmt.Errorf("url %q is not a valid URL: %w", config.URL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("url %q must use http or https", config.URL)
	}
	if config.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", config.Timeout)
	}
	if config.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive, got %s", config.CacheTTL)
	}
	if config.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be positive, got %d", config.CacheSize)
	}
	return nil
}

func validateDocsConfig(config *DocsConfig) error {
	for name, path := range map[string]string{"dir": config.Dir, "output": config.Output} {
		if path == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
		cleanPath := filepath.Clean(path)
		if strings.Contains(cleanPath, "..") {
			return fmt.Errorf("%s contains path traversal: %s", name, path)
		}
	}
	return nil
}

func validateServerConfig(config *ServerConfig) error {
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d is not in valid range 0-65535", config.Port)
	}
	return nil
}

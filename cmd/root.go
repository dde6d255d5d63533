// Package cmd provides the command-line interface for Rafters with
// configuration management supporting multiple sources.
//
// Configuration precedence, highest first:
//  1. Command-line flags (--registry-url, --output, ...)
//  2. Environment variables with the RAFTERS_ prefix
//     (RAFTERS_REGISTRY_URL, RAFTERS_DOCS_OUTPUT, ...)
//  3. The .rafters.yml configuration file
//  4. Built-in defaults
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rafters-ui/rafters/internal/config"
	"github.com/rafters-ui/rafters/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rafters",
	Short: "Documentation and preview tooling for the Rafters design system",
	Long: `Rafters builds static component previews and documentation pages for the
Rafters design-token/component library.

Given a component name it fetches the component's source from the registry,
compiles the TypeScript/JSX, executes it server-side, and emits static
markup - with caching, per-phase error attribution, and partial-failure
isolation across batches.

Quick Start:
  rafters preview button          Render one component preview
  rafters build                   Build the static docs site
  rafters serve                   Serve the docs site with live reload`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .rafters.yml)")
	rootCmd.PersistentFlags().String("registry-url", "", "registry service base URL")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text, json)")

	bindFlag("registry.url", rootCmd.PersistentFlags(), "registry-url")
	bindFlag("log.level", rootCmd.PersistentFlags(), "log-level")
	bindFlag("log.format", rootCmd.PersistentFlags(), "log-format")
}

// bindFlag connects a cobra flag to its viper key.
func bindFlag(key string, flags *pflag.FlagSet, name string) {
	_ = viper.BindPFlag(key, flags.Lookup(name))
}

// initConfig reads in the config file and environment variables.
func initConfig() {
	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".rafters")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("RAFTERS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}

// loadConfigAndLogger builds the validated config and a logger from it.
func loadConfigAndLogger() (*config.Config, logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	level := logging.LevelInfo
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	return cfg, logger, nil
}

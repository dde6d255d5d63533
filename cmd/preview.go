package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rafters-ui/rafters/internal/build"
	"github.com/rafters-ui/rafters/internal/registry"
)

var (
	previewPropsFile string
	previewOutput    string
)

var previewCmd = &cobra.Command{
	Use:     "preview <component>",
	Aliases: []string{"p"},
	Short:   "Render a single component preview to static markup",
	Args:    cobra.ExactArgs(1),
	RunE:    runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&previewPropsFile, "props", "", "YAML file with preview props")
	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "", "write markup to file instead of stdout")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	var props map[string]interface{}
	if previewPropsFile != "" {
		raw, err := os.ReadFile(previewPropsFile)
		if err != nil {
			return fmt.Errorf("reading props file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &props); err != nil {
			return fmt.Errorf("parsing props file: %w", err)
		}
	}

	client := registry.NewClient(cfg.Registry.URL,
		registry.WithTimeout(cfg.Registry.Timeout),
		registry.WithCacheTTL(cfg.Registry.CacheTTL),
		registry.WithCacheSize(cfg.Registry.CacheSize),
		registry.WithLogger(logger),
	)
	pipeline := build.NewPipeline(client,
		build.WithPipelineLogger(logger),
		build.WithCompilerOptions(build.WithCompileCacheLimit(cfg.Build.CompileCacheLimit)),
	)

	result, err := pipeline.BuildComponentPreview(cmd.Context(), args[0], props)
	if err != nil {
		return err
	}

	logger.Info(cmd.Context(), "preview built",
		"component", result.ComponentName,
		"build_time", result.BuildTime.String(),
		"cache_hit", result.CacheHit)

	if previewOutput != "" {
		return os.WriteFile(previewOutput, []byte(result.HTMLOutput), 0o640)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.HTMLOutput)
	return nil
}

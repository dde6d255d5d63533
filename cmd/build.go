package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rafters-ui/rafters/internal/build"
	"github.com/rafters-ui/rafters/internal/registry"
	"github.com/rafters-ui/rafters/internal/static"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Build the static documentation site",
	Long: `Build renders every documented component through the preview pipeline and
writes the static documentation site to the output directory, including the
default stylesheet and script assets.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "output directory (default from config)")
	buildCmd.Flags().Bool("minify", true, "minify generated CSS")
	bindFlag("docs.output", buildCmd.Flags(), "output")
	bindFlag("build.minify", buildCmd.Flags(), "minify")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	logger.Info(ctx, "building static site", "docs_dir", cfg.Docs.Dir, "output", cfg.Docs.Output)

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

	result, err := static.NewGenerator(pipeline, cfg, logger).Build(ctx)
	if err != nil {
		return err
	}

	logger.Info(ctx, "site built",
		"pages", result.Pages,
		"components", result.Components,
		"duration_ms", result.Duration.Milliseconds(),
		"output", result.OutputDir)
	return nil
}

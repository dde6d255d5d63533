package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rafters-ui/rafters/internal/build"
	"github.com/rafters-ui/rafters/internal/registry"
	"github.com/rafters-ui/rafters/internal/static"
	"github.com/rafters-ui/rafters/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"w"},
	Short:   "Rebuild the static site when component docs change",
	Long: `Watch builds the static site once, then watches the docs directory and
rebuilds on every change. Unlike serve it does not start an HTTP server;
use it when another server is already fronting the output directory.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

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
	generator := static.NewGenerator(pipeline, cfg, logger)

	if _, err := generator.Build(ctx); err != nil {
		return err
	}
	logger.Info(ctx, "watching for changes", "docs_dir", cfg.Docs.Dir)

	w, err := watcher.New(func(paths []string) {
		logger.Info(ctx, "docs changed, rebuilding", "changed", len(paths))
		client.ClearCache()
		if _, err := generator.Build(ctx); err != nil {
			logger.Error(ctx, err, "rebuild failed")
		}
	}, logger, ".yaml", ".yml")
	if err != nil {
		return err
	}
	if err := w.Add(cfg.Docs.Dir); err != nil {
		return err
	}

	w.Start(ctx)
	return nil
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rafters-ui/rafters/internal/build"
	"github.com/rafters-ui/rafters/internal/config"
	"github.com/rafters-ui/rafters/internal/logging"
	"github.com/rafters-ui/rafters/internal/registry"
	"github.com/rafters-ui/rafters/internal/server"
	"github.com/rafters-ui/rafters/internal/static"
	"github.com/rafters-ui/rafters/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Serve the docs site with live reload",
	Long: `Serve builds the static site, serves it over HTTP, watches the docs
directory for changes, and pushes a live-reload notification to connected
browsers after each rebuild.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
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

	srv := server.New(cfg.Server.Host, cfg.Server.Port, cfg.Docs.Output, logger)

	w, err := watcher.New(rebuildHandler(ctx, cfg, logger, client, generator, srv),
		logger, ".yaml", ".yml")
	if err != nil {
		return err
	}
	if err := w.Add(cfg.Docs.Dir); err != nil {
		return err
	}
	go w.Start(ctx)

	return srv.Serve(ctx)
}

// rebuildHandler rebuilds the site on watcher batches. The registry cache is
// cleared first so edited docs pick up fresh component source.
func rebuildHandler(
	ctx context.Context,
	cfg *config.Config,
	logger logging.Logger,
	client *registry.Client,
	generator *static.Generator,
	srv *server.Server,
) watcher.Handler {
	return func(paths []string) {
		logger.Info(ctx, "docs changed, rebuilding", "changed", len(paths))
		client.ClearCache()
		if _, err := generator.Build(ctx); err != nil {
			logger.Error(ctx, err, "rebuild failed")
			return
		}
		srv.Broadcast("reload")
	}
}

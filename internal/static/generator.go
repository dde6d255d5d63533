// Package static generates the documentation site: it drives the preview
// pipeline over every documented component and writes full HTML pages plus
// the default asset bundle to the output directory.
package static

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/rafters-ui/rafters/internal/build"
	"github.com/rafters-ui/rafters/internal/config"
	"github.com/rafters-ui/rafters/internal/logging"
)

// PageSpec is one component doc, loaded from a YAML file in the docs
// directory. The file name (minus extension) is the component name.
type PageSpec struct {
	Title       string                 `yaml:"title"`
	Description string                 `yaml:"description"`
	Props       map[string]interface{} `yaml:"props"`
}

// Result summarizes one site build.
type Result struct {
	Pages      int
	Components int
	Duration   time.Duration
	OutputDir  string
}

// Generator builds the static documentation site.
type Generator struct {
	pipeline *build.Pipeline
	cfg      *config.Config
	logger   logging.Logger
	titler   cases.Caser
}

// NewGenerator creates a site generator over a preview pipeline.
func NewGenerator(pipeline *build.Pipeline, cfg *config.Config, logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Generator{
		pipeline: pipeline,
		cfg:      cfg,
		logger:   logger,
		titler:   cases.Title(language.English),
	}
}

// Build renders every documented component and writes the site. Components
// whose preview build fails are skipped with a log line; the site build
// itself only fails on I/O or configuration problems.
func (g *Generator) Build(ctx context.Context) (*Result, error) {
	start := time.Now()

	specs, err := g.loadPageSpecs()
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no component docs found in %s", g.cfg.Docs.Dir)
	}

	names := make([]string, 0, len(specs))
	requests := make([]build.BuildRequest, 0, len(specs))
	for name, spec := range specs {
		names = append(names, name)
		requests = append(requests, build.BuildRequest{Name: name, Props: spec.Props})
	}
	sort.Strings(names)

	results := g.pipeline.BuildMultipleComponents(ctx, requests)

	nav := make([]NavItem, 0, len(names))
	for _, name := range names {
		if _, ok := results[name]; !ok {
			continue
		}
		nav = append(nav, NavItem{
			Name:  name,
			Title: g.pageTitle(name, specs[name]),
			Href:  path.Join(g.cfg.Docs.BaseURL, name) + "/",
		})
	}

	pages := 0
	for _, name := range names {
		result, ok := results[name]
		if !ok {
			g.logger.Warn(ctx, nil, "skipping page for failed component build", "component", name)
			continue
		}

		data := pageData{
			SiteTitle:   g.cfg.Docs.Title,
			Title:       g.pageTitle(name, specs[name]),
			Description: specs[name].Description,
			BaseURL:     g.cfg.Docs.BaseURL,
			Nav:         nav,
			TOC:         ExtractHeadings(result.HTMLOutput),
			PreviewHTML: result.HTMLOutput,
		}
		if err := g.writePage(ctx, name, data); err != nil {
			return nil, err
		}
		pages++
	}

	if err := g.writeAssets(); err != nil {
		return nil, err
	}

	return &Result{
		Pages:      pages,
		Components: len(results),
		Duration:   time.Since(start),
		OutputDir:  g.cfg.Docs.Output,
	}, nil
}

// loadPageSpecs reads every *.yaml/*.yml doc in the docs directory.
func (g *Generator) loadPageSpecs() (map[string]PageSpec, error) {
	entries, err := os.ReadDir(g.cfg.Docs.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading docs dir: %w", err)
	}

	specs := make(map[string]PageSpec)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(g.cfg.Docs.Dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading doc %s: %w", entry.Name(), err)
		}

		var spec PageSpec
		if err := yaml.Unmarshal(raw, &spec); err != nil {
			return nil, fmt.Errorf("parsing doc %s: %w", entry.Name(), err)
		}

		name := strings.TrimSuffix(entry.Name(), ext)
		specs[name] = spec
	}
	return specs, nil
}

func (g *Generator) pageTitle(name string, spec PageSpec) string {
	if spec.Title != "" {
		return spec.Title
	}
	return g.titler.String(strings.ReplaceAll(name, "-", " "))
}

func (g *Generator) writePage(ctx context.Context, name string, data pageData) error {
	dir := filepath.Join(g.cfg.Docs.Output, name)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating page dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return fmt.Errorf("creating page: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := previewPage(data).Render(ctx, f); err != nil {
		return fmt.Errorf("rendering page %s: %w", name, err)
	}
	return f.Close()
}

func (g *Generator) writeAssets() error {
	assetsDir := filepath.Join(g.cfg.Docs.Output, "assets")
	if err := os.MkdirAll(assetsDir, 0o750); err != nil {
		return fmt.Errorf("creating assets dir: %w", err)
	}

	css := GenerateCSS()
	if g.cfg.Build.Minify {
		css = MinifyCSS(css)
	}
	if err := os.WriteFile(filepath.Join(assetsDir, "rafters.css"), []byte(css), 0o640); err != nil {
		return fmt.Errorf("writing stylesheet: %w", err)
	}
	if err := os.WriteFile(filepath.Join(assetsDir, "rafters.js"), []byte(GenerateJS()), 0o640); err != nil {
		return fmt.Errorf("writing script: %w", err)
	}
	return nil
}

package build

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/rafters-ui/rafters/internal/errors"
	"github.com/rafters-ui/rafters/internal/executor"
	"github.com/rafters-ui/rafters/internal/logging"
	"github.com/rafters-ui/rafters/internal/registry"
	"github.com/rafters-ui/rafters/internal/types"
)

// BuildRequest names one component to build, with optional preview props.
type BuildRequest struct {
	Name  string
	Props map[string]interface{}
}

// Pipeline drives one component, or many, through registry fetch, source
// compilation and execution, attributing every failure to the phase that
// caused it. There is no retry loop anywhere: a failure is terminal for that
// one component's build and is reported, not retried.
type Pipeline struct {
	registry *registry.Client
	executor *executor.Engine
	logger   logging.Logger

	compilerOnce sync.Once
	compiler     *Compiler
	compilerOpts []CompilerOption
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithPipelineLogger attaches a logger for batch diagnostics.
func WithPipelineLogger(logger logging.Logger) PipelineOption {
	return func(p *Pipeline) { p.logger = logger }
}

// WithCompilerOptions forwards options to the lazily created compiler.
func WithCompilerOptions(opts ...CompilerOption) PipelineOption {
	return func(p *Pipeline) { p.compilerOpts = opts }
}

// WithExecutor substitutes the execution engine.
func WithExecutor(engine *executor.Engine) PipelineOption {
	return func(p *Pipeline) { p.executor = engine }
}

// NewPipeline creates a build pipeline on top of a registry client.
func NewPipeline(client *registry.Client, opts ...PipelineOption) *Pipeline {
	pipeline := &Pipeline{
		registry: client,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(pipeline)
	}
	if pipeline.executor == nil {
		pipeline.executor = executor.NewEngine(executor.WithLogger(pipeline.logger))
	}
	return pipeline
}

// ensureCompiler lazily initializes the compiler; idempotent under
// concurrent builds.
func (p *Pipeline) ensureCompiler() *Compiler {
	p.compilerOnce.Do(func() {
		p.compiler = NewCompiler(p.compilerOpts...)
	})
	return p.compiler
}

// Compiler exposes the pipeline's compiler for cache management. It shares
// the pipeline's lazy initialization.
func (p *Pipeline) Compiler() *Compiler {
	return p.ensureCompiler()
}

// BuildComponentPreview builds a static preview for one component. Any
// failure surfaces as a *errors.BuildError attributed to the fetch, compile
// or execute phase.
func (p *Pipeline) BuildComponentPreview(ctx context.Context, name string, props map[string]interface{}) (*types.BuildResult, error) {
	start := time.Now()
	compiler := p.ensureCompiler()

	fetchResult, err := p.registry.FetchComponent(ctx, name)
	if err != nil {
		return nil, errors.WrapBuildError(name, err)
	}

	// A component without a renderable file is a defect in what was
	// fetched, so it is attributed to the fetch phase even though no
	// network error occurred.
	file, ok := fetchResult.Component.RenderableFile()
	if !ok {
		return nil, &errors.BuildError{
			ComponentName: name,
			Phase:         errors.PhaseFetch,
			Cause:         stderrors.New("component has no renderable file"),
		}
	}

	compileResult, err := compiler.Compile(file.Content, CompileOptions{Filename: file.Path})
	if err != nil {
		return nil, errors.WrapBuildError(name, err)
	}

	execResult, err := p.executor.Execute(compileResult.Code, props, executor.Options{ComponentName: name})
	if err != nil {
		return nil, errors.WrapBuildError(name, err)
	}

	return &types.BuildResult{
		ComponentName: name,
		HTMLOutput:    execResult.HTML,
		BuildTime:     time.Since(start),
		CacheHit:      fetchResult.FromCache && compileResult.CacheHit,
		Intelligence:  fetchResult.Component.Intelligence(),
		Props:         execResult.Props,
	}, nil
}

// BuildMultipleComponents builds all requests concurrently and
// independently. A failure in one entry is logged and that entry is absent
// from the result map; sibling builds complete regardless. One bad component
// never blocks, slow-fails, or corrupts the results of any other component
// in the batch.
func (p *Pipeline) BuildMultipleComponents(ctx context.Context, requests []BuildRequest) map[string]*types.BuildResult {
	results := make(map[string]*types.BuildResult, len(requests))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, request := range requests {
		wg.Add(1)
		go func(request BuildRequest) {
			defer wg.Done()

			result, err := p.BuildComponentPreview(ctx, request.Name, request.Props)
			if err != nil {
				p.logger.Warn(ctx, err, "component build failed, excluding from batch",
					"component", request.Name)
				return
			}

			mu.Lock()
			results[request.Name] = result
			mu.Unlock()
		}(request)
	}
	wg.Wait()

	return results
}

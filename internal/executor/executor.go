// Package executor provides the execution engine for compiled component
// code: it loads the code into a sandboxed JavaScript runtime, resolves the
// renderable export, sanitizes the property bag, and renders to static
// markup. Every failure it raises is tagged with the phase that caused it.
package executor

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/dop251/goja"

	"github.com/rafters-ui/rafters/internal/errors"
	"github.com/rafters-ui/rafters/internal/logging"
	"github.com/rafters-ui/rafters/internal/renderer"
)

// DefaultComponentName is used when the caller supplies no component name.
const DefaultComponentName = "Component"

// ExecutionResult is the outcome of rendering one component.
type ExecutionResult struct {
	// HTML is the rendered static markup
	HTML string
	// RenderTime is the wall-clock execution duration; always positive
	RenderTime time.Duration
	// ComponentName echoes the name used for the render
	ComponentName string
	// Props is the sanitized property bag actually used for rendering,
	// not the raw input; callers can assert on exactly what was used
	Props map[string]interface{}
}

// Options carries per-execution options.
type Options struct {
	// ComponentName labels errors and guides named-export resolution
	ComponentName string
}

// Engine executes compiled component code. A fresh sandbox is created per
// execution, so one component's globals can never leak into another's.
type Engine struct {
	logger logging.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger attaches a logger for the sandbox console facade.
func WithLogger(logger logging.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// NewEngine creates an execution engine.
func NewEngine(opts ...EngineOption) *Engine {
	engine := &Engine{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Execute loads compiled code, resolves the component definition from its
// exports, and renders it with the sanitized property bag.
func (e *Engine) Execute(code string, props map[string]interface{}, opts Options) (*ExecutionResult, error) {
	start := time.Now()

	componentName := opts.ComponentName
	if componentName == "" {
		componentName = DefaultComponentName
	}

	sanitized := SanitizeProps(props)

	vm := newSandbox(e.logger, componentName)

	exports, err := loadModule(vm, code)
	if err != nil {
		return nil, errors.NewExecutionError(errors.ExecPhaseCreation, componentName, normalizeJSError(err))
	}

	component, err := resolveComponent(vm, exports, componentName)
	if err != nil {
		return nil, errors.NewExecutionError(errors.ExecPhaseCreation, componentName, err)
	}

	propsValue, err := toSandboxValue(vm, sanitized)
	if err != nil {
		return nil, errors.NewExecutionError(errors.ExecPhaseProps, componentName, err)
	}

	element := renderer.CreateElement(vm, component, propsValue)
	html, err := renderer.RenderToString(vm, element)
	if err != nil {
		return nil, errors.NewExecutionError(errors.ExecPhaseRendering, componentName, normalizeJSError(err))
	}

	renderTime := time.Since(start)
	if renderTime <= 0 {
		renderTime = time.Nanosecond
	}

	return &ExecutionResult{
		HTML:          html,
		RenderTime:    renderTime,
		ComponentName: componentName,
		Props:         sanitized,
	}, nil
}

// toSandboxValue converts the sanitized property bag into a sandbox object.
// Keys sanitized to nil become undefined rather than null so the renderer
// skips them entirely.
func toSandboxValue(vm *goja.Runtime, props map[string]interface{}) (goja.Value, error) {
	obj := vm.NewObject()
	for key, value := range props {
		if value == nil {
			if err := obj.Set(key, goja.Undefined()); err != nil {
				return nil, fmt.Errorf("setting prop %q: %w", key, err)
			}
			continue
		}
		if err := obj.Set(key, vm.ToValue(value)); err != nil {
			return nil, fmt.Errorf("setting prop %q: %w", key, err)
		}
	}
	return obj, nil
}

// normalizeJSError unwraps goja exceptions so error messages carry the
// thrown value's text rather than the engine's wrapper formatting.
func normalizeJSError(err error) error {
	var exception *goja.Exception
	if stderrors.As(err, &exception) {
		return stderrors.New(exception.Value().String())
	}
	return err
}

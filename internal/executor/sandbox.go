package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/dop251/goja"

	"github.com/rafters-ui/rafters/internal/logging"
	"github.com/rafters-ui/rafters/internal/renderer"
)

// newSandbox creates an isolated execution context for compiled component
// code. The only capabilities exposed are the rendering library's
// element-construction primitives (via require), a no-op-safe console
// facade, and the CommonJS module plumbing. No file system, no network, no
// arbitrary module resolution.
func newSandbox(logger logging.Logger, componentName string) *goja.Runtime {
	vm := goja.New()
	vm.Set("console", consoleFacade(vm, logger, componentName))
	vm.Set("require", requireWhitelist(vm))
	return vm
}

// requireWhitelist resolves only the JSX runtime modules the compiled code
// imports. Anything else throws inside the sandbox.
func requireWhitelist(vm *goja.Runtime) func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		specifier := call.Argument(0).String()
		switch {
		case strings.HasSuffix(specifier, "/jsx-runtime"),
			strings.HasSuffix(specifier, "/jsx-dev-runtime"):
			return renderer.Module(vm)
		case specifier == "react":
			return renderer.ReactShim(vm)
		default:
			panic(vm.ToValue(fmt.Sprintf("module %q is not available in the sandbox", specifier)))
		}
	}
}

// consoleFacade forwards component console output to the structured logger
// at debug level. It stays safe when logging is disabled.
func consoleFacade(vm *goja.Runtime, logger logging.Logger, componentName string) *goja.Object {
	log := func(call goja.FunctionCall) goja.Value {
		if logger != nil {
			parts := make([]string, 0, len(call.Arguments))
			for _, arg := range call.Arguments {
				parts = append(parts, arg.String())
			}
			logger.Debug(context.Background(), "component console output",
				"component", componentName,
				"message", strings.Join(parts, " "))
		}
		return goja.Undefined()
	}

	console := vm.NewObject()
	for _, method := range []string{"log", "info", "warn", "error", "debug"} {
		_ = console.Set(method, log)
	}
	return console
}

// loadModule evaluates compiled CommonJS code inside the sandbox and
// returns its exports object.
func loadModule(vm *goja.Runtime, code string) (*goja.Object, error) {
	wrapped := "(function(exports, module, require) {\n" + code + "\n})"

	fnValue, err := vm.RunScript("component.js", wrapped)
	if err != nil {
		return nil, err
	}
	fn, ok := goja.AssertFunction(fnValue)
	if !ok {
		return nil, fmt.Errorf("compiled code did not evaluate to a module")
	}

	exports := vm.NewObject()
	module := vm.NewObject()
	_ = module.Set("exports", exports)

	if _, err := fn(goja.Undefined(), exports, module, vm.Get("require")); err != nil {
		return nil, err
	}

	// module.exports may have been reassigned wholesale
	final := module.Get("exports")
	if obj, ok := final.(*goja.Object); ok {
		return obj, nil
	}
	return exports, nil
}

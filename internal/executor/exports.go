package executor

import (
	"fmt"

	"github.com/dop251/goja"
)

// exportStrategy is one named way of extracting a renderable component from
// a module's exports. Strategies are tried in a fixed order; the list is
// explicit so each can be tested independently.
type exportStrategy struct {
	name    string
	resolve func(vm *goja.Runtime, exports *goja.Object, componentName string) goja.Value
}

// exportStrategies covers the module shapes seen in the wild: plain ESM
// default exports, double-default interop wrappers from CommonJS/ESM
// round-trips, named exports, and last-resort "first callable" scans.
func exportStrategies() []exportStrategy {
	return []exportStrategy{
		{
			name: "default export",
			resolve: func(vm *goja.Runtime, exports *goja.Object, _ string) goja.Value {
				return callableOrNil(exports.Get("default"))
			},
		},
		{
			name: "nested default export",
			resolve: func(vm *goja.Runtime, exports *goja.Object, _ string) goja.Value {
				def, ok := exports.Get("default").(*goja.Object)
				if !ok {
					return nil
				}
				return callableOrNil(def.Get("default"))
			},
		},
		{
			name: "named export matching component name",
			resolve: func(vm *goja.Runtime, exports *goja.Object, componentName string) goja.Value {
				return callableOrNil(exports.Get(componentName))
			},
		},
		{
			name: "named export under default",
			resolve: func(vm *goja.Runtime, exports *goja.Object, componentName string) goja.Value {
				def, ok := exports.Get("default").(*goja.Object)
				if !ok {
					return nil
				}
				return callableOrNil(def.Get(componentName))
			},
		},
		{
			name: "first callable named export",
			resolve: func(vm *goja.Runtime, exports *goja.Object, _ string) goja.Value {
				return firstCallable(exports)
			},
		},
		{
			name: "first callable under default",
			resolve: func(vm *goja.Runtime, exports *goja.Object, _ string) goja.Value {
				def, ok := exports.Get("default").(*goja.Object)
				if !ok {
					return nil
				}
				return firstCallable(def)
			},
		},
	}
}

// resolveComponent extracts the renderable component definition from a
// module's exports, trying each strategy in order.
func resolveComponent(vm *goja.Runtime, exports *goja.Object, componentName string) (goja.Value, error) {
	for _, strategy := range exportStrategies() {
		if component := strategy.resolve(vm, exports, componentName); component != nil {
			return component, nil
		}
	}

	// Distinguish "nothing exported" from "exported but not callable" so
	// the failure names what was actually found.
	if def := exports.Get("default"); def != nil && !goja.IsUndefined(def) && !goja.IsNull(def) {
		return nil, fmt.Errorf("default export is not a component function (got %s)", valueTypeName(def))
	}
	return nil, fmt.Errorf("no component found in exports")
}

func callableOrNil(v goja.Value) goja.Value {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	if _, ok := goja.AssertFunction(v); ok {
		return v
	}
	return nil
}

func firstCallable(obj *goja.Object) goja.Value {
	for _, key := range obj.Keys() {
		if key == "default" {
			continue
		}
		if v := callableOrNil(obj.Get(key)); v != nil {
			return v
		}
	}
	return nil
}

func valueTypeName(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	if obj, ok := v.(*goja.Object); ok {
		return obj.ClassName()
	}
	switch v.Export().(type) {
	case string:
		return "string"
	case int64, float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return "object"
	}
}

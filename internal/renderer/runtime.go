package renderer

import (
	"github.com/dop251/goja"
)

// Module builds the jsx-runtime module object the sandbox hands to compiled
// code: jsx/jsxs/jsxDEV for the automatic JSX transform, plus Fragment.
// These are the only element-construction primitives compiled components
// see.
func Module(vm *goja.Runtime) *goja.Object {
	jsx := func(call goja.FunctionCall) goja.Value {
		return CreateElement(vm, call.Argument(0), call.Argument(1))
	}

	module := vm.NewObject()
	_ = module.Set("jsx", jsx)
	_ = module.Set("jsxs", jsx)
	_ = module.Set("jsxDEV", jsx)
	_ = module.Set("Fragment", FragmentType)
	return module
}

// ReactShim builds a minimal react compatibility object for sources that
// import React directly: createElement and Fragment, nothing else.
func ReactShim(vm *goja.Runtime) *goja.Object {
	createElement := func(call goja.FunctionCall) goja.Value {
		var children []goja.Value
		if len(call.Arguments) > 2 {
			children = call.Arguments[2:]
		}
		return createElementClassic(vm, call.Argument(0), call.Argument(1), children)
	}

	shim := vm.NewObject()
	_ = shim.Set("createElement", createElement)
	_ = shim.Set("Fragment", FragmentType)
	_ = shim.Set("default", shim)
	return shim
}

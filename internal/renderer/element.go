// Package renderer provides the UI-rendering surface used by the execution
// engine: constructing elements from a component definition and a property
// bag, and synchronously rendering an element tree to an HTML string. It
// also exposes the jsx-runtime bindings that compiled component code imports
// inside the sandbox.
package renderer

import (
	"github.com/dop251/goja"
)

// FragmentType is the sentinel element type for fragments: children render
// without a wrapping tag.
const FragmentType = "rafters.Fragment"

// elementMarker tags objects produced by CreateElement so the renderer can
// tell elements apart from plain objects.
const elementMarker = "__raftersElement"

// CreateElement constructs an element from a component definition (a tag
// name string, FragmentType, or a callable component) and a property bag.
func CreateElement(vm *goja.Runtime, elementType goja.Value, props goja.Value) *goja.Object {
	obj := vm.NewObject()
	_ = obj.Set(elementMarker, true)
	_ = obj.Set("type", elementType)
	if props == nil || goja.IsUndefined(props) || goja.IsNull(props) {
		_ = obj.Set("props", vm.NewObject())
	} else {
		_ = obj.Set("props", props)
	}
	return obj
}

// createElementClassic implements the classic createElement(type, props,
// ...children) calling convention used by the react compatibility shim.
func createElementClassic(vm *goja.Runtime, elementType goja.Value, props goja.Value, children []goja.Value) *goja.Object {
	merged := vm.NewObject()
	if props != nil && !goja.IsUndefined(props) && !goja.IsNull(props) {
		propsObj := props.ToObject(vm)
		for _, key := range propsObj.Keys() {
			_ = merged.Set(key, propsObj.Get(key))
		}
	}
	switch len(children) {
	case 0:
		// children key stays absent
	case 1:
		_ = merged.Set("children", children[0])
	default:
		arr := make([]interface{}, len(children))
		for i, child := range children {
			arr[i] = child
		}
		_ = merged.Set("children", vm.ToValue(arr))
	}
	return CreateElement(vm, elementType, merged)
}

// IsElement reports whether v was produced by CreateElement.
func IsElement(vm *goja.Runtime, v goja.Value) bool {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return false
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return false
	}
	marker := obj.Get(elementMarker)
	return marker != nil && marker.ToBoolean()
}

package renderer

import (
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/dop251/goja"
)

// voidElements never carry children or a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// attributeAliases maps prop names to their HTML attribute spelling.
var attributeAliases = map[string]string{
	"className": "class",
	"htmlFor":   "for",
}

// RenderToString synchronously renders an element tree to an HTML string.
// Exceptions thrown by component render functions propagate as errors.
func RenderToString(vm *goja.Runtime, v goja.Value) (string, error) {
	var sb strings.Builder
	if err := renderNode(vm, v, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func renderNode(vm *goja.Runtime, v goja.Value, sb *strings.Builder) error {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}

	switch exported := v.Export().(type) {
	case string:
		sb.WriteString(html.EscapeString(exported))
		return nil
	case int64:
		sb.WriteString(strconv.FormatInt(exported, 10))
		return nil
	case float64:
		sb.WriteString(strconv.FormatFloat(exported, 'f', -1, 64))
		return nil
	case bool:
		// booleans render nothing, matching JSX semantics
		return nil
	}

	obj, ok := v.(*goja.Object)
	if !ok {
		return fmt.Errorf("value %q is not a renderable child", v.String())
	}

	if obj.ClassName() == "Array" {
		length := int(obj.Get("length").ToInteger())
		for i := 0; i < length; i++ {
			if err := renderNode(vm, obj.Get(strconv.Itoa(i)), sb); err != nil {
				return err
			}
		}
		return nil
	}

	if IsElement(vm, obj) {
		return renderElement(vm, obj, sb)
	}

	return fmt.Errorf("object of class %s is not a renderable child", obj.ClassName())
}

func renderElement(vm *goja.Runtime, element *goja.Object, sb *strings.Builder) error {
	elementType := element.Get("type")
	props := element.Get("props").ToObject(vm)

	// Function components are invoked with their props; the returned tree
	// is rendered in place.
	if fn, ok := goja.AssertFunction(elementType); ok {
		result, err := fn(goja.Undefined(), props)
		if err != nil {
			return err
		}
		return renderNode(vm, result, sb)
	}

	tag := elementType.String()
	if tag == FragmentType {
		return renderNode(vm, props.Get("children"), sb)
	}
	if !isValidTagName(tag) {
		return fmt.Errorf("invalid element type %q", tag)
	}

	sb.WriteByte('<')
	sb.WriteString(tag)
	writeAttributes(vm, props, sb)

	if voidElements[tag] {
		sb.WriteString("/>")
		return nil
	}
	sb.WriteByte('>')

	if raw, ok := innerHTML(vm, props); ok {
		sb.WriteString(raw)
	} else if err := renderNode(vm, props.Get("children"), sb); err != nil {
		return err
	}

	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteByte('>')
	return nil
}

func writeAttributes(vm *goja.Runtime, props *goja.Object, sb *strings.Builder) {
	keys := props.Keys()
	sort.Strings(keys)

	for _, key := range keys {
		if key == "children" || key == "key" || key == "ref" || key == "dangerouslySetInnerHTML" {
			continue
		}
		if isEventHandlerName(key) {
			continue
		}

		value := props.Get(key)
		if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
			continue
		}

		name := key
		if alias, ok := attributeAliases[key]; ok {
			name = alias
		}

		switch exported := value.Export().(type) {
		case bool:
			if exported {
				sb.WriteByte(' ')
				sb.WriteString(name)
				sb.WriteString(`=""`)
			}
		case string:
			writeAttribute(sb, name, exported)
		case int64:
			writeAttribute(sb, name, strconv.FormatInt(exported, 10))
		case float64:
			writeAttribute(sb, name, strconv.FormatFloat(exported, 'f', -1, 64))
		default:
			if key == "style" {
				if css := styleString(vm, value); css != "" {
					writeAttribute(sb, "style", css)
				}
			}
			// other objects and functions are not representable as
			// attributes and are dropped
		}
	}
}

func writeAttribute(sb *strings.Builder, name, value string) {
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(html.EscapeString(value))
	sb.WriteByte('"')
}

// styleString converts a style object to inline CSS, translating camelCase
// property names to kebab-case.
func styleString(vm *goja.Runtime, value goja.Value) string {
	obj, ok := value.(*goja.Object)
	if !ok {
		return ""
	}

	keys := obj.Keys()
	sort.Strings(keys)

	var parts []string
	for _, key := range keys {
		v := obj.Get(key)
		if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
			continue
		}
		switch exported := v.Export().(type) {
		case string:
			parts = append(parts, camelToKebab(key)+":"+exported)
		case int64:
			parts = append(parts, camelToKebab(key)+":"+strconv.FormatInt(exported, 10))
		case float64:
			parts = append(parts, camelToKebab(key)+":"+strconv.FormatFloat(exported, 'f', -1, 64))
		}
	}
	return strings.Join(parts, ";")
}

func camelToKebab(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsUpper(r) {
			sb.WriteByte('-')
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// innerHTML extracts dangerouslySetInnerHTML.__html when present.
func innerHTML(vm *goja.Runtime, props *goja.Object) (string, bool) {
	v := props.Get("dangerouslySetInnerHTML")
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return "", false
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return "", false
	}
	raw := obj.Get("__html")
	if raw == nil || goja.IsUndefined(raw) || goja.IsNull(raw) {
		return "", false
	}
	if s, ok := raw.Export().(string); ok {
		return s, true
	}
	return "", false
}

// isEventHandlerName matches React-style handler props: "on" followed by an
// uppercase letter.
func isEventHandlerName(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "on") &&
		key[2] >= 'A' && key[2] <= 'Z'
}

func isValidTagName(tag string) bool {
	if tag == "" {
		return false
	}
	for _, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}

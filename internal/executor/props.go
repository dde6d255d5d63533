package executor

import (
	"encoding/json"
	"reflect"
	"regexp"
)

// functionSourcePattern sniffs strings that look like serialized function
// source: function declarations, arrow functions, and their async variants.
// This is a best-effort safety net, not a correctness guarantee — a string
// that legitimately begins with "function" is indistinguishable from real
// serialized code and will be dropped (false positive), while obfuscated
// code that starts differently will pass (false negative).
var functionSourcePattern = regexp.MustCompile(
	`^\s*(async\s+)?(function\b|\([^)]*\)\s*=>|[A-Za-z_$][A-Za-z0-9_$]*\s*=>)`)

// SanitizeProps walks the input property bag key by key and returns the bag
// that is safe to hand to the renderer. Function values and function-looking
// strings become nil (functions cannot cross the serialization boundary and
// must not reach the renderer silently); objects with circular references
// become nil; nil values and primitives pass through unchanged. The result
// is both what gets rendered and what is echoed back to the caller.
//
// Sanitization is idempotent: running it over an already-sanitized bag
// yields the same bag.
func SanitizeProps(props map[string]interface{}) map[string]interface{} {
	sanitized := make(map[string]interface{}, len(props))
	for key, value := range props {
		sanitized[key] = sanitizeValue(value)
	}
	return sanitized
}

func sanitizeValue(value interface{}) interface{} {
	if value == nil {
		return nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Func, reflect.Chan:
		return nil
	case reflect.String:
		if functionSourcePattern.MatchString(rv.String()) {
			return nil
		}
		return value
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Ptr, reflect.Interface:
		// A full deep serialization doubles as the circularity check:
		// cycles (and embedded unserializable values) fail here.
		if _, err := json.Marshal(value); err != nil {
			return nil
		}
		return value
	default:
		return value
	}
}

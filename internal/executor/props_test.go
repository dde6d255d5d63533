package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizePropsPrimitivesPassThrough(t *testing.T) {
	props := map[string]interface{}{
		"label":   "Save",
		"count":   3,
		"ratio":   0.5,
		"enabled": true,
		"missing": nil,
	}

	sanitized := SanitizeProps(props)
	assert.Equal(t, props, sanitized)
}

func TestSanitizePropsDropsFunctions(t *testing.T) {
	sanitized := SanitizeProps(map[string]interface{}{
		"onClick": func() {},
		"stream":  make(chan int),
		"label":   "keep",
	})

	assert.Nil(t, sanitized["onClick"])
	assert.Nil(t, sanitized["stream"])
	assert.Equal(t, "keep", sanitized["label"])
}

func TestSanitizePropsFunctionLookingStrings(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		dropped bool
	}{
		{"function declaration", `function handler() { alert(1); }`, true},
		{"async function declaration", `async function handler() {}`, true},
		{"arrow with parens", `(e) => e.preventDefault()`, true},
		{"arrow bare identifier", `e => alert(e)`, true},
		{"async arrow", `async () => fetch("/x")`, true},
		{"leading whitespace", `   function sneaky() {}`, true},
		{"word containing function", "dysfunctional behavior", false},
		{"ordinary sentence", "click the button", false},
		{"fat arrow mid-string", "a => b is notation", true},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sanitized := SanitizeProps(map[string]interface{}{"value": tt.value})
			if tt.dropped {
				assert.Nil(t, sanitized["value"])
			} else {
				assert.Equal(t, tt.value, sanitized["value"])
			}
		})
	}
}

func TestSanitizePropsCircularReference(t *testing.T) {
	circular := map[string]interface{}{"label": "x"}
	circular["self"] = circular

	sanitized := SanitizeProps(map[string]interface{}{
		"config": circular,
		"label":  "keep",
	})

	assert.Nil(t, sanitized["config"])
	assert.Equal(t, "keep", sanitized["label"])
}

func TestSanitizePropsSerializableCollections(t *testing.T) {
	props := map[string]interface{}{
		"items": []string{"a", "b"},
		"meta":  map[string]interface{}{"nested": true},
	}

	sanitized := SanitizeProps(props)
	assert.Equal(t, props["items"], sanitized["items"])
	assert.Equal(t, props["meta"], sanitized["meta"])
}

func TestSanitizePropsUnserializableCollection(t *testing.T) {
	sanitized := SanitizeProps(map[string]interface{}{
		"handlers": map[string]interface{}{"onClick": func() {}},
	})
	assert.Nil(t, sanitized["handlers"])
}

func TestSanitizePropsIdempotent(t *testing.T) {
	props := map[string]interface{}{
		"label":   "Save",
		"onClick": func() {},
		"source":  "() => {}",
		"items":   []int{1, 2, 3},
	}

	once := SanitizeProps(props)
	twice := SanitizeProps(once)
	assert.Equal(t, once, twice)
}

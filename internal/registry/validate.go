package registry

import (
	"regexp"
	"strings"

	"github.com/rafters-ui/rafters/internal/errors"
	"github.com/rafters-ui/rafters/internal/types"
)

const maxComponentNameLength = 100

// componentNamePattern matches lowercase alphanumeric names with internal
// hyphens: "button", "card-header". Leading/trailing hyphens and uppercase
// are rejected.
var componentNamePattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateComponentName checks a component name before any cache or network
// access. Violations are precondition failures, not business errors.
func ValidateComponentName(name string) error {
	if name == "" {
		return errors.NewValidationError("name", name, "component name must not be empty")
	}
	if strings.TrimSpace(name) != name {
		return errors.NewValidationError("name", name, "component name must not contain leading or trailing whitespace")
	}
	if len(name) > maxComponentNameLength {
		return errors.NewValidationError("name", name, "component name exceeds 100 characters")
	}
	if strings.ContainsAny(name, "<>&\"'`") {
		return errors.NewValidationError("name", name, "component name contains markup-special characters")
	}
	if !componentNamePattern.MatchString(name) {
		return errors.NewValidationError("name", name, "component name must be lowercase letters, digits and internal hyphens")
	}
	return nil
}

// validateComponent checks a decoded registry response against the
// RegistryComponent shape: required top-level fields, a non-empty file list,
// complete file entries, and at least one file with non-blank content.
// Content is deliberately checked in aggregate rather than per file: JSON
// decoding cannot distinguish an absent "content" field from an empty
// string, and auxiliary files (type declarations, styles) may legitimately
// ship empty.
func validateComponent(name string, component *types.RegistryComponent) error {
	if component.Name == "" {
		return &errors.RegistryValidationError{Component: name, Message: "missing required field 'name'"}
	}
	if component.Type == "" {
		return &errors.RegistryValidationError{Component: name, Message: "missing required field 'type'"}
	}
	if !component.Type.Valid() {
		return &errors.RegistryValidationError{Component: name, Message: "unknown registry item type '" + string(component.Type) + "'"}
	}
	if len(component.Files) == 0 {
		return &errors.RegistryValidationError{Component: name, Message: "files must not be empty"}
	}

	hasContent := false
	for _, file := range component.Files {
		if file.Path == "" {
			return &errors.RegistryValidationError{Component: name, Message: "file entry is missing 'path'"}
		}
		if file.Type == "" {
			return &errors.RegistryValidationError{Component: name, Message: "file '" + file.Path + "' is missing 'type'"}
		}
		if strings.TrimSpace(file.Content) != "" {
			hasContent = true
		}
	}
	if !hasContent {
		return &errors.RegistryValidationError{Component: name, Message: "no file has non-blank content"}
	}
	return nil
}

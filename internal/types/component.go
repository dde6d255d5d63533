// Package types provides common type definitions used throughout the Rafters
// CLI. This package contains shared types to avoid circular dependencies
// between packages.
package types

import "time"

// ItemType identifies the kind of a registry item or file.
type ItemType string

const (
	ItemTypeComponent ItemType = "registry:component"
	ItemTypeUI        ItemType = "registry:ui"
	ItemTypeBlock     ItemType = "registry:block"
	ItemTypeHook      ItemType = "registry:hook"
	ItemTypeLib       ItemType = "registry:lib"
	ItemTypePage      ItemType = "registry:page"
	ItemTypeFile      ItemType = "registry:file"
	ItemTypeStyle     ItemType = "registry:style"
	ItemTypeTheme     ItemType = "registry:theme"
)

// Valid reports whether t is one of the known registry item kinds.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeComponent, ItemTypeUI, ItemTypeBlock, ItemTypeHook,
		ItemTypeLib, ItemTypePage, ItemTypeFile, ItemTypeStyle, ItemTypeTheme:
		return true
	}
	return false
}

// Renderable reports whether a file of this kind can be rendered to a
// preview on its own. Hooks, libs and styles ship code but not markup.
func (t ItemType) Renderable() bool {
	switch t {
	case ItemTypeComponent, ItemTypeUI, ItemTypeBlock, ItemTypePage:
		return true
	}
	return false
}

// ComponentFile is one source file belonging to a registry component.
type ComponentFile struct {
	// Path is the file path relative to the component root (e.g. "button.tsx")
	Path string `json:"path"`
	// Content is the full TypeScript/JSX source text
	Content string `json:"content"`
	// Type is the registry kind of this individual file
	Type ItemType `json:"type"`
}

// ComponentMeta carries optional design metadata attached by the registry.
// The intelligence bag is opaque to the pipeline and passed through
// unmodified.
type ComponentMeta struct {
	Intelligence map[string]interface{} `json:"intelligence,omitempty"`
}

// RegistryComponent is the unit of work fetched from the registry service.
// Values are immutable once constructed; the registry client's cache entry
// is their sole owner.
type RegistryComponent struct {
	// Name is the component identifier (e.g. "button", "card-header")
	Name string `json:"name"`
	// Type is the registry item kind
	Type ItemType `json:"type"`
	// Description provides human-readable documentation for the component
	Description string `json:"description,omitempty"`
	// Dependencies lists npm package names this component depends on
	Dependencies []string `json:"dependencies,omitempty"`
	// Files holds the component's source files; never empty after validation
	Files []ComponentFile `json:"files"`
	// Meta carries optional registry metadata
	Meta *ComponentMeta `json:"meta,omitempty"`
}

// RenderableFile returns the first file whose kind can be rendered and whose
// content is non-blank.
func (c *RegistryComponent) RenderableFile() (*ComponentFile, bool) {
	for i := range c.Files {
		f := &c.Files[i]
		if f.Type.Renderable() && !isBlank(f.Content) {
			return f, true
		}
	}
	return nil, false
}

// Intelligence returns the opaque metadata bag, or nil when the registry
// attached none.
func (c *RegistryComponent) Intelligence() map[string]interface{} {
	if c.Meta == nil {
		return nil
	}
	return c.Meta.Intelligence
}

// BuildResult is the aggregate outcome of building one component preview.
type BuildResult struct {
	// ComponentName is the validated component identifier
	ComponentName string
	// HTMLOutput is the rendered static markup
	HTMLOutput string
	// BuildTime is the wall-clock span from call entry to assembly
	BuildTime time.Duration
	// CacheHit is true only when both the registry fetch and the
	// compilation were served from cache
	CacheHit bool
	// Intelligence is the fetched component's metadata bag, nil if absent
	Intelligence map[string]interface{}
	// Props is the sanitized property bag actually used for rendering
	Props map[string]interface{}
}

func isBlank(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}

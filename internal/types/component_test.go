package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemTypeValid(t *testing.T) {
	for _, it := range []ItemType{
		ItemTypeComponent, ItemTypeUI, ItemTypeBlock, ItemTypeHook,
		ItemTypeLib, ItemTypePage, ItemTypeFile, ItemTypeStyle, ItemTypeTheme,
	} {
		assert.True(t, it.Valid(), "%s", it)
	}
	assert.False(t, ItemType("registry:widget").Valid())
	assert.False(t, ItemType("").Valid())
}

func TestItemTypeRenderable(t *testing.T) {
	assert.True(t, ItemTypeComponent.Renderable())
	assert.True(t, ItemTypeUI.Renderable())
	assert.True(t, ItemTypeBlock.Renderable())
	assert.True(t, ItemTypePage.Renderable())

	assert.False(t, ItemTypeHook.Renderable())
	assert.False(t, ItemTypeLib.Renderable())
	assert.False(t, ItemTypeStyle.Renderable())
	assert.False(t, ItemTypeTheme.Renderable())
	assert.False(t, ItemTypeFile.Renderable())
}

func TestRenderableFile(t *testing.T) {
	component := &RegistryComponent{
		Name: "button",
		Type: ItemTypeComponent,
		Files: []ComponentFile{
			{Path: "use-button.ts", Content: "export const useButton = 1", Type: ItemTypeHook},
			{Path: "blank.tsx", Content: " \n\t ", Type: ItemTypeComponent},
			{Path: "button.tsx", Content: "export default () => null", Type: ItemTypeComponent},
		},
	}

	file, ok := component.RenderableFile()
	require.True(t, ok)
	assert.Equal(t, "button.tsx", file.Path, "hooks and blank files are passed over")
}

func TestRenderableFileNone(t *testing.T) {
	component := &RegistryComponent{
		Name: "tokens",
		Type: ItemTypeStyle,
		Files: []ComponentFile{
			{Path: "tokens.css", Content: ".a{}", Type: ItemTypeStyle},
		},
	}
	_, ok := component.RenderableFile()
	assert.False(t, ok)
}

func TestIntelligence(t *testing.T) {
	bare := &RegistryComponent{Name: "x"}
	assert.Nil(t, bare.Intelligence())

	withMeta := &RegistryComponent{
		Name: "x",
		Meta: &ComponentMeta{Intelligence: map[string]interface{}{"category": "input"}},
	}
	assert.Equal(t, map[string]interface{}{"category": "input"}, withMeta.Intelligence())
}

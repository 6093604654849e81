package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/scribeflow/internal/models"
)

func TestCompileStyle_EmptyPaletteUsesAllDefaults(t *testing.T) {
	style := CompileStyle(models.StyleGuide{Palette: []string{}, Mood: "calm"})

	assert.Equal(t, "calm", style.Mood)
	assert.Equal(t, defaultPrimary, style.ThemeVars.Primary)
	assert.Equal(t, defaultSecondary, style.ThemeVars.Secondary)
	assert.Equal(t, defaultAccent, style.ThemeVars.Accent)
	assert.Equal(t, defaultHighlight, style.ThemeVars.Highlight)
	assert.Equal(t, defaultSurface, style.ThemeVars.Surface)
	assert.Equal(t, defaultText, style.ThemeVars.Text)
}

func TestCompileStyle_PartialPalette(t *testing.T) {
	style := CompileStyle(models.StyleGuide{Palette: []string{"#111111", "#222222"}})

	assert.Equal(t, "#111111", style.ThemeVars.Primary)
	assert.Equal(t, "#222222", style.ThemeVars.Secondary)
	// Slots beyond the palette length take their fixed defaults.
	assert.Equal(t, defaultAccent, style.ThemeVars.Accent)
	assert.Equal(t, defaultText, style.ThemeVars.Text)
	assert.Equal(t, "", style.Mood)
}

func TestCompileStyle_FullPaletteConsumesAllSixSlots(t *testing.T) {
	palette := []string{"#0", "#1", "#2", "#3", "#4", "#5"}
	style := CompileStyle(models.StyleGuide{Palette: palette, Mood: "Modern Technical"})

	assert.Equal(t, models.ThemeVars{
		Primary: "#0", Secondary: "#1", Accent: "#2",
		Highlight: "#3", Surface: "#4", Text: "#5",
	}, style.ThemeVars)
	assert.Equal(t, palette, style.Palette)
}

func TestCompileStyle_Deterministic(t *testing.T) {
	guide := models.StyleGuide{Palette: []string{"#A", "#B", "#C"}, Mood: "serene"}
	assert.Equal(t, CompileStyle(guide), CompileStyle(guide))
}

func TestCompileStyle_NilPaletteBecomesEmpty(t *testing.T) {
	style := CompileStyle(models.StyleGuide{})
	assert.NotNil(t, style.Palette)
	assert.Empty(t, style.Palette)
}

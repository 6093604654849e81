package compiler

import "github.com/ternarybob/scribeflow/internal/models"

// Default colors for the six theme slots, used when the supplied palette is
// shorter than the slot index.
const (
	defaultPrimary   = "#00425A"
	defaultSecondary = "#1F8A7E"
	defaultAccent    = "#BFDB38"
	defaultHighlight = "#FC7300"
	defaultSurface   = "#EFEFEF"
	defaultText      = "#333333"
)

// CompileStyle produces the complete StyleObject for a run from a raw style
// guide. Deterministic and total: palette slots beyond the input's length get
// the fixed defaults above, and mood passes through verbatim (empty if
// absent). Computed once per run and shared by every visualization.
func CompileStyle(guide models.StyleGuide) models.StyleObject {
	palette := guide.Palette
	if palette == nil {
		palette = []string{}
	}
	return models.StyleObject{
		Palette: palette,
		Mood:    guide.Mood,
		ThemeVars: models.ThemeVars{
			Primary:   paletteSlot(palette, 0, defaultPrimary),
			Secondary: paletteSlot(palette, 1, defaultSecondary),
			Accent:    paletteSlot(palette, 2, defaultAccent),
			Highlight: paletteSlot(palette, 3, defaultHighlight),
			Surface:   paletteSlot(palette, 4, defaultSurface),
			Text:      paletteSlot(palette, 5, defaultText),
		},
	}
}

func paletteSlot(palette []string, index int, def string) string {
	if index < len(palette) && palette[index] != "" {
		return palette[index]
	}
	return def
}

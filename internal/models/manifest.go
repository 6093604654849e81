package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestEntry is one candidate visual produced by content analysis.
// Every field is untrusted: template_type may be any label and data_payload
// any shape. Downstream compilation must absorb both without failing.
type ManifestEntry struct {
	AnchorSentence string         `json:"anchor_sentence" yaml:"anchor_sentence"`
	Rationale      string         `json:"rationale" yaml:"rationale"`
	TemplateType   string         `json:"template_type" yaml:"template_type"`
	DataPayload    map[string]any `json:"data_payload" yaml:"data_payload"`
}

// StyleGuide is the palette-plus-mood specification applied uniformly to all
// visualizations in a run. The palette may be shorter than the six slots the
// style compiler reads; missing slots are defaulted.
type StyleGuide struct {
	Palette []string `json:"palette" yaml:"palette"`
	Mood    string   `json:"mood,omitempty" yaml:"mood,omitempty"`
}

// AnalysisResult is the output of the content analyzer boundary.
type AnalysisResult struct {
	VisualManifest []ManifestEntry `json:"visual_manifest" yaml:"visual_manifest"`
	StyleGuide     StyleGuide      `json:"style_guide" yaml:"style_guide"`
}

// LoadManifest reads a visual manifest from a JSON or YAML file.
func LoadManifest(path string) ([]ManifestEntry, error) {
	var manifest []ManifestEntry
	if err := loadStructured(path, &manifest); err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	return manifest, nil
}

// LoadStyleGuide reads a style guide from a JSON or YAML file.
func LoadStyleGuide(path string) (StyleGuide, error) {
	var style StyleGuide
	if err := loadStructured(path, &style); err != nil {
		return StyleGuide{}, fmt.Errorf("failed to load style guide: %w", err)
	}
	return style, nil
}

// loadStructured decodes a JSON or YAML file into v based on its extension.
func loadStructured(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("invalid JSON in %s: %w", path, err)
		}
	}
	return nil
}

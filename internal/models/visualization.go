package models

import (
	"encoding/json"
	"fmt"
)

// TemplateType identifies one of the supported visualization kinds.
// Raw template labels from the manifest are normalized into this enum before
// any payload shaping happens; no other value ever reaches the compiler output.
type TemplateType string

const (
	TemplateBentoGrid   TemplateType = "bento_grid"
	TemplateVersusSplit TemplateType = "versus_split"
	TemplateStepJourney TemplateType = "step_journey"
	TemplateStoryImage  TemplateType = "story_image"
)

// IsValid reports whether t is one of the four supported kinds.
func (t TemplateType) IsValid() bool {
	switch t {
	case TemplateBentoGrid, TemplateVersusSplit, TemplateStepJourney, TemplateStoryImage:
		return true
	}
	return false
}

// TemplatePayload is the tagged union of per-kind payload shapes. Each
// implementation carries the full fixed key set for its kind so callers can
// switch on Kind() without null-checking individual fields.
type TemplatePayload interface {
	Kind() TemplateType
}

// ColumnSide is one labeled side of a versus_split visualization.
type ColumnSide struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// VersusSplitPayload is the shaped payload for versus_split.
type VersusSplitPayload struct {
	Title           string     `json:"title"`
	Left            ColumnSide `json:"left"`
	Right           ColumnSide `json:"right"`
	ComparisonPoint string     `json:"comparisonPoint"`
}

func (VersusSplitPayload) Kind() TemplateType { return TemplateVersusSplit }

// BentoGridPayload is the shaped payload for bento_grid. Items holds whatever
// sequence the manifest supplied; non-list input coerces to an empty sequence.
type BentoGridPayload struct {
	Title string `json:"title"`
	Items []any  `json:"items"`
}

func (BentoGridPayload) Kind() TemplateType { return TemplateBentoGrid }

// StepJourneyPayload is the shaped payload for step_journey.
type StepJourneyPayload struct {
	Title string `json:"title"`
	Items []any  `json:"items"`
}

func (StepJourneyPayload) Kind() TemplateType { return TemplateStepJourney }

// ImageSpecs describes the scene for a story_image.
type ImageSpecs struct {
	Description      string `json:"description"`
	PointsOfInterest []any  `json:"points_of_interest"`
}

// StoryImagePayload is the shaped payload for story_image, the universal
// fallback kind.
type StoryImagePayload struct {
	Title      string     `json:"title"`
	ImageSpecs ImageSpecs `json:"imageSpecs"`
}

func (StoryImagePayload) Kind() TemplateType { return TemplateStoryImage }

// ThemeVars maps the six palette slots onto named theme roles.
type ThemeVars struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
	Highlight string `json:"highlight"`
	Surface   string `json:"surface"`
	Text      string `json:"text"`
}

// StyleObject is the fully-populated style attached to every visualization in
// one compilation run. No field is ever missing regardless of how sparse the
// input palette was. Read-only after construction; shared across all compiled
// visualizations in a run.
type StyleObject struct {
	Palette   []string  `json:"palette"`
	Mood      string    `json:"mood"`
	ThemeVars ThemeVars `json:"themeVars"`
}

// CompiledVisualization is a manifest entry after normalization into a
// strict, renderable payload shape.
type CompiledVisualization struct {
	VisualizationID  string          `json:"visualizationId"`
	Type             TemplateType    `json:"type"`
	AnchorSentence   string          `json:"anchorSentence"`
	Rationale        string          `json:"rationale"`
	Payload          TemplatePayload `json:"payload"`
	GlobalStyleGuide StyleObject     `json:"globalStyleGuide"`
}

// compiledVisualizationJSON mirrors CompiledVisualization with a raw payload
// so the tagged union can be decoded by Type on the way back in.
type compiledVisualizationJSON struct {
	VisualizationID  string          `json:"visualizationId"`
	Type             TemplateType    `json:"type"`
	AnchorSentence   string          `json:"anchorSentence"`
	Rationale        string          `json:"rationale"`
	Payload          json.RawMessage `json:"payload"`
	GlobalStyleGuide StyleObject     `json:"globalStyleGuide"`
}

// UnmarshalJSON decodes the payload into the concrete shape named by Type.
// Used when replaying a compiled artifact from disk or the run archive.
func (c *CompiledVisualization) UnmarshalJSON(data []byte) error {
	var raw compiledVisualizationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.VisualizationID = raw.VisualizationID
	c.Type = raw.Type
	c.AnchorSentence = raw.AnchorSentence
	c.Rationale = raw.Rationale
	c.GlobalStyleGuide = raw.GlobalStyleGuide

	if len(raw.Payload) == 0 {
		c.Payload = nil
		return nil
	}

	switch raw.Type {
	case TemplateVersusSplit:
		var p VersusSplitPayload
		if err := json.Unmarshal(raw.Payload, &p); err != nil {
			return fmt.Errorf("invalid versus_split payload: %w", err)
		}
		c.Payload = p
	case TemplateBentoGrid:
		var p BentoGridPayload
		if err := json.Unmarshal(raw.Payload, &p); err != nil {
			return fmt.Errorf("invalid bento_grid payload: %w", err)
		}
		c.Payload = p
	case TemplateStepJourney:
		var p StepJourneyPayload
		if err := json.Unmarshal(raw.Payload, &p); err != nil {
			return fmt.Errorf("invalid step_journey payload: %w", err)
		}
		c.Payload = p
	default:
		var p StoryImagePayload
		if err := json.Unmarshal(raw.Payload, &p); err != nil {
			return fmt.Errorf("invalid story_image payload: %w", err)
		}
		c.Payload = p
	}
	return nil
}

// CourseDocument wraps one compilation run's visualizations under its lesson
// identifier for the compiled payload artifact.
type CourseDocument struct {
	LessonID       string                  `json:"lessonId"`
	Visualizations []CompiledVisualization `json:"visualizations"`
}

package compiler

import "github.com/ternarybob/scribeflow/internal/models"

// MapTemplateType normalizes an arbitrary template label into one of the
// supported visualization kinds. Known synonyms map to their canonical kind;
// everything else falls back to story_image so no manifest entry is ever
// dropped for an unknown label.
func MapTemplateType(raw string) models.TemplateType {
	if t := models.TemplateType(raw); t.IsValid() {
		return t
	}
	if raw == "steps" {
		return models.TemplateStepJourney
	}
	return models.TemplateStoryImage
}

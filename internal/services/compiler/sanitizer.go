package compiler

import "github.com/ternarybob/scribeflow/internal/models"

// Default titles per kind. Missing required fields never surface as
// null/absent in sanitized output.
const (
	defaultVersusTitle     = "Comparison"
	defaultBentoTitle      = "Bento Overview"
	defaultJourneyTitle    = "Step Journey"
	defaultStoryTitle      = "Story Image"
	defaultComparisonPoint = "Key Difference"
	defaultImageDesc       = "Context image"
)

// SanitizePayload shapes a free-form data bag into the fixed payload for the
// given kind. Total function: it never fails, and the output always carries
// the full key set for the kind regardless of input completeness.
func SanitizePayload(kind models.TemplateType, raw map[string]any) models.TemplatePayload {
	switch kind {
	case models.TemplateVersusSplit:
		return models.VersusSplitPayload{
			Title: stringField(raw, "title", defaultVersusTitle),
			Left: models.ColumnSide{
				Title: stringField(raw, "left_column_title", ""),
				Text:  stringField(raw, "left_column_text", ""),
			},
			Right: models.ColumnSide{
				Title: stringField(raw, "right_column_title", ""),
				Text:  stringField(raw, "right_column_text", ""),
			},
			ComparisonPoint: stringField(raw, "comparison_point", defaultComparisonPoint),
		}
	case models.TemplateBentoGrid:
		return models.BentoGridPayload{
			Title: stringField(raw, "title", defaultBentoTitle),
			Items: listField(raw, "items"),
		}
	case models.TemplateStepJourney:
		return models.StepJourneyPayload{
			Title: stringField(raw, "title", defaultJourneyTitle),
			Items: listField(raw, "steps"),
		}
	default:
		return models.StoryImagePayload{
			Title: stringField(raw, "title", defaultStoryTitle),
			ImageSpecs: models.ImageSpecs{
				Description:      imageDescription(raw),
				PointsOfInterest: listField(raw, "points_of_interest"),
			},
		}
	}
}

// imageDescription picks the first non-empty of image_description,
// description, title, else a generic default.
func imageDescription(raw map[string]any) string {
	for _, key := range []string{"image_description", "description", "title"} {
		if v := stringField(raw, key, ""); v != "" {
			return v
		}
	}
	return defaultImageDesc
}

// stringField reads a string value from an untrusted map, returning def when
// the key is missing, empty, or not string-shaped.
func stringField(raw map[string]any, key, def string) string {
	if raw == nil {
		return def
	}
	if v, ok := raw[key].(string); ok && v != "" {
		return v
	}
	return def
}

// listField reads a sequence from an untrusted map. Non-list input coerces to
// an empty sequence so wrong-shaped types never propagate downstream.
func listField(raw map[string]any, key string) []any {
	if raw != nil {
		if v, ok := raw[key].([]any); ok {
			return v
		}
	}
	return []any{}
}

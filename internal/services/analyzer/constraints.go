package analyzer

import (
	"regexp"
	"strings"

	"github.com/ternarybob/scribeflow/internal/models"
)

// NoTextTerms are concepts the downstream image model must never be asked to
// render: diffusion-style generators are weak at text, so words and symbols
// are overlaid later by the templates instead.
var NoTextTerms = []string{"text", "numbers", "letters", "labels", "captions", "equations", "logos", "watermarks"}

var (
	textPhraseRegex = regexp.MustCompile(`(?i)\b(with|include|show|add)\s+(visible\s+)?(text|numbers?|letters?|labels?|captions?|equations?)\b`)
	labeledRegex    = regexp.MustCompile(`(?i)\b(labeled|labelled)\b`)
)

// stripTextGenerationPhrases rewrites description text so it never asks the
// image model to render words, numbers, or labels inside imagery.
func stripTextGenerationPhrases(text string) string {
	t := strings.TrimSpace(text)
	t = textPhraseRegex.ReplaceAllString(t, "with visual symbols only")
	t = labeledRegex.ReplaceAllString(t, "symbol-marked")
	return t
}

// EnforceRenderingConstraints post-processes an analysis result so every
// image-bearing payload carries explicit no-baked-text constraints and
// scrubbed descriptions. Safe on any input shape; non-map payloads are
// replaced with empty maps.
func EnforceRenderingConstraints(analysis *models.AnalysisResult) *models.AnalysisResult {
	if analysis == nil {
		return nil
	}

	for i := range analysis.VisualManifest {
		entry := &analysis.VisualManifest[i]
		payload := entry.DataPayload
		if payload == nil {
			payload = map[string]any{}
		}

		for _, key := range []string{"image_description", "description"} {
			if v, ok := payload[key].(string); ok {
				payload[key] = stripTextGenerationPhrases(v)
			}
		}

		kind := strings.ToLower(entry.TemplateType)
		if kind == string(models.TemplateStoryImage) || kind == string(models.TemplateBentoGrid) || kind == string(models.TemplateStepJourney) {
			payload["rendering_constraints"] = map[string]any{
				"no_baked_text":           true,
				"no_numbers_or_equations": true,
				"do_not_include":          append([]string{}, NoTextTerms...),
			}
			payload["negative_prompt_terms"] = mergeNegativeTerms(payload["negative_prompt_terms"])
		}

		for _, key := range []string{"items", "steps", "points_of_interest"} {
			if seq, ok := payload[key].([]any); ok {
				for _, element := range seq {
					obj, ok := element.(map[string]any)
					if !ok {
						continue
					}
					if v, ok := obj["image_description"].(string); ok {
						obj["image_description"] = stripTextGenerationPhrases(v)
					}
					obj["no_baked_text"] = true
				}
			}
		}

		entry.DataPayload = payload
	}

	return analysis
}

// mergeNegativeTerms appends the no-text terms to any existing negative
// prompt terms, deduplicating while preserving first-seen order.
func mergeNegativeTerms(existing any) []any {
	merged := make([]any, 0, len(NoTextTerms))
	seen := map[string]bool{}

	appendTerm := func(term any) {
		s, ok := term.(string)
		if !ok || seen[s] {
			return
		}
		seen[s] = true
		merged = append(merged, s)
	}

	if seq, ok := existing.([]any); ok {
		for _, term := range seq {
			appendTerm(term)
		}
	}
	for _, term := range NoTextTerms {
		appendTerm(term)
	}

	return merged
}

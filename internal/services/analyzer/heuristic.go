package analyzer

import (
	"sort"
	"strings"

	"github.com/ternarybob/scribeflow/internal/models"
)

const minSentenceLength = 25

// connectiveKeywords signal high information density when deciding which
// sentences deserve a visual.
var connectiveKeywords = []string{"because", "therefore", "however", "process", "system"}

var versusKeywords = []string{"versus", "vs", "compared", "difference", "tradeoff"}
var journeyKeywords = []string{"first", "second", "third", "step", "process", "workflow"}
var bentoKeywords = []string{"framework", "components", "dimensions", "pillars"}

const heuristicRationale = "High information density; a visual can reduce cognitive load and improve signaling."

// heuristicAnalyze is the deterministic rule-based analyzer used whenever no
// LLM provider is reachable. It selects the longest, most connective-dense
// sentences as anchors and assigns templates and a palette by keyword match.
func heuristicAnalyze(markdown string, pageEstimate int, maxPerPage int) *models.AnalysisResult {
	if maxPerPage <= 0 {
		maxPerPage = 2
	}
	if pageEstimate < 1 {
		pageEstimate = 1
	}

	sentences := splitSentences(markdown)

	limit := maxPerPage * pageEstimate
	if limit < 1 {
		limit = 1
	}
	if limit > len(sentences) {
		limit = len(sentences)
	}

	ranked := make([]string, len(sentences))
	copy(ranked, sentences)
	sort.SliceStable(ranked, func(i, j int) bool {
		if len(ranked[i]) != len(ranked[j]) {
			return len(ranked[i]) > len(ranked[j])
		}
		return keywordCount(ranked[i]) > keywordCount(ranked[j])
	})
	ranked = ranked[:limit]

	manifest := make([]models.ManifestEntry, 0, len(ranked))
	for _, sentence := range ranked {
		manifest = append(manifest, models.ManifestEntry{
			AnchorSentence: sentence,
			Rationale:      heuristicRationale,
			TemplateType:   string(templateFor(sentence)),
			DataPayload: map[string]any{
				"source_excerpt": sentence,
				"key_points":     keyPoints(sentence),
			},
		})
	}

	return &models.AnalysisResult{
		VisualManifest: manifest,
		StyleGuide:     heuristicStyle(markdown),
	}
}

// splitSentences breaks markdown into sentences on terminal punctuation
// followed by whitespace, keeping only sentences long enough to be
// meaningful anchors.
func splitSentences(markdown string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(markdown)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])
		if isTerminal(runes[i]) && (i+1 >= len(runes) || isSpace(runes[i+1])) {
			appendSentence(&sentences, current.String())
			current.Reset()
		}
	}
	appendSentence(&sentences, current.String())

	return sentences
}

func appendSentence(sentences *[]string, raw string) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) > minSentenceLength {
		*sentences = append(*sentences, trimmed)
	}
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func keywordCount(sentence string) int {
	lower := strings.ToLower(sentence)
	count := 0
	for _, keyword := range connectiveKeywords {
		if strings.Contains(lower, keyword) {
			count++
		}
	}
	return count
}

// templateFor assigns a visualization kind to a sentence by keyword class.
func templateFor(sentence string) models.TemplateType {
	lower := strings.ToLower(sentence)

	for _, keyword := range versusKeywords {
		if strings.Contains(lower, keyword) {
			return models.TemplateVersusSplit
		}
	}

	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	for _, word := range words {
		for _, keyword := range journeyKeywords {
			if word == keyword {
				return models.TemplateStepJourney
			}
		}
	}

	for _, keyword := range bentoKeywords {
		if strings.Contains(lower, keyword) {
			return models.TemplateBentoGrid
		}
	}

	return models.TemplateStoryImage
}

// keyPoints splits a sentence on clause punctuation into up to four points.
func keyPoints(sentence string) []any {
	parts := strings.FieldsFunc(sentence, func(r rune) bool {
		return r == ',' || r == ':' || r == ';'
	})

	points := make([]any, 0, 4)
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			points = append(points, trimmed)
			if len(points) == 4 {
				break
			}
		}
	}
	return points
}

// heuristicStyle assigns a palette by topical keyword match.
func heuristicStyle(markdown string) models.StyleGuide {
	lower := strings.ToLower(markdown)

	for _, keyword := range []string{"health", "wellness", "mindful", "care"} {
		if strings.Contains(lower, keyword) {
			return models.StyleGuide{
				Palette: []string{"#E6F4EA", "#B7DCC8", "#7DB69E", "#3E7C67", "#2F5144", "#F6FBF8"},
				Mood:    "Serene Wellness",
			}
		}
	}

	for _, keyword := range []string{"architecture", "system", "api", "technical"} {
		if strings.Contains(lower, keyword) {
			return models.StyleGuide{
				Palette: []string{"#0B1F3A", "#1F4B99", "#3E7CB1", "#A7C6ED", "#EAF2FF", "#5B6B7A"},
				Mood:    "Modern Technical",
			}
		}
	}

	return models.StyleGuide{
		Palette: []string{"#1F2937", "#3B82F6", "#60A5FA", "#D1E5FF", "#F8FAFC", "#0F766E"},
		Mood:    "Focused Professional",
	}
}

package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribeflow/internal/common"
	"github.com/ternarybob/scribeflow/internal/interfaces"
	"github.com/ternarybob/scribeflow/internal/models"
)

const analyzerSystemPrompt = `You are a Senior Visual Pedagogy Expert.
Analyze markdown curriculum and identify high-cognitive-load or abstract sections
that benefit from visuals using Dual Coding Theory and the Signaling Principle.
Keep recommendations tasteful: limit to 1-2 high-impact artifacts per page.
Critical image-generation constraint:
- The image model is weak at text rendering. Never ask it to render words, numbers, labels, equations, or logos inside imagery.
- Always describe scenes/symbols/composition only; text will be overlaid later by templates.
Return only JSON with:
{
  "visual_manifest": [
    {
      "anchor_sentence": "... exact sentence from the source ...",
      "rationale": "... pedagogical reason ...",
      "template_type": "versus_split|bento_grid|step_journey|story_image",
      "data_payload": { ... template-ready structured data ... }
    }
  ],
  "style_guide": {
    "palette": ["#......", "#......", "#......", "#......", "#......", "#......"],
    "mood": "..."
  }
}`

const maxPromptMarkdown = 12000

// analysisSchema validates the LLM's JSON before it is accepted. Output that
// fails validation is discarded in favor of the heuristic fallback rather
// than propagated downstream.
type analysisSchema struct {
	VisualManifest []manifestEntrySchema `json:"visual_manifest" validate:"required,min=1,dive"`
	StyleGuide     styleGuideSchema      `json:"style_guide"`
}

type manifestEntrySchema struct {
	AnchorSentence string         `json:"anchor_sentence" validate:"required"`
	Rationale      string         `json:"rationale"`
	TemplateType   string         `json:"template_type"`
	DataPayload    map[string]any `json:"data_payload"`
}

type styleGuideSchema struct {
	Palette []string `json:"palette" validate:"max=12,dive,max=32"`
	Mood    string   `json:"mood"`
}

// Service analyzes markdown into a visual manifest and style guide. A nil
// provider, a provider error, or unusable output all degrade to the
// deterministic heuristic analyzer; analysis never blocks the pipeline.
type Service struct {
	provider   Provider
	config     *common.AnalyzerConfig
	logger     arbor.ILogger
	validate   *validator.Validate
	timeout    time.Duration
	maxVisuals int
}

// Compile-time assertion
var _ interfaces.AnalyzerService = (*Service)(nil)

// NewService creates a new analyzer service. The provider may be nil, in
// which case every analysis uses the heuristic path.
func NewService(provider Provider, config *common.AnalyzerConfig, logger arbor.ILogger) *Service {
	timeout := 2 * time.Minute
	if config.Timeout != "" {
		if parsed, err := time.ParseDuration(config.Timeout); err == nil {
			timeout = parsed
		}
	}

	maxVisuals := config.MaxVisuals
	if maxVisuals <= 0 {
		maxVisuals = 2
	}

	return &Service{
		provider:   provider,
		config:     config,
		logger:     logger,
		validate:   validator.New(),
		timeout:    timeout,
		maxVisuals: maxVisuals,
	}
}

// Analyze produces the visual manifest and style guide for the markdown.
func (s *Service) Analyze(ctx context.Context, markdown string, pageEstimate int) (*models.AnalysisResult, error) {
	if s.provider == nil {
		s.logger.Debug().Msg("No analyzer provider configured, using heuristic analysis")
		return EnforceRenderingConstraints(heuristicAnalyze(markdown, pageEstimate, s.maxVisuals)), nil
	}

	result, err := s.analyzeWithProvider(ctx, markdown, pageEstimate)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("provider", string(s.provider.GetProviderType())).
			Msg("LLM analysis failed, falling back to heuristic analysis")
		return EnforceRenderingConstraints(heuristicAnalyze(markdown, pageEstimate, s.maxVisuals)), nil
	}

	return EnforceRenderingConstraints(result), nil
}

func (s *Service) analyzeWithProvider(ctx context.Context, markdown string, pageEstimate int) (*models.AnalysisResult, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Estimated pages: %d\nProduce tasteful recommendations only.\n\nMarkdown:\n%s",
		pageEstimate,
		truncateRunes(markdown, maxPromptMarkdown),
	)

	response, err := s.provider.GenerateContent(timeoutCtx, &ContentRequest{
		System:      analyzerSystemPrompt,
		Prompt:      prompt,
		Temperature: s.config.Temperature,
		MaxTokens:   s.config.MaxTokens,
		JSONOutput:  true,
	})
	if err != nil {
		return nil, err
	}

	parsed, err := parseAnalysisJSON(response.Text)
	if err != nil {
		return nil, err
	}

	if err := s.validate.Struct(parsed); err != nil {
		return nil, fmt.Errorf("analysis output failed validation: %w", err)
	}

	manifest := make([]models.ManifestEntry, 0, len(parsed.VisualManifest))
	for _, entry := range parsed.VisualManifest {
		manifest = append(manifest, models.ManifestEntry{
			AnchorSentence: entry.AnchorSentence,
			Rationale:      entry.Rationale,
			TemplateType:   entry.TemplateType,
			DataPayload:    entry.DataPayload,
		})
	}

	s.logger.Debug().
		Str("provider", string(response.Provider)).
		Str("model", response.Model).
		Int("manifest_entries", len(manifest)).
		Msg("LLM analysis completed")

	return &models.AnalysisResult{
		VisualManifest: manifest,
		StyleGuide: models.StyleGuide{
			Palette: parsed.StyleGuide.Palette,
			Mood:    parsed.StyleGuide.Mood,
		},
	}, nil
}

// parseAnalysisJSON decodes the model's JSON response, tolerating markdown
// code fences around the document.
func parseAnalysisJSON(text string) (*analysisSchema, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var parsed analysisSchema
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("analysis output is not valid JSON: %w", err)
	}
	return &parsed, nil
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribeflow/internal/common"
	"github.com/ternarybob/scribeflow/internal/interfaces"
	"github.com/ternarybob/scribeflow/internal/models"
	"github.com/ternarybob/scribeflow/internal/services/analyzer"
)

const draftSystemPrompt = `You are a curriculum writer. Return only markdown.
Expand the base markdown into a full, scannable draft with an informative, natural tone.
Requirements:
- Expand all existing sections with richer detail.
- Use bolding and bullets for scanability.
- Insert placeholders exactly as:
  [VISUAL INSERT: {template type} - {rationale from the manifest}]
  Graphic Details: include the manifest data_payload and the style guide palette/mood notes.
- Anchor each placeholder near the sentence the manifest entry references.`

const maxDraftMarkdown = 18000

var paragraphSplitRegex = regexp.MustCompile(`\n\s*\n`)

// Service expands source markdown into a longer draft with visual-insert
// placeholders. With a provider configured the expansion is LLM-written;
// without one the placeholders are inserted deterministically after the
// paragraph containing each manifest entry's anchor sentence.
type Service struct {
	provider analyzer.Provider
	config   *common.DraftConfig
	logger   arbor.ILogger
	timeout  time.Duration
}

// Compile-time interface assertion
var _ interfaces.DraftService = (*Service)(nil)

// NewService creates a new draft service. The provider may be nil.
func NewService(provider analyzer.Provider, config *common.DraftConfig, logger arbor.ILogger) *Service {
	timeout := 3 * time.Minute
	if config != nil && config.Timeout != "" {
		if parsed, err := time.ParseDuration(config.Timeout); err == nil {
			timeout = parsed
		}
	}

	return &Service{
		provider: provider,
		config:   config,
		logger:   logger,
		timeout:  timeout,
	}
}

// Expand produces the draft markdown.
func (s *Service) Expand(ctx context.Context, markdown string, manifest []models.ManifestEntry, style models.StyleGuide) (string, error) {
	if s.provider == nil {
		s.logger.Debug().Msg("No draft provider configured, inserting placeholders deterministically")
		return insertPlaceholders(markdown, manifest, style), nil
	}

	expanded, err := s.expandWithProvider(ctx, markdown, manifest, style)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("LLM draft expansion failed, inserting placeholders deterministically")
		return insertPlaceholders(markdown, manifest, style), nil
	}
	return expanded, nil
}

func (s *Service) expandWithProvider(ctx context.Context, markdown string, manifest []models.ManifestEntry, style models.StyleGuide) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	manifestJSON, err := json.Marshal(manifest)
	if err != nil {
		return "", fmt.Errorf("failed to serialize manifest: %w", err)
	}
	styleJSON, err := json.Marshal(style)
	if err != nil {
		return "", fmt.Errorf("failed to serialize style guide: %w", err)
	}

	prompt := fmt.Sprintf(
		"Base markdown:\n%s\n\nVisual manifest:\n%s\n\nStyle guide:\n%s",
		truncateRunes(markdown, maxDraftMarkdown),
		manifestJSON,
		styleJSON,
	)

	temperature := float32(0.5)
	if s.config != nil && s.config.Temperature > 0 {
		temperature = s.config.Temperature
	}

	response, err := s.provider.GenerateContent(timeoutCtx, &analyzer.ContentRequest{
		System:      draftSystemPrompt,
		Prompt:      prompt,
		Temperature: temperature,
		MaxTokens:   s.maxTokens(),
	})
	if err != nil {
		return "", err
	}

	expanded := strings.TrimSpace(response.Text)
	if expanded == "" {
		return "", fmt.Errorf("draft expansion returned empty output")
	}

	s.logger.Debug().
		Str("model", response.Model).
		Int("draft_length", len(expanded)).
		Msg("LLM draft expansion completed")

	return expanded, nil
}

func (s *Service) maxTokens() int {
	if s.config != nil && s.config.MaxTokens > 0 {
		return s.config.MaxTokens
	}
	return 8192
}

// insertPlaceholders inserts a visual-insert block after the paragraph
// containing each entry's anchor sentence. Entries whose anchor matches no
// paragraph are appended at the end, so every manifest entry appears in the
// draft exactly once.
func insertPlaceholders(markdown string, manifest []models.ManifestEntry, style models.StyleGuide) string {
	paragraphs := splitParagraphs(markdown)

	inserts := make([][]string, len(paragraphs))
	var unmatched []string

	for _, entry := range manifest {
		block := placeholderBlock(entry, style)
		anchor := strings.TrimSpace(entry.AnchorSentence)

		matched := false
		if anchor != "" {
			for i, paragraph := range paragraphs {
				if strings.Contains(paragraph, anchor) {
					inserts[i] = append(inserts[i], block)
					matched = true
					break
				}
			}
		}
		if !matched {
			unmatched = append(unmatched, block)
		}
	}

	var out []string
	for i, paragraph := range paragraphs {
		out = append(out, paragraph)
		out = append(out, inserts[i]...)
	}
	out = append(out, unmatched...)

	return strings.Join(out, "\n\n")
}

// placeholderBlock formats a single visual-insert block.
func placeholderBlock(entry models.ManifestEntry, style models.StyleGuide) string {
	templateType := entry.TemplateType
	if templateType == "" {
		templateType = string(models.TemplateStoryImage)
	}
	rationale := entry.Rationale
	if rationale == "" {
		rationale = "visual support"
	}

	payloadJSON, err := json.Marshal(entry.DataPayload)
	if err != nil || entry.DataPayload == nil {
		payloadJSON = []byte("{}")
	}
	paletteJSON, err := json.Marshal(style.Palette)
	if err != nil || style.Palette == nil {
		paletteJSON = []byte("[]")
	}

	return fmt.Sprintf(
		"[VISUAL INSERT: %s - %s]\nGraphic Details: data_payload=%s; palette=%s; mood=%s",
		templateType, rationale, payloadJSON, paletteJSON, style.Mood,
	)
}

func splitParagraphs(markdown string) []string {
	normalized := strings.ReplaceAll(markdown, "\r\n", "\n")
	parts := paragraphSplitRegex.Split(normalized, -1)

	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

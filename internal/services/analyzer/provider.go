package analyzer

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribeflow/internal/common"
)

// ProviderType represents the AI provider type
type ProviderType string

const (
	// ProviderClaude uses Anthropic Claude API
	ProviderClaude ProviderType = "claude"
	// ProviderGemini uses Google Gemini API
	ProviderGemini ProviderType = "gemini"
	// ProviderHeuristic uses the rule-based analyzer only (no network)
	ProviderHeuristic ProviderType = "heuristic"
)

// ContentRequest represents a provider-agnostic content generation request
type ContentRequest struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
	JSONOutput  bool // Request structured JSON output where the provider supports it
}

// ContentResponse represents a provider-agnostic content generation response
type ContentResponse struct {
	Text     string
	Provider ProviderType
	Model    string
}

// Provider defines the interface for AI content generation
type Provider interface {
	GenerateContent(ctx context.Context, request *ContentRequest) (*ContentResponse, error)
	GetProviderType() ProviderType
	Close() error
}

// NewProvider creates the configured provider. Returns (nil, nil) for the
// heuristic provider or when no API key is available: a nil provider tells
// the analyzer to use the rule-based fallback rather than fail the run.
func NewProvider(config *common.AnalyzerConfig, logger arbor.ILogger) (Provider, error) {
	switch ProviderType(config.Provider) {
	case ProviderHeuristic:
		return nil, nil
	case ProviderGemini:
		if config.APIKey == "" {
			logger.Warn().Msg("No Gemini API key configured, analyzer will use heuristic fallback")
			return nil, nil
		}
		return newGeminiProvider(config, logger)
	case ProviderClaude, "":
		if config.APIKey == "" {
			logger.Warn().Msg("No Anthropic API key configured, analyzer will use heuristic fallback")
			return nil, nil
		}
		return newClaudeProvider(config, logger)
	default:
		return nil, fmt.Errorf("unknown analyzer provider %q (supported: claude, gemini, heuristic)", config.Provider)
	}
}

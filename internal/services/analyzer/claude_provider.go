package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribeflow/internal/common"
)

const defaultClaudeModel = "claude-sonnet-4-20250514"

// claudeProvider implements Provider using the Anthropic Claude API.
type claudeProvider struct {
	client anthropic.Client
	config *common.AnalyzerConfig
	model  string
	logger arbor.ILogger
}

func newClaudeProvider(config *common.AnalyzerConfig, logger arbor.ILogger) (*claudeProvider, error) {
	model := config.Model
	if model == "" {
		model = defaultClaudeModel
	}

	client := anthropic.NewClient(
		option.WithAPIKey(config.APIKey),
	)

	logger.Debug().
		Str("model", model).
		Msg("Claude analyzer provider initialized")

	return &claudeProvider{
		client: client,
		config: config,
		model:  model,
		logger: logger,
	}, nil
}

func (p *claudeProvider) GenerateContent(ctx context.Context, request *ContentRequest) (*ContentResponse, error) {
	maxTokens := request.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 8192
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(request.Prompt)),
		},
	}

	if request.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(request.Temperature))
	}

	if request.System != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: request.System},
		}
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("Claude API call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == anthropic.ContentBlockTypeText {
			text.WriteString(block.Text)
		}
	}

	if text.Len() == 0 {
		return nil, fmt.Errorf("no response generated from Claude API")
	}

	return &ContentResponse{
		Text:     text.String(),
		Provider: ProviderClaude,
		Model:    p.model,
	}, nil
}

func (p *claudeProvider) GetProviderType() ProviderType {
	return ProviderClaude
}

func (p *claudeProvider) Close() error {
	return nil
}

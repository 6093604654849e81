package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribeflow/internal/common"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// geminiProvider implements Provider using the Google Gemini API.
type geminiProvider struct {
	client *genai.Client
	config *common.AnalyzerConfig
	model  string
	logger arbor.ILogger
}

func newGeminiProvider(config *common.AnalyzerConfig, logger arbor.ILogger) (*geminiProvider, error) {
	model := config.Model
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	logger.Debug().
		Str("model", model).
		Msg("Gemini analyzer provider initialized")

	return &geminiProvider{
		client: client,
		config: config,
		model:  model,
		logger: logger,
	}, nil
}

func (p *geminiProvider) GenerateContent(ctx context.Context, request *ContentRequest) (*ContentResponse, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(request.Temperature),
	}

	if request.System != "" {
		config.SystemInstruction = genai.NewContentFromText(request.System, genai.RoleUser)
	}

	if request.JSONOutput {
		config.ResponseMIMEType = "application/json"
	}

	contents := []*genai.Content{
		genai.NewContentFromText(request.Prompt, genai.RoleUser),
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("Gemini API call failed: %w", err)
	}

	var text strings.Builder
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			if text.Len() > 0 {
				break
			}
		}
	}

	if text.Len() == 0 {
		return nil, fmt.Errorf("no response generated from Gemini API")
	}

	return &ContentResponse{
		Text:     text.String(),
		Provider: ProviderGemini,
		Model:    p.model,
	}, nil
}

func (p *geminiProvider) GetProviderType() ProviderType {
	return ProviderGemini
}

func (p *geminiProvider) Close() error {
	p.client = nil
	return nil
}

package draft

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribeflow/internal/common"
	"github.com/ternarybob/scribeflow/internal/models"
	"github.com/ternarybob/scribeflow/internal/services/analyzer"
)

type fakeProvider struct {
	response *analyzer.ContentResponse
	err      error
	requests []*analyzer.ContentRequest
}

func (f *fakeProvider) GenerateContent(_ context.Context, request *analyzer.ContentRequest) (*analyzer.ContentResponse, error) {
	f.requests = append(f.requests, request)
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeProvider) GetProviderType() analyzer.ProviderType { return analyzer.ProviderClaude }
func (f *fakeProvider) Close() error                           { return nil }

const draftMarkdown = `# Knots

The Palomar knot doubles the line through the eye for extra friction.

## Lakes

Lake Fork is managed as a trophy bass fishery.`

func testManifest() []models.ManifestEntry {
	return []models.ManifestEntry{
		{
			AnchorSentence: "The Palomar knot doubles the line through the eye for extra friction.",
			Rationale:      "Knot steps benefit from a sequence visual.",
			TemplateType:   "step_journey",
			DataPayload:    map[string]any{"title": "Tying the Palomar"},
		},
		{
			AnchorSentence: "This sentence appears nowhere in the document.",
			Rationale:      "Scene setting.",
			TemplateType:   "story_image",
		},
	}
}

func testStyle() models.StyleGuide {
	return models.StyleGuide{Palette: []string{"#00425A", "#1F8A7E"}, Mood: "Focused Professional"}
}

func TestExpand_NilProviderInsertsPlaceholders(t *testing.T) {
	service := NewService(nil, &common.DraftConfig{}, arbor.NewLogger())

	draft, err := service.Expand(context.Background(), draftMarkdown, testManifest(), testStyle())

	require.NoError(t, err)
	assert.Contains(t, draft, "[VISUAL INSERT: step_journey - Knot steps benefit from a sequence visual.]")
	assert.Contains(t, draft, "[VISUAL INSERT: story_image - Scene setting.]")
	assert.Contains(t, draft, `data_payload={"title":"Tying the Palomar"}`)
	assert.Contains(t, draft, "mood=Focused Professional")
}

func TestExpand_PlaceholderFollowsAnchorParagraph(t *testing.T) {
	service := NewService(nil, &common.DraftConfig{}, arbor.NewLogger())

	draft, err := service.Expand(context.Background(), draftMarkdown, testManifest(), testStyle())

	require.NoError(t, err)
	anchorIdx := strings.Index(draft, "doubles the line through the eye")
	insertIdx := strings.Index(draft, "[VISUAL INSERT: step_journey")
	lakesIdx := strings.Index(draft, "## Lakes")
	require.True(t, anchorIdx >= 0 && insertIdx >= 0 && lakesIdx >= 0)
	assert.Greater(t, insertIdx, anchorIdx, "placeholder should follow its anchor paragraph")
	assert.Less(t, insertIdx, lakesIdx, "placeholder should precede the next section")
}

func TestExpand_UnmatchedAnchorsAppendedAtEnd(t *testing.T) {
	service := NewService(nil, &common.DraftConfig{}, arbor.NewLogger())

	draft, err := service.Expand(context.Background(), draftMarkdown, testManifest(), testStyle())

	require.NoError(t, err)
	storyIdx := strings.Index(draft, "[VISUAL INSERT: story_image")
	lakeIdx := strings.Index(draft, "Lake Fork")
	assert.Greater(t, storyIdx, lakeIdx, "unmatched entry should be appended after the document body")
}

func TestExpand_DefaultsForEmptyEntryFields(t *testing.T) {
	service := NewService(nil, &common.DraftConfig{}, arbor.NewLogger())
	manifest := []models.ManifestEntry{{AnchorSentence: "Lake Fork is managed as a trophy bass fishery."}}

	draft, err := service.Expand(context.Background(), draftMarkdown, manifest, models.StyleGuide{})

	require.NoError(t, err)
	assert.Contains(t, draft, "[VISUAL INSERT: story_image - visual support]")
	assert.Contains(t, draft, "data_payload={}")
	assert.Contains(t, draft, "palette=[]")
}

func TestExpand_ProviderOutputReturned(t *testing.T) {
	provider := &fakeProvider{response: &analyzer.ContentResponse{Text: "# Expanded Draft\n\nRicher detail here."}}
	service := NewService(provider, &common.DraftConfig{Temperature: 0.4, MaxTokens: 2048, Timeout: "5s"}, arbor.NewLogger())

	draft, err := service.Expand(context.Background(), draftMarkdown, testManifest(), testStyle())

	require.NoError(t, err)
	assert.Equal(t, "# Expanded Draft\n\nRicher detail here.", draft)
	require.Len(t, provider.requests, 1)
	request := provider.requests[0]
	assert.Contains(t, request.Prompt, "Base markdown:")
	assert.Contains(t, request.Prompt, "Visual manifest:")
	assert.InDelta(t, 0.4, request.Temperature, 0.001)
	assert.Equal(t, 2048, request.MaxTokens)
}

func TestExpand_ProviderErrorFallsBack(t *testing.T) {
	provider := &fakeProvider{err: errors.New("overloaded")}
	service := NewService(provider, &common.DraftConfig{}, arbor.NewLogger())

	draft, err := service.Expand(context.Background(), draftMarkdown, testManifest(), testStyle())

	require.NoError(t, err)
	assert.Contains(t, draft, "[VISUAL INSERT:")
}

func TestExpand_ProviderEmptyOutputFallsBack(t *testing.T) {
	provider := &fakeProvider{response: &analyzer.ContentResponse{Text: "   "}}
	service := NewService(provider, &common.DraftConfig{}, arbor.NewLogger())

	draft, err := service.Expand(context.Background(), draftMarkdown, testManifest(), testStyle())

	require.NoError(t, err)
	assert.Contains(t, draft, "[VISUAL INSERT:")
}

func TestInsertPlaceholders_EmptyDocument(t *testing.T) {
	draft := insertPlaceholders("", testManifest(), testStyle())

	assert.Contains(t, draft, "[VISUAL INSERT: step_journey")
	assert.Contains(t, draft, "[VISUAL INSERT: story_image")
}

package compiler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribeflow/internal/models"
)

func createTestLogger() arbor.ILogger {
	return arbor.NewLogger()
}

func sampleManifest() []models.ManifestEntry {
	return []models.ManifestEntry{
		{
			AnchorSentence: "A knot is a controlled friction system.",
			Rationale:      "Abstract physics benefits from a visual.",
			TemplateType:   "step_journey",
			DataPayload:    map[string]any{"title": "Knot Mechanics", "steps": []any{"wrap", "tuck", "cinch"}},
		},
		{
			AnchorSentence: "Braid is slick, so knots that rely on single friction points can slip.",
			Rationale:      "Comparison of line types.",
			TemplateType:   "versus_split",
			DataPayload:    map[string]any{"left_column_title": "Mono", "right_column_title": "Braid"},
		},
		{
			AnchorSentence: "",
			Rationale:      "",
			TemplateType:   "carousel_3d",
			DataPayload:    nil,
		},
	}
}

func TestCompile_PreservesCountAndOrder(t *testing.T) {
	svc := NewService(createTestLogger())
	manifest := sampleManifest()

	compiled := svc.Compile(manifest, models.StyleGuide{}, "lesson-1")

	require.Len(t, compiled, len(manifest))
	assert.Equal(t, "lesson-1-viz-1", compiled[0].VisualizationID)
	assert.Equal(t, "lesson-1-viz-2", compiled[1].VisualizationID)
	assert.Equal(t, "lesson-1-viz-3", compiled[2].VisualizationID)
	assert.Equal(t, models.TemplateStepJourney, compiled[0].Type)
	assert.Equal(t, models.TemplateVersusSplit, compiled[1].Type)
	// Unknown template label falls back to story_image, entry is not dropped.
	assert.Equal(t, models.TemplateStoryImage, compiled[2].Type)
}

func TestCompile_UniqueIDs(t *testing.T) {
	svc := NewService(createTestLogger())
	compiled := svc.Compile(sampleManifest(), models.StyleGuide{}, "L7")

	seen := map[string]bool{}
	for _, viz := range compiled {
		assert.False(t, seen[viz.VisualizationID], "duplicate id %s", viz.VisualizationID)
		seen[viz.VisualizationID] = true
	}
}

func TestCompile_SharedStyleObject(t *testing.T) {
	svc := NewService(createTestLogger())
	guide := models.StyleGuide{Palette: []string{"#0B1F3A", "#1F4B99"}, Mood: "Modern Technical"}

	compiled := svc.Compile(sampleManifest(), guide, "lesson-1")

	require.NotEmpty(t, compiled)
	for _, viz := range compiled[1:] {
		assert.Equal(t, compiled[0].GlobalStyleGuide, viz.GlobalStyleGuide)
	}
	assert.Equal(t, "Modern Technical", compiled[0].GlobalStyleGuide.Mood)
}

func TestCompile_AnchorAndRationaleCarriedVerbatim(t *testing.T) {
	svc := NewService(createTestLogger())
	compiled := svc.Compile(sampleManifest(), models.StyleGuide{}, "lesson-1")

	assert.Equal(t, "A knot is a controlled friction system.", compiled[0].AnchorSentence)
	assert.Equal(t, "Comparison of line types.", compiled[1].Rationale)
	// Absent values surface as empty strings, never null.
	assert.Equal(t, "", compiled[2].AnchorSentence)
	assert.Equal(t, "", compiled[2].Rationale)
}

func TestCompile_Idempotent(t *testing.T) {
	svc := NewService(createTestLogger())
	guide := models.StyleGuide{Palette: []string{"#A1A1A1"}, Mood: "calm"}

	first, err := json.Marshal(svc.Compile(sampleManifest(), guide, "lesson-1"))
	require.NoError(t, err)
	second, err := json.Marshal(svc.Compile(sampleManifest(), guide, "lesson-1"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompile_EmptyManifest(t *testing.T) {
	svc := NewService(createTestLogger())
	compiled := svc.Compile(nil, models.StyleGuide{}, "lesson-1")
	assert.Empty(t, compiled)
	assert.NotNil(t, compiled)
}

// Scenario from the review checklist: one malformed entry, empty palette.
func TestCompile_MalformedEntryFullyDefaulted(t *testing.T) {
	svc := NewService(createTestLogger())
	manifest := []models.ManifestEntry{{TemplateType: "unknown_xyz", DataPayload: map[string]any{}}}

	compiled := svc.Compile(manifest, models.StyleGuide{Palette: []string{}, Mood: "calm"}, "L1")

	require.Len(t, compiled, 1)
	viz := compiled[0]
	assert.Equal(t, "L1-viz-1", viz.VisualizationID)
	assert.Equal(t, models.TemplateStoryImage, viz.Type)

	payload, ok := viz.Payload.(models.StoryImagePayload)
	require.True(t, ok)
	assert.Equal(t, "Context image", payload.ImageSpecs.Description)
	assert.Empty(t, payload.ImageSpecs.PointsOfInterest)

	assert.Equal(t, "calm", viz.GlobalStyleGuide.Mood)
	assert.Equal(t, defaultPrimary, viz.GlobalStyleGuide.ThemeVars.Primary)
	assert.Equal(t, defaultText, viz.GlobalStyleGuide.ThemeVars.Text)
}

func TestCompileCourse_WrapsLessonID(t *testing.T) {
	svc := NewService(createTestLogger())
	course := svc.CompileCourse(sampleManifest(), models.StyleGuide{}, "course-9")

	assert.Equal(t, "course-9", course.LessonID)
	assert.Len(t, course.Visualizations, 3)
}

func TestCompiledVisualization_JSONRoundTrip(t *testing.T) {
	svc := NewService(createTestLogger())
	compiled := svc.Compile(sampleManifest(), models.StyleGuide{Mood: "calm"}, "lesson-1")

	data, err := json.Marshal(compiled)
	require.NoError(t, err)

	var decoded []models.CompiledVisualization
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, len(compiled))
	assert.Equal(t, compiled[0].Payload, decoded[0].Payload)
	assert.Equal(t, compiled[1].Payload, decoded[1].Payload)
	assert.Equal(t, compiled[2].Payload, decoded[2].Payload)
}

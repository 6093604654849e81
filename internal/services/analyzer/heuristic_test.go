package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/scribeflow/internal/models"
)

func TestSplitSentences_FiltersShortSentences(t *testing.T) {
	markdown := "Too short. This sentence is comfortably long enough to be an anchor. Tiny! " +
		"Another properly sized sentence that carries real information?"

	sentences := splitSentences(markdown)

	require.Len(t, sentences, 2)
	assert.Equal(t, "This sentence is comfortably long enough to be an anchor.", sentences[0])
}

func TestSplitSentences_TrailingSentenceWithoutTerminator(t *testing.T) {
	sentences := splitSentences("A trailing fragment that never ends but is long enough to count")
	require.Len(t, sentences, 1)
}

func TestTemplateFor_KeywordClasses(t *testing.T) {
	cases := []struct {
		sentence string
		want     models.TemplateType
	}{
		{"Mono versus braid is the classic tradeoff.", models.TemplateVersusSplit},
		{"The first step of the workflow is preparation.", models.TemplateStepJourney},
		{"The framework has four components.", models.TemplateBentoGrid},
		{"The lake shimmered under the morning light.", models.TemplateStoryImage},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, templateFor(tc.sentence), tc.sentence)
	}
}

func TestHeuristicAnalyze_LimitScalesWithPages(t *testing.T) {
	markdown := "The system processes documents because accuracy matters greatly here. " +
		"However the process depends on careful validation of each individual stage. " +
		"Therefore every document passes through the pipeline more than a single time. " +
		"The framework balances throughput against latency in a predictable manner. " +
		"Observability is layered on top of the processing system for diagnosis."

	result := heuristicAnalyze(markdown, 1, 2)

	require.NotNil(t, result)
	assert.Len(t, result.VisualManifest, 2)
	for _, entry := range result.VisualManifest {
		assert.NotEmpty(t, entry.AnchorSentence)
		assert.NotEmpty(t, entry.Rationale)
		assert.True(t, models.TemplateType(entry.TemplateType).IsValid())
		assert.Contains(t, entry.DataPayload, "source_excerpt")
		assert.Contains(t, entry.DataPayload, "key_points")
	}
}

func TestHeuristicAnalyze_AtLeastOneEntry(t *testing.T) {
	markdown := "A single long sentence about the architecture of the whole system."
	result := heuristicAnalyze(markdown, 0, 0)
	assert.Len(t, result.VisualManifest, 1)
}

func TestHeuristicAnalyze_Deterministic(t *testing.T) {
	markdown := "The process has several stages because complexity demands structure. " +
		"Therefore the system favors explicit contracts over implicit behavior everywhere."

	first := heuristicAnalyze(markdown, 2, 2)
	second := heuristicAnalyze(markdown, 2, 2)

	assert.Equal(t, first, second)
}

func TestHeuristicStyle_TopicalPalettes(t *testing.T) {
	wellness := heuristicStyle("A guide to mindful wellness and self care.")
	assert.Equal(t, "Serene Wellness", wellness.Mood)

	technical := heuristicStyle("The API architecture of a distributed system.")
	assert.Equal(t, "Modern Technical", technical.Mood)

	fallback := heuristicStyle("A guide to freshwater fishing in Texas.")
	assert.Equal(t, "Focused Professional", fallback.Mood)
	assert.Len(t, fallback.Palette, 6)
}

func TestKeyPoints_CapsAtFour(t *testing.T) {
	points := keyPoints("one, two, three; four: five, six")
	assert.Len(t, points, 4)
	assert.Equal(t, "one", points[0])
}

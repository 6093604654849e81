package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/scribeflow/internal/models"
)

func TestMapTemplateType_SupportedKindsPassThrough(t *testing.T) {
	for _, kind := range []string{"bento_grid", "versus_split", "step_journey", "story_image"} {
		assert.Equal(t, models.TemplateType(kind), MapTemplateType(kind))
	}
}

func TestMapTemplateType_StepsSynonym(t *testing.T) {
	assert.Equal(t, models.TemplateStepJourney, MapTemplateType("steps"))
}

func TestMapTemplateType_UnknownFallsBackToStoryImage(t *testing.T) {
	inputs := []string{"", "unknown_xyz", "STORY_IMAGE", "bento-grid", "carousel", "versus split"}
	for _, raw := range inputs {
		mapped := MapTemplateType(raw)
		assert.Equal(t, models.TemplateStoryImage, mapped, "input %q", raw)
		assert.True(t, mapped.IsValid())
	}
}

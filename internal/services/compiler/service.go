package compiler

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribeflow/internal/common"
	"github.com/ternarybob/scribeflow/internal/interfaces"
	"github.com/ternarybob/scribeflow/internal/models"
)

// Service compiles a sentence-anchored manifest and a style guide into
// strictly-typed visualization payloads. Compilation never fails: malformed
// entries degrade to defaults via the mapper and sanitizer, and a manifest of
// size N always yields N visualizations in manifest order.
type Service struct {
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.CompilerService = (*Service)(nil)

// NewService creates a new compiler service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
	}
}

// Compile produces the ordered compiled visualizations for one run. The
// style object is computed once and attached to every visualization so all
// items in a run share a deep-equal style. IDs derive from the lesson ID and
// the entry's 1-based ordinal, which keeps output byte-stable across runs on
// identical input.
func (s *Service) Compile(manifest []models.ManifestEntry, style models.StyleGuide, lessonID string) []models.CompiledVisualization {
	styleObject := CompileStyle(style)

	compiled := make([]models.CompiledVisualization, 0, len(manifest))
	for i, entry := range manifest {
		kind := MapTemplateType(entry.TemplateType)
		compiled = append(compiled, models.CompiledVisualization{
			VisualizationID:  common.VisualizationID(lessonID, i+1),
			Type:             kind,
			AnchorSentence:   entry.AnchorSentence,
			Rationale:        entry.Rationale,
			Payload:          SanitizePayload(kind, entry.DataPayload),
			GlobalStyleGuide: styleObject,
		})
	}

	s.logger.Debug().
		Str("lesson_id", lessonID).
		Int("manifest_entries", len(manifest)).
		Int("compiled", len(compiled)).
		Msg("Compiled visualization payloads")

	return compiled
}

// CompileCourse wraps Compile output in a course-level document keyed by the
// lesson identifier.
func (s *Service) CompileCourse(manifest []models.ManifestEntry, style models.StyleGuide, lessonID string) models.CourseDocument {
	return models.CourseDocument{
		LessonID:       lessonID,
		Visualizations: s.Compile(manifest, style, lessonID),
	}
}

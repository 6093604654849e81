package interfaces

import "github.com/ternarybob/scribeflow/internal/models"

// CompilerService turns a manifest and style guide into strictly-typed
// compiled visualization payloads. Compilation is total: a manifest of size N
// always yields N visualizations, malformed entries degrade to defaults, and
// output is byte-stable across runs on identical input.
type CompilerService interface {
	// Compile produces the ordered compiled visualizations for one run.
	Compile(manifest []models.ManifestEntry, style models.StyleGuide, lessonID string) []models.CompiledVisualization

	// CompileCourse wraps Compile output in a course-level document.
	CompileCourse(manifest []models.ManifestEntry, style models.StyleGuide, lessonID string) models.CourseDocument
}

package interfaces

import (
	"context"

	"github.com/ternarybob/scribeflow/internal/models"
)

// AnalyzerService produces a sentence-anchored visual manifest and a style
// guide from markdown. Implementations must never block the pipeline on an
// unreachable provider: when the LLM is unavailable or returns unusable
// output, a deterministic rule-based fallback produces a same-shaped result.
type AnalyzerService interface {
	Analyze(ctx context.Context, markdown string, pageEstimate int) (*models.AnalysisResult, error)
}

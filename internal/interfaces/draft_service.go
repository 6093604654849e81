package interfaces

import (
	"context"

	"github.com/ternarybob/scribeflow/internal/models"
)

// DraftService expands markdown into a longer draft with visual-insert
// placeholders anchored to the manifest. Falls back to deterministic
// placeholder insertion when no LLM provider is configured.
type DraftService interface {
	Expand(ctx context.Context, markdown string, manifest []models.ManifestEntry, style models.StyleGuide) (string, error)
}

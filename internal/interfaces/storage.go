package interfaces

import (
	"context"

	"github.com/ternarybob/scribeflow/internal/models"
)

// RunStorage archives broker runs for inspection and replay.
type RunStorage interface {
	SaveRun(ctx context.Context, record *models.RunRecord) error
	GetRun(ctx context.Context, runID string) (*models.RunRecord, error)
	ListRuns(ctx context.Context, limit int) ([]*models.RunRecord, error)
	Close() error
}

package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribeflow/internal/interfaces"
	"github.com/ternarybob/scribeflow/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// RunStorage archives broker runs in Badger
type RunStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.RunStorage = (*RunStorage)(nil)

// NewRunStorage creates a new RunStorage instance
func NewRunStorage(db *BadgerDB, logger arbor.ILogger) *RunStorage {
	return &RunStorage{
		db:     db,
		logger: logger,
	}
}

// SaveRun archives a completed run. CreatedAt is stamped if unset.
func (s *RunStorage) SaveRun(ctx context.Context, record *models.RunRecord) error {
	if record == nil {
		return fmt.Errorf("run record is required")
	}
	if record.RunID == "" {
		return fmt.Errorf("run ID is required")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	if err := s.db.Store().Upsert(record.RunID, record); err != nil {
		return fmt.Errorf("failed to save run %s: %w", record.RunID, err)
	}

	s.logger.Debug().
		Str("run_id", record.RunID).
		Str("lesson_id", record.LessonID).
		Int("success_count", record.SuccessCount).
		Msg("Run archived")

	return nil
}

// GetRun retrieves an archived run by ID.
func (s *RunStorage) GetRun(ctx context.Context, runID string) (*models.RunRecord, error) {
	var record models.RunRecord
	if err := s.db.Store().Get(runID, &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("run not found: %s", runID)
		}
		return nil, fmt.Errorf("failed to get run %s: %w", runID, err)
	}
	return &record, nil
}

// ListRuns returns archived runs, newest first.
func (s *RunStorage) ListRuns(ctx context.Context, limit int) ([]*models.RunRecord, error) {
	query := badgerhold.Where("RunID").Ne("").SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []*models.RunRecord
	if err := s.db.Store().Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return records, nil
}

// Close closes the underlying database.
func (s *RunStorage) Close() error {
	return s.db.Close()
}

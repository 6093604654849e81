package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribeflow/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

func newTestStorage(t *testing.T) *RunStorage {
	t.Helper()

	tmpDir := t.TempDir()
	options := badgerhold.DefaultOptions
	options.Dir = tmpDir
	options.ValueDir = tmpDir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	db := &BadgerDB{store: store}
	return NewRunStorage(db, arbor.NewLogger())
}

func TestRunStorage_SaveAndGet(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	record := &models.RunRecord{
		RunID:          "run_abc",
		LessonID:       "lesson-01",
		Endpoint:       "http://localhost:3000/api/visualizations",
		CompiledJSON:   []byte(`{"lesson_id":"lesson-01","visualizations":[]}`),
		HandshakesJSON: []byte(`[]`),
		SuccessCount:   2,
		TotalCount:     2,
		ElapsedSeconds: 1.5,
	}
	require.NoError(t, storage.SaveRun(ctx, record))
	assert.False(t, record.CreatedAt.IsZero(), "CreatedAt should be stamped on save")

	loaded, err := storage.GetRun(ctx, "run_abc")
	require.NoError(t, err)
	assert.Equal(t, "lesson-01", loaded.LessonID)
	assert.Equal(t, 2, loaded.SuccessCount)
	assert.JSONEq(t, string(record.CompiledJSON), string(loaded.CompiledJSON))
}

func TestRunStorage_GetMissingRun(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.GetRun(context.Background(), "run_unknown")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestRunStorage_SaveValidation(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	assert.Error(t, storage.SaveRun(ctx, nil))
	assert.Error(t, storage.SaveRun(ctx, &models.RunRecord{}))
}

func TestRunStorage_ListRunsNewestFirst(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i, id := range []string{"run_1", "run_2", "run_3"} {
		require.NoError(t, storage.SaveRun(ctx, &models.RunRecord{
			RunID:     id,
			LessonID:  "lesson-01",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	runs, err := storage.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run_3", runs[0].RunID)
	assert.Equal(t, "run_2", runs[1].RunID)
}

package repository

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/garyjia/docsynth/internal/models"
	"github.com/garyjia/docsynth/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupDB(t *testing.T) *database.DB {
	t.Helper()
	logger := zap.NewNop()
	db, err := database.New(database.DefaultConfig(filepath.Join(t.TempDir(), "ledger.db")), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db, logger))
	return db
}

func TestJobRepository(t *testing.T) {
	db := setupDB(t)
	repo := NewJobRepository(db.DB, zap.NewNop())

	job := &models.BatchJob{
		ID:         "job-1",
		Status:     models.BatchStatusQueued,
		Selector:   "all",
		Counts:     map[string]int{"tax-form": 2, "pay-statement": 1},
		OutputRoot: "/tmp/out",
		Seed:       42,
	}
	require.NoError(t, repo.Create(job))
	assert.False(t, job.CreatedAt.IsZero())

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID("job-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, models.BatchStatusQueued, got.Status)
		assert.Equal(t, job.Counts, got.Counts)
		assert.Equal(t, uint64(42), got.Seed)
	})

	t.Run("missing job returns nil", func(t *testing.T) {
		got, err := repo.GetByID("nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("update status", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus("job-1", models.BatchStatusFailed, "no templates"))

		got, err := repo.GetByID("job-1")
		require.NoError(t, err)
		assert.Equal(t, models.BatchStatusFailed, got.Status)
		assert.Equal(t, "no templates", got.Error)
	})

	t.Run("update unknown job", func(t *testing.T) {
		err := repo.UpdateStatus("nope", models.BatchStatusRunning, "")
		assert.ErrorIs(t, err, ErrJobNotFound)
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, repo.Create(&models.BatchJob{
			ID: "job-2", Status: models.BatchStatusQueued, Selector: "tax-form",
			Counts: map[string]int{"tax-form": 1}, OutputRoot: "/tmp/out",
			CreatedAt: time.Now().Add(time.Minute),
		}))

		jobs, err := repo.List(10)
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, "job-2", jobs[0].ID)
	})
}

func TestLedger_RecordsBatchAndDocuments(t *testing.T) {
	db := setupDB(t)
	ledger := NewLedger(db.DB, zap.NewNop()).ForJob("job-9")

	started := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	report := &models.BatchReport{
		BatchID:   "batch-1",
		Class:     models.ClassMiscellaneous,
		OutputDir: "/tmp/out/miscellaneous",
		Requested: 3,
		StartedAt: started,
	}
	require.NoError(t, ledger.BeginBatch(report))

	for i := 1; i <= 2; i++ {
		fields := models.NewFieldMapping().
			Set("document_type", "receipt").
			Set("total", "12.50")
		require.NoError(t, ledger.RecordDocument(report.BatchID, report.Class, &models.DocumentRecord{
			Index:    i,
			FileName: fmt.Sprintf("synthetic_miscellaneous_%04d.jpg", i),
			Path:     "/tmp/out/miscellaneous/x.jpg",
			Template: "receipt_retail.html",
			Subtype:  models.SubtypeReceipt,
			Fields:   fields,
		}))
	}

	report.Succeeded = 2
	report.Failed = 1
	report.Failures = []models.DocumentFailure{{Index: 3, Stage: models.StageRender, Error: "boom"}}
	report.FinishedAt = started.Add(2 * time.Second)
	require.NoError(t, ledger.FinishBatch(report))

	t.Run("batch row", func(t *testing.T) {
		got, err := ledger.Batches().GetByID("batch-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 2, got.Succeeded)
		assert.Equal(t, 1, got.Failed)
		assert.Equal(t, report.Failures, got.Failures)
		assert.True(t, got.FinishedAt.Equal(report.FinishedAt))

		byJob, err := ledger.Batches().ListByJob("job-9")
		require.NoError(t, err)
		assert.Len(t, byJob, 1)
	})

	t.Run("document rows keep field order", func(t *testing.T) {
		docs, err := ledger.Documents().ListByBatch("batch-1")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, 1, docs[0].Index)
		assert.Equal(t, "receipt", docs[0].Subtype)
		assert.Equal(t, `{"document_type":"receipt","total":"12.50"}`, string(docs[0].Fields))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(docs[1].Fields, &decoded))
		assert.Equal(t, "12.50", decoded["total"])
	})

	t.Run("counts by class", func(t *testing.T) {
		counts, err := ledger.Documents().CountByClass()
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"miscellaneous": 2}, counts)
	})

	t.Run("duplicate index is rejected", func(t *testing.T) {
		err := ledger.RecordDocument("batch-1", models.ClassMiscellaneous, &models.DocumentRecord{
			Index: 1, FileName: "dup.jpg", Template: "t.html", Fields: models.NewFieldMapping(),
		})
		assert.Error(t, err)
	})
}

func TestBatchRepository_NilReport(t *testing.T) {
	db := setupDB(t)
	repo := NewBatchRepository(db.DB, zap.NewNop())

	assert.ErrorIs(t, repo.Create("", nil), ErrNilReport)
	assert.ErrorIs(t, repo.Finish(nil), ErrNilReport)
}

package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/garyjia/docsynth/internal/models"
	"go.uber.org/zap"
)

// BatchRepository stores per-class batch reports
type BatchRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBatchRepository creates a new batch repository
func NewBatchRepository(db *sql.DB, logger *zap.Logger) *BatchRepository {
	return &BatchRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores the opening row of a batch
func (r *BatchRepository) Create(jobID string, report *models.BatchReport) error {
	if report == nil {
		return ErrNilReport
	}

	query := `
		INSERT INTO batches (id, job_id, class, output_dir, requested, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		report.BatchID,
		jobID,
		string(report.Class),
		report.OutputDir,
		report.Requested,
		report.StartedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create batch", zap.String("batch_id", report.BatchID), zap.Error(err))
		return fmt.Errorf("failed to create batch: %w", err)
	}
	return nil
}

// Finish stores the final counts and failures of a batch
func (r *BatchRepository) Finish(report *models.BatchReport) error {
	if report == nil {
		return ErrNilReport
	}

	failures := report.Failures
	if failures == nil {
		failures = []models.DocumentFailure{}
	}
	data, err := json.Marshal(failures)
	if err != nil {
		return fmt.Errorf("failed to marshal failures: %w", err)
	}

	query := `
		UPDATE batches
		SET succeeded = ?, failed = ?, failures = ?, finished_at = ?
		WHERE id = ?
	`
	_, err = r.db.Exec(query,
		report.Succeeded,
		report.Failed,
		string(data),
		report.FinishedAt,
		report.BatchID,
	)
	if err != nil {
		r.logger.Error("Failed to finish batch", zap.String("batch_id", report.BatchID), zap.Error(err))
		return fmt.Errorf("failed to finish batch: %w", err)
	}
	return nil
}

// GetByID retrieves a batch report without its documents, nil when absent
func (r *BatchRepository) GetByID(id string) (*models.BatchReport, error) {
	query := `
		SELECT id, class, output_dir, requested, succeeded, failed, failures, started_at, finished_at
		FROM batches
		WHERE id = ?
	`
	report, err := scanBatch(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get batch", zap.String("batch_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}
	return report, nil
}

// ListByJob returns the batches of a job in the order they started
func (r *BatchRepository) ListByJob(jobID string) ([]*models.BatchReport, error) {
	query := `
		SELECT id, class, output_dir, requested, succeeded, failed, failures, started_at, finished_at
		FROM batches
		WHERE job_id = ?
		ORDER BY started_at ASC
	`
	rows, err := r.db.Query(query, jobID)
	if err != nil {
		r.logger.Error("Failed to list batches", zap.String("job_id", jobID), zap.Error(err))
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var reports []*models.BatchReport
	for rows.Next() {
		report, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func scanBatch(row rowScanner) (*models.BatchReport, error) {
	var report models.BatchReport
	var class, failures string
	var finishedAt sql.NullTime

	err := row.Scan(
		&report.BatchID,
		&class,
		&report.OutputDir,
		&report.Requested,
		&report.Succeeded,
		&report.Failed,
		&failures,
		&report.StartedAt,
		&finishedAt,
	)
	if err != nil {
		return nil, err
	}

	report.Class = models.DocumentClass(class)
	if finishedAt.Valid {
		report.FinishedAt = finishedAt.Time
	}
	if err := json.Unmarshal([]byte(failures), &report.Failures); err != nil {
		return nil, fmt.Errorf("failed to unmarshal failures: %w", err)
	}
	if len(report.Failures) == 0 {
		report.Failures = nil
	}
	return &report, nil
}

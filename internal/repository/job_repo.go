package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/garyjia/docsynth/internal/models"
	"go.uber.org/zap"
)

// JobRepository handles batch job database operations
type JobRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *sql.DB, logger *zap.Logger) *JobRepository {
	return &JobRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new job
func (r *JobRepository) Create(job *models.BatchJob) error {
	counts, err := json.Marshal(job.Counts)
	if err != nil {
		return fmt.Errorf("failed to marshal counts: %w", err)
	}

	now := time.Now()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now

	query := `
		INSERT INTO batch_jobs (
			id, status, selector, counts, output_root, seed, error, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query,
		job.ID,
		job.Status,
		job.Selector,
		string(counts),
		job.OutputRoot,
		int64(job.Seed),
		job.Error,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create job", zap.String("job_id", job.ID), zap.Error(err))
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// UpdateStatus sets the status and error message of a job
func (r *JobRepository) UpdateStatus(id, status, errMsg string) error {
	query := `
		UPDATE batch_jobs
		SET status = ?, error = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query, status, errMsg, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to update job status",
			zap.String("job_id", id),
			zap.String("status", status),
			zap.Error(err))
		return fmt.Errorf("failed to update job status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return nil
}

// GetByID retrieves a job, returning nil when it does not exist
func (r *JobRepository) GetByID(id string) (*models.BatchJob, error) {
	query := `
		SELECT id, status, selector, counts, output_root, seed, error, created_at, updated_at
		FROM batch_jobs
		WHERE id = ?
	`
	job, err := scanJob(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get job", zap.String("job_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// List returns the most recent jobs first
func (r *JobRepository) List(limit int) ([]*models.BatchJob, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, status, selector, counts, output_root, seed, error, created_at, updated_at
		FROM batch_jobs
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		r.logger.Error("Failed to list jobs", zap.Error(err))
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.BatchJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*models.BatchJob, error) {
	var job models.BatchJob
	var counts string
	var seed int64

	err := row.Scan(
		&job.ID,
		&job.Status,
		&job.Selector,
		&counts,
		&job.OutputRoot,
		&seed,
		&job.Error,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	job.Seed = uint64(seed)
	if err := json.Unmarshal([]byte(counts), &job.Counts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal counts: %w", err)
	}
	return &job, nil
}

package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/garyjia/docsynth/internal/models"
	"go.uber.org/zap"
)

var (
	ErrQueueFull     = errors.New("batch queue is full")
	ErrWorkerRunning = errors.New("batch worker is already running")
)

// JobStore persists batch jobs
type JobStore interface {
	Create(job *models.BatchJob) error
	UpdateStatus(id, status, errMsg string) error
	GetByID(id string) (*models.BatchJob, error)
}

// RunFunc executes one job and returns its per-class reports
type RunFunc func(ctx context.Context, job *models.BatchJob) ([]*models.BatchReport, error)

// Notifier announces finished jobs
type Notifier interface {
	NotifyJob(ctx context.Context, jobID string, reports []*models.BatchReport) error
}

// BatchWorker runs queued generation jobs one at a time
type BatchWorker struct {
	jobs     JobStore
	run      RunFunc
	notifier Notifier
	queue    chan string
	logger   *zap.Logger

	mu        sync.Mutex
	isRunning bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewBatchWorker creates a worker with a queue of queueSize pending jobs
func NewBatchWorker(jobs JobStore, run RunFunc, notifier Notifier, queueSize int, logger *zap.Logger) *BatchWorker {
	if queueSize <= 0 {
		queueSize = 16
	}
	return &BatchWorker{
		jobs:     jobs,
		run:      run,
		notifier: notifier,
		queue:    make(chan string, queueSize),
		logger:   logger,
	}
}

// Submit stores job as queued and schedules it
func (w *BatchWorker) Submit(job *models.BatchJob) error {
	job.Status = models.BatchStatusQueued
	if err := w.jobs.Create(job); err != nil {
		return fmt.Errorf("failed to store job: %w", err)
	}

	select {
	case w.queue <- job.ID:
		w.logger.Info("Batch job queued",
			zap.String("job_id", job.ID),
			zap.String("selector", job.Selector))
		return nil
	default:
		if err := w.jobs.UpdateStatus(job.ID, models.BatchStatusFailed, ErrQueueFull.Error()); err != nil {
			w.logger.Warn("Failed to mark rejected job", zap.String("job_id", job.ID), zap.Error(err))
		}
		job.Status = models.BatchStatusFailed
		job.Error = ErrQueueFull.Error()
		return ErrQueueFull
	}
}

// Start starts the processing loop
func (w *BatchWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return ErrWorkerRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.isRunning = true

	go w.loop(loopCtx, w.done)

	w.logger.Info("BatchWorker started", zap.Int("queue_size", cap(w.queue)))
	return nil
}

// Stop cancels the running job and waits for the loop to exit
func (w *BatchWorker) Stop() {
	w.mu.Lock()
	if !w.isRunning {
		w.mu.Unlock()
		return
	}
	w.isRunning = false
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	cancel()
	<-done
	w.logger.Info("BatchWorker stopped")
}

// Name returns the worker name for identification
func (w *BatchWorker) Name() string {
	return "BatchWorker"
}

// Pending returns the number of queued jobs
func (w *BatchWorker) Pending() int {
	return len(w.queue)
}

func (w *BatchWorker) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case id := <-w.queue:
			w.process(ctx, id)
		}
	}
}

func (w *BatchWorker) process(ctx context.Context, id string) {
	job, err := w.jobs.GetByID(id)
	if err != nil || job == nil {
		w.logger.Error("Failed to load queued job", zap.String("job_id", id), zap.Error(err))
		return
	}

	if err := w.jobs.UpdateStatus(id, models.BatchStatusRunning, ""); err != nil {
		w.logger.Warn("Failed to mark job running", zap.String("job_id", id), zap.Error(err))
	}

	start := time.Now()
	reports, runErr := w.run(ctx, job)

	status, msg := models.BatchStatusCompleted, ""
	if runErr != nil {
		status, msg = models.BatchStatusFailed, runErr.Error()
	}
	if err := w.jobs.UpdateStatus(id, status, msg); err != nil {
		w.logger.Warn("Failed to update job status", zap.String("job_id", id), zap.Error(err))
	}

	w.logger.Info("Batch job finished",
		zap.String("job_id", id),
		zap.String("status", status),
		zap.Int("batches", len(reports)),
		zap.Duration("duration", time.Since(start)),
		zap.NamedError("run_error", runErr))

	if w.notifier != nil && ctx.Err() == nil {
		if err := w.notifier.NotifyJob(ctx, id, reports); err != nil {
			w.logger.Warn("Failed to send batch notification", zap.String("job_id", id), zap.Error(err))
		}
	}
}

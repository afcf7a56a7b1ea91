package repository

import (
	"database/sql"

	"github.com/garyjia/docsynth/internal/models"
	"go.uber.org/zap"
)

// Ledger records batches and their documents for one job
type Ledger struct {
	jobID     string
	batches   *BatchRepository
	documents *DocumentRepository
	logger    *zap.Logger
}

// NewLedger creates a ledger over db
func NewLedger(db *sql.DB, logger *zap.Logger) *Ledger {
	return &Ledger{
		batches:   NewBatchRepository(db, logger),
		documents: NewDocumentRepository(db, logger),
		logger:    logger,
	}
}

// ForJob returns a ledger that files batches under jobID
func (l *Ledger) ForJob(jobID string) *Ledger {
	cp := *l
	cp.jobID = jobID
	return &cp
}

// Batches exposes the batch repository
func (l *Ledger) Batches() *BatchRepository {
	return l.batches
}

// Documents exposes the document repository
func (l *Ledger) Documents() *DocumentRepository {
	return l.documents
}

// BeginBatch records the start of a batch
func (l *Ledger) BeginBatch(report *models.BatchReport) error {
	return l.batches.Create(l.jobID, report)
}

// RecordDocument records one generated document
func (l *Ledger) RecordDocument(batchID string, class models.DocumentClass, rec *models.DocumentRecord) error {
	return l.documents.Create(nil, batchID, class, rec)
}

// FinishBatch records the outcome of a batch
func (l *Ledger) FinishBatch(report *models.BatchReport) error {
	if err := l.batches.Finish(report); err != nil {
		return err
	}
	l.logger.Debug("Batch recorded in ledger",
		zap.String("batch_id", report.BatchID),
		zap.String("job_id", l.jobID),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed))
	return nil
}

package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/garyjia/docsynth/internal/models"
	"go.uber.org/zap"
)

// StoredDocument is a ledger row with the fields kept as raw JSON
type StoredDocument struct {
	ID       int64           `json:"id"`
	BatchID  string          `json:"batch_id"`
	Class    string          `json:"class"`
	Index    int             `json:"index"`
	FileName string          `json:"file_name"`
	Path     string          `json:"path"`
	Template string          `json:"template"`
	Subtype  string          `json:"subtype,omitempty"`
	Fields   json.RawMessage `json:"fields"`
}

// DocumentRepository records the ground truth of generated documents
type DocumentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *sql.DB, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores one document record, inside tx when it is not nil
func (r *DocumentRepository) Create(tx *sql.Tx, batchID string, class models.DocumentClass, rec *models.DocumentRecord) error {
	fields, err := json.Marshal(rec.Fields)
	if err != nil {
		return fmt.Errorf("failed to marshal fields: %w", err)
	}

	query := `
		INSERT INTO documents (
			batch_id, class, doc_index, file_name, path, template, subtype, fields
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	args := []any{
		batchID,
		string(class),
		rec.Index,
		rec.FileName,
		rec.Path,
		rec.Template,
		string(rec.Subtype),
		string(fields),
	}

	if tx != nil {
		_, err = tx.Exec(query, args...)
	} else {
		_, err = r.db.Exec(query, args...)
	}
	if err != nil {
		r.logger.Error("Failed to create document record",
			zap.String("batch_id", batchID),
			zap.Int("index", rec.Index),
			zap.Error(err))
		return fmt.Errorf("failed to create document record: %w", err)
	}
	return nil
}

// ListByBatch returns the documents of a batch in index order
func (r *DocumentRepository) ListByBatch(batchID string) ([]*StoredDocument, error) {
	query := `
		SELECT id, batch_id, class, doc_index, file_name, path, template, subtype, fields
		FROM documents
		WHERE batch_id = ?
		ORDER BY doc_index ASC
	`
	rows, err := r.db.Query(query, batchID)
	if err != nil {
		r.logger.Error("Failed to list documents", zap.String("batch_id", batchID), zap.Error(err))
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*StoredDocument
	for rows.Next() {
		var doc StoredDocument
		var fields string
		if err := rows.Scan(
			&doc.ID,
			&doc.BatchID,
			&doc.Class,
			&doc.Index,
			&doc.FileName,
			&doc.Path,
			&doc.Template,
			&doc.Subtype,
			&fields,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.Fields = json.RawMessage(fields)
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

// CountByClass returns how many documents of each class were recorded
func (r *DocumentRepository) CountByClass() (map[string]int, error) {
	rows, err := r.db.Query("SELECT class, COUNT(*) FROM documents GROUP BY class")
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var class string
		var n int
		if err := rows.Scan(&class, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[class] = n
	}
	return counts, rows.Err()
}

package orchestrator

import (
	"context"
	"image"

	"github.com/garyjia/docsynth/internal/models"
	"github.com/garyjia/docsynth/internal/quality"
)

// Renderer turns a template and its fields into a page image
type Renderer interface {
	Render(ctx context.Context, handle models.TemplateHandle, fields *models.FieldMapping) (image.Image, error)
}

// Degrader simulates scanning artifacts; it never fails
type Degrader interface {
	Apply(img image.Image) image.Image
}

// Validator rejects unusable images
type Validator interface {
	Check(img image.Image) (quality.Report, error)
}

// Saver persists a finished document and returns its path
type Saver interface {
	Save(class string, index int, img image.Image) (string, error)
}

// SaverFactory builds a saver rooted at an output directory
type SaverFactory func(root string) Saver

// Recorder keeps the ledger of batches and documents
type Recorder interface {
	BeginBatch(report *models.BatchReport) error
	RecordDocument(batchID string, class models.DocumentClass, rec *models.DocumentRecord) error
	FinishBatch(report *models.BatchReport) error
}

package export

import (
	"fmt"
	"time"

	"github.com/garyjia/docsynth/internal/models"
	"go.uber.org/zap"
)

// Exporter writes the labels workbook and generation metadata of a run
type Exporter struct {
	ratios      Ratios
	writeLabels bool
	logger      *zap.Logger
}

// NewExporter creates an exporter; labels can be turned off for large runs
func NewExporter(ratios Ratios, writeLabels bool, logger *zap.Logger) (*Exporter, error) {
	if err := ratios.Validate(); err != nil {
		return nil, err
	}
	return &Exporter{
		ratios:      ratios,
		writeLabels: writeLabels,
		logger:      logger,
	}, nil
}

// Export writes generation_metadata.json and labels.xlsx under root
func (e *Exporter) Export(root string, reports []*models.BatchReport, elapsed time.Duration, seed uint64) (*Metadata, error) {
	md, err := BuildMetadata(reports, root, elapsed, seed, e.ratios)
	if err != nil {
		return nil, fmt.Errorf("failed to build metadata: %w", err)
	}

	path, err := SaveMetadata(root, md)
	if err != nil {
		return nil, err
	}
	e.logger.Info("Generation metadata saved",
		zap.String("path", path),
		zap.Int("total", md.Total()))

	if e.writeLabels && md.Total() > 0 {
		labels, err := WriteLabels(root, reports, md.SplitInfo)
		if err != nil {
			return md, fmt.Errorf("failed to write labels: %w", err)
		}
		e.logger.Info("Labels workbook saved", zap.String("path", labels))
	}

	return md, nil
}

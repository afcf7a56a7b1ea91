package render

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// Rasterizer converts an HTML document into an image of its first page
type Rasterizer interface {
	Rasterize(ctx context.Context, html string) (image.Image, error)
}

// FitzRasterizer lays out HTML with MuPDF and renders the first page
type FitzRasterizer struct {
	dpi    float64
	tmpDir string
	logger *zap.Logger
}

// NewFitzRasterizer creates a rasterizer rendering at dpi; tmpDir may be empty for the system default
func NewFitzRasterizer(dpi float64, tmpDir string, logger *zap.Logger) *FitzRasterizer {
	if dpi <= 0 {
		dpi = 144
	}
	return &FitzRasterizer{dpi: dpi, tmpDir: tmpDir, logger: logger}
}

// Rasterize writes html to a temporary .html file so MuPDF picks its HTML handler by extension
func (r *FitzRasterizer) Rasterize(ctx context.Context, html string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.CreateTemp(r.tmpDir, "docsynth-*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(html); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, ErrEmptyPage
	}

	img, err := doc.ImageDPI(0, r.dpi)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}

	r.logger.Debug("Rasterized document",
		zap.Int("pages", doc.NumPage()),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return img, nil
}

package render

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/garyjia/docsynth/internal/models"
)

// Pipeline renders templates to images of a fixed target size
type Pipeline struct {
	engine     *TemplateEngine
	rasterizer Rasterizer
	width      int
	height     int
	logger     *zap.Logger
}

// NewPipeline creates a render pipeline producing width x height images
func NewPipeline(engine *TemplateEngine, rasterizer Rasterizer, width, height int, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		engine:     engine,
		rasterizer: rasterizer,
		width:      width,
		height:     height,
		logger:     logger,
	}
}

// Render fills the template, rasterizes it and resizes to the target dimensions
func (p *Pipeline) Render(ctx context.Context, handle models.TemplateHandle, fields *models.FieldMapping) (image.Image, error) {
	html, err := p.engine.RenderHTML(handle, fields)
	if err != nil {
		return nil, err
	}

	raw, err := p.rasterizer.Rasterize(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize %s: %w", handle.Name, err)
	}

	return Resize(raw, p.width, p.height), nil
}

// HTML returns the filled template without rasterizing it
func (p *Pipeline) HTML(handle models.TemplateHandle, fields *models.FieldMapping) (string, error) {
	return p.engine.RenderHTML(handle, fields)
}

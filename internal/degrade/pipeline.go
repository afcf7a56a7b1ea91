// Package degrade makes clean renders look printed, folded and photographed.
package degrade

import (
	"image"
	"image/draw"

	"go.uber.org/zap"

	"github.com/garyjia/docsynth/internal/randsrc"
)

// Pipeline applies the configured effects in order
type Pipeline struct {
	params Params
	rand   *randsrc.Source
	logger *zap.Logger
}

// NewPipeline validates params and builds a pipeline drawing from src
func NewPipeline(params Params, src *randsrc.Source, logger *zap.Logger) (*Pipeline, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{params: params, rand: src, logger: logger}, nil
}

// Apply degrades img and returns an image with identical bounds.
// An effect that fails is skipped and the previous image carries on.
func (p *Pipeline) Apply(img image.Image) image.Image {
	// work on a copy so the caller's image is never mutated
	current := image.NewRGBA(img.Bounds())
	draw.Draw(current, current.Bounds(), img, img.Bounds().Min, draw.Src)

	for _, name := range p.params.Effects {
		next, err := effects[name](current, p.rand, p.params)
		if err != nil {
			p.logger.Warn("Degradation effect skipped",
				zap.String("effect", name),
				zap.Error(err))
			continue
		}
		current = next
	}
	return current
}

// Effects returns the names of the enabled effects
func (p *Pipeline) Effects() []string {
	return append([]string(nil), p.params.Effects...)
}

// Passthrough returns images unchanged; used when degradation is disabled
type Passthrough struct{}

// Apply returns img as is
func (Passthrough) Apply(img image.Image) image.Image {
	return img
}

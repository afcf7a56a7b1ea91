package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/garyjia/docsynth/internal/fields"
	"github.com/garyjia/docsynth/internal/models"
	"github.com/garyjia/docsynth/internal/registry"
)

// generator owns the cursor and random stream of one class batch
type generator struct {
	class     models.DocumentClass
	registry  *registry.Registry
	rules     fields.Ruleset
	fctx      *fields.Context
	renderer  Renderer
	degrader  Degrader
	validator Validator
}

// generate produces document index and saves it
func (g *generator) generate(ctx context.Context, index int, saver Saver) (rec *models.DocumentRecord, err error) {
	stage := models.StageTemplate
	defer func() {
		if p := recover(); p != nil {
			rec = nil
			err = &stageError{stage: stage, err: fmt.Errorf("panic: %v", p)}
		}
	}()

	handle := g.registry.Next()

	stage = models.StageFields
	mapping, err := g.rules.Generate(g.fctx, handle)
	if err != nil {
		return nil, &stageError{stage: stage, err: fmt.Errorf("failed to generate fields: %w", err)}
	}

	stage = models.StageRender
	img, err := g.renderer.Render(ctx, handle, mapping)
	if err != nil {
		return nil, &stageError{stage: stage, err: fmt.Errorf("failed to render: %w", err)}
	}

	stage = models.StageDegrade
	if g.degrader != nil {
		img = g.degrader.Apply(img)
	}

	stage = models.StageQuality
	if g.validator != nil {
		if _, err := g.validator.Check(img); err != nil {
			return nil, &stageError{stage: stage, err: fmt.Errorf("failed quality check: %w", err)}
		}
	}

	stage = models.StageSave
	path, err := saver.Save(string(g.class), index, img)
	if err != nil {
		return nil, &stageError{stage: stage, err: fmt.Errorf("failed to save: %w", err)}
	}

	return &models.DocumentRecord{
		Index:    index,
		FileName: filepath.Base(path),
		Path:     path,
		Template: handle.Name,
		Subtype:  handle.Subtype,
		Fields:   mapping,
	}, nil
}

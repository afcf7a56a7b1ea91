package container

import (
	"fmt"
	"time"

	"github.com/garyjia/docsynth/internal/fields"
	"github.com/garyjia/docsynth/internal/models"
	"github.com/garyjia/docsynth/internal/randsrc"
	"github.com/garyjia/docsynth/internal/registry"
)

// Preview is one filled template that was not rasterized
type Preview struct {
	Template models.TemplateHandle `json:"template"`
	Fields   *models.FieldMapping  `json:"fields"`
	HTML     string                `json:"-"`
}

// ListTemplates lists the discovered templates of a class
func (c *Container) ListTemplates(class models.DocumentClass) ([]models.TemplateHandle, error) {
	reg, err := registry.Discover(c.templates, string(class), class, c.config.Generator.Extensions, c.logger)
	if err != nil {
		return nil, err
	}
	return reg.Templates(), nil
}

// Preview fills a random template of class with generated fields. A nonzero
// seed picks the same template and values every time.
func (c *Container) Preview(class models.DocumentClass, seed uint64) (*Preview, error) {
	if !c.ready.Load() {
		return nil, ErrNotStarted
	}

	handles, err := c.ListTemplates(class)
	if err != nil {
		return nil, err
	}
	rules, err := fields.ForClass(class)
	if err != nil {
		return nil, err
	}

	src := randsrc.New(seed)
	handle := randsrc.Pick(src, handles)

	mapping, err := rules.Generate(fields.NewContext(src, time.Now(), c.corpus), handle)
	if err != nil {
		return nil, fmt.Errorf("failed to generate fields for %s: %w", handle.Name, err)
	}

	html, err := c.renderer.HTML(handle, mapping)
	if err != nil {
		return nil, err
	}

	return &Preview{Template: handle, Fields: mapping, HTML: html}, nil
}

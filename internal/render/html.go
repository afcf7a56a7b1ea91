// Package render turns a template plus field mapping into a fixed-size raster image.
package render

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/garyjia/docsynth/internal/models"
)

// TemplateEngine executes HTML templates from a file system with pongo2
type TemplateEngine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	policy    *bluemonday.Policy
	logger    *zap.Logger
}

// NewTemplateEngine creates an engine over fsys; template names are paths inside it
func NewTemplateEngine(fsys fs.FS, logger *zap.Logger) *TemplateEngine {
	return &TemplateEngine{
		set:       pongo2.NewSet("docsynth", pongo2.NewFSLoader(fsys)),
		templates: make(map[string]*pongo2.Template),
		policy:    fieldPolicy(),
		logger:    logger,
	}
}

// fieldPolicy allows only the inline markup generated values use, such as address line breaks
func fieldPolicy() *bluemonday.Policy {
	policy := bluemonday.StrictPolicy()
	policy.AllowElements("br", "p", "b", "i", "strong", "em")
	return policy
}

// RenderHTML executes the template of handle against fields
func (e *TemplateEngine) RenderHTML(handle models.TemplateHandle, fields *models.FieldMapping) (string, error) {
	tmpl, err := e.template(handle.Path)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(e.context(handle, fields), &buf); err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrTemplateExecute, handle.Path, err)
	}
	return buf.String(), nil
}

// context converts the mapping to a pongo2 context, sanitizing any value carrying markup
func (e *TemplateEngine) context(handle models.TemplateHandle, fields *models.FieldMapping) pongo2.Context {
	ctx := pongo2.Context{
		"template_name":  handle.Name,
		"document_class": string(handle.Class),
	}
	if fields == nil {
		return ctx
	}
	for _, key := range fields.Keys() {
		v, _ := fields.Get(key)
		if s, ok := v.(string); ok && strings.ContainsRune(s, '<') {
			v = e.policy.Sanitize(s)
		}
		ctx[key] = v
	}
	return ctx
}

func (e *TemplateEngine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrTemplateLoad, path, err)
	}
	e.templates[path] = tmpl

	e.logger.Debug("Template compiled", zap.String("path", path))
	return tmpl, nil
}

package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/docsynth/internal/corpus"
	"github.com/garyjia/docsynth/internal/fields"
	"github.com/garyjia/docsynth/internal/models"
	"github.com/garyjia/docsynth/internal/randsrc"
	"github.com/garyjia/docsynth/internal/registry"
	"github.com/garyjia/docsynth/templates"
)

func TestEmbeddedTemplates_RenderWithGeneratedFields(t *testing.T) {
	logger := zap.NewNop()
	engine := NewTemplateEngine(templates.FS, logger)
	ctx := fields.NewContext(randsrc.New(21), time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), corpus.Default())

	for _, class := range models.AllClasses {
		reg, err := registry.Discover(templates.FS, string(class), class, nil, logger)
		require.NoError(t, err)
		rules, err := fields.ForClass(class)
		require.NoError(t, err)

		for _, handle := range reg.Templates() {
			t.Run(handle.Path, func(t *testing.T) {
				fm, err := rules.Generate(ctx, handle)
				require.NoError(t, err)

				html, err := engine.RenderHTML(handle, fm)
				require.NoError(t, err)
				assert.NotContains(t, html, "{{")
				assert.NotContains(t, html, "{%")
				assert.Contains(t, html, "<html>")
			})
		}
	}
}

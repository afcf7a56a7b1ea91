package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/docsynth/internal/models"
)

var testTemplates = fstest.MapFS{
	"tax-form/simple.html": &fstest.MapFile{Data: []byte(
		`<html><body><h1>{{ employer_name }}</h1><p>{{ employer_address|safe }}</p><span>{{ note }}</span></body></html>`)},
	"miscellaneous/receipt.html": &fstest.MapFile{Data: []byte(
		`{% for item in items %}<tr><td>{{ item.name }}</td><td>{{ item.total_price }}</td></tr>{% endfor %}<b>{{ total }}</b>`)},
	"tax-form/broken.html": &fstest.MapFile{Data: []byte(`{% for x in %}`)},
}

func TestTemplateEngine_RenderHTML(t *testing.T) {
	engine := NewTemplateEngine(testTemplates, zap.NewNop())

	t.Run("fills fields and keeps allowed markup", func(t *testing.T) {
		handle := models.TemplateHandle{Name: "simple.html", Path: "tax-form/simple.html", Class: models.ClassTaxForm}
		fields := models.NewFieldMapping().
			Set("employer_name", "Acme & Sons").
			Set("employer_address", `12 Main St<br>Springfield, IL 62701<script>alert(1)</script>`).
			Set("note", "<i>plain</i>")

		html, err := engine.RenderHTML(handle, fields)
		require.NoError(t, err)

		assert.Contains(t, html, "Acme &amp; Sons")
		assert.Contains(t, html, "12 Main St<br")
		assert.Contains(t, html, "Springfield, IL 62701")
		assert.NotContains(t, html, "<script>")
		assert.NotContains(t, html, "alert(1)")
		assert.Contains(t, html, "&lt;i&gt;plain&lt;/i&gt;", "values without |safe stay escaped")
	})

	t.Run("iterates line items", func(t *testing.T) {
		handle := models.TemplateHandle{Name: "receipt.html", Path: "miscellaneous/receipt.html", Class: models.ClassMiscellaneous}
		fields := models.NewFieldMapping().
			Set("items", []map[string]any{
				{"name": "Coffee", "total_price": "3.50"},
				{"name": "Muffin", "total_price": "2.25"},
			}).
			Set("total", "5.75")

		html, err := engine.RenderHTML(handle, fields)
		require.NoError(t, err)
		assert.Contains(t, html, "<td>Coffee</td><td>3.50</td>")
		assert.Contains(t, html, "<td>Muffin</td><td>2.25</td>")
		assert.Contains(t, html, "<b>5.75</b>")
	})

	t.Run("missing template", func(t *testing.T) {
		_, err := engine.RenderHTML(models.TemplateHandle{Name: "x.html", Path: "tax-form/x.html"}, nil)
		assert.ErrorIs(t, err, ErrTemplateLoad)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := engine.RenderHTML(models.TemplateHandle{Name: "broken.html", Path: "tax-form/broken.html"}, nil)
		assert.ErrorIs(t, err, ErrTemplateLoad)
	})
}

type fakeRasterizer struct {
	img  image.Image
	err  error
	html string
}

func (f *fakeRasterizer) Rasterize(ctx context.Context, html string) (image.Image, error) {
	f.html = html
	return f.img, f.err
}

func TestPipeline_Render(t *testing.T) {
	engine := NewTemplateEngine(testTemplates, zap.NewNop())
	handle := models.TemplateHandle{Name: "simple.html", Path: "tax-form/simple.html", Class: models.ClassTaxForm}
	fields := models.NewFieldMapping().Set("employer_name", "Initech")

	t.Run("resizes to target dimensions", func(t *testing.T) {
		raster := &fakeRasterizer{img: image.NewRGBA(image.Rect(0, 0, 1224, 1584))}
		p := NewPipeline(engine, raster, 850, 1100, zap.NewNop())

		img, err := p.Render(context.Background(), handle, fields)
		require.NoError(t, err)
		assert.Equal(t, 850, img.Bounds().Dx())
		assert.Equal(t, 1100, img.Bounds().Dy())
		assert.Contains(t, raster.html, "Initech")
	})

	t.Run("rasterizer failure is wrapped", func(t *testing.T) {
		boom := errors.New("mupdf exploded")
		p := NewPipeline(engine, &fakeRasterizer{err: boom}, 850, 1100, zap.NewNop())

		_, err := p.Render(context.Background(), handle, fields)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("html skips rasterizing", func(t *testing.T) {
		raster := &fakeRasterizer{}
		p := NewPipeline(engine, raster, 850, 1100, zap.NewNop())

		html, err := p.HTML(handle, fields)
		require.NoError(t, err)
		assert.Contains(t, html, "<h1>Initech</h1>")
		assert.Empty(t, raster.html)
	})
}

func TestResize(t *testing.T) {
	t.Run("scales down", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(0, 0, 400, 500))
		out := Resize(src, 200, 250)
		assert.Equal(t, image.Rect(0, 0, 200, 250), out.Bounds())
	})

	t.Run("transparent source becomes white", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
		out := Resize(src, 10, 10)
		r, g, b, _ := out.At(5, 5).RGBA()
		assert.Equal(t, uint32(0xffff), r)
		assert.Equal(t, uint32(0xffff), g)
		assert.Equal(t, uint32(0xffff), b)
	})

	t.Run("same size copies pixels", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(0, 0, 4, 4))
		src.Set(1, 1, color.RGBA{R: 255, A: 255})
		out := Resize(src, 4, 4)
		assert.Equal(t, color.RGBA{R: 255, A: 255}, out.RGBAAt(1, 1))
	})
}

func TestFitzRasterizer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping MuPDF rasterization in short mode")
	}
	r := NewFitzRasterizer(72, t.TempDir(), zap.NewNop())

	img, err := r.Rasterize(context.Background(), "<html><body><h1>Hello</h1></body></html>")
	if err != nil {
		t.Skipf("MuPDF HTML support unavailable: %v", err)
	}
	assert.Greater(t, img.Bounds().Dx(), 0)

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := r.Rasterize(ctx, "<html></html>")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

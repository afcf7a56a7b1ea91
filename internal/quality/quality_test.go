package quality

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestChecker_Check(t *testing.T) {
	checker := NewChecker(DefaultThresholds())

	t.Run("too small", func(t *testing.T) {
		_, err := checker.Check(solid(300, 500, color.White))
		assert.ErrorIs(t, err, ErrTooSmall)
	})

	t.Run("blank page", func(t *testing.T) {
		_, err := checker.Check(solid(400, 400, color.White))
		assert.ErrorIs(t, err, ErrBlank)
	})

	t.Run("low contrast", func(t *testing.T) {
		img := solid(400, 400, color.Gray{Y: 200})
		// a faint line barely differs from the background
		for x := 0; x < 400; x++ {
			img.Set(x, 10, color.Gray{Y: 190})
		}
		_, err := checker.Check(img)
		assert.ErrorIs(t, err, ErrLowContrast)
	})

	t.Run("document passes", func(t *testing.T) {
		img := solid(850, 1100, color.White)
		for y := 100; y < 1000; y += 20 {
			for x := 80; x < 770; x++ {
				for dy := 0; dy < 6; dy++ {
					img.Set(x, y+dy, color.Black)
				}
			}
		}
		r, err := checker.Check(img)
		require.NoError(t, err)
		assert.Equal(t, 850, r.Width)
		assert.Greater(t, r.StdDev, 10.0)
	})
}

func TestMeasure(t *testing.T) {
	img := solid(2, 1, color.Black)
	img.Set(1, 0, color.White)

	r := Measure(img)
	assert.InDelta(t, 127.5, r.Mean, 0.01)
	assert.InDelta(t, 127.5, r.StdDev, 0.01)
}

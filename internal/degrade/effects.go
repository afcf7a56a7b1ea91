package degrade

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"math"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/garyjia/docsynth/internal/randsrc"
)

// effect transforms an RGBA image in place or returns a replacement of the same size
type effect func(img *image.RGBA, r *randsrc.Source, p Params) (*image.RGBA, error)

var effects = map[string]effect{
	EffectInkBleed: inkBleed,
	EffectFolding:  folding,
	EffectNoise:    noise,
	EffectLighting: lighting,
	EffectGeometry: geometry,
	EffectJPEG:     jpegArtifacts,
}

func clamp8(v float64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}

// withBounds returns img laid out on b; bild results always start at the origin
func withBounds(img *image.RGBA, b image.Rectangle) *image.RGBA {
	if img.Bounds() == b {
		return img
	}
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, img.Bounds().Min, draw.Src)
	return out
}

// inkBleed spreads dark strokes into their surroundings so text looks absorbed by paper
func inkBleed(img *image.RGBA, r *randsrc.Source, p Params) (*image.RGBA, error) {
	intensity := r.Float(p.InkBleedIntensity.Min, p.InkBleedIntensity.Max)
	kernel := r.Int(p.InkBleedKernel.Min, p.InkBleedKernel.Max)
	if kernel < 1 {
		return img, nil
	}

	base := withBounds(img, image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	spread := blur.Box(base, float64(kernel/2))
	bled := blend.Darken(base, spread)
	return withBounds(blend.Opacity(base, bled, intensity), img.Bounds()), nil
}

// folding darkens narrow bands along slightly tilted fold lines
func folding(img *image.RGBA, r *randsrc.Source, p Params) (*image.RGBA, error) {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	count := r.Int(p.FoldCount.Min, p.FoldCount.Max)

	for i := 0; i < count; i++ {
		angle := r.Angle(p.FoldAngle)
		px, py := w/2, h/2
		if r.Chance(0.5) {
			// horizontal crease
			py = h * r.Float(0.2, 0.8)
			angle += math.Pi / 2
		} else {
			px = w * r.Float(0.2, 0.8)
		}
		// normal of a line running along angle from vertical
		nx, ny := math.Cos(angle), -math.Sin(angle)
		width := r.Float(6, 14)
		depth := r.Float(0.08, 0.22)

		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dist := math.Abs((float64(x-b.Min.X)-px)*nx + (float64(y-b.Min.Y)-py)*ny)
				if dist > width {
					continue
				}
				shade := 1 - depth*(1-dist/width) + r.Normal(0, p.FoldNoise)*0.05
				c := img.RGBAAt(x, y)
				img.SetRGBA(x, y, color.RGBA{
					R: clamp8(float64(c.R) * shade),
					G: clamp8(float64(c.G) * shade),
					B: clamp8(float64(c.B) * shade),
					A: c.A,
				})
			}
		}
	}
	return img, nil
}

// noise adds per-pixel gaussian grain plus coarse blotches whose size follows
// turbulence. Samples come from the job's seeded source so a seed reproduces
// the same grain.
func noise(img *image.RGBA, r *randsrc.Source, p Params) (*image.RGBA, error) {
	b := img.Bounds()
	sigma := r.Float(p.NoiseSigma.Min, p.NoiseSigma.Max)
	cell := int(math.Max(1, r.Float(p.NoiseTurbulence.Min, p.NoiseTurbulence.Max)*4))

	cols := b.Dx()/cell + 1
	rows := b.Dy()/cell + 1
	coarse := make([]float64, cols*rows)
	for i := range coarse {
		coarse[i] = r.Normal(0, sigma/2)
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n := r.Normal(0, sigma) + coarse[((y-b.Min.Y)/cell)*cols+(x-b.Min.X)/cell]
			c := img.RGBAAt(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: clamp8(float64(c.R) + n),
				G: clamp8(float64(c.G) + n),
				B: clamp8(float64(c.B) + n),
				A: c.A,
			})
		}
	}
	return img, nil
}

// lighting multiplies the page by a linear gradient running from a sampled
// low level up to the range max
func lighting(img *image.RGBA, r *randsrc.Source, p Params) (*image.RGBA, error) {
	b := img.Bounds()
	low := r.Float(p.Lighting.Min, p.Lighting.Max) / 255
	high := p.Lighting.Max / 255
	dir := r.Float(0, 2*math.Pi)
	dx, dy := math.Cos(dir), math.Sin(dir)

	w, h := float64(b.Dx()), float64(b.Dy())
	span := math.Abs(dx)*w + math.Abs(dy)*h
	if span == 0 {
		return img, nil
	}
	// projection of the corner the gradient starts from
	origin := math.Min(0, dx*w) + math.Min(0, dy*h)

	mask := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			t := (float64(x)*dx + float64(y)*dy - origin) / span
			mask.Pix[y*mask.Stride+x] = clamp8(255 * (low + (high-low)*t))
		}
	}

	lit := blend.Multiply(withBounds(img, mask.Rect), mask)
	return withBounds(lit, b), nil
}

// geometry rotates and scales the page about its center onto a same-sized canvas
func geometry(img *image.RGBA, r *randsrc.Source, p Params) (*image.RGBA, error) {
	b := img.Bounds()
	scale := r.Float(p.Scale.Min, p.Scale.Max)
	theta := r.Angle(p.Rotation)

	cx := float64(b.Min.X) + float64(b.Dx())/2
	cy := float64(b.Min.Y) + float64(b.Dy())/2
	cos, sin := math.Cos(theta)*scale, math.Sin(theta)*scale

	s2d := f64.Aff3{
		cos, -sin, cx - (cos*cx - sin*cy),
		sin, cos, cy - (sin*cx + cos*cy),
	}

	dst := image.NewRGBA(b)
	background := color.RGBA{R: 235, G: 232, B: 225, A: 255}
	draw.Draw(dst, b, image.NewUniform(background), image.Point{}, draw.Src)
	draw.BiLinear.Transform(dst, s2d, img, b, draw.Over, nil)
	return dst, nil
}

// jpegArtifacts round-trips the image through JPEG at a sampled quality
func jpegArtifacts(img *image.RGBA, r *randsrc.Source, p Params) (*image.RGBA, error) {
	quality := r.Int(p.JPEGQuality.Min, p.JPEGQuality.Max)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	decoded, err := jpeg.Decode(&buf)
	if err != nil {
		return nil, err
	}
	return toRGBA(decoded), nil
}

// toRGBA copies any image into an RGBA with the same bounds
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

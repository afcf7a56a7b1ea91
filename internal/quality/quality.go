// Package quality rejects renders that are unusable as training images.
package quality

import (
	"errors"
	"fmt"
	"image"
	"math"
)

var (
	ErrTooSmall    = errors.New("image is too small")
	ErrBlank       = errors.New("image is a single color")
	ErrLowContrast = errors.New("image contrast is too low")
)

// Thresholds configure the checks
type Thresholds struct {
	MinWidth  int     `mapstructure:"min_width"`
	MinHeight int     `mapstructure:"min_height"`
	MinStdDev float64 `mapstructure:"min_stddev"`
}

// DefaultThresholds rejects images under 400x400 or with grayscale deviation under 10
func DefaultThresholds() Thresholds {
	return Thresholds{MinWidth: 400, MinHeight: 400, MinStdDev: 10}
}

// Report describes the measured properties of an image
type Report struct {
	Width  int
	Height int
	Mean   float64
	StdDev float64
	Min    uint8
	Max    uint8
}

// Checker validates images against thresholds
type Checker struct {
	thresholds Thresholds
}

// NewChecker creates a checker
func NewChecker(t Thresholds) *Checker {
	return &Checker{thresholds: t}
}

// Measure computes size and grayscale statistics
func Measure(img image.Image) Report {
	b := img.Bounds()
	r := Report{Width: b.Dx(), Height: b.Dy()}
	n := float64(b.Dx() * b.Dy())
	if n == 0 {
		return r
	}

	var sum, sumSq float64
	r.Min = math.MaxUint8
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			gray := (0.299*float64(cr) + 0.587*float64(cg) + 0.114*float64(cb)) / 257
			sum += gray
			sumSq += gray * gray
			g := uint8(math.Round(math.Min(gray, 255)))
			r.Min = min(r.Min, g)
			r.Max = max(r.Max, g)
		}
	}
	r.Mean = sum / n
	r.StdDev = math.Sqrt(math.Max(0, sumSq/n-r.Mean*r.Mean))
	return r
}

// Check returns nil when img passes every threshold
func (c *Checker) Check(img image.Image) (Report, error) {
	r := Measure(img)
	if r.Width < c.thresholds.MinWidth || r.Height < c.thresholds.MinHeight {
		return r, fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrTooSmall,
			r.Width, r.Height, c.thresholds.MinWidth, c.thresholds.MinHeight)
	}
	if r.Min == r.Max {
		return r, ErrBlank
	}
	if r.StdDev < c.thresholds.MinStdDev {
		return r, fmt.Errorf("%w: deviation %.2f below %.2f", ErrLowContrast, r.StdDev, c.thresholds.MinStdDev)
	}
	return r, nil
}

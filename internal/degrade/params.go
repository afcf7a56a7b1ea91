package degrade

import "fmt"

// Range is a closed float interval sampled uniformly
type Range struct {
	Min float64 `mapstructure:"min" json:"min"`
	Max float64 `mapstructure:"max" json:"max"`
}

// IntRange is a closed integer interval sampled uniformly
type IntRange struct {
	Min int `mapstructure:"min" json:"min"`
	Max int `mapstructure:"max" json:"max"`
}

// Effect names in pipeline order
const (
	EffectInkBleed = "ink_bleed"
	EffectFolding  = "folding"
	EffectNoise    = "noise"
	EffectLighting = "lighting"
	EffectGeometry = "geometry"
	EffectJPEG     = "jpeg"
)

// AllEffects lists every effect in the order they are applied
var AllEffects = []string{EffectInkBleed, EffectFolding, EffectNoise, EffectLighting, EffectGeometry, EffectJPEG}

// Params holds the sampling ranges of every effect
type Params struct {
	Effects           []string `mapstructure:"effects" json:"effects"`
	InkBleedIntensity Range    `mapstructure:"ink_bleed_intensity" json:"ink_bleed_intensity"`
	InkBleedKernel    IntRange `mapstructure:"ink_bleed_kernel" json:"ink_bleed_kernel"`
	FoldCount         IntRange `mapstructure:"fold_count" json:"fold_count"`
	FoldNoise         float64  `mapstructure:"fold_noise" json:"fold_noise"`
	FoldAngle         float64  `mapstructure:"fold_angle" json:"fold_angle"`
	NoiseSigma        Range    `mapstructure:"noise_sigma" json:"noise_sigma"`
	NoiseTurbulence   Range    `mapstructure:"noise_turbulence" json:"noise_turbulence"`
	Lighting          Range    `mapstructure:"lighting" json:"lighting"`
	Scale             Range    `mapstructure:"scale" json:"scale"`
	Rotation          float64  `mapstructure:"rotation" json:"rotation"`
	JPEGQuality       IntRange `mapstructure:"jpeg_quality" json:"jpeg_quality"`
}

// DefaultParams returns ranges that look like a phone photo of a printed page
func DefaultParams() Params {
	return Params{
		Effects:           append([]string(nil), AllEffects...),
		InkBleedIntensity: Range{0.1, 0.3},
		InkBleedKernel:    IntRange{5, 7},
		FoldCount:         IntRange{1, 3},
		FoldNoise:         0.1,
		FoldAngle:         5,
		NoiseSigma:        Range{3, 10},
		NoiseTurbulence:   Range{2, 5},
		Lighting:          Range{160, 255},
		Scale:             Range{0.8, 1.2},
		Rotation:          5,
		JPEGQuality:       IntRange{70, 95},
	}
}

// Validate rejects inverted ranges and unknown effect names
func (p Params) Validate() error {
	known := make(map[string]bool, len(AllEffects))
	for _, e := range AllEffects {
		known[e] = true
	}
	for _, e := range p.Effects {
		if !known[e] {
			return fmt.Errorf("%w: %s", ErrUnknownEffect, e)
		}
	}

	ranges := map[string]Range{
		"ink_bleed_intensity": p.InkBleedIntensity,
		"noise_sigma":         p.NoiseSigma,
		"noise_turbulence":    p.NoiseTurbulence,
		"lighting":            p.Lighting,
		"scale":               p.Scale,
	}
	for name, r := range ranges {
		if r.Min > r.Max {
			return fmt.Errorf("%w: %s", ErrInvalidRange, name)
		}
	}
	intRanges := map[string]IntRange{
		"ink_bleed_kernel": p.InkBleedKernel,
		"fold_count":       p.FoldCount,
		"jpeg_quality":     p.JPEGQuality,
	}
	for name, r := range intRanges {
		if r.Min > r.Max {
			return fmt.Errorf("%w: %s", ErrInvalidRange, name)
		}
	}
	if p.Lighting.Min < 0 || p.Lighting.Max > 255 {
		return fmt.Errorf("%w: lighting must be within 0-255", ErrInvalidRange)
	}
	if p.JPEGQuality.Min < 1 || p.JPEGQuality.Max > 100 {
		return fmt.Errorf("%w: jpeg quality must be within 1-100", ErrInvalidRange)
	}
	if p.Scale.Min <= 0 {
		return fmt.Errorf("%w: scale must be positive", ErrInvalidRange)
	}
	return nil
}

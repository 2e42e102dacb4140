package internal

import (
	"fmt"
	"math"

	"github.com/nocturnecity/image-reframer/pkg"
)

type SizeResolver struct {
	presets *PresetRegistry
}

func NewSizeResolver(presets *PresetRegistry) *SizeResolver {
	return &SizeResolver{presets: presets}
}

// Resolve turns intent into concrete target dimensions and the scale percentage to report.
func (s *SizeResolver) Resolve(original pkg.Dimensions, intent pkg.Intent) (pkg.Dimensions, int, error) {
	if original.Width < 1 || original.Height < 1 {
		return pkg.Dimensions{}, 0, fmt.Errorf("original %s: %w", original, ErrInvalidDimension)
	}

	var target pkg.Dimensions
	var percent int
	switch in := intent.(type) {
	case pkg.Preset:
		if s.presets == nil {
			return pkg.Dimensions{}, 0, fmt.Errorf("no preset registry: %w", ErrUnknownPreset)
		}
		dims, err := s.presets.Lookup(in.Platform, in.Name)
		if err != nil {
			return pkg.Dimensions{}, 0, err
		}
		target = dims
		percent = equivalentPercent(original, target)
	case pkg.Percentage:
		if in.Factor <= 0 || math.IsNaN(in.Factor) || math.IsInf(in.Factor, 0) {
			return pkg.Dimensions{}, 0, fmt.Errorf("percentage %v: %w", in.Factor, ErrInvalidDimension)
		}
		target = pkg.Dimensions{
			Width:  int(math.Floor(float64(original.Width) * in.Factor / 100)),
			Height: int(math.Floor(float64(original.Height) * in.Factor / 100)),
		}
		percent = int(in.Factor)
	case pkg.Manual:
		if in.Width < 1 {
			return pkg.Dimensions{}, 0, fmt.Errorf("width %d: %w", in.Width, ErrInvalidDimension)
		}
		target = pkg.Dimensions{Width: in.Width, Height: in.Height}
		if in.MaintainAspect {
			target.Height = in.Width * original.Height / original.Width
		} else if in.Height < 1 {
			return pkg.Dimensions{}, 0, fmt.Errorf("height %d: %w", in.Height, ErrInvalidDimension)
		}
		percent = equivalentPercent(original, target)
	default:
		return pkg.Dimensions{}, 0, fmt.Errorf("sizing intent %T: %w", intent, ErrInvalidRequest)
	}

	if target.Width < 1 || target.Height < 1 {
		return pkg.Dimensions{}, 0, fmt.Errorf("resolved target %s: %w", target, ErrInvalidDimension)
	}
	if target.Width > pkg.MaxDimension || target.Height > pkg.MaxDimension {
		return pkg.Dimensions{}, 0, fmt.Errorf("resolved target %s exceeds %d: %w", target, pkg.MaxDimension, ErrInvalidDimension)
	}
	return target, percent, nil
}

// equivalentPercent compares the width when it changed, else the height.
// When both changed by different ratios the width ratio is reported.
func equivalentPercent(original, target pkg.Dimensions) int {
	switch {
	case target.Width != original.Width:
		return int(float64(target.Width) / float64(original.Width) * 100)
	case target.Height != original.Height:
		return int(float64(target.Height) / float64(original.Height) * 100)
	default:
		return 100
	}
}

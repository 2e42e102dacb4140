package internal

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/nocturnecity/image-reframer/pkg"
)

// RatioTolerance is the largest width/height ratio difference still treated as the same aspect.
const RatioTolerance = 0.01

// PadBackground fills the letterbox bars: white, fully transparent.
var PadBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 0}

type Reframer struct {
	resampler Resampler
}

func NewReframer(r Resampler) *Reframer {
	if r == nil {
		r = imagingResampler{filter: imaging.Lanczos}
	}
	return &Reframer{resampler: r}
}

type reframeFunc func(r *Reframer, src image.Image, target pkg.Dimensions, focal *pkg.FocalPoint) (image.Image, error)

var strategies = map[pkg.Policy]reframeFunc{
	pkg.PolicyStretch: (*Reframer).stretch,
	pkg.PolicyCrop:    (*Reframer).crop,
	pkg.PolicyPad:     (*Reframer).pad,
}

// SelectPolicy resolves PolicyAuto: matching aspect ratios stretch, anything else needs an explicit choice.
func SelectPolicy(source, target pkg.Dimensions, requested pkg.Policy) (pkg.Policy, error) {
	if requested != "" && requested != pkg.PolicyAuto {
		if _, ok := strategies[requested]; !ok {
			return "", fmt.Errorf("policy %q: %w", requested, ErrInvalidRequest)
		}
		return requested, nil
	}
	if math.Abs(source.Ratio()-target.Ratio()) <= RatioTolerance {
		return pkg.PolicyStretch, nil
	}
	return "", fmt.Errorf("source %s, target %s: %w", source, target, ErrPolicyRequired)
}

// Reframe produces a target sized image from src. It returns src itself when the size already
// matches, together with the policy that was applied ("" for identity).
func (r *Reframer) Reframe(src image.Image, target pkg.Dimensions, policy pkg.Policy, focal *pkg.FocalPoint) (image.Image, pkg.Policy, error) {
	if target.Width < 1 || target.Height < 1 {
		return nil, "", fmt.Errorf("target %s: %w", target, ErrDegenerateTarget)
	}
	if src == nil {
		return nil, "", fmt.Errorf("nil source: %w", ErrUnsupportedMode)
	}
	source := pkg.DimensionsOf(src)
	if source.Width < 1 || source.Height < 1 {
		return nil, "", fmt.Errorf("empty source %s: %w", source, ErrUnsupportedMode)
	}
	if source == target {
		return src, "", nil
	}

	applied, err := SelectPolicy(source, target, policy)
	if err != nil {
		return nil, "", err
	}
	out, err := strategies[applied](r, src, target, focal)
	if err != nil {
		return nil, "", err
	}
	return out, applied, nil
}

func (r *Reframer) stretch(src image.Image, target pkg.Dimensions, _ *pkg.FocalPoint) (image.Image, error) {
	return r.resample(src, target)
}

func (r *Reframer) crop(src image.Image, target pkg.Dimensions, focal *pkg.FocalPoint) (image.Image, error) {
	source := pkg.DimensionsOf(src)
	scale := math.Max(
		float64(target.Width)/float64(source.Width),
		float64(target.Height)/float64(source.Height))
	scaled := scaleDimensions(source, scale)
	// rounding must never leave the scaled image smaller than the window
	scaled.Width = max(scaled.Width, target.Width)
	scaled.Height = max(scaled.Height, target.Height)

	tmp, err := r.resample(src, scaled)
	if err != nil {
		return nil, err
	}
	win := CropWindowFor(scaled, target, focal)
	rect := image.Rect(win.X, win.Y, win.X+target.Width, win.Y+target.Height).Add(tmp.Bounds().Min)
	return imaging.Crop(tmp, rect), nil
}

func (r *Reframer) pad(src image.Image, target pkg.Dimensions, _ *pkg.FocalPoint) (image.Image, error) {
	source := pkg.DimensionsOf(src)
	scale := math.Min(
		float64(target.Width)/float64(source.Width),
		float64(target.Height)/float64(source.Height))
	scaled := scaleDimensions(source, scale)
	scaled.Width = min(scaled.Width, target.Width)
	scaled.Height = min(scaled.Height, target.Height)

	tmp, err := r.resample(src, scaled)
	if err != nil {
		return nil, err
	}
	canvas := imaging.New(target.Width, target.Height, PadBackground)
	paste := image.Pt((target.Width-scaled.Width)/2, (target.Height-scaled.Height)/2)
	dr := image.Rectangle{Min: paste, Max: paste.Add(scaled.Point())}
	draw.Draw(canvas, dr, tmp, tmp.Bounds().Min, draw.Over)
	return canvas, nil
}

func (r *Reframer) resample(src image.Image, size pkg.Dimensions) (image.Image, error) {
	if pkg.DimensionsOf(src) == size {
		return src, nil
	}
	out, err := r.resampler.Resample(src, size)
	if err != nil {
		return nil, err
	}
	if got := pkg.DimensionsOf(out); got != size {
		return nil, fmt.Errorf("resampler produced %s, want %s: %w", got, size, ErrUnsupportedMode)
	}
	return out, nil
}

// CropWindowFor places a target sized window inside scaled, centered on focal when given,
// otherwise centered on the image. The window never leaves scaled.
func CropWindowFor(scaled, target pkg.Dimensions, focal *pkg.FocalPoint) image.Point {
	maxX := max(scaled.Width-target.Width, 0)
	maxY := max(scaled.Height-target.Height, 0)
	if focal == nil {
		return image.Pt(maxX/2, maxY/2)
	}
	fx := int(math.Round(focal.X * float64(scaled.Width)))
	fy := int(math.Round(focal.Y * float64(scaled.Height)))
	return image.Pt(clamp(fx-target.Width/2, 0, maxX), clamp(fy-target.Height/2, 0, maxY))
}

func scaleDimensions(d pkg.Dimensions, scale float64) pkg.Dimensions {
	return pkg.Dimensions{
		Width:  max(int(math.Round(float64(d.Width)*scale)), 1),
		Height: max(int(math.Round(float64(d.Height)*scale)), 1),
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

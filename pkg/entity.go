package pkg

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// MaxDimension is the largest width or height a request may ask for.
const MaxDimension = 10000

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func DimensionsOf(img image.Image) Dimensions {
	b := img.Bounds()
	return Dimensions{Width: b.Dx(), Height: b.Dy()}
}

func (d Dimensions) Ratio() float64 {
	return float64(d.Width) / float64(d.Height)
}

func (d Dimensions) Point() image.Point {
	return image.Pt(d.Width, d.Height)
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Intent is one of Preset, Percentage or Manual.
type Intent interface {
	intent()
}

type Preset struct {
	Platform string `json:"platform"`
	Name     string `json:"name"`
}

type Percentage struct {
	Factor float64 `json:"factor"`
}

type Manual struct {
	Width          int  `json:"width"`
	Height         int  `json:"height"`
	MaintainAspect bool `json:"maintain_aspect"`
}

func (Preset) intent()     {}
func (Percentage) intent() {}
func (Manual) intent()     {}

type Policy string

const (
	PolicyAuto    Policy = "auto"
	PolicyStretch Policy = "stretch"
	PolicyCrop    Policy = "crop"
	PolicyPad     Policy = "pad"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyAuto, nil
	case PolicyAuto, PolicyStretch, PolicyCrop, PolicyPad:
		return p, nil
	default:
		return "", fmt.Errorf("unknown reframe policy %q, use: `auto`, `stretch`, `crop`, `pad`", s)
	}
}

type Format string

const (
	FormatOriginal Format = "original"
	FormatJPEG     Format = "jpeg"
	FormatPNG      Format = "png"
	FormatWEBP     Format = "webp"
	FormatBMP      Format = "bmp"
	FormatTIFF     Format = "tiff"
	FormatGIF      Format = "gif"
)

func ParseFormat(s string) (Format, error) {
	switch f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")); f {
	case "", string(FormatOriginal):
		return FormatOriginal, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "png", "webp", "bmp":
		return Format(f), nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// FocalPoint is a crop center in normalized [0,1] coordinates.
type FocalPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (f FocalPoint) Valid() bool {
	return f.X >= 0 && f.X <= 1 && f.Y >= 0 && f.Y <= 1
}

// ParseFocalPoint parses "x,y", e.g. "0.5,0.25".
func ParseFocalPoint(s string) (*FocalPoint, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("focal point %q must be `x,y`", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("focal point x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("focal point y: %w", err)
	}
	fp := &FocalPoint{X: x, Y: y}
	if !fp.Valid() {
		return nil, fmt.Errorf("focal point %q is outside [0,1]", s)
	}
	return fp, nil
}

package internal

import (
	"fmt"
	"image"
	"sort"

	"github.com/anthonynsimon/bild/transform"
	"github.com/bamiaux/rez"
	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"

	"github.com/nocturnecity/image-reframer/pkg"
)

const DefaultFilter = "lanczos"

// Resampler scales a whole image to exactly size. Implementations must not modify img.
type Resampler interface {
	Resample(img image.Image, size pkg.Dimensions) (image.Image, error)
}

var resamplers = map[string]Resampler{
	"lanczos":    imagingResampler{filter: imaging.Lanczos},
	"gift":       giftResampler{},
	"nfnt":       nfntResampler{},
	"bild":       bildResampler{},
	"rez":        rezResampler{},
	"catmullrom": xdrawResampler{scaler: draw.CatmullRom},
}

// NewResampler returns the backend registered under name; "" selects DefaultFilter.
func NewResampler(name string) (Resampler, error) {
	if name == "" {
		name = DefaultFilter
	}
	r, ok := resamplers[name]
	if !ok {
		return nil, fmt.Errorf("%q, use one of %v: %w", name, FilterNames(), ErrUnknownFilter)
	}
	return r, nil
}

func FilterNames() []string {
	names := make([]string, 0, len(resamplers))
	for n := range resamplers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// imagingResampler uses "github.com/disintegration/imaging"
type imagingResampler struct {
	filter imaging.ResampleFilter
}

var _ Resampler = imagingResampler{}

func (r imagingResampler) Resample(img image.Image, size pkg.Dimensions) (image.Image, error) {
	return imaging.Resize(img, size.Width, size.Height, r.filter), nil
}

// giftResampler uses "github.com/disintegration/gift"
type giftResampler struct{}

var _ Resampler = giftResampler{}

func (giftResampler) Resample(img image.Image, size pkg.Dimensions) (image.Image, error) {
	g := gift.New(gift.Resize(size.Width, size.Height, gift.LanczosResampling))
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst, nil
}

// nfntResampler uses "github.com/nfnt/resize"
type nfntResampler struct{}

var _ Resampler = nfntResampler{}

func (nfntResampler) Resample(img image.Image, size pkg.Dimensions) (image.Image, error) {
	return resize.Resize(uint(size.Width), uint(size.Height), img, resize.Lanczos3), nil
}

// bildResampler uses "github.com/anthonynsimon/bild/transform"
type bildResampler struct{}

var _ Resampler = bildResampler{}

func (bildResampler) Resample(img image.Image, size pkg.Dimensions) (image.Image, error) {
	return transform.Resize(img, size.Width, size.Height, transform.Lanczos), nil
}

// rezResampler uses "github.com/bamiaux/rez", which needs matching input and output types.
// rez refuses images smaller than its filter support, those fall back to imaging's Lanczos.
type rezResampler struct{}

var _ Resampler = rezResampler{}

func (rezResampler) Resample(img image.Image, size pkg.Dimensions) (image.Image, error) {
	src, ok := img.(*image.RGBA)
	if !ok {
		b := img.Bounds()
		src = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(src, src.Bounds(), img, b.Min, draw.Src)
	}
	dst := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	if err := rez.Convert(dst, src, rez.NewLanczosFilter(3)); err != nil {
		return imaging.Resize(img, size.Width, size.Height, imaging.Lanczos), nil
	}
	return dst, nil
}

// xdrawResampler uses "golang.org/x/image/draw"
type xdrawResampler struct {
	scaler draw.Scaler
}

var _ Resampler = xdrawResampler{}

func (r xdrawResampler) Resample(img image.Image, size pkg.Dimensions) (image.Image, error) {
	dst := image.NewNRGBA(image.Rect(0, 0, size.Width, size.Height))
	r.scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

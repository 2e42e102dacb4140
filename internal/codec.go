package internal

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/nocturnecity/image-reframer/pkg"
)

const (
	DefaultResizeQuality  = 95
	DefaultConvertQuality = 90
)

// FlattenBackground replaces transparency for formats without an alpha channel.
var FlattenBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

type formatSpec struct {
	ext     string
	mime    string
	alpha   bool
	quality bool
	encode  func(w io.Writer, img image.Image, quality int) error
}

// The webp encoder is lossless, so quality does not apply.
var formats = map[pkg.Format]formatSpec{
	pkg.FormatJPEG: {ext: "jpeg", mime: "image/jpeg", alpha: false, quality: true, encode: func(w io.Writer, img image.Image, q int) error {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	}},
	pkg.FormatPNG: {ext: "png", mime: "image/png", alpha: true, encode: func(w io.Writer, img image.Image, _ int) error {
		return png.Encode(w, img)
	}},
	pkg.FormatWEBP: {ext: "webp", mime: "image/webp", alpha: true, encode: func(w io.Writer, img image.Image, _ int) error {
		return nativewebp.Encode(w, img, &nativewebp.Options{})
	}},
	pkg.FormatBMP: {ext: "bmp", mime: "image/bmp", alpha: false, encode: func(w io.Writer, img image.Image, _ int) error {
		return bmp.Encode(w, img)
	}},
	pkg.FormatTIFF: {ext: "tiff", mime: "image/tiff", alpha: true, encode: func(w io.Writer, img image.Image, _ int) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}},
}

// keepFormats are the source formats "original" keeps; everything else is written as PNG.
var keepFormats = map[pkg.Format]bool{
	pkg.FormatJPEG: true,
	pkg.FormatPNG:  true,
	pkg.FormatWEBP: true,
}

func Extension(f pkg.Format) string {
	if spec, ok := formats[f]; ok {
		return spec.ext
	}
	return string(f)
}

func MIME(f pkg.Format) string {
	if spec, ok := formats[f]; ok {
		return spec.mime
	}
	return "application/octet-stream"
}

func SupportsAlpha(f pkg.Format) bool { return formats[f].alpha }

func SupportsQuality(f pkg.Format) bool { return formats[f].quality }

// OutputFormat resolves FormatOriginal against the decoded source format.
func OutputFormat(requested, source pkg.Format) pkg.Format {
	if requested != "" && requested != pkg.FormatOriginal {
		return requested
	}
	if keepFormats[source] {
		return source
	}
	return pkg.FormatPNG
}

// Encode writes img as format. Images with transparency are flattened onto
// FlattenBackground first when the format has no alpha channel.
func Encode(w io.Writer, img image.Image, format pkg.Format, quality int) error {
	spec, ok := formats[format]
	if !ok {
		return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	if !spec.alpha && HasAlpha(img) {
		img = Flatten(img, FlattenBackground)
	}
	if err := spec.encode(w, img, clampQuality(quality)); err != nil {
		return fmt.Errorf("encode %s: %v: %w", format, err, ErrEncodeFailure)
	}
	return nil
}

func EncodeBytes(img image.Image, format pkg.Format, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode detects the container format and decodes data, applying EXIF orientation.
func Decode(data []byte) (image.Image, pkg.Format, error) {
	_, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%v: %w", err, ErrDecodeFailure)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %v: %w", name, err, ErrDecodeFailure)
	}
	return img, pkg.Format(name), nil
}

func HasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return true
}

// Flatten composites img over an opaque bg color.
func Flatten(img image.Image, bg color.Color) *image.NRGBA {
	b := img.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), bg)
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}

func clampQuality(q int) int {
	switch {
	case q < 1:
		return DefaultResizeQuality
	case q > 100:
		return 100
	default:
		return q
	}
}

package internal

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocturnecity/image-reframer/pkg"
)

func TestReframeIdentity(t *testing.T) {
	src := gradientImage(64, 48)
	r := NewReframer(nil)
	for _, p := range []pkg.Policy{pkg.PolicyAuto, pkg.PolicyStretch, pkg.PolicyCrop, pkg.PolicyPad} {
		out, applied, err := r.Reframe(src, pkg.Dimensions{Width: 64, Height: 48}, p, &pkg.FocalPoint{X: 0, Y: 0})
		require.NoError(t, err, p)
		assert.Equal(t, pkg.Policy(""), applied)
		assert.Equal(t, src.Pix, out.(*image.NRGBA).Pix, p)
	}
}

func TestReframeOutputDimensions(t *testing.T) {
	r := NewReframer(nil)
	sources := []pkg.Dimensions{{Width: 100, Height: 50}, {Width: 37, Height: 91}, {Width: 64, Height: 64}}
	targets := []pkg.Dimensions{{Width: 30, Height: 30}, {Width: 120, Height: 45}, {Width: 17, Height: 101}, {Width: 1, Height: 1}}
	for _, s := range sources {
		src := gradientImage(s.Width, s.Height)
		for _, target := range targets {
			for _, p := range []pkg.Policy{pkg.PolicyStretch, pkg.PolicyCrop, pkg.PolicyPad} {
				out, applied, err := r.Reframe(src, target, p, nil)
				require.NoError(t, err, "%s -> %s %s", s, target, p)
				assert.Equal(t, p, applied)
				assert.Equal(t, target, pkg.DimensionsOf(out), "%s -> %s %s", s, target, p)
			}
		}
	}
}

func TestReframeDoesNotMutateSource(t *testing.T) {
	src := holeImage(40, 30)
	before := append([]uint8(nil), src.Pix...)
	r := NewReframer(nil)
	for _, p := range []pkg.Policy{pkg.PolicyStretch, pkg.PolicyCrop, pkg.PolicyPad} {
		_, _, err := r.Reframe(src, pkg.Dimensions{Width: 25, Height: 25}, p, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, before, src.Pix)
}

func TestSelectPolicy(t *testing.T) {
	p, err := SelectPolicy(pkg.Dimensions{Width: 1000, Height: 500}, pkg.Dimensions{Width: 1200, Height: 600}, pkg.PolicyAuto)
	require.NoError(t, err)
	assert.Equal(t, pkg.PolicyStretch, p)

	// 1.5 vs 1.5075 is inside the tolerance
	p, err = SelectPolicy(pkg.Dimensions{Width: 1500, Height: 1000}, pkg.Dimensions{Width: 603, Height: 400}, "")
	require.NoError(t, err)
	assert.Equal(t, pkg.PolicyStretch, p)

	_, err = SelectPolicy(pkg.Dimensions{Width: 1000, Height: 1000}, pkg.Dimensions{Width: 1000, Height: 1500}, pkg.PolicyAuto)
	assert.ErrorIs(t, err, ErrPolicyRequired)

	p, err = SelectPolicy(pkg.Dimensions{Width: 1000, Height: 1000}, pkg.Dimensions{Width: 1000, Height: 1500}, pkg.PolicyPad)
	require.NoError(t, err)
	assert.Equal(t, pkg.PolicyPad, p)

	_, err = SelectPolicy(pkg.Dimensions{Width: 1, Height: 1}, pkg.Dimensions{Width: 2, Height: 3}, "zoom")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestReframeAutoRequiresPolicy(t *testing.T) {
	_, _, err := NewReframer(nil).Reframe(gradientImage(40, 40), pkg.Dimensions{Width: 40, Height: 60}, pkg.PolicyAuto, nil)
	assert.ErrorIs(t, err, ErrPolicyRequired)

	out, applied, err := NewReframer(nil).Reframe(gradientImage(40, 20), pkg.Dimensions{Width: 60, Height: 30}, pkg.PolicyAuto, nil)
	require.NoError(t, err)
	assert.Equal(t, pkg.PolicyStretch, applied)
	assert.Equal(t, pkg.Dimensions{Width: 60, Height: 30}, pkg.DimensionsOf(out))
}

func TestReframeCropCentered(t *testing.T) {
	src := splitImage(2000, 1000)
	target := pkg.Dimensions{Width: 1080, Height: 1080}

	assert.Equal(t, image.Pt(540, 0), CropWindowFor(pkg.Dimensions{Width: 2160, Height: 1080}, target, nil))

	out, applied, err := NewReframer(nil).Reframe(src, target, pkg.PolicyCrop, nil)
	require.NoError(t, err)
	assert.Equal(t, pkg.PolicyCrop, applied)
	require.Equal(t, target, pkg.DimensionsOf(out))

	// the window spans x in [540,1620) of the 2160 wide scaled image, the red/blue edge sits at 1080
	assert.Equal(t, red, nrgbaAt(out, 100, 540))
	assert.Equal(t, red, nrgbaAt(out, 500, 540))
	assert.Equal(t, blue, nrgbaAt(out, 580, 540))
	assert.Equal(t, blue, nrgbaAt(out, 1000, 540))
}

func TestReframeCropFocalPoint(t *testing.T) {
	src := splitImage(200, 100)
	target := pkg.Dimensions{Width: 100, Height: 100}
	r := NewReframer(nil)

	out, _, err := r.Reframe(src, target, pkg.PolicyCrop, &pkg.FocalPoint{X: 0, Y: 0.5})
	require.NoError(t, err)
	assert.Equal(t, red, nrgbaAt(out, 10, 50))
	assert.Equal(t, red, nrgbaAt(out, 90, 50))

	out, _, err = r.Reframe(src, target, pkg.PolicyCrop, &pkg.FocalPoint{X: 1, Y: 0.5})
	require.NoError(t, err)
	assert.Equal(t, blue, nrgbaAt(out, 10, 50))
	assert.Equal(t, blue, nrgbaAt(out, 90, 50))
}

func TestCropWindowFor(t *testing.T) {
	scaled := pkg.Dimensions{Width: 2160, Height: 1080}
	target := pkg.Dimensions{Width: 1080, Height: 1080}
	tests := []struct {
		focal *pkg.FocalPoint
		want  image.Point
	}{
		{nil, image.Pt(540, 0)},
		{&pkg.FocalPoint{X: 0.5, Y: 0.5}, image.Pt(540, 0)},
		{&pkg.FocalPoint{X: 0, Y: 0}, image.Pt(0, 0)},
		{&pkg.FocalPoint{X: 1, Y: 1}, image.Pt(1080, 0)},
		{&pkg.FocalPoint{X: 0.3, Y: 0.9}, image.Pt(108, 0)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CropWindowFor(scaled, target, tt.focal), "%+v", tt.focal)
	}

	// vertical slack
	got := CropWindowFor(pkg.Dimensions{Width: 100, Height: 300}, pkg.Dimensions{Width: 100, Height: 100}, &pkg.FocalPoint{X: 0.5, Y: 0.9})
	assert.Equal(t, image.Pt(0, 200), got)
	got = CropWindowFor(pkg.Dimensions{Width: 100, Height: 300}, pkg.Dimensions{Width: 100, Height: 100}, &pkg.FocalPoint{X: 0.5, Y: 0.4})
	assert.Equal(t, image.Pt(0, 70), got)
}

func TestReframePadLetterbox(t *testing.T) {
	src := gradientImage(800, 600)
	target := pkg.Dimensions{Width: 1200, Height: 1200}

	out, applied, err := NewReframer(nil).Reframe(src, target, pkg.PolicyPad, nil)
	require.NoError(t, err)
	assert.Equal(t, pkg.PolicyPad, applied)
	require.Equal(t, target, pkg.DimensionsOf(out))

	// scaled to 1200x900, pasted at (0,150)
	for _, y := range []int{0, 75, 149, 1050, 1199} {
		assert.Equal(t, uint8(0), nrgbaAt(out, 600, y).A, "bar at y=%d", y)
	}
	for _, y := range []int{150, 600, 1049} {
		assert.Equal(t, uint8(255), nrgbaAt(out, 600, y).A, "content at y=%d", y)
	}
	assert.Equal(t, uint8(255), nrgbaAt(out, 0, 600).A)
	assert.Equal(t, uint8(255), nrgbaAt(out, 1199, 600).A)
}

func TestReframePadKeepsAspect(t *testing.T) {
	r := NewReframer(nil)
	for _, s := range []pkg.Dimensions{{Width: 800, Height: 600}, {Width: 300, Height: 700}, {Width: 250, Height: 250}} {
		out, _, err := r.Reframe(gradientImage(s.Width, s.Height), pkg.Dimensions{Width: 500, Height: 400}, pkg.PolicyPad, nil)
		require.NoError(t, err)
		box := opaqueBounds(out)
		ratio := float64(box.Dx()) / float64(box.Dy())
		// one pixel of rounding on the short side
		tolerance := s.Ratio() * 1.0 / float64(min(box.Dx(), box.Dy()))
		assert.InDelta(t, s.Ratio(), ratio, tolerance+1e-9, "%s padded to 500x400, content %v", s, box)
	}
}

func TestReframePadPreservesTransparency(t *testing.T) {
	src := holeImage(100, 100)
	out, _, err := NewReframer(nil).Reframe(src, pkg.Dimensions{Width: 200, Height: 100}, pkg.PolicyPad, nil)
	require.NoError(t, err)
	// content sits at x in [50,150), its transparent hole in the middle
	assert.Equal(t, uint8(0), nrgbaAt(out, 100, 50).A)
	assert.Equal(t, uint8(255), nrgbaAt(out, 55, 5).A)
	assert.Equal(t, uint8(0), nrgbaAt(out, 10, 50).A)
}

func TestReframeErrors(t *testing.T) {
	r := NewReframer(nil)
	src := gradientImage(10, 10)

	_, _, err := r.Reframe(src, pkg.Dimensions{Width: 0, Height: 10}, pkg.PolicyStretch, nil)
	assert.ErrorIs(t, err, ErrDegenerateTarget)
	_, _, err = r.Reframe(src, pkg.Dimensions{Width: 10, Height: -1}, pkg.PolicyStretch, nil)
	assert.ErrorIs(t, err, ErrDegenerateTarget)
	_, _, err = r.Reframe(nil, pkg.Dimensions{Width: 10, Height: 10}, pkg.PolicyStretch, nil)
	assert.ErrorIs(t, err, ErrUnsupportedMode)
	_, _, err = r.Reframe(image.NewNRGBA(image.Rect(0, 0, 0, 5)), pkg.Dimensions{Width: 10, Height: 10}, pkg.PolicyStretch, nil)
	assert.ErrorIs(t, err, ErrUnsupportedMode)
}

type shortResampler struct{}

func (shortResampler) Resample(img image.Image, size pkg.Dimensions) (image.Image, error) {
	return image.NewNRGBA(image.Rect(0, 0, size.Width-1, size.Height)), nil
}

func TestReframeRejectsBadResampler(t *testing.T) {
	_, _, err := NewReframer(shortResampler{}).Reframe(gradientImage(10, 10), pkg.Dimensions{Width: 20, Height: 20}, pkg.PolicyStretch, nil)
	assert.ErrorIs(t, err, ErrUnsupportedMode)
}

func opaqueBounds(img image.Image) image.Rectangle {
	b := img.Bounds()
	box := image.Rectangle{Min: b.Max, Max: b.Min}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a == 0 {
				continue
			}
			box.Min.X = min(box.Min.X, x)
			box.Min.Y = min(box.Min.Y, y)
			box.Max.X = max(box.Max.X, x+1)
			box.Max.Y = max(box.Max.Y, y+1)
		}
	}
	return box
}

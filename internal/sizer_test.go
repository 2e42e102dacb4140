package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocturnecity/image-reframer/pkg"
)

func TestResolvePercentage(t *testing.T) {
	r := NewSizeResolver(DefaultPresets())
	for _, orig := range []pkg.Dimensions{{Width: 1, Height: 1}, {Width: 640, Height: 480}, {Width: 1999, Height: 17}, {Width: 4032, Height: 3024}} {
		for _, f := range []float64{1, 33, 50, 99.5, 100, 150, 333.3, 500} {
			want := pkg.Dimensions{
				Width:  int(math.Floor(float64(orig.Width) * f / 100)),
				Height: int(math.Floor(float64(orig.Height) * f / 100)),
			}
			target, percent, err := r.Resolve(orig, pkg.Percentage{Factor: f})
			if want.Width < 1 || want.Height < 1 || want.Width > pkg.MaxDimension || want.Height > pkg.MaxDimension {
				assert.ErrorIs(t, err, ErrInvalidDimension, "%s at %v%%", orig, f)
				continue
			}
			require.NoError(t, err)
			assert.Equal(t, want, target, "%s at %v%%", orig, f)
			assert.Equal(t, int(f), percent)
		}
	}
}

func TestResolvePercentageRejectsNonPositive(t *testing.T) {
	r := NewSizeResolver(nil)
	for _, f := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		_, _, err := r.Resolve(pkg.Dimensions{Width: 100, Height: 100}, pkg.Percentage{Factor: f})
		assert.ErrorIs(t, err, ErrInvalidDimension, "factor %v", f)
	}
}

func TestResolveManualMaintainAspect(t *testing.T) {
	r := NewSizeResolver(nil)
	for _, orig := range []pkg.Dimensions{{Width: 800, Height: 600}, {Width: 1920, Height: 1080}, {Width: 333, Height: 777}, {Width: 7, Height: 3}} {
		for _, w := range []int{1000, 640, 333, 99} {
			target, _, err := r.Resolve(orig, pkg.Manual{Width: w, Height: 12345, MaintainAspect: true})
			want := w * orig.Height / orig.Width
			if want < 1 {
				assert.ErrorIs(t, err, ErrInvalidDimension)
				continue
			}
			require.NoError(t, err)
			assert.Equal(t, pkg.Dimensions{Width: w, Height: want}, target)
		}

		// round trip: the original width gives back the original height
		target, percent, err := r.Resolve(orig, pkg.Manual{Width: orig.Width, MaintainAspect: true})
		require.NoError(t, err)
		assert.Equal(t, orig, target)
		assert.Equal(t, 100, percent)
	}
}

func TestResolveManualVerbatim(t *testing.T) {
	r := NewSizeResolver(nil)
	target, percent, err := r.Resolve(pkg.Dimensions{Width: 800, Height: 600}, pkg.Manual{Width: 1200, Height: 300})
	require.NoError(t, err)
	assert.Equal(t, pkg.Dimensions{Width: 1200, Height: 300}, target)
	assert.Equal(t, 150, percent)

	_, _, err = r.Resolve(pkg.Dimensions{Width: 800, Height: 600}, pkg.Manual{Width: 0, Height: 300})
	assert.ErrorIs(t, err, ErrInvalidDimension)
	_, _, err = r.Resolve(pkg.Dimensions{Width: 800, Height: 600}, pkg.Manual{Width: 10, Height: -1})
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestResolvePreset(t *testing.T) {
	r := NewSizeResolver(DefaultPresets())

	target, percent, err := r.Resolve(pkg.Dimensions{Width: 640, Height: 480}, pkg.Preset{Platform: "Instagram", Name: "Profile"})
	require.NoError(t, err)
	assert.Equal(t, pkg.Dimensions{Width: 320, Height: 320}, target)
	assert.Equal(t, 50, percent)

	// width unchanged, height ratio is reported
	_, percent, err = r.Resolve(pkg.Dimensions{Width: 1080, Height: 800}, pkg.Preset{Platform: "instagram", Name: "feed_square_post"})
	require.NoError(t, err)
	assert.Equal(t, 135, percent)

	// both changed by different ratios: width wins
	_, percent, err = r.Resolve(pkg.Dimensions{Width: 2000, Height: 1000}, pkg.Preset{Platform: "Twitter/X", Name: "Header"})
	require.NoError(t, err)
	assert.Equal(t, 75, percent)

	_, percent, err = r.Resolve(pkg.Dimensions{Width: 1280, Height: 720}, pkg.Preset{Platform: "YouTube", Name: "Thumbnail"})
	require.NoError(t, err)
	assert.Equal(t, 100, percent)
}

func TestResolveRejectsOversizedTarget(t *testing.T) {
	r := NewSizeResolver(DefaultPresets())

	// a tall sliver widened to the maximum width
	req := pkg.Request{Source: "in.png", Mode: pkg.ModeManual, Width: pkg.MaxDimension, KeepAspect: true}
	require.NoError(t, req.Validate())
	_, _, err := r.Resolve(pkg.Dimensions{Width: 10, Height: 1000}, req.Intent())
	assert.ErrorIs(t, err, ErrInvalidDimension)

	req = pkg.Request{Source: "in.png", Mode: pkg.ModePercent, Percent: 500}
	require.NoError(t, req.Validate())
	_, _, err = r.Resolve(pkg.Dimensions{Width: 9000, Height: 9000}, req.Intent())
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, _, err = r.Resolve(pkg.Dimensions{Width: 100, Height: 100}, pkg.Manual{Width: 200, Height: pkg.MaxDimension + 1})
	assert.ErrorIs(t, err, ErrInvalidDimension)

	// the bound itself is allowed
	target, _, err := r.Resolve(pkg.Dimensions{Width: 2000, Height: 1000}, pkg.Percentage{Factor: 500})
	require.NoError(t, err)
	assert.Equal(t, pkg.Dimensions{Width: pkg.MaxDimension, Height: 5000}, target)
}

func TestResolveErrors(t *testing.T) {
	r := NewSizeResolver(DefaultPresets())

	_, _, err := r.Resolve(pkg.Dimensions{Width: 100, Height: 100}, pkg.Preset{Platform: "MySpace", Name: "Profile"})
	assert.ErrorIs(t, err, ErrUnknownPreset)
	_, _, err = r.Resolve(pkg.Dimensions{Width: 100, Height: 100}, pkg.Preset{Platform: "Instagram", Name: "Banner"})
	assert.ErrorIs(t, err, ErrUnknownPreset)
	_, _, err = NewSizeResolver(nil).Resolve(pkg.Dimensions{Width: 100, Height: 100}, pkg.Preset{Platform: "Instagram", Name: "Profile"})
	assert.ErrorIs(t, err, ErrUnknownPreset)

	_, _, err = r.Resolve(pkg.Dimensions{Width: 0, Height: 100}, pkg.Percentage{Factor: 50})
	assert.ErrorIs(t, err, ErrInvalidDimension)
	_, _, err = r.Resolve(pkg.Dimensions{Width: 100, Height: 0}, pkg.Manual{Width: 10, Height: 10})
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, _, err = r.Resolve(pkg.Dimensions{Width: 100, Height: 100}, nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

package roi

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestNewTransform_FitWidth(t *testing.T) {
	tr, err := NewTransform(Size{W: 1000, H: 2000}, Size{W: 500, H: 500})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, tr.Scale, eps)
	assert.InDelta(t, 0, tr.Offset.X, eps)
	assert.InDelta(t, 125, tr.Offset.Y, eps)
}

func TestNewTransform_FitHeight(t *testing.T) {
	tr, err := NewTransform(Size{W: 400, H: 300}, Size{W: 800, H: 300})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, tr.Scale, eps)
	assert.InDelta(t, 200, tr.Offset.X, eps)
	assert.InDelta(t, 0, tr.Offset.Y, eps)
}

func TestNewTransform_Errors(t *testing.T) {
	tests := []struct {
		name    string
		image   Size
		surface Size
		want    error
	}{
		{"zero surface width", Size{W: 10, H: 10}, Size{W: 0, H: 10}, ErrSurfaceNotLaidOut},
		{"zero surface height", Size{W: 10, H: 10}, Size{W: 10, H: 0}, ErrSurfaceNotLaidOut},
		{"no image", Size{}, Size{W: 10, H: 10}, ErrImageNotLoaded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTransform(tt.image, tt.surface)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewTransform_FitsAndCenters(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		img := Size{W: 1 + rng.Float64()*4000, H: 1 + rng.Float64()*4000}
		surf := Size{W: 1 + rng.Float64()*2000, H: 1 + rng.Float64()*2000}

		tr, err := NewTransform(img, surf)
		require.NoError(t, err)

		tol := 1e-9 * math.Max(surf.W, surf.H)
		assert.LessOrEqual(t, img.W*tr.Scale, surf.W+tol)
		assert.LessOrEqual(t, img.H*tr.Scale, surf.H+tol)
		assert.GreaterOrEqual(t, tr.Offset.X, 0.0)
		assert.GreaterOrEqual(t, tr.Offset.Y, 0.0)
		assert.True(t, tr.Offset.X == 0 || tr.Offset.Y == 0, "one axis must fit exactly: %+v", tr.Offset)

		if tr.Offset.X > 0 {
			assert.InDelta(t, (surf.W-img.W*tr.Scale)/2, tr.Offset.X, tol)
		}
		if tr.Offset.Y > 0 {
			assert.InDelta(t, (surf.H-img.H*tr.Scale)/2, tr.Offset.Y, tol)
		}
	}
}

func TestToImage_FlipsVerticalAxis(t *testing.T) {
	tr, err := NewTransform(Size{W: 1000, H: 2000}, Size{W: 500, H: 500})
	require.NoError(t, err)

	got := tr.ToImage(Point{X: 100, Y: 400})
	assert.InDelta(t, 200, got.X, eps)
	assert.InDelta(t, 1450, got.Y, eps)

	got = tr.ToImage(Point{X: 300, Y: 200})
	assert.InDelta(t, 600, got.X, eps)
	assert.InDelta(t, 1850, got.Y, eps)

	// bottom-left corner of the image on screen is the image's last row
	got = tr.ToImage(Point{X: 0, Y: 125})
	assert.InDelta(t, 0, got.X, eps)
	assert.InDelta(t, 2000, got.Y, eps)
}

func TestToImage_Clamps(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		img := Size{W: 1 + rng.Float64()*4000, H: 1 + rng.Float64()*4000}
		surf := Size{W: 1 + rng.Float64()*2000, H: 1 + rng.Float64()*2000}
		tr, err := NewTransform(img, surf)
		require.NoError(t, err)

		for j := 0; j < 50; j++ {
			p := Point{X: (rng.Float64() - 0.5) * 1e6, Y: (rng.Float64() - 0.5) * 1e6}
			got := tr.ToImage(p)
			assert.True(t, got.X >= 0 && got.X <= img.W, "x out of range: %v for %+v", got.X, img)
			assert.True(t, got.Y >= 0 && got.Y <= img.H, "y out of range: %v for %+v", got.Y, img)
		}
	}
}

func TestToImage_ClampsNonFinite(t *testing.T) {
	tr, err := NewTransform(Size{W: 640, H: 480}, Size{W: 300, H: 900})
	require.NoError(t, err)

	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		name string
		in   Point
		want Point
	}{
		{"nan", Point{X: nan, Y: nan}, Point{X: 0, Y: 0}},
		{"positive infinity", Point{X: inf, Y: inf}, Point{X: 640, Y: 0}},
		{"negative infinity", Point{X: -inf, Y: -inf}, Point{X: 0, Y: 480}},
		{"mixed", Point{X: nan, Y: inf}, Point{X: 0, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.ToImage(tt.in))
		})
	}
}

func TestNewTransform_RejectsInfiniteSizes(t *testing.T) {
	_, err := NewTransform(Size{W: math.Inf(1), H: 10}, Size{W: 10, H: 10})
	assert.ErrorIs(t, err, ErrImageNotLoaded)

	_, err = NewTransform(Size{W: 10, H: 10}, Size{W: 10, H: math.Inf(1)})
	assert.ErrorIs(t, err, ErrSurfaceNotLaidOut)
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		img := Size{W: 1 + rng.Float64()*3000, H: 1 + rng.Float64()*3000}
		surf := Size{W: 1 + rng.Float64()*1500, H: 1 + rng.Float64()*1500}
		tr, err := NewTransform(img, surf)
		require.NoError(t, err)

		lo, hi := tr.ImageRect()
		for j := 0; j < 20; j++ {
			p := Point{
				X: lo.X + rng.Float64()*(hi.X-lo.X),
				Y: lo.Y + rng.Float64()*(hi.Y-lo.Y),
			}
			back := tr.ToDisplay(tr.ToImage(p))
			assert.InDelta(t, p.X, back.X, 1e-6*math.Max(1, math.Abs(p.X)))
			assert.InDelta(t, p.Y, back.Y, 1e-6*math.Max(1, math.Abs(p.Y)))
		}
	}
}

func TestToImage_ZeroTransform(t *testing.T) {
	var tr Transform
	assert.Equal(t, Point{}, tr.ToImage(Point{X: 10, Y: 10}))
}

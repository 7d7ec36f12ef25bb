package roi

import (
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewROI_Scenario(t *testing.T) {
	tr, err := NewTransform(Size{W: 1000, H: 2000}, Size{W: 500, H: 500})
	require.NoError(t, err)

	got := NewROI(Point{X: 100, Y: 400}, Point{X: 300, Y: 200}, tr)
	assert.Equal(t, ROI{X1: 200, Y1: 1450, X2: 600, Y2: 1850}, got)
	assert.Equal(t, 400, got.Width())
	assert.Equal(t, 400, got.Height())
	assert.Equal(t, "(200,1450,600,1850)", got.String())
}

func TestNewROI_DirectionIndependent(t *testing.T) {
	tr, err := NewTransform(Size{W: 1000, H: 2000}, Size{W: 500, H: 500})
	require.NoError(t, err)

	want := NewROI(Point{X: 100, Y: 400}, Point{X: 300, Y: 200}, tr)
	corners := [][2]Point{
		{{X: 300, Y: 200}, {X: 100, Y: 400}},
		{{X: 100, Y: 200}, {X: 300, Y: 400}},
		{{X: 300, Y: 400}, {X: 100, Y: 200}},
	}
	for _, c := range corners {
		assert.Equal(t, want, NewROI(c[0], c[1], tr))
	}
}

func TestNewROI_OrderingInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	tr, err := NewTransform(Size{W: 1920, H: 1080}, Size{W: 700, H: 900})
	require.NoError(t, err)

	for i := 0; i < 5000; i++ {
		a := Point{X: (rng.Float64() - 0.2) * 900, Y: (rng.Float64() - 0.2) * 1100}
		b := Point{X: (rng.Float64() - 0.2) * 900, Y: (rng.Float64() - 0.2) * 1100}
		r := NewROI(a, b, tr)
		assert.LessOrEqual(t, r.X1, r.X2)
		assert.LessOrEqual(t, r.Y1, r.Y2)
		assert.True(t, r.X1 >= 0 && r.X2 <= 1920, "x out of range: %v", r)
		assert.True(t, r.Y1 >= 0 && r.Y2 <= 1080, "y out of range: %v", r)
	}
}

func TestNewROI_Degenerate(t *testing.T) {
	tr, err := NewTransform(Size{W: 1000, H: 2000}, Size{W: 500, H: 500})
	require.NoError(t, err)

	r := NewROI(Point{X: 250, Y: 250}, Point{X: 250, Y: 250}, tr)
	assert.True(t, r.Empty())
	assert.Zero(t, r.Width())
	assert.Zero(t, r.Height())
}

func TestROI_Rectangle(t *testing.T) {
	r := ROI{X1: 1, Y1: 2, X2: 5, Y2: 9}
	assert.Equal(t, image.Rect(1, 2, 5, 9), r.Rectangle())
	assert.False(t, r.Empty())
}

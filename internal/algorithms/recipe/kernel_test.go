package recipe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaborKernel_Size(t *testing.T) {
	assert.Equal(t, 11, GaborKernel(10, 5.7, 0, 10, 0.5, 0).Size)
	assert.Equal(t, 21, GaborKernel(21, 8, 0, 10, 0.5, 0).Size)
	assert.Equal(t, 1, GaborKernel(1, 1, 0, 10, 0.5, 0).Size)
}

func TestGaborKernel_CenterIsCosPsi(t *testing.T) {
	k := GaborKernel(10, 5.7, math.Pi/2, 10, 0.5, 0)
	assert.InDelta(t, 1.0, k.At(5, 5), 1e-6)

	k = GaborKernel(10, 5.7, math.Pi/2, 10, 0.5, math.Pi/2)
	assert.InDelta(t, 0.0, k.At(5, 5), 1e-6)
}

func TestGaborKernel_PointSymmetric(t *testing.T) {
	k := Defaults().Kernel()
	n := k.Size
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			assert.InDelta(t, k.At(r, c), k.At(n-1-r, n-1-c), 1e-6)
		}
	}
}

func TestGaborKernel_VerticalOrientation(t *testing.T) {
	k := Defaults().Kernel()
	require.Equal(t, 11, k.Size)

	// theta = pi/2 modulates along rows: y = 5 is half a wavelength away
	want := -math.Exp(-0.5 * 25 / (5.7 * 5.7))
	assert.InDelta(t, want, k.At(0, 5), 1e-5)

	// along the centre row only the envelope in x remains (sigma_y = sigma/gamma)
	sy := 5.7 / 0.5
	want = math.Exp(-0.5 * 25 / (sy * sy))
	assert.InDelta(t, want, k.At(5, 0), 1e-5)
}

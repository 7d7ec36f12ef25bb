package roi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapper_RecomputesOnResize(t *testing.T) {
	var m Mapper
	_, ok := m.Transform()
	assert.False(t, ok)

	m.SetImage(Size{W: 1000, H: 2000})
	_, ok = m.Transform()
	assert.False(t, ok, "no transform before the surface is laid out")

	m.SetSurface(Size{W: 500, H: 500})
	tr, ok := m.Transform()
	require.True(t, ok)
	assert.InDelta(t, 0.5, tr.Scale, eps)

	m.SetSurface(Size{W: 2000, H: 1000})
	tr, ok = m.Transform()
	require.True(t, ok)
	assert.InDelta(t, 0.5, tr.Scale, eps)
	assert.InDelta(t, 750, tr.Offset.X, eps)
}

func TestMapper_KeepsTransformWhenSurfaceCollapses(t *testing.T) {
	var m Mapper
	m.SetImage(Size{W: 1000, H: 2000})
	m.SetSurface(Size{W: 500, H: 500})
	before, _ := m.Transform()

	m.SetSurface(Size{W: 0, H: 0})
	after, ok := m.Transform()
	require.True(t, ok)
	assert.Equal(t, before, after)
	assert.False(t, m.Contains(Point{X: 1, Y: 1}))
}

func TestMapper_ImageSwapWhileSurfaceCollapsed(t *testing.T) {
	var m Mapper
	m.SetImage(Size{W: 1000, H: 2000})
	m.SetSurface(Size{W: 500, H: 500})
	m.SetSurface(Size{})

	m.SetImage(Size{W: 10, H: 10})
	_, ok := m.Transform()
	assert.False(t, ok, "transform of the previous image must not survive")

	m.SetSurface(Size{W: 500, H: 500})
	tr, ok := m.Transform()
	require.True(t, ok)
	assert.Equal(t, Size{W: 10, H: 10}, tr.Image)
	assert.InDelta(t, 50, tr.Scale, eps)
}

func TestMapper_DropsTransformWhenImageUnloaded(t *testing.T) {
	var m Mapper
	m.SetImage(Size{W: 10, H: 10})
	m.SetSurface(Size{W: 10, H: 10})
	m.SetImage(Size{})

	_, ok := m.Transform()
	assert.False(t, ok)
}

func TestMapper_Contains(t *testing.T) {
	var m Mapper
	m.SetSurface(Size{W: 100, H: 50})

	assert.True(t, m.Contains(Point{X: 0, Y: 0}))
	assert.True(t, m.Contains(Point{X: 100, Y: 50}))
	assert.False(t, m.Contains(Point{X: -1, Y: 10}))
	assert.False(t, m.Contains(Point{X: 10, Y: 51}))
}

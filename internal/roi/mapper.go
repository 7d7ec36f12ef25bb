package roi

import "errors"

// Mapper tracks the loaded image and the display surface and keeps the
// transform between them current.
type Mapper struct {
	image     Size
	surface   Size
	transform Transform
	ready     bool
}

// SetImage records the dimensions of a newly loaded image. Without a laid out
// surface there is no transform until the next SetSurface.
func (m *Mapper) SetImage(s Size) {
	m.image = s
	if !m.surface.valid() {
		m.transform = Transform{}
		m.ready = false
	}
	m.recompute()
}

// SetSurface records a new surface size. A surface that is not laid out yet
// leaves the previous transform in place.
func (m *Mapper) SetSurface(s Size) {
	m.surface = s
	m.recompute()
}

func (m *Mapper) Image() Size   { return m.image }
func (m *Mapper) Surface() Size { return m.surface }

// Transform returns the current transform and whether one has been computed.
func (m *Mapper) Transform() (Transform, bool) {
	return m.transform, m.ready
}

// Contains reports whether p lies on the surface.
func (m *Mapper) Contains(p Point) bool {
	if !m.surface.valid() {
		return false
	}
	return p.X >= 0 && p.Y >= 0 && p.X <= m.surface.W && p.Y <= m.surface.H
}

func (m *Mapper) recompute() {
	t, err := NewTransform(m.image, m.surface)
	switch {
	case err == nil:
		m.transform = t
		m.ready = true
	case errors.Is(err, ErrImageNotLoaded):
		m.transform = Transform{}
		m.ready = false
	}
}

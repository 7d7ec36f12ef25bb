package roi

import (
	"fmt"
	"image"
	"math"

	"roi-edge-analyzer/internal/logger"
)

// State is the gesture state of a Selector.
type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Selection is the result of an export.
type Selection struct {
	Image image.Image
	ROI   ROI
}

// Selector turns gesture events delivered by a UI event loop into committed
// regions of the source image. It is not safe for concurrent use; all events
// are expected on one goroutine.
type Selector struct {
	logger logger.Logger
	sink   Sink
	mapper Mapper
	source image.Image

	state   State
	start   Point
	current Point

	roi       ROI
	roiImage  image.Image
	committed bool
}

func NewSelector(sink Sink, log logger.Logger) *Selector {
	if log == nil {
		log = logger.NewNop()
	}
	return &Selector{sink: sink, logger: log}
}

// SetSource replaces the image gestures are mapped onto. A nil image unloads
// the current one. Replacing an image cancels a drag started on it.
func (s *Selector) SetSource(img image.Image) {
	if s.source != nil && s.state == StateDragging {
		s.logger.Debug("Selector", "drag cancelled by image change", nil)
		s.state = StateIdle
		s.start, s.current = Point{}, Point{}
	}
	s.source = img
	if img == nil {
		s.mapper.SetImage(Size{})
		return
	}
	b := img.Bounds()
	s.mapper.SetImage(Size{W: float64(b.Dx()), H: float64(b.Dy())})
}

func (s *Selector) Source() image.Image { return s.source }

// SetSurface reports the current size of the display surface.
func (s *Selector) SetSurface(size Size) {
	s.mapper.SetSurface(size)
}

func (s *Selector) Transform() (Transform, bool) { return s.mapper.Transform() }

func (s *Selector) State() State { return s.state }

// GestureStart begins a drag at p. Points off the surface are ignored.
func (s *Selector) GestureStart(p Point) bool {
	if !s.mapper.Contains(p) {
		s.logger.Debug("Selector", "gesture start outside surface", logger.Fields{
			"x": p.X,
			"y": p.Y,
		})
		return false
	}
	s.state = StateDragging
	s.start = p
	s.current = p
	return true
}

// GestureMove updates the feedback rectangle of an active drag.
func (s *Selector) GestureMove(p Point) {
	if s.state != StateDragging {
		return
	}
	s.current = p
}

// GestureEnd completes the drag at p and commits the resulting region. The
// event is ignored while no image is loaded or the surface has no size.
func (s *Selector) GestureEnd(p Point) (ROI, bool) {
	if s.state != StateDragging {
		return ROI{}, false
	}
	if s.source == nil {
		s.logger.Debug("Selector", "gesture end ignored", logger.Fields{"reason": ErrImageNotLoaded.Error()})
		return ROI{}, false
	}
	t, ok := s.mapper.Transform()
	if !ok {
		s.logger.Debug("Selector", "gesture end ignored", logger.Fields{"reason": ErrSurfaceNotLaidOut.Error()})
		return ROI{}, false
	}

	s.current = p
	s.state = StateIdle

	r := NewROI(s.start, p, t)
	s.roi = r
	s.roiImage = Crop(s.source, r)
	s.committed = true

	s.logger.Info("Selector", "roi committed", logger.Fields{
		"roi":    r.String(),
		"width":  r.Width(),
		"height": r.Height(),
	})
	return r, true
}

// Feedback returns the display-space bounding box of the drag in progress.
func (s *Selector) Feedback() (lo, hi Point, ok bool) {
	if s.state != StateDragging {
		return Point{}, Point{}, false
	}
	lo = Point{X: math.Min(s.start.X, s.current.X), Y: math.Min(s.start.Y, s.current.Y)}
	hi = Point{X: math.Max(s.start.X, s.current.X), Y: math.Max(s.start.Y, s.current.Y)}
	return lo, hi, true
}

// ROI returns the last committed region.
func (s *Selector) ROI() (ROI, bool) {
	return s.roi, s.committed
}

// ROIImage returns the pixels of the last committed region, or nil.
func (s *Selector) ROIImage() image.Image {
	if !s.committed {
		return nil
	}
	return s.roiImage
}

// Export persists the committed region through the sink. It returns nil and
// no error when nothing has been selected yet.
func (s *Selector) Export() (*Selection, error) {
	if !s.committed {
		s.logger.Info("Selector", "export requested without a selection", nil)
		return nil, nil
	}
	if s.sink == nil {
		return nil, fmt.Errorf("%w: no sink configured", ErrPersistence)
	}
	if err := s.sink.Save(s.roiImage); err != nil {
		s.logger.Error("Selector", err, logger.Fields{"roi": s.roi.String()})
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.logger.Info("Selector", "roi exported", logger.Fields{"roi": s.roi.String()})
	return &Selection{Image: s.roiImage, ROI: s.roi}, nil
}

// Reset drops the drag in progress and the committed region.
func (s *Selector) Reset() {
	s.state = StateIdle
	s.start, s.current = Point{}, Point{}
	s.roi = ROI{}
	s.roiImage = nil
	s.committed = false
}

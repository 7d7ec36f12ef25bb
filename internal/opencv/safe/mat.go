package safe

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"gocv.io/x/gocv"
)

// Tracker observes Mat lifetimes. The memory manager implements it.
type Tracker interface {
	Allocated(id uint64, bytes int64, tag string)
	Released(id uint64, tag string)
}

// Mat guards a gocv.Mat against use after Close and double Close.
type Mat struct {
	mu      sync.RWMutex
	mat     gocv.Mat
	valid   int32
	id      uint64
	tag     string
	tracker Tracker
}

var nextID uint64

const maxDimension = 32768

func NewMat(rows, cols int, matType gocv.MatType) (*Mat, error) {
	return NewTrackedMat(rows, cols, matType, nil, "")
}

func NewTrackedMat(rows, cols int, matType gocv.MatType, tracker Tracker, tag string) (*Mat, error) {
	if rows <= 0 || cols <= 0 || rows > maxDimension || cols > maxDimension {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", cols, rows)
	}

	m := gocv.NewMatWithSize(rows, cols, matType)
	if m.Empty() {
		m.Close()
		return nil, fmt.Errorf("failed to allocate %dx%d Mat", cols, rows)
	}
	return wrap(m, tracker, tag), nil
}

// Adopt takes ownership of m. The caller must not close m afterwards.
func Adopt(m gocv.Mat, tracker Tracker, tag string) (*Mat, error) {
	if m.Empty() || m.Rows() <= 0 || m.Cols() <= 0 {
		m.Close()
		return nil, fmt.Errorf("cannot adopt empty Mat (%s)", tag)
	}
	return wrap(m, tracker, tag), nil
}

// FromMat clones m; the caller keeps ownership of the original.
func FromMat(m gocv.Mat) (*Mat, error) {
	if m.Empty() {
		return nil, fmt.Errorf("source Mat is empty")
	}
	return Adopt(m.Clone(), nil, "")
}

func wrap(m gocv.Mat, tracker Tracker, tag string) *Mat {
	sm := &Mat{
		mat:     m,
		valid:   1,
		id:      atomic.AddUint64(&nextID, 1),
		tag:     tag,
		tracker: tracker,
	}
	if tracker != nil {
		tracker.Allocated(sm.id, int64(m.Total()*m.ElemSize()), tag)
	}
	runtime.SetFinalizer(sm, (*Mat).Close)
	return sm
}

func (sm *Mat) IsValid() bool {
	return sm != nil && atomic.LoadInt32(&sm.valid) == 1
}

func (sm *Mat) ID() uint64 { return sm.id }

func (sm *Mat) Tag() string { return sm.tag }

func (sm *Mat) Empty() bool {
	if !sm.IsValid() {
		return true
	}
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.mat.Empty()
}

func (sm *Mat) Rows() int {
	if !sm.IsValid() {
		return 0
	}
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.mat.Rows()
}

func (sm *Mat) Cols() int {
	if !sm.IsValid() {
		return 0
	}
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.mat.Cols()
}

func (sm *Mat) Channels() int {
	if !sm.IsValid() {
		return 0
	}
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.mat.Channels()
}

func (sm *Mat) Type() gocv.MatType {
	if !sm.IsValid() {
		return gocv.MatTypeCV8UC1
	}
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.mat.Type()
}

// Clone returns an independent copy sharing the tracker.
func (sm *Mat) Clone() (*Mat, error) {
	if err := Validate(sm, "Clone"); err != nil {
		return nil, err
	}
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return Adopt(sm.mat.Clone(), sm.tracker, sm.tag+"_clone")
}

// Raw exposes the underlying Mat for gocv calls. It stays owned by sm.
func (sm *Mat) Raw() gocv.Mat {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.mat
}

// Bytes copies the pixel buffer.
func (sm *Mat) Bytes() ([]byte, error) {
	if err := Validate(sm, "Bytes"); err != nil {
		return nil, err
	}
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	src := sm.mat
	if !src.IsContinuous() {
		c := src.Clone()
		defer c.Close()
		src = c
	}
	return append([]byte(nil), src.ToBytes()...), nil
}

func (sm *Mat) Close() {
	if sm == nil || !atomic.CompareAndSwapInt32(&sm.valid, 1, 0) {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.tracker != nil {
		sm.tracker.Released(sm.id, sm.tag)
	}
	sm.mat.Close()
	sm.mat = gocv.Mat{}
	runtime.SetFinalizer(sm, nil)
}

// Validate reports why m cannot be used for op.
func Validate(m *Mat, op string) error {
	switch {
	case m == nil:
		return fmt.Errorf("%s: Mat is nil", op)
	case !m.IsValid():
		return fmt.Errorf("%s: Mat is closed", op)
	case m.Empty():
		return fmt.Errorf("%s: Mat is empty", op)
	}
	return nil
}

// ValidateChannels additionally checks the channel count.
func ValidateChannels(m *Mat, op string, channels ...int) error {
	if err := Validate(m, op); err != nil {
		return err
	}
	got := m.Channels()
	for _, c := range channels {
		if got == c {
			return nil
		}
	}
	return fmt.Errorf("%s: unsupported channel count %d", op, got)
}

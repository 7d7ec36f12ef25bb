package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"roi-edge-analyzer/internal/logger"
	"roi-edge-analyzer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// DefaultBudget bounds the native memory held by live Mats.
const DefaultBudget = 1 << 30

// Manager allocates tracked Mats and reports the ones left open.
type Manager struct {
	mu     sync.Mutex
	logger logger.Logger
	budget int64
	used   int64
	peak   int64
	allocs int64
	frees  int64
	active map[uint64]matInfo
}

type matInfo struct {
	tag     string
	bytes   int64
	created time.Time
}

// Stats is a snapshot of the manager counters.
type Stats struct {
	Allocations int64
	Releases    int64
	UsedBytes   int64
	PeakBytes   int64
	Active      int
}

func NewManager(log logger.Logger, budget int64) *Manager {
	if log == nil {
		log = logger.NewNop()
	}
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Manager{
		logger: log,
		budget: budget,
		active: make(map[uint64]matInfo),
	}
}

func (m *Manager) NewMat(rows, cols int, matType gocv.MatType, tag string) (*safe.Mat, error) {
	need := int64(rows) * int64(cols) * int64(bytesPerPixel(matType))

	m.mu.Lock()
	over := m.used+need > m.budget
	used := m.used
	m.mu.Unlock()
	if over {
		return nil, fmt.Errorf("allocating %s: would use %d bytes, budget is %d", tag, used+need, m.budget)
	}

	return safe.NewTrackedMat(rows, cols, matType, m, tag)
}

// Adopt hands ownership of mat to a tracked wrapper.
func (m *Manager) Adopt(mat gocv.Mat, tag string) (*safe.Mat, error) {
	return safe.Adopt(mat, m, tag)
}

func (m *Manager) Allocated(id uint64, bytes int64, tag string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.allocs++
	m.used += bytes
	if m.used > m.peak {
		m.peak = m.used
	}
	m.active[id] = matInfo{tag: tag, bytes: bytes, created: time.Now()}
}

func (m *Manager) Released(id uint64, tag string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.frees++
	if info, ok := m.active[id]; ok {
		m.used -= info.bytes
		delete(m.active, id)
	}
}

func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		Allocations: m.allocs,
		Releases:    m.frees,
		UsedBytes:   m.used,
		PeakBytes:   m.peak,
		Active:      len(m.active),
	}
}

// Report logs the counters and the oldest live Mats.
func (m *Manager) Report(oldest int) {
	s := m.Stats()
	m.logger.Debug("MemoryManager", "memory statistics", logger.Fields{
		"allocations": s.Allocations,
		"releases":    s.Releases,
		"used_bytes":  s.UsedBytes,
		"peak_bytes":  s.PeakBytes,
		"active_mats": s.Active,
	})

	for _, info := range m.oldest(oldest) {
		m.logger.Warning("MemoryManager", "long-lived Mat", logger.Fields{
			"tag":   info.tag,
			"bytes": info.bytes,
			"age":   time.Since(info.created).Round(time.Millisecond).String(),
		})
	}
}

func (m *Manager) oldest(n int) []matInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make([]matInfo, 0, len(m.active))
	for _, info := range m.active {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].created.Before(infos[j].created) })
	if len(infos) > n {
		infos = infos[:n]
	}
	return infos
}

// Shutdown reports Mats that were never closed.
func (m *Manager) Shutdown() {
	s := m.Stats()
	if s.Active > 0 {
		m.Report(s.Active)
	}
	m.logger.Info("MemoryManager", "shutdown", logger.Fields{
		"unreleased": s.Active,
		"peak_bytes": s.PeakBytes,
	})
}

func bytesPerPixel(t gocv.MatType) int {
	switch t {
	case gocv.MatTypeCV8UC1:
		return 1
	case gocv.MatTypeCV8UC3:
		return 3
	case gocv.MatTypeCV8UC4, gocv.MatTypeCV32FC1:
		return 4
	case gocv.MatTypeCV32FC3:
		return 12
	default:
		return 4
	}
}

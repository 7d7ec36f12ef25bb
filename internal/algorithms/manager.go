package algorithms

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"roi-edge-analyzer/internal/algorithms/gabor"
	"roi-edge-analyzer/internal/opencv/conversion"
	"roi-edge-analyzer/internal/opencv/safe"
)

// Algorithm is an image filter with a flat parameter map.
type Algorithm interface {
	ProcessWithContext(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error)
	ValidateParameters(params map[string]interface{}) error
	GetDefaultParameters() map[string]interface{}
	GetName() string
}

// Manager keeps the registered filters and the parameters chosen for each.
type Manager struct {
	mu         sync.RWMutex
	algorithms map[string]Algorithm
	current    string
	parameters map[string]map[string]interface{}
}

func NewManager(alloc conversion.Allocator) *Manager {
	m := &Manager{
		algorithms: make(map[string]Algorithm),
		parameters: make(map[string]map[string]interface{}),
	}
	m.Register(gabor.NewProcessor(alloc))
	m.current = gabor.Name
	return m
}

// Register adds alg with its default parameters, replacing any filter with
// the same name.
func (m *Manager) Register(alg Algorithm) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.algorithms[alg.GetName()] = alg
	m.parameters[alg.GetName()] = alg.GetDefaultParameters()
	if m.current == "" {
		m.current = alg.GetName()
	}
}

func (m *Manager) SetCurrentAlgorithm(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.algorithms[name]; !ok {
		return fmt.Errorf("unknown algorithm: %s", name)
	}
	m.current = name
	return nil
}

func (m *Manager) GetCurrentAlgorithm() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// GetParameters returns a copy of the parameters of the named filter.
func (m *Manager) GetParameters(name string) map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]interface{}, len(m.parameters[name]))
	for k, v := range m.parameters[name] {
		result[k] = v
	}
	return result
}

// SetParameter updates one parameter. The change is rejected when the
// resulting set fails validation.
func (m *Manager) SetParameter(name, key string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	alg, ok := m.algorithms[name]
	if !ok {
		return fmt.Errorf("unknown algorithm: %s", name)
	}

	candidate := make(map[string]interface{}, len(m.parameters[name])+1)
	for k, v := range m.parameters[name] {
		candidate[k] = v
	}
	candidate[key] = value

	if err := alg.ValidateParameters(candidate); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	m.parameters[name] = candidate
	return nil
}

// ResetParameters restores the defaults of the named filter.
func (m *Manager) ResetParameters(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	alg, ok := m.algorithms[name]
	if !ok {
		return fmt.Errorf("unknown algorithm: %s", name)
	}
	m.parameters[name] = alg.GetDefaultParameters()
	return nil
}

func (m *Manager) GetAlgorithm(name string) (Algorithm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if alg, ok := m.algorithms[name]; ok {
		return alg, nil
	}
	return nil, fmt.Errorf("unknown algorithm: %s", name)
}

func (m *Manager) GetAvailableAlgorithms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.algorithms))
	for name := range m.algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run applies the current filter with its stored parameters.
func (m *Manager) Run(ctx context.Context, input *safe.Mat) (*safe.Mat, error) {
	name := m.GetCurrentAlgorithm()
	alg, err := m.GetAlgorithm(name)
	if err != nil {
		return nil, err
	}
	return alg.ProcessWithContext(ctx, input, m.GetParameters(name))
}

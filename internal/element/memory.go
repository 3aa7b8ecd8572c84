package element

import (
	"context"
	"sync"
)

// Memory is the in-process Service for development and tests.
type Memory struct {
	mu       sync.RWMutex
	cfg      Config
	onChange func(Config)
}

// NewMemory creates an uninitialized in-memory element service.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Init(ctx context.Context, opts Options) error {
	m.mu.Lock()
	m.cfg = opts.Defaults
	m.onChange = opts.OnConfigChange
	cfg, notify := m.cfg, m.onChange
	m.mu.Unlock()

	if notify != nil {
		notify(cfg)
	}
	return nil
}

func (m *Memory) SetConfig(ctx context.Context, patch Patch) error {
	m.mu.Lock()
	m.cfg = m.cfg.Apply(patch)
	cfg, notify := m.cfg, m.onChange
	m.mu.Unlock()

	if notify != nil {
		notify(cfg)
	}
	return nil
}

func (m *Memory) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

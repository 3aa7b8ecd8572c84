package datasync

import (
	"context"
	"sync"

	"github.com/burgerhouse/storefront/internal/models"
)

// Memory is the in-process Service used for development and tests. Every
// successful write synchronously pushes a copy of the full collection.
type Memory struct {
	mu      sync.Mutex
	records []models.Record
	index   map[string]int
	handler Handler
}

// NewMemory creates an empty in-memory data service.
func NewMemory() *Memory {
	return &Memory{index: make(map[string]int)}
}

func (m *Memory) Init(ctx context.Context, h Handler) error {
	m.mu.Lock()
	m.handler = h
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	if h != nil {
		h.OnDataChanged(snapshot)
	}
	return nil
}

func (m *Memory) Create(ctx context.Context, rec models.Record) error {
	m.mu.Lock()
	if _, exists := m.index[rec.ID]; exists {
		m.mu.Unlock()
		return ErrDuplicateID
	}
	m.index[rec.ID] = len(m.records)
	m.records = append(m.records, rec)
	h, snapshot := m.handler, m.snapshotLocked()
	m.mu.Unlock()

	if h != nil {
		h.OnDataChanged(snapshot)
	}
	return nil
}

func (m *Memory) Update(ctx context.Context, rec models.Record) error {
	m.mu.Lock()
	i, exists := m.index[rec.ID]
	if !exists {
		m.mu.Unlock()
		return ErrRecordNotFound
	}
	m.records[i] = rec
	h, snapshot := m.handler, m.snapshotLocked()
	m.mu.Unlock()

	if h != nil {
		h.OnDataChanged(snapshot)
	}
	return nil
}

func (m *Memory) snapshotLocked() []models.Record {
	out := make([]models.Record, len(m.records))
	copy(out, m.records)
	return out
}

package session

import (
	"context"
	"sync"
	"time"
)

// Memory is the in-process Store used for single-instance deployments and
// tests. Expired entries are dropped lazily on access.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	state     *State
	expiresAt time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) Set(_ context.Context, id string, s *State, ttl time.Duration) error {
	cp := *s
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = memoryEntry{state: &cp, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*State, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	cp := *e.state
	return &cp, nil
}

func (m *Memory) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

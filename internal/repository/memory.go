package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type memoryEntry struct {
	mu      sync.Mutex
	data    []byte
	deleted bool
}

// MemoryStore keeps gob-encoded sessions in a map, so callers never share
// a *GameSession with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[uuid.UUID]*memoryEntry)}
}

func (m *MemoryStore) entry(id uuid.UUID) (*memoryEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sessions[id]
	return e, ok
}

func (m *MemoryStore) Create(_ context.Context, s *GameSession) error {
	data, err := encodeSession(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.GameSessionID]; ok {
		return ErrSessionExists
	}
	m.sessions[s.GameSessionID] = &memoryEntry{data: data}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id uuid.UUID) (*GameSession, error) {
	e, ok := m.entry(id)
	if !ok {
		return nil, ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return nil, ErrNotFound
	}
	return decodeSession(e.data)
}

func (m *MemoryStore) Update(
	_ context.Context, id uuid.UUID, fn func(*GameSession) error,
) (*GameSession, error) {
	e, ok := m.entry(id)
	if !ok {
		return nil, ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return nil, ErrNotFound
	}
	s, err := decodeSession(e.data)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	data, err := encodeSession(s)
	if err != nil {
		return nil, err
	}
	e.data = data
	return s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	e.deleted = true
	e.mu.Unlock()
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

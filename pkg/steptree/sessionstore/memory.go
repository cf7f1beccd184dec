package sessionstore

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory session store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]storedSession
	limit  int
	closed bool
}

// storedSession holds record bytes with metadata for List().
type storedSession struct {
	data      []byte
	topic     string
	createdAt time.Time
	updatedAt time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMemoryRetentionLimit overrides the retention cap.
// Default: DefaultRetentionLimit.
func WithMemoryRetentionLimit(n int) MemoryOption {
	return func(m *MemoryStore) {
		if n > 0 {
			m.limit = n
		}
	}
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		data:  make(map[string]storedSession),
		limit: DefaultRetentionLimit,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Save implements Store.
func (m *MemoryStore) Save(_ context.Context, id string, data []byte, meta Meta) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	now := time.Now().UTC()
	createdAt := meta.CreatedAt
	if existing, ok := m.data[id]; ok {
		createdAt = existing.createdAt
	} else if createdAt.IsZero() {
		createdAt = now
	}

	// Copy data to avoid retaining the caller's slice
	stored := make([]byte, len(data))
	copy(stored, data)

	m.data[id] = storedSession{
		data:      stored,
		topic:     meta.Topic,
		createdAt: createdAt,
		updatedAt: now,
	}

	m.evictLocked()
	return nil
}

// evictLocked drops oldest sessions (by creation time) past the limit.
func (m *MemoryStore) evictLocked() {
	if len(m.data) <= m.limit {
		return
	}
	type aged struct {
		id        string
		createdAt time.Time
	}
	all := make([]aged, 0, len(m.data))
	for id, s := range m.data {
		all = append(all, aged{id: id, createdAt: s.createdAt})
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].createdAt.Before(all[j].createdAt)
	})
	for _, victim := range all[:len(m.data)-m.limit] {
		delete(m.data, victim.id)
	}
}

// Load implements Store.
func (m *MemoryStore) Load(_ context.Context, id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	s, ok := m.data[id]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy to prevent modification
	result := make([]byte, len(s.data))
	copy(result, s.data)
	return result, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, id)
	return nil
}

// List implements Store.
func (m *MemoryStore) List(_ context.Context) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.data))
	for id, s := range m.data {
		infos = append(infos, Info{
			SessionID: id,
			Topic:     s.topic,
			CreatedAt: s.createdAt,
			UpdatedAt: s.updatedAt,
			Size:      int64(len(s.data)),
		})
	}

	// Newest first
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})

	return infos, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the number of stored sessions. Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.data)
}

// Package session stores per-browser sessions between requests.
package session

import (
	"context"
	"sync"
	"time"

	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/types"
)

// MemoryStore keeps sessions in process memory. They are lost on restart.
type MemoryStore struct {
	entries map[string]memoryEntry
	mu      sync.RWMutex
	now     func() time.Time
}

type memoryEntry struct {
	sess      types.Session
	expiresAt time.Time
}

var _ interfaces.SessionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryStore) Load(_ context.Context, id string) (types.Session, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()

	if !ok {
		return types.Session{}, false, nil
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
		return types.Session{}, false, nil
	}
	return e.sess, true, nil
}

// Save stores a copy of sess. A zero ttl never expires.
func (m *MemoryStore) Save(_ context.Context, sess types.Session, ttl time.Duration) error {
	e := memoryEntry{sess: sess}
	e.sess.History = append([]types.Exchange(nil), sess.History...)
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[sess.ID] = e
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

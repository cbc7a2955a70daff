package session

import (
	"context"
	"sync"
	"time"
)

type memorySession struct {
	userID    int
	createdAt time.Time
	expiresAt time.Time
}

// MemoryManager keeps sessions in a process-local map guarded by a mutex.
// Each server process starts with an empty session table.
type MemoryManager struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryManager(ttl time.Duration) *MemoryManager {
	return &MemoryManager{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryManager) Create(ctx context.Context, userID int) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	now := m.now()
	m.mu.Lock()
	m.sessions[token] = memorySession{
		userID:    userID,
		createdAt: now,
		expiresAt: now.Add(m.ttl),
	}
	m.mu.Unlock()

	return token, nil
}

func (m *MemoryManager) Resolve(ctx context.Context, token string) (int, error) {
	m.mu.RLock()
	sess, ok := m.sessions[token]
	m.mu.RUnlock()

	if !ok {
		return 0, ErrNotFound
	}
	if m.now().After(sess.expiresAt) {
		_ = m.Destroy(ctx, token)
		return 0, ErrNotFound
	}
	return sess.userID, nil
}

func (m *MemoryManager) Destroy(ctx context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}

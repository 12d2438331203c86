package session

import (
	"context"
	"sync"

	"grabbot/bot/locale"
)

type record struct {
	language   string
	pendingURL string
	hasPending bool
}

// Memory is an in-process Store backed by a map.
type Memory struct {
	mu       sync.RWMutex
	users    map[int64]*record
	fallback string
}

// NewMemory builds an in-memory store. Users without a stored choice are
// reported as speaking the fallback language.
func NewMemory(fallback string) *Memory {
	if !locale.IsSupported(fallback) {
		fallback = locale.Default
	}
	return &Memory{
		users:    make(map[int64]*record),
		fallback: fallback,
	}
}

func (m *Memory) get(userID int64) *record {
	if r, ok := m.users[userID]; ok {
		return r
	}
	r := &record{language: m.fallback}
	m.users[userID] = r
	return r
}

// Language implements Store.
func (m *Memory) Language(ctx context.Context, userID int64) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.users[userID]; ok {
		return r.language, nil
	}
	return m.fallback, nil
}

// SetLanguage implements Store.
func (m *Memory) SetLanguage(ctx context.Context, userID int64, code string) error {
	if !locale.IsSupported(code) {
		return ErrUnknownLanguage
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(userID).language = code
	return nil
}

// SetPendingURL implements Store.
func (m *Memory) SetPendingURL(ctx context.Context, userID int64, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.get(userID)
	r.pendingURL = url
	r.hasPending = true
	return nil
}

// PendingURL implements Store.
func (m *Memory) PendingURL(ctx context.Context, userID int64) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.users[userID]; ok && r.hasPending {
		return r.pendingURL, nil
	}
	return "", ErrNoPendingURL
}

// Count implements Store.
func (m *Memory) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users), nil
}

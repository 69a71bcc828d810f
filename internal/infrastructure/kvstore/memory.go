// Package kvstore provides an in-memory KV implementation used by tests and
// by local development when no Redis URL is configured.
package kvstore

import (
	"context"
	"path"
	"sync"
	"time"

	"classroom-server/services/session-api/internal/domain/session"
)

type entry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// Memory is a mutex-based in-memory KV store.
// Thread-safe via sync.RWMutex.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory creates an empty in-memory KV store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the value for key, or session.ErrKeyNotFound if the key is
// absent or its TTL has lapsed.
func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok {
		return "", session.ErrKeyNotFound
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		return "", session.ErrKeyNotFound
	}
	return e.value, nil
}

// Set stores value under key. A non-positive ttl stores without expiry.
func (m *Memory) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

// Del removes the given keys. Missing keys are ignored.
func (m *Memory) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

// Scan returns all live keys matching the glob pattern.
func (m *Memory) Scan(ctx context.Context, pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []string
	now := m.now()
	for key, e := range m.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			continue
		}
		if ok, _ := path.Match(pattern, key); ok {
			matches = append(matches, key)
		}
	}
	return matches, nil
}

var _ session.KV = (*Memory)(nil)

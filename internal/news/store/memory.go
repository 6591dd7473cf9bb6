package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"crisiswatch/internal/news/models"
	"crisiswatch/pkg/platform/sentinel"
	"crisiswatch/pkg/requestcontext"
)

type memoryEntry struct {
	resp      models.Response
	expiresAt time.Time
}

// Memory is an in-process response cache. Expired entries are dropped lazily
// on read; the working set is one entry per (country, crisis type) pair, so
// no sweeper is needed.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(ctx context.Context, key string) (models.Response, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return models.Response{}, fmt.Errorf("%w: %s", sentinel.ErrNotFound, key)
	}
	if requestcontext.Now(ctx).After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return models.Response{}, fmt.Errorf("%w: %s", sentinel.ErrNotFound, key)
	}
	return entry.resp, nil
}

func (m *Memory) Set(ctx context.Context, key string, resp models.Response, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{
		resp:      resp,
		expiresAt: requestcontext.Now(ctx).Add(ttl),
	}
	return nil
}

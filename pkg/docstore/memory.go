package docstore

import (
	"context"
	"sync"
)

// Memory keeps documents in process. When quota is positive the combined size of
// all keys and values may not exceed it, like a browser origin budget.
type Memory struct {
	mu    sync.RWMutex
	docs  map[string][]byte
	used  int
	quota int
}

func NewMemory(quotaBytes int) *Memory {
	return &Memory{docs: make(map[string][]byte), quota: quotaBytes}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(doc))
	copy(out, doc)
	return out, nil
}

func (m *Memory) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.used + len(key) + len(value)
	if prev, ok := m.docs[key]; ok {
		next -= len(key) + len(prev)
	}
	if m.quota > 0 && next > m.quota {
		return ErrQuotaExceeded
	}

	doc := make([]byte, len(value))
	copy(doc, value)
	m.docs[key] = doc
	m.used = next
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.docs[key]; ok {
		m.used -= len(key) + len(prev)
		delete(m.docs, key)
	}
	return nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

// Used returns the bytes currently counted against the quota.
func (m *Memory) Used() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.used
}

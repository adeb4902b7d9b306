package storage

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryBlobs keeps snapshots in a map. Intended for tests and throwaway runs.
type MemoryBlobs struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

type memoryItem struct {
	data      []byte
	updatedAt time.Time
}

// NewMemoryBlobs returns an empty MemoryBlobs.
func NewMemoryBlobs() *MemoryBlobs {
	return &MemoryBlobs{items: make(map[string]memoryItem)}
}

func (m *MemoryBlobs) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(it.data))
	copy(out, it.data)
	return out, nil
}

func (m *MemoryBlobs) Put(_ context.Context, key string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	m.mu.Lock()
	m.items[key] = memoryItem{data: buf, updatedAt: time.Now()}
	m.mu.Unlock()
	return nil
}

func (m *MemoryBlobs) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryBlobs) Keys(_ context.Context) ([]KeyInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]KeyInfo, 0, len(m.items))
	for k, it := range m.items {
		out = append(out, KeyInfo{Key: k, Size: int64(len(it.data)), UpdatedAt: it.updatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *MemoryBlobs) Driver() Driver { return DriverMemory }

func (m *MemoryBlobs) Close() error { return nil }

// Package storage holds core.KVStore implementations.
package storage

import (
	"sync"

	"github.com/dkeye/nexvox/internal/core"
)

// MemoryStore is a threadsafe in-memory KVStore.
// A positive quota caps the total size of stored values, like a browser does.
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string][]byte
	quota int
}

func NewMemoryStore(quota int) *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte), quota: quota}
}

func (m *MemoryStore) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quota > 0 {
		size := len(value)
		for k, v := range m.data {
			if k != key {
				size += len(v)
			}
		}
		if size > m.quota {
			return core.ErrQuotaExceeded
		}
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Package memory is a process-local KeyValue, used when no durable backend
// is configured and in tests.
package memory

import (
	"context"
	"sync"

	"storefront/internal/repository"
)

type KV struct {
	mu    sync.RWMutex
	items map[string][]byte
}

var _ repository.KeyValue = (*KV)(nil)

func NewKV() *KV {
	return &KV{items: make(map[string][]byte)}
}

func (m *KV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.items[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *KV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = append([]byte(nil), value...)
	return nil
}

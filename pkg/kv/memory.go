package kv

import (
	"bytes"
	"context"
	"strings"
	"sync"
)

// Memory is an in-memory Store. It is safe for concurrent use and
// intended for tests that don't want a badger directory.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key Key) ([]byte, error) {
	m.mu.RLock()
	v, ok := m.data[key.String()]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(v), nil
}

func (m *Memory) Set(_ context.Context, key Key, value []byte) error {
	m.mu.Lock()
	m.data[key.String()] = bytes.Clone(value)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key Key) error {
	m.mu.Lock()
	delete(m.data, key.String())
	m.mu.Unlock()
	return nil
}

func (m *Memory) Purge(_ context.Context, prefix Key) (int, error) {
	p := string(prefixBytes(prefix))
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.data {
		if p == "" || strings.HasPrefix(k, p) {
			delete(m.data, k)
			n++
		}
	}
	return n, nil
}

func (m *Memory) Close() error {
	return nil
}

var _ Store = (*Memory)(nil)

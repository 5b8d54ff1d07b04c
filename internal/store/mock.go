package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

var _ DocumentStore = (*Mock)(nil)

// Mock is an in-memory DocumentStore for tests. Documents are kept as JSON so
// callers never share memory with the store. It is safe for concurrent use.
type Mock struct {
	mu   sync.Mutex
	docs map[string][]byte

	LoadFunc func(ctx context.Context, key string, v any) error
	SaveFunc func(ctx context.Context, key string, v any) error

	LoadCalls []string
	SaveCalls []string
}

// NewMock creates an empty mock store.
func NewMock() *Mock {
	return &Mock{docs: make(map[string][]byte)}
}

func (m *Mock) Load(ctx context.Context, key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls = append(m.LoadCalls, key)
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, key, v)
	}
	data, ok := m.docs[key]
	if !ok {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return json.Unmarshal(data, v)
}

func (m *Mock) Save(ctx context.Context, key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, key)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, key, v)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.docs[key] = data
	return nil
}

// Put seeds a raw JSON document.
func (m *Mock) Put(key string, raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = []byte(raw)
}

// Raw returns the stored JSON document, or nil.
func (m *Mock) Raw(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[key]
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls = nil
	m.SaveCalls = nil
}
